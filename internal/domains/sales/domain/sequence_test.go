package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderSequenceNext(t *testing.T) {
	seq := OrderSequence{ID: "seq", Value: "100"}
	next, err := seq.Next()
	require.NoError(t, err)
	require.Equal(t, "101", next.Value)
	// Next returns a copy; the receiver stays put.
	require.Equal(t, "100", seq.Value)
}

func TestOrderSequenceNext_BadValue(t *testing.T) {
	_, err := OrderSequence{Value: "not-a-number"}.Next()
	require.ErrorIs(t, err, ErrBadSequenceValue)

	_, err = OrderSequence{}.Next()
	require.ErrorIs(t, err, ErrBadSequenceValue)
}
