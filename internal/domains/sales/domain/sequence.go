package domain

import (
	"errors"
	"strconv"
)

var ErrBadSequenceValue = errors.New("order sequence value is not numeric")

// OrderSequence is the shared counter producing human-readable order
// numbers. There is a single record per installation; it is advanced by
// the allocator once per newly completed order.
type OrderSequence struct {
	ID    string
	Value string
}

// Next parses the current value, increments it, and returns the
// advanced sequence. The advanced value is the number assigned to the
// order being completed.
func (s OrderSequence) Next() (OrderSequence, error) {
	current, err := strconv.ParseInt(s.Value, 10, 64)
	if err != nil {
		return OrderSequence{}, ErrBadSequenceValue
	}
	s.Value = strconv.FormatInt(current+1, 10)
	return s, nil
}
