package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func discreteProduct() *ProductRef {
	return &ProductRef{
		ID:          "p-espresso",
		Name:        "Espresso",
		Price:       3.5,
		IsAvailable: true,
	}
}

func partialProduct() *ProductRef {
	return &ProductRef{
		ID:               "p-beans",
		Name:             "Coffee Beans",
		Price:            20,
		UnitType:         "weight",
		IsAvailable:      true,
		IsPartialAllowed: true,
	}
}

func TestMerge_NewDiscreteItem(t *testing.T) {
	items, err := Merge(nil, LineItem{
		Product:  discreteProduct(),
		Quantity: 2,
		Total:    7,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "p-espresso", items[0].ProductID)
	require.Equal(t, "Espresso", items[0].Name)
	require.Equal(t, 2, items[0].Quantity)
	require.Equal(t, 7.0, items[0].Total)
	require.Equal(t, "0", items[0].Size)
}

func TestMerge_DiscreteAccumulatesQuantity(t *testing.T) {
	product := discreteProduct()
	items, err := Merge(nil, LineItem{Product: product, Quantity: 2, Total: 7})
	require.NoError(t, err)

	items, err = Merge(items, LineItem{Product: product, Quantity: 3, Total: 10.5})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 5, items[0].Quantity)
	// Total recomputes from the live unit price, not the incoming total.
	require.Equal(t, 17.5, items[0].Total)
}

func TestMerge_PartialAccumulatesSizeAndTotal(t *testing.T) {
	product := partialProduct()
	items, err := Merge(nil, LineItem{Product: product, Size: "100", Total: 2})
	require.NoError(t, err)

	items, err = Merge(items, LineItem{Product: product, Size: "150", Total: 3})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "250", items[0].Size)
	require.Equal(t, 5.0, items[0].Total)
}

func TestMerge_TaxFromProductRate(t *testing.T) {
	product := discreteProduct()
	product.TaxRate = 10
	items, err := Merge(nil, LineItem{Product: product, Quantity: 1, Total: 3.5})
	require.NoError(t, err)
	require.InDelta(t, 0.35, items[0].Tax, 1e-9)
}

func TestMerge_RejectsMissingProduct(t *testing.T) {
	_, err := Merge(nil, LineItem{Quantity: 1})
	require.ErrorIs(t, err, ErrInvalidLineItem)
}

func TestLineItemKey_FallsBackToProductRef(t *testing.T) {
	item := LineItem{Product: discreteProduct()}
	require.Equal(t, "p-espresso", item.Key())

	item.ProductID = "explicit"
	require.Equal(t, "explicit", item.Key())

	require.Equal(t, "", LineItem{}.Key())
}

func TestTotals_GrandTotalIsSubtotalMinusTax(t *testing.T) {
	items := []LineItem{
		{Total: 10, Tax: 1},
		{Total: 5, Tax: 0.5},
	}
	subtotal, tax, total := Totals(items)
	require.Equal(t, 15.0, subtotal)
	require.Equal(t, 1.5, tax)
	require.Equal(t, 13.5, total)
}

func TestCartAddItem_RefreshesTotals(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddItem(LineItem{Product: discreteProduct(), Quantity: 2, Total: 7}))
	require.NoError(t, cart.AddItem(LineItem{Product: partialProduct(), Size: "100", Total: 2}))

	require.Len(t, cart.Items, 2)
	require.Equal(t, 9.0, cart.Subtotal)
	require.Equal(t, cart.Subtotal-cart.TaxAmount, cart.TotalAmount)
}

func TestCartRemoveItem(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddItem(LineItem{Product: discreteProduct(), Quantity: 1, Total: 3.5}))
	require.NoError(t, cart.AddItem(LineItem{Product: partialProduct(), Size: "100", Total: 2}))

	require.True(t, cart.RemoveItem("p-espresso"))
	require.Len(t, cart.Items, 1)
	require.Equal(t, 2.0, cart.Subtotal)

	require.False(t, cart.RemoveItem("missing"))
}

func TestCartAdjustQuantity(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddItem(LineItem{Product: discreteProduct(), Quantity: 2, Total: 7}))

	require.True(t, cart.AdjustQuantity("p-espresso", 1))
	require.Equal(t, 3, cart.Items[0].Quantity)
	require.Equal(t, 10.5, cart.Items[0].Total)
	require.Equal(t, 10.5, cart.Subtotal)

	// Dropping to zero removes the line entirely.
	require.True(t, cart.AdjustQuantity("p-espresso", -3))
	require.Empty(t, cart.Items)
	require.Equal(t, 0.0, cart.Subtotal)

	require.False(t, cart.AdjustQuantity("p-espresso", 1))
}

func TestCartEmpty(t *testing.T) {
	var cart *Cart
	require.True(t, cart.Empty())
	require.True(t, (&Cart{}).Empty())

	filled := &Cart{}
	require.NoError(t, filled.AddItem(LineItem{Product: discreteProduct(), Quantity: 1, Total: 3.5}))
	require.False(t, filled.Empty())
}

func TestCartStripImages(t *testing.T) {
	product := discreteProduct()
	product.Image = "data:image/png;base64,AAAA"
	cart := &Cart{}
	require.NoError(t, cart.AddItem(LineItem{Product: product, Quantity: 1, Total: 3.5}))

	cart.StripImages()
	require.Empty(t, cart.Items[0].Product.Image)
	// The caller's product reference is untouched.
	require.NotEmpty(t, product.Image)
}

func TestCartClone_IsIndependent(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddItem(LineItem{Product: discreteProduct(), Quantity: 1, Total: 3.5}))

	clone := cart.Clone()
	clone.Items[0].Quantity = 99
	clone.Items[0].Product.Name = "changed"

	require.Equal(t, 1, cart.Items[0].Quantity)
	require.Equal(t, "Espresso", cart.Items[0].Product.Name)

	var nilCart *Cart
	require.Nil(t, nilCart.Clone())
}
