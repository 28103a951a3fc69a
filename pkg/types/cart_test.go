package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddMerge(t *testing.T) {
	tests := []struct {
		name      string
		seed      []ItemInput
		add       ItemInput
		wantLines int
		wantQty   int // quantity of the first line after the add
	}{
		{
			name:      "append to empty cart",
			add:       ItemInput{ID: "b1", Title: "Widget", UnitPrice: 1000, Quantity: 1},
			wantLines: 1,
			wantQty:   1,
		},
		{
			name:      "merge on id increments quantity",
			seed:      []ItemInput{{ID: "b1", Title: "Widget", UnitPrice: 1000, Quantity: 1}},
			add:       ItemInput{ID: "b1", Title: "Widget", UnitPrice: 1000, Quantity: 2},
			wantLines: 1,
			wantQty:   3,
		},
		{
			name:      "merge on title and price for id-less items",
			seed:      []ItemInput{{Title: "Widget", UnitPrice: 1000, Quantity: 1}},
			add:       ItemInput{Title: "Widget", UnitPrice: 1000, Quantity: 1},
			wantLines: 1,
			wantQty:   2,
		},
		{
			name:      "new id appends a line",
			seed:      []ItemInput{{ID: "b1", Title: "Widget", UnitPrice: 1000, Quantity: 1}},
			add:       ItemInput{ID: "b2", Title: "Widget", UnitPrice: 1000, Quantity: 1},
			wantLines: 2,
			wantQty:   1,
		},
		{
			name:      "same title different price appends",
			seed:      []ItemInput{{Title: "Widget", UnitPrice: 1000, Quantity: 1}},
			add:       ItemInput{Title: "Widget", UnitPrice: 1200, Quantity: 1},
			wantLines: 2,
			wantQty:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCart()
			for _, in := range tt.seed {
				c.Add(in)
			}
			c.Add(tt.add)

			assert.Equal(t, tt.wantLines, c.Len())
			assert.Equal(t, tt.wantQty, c.Items[0].Quantity)
			assertGrandTotalConsistent(t, c)
		})
	}
}

func TestCartAddMergeRecomputesLineTotal(t *testing.T) {
	// A supplied line total survives insert but is re-derived from the unit
	// price once a merge changes the quantity.
	supplied := 1500.0

	c := NewCart()
	c.Add(ItemInput{ID: "b1", Title: "Bundle", UnitPrice: 1000, Quantity: 2, LineTotal: &supplied})
	require.Equal(t, 1500.0, c.Items[0].LineTotal)
	require.Equal(t, 1500.0, c.GrandTotal)

	c.Add(ItemInput{ID: "b1", Quantity: 1})
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 3000.0, c.Items[0].LineTotal)
	assert.Equal(t, 3000.0, c.GrandTotal)
}

func TestCartRemove(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		wantLines int
		wantTotal float64
	}{
		{name: "remove first line", index: 0, wantLines: 1, wantTotal: 500},
		{name: "remove last line", index: 1, wantLines: 1, wantTotal: 2000},
		{name: "negative index no-op", index: -1, wantLines: 2, wantTotal: 2500},
		{name: "out of range no-op", index: 2, wantLines: 2, wantTotal: 2500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCart()
			c.Add(ItemInput{Title: "Widget", UnitPrice: 1000, Quantity: 2})
			c.Add(ItemInput{Title: "Gadget", UnitPrice: 500, Quantity: 1})

			c.Remove(tt.index)

			assert.Equal(t, tt.wantLines, c.Len())
			assert.Equal(t, tt.wantTotal, c.GrandTotal)
			assertGrandTotalConsistent(t, c)
		})
	}
}

func TestCartSetQuantity(t *testing.T) {
	c := NewCart()
	c.Add(ItemInput{Title: "Widget", UnitPrice: 1000, Quantity: 2})

	c.SetQuantity(0, 5)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, 5000.0, c.Items[0].LineTotal)
	assert.Equal(t, 5000.0, c.GrandTotal)

	// No clamping at this level: zero is stored as given.
	c.SetQuantity(0, 0)
	assert.Equal(t, 0, c.Items[0].Quantity)
	assert.Equal(t, 0.0, c.GrandTotal)

	// Out of range is a silent no-op.
	c.SetQuantity(3, 7)
	assert.Equal(t, 0, c.Items[0].Quantity)
}

func TestCartClearIdempotent(t *testing.T) {
	c := NewCart()
	c.Add(ItemInput{Title: "Widget", UnitPrice: 1000, Quantity: 2})

	c.Clear()
	assert.Empty(t, c.Items)
	assert.Equal(t, 0.0, c.GrandTotal)

	c.Clear()
	assert.Empty(t, c.Items)
	assert.Equal(t, 0.0, c.GrandTotal)
}

func TestCartGrandTotalInvariant(t *testing.T) {
	// Arbitrary mutation sequence; the derived total must track the lines.
	c := NewCart()
	c.Add(ItemInput{ID: "a", Title: "A", UnitPrice: 100, Quantity: 1})
	c.Add(ItemInput{ID: "b", Title: "B", UnitPrice: 250, Quantity: 2})
	c.Add(ItemInput{ID: "a", Quantity: 3})
	c.SetQuantity(1, 4)
	c.Remove(0)
	c.Add(ItemInput{Title: "C", UnitPrice: 9.99, Quantity: 1})
	c.Remove(5) // no-op
	assertGrandTotalConsistent(t, c)

	c.Clear()
	assertGrandTotalConsistent(t, c)
}

func TestCartClone(t *testing.T) {
	c := NewCart()
	c.Add(ItemInput{Title: "Widget", UnitPrice: 1000, Quantity: 2})

	snap := c.Clone()
	c.SetQuantity(0, 9)

	assert.Equal(t, 2, snap.Items[0].Quantity, "snapshot should not observe later mutations")
	assert.Equal(t, 2000.0, snap.GrandTotal)
}

// assertGrandTotalConsistent checks the derived-total invariant.
func assertGrandTotalConsistent(t *testing.T, c *Cart) {
	t.Helper()
	var sum float64
	for _, item := range c.Items {
		sum += item.LineTotal
	}
	assert.Equal(t, sum, c.GrandTotal, "grand total must equal sum of line totals")
}
