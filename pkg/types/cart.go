package types

// Cart is the in-memory cart state: an ordered sequence of line items
// (insertion order is display order) and a derived grand total. After every
// mutation GrandTotal equals the sum of the current lines' LineTotal values.
//
// Cart itself is not safe for concurrent use; the store package wraps it with
// locking and persistence.
type Cart struct {
	Items      []LineItem `json:"items"`
	GrandTotal float64    `json:"grandTotal"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{Items: []LineItem{}}
}

// Add applies the merge rule to an incoming payload. A match on an existing
// line (same ID, or same title and unit price for ID-less lines) increments
// that line's quantity and re-derives its line total from the existing line's
// unit price; no match appends a new line. The grand total is recomputed
// either way.
func (c *Cart) Add(in ItemInput) {
	incoming := NewLineItem(in)
	for i := range c.Items {
		if c.Items[i].Matches(incoming) {
			c.Items[i].Quantity += incoming.Quantity
			c.Items[i].LineTotal = c.Items[i].UnitPrice * float64(c.Items[i].Quantity)
			c.Recompute()
			return
		}
	}
	c.Items = append(c.Items, incoming)
	c.Recompute()
}

// Remove deletes the line at index. Out-of-range indexes are a silent no-op.
func (c *Cart) Remove(index int) {
	if index < 0 || index >= len(c.Items) {
		return
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	c.Recompute()
}

// SetQuantity sets the quantity of the line at index and re-derives its line
// total. No clamping is applied here; keeping quantities at or above 1 is the
// caller's responsibility. Out-of-range indexes are a silent no-op.
func (c *Cart) SetQuantity(index, qty int) {
	if index < 0 || index >= len(c.Items) {
		return
	}
	c.Items[index].Quantity = qty
	c.Items[index].LineTotal = c.Items[index].UnitPrice * float64(qty)
	c.Recompute()
}

// Clear resets the cart to empty. Idempotent.
func (c *Cart) Clear() {
	c.Items = []LineItem{}
	c.GrandTotal = 0
}

// Recompute re-derives GrandTotal from the current line totals.
func (c *Cart) Recompute() {
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal
	}
	c.GrandTotal = total
}

// Len returns the number of lines in the cart.
func (c *Cart) Len() int {
	return len(c.Items)
}

// Clone returns a deep copy of the cart, safe to hand to consumers that must
// not observe later mutations.
func (c *Cart) Clone() Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items, GrandTotal: c.GrandTotal}
}
