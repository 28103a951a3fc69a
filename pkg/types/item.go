package types

import "math"

// DefaultTitle is substituted for a blank or whitespace-only item title.
const DefaultTitle = "Untitled"

// LineItem is one entry in a cart: a product or title, its unit price, the
// quantity selected, and the line's computed subtotal.
//
// LineTotal is normally UnitPrice * Quantity, but a caller may supply its own
// value at insert time (discounted bundles arrive this way). It is only
// re-derived when the quantity changes afterwards.
type LineItem struct {
	ID        string  `json:"id,omitempty"` // opaque catalog identifier; empty for title-keyed items
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
}

// ItemInput is the loosely-typed add payload accepted at the store boundary.
// All fields are optional; NewLineItem coerces them to a valid LineItem.
// LineTotal is a pointer so "not supplied" is distinguishable from zero.
type ItemInput struct {
	ID        string
	Title     string
	UnitPrice float64
	Quantity  int
	LineTotal *float64
}

// NormalizeTitle maps a blank title to DefaultTitle. Leading and trailing
// whitespace alone does not count as a title.
func NormalizeTitle(title string) string {
	if isBlank(title) {
		return DefaultTitle
	}
	return title
}

// NormalizePrice maps NaN, infinite, and negative prices to 0.
func NormalizePrice(price float64) float64 {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0
	}
	return price
}

// NormalizeQuantity maps non-positive quantities to 1.
func NormalizeQuantity(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

// NewLineItem builds a valid LineItem from an untrusted input payload.
// Malformed values are coerced, never rejected: blank titles become
// DefaultTitle, negative prices become 0, non-positive quantities become 1.
// A supplied LineTotal is taken as-is; otherwise it is derived as
// UnitPrice * Quantity.
func NewLineItem(in ItemInput) LineItem {
	item := LineItem{
		ID:        in.ID,
		Title:     NormalizeTitle(in.Title),
		UnitPrice: NormalizePrice(in.UnitPrice),
		Quantity:  NormalizeQuantity(in.Quantity),
	}
	if in.LineTotal != nil {
		item.LineTotal = NormalizePrice(*in.LineTotal)
	} else {
		item.LineTotal = item.UnitPrice * float64(item.Quantity)
	}
	return item
}

// Matches reports whether an incoming item should merge into this line.
// Lines with an ID merge only on an identical ID; legacy lines without one
// fall back to matching on the (title, unit price) pair.
func (li LineItem) Matches(other LineItem) bool {
	if li.ID != "" || other.ID != "" {
		return li.ID == other.ID
	}
	return li.Title == other.Title && li.UnitPrice == other.UnitPrice
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
