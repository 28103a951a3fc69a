package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Customer holds the checkout contact fields. All four are required; Validate
// rejects fields that are empty after trimming.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Validate checks that every customer field is non-empty after trimming.
// Returns ErrFieldRequired wrapped with the first missing field's name.
func (c Customer) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", c.Name},
		{"phone", c.Phone},
		{"email", c.Email},
		{"address", c.Address},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrFieldRequired, f.name)
		}
	}
	return nil
}

// OrderItem is the reduced line-item shape recorded on an order. The field
// names match the wire format the order endpoint expects.
type OrderItem struct {
	Title      string  `json:"Title"`
	Price      float64 `json:"Price"`
	Qty        int     `json:"Qty"`
	PriceTotal float64 `json:"PriceTotal"`
}

// Order is a submitted (or locally logged) order record.
type Order struct {
	OrderID    string      `json:"orderId"`
	PageID     string      `json:"pageId"`
	Customer   Customer    `json:"customer"`
	Items      []OrderItem `json:"items"`
	GrandTotal float64     `json:"grandTotal"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// NewOrderID returns a synthetic order identifier derived from the current
// wall clock, in milliseconds.
func NewOrderID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// NewOrder assembles an order record from a cart snapshot and validated
// customer fields. Line items are reduced to the wire shape; the snapshot's
// grand total is carried over unchanged.
func NewOrder(pageID string, snapshot Cart, customer Customer) *Order {
	items := make([]OrderItem, 0, len(snapshot.Items))
	for _, li := range snapshot.Items {
		items = append(items, OrderItem{
			Title:      li.Title,
			Price:      li.UnitPrice,
			Qty:        li.Quantity,
			PriceTotal: li.LineTotal,
		})
	}
	return &Order{
		OrderID:    NewOrderID(),
		PageID:     pageID,
		Customer:   customer,
		Items:      items,
		GrandTotal: snapshot.GrandTotal,
		CreatedAt:  time.Now(),
	}
}
