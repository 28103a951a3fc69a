package types

import "errors"

// CartRepository persists one cart per tenant page. SaveCart overwrites the
// stored cart for the page; LoadCart returns an empty cart (not an error)
// when nothing is stored or the stored blob cannot be parsed. Only genuine
// I/O failures surface as errors.
type CartRepository interface {
	SaveCart(pageID string, cart *Cart) error
	LoadCart(pageID string) (*Cart, error)
}

// OrderLog is an append-only record of orders kept on the local device, used
// as the fallback destination when remote submission fails or no endpoint is
// configured.
type OrderLog interface {
	AppendOrder(order *Order) error
	ListOrders() ([]*Order, error)
}

// Repository lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Validation errors.
var (
	ErrFieldRequired = errors.New("required field is empty")
)
