// Package types defines the cart, order, and customer entity types, the
// repository interfaces for backend-agnostic persistence, and the standard
// error values used across the Satchel storage system.
package types
