// Shared helpers for satchel CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mesh-intelligence/satchel/internal/checkout"
	"github.com/mesh-intelligence/satchel/internal/jsonstore"
	"github.com/mesh-intelligence/satchel/internal/paths"
	"github.com/mesh-intelligence/satchel/internal/sqlitestore"
	"github.com/mesh-intelligence/satchel/pkg/store"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// repository bundles the two persistence interfaces a command needs plus the
// close function for the underlying backend.
type repository struct {
	carts  types.CartRepository
	orders types.OrderLog
	close  func() error
}

// openRepository resolves the data directory and opens the configured
// backend. The caller must defer r.close().
func openRepository() (*repository, error) {
	dataDir, err := paths.ResolveDataDir(flagDataDir, configDataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{Backend: configBackend, DataDir: dataDir}
	if cfg.Backend == "" {
		cfg.Backend = types.BackendJSON
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.Backend {
	case types.BackendSQLite:
		backend := sqlitestore.NewBackend()
		if err := backend.Attach(cfg); err != nil {
			return nil, fmt.Errorf("attach backend: %w", err)
		}
		return &repository{carts: backend, orders: backend, close: backend.Detach}, nil
	default:
		js, err := jsonstore.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
		return &repository{carts: js, orders: js, close: func() error { return nil }}, nil
	}
}

// openStore opens the repository and hydrates the cart store for the current
// page.
func openStore() (*store.Store, *repository, error) {
	repo, err := openRepository()
	if err != nil {
		return nil, nil, err
	}
	s := store.New(flagPage, repo.carts, store.WithLogger(logger))
	return s, repo, nil
}

// newSubmitter builds a checkout submitter from the loaded configuration.
func newSubmitter(orders types.OrderLog) *checkout.Submitter {
	shopping := checkout.ShoppingProducts
	if configShopping == string(checkout.ShoppingBooks) {
		shopping = checkout.ShoppingBooks
	}
	return checkout.New(checkout.Config{
		BaseURL:     configEndpoint,
		BearerToken: configToken,
		PageID:      flagPage,
		Type:        shopping,
	}, orders, checkout.WithLogger(logger))
}

// printCart renders a cart as text or JSON depending on --json.
func printCart(cart types.Cart) {
	if flagJSON {
		printJSON(cart)
		return
	}
	if len(cart.Items) == 0 {
		fmt.Println("Cart is empty")
		return
	}
	for i, item := range cart.Items {
		id := item.ID
		if id == "" {
			id = "-"
		}
		fmt.Printf("%3d  %-30s  %10.2f  x%-4d  %10.2f  [%s]\n",
			i, item.Title, item.UnitPrice, item.Quantity, item.LineTotal, id)
	}
	fmt.Printf("Grand total: %.2f\n", cart.GrandTotal)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, "encode output:", err)
	}
}
