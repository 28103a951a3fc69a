// Package sqlitestore implements the SQLite storage backend for Satchel.
// It persists carts and the order log in a single database file and satisfies
// the same repository interfaces as the JSON backend, so the two are
// interchangeable behind types.Config.
package sqlitestore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// dbFileName is the database file created inside the data directory.
const dbFileName = "satchel.db"

// Backend implements types.CartRepository and types.OrderLog using SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewBackend creates a new SQLite backend instance. The backend is not
// attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens (or creates) the database under config.DataDir and applies the
// schema. Returns ErrAlreadyAttached if called while attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database. Idempotent: multiple calls succeed. After
// Detach, repository operations return ErrDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	b.attached = false
	if err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// SaveCart upserts the stored cart for the page. Line items are stored as a
// JSON column; the grand total is denormalized for inspection with plain SQL.
func (b *Backend) SaveCart(pageID string, cart *types.Cart) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrDetached
	}

	items, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	_, err = b.db.Exec(
		`INSERT INTO carts (page_id, items, grand_total, updated_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(page_id) DO UPDATE SET
             items = excluded.items,
             grand_total = excluded.grand_total,
             updated_at = excluded.updated_at`,
		pageID, string(items), cart.GrandTotal, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}

// LoadCart reads the stored cart for the page. A missing row or an
// unparseable items column yields an empty cart, matching the JSON backend's
// degrade-don't-fail policy.
func (b *Backend) LoadCart(pageID string) (*types.Cart, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}

	var itemsJSON string
	var grandTotal float64
	err := b.db.QueryRow(
		`SELECT items, grand_total FROM carts WHERE page_id = ?`, pageID,
	).Scan(&itemsJSON, &grandTotal)
	if err == sql.ErrNoRows {
		return types.NewCart(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}

	cart := types.NewCart()
	if err := json.Unmarshal([]byte(itemsJSON), &cart.Items); err != nil {
		return types.NewCart(), nil
	}
	cart.GrandTotal = grandTotal
	if cart.GrandTotal == 0 && len(cart.Items) > 0 {
		cart.Recompute()
	}
	return cart, nil
}

// AppendOrder inserts one order record. Each row gets its own UUID so
// duplicate fallback submissions of the same order id stay distinguishable.
func (b *Backend) AppendOrder(order *types.Order) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrDetached
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encoding order items: %w", err)
	}

	_, err = b.db.Exec(
		`INSERT INTO orders (row_id, order_id, page_id, customer_name, customer_phone,
             customer_email, customer_address, items, grand_total, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), order.OrderID, order.PageID,
		order.Customer.Name, order.Customer.Phone, order.Customer.Email, order.Customer.Address,
		string(items), order.GrandTotal, order.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("appending order: %w", err)
	}
	return nil
}

// ListOrders returns every logged order, oldest first.
func (b *Backend) ListOrders() ([]*types.Order, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}

	rows, err := b.db.Query(
		`SELECT order_id, page_id, customer_name, customer_phone, customer_email,
             customer_address, items, grand_total, created_at
         FROM orders ORDER BY created_at, row_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []*types.Order
	for rows.Next() {
		var o types.Order
		var itemsJSON, createdAt string
		if err := rows.Scan(
			&o.OrderID, &o.PageID,
			&o.Customer.Name, &o.Customer.Phone, &o.Customer.Email, &o.Customer.Address,
			&itemsJSON, &o.GrandTotal, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
			// Unreadable items column; keep the order header.
			o.Items = nil
		}
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			o.CreatedAt = ts
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}
	return orders, nil
}
