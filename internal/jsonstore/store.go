package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// File names within the data directory. Carts are one file per page; the
// order log is a single JSONL file shared by all pages.
const (
	cartFilePrefix = "StoredCart_"
	cartFileSuffix = ".json"
	orderLogFile   = "StoredOrder.jsonl"
)

// Store implements types.CartRepository and types.OrderLog on top of plain
// JSON files in a data directory. It is the default backend.
type Store struct {
	dataDir string
}

// New creates the data directory if needed and returns a Store rooted there.
func New(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &Store{dataDir: dataDir}, nil
}

// cartPath returns the cart file path for a page. Path separators in the page
// identifier are flattened so a page id cannot escape the data directory.
func (s *Store) cartPath(pageID string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(pageID)
	return filepath.Join(s.dataDir, cartFilePrefix+safe+cartFileSuffix)
}

// SaveCart overwrites the stored cart for the page atomically.
func (s *Store) SaveCart(pageID string, cart *types.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	return writeFileAtomic(s.cartPath(pageID), data)
}

// LoadCart reads and decodes the stored cart for the page. A missing file or
// an unparseable blob yields an empty cart, not an error; stale numeric
// fields stored as strings by older clients are coerced. A zero or absent
// grand total with items present is recomputed from the lines rather than
// trusted.
func (s *Store) LoadCart(pageID string) (*types.Cart, error) {
	data, err := os.ReadFile(s.cartPath(pageID))
	if err != nil {
		if os.IsNotExist(err) {
			return types.NewCart(), nil
		}
		return nil, fmt.Errorf("reading cart file: %w", err)
	}

	var stored storedCart
	if err := json.Unmarshal(data, &stored); err != nil {
		return types.NewCart(), nil
	}

	cart := stored.toCart()
	if cart.GrandTotal == 0 && len(cart.Items) > 0 {
		cart.Recompute()
	}
	return cart, nil
}

// AppendOrder appends one order record to the local order log.
func (s *Store) AppendOrder(order *types.Order) error {
	rec, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encoding order: %w", err)
	}

	path := filepath.Join(s.dataDir, orderLogFile)
	records, err := readJSONL(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	records = append(records, rec)
	return writeJSONL(path, records)
}

// ListOrders returns every parseable order in the local log, oldest first.
func (s *Store) ListOrders() ([]*types.Order, error) {
	path := filepath.Join(s.dataDir, orderLogFile)
	records, err := readJSONL(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	orders := make([]*types.Order, 0, len(records))
	for _, rec := range records {
		var o types.Order
		if err := json.Unmarshal(rec, &o); err != nil {
			continue
		}
		orders = append(orders, &o)
	}
	return orders, nil
}

// storedCart mirrors types.Cart with tolerant field decoding. Older clients
// persisted numbers as strings; flexFloat and flexInt accept either form.
type storedCart struct {
	Items      []storedItem `json:"items"`
	GrandTotal flexFloat    `json:"grandTotal"`
}

type storedItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	UnitPrice flexFloat `json:"unitPrice"`
	Quantity  flexInt   `json:"quantity"`
	LineTotal flexFloat `json:"lineTotal"`
}

func (sc storedCart) toCart() *types.Cart {
	cart := types.NewCart()
	for _, si := range sc.Items {
		cart.Items = append(cart.Items, types.LineItem{
			ID:        si.ID,
			Title:     types.NormalizeTitle(si.Title),
			UnitPrice: types.NormalizePrice(float64(si.UnitPrice)),
			Quantity:  int(si.Quantity),
			LineTotal: types.NormalizePrice(float64(si.LineTotal)),
		})
	}
	cart.GrandTotal = float64(sc.GrandTotal)
	return cart
}

// flexFloat decodes a JSON number, a numeric string, or anything else as a
// float64, defaulting to 0 for unparseable values.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = flexFloat(n)
			return nil
		}
	}
	*f = 0
	return nil
}

// flexInt decodes a JSON number (truncated), a numeric string, or anything
// else as an int, defaulting to 0 for unparseable values.
type flexInt int

func (i *flexInt) UnmarshalJSON(data []byte) error {
	var f flexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*i = flexInt(f)
	return nil
}
