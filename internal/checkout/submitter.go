// Package checkout submits a cart snapshot to the remote order endpoint,
// falling back to the local order log so an order is never lost client-side.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// ShoppingType selects which order endpoint path a submission targets.
type ShoppingType string

const (
	ShoppingBooks    ShoppingType = "books"
	ShoppingProducts ShoppingType = "products"
)

// Endpoint paths appended to the configured base URL.
const (
	bookOrdersPath    = "/api/book-orders"
	productOrdersPath = "/api/product-orders"
)

// Source says where a completed submission ended up.
type Source string

const (
	// SourceServer means the remote endpoint accepted the order.
	SourceServer Source = "server"
	// SourceLocal means the order was appended to the local order log,
	// either because no endpoint is configured or because the remote call
	// failed.
	SourceLocal Source = "local"
)

// defaultTimeout bounds a single submission attempt.
const defaultTimeout = 30 * time.Second

// Config holds submission parameters. An empty BaseURL means no endpoint is
// configured and every order goes straight to the local log.
type Config struct {
	BaseURL     string
	BearerToken string
	PageID      string
	Type        ShoppingType
	Timeout     time.Duration
}

// Result reports a completed submission. Order is always the locally
// assembled record; ServerResponse is non-nil only when Source is
// SourceServer and the endpoint returned a decodable JSON body.
type Result struct {
	Source         Source
	Order          *types.Order
	ServerResponse map[string]any
}

// Submitter performs one-shot order submissions. A single attempt is made per
// Submit call; there is no retry loop.
type Submitter struct {
	cfg    Config
	orders types.OrderLog
	client *http.Client
	log    *zap.Logger
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Submitter) {
		s.client = client
	}
}

// WithLogger sets the logger used for fallback and transport diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(s *Submitter) {
		s.log = log
	}
}

// New returns a Submitter writing fallback orders to the given log.
func New(cfg Config, orders types.OrderLog, opts ...Option) *Submitter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	s := &Submitter{
		cfg:    cfg,
		orders: orders,
		client: &http.Client{Timeout: timeout},
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates the customer, assembles an order from the snapshot, and
// delivers it: to the remote endpoint when one is configured, to the local
// order log otherwise or when the remote call fails. Validation failures
// return an error with no side effects; after validation the submission
// always completes with a Result, never an error, so no order is lost.
func (s *Submitter) Submit(ctx context.Context, snapshot types.Cart, customer types.Customer) (*Result, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	order := types.NewOrder(s.cfg.PageID, snapshot, customer)

	if s.cfg.BaseURL == "" {
		return s.fallback(order, nil)
	}

	resp, err := s.post(ctx, order)
	if err != nil {
		return s.fallback(order, err)
	}
	return &Result{Source: SourceServer, Order: order, ServerResponse: resp}, nil
}

// post performs the multipart form submission and decodes the response body.
// Any transport error or non-2xx status is returned as an error.
func (s *Submitter) post(ctx context.Context, order *types.Order) (map[string]any, error) {
	body, contentType, err := encodeOrderForm(order)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.submitURL(), body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if s.cfg.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.BearerToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("order endpoint returned %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		// The server accepted the order; an unreadable body is not a
		// reason to duplicate it into the local log.
		s.log.Warn("order response body unreadable", zap.Error(err))
		return nil, nil
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, nil
	}
	return decoded, nil
}

// fallback appends the order to the local log and reports completion. A
// failing log append is itself logged and swallowed; the Result still carries
// the assembled order so the caller can proceed.
func (s *Submitter) fallback(order *types.Order, cause error) (*Result, error) {
	if cause != nil {
		s.log.Warn("remote submission failed, logging order locally",
			zap.String("order", order.OrderID), zap.Error(cause))
	}
	if err := s.orders.AppendOrder(order); err != nil {
		s.log.Error("local order log append failed",
			zap.String("order", order.OrderID), zap.Error(err))
	}
	return &Result{Source: SourceLocal, Order: order}, nil
}

// submitURL joins the base URL with the path for the configured shopping type.
func (s *Submitter) submitURL() string {
	base := strings.TrimRight(s.cfg.BaseURL, "/")
	if s.cfg.Type == ShoppingBooks {
		return base + bookOrdersPath
	}
	return base + productOrdersPath
}

// encodeOrderForm renders the order as the multipart form the endpoint
// expects: flat customer fields, the stringified grand total, and the item
// list as a JSON-encoded field.
func encodeOrderForm(order *types.Order) (*bytes.Buffer, string, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, "", fmt.Errorf("encoding order items: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"pageId":          order.PageID,
		"customerName":    order.Customer.Name,
		"customerPhone":   order.Customer.Phone,
		"customerEmail":   order.Customer.Email,
		"customerAddress": order.Customer.Address,
		"orderGrandTotal": strconv.FormatFloat(order.GrandTotal, 'f', -1, 64),
		"orderItems":      string(items),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
