package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openretail/pos-api-server/internal/domains/sales/adapters/http/mapper"
	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
	"github.com/openretail/pos-api-server/internal/domains/sales/ports"
)

var _ ports.Repository = (*Client)(nil)

// Client is the REST mode of the dual-mode persistence layer: orders
// live behind a remote API and this adapter speaks its JSON envelope.
type Client struct {
	baseURL string
	http    *http.Client
}

// envelope is the remote API's uniform response wrapper.
type envelope struct {
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	TotalCount int64           `json:"totalCount"`
}

type sequencePayload struct {
	ID    string `json:"id,omitempty"`
	Value string `json:"value"`
}

// NewClient instantiates the remote orders client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("orders API base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}, nil
}

func (c *Client) CreateOrder(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if cart == nil {
		return nil, errors.New("cart is nil")
	}
	var order mapper.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", nil, mapper.FromDomainOrder(cart), &order); err != nil {
		return nil, err
	}
	return mapper.ToDomainOrder(order), nil
}

func (c *Client) UpdateOrder(ctx context.Context, id string, cart *domain.Cart) (*domain.Cart, error) {
	if cart == nil {
		return nil, errors.New("cart is nil")
	}
	var order mapper.Order
	path := "/api/orders/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPatch, path, nil, mapper.FromDomainOrder(cart), &order); err != nil {
		return nil, err
	}
	return mapper.ToDomainOrder(order), nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*domain.Cart, error) {
	var order mapper.Order
	path := "/api/orders/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &order); err != nil {
		return nil, err
	}
	return mapper.ToDomainOrder(order), nil
}

func (c *Client) ListOrders(ctx context.Context, filter domain.Filter) (*ports.OrderPage, error) {
	var orders []mapper.Order
	total, err := c.doList(ctx, "/api/orders", mapper.FilterToQuery(filter), &orders)
	if err != nil {
		return nil, err
	}
	items := make([]*domain.Cart, 0, len(orders))
	for i := range orders {
		items = append(items, mapper.ToDomainOrder(orders[i]))
	}
	return &ports.OrderPage{Items: items, TotalCount: total}, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	path := "/api/orders/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) LoadSequence(ctx context.Context) (*domain.OrderSequence, error) {
	var payload sequencePayload
	if err := c.do(ctx, http.MethodGet, "/api/orders/sequence", nil, nil, &payload); err != nil {
		return nil, err
	}
	return &domain.OrderSequence{ID: payload.ID, Value: payload.Value}, nil
}

func (c *Client) SaveSequence(ctx context.Context, seq *domain.OrderSequence) (*domain.OrderSequence, error) {
	if seq == nil {
		return nil, errors.New("sequence is nil")
	}
	var payload sequencePayload
	body := sequencePayload{ID: seq.ID, Value: seq.Value}
	if err := c.do(ctx, http.MethodPut, "/api/orders/sequence", nil, body, &payload); err != nil {
		return nil, err
	}
	return &domain.OrderSequence{ID: payload.ID, Value: payload.Value}, nil
}

// do performs one request/response cycle against the remote API,
// decoding the envelope's data field into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	env, err := c.roundTrip(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode orders API response: %w", err)
	}
	return nil
}

func (c *Client) doList(ctx context.Context, path string, query url.Values, out any) (int64, error) {
	env, err := c.roundTrip(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return 0, err
	}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return 0, fmt.Errorf("decode orders API response: %w", err)
		}
	}
	return env.TotalCount, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, in any) (*envelope, error) {
	if c == nil || c.http == nil {
		return nil, errors.New("orders API client not configured")
	}
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode orders API request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call orders API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ports.ErrNotFound
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read orders API response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("orders API returned %s: %s", resp.Status, truncate(raw))
	}
	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("decode orders API envelope: %w", err)
		}
		if !env.Success && env.Message != "" {
			return nil, fmt.Errorf("orders API rejected request: %s", env.Message)
		}
	}
	return &env, nil
}

func truncate(raw []byte) string {
	const max = 256
	s := strings.TrimSpace(string(raw))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
