// Package payment is the typed client for the provider's checkout-session
// API. The provider owns session truth; we only create sessions and read
// snapshots back by id.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ShahriarRefat0/Book2Door-server/internal/errs"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/circuit_breaker"
)

type Config struct {
	BaseURL    string        `envconfig:"STRIPE_API_URL" default:"https://api.stripe.com"`
	SecretKey  string        `envconfig:"STRIPE_SECRET_KEY"`
	SuccessURL string        `envconfig:"CHECKOUT_SUCCESS_URL"`
	CancelURL  string        `envconfig:"CHECKOUT_CANCEL_URL"`
	Timeout    time.Duration `envconfig:"STRIPE_TIMEOUT" default:"30s"`
}

// Session is the provider-side snapshot of an attempted purchase.
type Session struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	Status        string            `json:"status"`         // open | complete | expired
	PaymentStatus string            `json:"payment_status"` // unpaid | paid
	PaymentIntent string            `json:"payment_intent"`
	AmountTotal   int64             `json:"amount_total"`
	Metadata      map[string]string `json:"metadata"`
}

const StatusPaid = "paid"

type SessionItem struct {
	Name       string
	Author     string
	ImageURL   string
	UnitAmount int64 // cents
	Quantity   int64
}

type SessionMetadata struct {
	OrderID       string
	BookID        string
	CustomerEmail string
}

type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type Client struct {
	log    *zap.Logger
	client *http.Client
	cfg    Config
	cb     circuit_breaker.CircuitBreaker
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	return &Client{
		log:    log.Named("stripe"),
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		cb:     circuit_breaker.New(20, 30*time.Second, 0.5, 3),
	}
}

// CreateSession registers a single line-item checkout session with the
// provider and returns it, url included.
func (c *Client) CreateSession(ctx context.Context, item SessionItem, customerEmail string, md SessionMetadata) (Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("customer_email", customerEmail)
	form.Set("success_url", c.cfg.SuccessURL)
	form.Set("cancel_url", c.cfg.CancelURL)
	form.Set("line_items[0][quantity]", strconv.FormatInt(item.Quantity, 10))
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
	form.Set("line_items[0][price_data][product_data][name]", item.Name)
	if item.Author != "" {
		form.Set("line_items[0][price_data][product_data][description]", item.Author)
	}
	if item.ImageURL != "" {
		form.Set("line_items[0][price_data][product_data][images][0]", item.ImageURL)
	}
	form.Set("metadata[bookId]", md.BookID)
	form.Set("metadata[customerEmail]", md.CustomerEmail)
	if md.OrderID != "" {
		form.Set("metadata[orderId]", md.OrderID)
	}

	var session Session
	err := c.cb.Call(func() error {
		return c.do(ctx, http.MethodPost, "/v1/checkout/sessions", strings.NewReader(form.Encode()), &session)
	})
	if err != nil {
		return Session{}, err
	}
	return session, nil
}

// RetrieveSession fetches the session snapshot by its opaque id.
func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (Session, error) {
	var session Session
	err := c.cb.Call(func() error {
		return c.do(ctx, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(sessionID), nil, &session)
	})
	if err != nil {
		return Session{}, err
	}
	return session, nil
}

func (c *Client) do(ctx context.Context, method, path string, body *strings.Reader, out any) error {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, http.NoBody)
	}
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(errs.ErrGateway, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errs.ErrSessionNotFound
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			c.log.Error("stripe api", zap.Int("status", resp.StatusCode), zap.String("message", apiErr.Error.Message))
			return errors.Wrapf(errs.ErrGateway, "%s: %s", apiErr.Error.Type, apiErr.Error.Message)
		}
		return errors.Wrap(errs.ErrGateway, fmt.Sprintf("status %d", resp.StatusCode))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
