// Package upstream забирает JSON-массив сырых покупок с удалённого URL.
package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// ErrUpstreamFetch: сетевая ошибка, не-2xx ответ или тело не JSON-массив.
var ErrUpstreamFetch = errors.New("upstream fetch failed")

// maxErrorBodySize ограничивает чтение тела ошибки для логов
const maxErrorBodySize = 4 * 1024

// RawPurchase: запись в формате источника. Не валидируется.
type RawPurchase struct {
	ProductName      string `json:"product_name"`
	Name             string `json:"name"`
	PurchaseQuantity int64  `json:"purchase_quantity"`
	ProductPrice     string `json:"product_price"`
}

// Client делает один GET без ретраев и пагинации.
type Client struct {
	url  string
	http *http.Client
}

// NewClient: timeout <= 0 означает таймаут http.Client по умолчанию (без лимита).
func NewClient(url string, timeout time.Duration) *Client {
	hc := &http.Client{}
	if timeout > 0 {
		hc.Timeout = timeout
	}
	return &Client{url: url, http: hc}
}

func (c *Client) URL() string { return c.url }

// Fetch возвращает разобранный массив. Все ошибки оборачивают ErrUpstreamFetch.
func (c *Client) Fetch(ctx context.Context) ([]RawPurchase, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUpstreamFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstreamFetch, resp.StatusCode, readBodyForError(resp.Body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUpstreamFetch, err)
	}
	return decode(body)
}

func decode(body []byte) ([]RawPurchase, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: response is not a JSON array", ErrUpstreamFetch)
	}
	var out []RawPurchase
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrUpstreamFetch, err)
	}
	if out == nil {
		out = []RawPurchase{}
	}
	return out, nil
}

func readBodyForError(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	return string(b)
}
