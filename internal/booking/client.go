package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultUA = "littlelemon-tablebook/1.0"

// Client talks to a remote booking API over HTTP.
type Client struct {
	http *http.Client
	base string
	ua   string
}

func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		http: hc,
		base: strings.TrimRight(baseURL, "/"),
		ua:   defaultUA,
	}
}

// ListAvailableTimes fetches slots for date. A payload that is not a list of
// strings is read as "no slots" rather than an error.
func (c *Client) ListAvailableTimes(ctx context.Context, date time.Time) ([]string, error) {
	q := url.Values{}
	q.Set("date", date.Format(DateLayout))
	body, status, err := c.do(ctx, http.MethodGet, "/api/slots?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("booking availability http %d: %s", status, strings.TrimSpace(string(body)))
	}

	var parsed struct {
		Slots json.RawMessage `json:"slots"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return []string{}, nil
	}
	var items []any
	if err := json.Unmarshal(parsed.Slots, &items); err != nil {
		return []string{}, nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return Sanitize(out), nil
}

func (c *Client) SubmitReservation(ctx context.Context, r Reservation) (bool, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return false, err
	}
	body, status, err := c.do(ctx, http.MethodPost, "/api/bookings", b)
	if err != nil {
		return false, err
	}
	switch {
	case status == http.StatusConflict || status == http.StatusUnprocessableEntity:
		return false, fmt.Errorf("%w: %s", ErrSubmitRejected, strings.TrimSpace(string(body)))
	case status < 200 || status >= 300:
		return false, fmt.Errorf("booking submit http %d: %s", status, strings.TrimSpace(string(body)))
	}

	var parsed struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return false, fmt.Errorf("booking parse submit response: %w", err)
	}
	return parsed.OK, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, int, error) {
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("user-agent", c.ua)
	req.Header.Set("accept", "application/json")
	if payload != nil {
		req.Header.Set("content-type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, res.StatusCode, err
	}
	return body, res.StatusCode, nil
}
