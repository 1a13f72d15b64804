package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"tv-gateway/internal/exchange"
	"tv-gateway/internal/types"
)

// Client talks to an Alpaca-style trading REST API using a key/secret pair.
type Client struct {
	baseURL   string
	keyID     string
	secretKey string
	httpc     *http.Client
}

func NewClient(baseURL, keyID, secretKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		keyID:     keyID,
		secretKey: secretKey,
		httpc:     &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetClock(ctx context.Context) (Clock, error) {
	var cl Clock
	err := c.do(ctx, http.MethodGet, "/v2/clock", nil, nil, &cl)
	return cl, err
}

func (c *Client) GetAccount(ctx context.Context) (Account, error) {
	var acc Account
	err := c.do(ctx, http.MethodGet, "/v2/account", nil, nil, &acc)
	return acc, err
}

func (c *Client) ListActiveAssets(ctx context.Context, ex exchange.Exchange) ([]Asset, error) {
	q := url.Values{}
	q.Set("status", "active")
	q.Set("exchange", ex.Wire())
	var assets []Asset
	err := c.do(ctx, http.MethodGet, "/v2/assets", q, nil, &assets)
	return assets, err
}

func (c *Client) GetAsset(ctx context.Context, symbol string) (Asset, error) {
	var a Asset
	err := c.do(ctx, http.MethodGet, "/v2/assets/"+url.PathEscape(symbol), nil, nil, &a)
	return a, err
}

type orderTicket struct {
	Symbol      string `json:"symbol"`
	Qty         string `json:"qty"`
	Side        string `json:"side"`
	Type        string `json:"type"`
	TimeInForce string `json:"time_in_force"`
}

func (c *Client) SubmitMarketOrder(ctx context.Context, symbol string, qty int64, side types.OrderSide) (Order, error) {
	ticket := orderTicket{
		Symbol:      symbol,
		Qty:         strconv.FormatInt(qty, 10),
		Side:        string(side),
		Type:        "market",
		TimeInForce: "day",
	}
	var o Order
	err := c.do(ctx, http.MethodPost, "/v2/orders", nil, ticket, &o)
	return o, err
}

func (c *Client) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	var o Order
	err := c.do(ctx, http.MethodGet, "/v2/orders/"+id.String(), nil, nil, &o)
	return o, err
}

func (c *Client) CancelOrder(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/v2/orders/"+id.String(), nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("APCA-API-KEY-ID", c.keyID)
	req.Header.Set("APCA-API-SECRET-KEY", c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return readAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func readAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	if apiErr.Message == "" {
		apiErr.Message = resp.Status
	}
	return apiErr
}
