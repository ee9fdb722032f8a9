package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog's authoritative record for one product id.
// It lives only for the duration of a validate call and is never stored.
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type validateReq struct {
	IDs []string `json:"ids"`
}

type validateResp struct {
	Code int       `json:"code"`
	Msg  string    `json:"msg"`
	Data []Product `json:"data"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Validate asks the product service for the authoritative records of the
// given ids. Ids the catalog does not know are absent from the result;
// the caller diffs requested against returned ids.
func (c *Client) Validate(ctx context.Context, ids []string) ([]Product, error) {
	body, err := json.Marshal(validateReq{IDs: ids})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/products/validate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("product service returned %d", resp.StatusCode)
	}
	var out validateResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Code != 0 {
		return nil, errors.New(out.Msg)
	}
	return out.Data, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}
