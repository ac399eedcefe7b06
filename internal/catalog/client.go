package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("catalog product not found")
	ErrBadStatus   = errors.New("catalog bad status")
	ErrUnavailable = errors.New("catalog unavailable")
)

type Client struct {
	BaseURL string
	Client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *Client) List(ctx context.Context) ([]Product, error) {
	resp, err := c.do(ctx, http.MethodGet, basePath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, badStatus(resp)
	}

	var out []Product
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (Product, error) {
	resp, err := c.do(ctx, http.MethodGet, ProductPath(id), nil)
	if err != nil {
		return Product{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Product{}, ErrNotFound
	default:
		return Product{}, badStatus(resp)
	}

	var p Product
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Product{}, fmt.Errorf("decode product %d: %w", id, err)
	}
	return p, nil
}

// Create posts p and returns the stored product along with the Location
// header the service answered with.
func (c *Client) Create(ctx context.Context, p Product) (Product, string, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return Product{}, "", err
	}

	resp, err := c.do(ctx, http.MethodPost, basePath, body)
	if err != nil {
		return Product{}, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return Product{}, "", badStatus(resp)
	}

	var created Product
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return Product{}, "", fmt.Errorf("decode created product: %w", err)
	}
	return created, resp.Header.Get("Location"), nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

func badStatus(resp *http.Response) error {
	_, _ = io.Copy(io.Discard, resp.Body)
	return fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
}
