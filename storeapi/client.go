// Package storeapi is the HTTP client for the external store REST API that
// owns all persistence: trailers, components, orders, auth and users.
package storeapi

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

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
)

// APIError carries the store API's own message for a non-2xx response, so
// handlers can surface exactly what the server said.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("store api: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is the API telling us the resource does
// not exist, which pages render as their not-found state.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to one store API deployment. The zero token means anonymous;
// WithToken derives a per-session authenticated client.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// WithToken returns a copy of the client carrying the bearer token on every
// request.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("store api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode store api response: %w", err)
	}
	return nil
}

// errorMessage pulls the server's {"message": ...} text, falling back to the
// raw body and finally to a generic string.
func errorMessage(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 4096))
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return "request failed"
}

// ── Trailers ────────────────────────────────────────────────────────────────

func (c *Client) FetchTrailers(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	return out, c.do(ctx, http.MethodGet, "/trailers", nil, &out)
}

func (c *Client) FetchTrailerByID(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodGet, "/trailers/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchTrailerBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodGet, "/trailers/slug/"+url.PathEscape(slug), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTrailer(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPost, "/trailers", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTrailer(ctx context.Context, id string, req models.ProductRequest) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPut, "/trailers/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTrailer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/trailers/"+url.PathEscape(id), nil, nil)
}

// ── Components ──────────────────────────────────────────────────────────────

func (c *Client) FetchComponents(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	return out, c.do(ctx, http.MethodGet, "/components", nil, &out)
}

func (c *Client) FetchComponentByID(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodGet, "/components/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateComponent(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPost, "/components", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateComponent(ctx context.Context, id string, req models.ProductRequest) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPut, "/components/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteComponent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/components/"+url.PathEscape(id), nil, nil)
}

// ── Orders ──────────────────────────────────────────────────────────────────

func (c *Client) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var out models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchAllOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	return out, c.do(ctx, http.MethodGet, "/orders", nil, &out)
}

func (c *Client) FetchMyOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	return out, c.do(ctx, http.MethodGet, "/orders/my-orders", nil, &out)
}

func (c *Client) FetchOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var out models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	var out models.Order
	req := models.UpdateOrderStatusRequest{Status: status}
	if err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/status", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+url.PathEscape(id), nil, nil)
}

// ── Auth ────────────────────────────────────────────────────────────────────

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, "/auth/me/profile", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePassword(ctx context.Context, req models.UpdatePasswordRequest) error {
	return c.do(ctx, http.MethodPut, "/auth/me/password", req, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", req, nil)
}

// ── Users (admin) ───────────────────────────────────────────────────────────

func (c *Client) FetchUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	return out, c.do(ctx, http.MethodGet, "/users", nil, &out)
}

func (c *Client) FetchUserByID(ctx context.Context, id string) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}
