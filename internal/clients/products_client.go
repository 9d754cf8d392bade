// internal/clients/products_client.go
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"prodview/internal/catalog"
)

// APIError is a non-2xx answer from the products service. It is always
// recoverable: the caller keeps the draft and may retry by hand.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("products api: status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("products api: status %d", e.Status)
}

// UpdateRequest carries the mutable fields of an edit.
type UpdateRequest struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// CreateRequest is the payload for a new product. The service assigns
// the id and resolves CategoryID into a category reference.
type CreateRequest struct {
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	CategoryID  int64    `json:"categoryId"`
	Images      []string `json:"images"`
}

// ProductsClient talks to the remote products REST service. Requests
// pass a local rate limiter and a circuit breaker; the breaker fails
// fast when the upstream is down but never retries on its own.
type ProductsClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	tracer  trace.Tracer
}

// NewProductsClient builds a client for the given base URL, e.g.
// "https://api.escuelajs.co/api/v1".
func NewProductsClient(baseURL string) *ProductsClient {
	return &ProductsClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(5), 5),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "products-api",
			Timeout: 30 * time.Second,
		}),
		tracer: otel.Tracer("prodview/clients"),
	}
}

// Update replaces the mutable fields of the product with the given id
// and returns the canonical record the service answered with.
func (c *ProductsClient) Update(ctx context.Context, id int64, req UpdateRequest) (*catalog.Product, error) {
	ctx, span := c.tracer.Start(ctx, "products.update",
		trace.WithAttributes(attribute.Int64("product.id", id)),
	)
	defer span.End()

	p, err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/products/%d", c.baseURL, id), req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return p, nil
}

// Create submits a new product and returns the server record including
// its generated id.
func (c *ProductsClient) Create(ctx context.Context, req CreateRequest) (*catalog.Product, error) {
	ctx, span := c.tracer.Start(ctx, "products.create",
		trace.WithAttributes(attribute.String("product.title", req.Title)),
	)
	defer span.End()

	p, err := c.do(ctx, http.MethodPost, c.baseURL+"/products", req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return p, nil
}

func (c *ProductsClient) do(ctx context.Context, method, url string, payload any) (*catalog.Product, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, &APIError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
		}

		var p catalog.Product
		if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return &p, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*catalog.Product), nil
}
