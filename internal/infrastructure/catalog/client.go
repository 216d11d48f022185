package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/stylefinder/backend/internal/domain"
	"golang.org/x/time/rate"
)

const maxRetries = 3

// Client is the HTTP product source. It fans a SearchSpec's terms out to the
// catalog search endpoint and aggregates the ranked candidates.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new catalog API client
func NewClient(apiKey, baseURL string) *Client {
	// The catalog allows 1000 requests per hour: 1000/3600 ≈ 0.278 req/sec
	limiter := rate.NewLimiter(rate.Limit(0.278), 10) // burst of 10 requests

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug toggles request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SetRateBudget adjusts the limiter to a configured hourly request budget.
func (c *Client) SetRateBudget(perHour int) {
	if perHour <= 0 {
		return
	}
	c.rateLimiter = rate.NewLimiter(rate.Limit(float64(perHour)/3600.0), 10)
}

// Search runs every term in the spec against the catalog and returns the
// aggregated candidates in term order, deduplicated by product ID. The
// source's per-term ranking is preserved. A term that keeps failing is
// skipped; Search only errors when no term produced a response at all.
func (c *Client) Search(ctx context.Context, spec domain.SearchSpec) ([]domain.Product, error) {
	if len(spec.Terms) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	var (
		products []domain.Product
		seen     = make(map[string]bool)
		answered bool
		lastErr  error
	)

	for _, term := range spec.Terms {
		page, err := c.searchTerm(ctx, term)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		answered = true
		for _, p := range page {
			if p.ID == "" || seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			products = append(products, p)
		}
	}

	if !answered {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, lastErr)
	}
	return products, nil
}

// searchTerm issues one rate-limited, retried catalog request.
func (c *Client) searchTerm(ctx context.Context, term string) ([]domain.Product, error) {
	endpoint := fmt.Sprintf("%s/v1/products/search", c.baseURL)
	params := url.Values{}
	params.Add("query", term)
	params.Add("api_key", c.apiKey)
	params.Add("pageSize", "10")

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[CATALOG] request error (attempt %d) for %q: %v", attempt, term, err)
			}
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			// No candidates for this term; not a transport failure.
			return nil, nil
		}
		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[CATALOG] status %d (attempt %d) for %q: %s", resp.StatusCode, attempt, term, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var searchResp searchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		if c.debug {
			log.Printf("[CATALOG] %d products for %q", len(searchResp.Products), term)
		}
		return mapProducts(searchResp.Products), nil
	}

	return nil, lastErr
}

// doRequest executes an HTTP GET request with proper headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "StyleFinder/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return resp, nil
}

// exponentialBackoff doubles the delay per attempt: 500ms, 1s, 2s
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500<<(attempt-1)) * time.Millisecond
}
