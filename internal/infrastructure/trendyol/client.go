package trendyol

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/mguzelocak/TrendyolApiPriceControl/internal/domain"
)

const maxAttempts = 3

// Client handles communication with the Trendyol seller integration API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	sellerID    string
	baseURL     string
	pageSize    int
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Trendyol API client
func NewClient(apiKey, sellerID, baseURL string, pageSize int) *Client {
	if pageSize <= 0 || pageSize > 200 {
		pageSize = 200 // Trendyol page size limit
	}

	// Trendyol throttles seller integrations; stay well under the limit
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		sellerID:    sellerID,
		baseURL:     baseURL,
		pageSize:    pageSize,
		rateLimiter: limiter,
	}
}

// SetDebug enables or disables debug logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the wait before the next retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// doRequest executes an HTTP request with authentication headers
func (c *Client) doRequest(ctx context.Context, method, reqURL string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("User-Agent", c.sellerID+" - SelfIntegration")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTrendyolAPIFailure, err)
	}

	return resp, nil
}

// fetchPage retrieves one page of the seller's on-sale, non-archived
// products, retrying transient failures.
func (c *Client) fetchPage(ctx context.Context, page int) (*productsPage, error) {
	endpoint := fmt.Sprintf("%s/integration/product/sellers/%s/products", c.baseURL, c.sellerID)
	params := url.Values{}
	params.Add("page", fmt.Sprintf("%d", page))
	params.Add("size", fmt.Sprintf("%d", c.pageSize))
	params.Add("archived", "false")
	params.Add("onSale", "true")

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[TRENDYOL] Page %d failed (attempt %d) - Status: %d, Body: %s", page, attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrTrendyolAPIFailure, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var pageResp productsPage
		if err := json.Unmarshal(body, &pageResp); err != nil {
			return nil, fmt.Errorf("failed to decode products page: %w", err)
		}

		return &pageResp, nil
	}

	return nil, lastErr
}

// FetchAllListings pages through the full catalog snapshot. The initial
// page must succeed; a failure on a later page stops pagination and
// returns the listings collected so far, matching the batch job's
// tolerance for a partially fetched snapshot.
func (c *Client) FetchAllListings(ctx context.Context) ([]domain.TrendyolListing, error) {
	first, err := c.fetchPage(ctx, 0)
	if err != nil {
		return nil, err
	}

	listings := mapProducts(first.Content)
	totalPages := first.TotalPages

	for page := 1; page < totalPages; page++ {
		pageResp, err := c.fetchPage(ctx, page)
		if err != nil {
			log.Printf("[TRENDYOL] Warning: failed to fetch page %d of %d: %v", page, totalPages, err)
			break
		}
		listings = append(listings, mapProducts(pageResp.Content)...)
	}

	if c.debug {
		log.Printf("[TRENDYOL] Fetched %d listings across %d pages", len(listings), totalPages)
	}

	return listings, nil
}

// SubmitPriceUpdate posts a single-item price-and-inventory batch and
// returns the asynchronous batch request ID.
func (c *Client) SubmitPriceUpdate(ctx context.Context, update domain.PriceUpdateRequest) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	payload := priceUpdatePayload{
		Items: []priceUpdateItem{{
			Barcode:   update.Barcode,
			SalePrice: update.SalePrice,
			ListPrice: update.ListPrice,
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode price update: %w", err)
	}

	reqURL := fmt.Sprintf("%s/integration/inventory/sellers/%s/products/price-and-inventory", c.baseURL, c.sellerID)

	resp, err := c.doRequest(ctx, http.MethodPost, reqURL, body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d, body: %s", domain.ErrTrendyolAPIFailure, resp.StatusCode, string(respBody))
	}

	var submitResp priceUpdateResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitResp); err != nil {
		return "", fmt.Errorf("failed to decode price update response: %w", err)
	}
	if submitResp.BatchRequestID == "" {
		return "", fmt.Errorf("%w: empty batch request ID", domain.ErrTrendyolAPIFailure)
	}

	return submitResp.BatchRequestID, nil
}

// CheckBatchStatus resolves a batch handle to per-item results.
func (c *Client) CheckBatchStatus(ctx context.Context, batchID string) (*domain.BatchResult, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s/integration/product/sellers/%s/products/batch-requests/%s", c.baseURL, c.sellerID, batchID)

	resp, err := c.doRequest(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrBatchNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrTrendyolAPIFailure, resp.StatusCode, string(body))
	}

	var statusResp batchStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&statusResp); err != nil {
		return nil, fmt.Errorf("failed to decode batch status: %w", err)
	}

	return mapBatchStatus(batchID, &statusResp), nil
}
