package hepsiburada

import (
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

const (
	defaultLimit = 100
	maxAttempts  = 3
)

// Client handles communication with the Hepsiburada listing API
type Client struct {
	httpClient  *http.Client
	username    string
	password    string
	merchantID  string
	baseURL     string
	limit       int
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Hepsiburada listing client
func NewClient(username, password, merchantID, baseURL string) *Client {
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		username:    username,
		password:    password,
		merchantID:  merchantID,
		baseURL:     baseURL,
		limit:       defaultLimit,
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

// fetchPage retrieves one offset/limit page of the merchant's listings,
// retrying transient failures.
func (c *Client) fetchPage(ctx context.Context, offset int) (*listingsPage, error) {
	endpoint := fmt.Sprintf("%s/listings/merchantid/%s", c.baseURL, c.merchantID)
	params := url.Values{}
	params.Add("offset", fmt.Sprintf("%d", offset))
	params.Add("limit", fmt.Sprintf("%d", c.limit))

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.SetBasicAuth(c.username, c.password)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.merchantID)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrHepsiburadaAPIFailure, err)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[HEPSIBURADA] Offset %d failed (attempt %d) - Status: %d, Body: %s", offset, attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrHepsiburadaAPIFailure, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var pageResp listingsPage
		if err := json.Unmarshal(body, &pageResp); err != nil {
			return nil, fmt.Errorf("failed to decode listings page: %w", err)
		}

		return &pageResp, nil
	}

	return nil, lastErr
}

// FetchAllListings pages through the merchant's full listing snapshot.
func (c *Client) FetchAllListings(ctx context.Context) ([]domain.HepsiburadaListing, error) {
	var listings []domain.HepsiburadaListing

	offset := 0
	for {
		pageResp, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}

		listings = append(listings, mapListings(pageResp.Listings)...)

		offset += len(pageResp.Listings)
		if len(pageResp.Listings) == 0 || offset >= pageResp.TotalCount {
			break
		}
	}

	if c.debug {
		log.Printf("[HEPSIBURADA] Fetched %d listings", len(listings))
	}

	return listings, nil
}
