// Package cboe acquires option-chain snapshots from the CBOE delayed-quotes
// CDN and keeps an on-disk fallback cache of the raw payloads.
package cboe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dgnsrekt/gammaflip/internal/chain"
)

// Fetcher retrieves one chain snapshot. Interface for testability.
type Fetcher interface {
	FetchChain(ctx context.Context, ticker string) (*chain.Chain, []byte, error)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	retryCount int
	retryDelay time.Duration
	logger     *zap.Logger
}

func NewClient(baseURL string, ratePerSec int, timeout, retryDelay time.Duration, retryCount int, logger *zap.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:       100,
		MaxConnsPerHost:    10,
		IdleConnTimeout:    90 * time.Second,
		DisableCompression: false,
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec*2),
		retryCount: retryCount,
		retryDelay: retryDelay,
		logger:     logger,
	}
}

// FetchChain downloads and decodes the delayed-quotes payload for ticker.
// The raw body is returned alongside the decoded chain so callers can cache
// the snapshot byte-for-byte.
func (c *Client) FetchChain(ctx context.Context, ticker string) (*chain.Chain, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limiter: %w", err)
	}

	// Index payloads live under an underscore-prefixed symbol.
	url := fmt.Sprintf("%s/api/global/delayed_quotes/options/_%s.json", c.baseURL, ticker)
	c.logger.Debug("requesting chain", zap.String("url", url))

	var lastErr error
	for attempt := 0; attempt <= c.retryCount; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * time.Duration(1<<(attempt-1)) // Exponential backoff
			c.logger.Debug("retrying request", zap.Int("attempt", attempt), zap.Duration("delay", delay))

			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode == http.StatusNotFound {
			return nil, nil, ErrNotFound
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = ErrRateLimited
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			return nil, nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
		}

		ch, err := DecodeChain(body, ticker)
		if err != nil {
			return nil, nil, err
		}
		return ch, body, nil
	}

	return nil, nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// DecodeChain unwraps the delayed-quotes envelope into a chain snapshot.
func DecodeChain(raw []byte, ticker string) (*chain.Chain, error) {
	var payload struct {
		Data struct {
			Close   float64       `json:"close"`
			Options []chain.Quote `json:"options"`
		} `json:"data"`
	}

	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decoding delayed quotes payload: %w", err)
	}
	if payload.Data.Close <= 0 {
		return nil, fmt.Errorf("delayed quotes payload for %s has no spot price", ticker)
	}
	if len(payload.Data.Options) == 0 {
		return nil, fmt.Errorf("delayed quotes payload for %s has no option rows", ticker)
	}

	return &chain.Chain{
		Ticker: ticker,
		Spot:   payload.Data.Close,
		Quotes: payload.Data.Options,
	}, nil
}
