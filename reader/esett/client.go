// Package esett fetches Swedish market time series from the eSett open
// data API. Every export is a single GET per day; failures abort the run
// without retrying.
package esett

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"gridio/config"
	"gridio/internal/timeutil"
	"gridio/logger"
	"gridio/models"
)

// Client issues requests against the eSett open data API for a fixed set
// of bidding zones.
type Client struct {
	config     *config.Config
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logger.Log
}

// NewClient builds a Client from the fetcher configuration: pooled
// transport, User-Agent header and a request rate limiter.
func NewClient(cfg *config.Config) *Client {
	transport := &http.Transport{
		MaxIdleConns:        cfg.Fetcher.ConnectionPool.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Fetcher.ConnectionPool.MaxIdleConns,
		MaxConnsPerHost:     cfg.Fetcher.ConnectionPool.MaxConnsPerHost,
		IdleConnTimeout:     cfg.Fetcher.ConnectionPool.IdleConnTimeout,
	}

	rl := cfg.Fetcher.RateLimit
	rps := rl.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := rl.BurstSize
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Transport: userAgentTransport{
				agent:  cfg.Fetcher.UserAgent,
				accept: "application/json",
				base:   transport,
			},
			Timeout: cfg.Fetcher.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		log:     logger.GetLogger(),
	}
}

// getJSON performs one rate-limited GET and decodes the JSON response
// into out. Non-2xx responses become a FetchError.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.config.Source.Esett.BaseURL, endpoint, params.Encode())
	log := c.log.WithComponent("esett_reader").WithFields(logger.Fields{"url": reqURL})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &models.FetchError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &models.FetchError{URL: reqURL, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &models.FetchError{URL: reqURL, Err: fmt.Errorf("decode response: %w", err)}
	}

	log.WithFields(logger.Fields{"duration_ms": time.Since(start).Milliseconds()}).Debug("request completed")
	return nil
}

// windowParams builds the UTC start/end query parameters shared by all
// eSett exports, millisecond precision with an explicit Z suffix.
func windowParams(start, end time.Time) url.Values {
	params := url.Values{}
	params.Set("start", timeutil.ISOMillis(start))
	params.Set("end", timeutil.ISOMillis(end))
	return params
}
