// Package svk downloads FCR-N auction results from the Svk Mimer primary
// regulation export.
package svk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gridio/config"
	"gridio/logger"
	"gridio/models"
)

// Client downloads the semicolon-delimited FCR auction CSV from Mimer.
type Client struct {
	config     *config.Config
	httpClient *http.Client
	log        *logger.Log
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Fetcher.Timeout,
		},
		log: logger.GetLogger(),
	}
}

// Mimer takes local-clock period bounds, not UTC instants.
const periodFormat = "01/02/2006 15:04:05"

// FetchFCRN downloads the FCR auction CSV covering [day, day+1). The
// response body is returned as-is; parsing happens in the processor.
func (c *Client) FetchFCRN(ctx context.Context, day time.Time) (string, error) {
	params := url.Values{}
	params.Set("periodFrom", day.Format(periodFormat))
	params.Set("periodTo", day.AddDate(0, 0, 1).Format(periodFormat))
	params.Set("auctionTypeId", strconv.Itoa(c.config.Source.Svk.AuctionTypeID))
	params.Set("productTypeId", strconv.Itoa(c.config.Source.Svk.ProductTypeID))

	reqURL := fmt.Sprintf("%s?%s", c.config.Source.Svk.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.Fetcher.UserAgent)
	req.Header.Set("Accept", "text/csv,text/plain,*/*")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &models.FetchError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &models.FetchError{URL: reqURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &models.FetchError{URL: reqURL, Err: err}
	}

	c.log.WithComponent("svk_reader").WithFields(logger.Fields{
		"bytes":       len(body),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("fetched FCR-N auction export")

	return string(body), nil
}
