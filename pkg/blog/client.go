package blog

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"blogdl/pkg/errors"
	"blogdl/pkg/logger"
	"blogdl/pkg/ratelimit"
)

// Client performs the HTTP retrieval for the crawl. Every fetch enforces a
// fixed timeout, and any non-2xx response is surfaced as an error; the run
// has no retry logic, so callers treat these as fatal.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	limiter    ratelimit.Limiter
	logger     logger.Logger
}

// NewClient creates a new blog client. The limiter is applied after every
// successful fetch as a courtesy delay toward the origin.
func NewClient(timeout time.Duration, userAgent string, limiter ratelimit.Limiter, log logger.Logger) *Client {
	if limiter == nil {
		limiter = ratelimit.NewFixedDelay(0)
	}

	headers := map[string]string{
		"Accept": "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	}
	if userAgent != "" {
		headers["User-Agent"] = userAgent
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: headers,
		limiter: limiter,
		logger:  log,
	}
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// FetchPage performs a GET request and returns the response body as text.
func (c *Client) FetchPage(url string) (string, error) {
	data, err := c.fetch(url)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FetchBytes performs a GET request and returns the raw response body.
func (c *Client) FetchBytes(url string) ([]byte, error) {
	return c.fetch(url)
}

func (c *Client) fetch(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewNetwork(fmt.Sprintf("failed to create request: %v", err), url)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    url,
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"url":      url,
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, errors.NewNetwork(fmt.Sprintf("request failed: %v", err), url)
	}
	defer resp.Body.Close()

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"url":      url,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.ErrorWithFields("unexpected response status", map[string]interface{}{
			"url":    url,
			"status": resp.StatusCode,
		})
		return nil, errors.NewHTTPStatus(resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetwork(fmt.Sprintf("failed to read response body: %v", err), url)
	}

	// Courtesy delay after each successful fetch.
	c.limiter.Wait()

	return data, nil
}
