package headhunter

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hh-advisor/internal/utils"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip, deflate, br"

	backoffBase = 400 * time.Millisecond
	backoffCap  = 3 * time.Second

	// retryAfterCap bounds a server-provided Retry-After hint so a
	// misbehaving upstream cannot park an attempt for minutes.
	retryAfterCap = 30 * time.Second
)

// StatusError is returned for non-2xx upstream responses that are not
// retried away. Callers decide how to handle it.
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status %d from %s", e.Status, e.URL)
}

// retryable reports whether the status is worth another attempt.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// getJSON makes a GET request and decodes the JSON response into target.
// Transient failures (429, 5xx, network errors) are retried up to the
// configured budget; a Retry-After hint from the server takes precedence
// over exponential backoff.
func (c *Client) getJSON(ctx context.Context, rawURL string, q url.Values, target any) error {
	data, err := c.getRaw(ctx, rawURL, q)
	if err != nil {
		return err
	}

	if target == nil {
		return nil
	}

	return json.Unmarshal(data, target)
}

// getJSONCached wraps getJSON with cache-aside: identical requests within the
// cache TTL are served from memory. Only successful payloads are cached.
func (c *Client) getJSONCached(ctx context.Context, rawURL string, q url.Values, target any) error {
	if c.store == nil {
		return c.getJSON(ctx, rawURL, q, target)
	}

	key := cacheKey(rawURL, q)
	if cached, ok := c.store.Get(key); ok {
		data, valid := cached.([]byte)
		if valid {
			c.logger.Debug("serving response from cache", zap.String("url", rawURL))
			if target == nil {
				return nil
			}
			return json.Unmarshal(data, target)
		}
	}

	data, err := c.getRaw(ctx, rawURL, q)
	if err != nil {
		return err
	}

	c.store.Set(key, data)

	if target == nil {
		return nil
	}

	return json.Unmarshal(data, target)
}

func cacheKey(rawURL string, q url.Values) string {
	if len(q) == 0 {
		return rawURL
	}
	return rawURL + "?" + q.Encode()
}

func (c *Client) getRaw(ctx context.Context, rawURL string, q url.Values) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.Retries; attempt++ {
		data, status, header, err := c.do(ctx, rawURL, q)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			// Network-level errors share the retry budget with 5xx.
			lastErr = err
			c.logger.Debug("request failed",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)

			if werr := utils.WaitFor(ctx, backoff(attempt)); werr != nil {
				return nil, werr
			}
			continue
		}

		if status >= 200 && status <= 299 {
			return data, nil
		}

		lastErr = &StatusError{Status: status, URL: rawURL}

		if !retryable(status) {
			return nil, lastErr
		}

		delay := retryDelay(header, attempt)
		c.logger.Debug("retrying after upstream error",
			zap.String("url", rawURL),
			zap.Int("status", status),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
		)

		if werr := utils.WaitFor(ctx, delay); werr != nil {
			return nil, werr
		}
	}

	return nil, lastErr
}

// do performs a single GET request and returns the decompressed body.
func (c *Client) do(ctx context.Context, rawURL string, q url.Values) ([]byte, int, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	c.logger.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, nil, err
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, 0, nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, 0, nil, err
	}

	return data, resp.StatusCode, resp.Header, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

// retryDelay honors a server-provided Retry-After value in seconds, clamped
// to retryAfterCap, falling back to exponential backoff.
func retryDelay(header http.Header, attempt int) time.Duration {
	if header != nil {
		if hint := header.Get("Retry-After"); hint != "" {
			if seconds, err := strconv.Atoi(hint); err == nil && seconds >= 0 {
				d := time.Duration(seconds) * time.Second
				if d > retryAfterCap {
					d = retryAfterCap
				}
				return d
			}
		}
	}

	return backoff(attempt)
}

// backoff returns min(3s, 400ms * 2^attempt).
func backoff(attempt int) time.Duration {
	d := backoffBase << attempt
	if d > backoffCap || d <= 0 {
		return backoffCap
	}
	return d
}
