// Package headhunter implements the hh.ru API client used by the market
// aggregator: paginated vacancy search, vacancy detail fetch, and a resilient
// JSON request layer with retries and cache-aside reads.
package headhunter

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hh-advisor/internal/cache"
)

const (
	apiURL    = "https://api.hh.ru"
	siteURL   = "https://hh.ru"
	userAgent = "spigell/hh-advisor (spigelly@gmail.com)"

	defaultTimeout = 15 * time.Second
	defaultRetries = 2
)

type Client struct {
	token  string
	logger *zap.Logger
	store  *cache.Cache

	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
	SiteURL    string
	// Retries is the retry budget for transient upstream failures (429, 5xx,
	// network errors). Total attempts are Retries+1.
	Retries int
}

// New creates a client. The token is optional: public vacancy search works
// anonymously. The cache store is shared process-wide and may be nil to
// disable cache-aside reads.
func New(logger *zap.Logger, token string, store *cache.Cache) *Client {
	return &Client{
		token:  token,
		logger: logger,
		store:  store,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		SiteURL:   siteURL,
		UserAgent: userAgent,
		Retries:   defaultRetries,
	}
}
