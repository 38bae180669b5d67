package headhunter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	SearchPath = "/vacancies"

	defaultPerPage  = 50
	defaultMaxPages = 2
)

type SearchParams struct {
	// Text is the free-text query, usually a guessed role title.
	Text string
	// Area is an optional hh.ru region identifier.
	Area string
	// PerPage is the page size, bounded by the API at 100.
	PerPage int
	// MaxPages bounds how many pages are sampled per query.
	MaxPages int
}

// SearchResult is the outcome of one paginated search: the total number of
// postings the upstream reports and the sampled posting IDs in first-seen
// order, deduplicated, archived postings dropped.
type SearchResult struct {
	Found     int
	IDs       []string
	SearchURL string
}

type searchPage struct {
	Items   []map[string]any `json:"items"`
	Found   int              `json:"found"`
	Pages   int              `json:"pages"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}

type searchItem struct {
	ID       string `json:"id"`
	Archived bool   `json:"archived"`
}

// SearchIDs pages through the vacancy search endpoint collecting posting IDs,
// stopping early when the upstream reports no further pages.
func (c *Client) SearchIDs(ctx context.Context, params *SearchParams) (*SearchResult, error) {
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	maxPages := params.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	q := url.Values{}
	q.Set("text", params.Text)
	q.Set("per_page", strconv.Itoa(perPage))
	if params.Area != "" {
		q.Set("area", params.Area)
	}

	searchURL := fmt.Sprintf("%s%s", c.APIURL, SearchPath)

	var raw []map[string]any
	found := 0

	for page := 0; page < maxPages; page++ {
		q.Set("page", strconv.Itoa(page))

		var resp searchPage
		if err := c.getJSONCached(ctx, searchURL, q, &resp); err != nil {
			return nil, fmt.Errorf("search %q page %d: %w", params.Text, page, err)
		}

		c.logger.Debug("got search page",
			zap.String("text", params.Text),
			zap.Int("page", resp.Page),
			zap.Int("pages", resp.Pages),
			zap.Int("found", resp.Found),
		)

		raw = append(raw, resp.Items...)
		found = resp.Found

		if resp.Page >= resp.Pages-1 {
			break
		}
	}

	var items []searchItem
	cfg := &mapstructure.DecoderConfig{
		Result:  &items,
		TagName: "json",
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode search items: %w", err)
	}

	seen := make(map[string]bool, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.ID == "" || item.Archived || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		ids = append(ids, item.ID)
	}

	return &SearchResult{
		Found:     found,
		IDs:       ids,
		SearchURL: c.searchURL(params),
	}, nil
}

// searchURL builds the human-facing search link included in role stats.
func (c *Client) searchURL(params *SearchParams) string {
	q := url.Values{}
	q.Set("text", params.Text)
	if params.Area != "" {
		q.Set("area", params.Area)
	}
	return fmt.Sprintf("%s/search/vacancy?%s", c.SiteURL, q.Encode())
}
