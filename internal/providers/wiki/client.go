package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inbucket/html2text"
	"github.com/sandevgo/wearbot/internal/core"
	"github.com/sandevgo/wearbot/pkg/log"
)

const (
	defaultEndpoint = "https://en.wikipedia.org/w/api.php"
	requestTimeout  = 15 * time.Second
)

// Client looks up places on Wikipedia: full-text search, first hit wins, then
// a two-sentence intro extract plus the canonical page URL.
type Client struct {
	client   *http.Client
	endpoint string
}

func NewClient() *Client {
	return NewClientWithEndpoint(defaultEndpoint)
}

func NewClientWithEndpoint(endpoint string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: requestTimeout,
		},
		endpoint: endpoint,
	}
}

func (c *Client) Lookup(ctx context.Context, location string) (core.WikiSnippet, error) {
	title, err := c.search(ctx, location)
	if err != nil {
		return core.WikiSnippet{}, err
	}

	snippet, err := c.summary(ctx, title)
	if err != nil {
		return core.WikiSnippet{}, err
	}

	log.FromCtx(ctx).Debug().
		Str("location", location).
		Str("title", title).
		Str("url", snippet.URL).
		Msg("fetched wikipedia snippet")

	return snippet, nil
}

func (c *Client) search(ctx context.Context, location string) (string, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("list", "search")
	q.Set("srsearch", location)
	q.Set("srlimit", "1")
	q.Set("format", "json")
	q.Set("formatversion", "2")

	data, err := c.get(ctx, q)
	if err != nil {
		return "", err
	}

	var result struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", core.NewUpstreamError("wikipedia", "Wikipedia search returned malformed JSON", err)
	}
	if len(result.Query.Search) == 0 {
		return "", core.NewUpstreamError(
			"wikipedia",
			fmt.Sprintf("No Wikipedia information found for %s", location),
			nil,
		)
	}
	return result.Query.Search[0].Title, nil
}

func (c *Client) summary(ctx context.Context, title string) (core.WikiSnippet, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("prop", "extracts|info")
	q.Set("inprop", "url")
	q.Set("exintro", "1")
	q.Set("exsentences", "2")
	q.Set("redirects", "1")
	q.Set("titles", title)
	q.Set("format", "json")
	q.Set("formatversion", "2")

	data, err := c.get(ctx, q)
	if err != nil {
		return core.WikiSnippet{}, err
	}

	var result struct {
		Query struct {
			Pages []struct {
				Extract string `json:"extract"`
				FullURL string `json:"fullurl"`
				Missing bool   `json:"missing"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return core.WikiSnippet{}, core.NewUpstreamError("wikipedia", "Wikipedia summary returned malformed JSON", err)
	}
	if len(result.Query.Pages) == 0 || result.Query.Pages[0].Missing {
		return core.WikiSnippet{}, core.NewUpstreamError(
			"wikipedia",
			fmt.Sprintf("Wikipedia page %q is missing", title),
			nil,
		)
	}

	page := result.Query.Pages[0]

	// Extracts come back as HTML fragments
	summary, err := html2text.FromString(page.Extract, html2text.Options{OmitLinks: true})
	if err != nil {
		return core.WikiSnippet{}, core.NewUpstreamError("wikipedia", "failed to convert extract to text", err)
	}

	return core.WikiSnippet{
		Summary: strings.TrimSpace(summary),
		URL:     page.FullURL,
	}, nil
}

func (c *Client) get(ctx context.Context, q url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", core.BotUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, core.NewUpstreamError("wikipedia", "Wikipedia request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.NewUpstreamError("wikipedia", "Wikipedia response unreadable", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, core.NewUpstreamError(
			"wikipedia",
			fmt.Sprintf("Wikipedia error: http %d", resp.StatusCode),
			nil,
		)
	}
	return data, nil
}
