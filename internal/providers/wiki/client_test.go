package wiki

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/wearbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wikiHandler(searchBody, summaryBody string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("list") == "search" {
			w.Write([]byte(searchBody))
			return
		}
		w.Write([]byte(summaryBody))
	}
}

func TestLookup(t *testing.T) {
	search := `{"query":{"search":[{"title":"Paris"}]}}`
	summary := `{"query":{"pages":[{"extract":"<p><b>Paris</b> is the capital of France.</p>","fullurl":"https://en.wikipedia.org/wiki/Paris"}]}}`

	srv := httptest.NewServer(wikiHandler(search, summary))
	defer srv.Close()

	got, err := NewClientWithEndpoint(srv.URL).Lookup(context.Background(), "paris")
	require.NoError(t, err)

	assert.Contains(t, got.Summary, "Paris is the capital of France.")
	assert.NotContains(t, got.Summary, "<", "extract should be converted to plain text")
	assert.Equal(t, "https://en.wikipedia.org/wiki/Paris", got.URL)
}

func TestLookupUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{"query":{"search":[]}}`))
	}))
	defer srv.Close()

	NewClientWithEndpoint(srv.URL).Lookup(context.Background(), "paris")
	assert.Equal(t, core.BotUserAgent, gotUA)
}

func TestLookupNoResults(t *testing.T) {
	srv := httptest.NewServer(wikiHandler(`{"query":{"search":[]}}`, "{}"))
	defer srv.Close()

	_, err := NewClientWithEndpoint(srv.URL).Lookup(context.Background(), "xyzzy")
	require.Error(t, err)

	var upstream *core.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "wikipedia", upstream.Source)
	assert.Equal(t, "No Wikipedia information found for xyzzy", upstream.Message)
}

func TestLookupMissingPage(t *testing.T) {
	search := `{"query":{"search":[{"title":"Ghost"}]}}`
	summary := `{"query":{"pages":[{"missing":true}]}}`
	srv := httptest.NewServer(wikiHandler(search, summary))
	defer srv.Close()

	_, err := NewClientWithEndpoint(srv.URL).Lookup(context.Background(), "ghost")
	require.Error(t, err)

	var upstream *core.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Contains(t, upstream.Message, "missing")
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClientWithEndpoint(srv.URL).Lookup(context.Background(), "paris")
	require.Error(t, err)

	var upstream *core.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "Wikipedia error: http 503", upstream.Message)
}
