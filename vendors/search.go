package vendors

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/https-dhanesh/Classifieds-App-Base/config"
	"github.com/https-dhanesh/Classifieds-App-Base/db"
	"github.com/https-dhanesh/Classifieds-App-Base/log"
)

var (
	searchClient     *SearchBackendClient
	searchClientOnce sync.Once
)

// SearchResult is the three-way outcome of querying the search backend:
// a non-empty list of matches, an explicit empty list, or a failure. The
// three cases stay distinct; callers decide how to render them.
type SearchResult struct {
	Listings []db.Listing
	Failed   bool
}

// Empty reports whether the search succeeded but matched nothing
func (r SearchResult) Empty() bool {
	return !r.Failed && len(r.Listings) == 0
}

// SearchBackendClient is a thin HTTP client for the classifieds search
// backend's GET /search?q= endpoint.
type SearchBackendClient struct {
	baseURL string
	http    *http.Client
}

// NewSearchBackendClient creates a search client for the given backend
func NewSearchBackendClient(baseURL string, timeout time.Duration) *SearchBackendClient {
	return &SearchBackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// GetSearchBackendClient returns the singleton search client
func GetSearchBackendClient() *SearchBackendClient {
	searchClientOnce.Do(func() {
		cfg := config.Get()
		searchClient = NewSearchBackendClient(cfg.SearchBaseURL, cfg.SearchTimeout)
		log.Info().Str("baseURL", cfg.SearchBaseURL).Msg("search backend client initialized")
	})
	return searchClient
}

// Search queries the backend for listings matching query. Transport and
// backend errors come back as a Failed result, never as a raised error;
// a blank query short-circuits to the empty result without a network call.
func (s *SearchBackendClient) Search(ctx context.Context, query string) SearchResult {
	if strings.TrimSpace(query) == "" {
		return SearchResult{Listings: []db.Listing{}}
	}

	reqURL := s.baseURL + "/search?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("search request build failed")
		return SearchResult{Failed: true}
	}

	resp, err := s.http.Do(req)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("search backend unreachable")
		return SearchResult{Failed: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error().Int("status", resp.StatusCode).Str("query", query).Msg("search backend error")
		return SearchResult{Failed: true}
	}

	var listings []db.Listing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		log.Error().Err(err).Str("query", query).Msg("search response decode failed")
		return SearchResult{Failed: true}
	}
	if listings == nil {
		listings = []db.Listing{}
	}

	log.Debug().Str("query", query).Int("count", len(listings)).Msg("search completed")
	return SearchResult{Listings: listings}
}
