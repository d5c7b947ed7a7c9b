// Package search provides search capabilities over indexed capture sessions.
package search

import (
	"context"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/saz-mcp/internal/cache"
	"github.com/usestring/saz-mcp/internal/config"
	"github.com/usestring/saz-mcp/internal/indexer"
	"github.com/usestring/saz-mcp/internal/store"
	"github.com/usestring/saz-mcp/pkg/types"
)

// SearchEngine provides search capabilities over loaded captures.
type SearchEngine struct {
	store      *store.Store
	maxResults int
}

// New creates a new SearchEngine.
func New(s *store.Store, cfg *config.Config) *SearchEngine {
	maxResults := config.MaxSearchResultsValue
	if cfg != nil && cfg.MaxSearchResults > 0 {
		maxResults = cfg.MaxSearchResults
	}
	return &SearchEngine{store: s, maxResults: maxResults}
}

// Search loads the requested capture and runs the query against it.
func (s *SearchEngine) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResponse, error) {
	c, err := s.store.Load(ctx, req.Capture)
	if err != nil {
		return nil, err
	}
	return s.Run(c, req), nil
}

// Run executes a search against an already loaded capture.
func (s *SearchEngine) Run(c *cache.Capture, req *types.SearchRequest) *types.SearchResponse {
	// Apply defaults
	limit := req.Limit
	if limit <= 0 {
		limit = config.DefaultSearchLimitValue
	}
	if limit > config.MaxSearchLimitValue {
		limit = config.MaxSearchLimitValue
	}

	// Plan and execute bitmap operations
	candidates := planFilters(c.Index, req.Filters, req.Query)
	// Apply post-filters that need the session text
	candidates = applyPostFilters(c, candidates, req.Filters)

	totalHint := int(candidates.GetCardinality())

	// Cap the candidate set before scoring
	docIDs := candidates.ToArray()
	truncated := false
	if s.maxResults > 0 && len(docIDs) > s.maxResults {
		docIDs = docIDs[:s.maxResults]
		truncated = true
	}
	results := scoreResults(c, docIDs, req)

	// Highest score first; ties keep capture order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	// Apply pagination
	start := min(max(req.Offset, 0), len(results))
	end := min(start+limit, len(results))

	return &types.SearchResponse{
		Results:   results[start:end],
		TotalHint: totalHint,
		Truncated: truncated,
	}
}

// planFilters converts SearchFilters to bitmap operations.
func planFilters(idx *indexer.Index, filters *types.SearchFilters, query string) *roaring.Bitmap {
	result := idx.AllDocIDs()

	if filters == nil && query == "" {
		return result
	}

	if filters != nil {
		// Host filter, "*." wildcards resolved by the index
		if filters.Host != "" {
			if bm := idx.BitmapForHost(filters.Host); bm != nil {
				result = roaring.And(result, bm)
			} else {
				return roaring.New()
			}
		}

		// Exact status
		if filters.Status != 0 {
			if bm := idx.BitmapForStatus(filters.Status); bm != nil {
				result = roaring.And(result, bm)
			} else {
				return roaring.New()
			}
		}

		// Status class (2 for 2xx, and so on)
		if filters.StatusClass != 0 {
			if bm := idx.BitmapForStatusClass(uint32(filters.StatusClass)); bm != nil {
				result = roaring.And(result, bm)
			} else {
				return roaring.New()
			}
		}

		// Declared body length range
		if filters.MinBodyLength > 0 || filters.MaxBodyLength > 0 {
			result = roaring.And(result, idx.BitmapForBodyLength(filters.MinBodyLength, filters.MaxBodyLength))
		}
	}

	// Free text query: AND across URL tokens
	if query != "" {
		for _, token := range indexer.Tokenize(query) {
			bm := idx.BitmapForToken(token)
			if bm == nil {
				return roaring.New()
			}
			result = roaring.And(result, bm)
		}
	}

	// URLContains and TextContains require post-filtering
	return result
}

// applyPostFilters applies substring filters that need the session text.
func applyPostFilters(c *cache.Capture, candidates *roaring.Bitmap, filters *types.SearchFilters) *roaring.Bitmap {
	if filters == nil || (filters.URLContains == "" && filters.TextContains == "") {
		return candidates
	}

	urlNeedle := strings.ToLower(filters.URLContains)
	textNeedle := strings.ToLower(filters.TextContains)

	result := roaring.New()
	iter := candidates.Iterator()
	for iter.HasNext() {
		docID := iter.Next()
		meta := c.Index.Meta(docID)
		if meta == nil {
			continue
		}

		if urlNeedle != "" && !strings.Contains(strings.ToLower(meta.URL), urlNeedle) {
			continue
		}

		if textNeedle != "" {
			sess := &c.Sessions[docID]
			if !containsFold(sess.Request, textNeedle) && !containsFold(sess.Response, textNeedle) {
				continue
			}
		}

		result.Add(docID)
	}
	return result
}

// scoreResults applies ranking heuristics to produce scored results.
func scoreResults(c *cache.Capture, docIDs []uint32, req *types.SearchRequest) []types.SearchResult {
	results := make([]types.SearchResult, 0, len(docIDs))

	var queryTokens []string
	if req.Query != "" {
		queryTokens = indexer.Tokenize(req.Query)
	}
	var textNeedle string
	if req.Filters != nil {
		textNeedle = strings.ToLower(req.Filters.TextContains)
	}

	for _, docID := range docIDs {
		meta := c.Index.Meta(docID)
		if meta == nil {
			continue
		}

		var score float64
		var highlights []string
		var matchedIn []string

		// URL token matches (weight: 0.6)
		if len(queryTokens) > 0 {
			urlTokenSet := make(map[string]struct{})
			for _, t := range indexer.TokenizeURL(meta.URL) {
				urlTokenSet[t] = struct{}{}
			}
			urlMatches := 0
			for _, qt := range queryTokens {
				if _, exists := urlTokenSet[qt]; exists {
					urlMatches++
					highlights = append(highlights, qt)
				}
			}
			if urlMatches > 0 {
				score += float64(urlMatches) / float64(len(queryTokens)) * 0.6
				matchedIn = appendUnique(matchedIn, "url")
			}
		}

		// Text matches (weight: 0.15 per side)
		if textNeedle != "" {
			sess := &c.Sessions[docID]
			if containsFold(sess.Request, textNeedle) {
				score += 0.15
				matchedIn = appendUnique(matchedIn, "request")
			}
			if containsFold(sess.Response, textNeedle) {
				score += 0.15
				matchedIn = appendUnique(matchedIn, "response")
			}
		}

		// Exact host match beats a wildcard match
		if req.Filters != nil && req.Filters.Host != "" && strings.EqualFold(meta.Host, req.Filters.Host) {
			score += 0.1
		}

		// Base score for all results
		score += 0.1

		results = append(results, types.SearchResult{
			Summary:    meta.ToSummary(c.Name),
			Score:      score,
			Highlights: highlights,
			MatchedIn:  matchedIn,
		})
	}

	return results
}

// containsFold reports whether lowerNeedle occurs in s, ignoring case.
func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

// appendUnique appends a value to a slice if it's not already present.
func appendUnique(slice []string, val string) []string {
	for _, s := range slice {
		if s == val {
			return slice
		}
	}
	return append(slice, val)
}
