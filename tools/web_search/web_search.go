package web_search

import (
	"context"
	"errors"
	"log"

	"github.com/proposalarchitect/speakerscout/tools/web_search/brave"
	"github.com/proposalarchitect/speakerscout/tools/web_search/models"
	"github.com/proposalarchitect/speakerscout/tools/web_search/serper"
)

type WebSearcher interface {
	Discover(ctx context.Context, q string, k int) ([]models.Result, error)
}

type Provider string

const (
	SerperProvider Provider = "serper"
	BraveProvider  Provider = "brave"
)

var ErrUnsupportedProvider = errors.New("unsupported search provider")

func NewWebSearcher(provider Provider, apiKey string) (WebSearcher, error) {
	switch provider {
	case SerperProvider:
		return serper.Search{ApiKey: apiKey}, nil
	case BraveProvider:
		return brave.Search{ApiKey: apiKey}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}

var searchLog = log.New(log.Writer(), "[SEARCH] ", log.LstdFlags)

// SearchAll runs every query against the searcher and merges the hits,
// de-duplicated by URL in first-seen order. A failing query contributes
// nothing instead of failing the batch; the search capability degrades to an
// empty result set, never an error.
func SearchAll(ctx context.Context, s WebSearcher, queries []string, perQuery int) []models.Result {
	seen := make(map[string]bool)
	var out []models.Result
	for _, q := range queries {
		results, err := s.Discover(ctx, q, perQuery)
		if err != nil {
			searchLog.Printf("query %q failed: %v", q, err)
			continue
		}
		for _, r := range results {
			if r.URL == "" || seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			out = append(out, r)
		}
	}
	return out
}
