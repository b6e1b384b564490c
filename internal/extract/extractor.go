package extract

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/proposalarchitect/speakerscout/models"
	"github.com/proposalarchitect/speakerscout/provider"
	searchmodels "github.com/proposalarchitect/speakerscout/tools/web_search/models"
)

// Extractor turns formatted web search results into validated opportunities
// through one model-agnostic LLM call.
type Extractor struct {
	llm    provider.Provider
	logger *log.Logger
}

func NewExtractor(llm provider.Provider) *Extractor {
	return &Extractor{
		llm:    llm,
		logger: log.New(log.Writer(), "[EXTRACT] ", log.LstdFlags),
	}
}

// DefaultQueryTemplates is the built-in query expansion used when the
// configuration provides no templates of its own.
var DefaultQueryTemplates = []string{
	"{keyword} conference call for speakers 2025",
	"{keyword} summit speaker application",
	"{keyword} webinar guest speaker opportunity",
}

// BuildQueries expands keywords through the query templates and opportunity
// types into a de-duplicated query list, first-seen order preserved. Empty
// templates fall back to DefaultQueryTemplates so a keyword-only call always
// produces queries.
func BuildQueries(keywords, opportunityTypes, templates []string) []string {
	if len(templates) == 0 {
		templates = DefaultQueryTemplates
	}
	seen := make(map[string]bool)
	var queries []string
	add := func(q string) {
		if !seen[q] {
			seen[q] = true
			queries = append(queries, q)
		}
	}
	for _, kw := range keywords {
		for _, tmpl := range templates {
			add(strings.ReplaceAll(tmpl, "{keyword}", kw))
		}
		for _, t := range opportunityTypes {
			add(fmt.Sprintf("%s %s speaker opportunity", kw, t))
		}
	}
	return queries
}

// FormatSearchResults flattens search hits into the text block the
// extraction prompt analyzes.
func FormatSearchResults(results []searchmodels.Result) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "Result %d:\nTitle: %s\nURL: %s\nSnippet: %s\n\n", i+1, r.Title, r.URL, r.Snippet)
	}
	return b.String()
}

// ProcessSearchResults calls the LLM over the formatted search results and
// returns the validated opportunity set. Records that fail validation are
// logged and skipped; a completely unparseable response yields an empty set,
// not an error. Only an outright failed LLM call is returned as an error.
func (e *Extractor) ProcessSearchResults(ctx context.Context, searchResults string, keywords, opportunityTypes []string) (models.SearchResponse, error) {
	userPrompt := extractionUserPrompt(keywords, searchResults, opportunityTypes)

	raw, err := e.llm.Complete(ctx, extractionSystemPrompt, userPrompt)
	if err != nil {
		return models.SearchResponse{}, fmt.Errorf("extraction call failed: %w", err)
	}
	e.logger.Printf("received extraction response (%d chars)", len(raw))

	rawRecords := Records(raw, "opportunities")
	e.logger.Printf("parsed %d raw opportunities", len(rawRecords))

	opportunities := make([]models.Opportunity, 0, len(rawRecords))
	for i, rec := range rawRecords {
		opp, err := NormalizeOpportunity(rec, keywords)
		if err != nil {
			e.logger.Printf("skipping invalid opportunity %d: %v", i, err)
			continue
		}
		opportunities = append(opportunities, opp)
	}
	e.logger.Printf("validated %d opportunities", len(opportunities))

	return models.SearchResponse{
		SearchMetadata: models.SearchMetadata{
			SearchID:         "search_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
			Keywords:         keywords,
			SearchDate:       time.Now().UTC().Format(time.RFC3339),
			OpportunityTypes: opportunityTypes,
			TotalResults:     len(opportunities),
		},
		Opportunities: opportunities,
	}, nil
}
