package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/proposalarchitect/speakerscout/internal/dates"
	"github.com/proposalarchitect/speakerscout/internal/extract"
	"github.com/proposalarchitect/speakerscout/models"
	"github.com/proposalarchitect/speakerscout/provider"
)

// defaultScore is used for every score dimension when the scoring response
// omitted or mangled an opportunity's entry.
const defaultScore = 0.5

// Ranker merges LLM match scores with deterministic opportunity fields into
// a sorted ranking. Expired opportunities are filtered before the scoring
// call so the model never sees them.
type Ranker struct {
	llm    provider.Provider
	logger *log.Logger
	now    func() time.Time
}

func NewRanker(llm provider.Provider) *Ranker {
	return &Ranker{
		llm:    llm,
		logger: log.New(log.Writer(), "[RANK] ", log.LstdFlags),
		now:    time.Now,
	}
}

// Rank produces one RankedOpportunity per non-expired input opportunity,
// sorted by match_score descending with input order preserved on ties. An
// outright scoring failure degrades to a fully populated list with neutral
// default scores; it never aborts the pass.
func (r *Ranker) Rank(ctx context.Context, profileSummary string, opportunities []models.Opportunity) models.RankingResult {
	now := r.now().UTC()

	var valid []models.Opportunity
	expired := 0
	for _, opp := range opportunities {
		if dates.IsExpired(opp.Dates, now) {
			expired++
			continue
		}
		valid = append(valid, opp)
	}
	r.logger.Printf("filtered %d expired opportunities, %d valid", expired, len(valid))

	result := models.RankingResult{
		RankedOpportunities:  []models.RankedOpportunity{},
		TotalOpportunities:   len(opportunities),
		ValidOpportunities:   len(valid),
		ExpiredOpportunities: expired,
	}
	if len(valid) == 0 {
		return result
	}

	scores := r.scoreWithLLM(ctx, profileSummary, valid, now)

	ranked := make([]models.RankedOpportunity, 0, len(valid))
	for _, opp := range valid {
		ranked = append(ranked, merge(opp, scores, now))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})

	result.RankedOpportunities = ranked
	return result
}

// merge joins one opportunity's deterministic fields with its scoring entry,
// falling back to neutral defaults when the entry is missing. Deterministic
// expiry data always comes from the opportunity itself, never from the model.
func merge(opp models.Opportunity, scores map[string]models.ScoreEntry, now time.Time) models.RankedOpportunity {
	ranked := models.RankedOpportunity{
		OpportunityID:       opp.ID,
		EventName:           opp.EventName,
		EventType:           opp.EventType,
		Description:         opp.Description,
		StartDate:           opp.Dates.StartDate,
		EndDate:             opp.Dates.EndDate,
		ApplicationDeadline: opp.Dates.ApplicationDeadline,
		Location:            locationString(opp.Location),
		IsVirtual:           opp.Location.IsVirtual,
		IsPaid:              opp.Compensation.IsPaid,
		CompensationAmount:  opp.Compensation.Amount,
		ApplicationURL:      opp.Application.URL,
		SourceURL:           opp.SourceURL,
		MatchScore:          defaultScore,
		RelevanceScore:      defaultScore,
		PreferenceScore:     defaultScore,
		MatchReasons:        []string{},
		MatchingKeywords:    []string{},
		IsExpired:           false,
		DaysUntilDeadline:   dates.DaysUntilDeadline(opp.Dates, now),
	}

	entry, ok := scores[opp.ID]
	if !ok {
		return ranked
	}
	ranked.MatchScore = scoreOrDefault(entry.MatchScore)
	ranked.RelevanceScore = scoreOrDefault(entry.RelevanceScore)
	ranked.PreferenceScore = scoreOrDefault(entry.PreferenceScore)
	if entry.MatchReasons != nil {
		ranked.MatchReasons = entry.MatchReasons
	}
	if entry.MatchingKeywords != nil {
		ranked.MatchingKeywords = entry.MatchingKeywords
	}
	return ranked
}

// scoreWithLLM runs one batch scoring call and returns a lookup by
// opportunity id. Failures shrink the map instead of erroring out, so a
// broken scoring pass still yields a ranking with default scores.
func (r *Ranker) scoreWithLLM(ctx context.Context, profileSummary string, valid []models.Opportunity, now time.Time) map[string]models.ScoreEntry {
	texts := make([]string, 0, len(valid))
	for _, opp := range valid {
		texts = append(texts, OpportunityText(opp))
	}
	opportunitiesText := strings.Join(texts, "\n\n---\n\n")
	currentDate := now.Format("2006-01-02")

	raw, err := r.llm.Complete(ctx, rankingSystemPrompt, rankingUserPrompt(profileSummary, opportunitiesText, currentDate))
	if err != nil {
		r.logger.Printf("scoring call failed, falling back to default scores: %v", err)
		return map[string]models.ScoreEntry{}
	}

	records := extract.Records(raw, "rankings")
	scores := make(map[string]models.ScoreEntry, len(records))
	for i, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			continue
		}
		var entry models.ScoreEntry
		if err := json.Unmarshal(b, &entry); err != nil || entry.OpportunityID == "" {
			r.logger.Printf("skipping malformed scoring entry %d", i)
			continue
		}
		scores[entry.OpportunityID] = entry
	}
	r.logger.Printf("scoring response covered %d of %d opportunities", len(scores), len(valid))
	return scores
}

// OpportunityText serializes an opportunity into the plain-text form the
// scoring prompt reads.
func OpportunityText(opp models.Opportunity) string {
	var parts []string
	parts = append(parts, "ID: "+opp.ID)
	parts = append(parts, "Event: "+opp.EventName)
	parts = append(parts, "Type: "+string(opp.EventType))

	if opp.Description != "" {
		parts = append(parts, "Description: "+opp.Description)
	}
	if opp.Dates.StartDate != "" {
		parts = append(parts, "Start Date: "+opp.Dates.StartDate)
	}
	if opp.Dates.EndDate != "" {
		parts = append(parts, "End Date: "+opp.Dates.EndDate)
	}
	if opp.Dates.ApplicationDeadline != "" {
		parts = append(parts, "Application Deadline: "+opp.Dates.ApplicationDeadline)
	}
	if loc := locationString(opp.Location); loc != "" {
		parts = append(parts, "Location: "+loc)
	}
	if opp.Location.IsVirtual {
		parts = append(parts, "Format: Virtual")
	}
	if opp.Compensation.IsPaid {
		if opp.Compensation.Amount > 0 {
			parts = append(parts, fmt.Sprintf("Compensation: %s %.0f", opp.Compensation.Currency, opp.Compensation.Amount))
		} else {
			parts = append(parts, "Compensation: Paid")
		}
	} else {
		parts = append(parts, "Compensation: Unpaid/Unknown")
	}
	if len(opp.KeywordsMatched) > 0 {
		parts = append(parts, "Keywords: "+strings.Join(opp.KeywordsMatched, ", "))
	}
	return strings.Join(parts, "\n")
}

// scoreOrDefault resolves one score field of a scoring entry: present wins,
// absent falls back to the neutral default.
func scoreOrDefault(v *float64) float64 {
	if v == nil {
		return defaultScore
	}
	return *v
}

func locationString(loc models.Location) string {
	var parts []string
	if loc.City != "" {
		parts = append(parts, loc.City)
	}
	if loc.Country != "" {
		parts = append(parts, loc.Country)
	}
	return strings.Join(parts, ", ")
}
