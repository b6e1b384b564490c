package ranking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/proposalarchitect/speakerscout/models"
)

type stubLLM struct {
	response string
	err      error
	lastUser string
}

func (s *stubLLM) Complete(ctx context.Context, system, user string) (string, error) {
	s.lastUser = user
	return s.response, s.err
}

func (s *stubLLM) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("not used")
}

func newTestRanker(llm *stubLLM, now time.Time) *Ranker {
	r := NewRanker(llm)
	r.now = func() time.Time { return now }
	return r
}

func opp(id, name, deadline string) models.Opportunity {
	return models.Opportunity{
		ID:        id,
		EventName: name,
		EventType: models.TypeConference,
		Dates:     models.DateInfo{ApplicationDeadline: deadline},
	}
}

func TestRank_FiltersExpiredAndMerges(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	llm := &stubLLM{response: `[
		{"opportunity_id": "a", "match_score": 0.9, "relevance_score": 0.95,
		 "preference_score": 0.85, "match_reasons": ["strong topical fit"],
		 "matching_keywords": ["golang"]}
	]`}
	r := newTestRanker(llm, now)

	result := r.Rank(context.Background(), "profile summary", []models.Opportunity{
		opp("a", "GopherCon", "2099-01-01"),
		opp("b", "Old Summit", "2000-01-01"),
	})

	if result.TotalOpportunities != 2 || result.ValidOpportunities != 1 || result.ExpiredOpportunities != 1 {
		t.Errorf("counts wrong: %+v", result)
	}
	if len(result.RankedOpportunities) != 1 {
		t.Fatalf("expected 1 ranked opportunity, got %d", len(result.RankedOpportunities))
	}
	ranked := result.RankedOpportunities[0]
	if ranked.OpportunityID != "a" || ranked.MatchScore != 0.9 {
		t.Errorf("scores not merged: %+v", ranked)
	}
	if len(ranked.MatchReasons) != 1 || ranked.MatchReasons[0] != "strong topical fit" {
		t.Errorf("reasons not merged: %+v", ranked.MatchReasons)
	}
	if ranked.IsExpired {
		t.Error("valid opportunity must not be flagged expired")
	}
	if ranked.DaysUntilDeadline == nil || *ranked.DaysUntilDeadline <= 0 {
		t.Errorf("days until deadline should be positive: %v", ranked.DaysUntilDeadline)
	}
	if strings.Contains(llm.lastUser, "Old Summit") {
		t.Error("expired opportunity leaked into the scoring prompt")
	}
}

func TestRank_MissingEntriesGetDefaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	llm := &stubLLM{response: `[{"opportunity_id": "a", "match_score": 0.7}]`}
	r := newTestRanker(llm, now)

	result := r.Rank(context.Background(), "summary", []models.Opportunity{
		opp("a", "Scored Conf", "2099-01-01"),
		opp("b", "Unscored Conf", "2099-01-01"),
	})

	if len(result.RankedOpportunities) != 2 {
		t.Fatalf("no opportunity may be dropped, got %d", len(result.RankedOpportunities))
	}
	byID := map[string]models.RankedOpportunity{}
	for _, ro := range result.RankedOpportunities {
		byID[ro.OpportunityID] = ro
	}
	if byID["b"].MatchScore != 0.5 || byID["b"].RelevanceScore != 0.5 || byID["b"].PreferenceScore != 0.5 {
		t.Errorf("unscored opportunity must get default scores: %+v", byID["b"])
	}
	if byID["b"].MatchReasons == nil || byID["b"].MatchingKeywords == nil {
		t.Error("default lists must be empty, not nil")
	}
}

func TestRank_PartialEntryGetsPerFieldDefaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	llm := &stubLLM{response: `[
		{"opportunity_id": "a", "match_reasons": ["great topical fit"]},
		{"opportunity_id": "b", "match_score": 0.8, "matching_keywords": ["go"]}
	]`}
	r := newTestRanker(llm, now)

	result := r.Rank(context.Background(), "summary", []models.Opportunity{
		opp("a", "Reasons Only Conf", "2099-01-01"),
		opp("b", "Match Only Conf", "2099-01-01"),
	})

	byID := map[string]models.RankedOpportunity{}
	for _, ro := range result.RankedOpportunities {
		byID[ro.OpportunityID] = ro
	}
	a := byID["a"]
	if a.MatchScore != 0.5 || a.RelevanceScore != 0.5 || a.PreferenceScore != 0.5 {
		t.Errorf("entry without score fields must keep neutral defaults: %+v", a)
	}
	if len(a.MatchReasons) != 1 || a.MatchReasons[0] != "great topical fit" {
		t.Errorf("reasons from a partial entry must survive: %+v", a.MatchReasons)
	}
	b := byID["b"]
	if b.MatchScore != 0.8 {
		t.Errorf("present score must win over the default: %+v", b)
	}
	if b.RelevanceScore != 0.5 || b.PreferenceScore != 0.5 {
		t.Errorf("absent fields default per field, not per entry: %+v", b)
	}
}

func TestRank_ScoringFailureDegrades(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	llm := &stubLLM{err: errors.New("provider down")}
	r := newTestRanker(llm, now)

	result := r.Rank(context.Background(), "summary", []models.Opportunity{
		opp("a", "Conf A", "2099-01-01"),
		opp("b", "Conf B", "2099-01-01"),
	})

	if len(result.RankedOpportunities) != 2 {
		t.Fatalf("failure must not drop opportunities, got %d", len(result.RankedOpportunities))
	}
	for _, ro := range result.RankedOpportunities {
		if ro.MatchScore != 0.5 {
			t.Errorf("expected default score for %s, got %v", ro.OpportunityID, ro.MatchScore)
		}
	}
}

func TestRank_UnparseableResponseDegrades(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	llm := &stubLLM{response: "I am unable to rank these."}
	r := newTestRanker(llm, now)

	result := r.Rank(context.Background(), "summary", []models.Opportunity{
		opp("a", "Conf A", "2099-01-01"),
	})
	if len(result.RankedOpportunities) != 1 || result.RankedOpportunities[0].MatchScore != 0.5 {
		t.Errorf("unparseable response must fall back to defaults: %+v", result)
	}
}

func TestRank_StableSortDescending(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	llm := &stubLLM{response: `[
		{"opportunity_id": "low", "match_score": 0.2},
		{"opportunity_id": "high", "match_score": 0.9},
		{"opportunity_id": "tie1", "match_score": 0.5},
		{"opportunity_id": "tie2", "match_score": 0.5}
	]`}
	r := newTestRanker(llm, now)

	result := r.Rank(context.Background(), "summary", []models.Opportunity{
		opp("tie1", "Tie One", "2099-01-01"),
		opp("low", "Low", "2099-01-01"),
		opp("tie2", "Tie Two", "2099-01-01"),
		opp("high", "High", "2099-01-01"),
	})

	var order []string
	for _, ro := range result.RankedOpportunities {
		order = append(order, ro.OpportunityID)
	}
	want := []string{"high", "tie1", "tie2", "low"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", order, want)
		}
	}
}

func TestRank_NoValidOpportunitiesSkipsLLM(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	llm := &stubLLM{response: "should never be called"}
	r := newTestRanker(llm, now)

	result := r.Rank(context.Background(), "summary", []models.Opportunity{
		opp("a", "Expired Conf", "2000-01-01"),
	})
	if llm.lastUser != "" {
		t.Error("scoring call must be skipped when nothing is valid")
	}
	if result.RankedOpportunities == nil || len(result.RankedOpportunities) != 0 {
		t.Errorf("expected empty ranked list, got %+v", result.RankedOpportunities)
	}
	if result.ExpiredOpportunities != 1 || result.ValidOpportunities != 0 {
		t.Errorf("counts wrong: %+v", result)
	}
}

func TestOpportunityText_ContainsCoreFields(t *testing.T) {
	o := models.Opportunity{
		ID:        "opp_1",
		EventName: "CloudConf",
		EventType: models.TypeConference,
		Dates:     models.DateInfo{StartDate: "2025-09-01", ApplicationDeadline: "2025-08-01"},
		Location:  models.Location{City: "Berlin", Country: "Germany", IsVirtual: false},
		Compensation: models.Compensation{
			IsPaid: true, Amount: 2000, Currency: "EUR",
		},
		KeywordsMatched: []string{"cloud", "devops"},
	}
	text := OpportunityText(o)
	for _, want := range []string{
		"ID: opp_1",
		"Event: CloudConf",
		"Application Deadline: 2025-08-01",
		"Location: Berlin, Germany",
		"Compensation: EUR 2000",
		"Keywords: cloud, devops",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("serialized text missing %q:\n%s", want, text)
		}
	}
}
