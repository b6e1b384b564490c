package extract

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/proposalarchitect/speakerscout/models"
)

func TestNormalizeOpportunity_NullSubRecords(t *testing.T) {
	raw := map[string]any{
		"event_name":   "Null Conf",
		"dates":        nil,
		"location":     nil,
		"compensation": nil,
		"application":  nil,
	}
	opp, err := NormalizeOpportunity(raw, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opp.Location.IsVirtual || opp.Location.HasVirtualOption {
		t.Error("boolean location fields should default to false")
	}
	if opp.Compensation.Type != models.CompUnknown {
		t.Errorf("compensation type = %s, want unknown", opp.Compensation.Type)
	}
	if opp.Compensation.Currency != "USD" {
		t.Errorf("currency = %s, want USD", opp.Compensation.Currency)
	}
	if opp.Application.Requirements == nil {
		t.Error("requirements should be an empty list, not nil")
	}
}

func TestNormalizeOpportunity_MissingName(t *testing.T) {
	_, err := NormalizeOpportunity(map[string]any{"id": "x"}, nil)
	if err == nil {
		t.Fatal("expected validation error for missing event_name")
	}
	var ve *ValidationError
	if !errorsAs(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}

func errorsAs(err error, target **ValidationError) bool {
	ve, ok := err.(*ValidationError)
	if ok {
		*target = ve
	}
	return ok
}

func TestNormalizeOpportunity_GeneratedID(t *testing.T) {
	a, _ := NormalizeOpportunity(map[string]any{"event_name": "A"}, nil)
	b, _ := NormalizeOpportunity(map[string]any{"event_name": "B"}, nil)
	if a.ID == "" || b.ID == "" {
		t.Fatal("blank ids should be assigned")
	}
	if a.ID == b.ID {
		t.Fatal("generated ids should be unique")
	}
}

func TestNormalizeOpportunity_KeywordBackfill(t *testing.T) {
	opp, _ := NormalizeOpportunity(map[string]any{"event_name": "KW Conf"}, []string{"golang", "cloud"})
	if !reflect.DeepEqual(opp.KeywordsMatched, []string{"golang", "cloud"}) {
		t.Errorf("keywords_matched = %v, want backfilled search keywords", opp.KeywordsMatched)
	}

	opp, _ = NormalizeOpportunity(map[string]any{
		"event_name":       "KW Conf",
		"keywords_matched": []any{"ai"},
	}, []string{"golang"})
	if !reflect.DeepEqual(opp.KeywordsMatched, []string{"ai"}) {
		t.Errorf("existing keywords should be kept, got %v", opp.KeywordsMatched)
	}
}

func TestNormalizeOpportunity_ConfidenceClamp(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{nil, 0.5},
		{1.5, 0.5},
		{-0.1, 0.5},
		{0.85, 0.85},
		{"0.7", 0.7},
	}
	for _, c := range cases {
		opp, _ := NormalizeOpportunity(map[string]any{"event_name": "C", "confidence_score": c.in}, nil)
		if opp.ConfidenceScore != c.want {
			t.Errorf("confidence %v -> %v, want %v", c.in, opp.ConfidenceScore, c.want)
		}
	}
}

func TestNormalizeOpportunity_UnknownEnums(t *testing.T) {
	opp, _ := NormalizeOpportunity(map[string]any{
		"event_name":   "E",
		"event_type":   "symposium",
		"compensation": map[string]any{"compensation_type": "stock options"},
	}, nil)
	if opp.EventType != models.TypeOther {
		t.Errorf("event_type = %s, want other", opp.EventType)
	}
	if opp.Compensation.Type != models.CompUnknown {
		t.Errorf("compensation_type = %s, want unknown", opp.Compensation.Type)
	}
}

func TestNormalizeOpportunity_Idempotent(t *testing.T) {
	raw := map[string]any{
		"id":         "opp_1",
		"event_name": "Stable Conf",
		"event_type": "conference",
		"dates":      map[string]any{"application_deadline": "2026-01-01"},
		"location":   map[string]any{"city": "Berlin", "is_virtual": true},
		"compensation": map[string]any{
			"is_paid": true, "compensation_type": "honorarium", "amount": 500.0, "currency": "EUR",
		},
		"keywords_matched": []any{"go"},
		"confidence_score": 0.9,
	}
	first, err := NormalizeOpportunity(raw, nil)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}

	// round-trip the canonical record back into a map and normalize again
	b, _ := json.Marshal(first)
	var again map[string]any
	if err := json.Unmarshal(b, &again); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	second, err := NormalizeOpportunity(again, nil)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalization not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestNormalizeOpportunity_StringyTypes(t *testing.T) {
	opp, _ := NormalizeOpportunity(map[string]any{
		"event_name":   "Messy Types",
		"location":     map[string]any{"is_virtual": "true"},
		"compensation": map[string]any{"amount": "2500"},
	}, nil)
	if !opp.Location.IsVirtual {
		t.Error("string \"true\" should coerce to true")
	}
	if opp.Compensation.Amount != 2500 {
		t.Errorf("amount = %v, want 2500", opp.Compensation.Amount)
	}
}

func TestBuildQueries(t *testing.T) {
	queries := BuildQueries(
		[]string{"kubernetes"},
		[]string{"conference", "webinar"},
		[]string{"{keyword} call for speakers", "{keyword} summit speaker application"},
	)
	want := []string{
		"kubernetes call for speakers",
		"kubernetes summit speaker application",
		"kubernetes conference speaker opportunity",
		"kubernetes webinar speaker opportunity",
	}
	if !reflect.DeepEqual(queries, want) {
		t.Errorf("queries = %v, want %v", queries, want)
	}
}

func TestBuildQueries_FallsBackToDefaultTemplates(t *testing.T) {
	queries := BuildQueries([]string{"kubernetes"}, nil, nil)
	if len(queries) == 0 {
		t.Fatal("keyword-only call must still produce queries")
	}
	want := []string{
		"kubernetes conference call for speakers 2025",
		"kubernetes summit speaker application",
		"kubernetes webinar guest speaker opportunity",
	}
	if !reflect.DeepEqual(queries, want) {
		t.Errorf("queries = %v, want %v", queries, want)
	}
}
