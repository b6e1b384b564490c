package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/proposalarchitect/speakerscout/models"
)

// ValidationError marks a single record as unusable. The caller logs it,
// skips the record and continues with its siblings.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record: %s %s", e.Field, e.Reason)
}

// NormalizeOpportunity coerces one raw record map into the canonical
// Opportunity shape. Null nested objects become zero-value structs, null
// lists become empty lists, null booleans become false. keywords is the
// keyword set of the originating search, used when the model omitted
// keywords_matched. Normalizing an already-normalized record is a no-op.
func NormalizeOpportunity(raw map[string]any, keywords []string) (models.Opportunity, error) {
	name := strings.TrimSpace(asString(raw["event_name"]))
	if name == "" {
		return models.Opportunity{}, &ValidationError{Field: "event_name", Reason: "missing"}
	}

	opp := models.Opportunity{
		ID:              strings.TrimSpace(asString(raw["id"])),
		EventName:       name,
		EventType:       models.OpportunityType(strings.ToLower(strings.TrimSpace(asString(raw["event_type"])))),
		Description:     asString(raw["description"]),
		TargetAudience:  asStringList(raw["target_audience"]),
		AudienceSize:    asString(raw["expected_audience_size"]),
		KeywordsMatched: asStringList(raw["keywords_matched"]),
		SourceURL:       asString(raw["source_url"]),
		ConfidenceScore: 0.5,
	}

	if opp.ID == "" {
		opp.ID = "opp_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}
	if !models.ValidOpportunityType(opp.EventType) {
		opp.EventType = models.TypeOther
	}
	if len(opp.KeywordsMatched) == 0 && keywords != nil {
		opp.KeywordsMatched = append([]string{}, keywords...)
	}
	if score, ok := asFloat(raw["confidence_score"]); ok && score >= 0.0 && score <= 1.0 {
		opp.ConfidenceScore = score
	}

	// Null sub-records are treated as empty objects so default filling
	// proceeds uniformly.
	dates := asMap(raw["dates"])
	opp.Dates = models.DateInfo{
		StartDate:           asString(dates["start_date"]),
		EndDate:             asString(dates["end_date"]),
		ApplicationDeadline: asString(dates["application_deadline"]),
	}

	loc := asMap(raw["location"])
	opp.Location = models.Location{
		Venue:            asString(loc["venue"]),
		City:             asString(loc["city"]),
		State:            asString(loc["state"]),
		Country:          asString(loc["country"]),
		IsVirtual:        asBool(loc["is_virtual"]),
		HasVirtualOption: asBool(loc["has_virtual_option"]),
	}

	comp := asMap(raw["compensation"])
	compType := models.CompensationType(strings.ToLower(strings.TrimSpace(asString(comp["compensation_type"]))))
	if !models.ValidCompensationType(compType) {
		compType = models.CompUnknown
	}
	currency := strings.ToUpper(strings.TrimSpace(asString(comp["currency"])))
	if currency == "" {
		currency = "USD"
	}
	amount, _ := asFloat(comp["amount"])
	opp.Compensation = models.Compensation{
		IsPaid:                asBool(comp["is_paid"]),
		Type:                  compType,
		Amount:                amount,
		Currency:              currency,
		IncludesTravel:        asBool(comp["includes_travel"]),
		IncludesAccommodation: asBool(comp["includes_accommodation"]),
		Details:               asString(comp["details"]),
	}

	app := asMap(raw["application"])
	opp.Application = models.ApplicationInfo{
		URL:          asString(app["url"]),
		ContactEmail: asString(app["contact_email"]),
		Requirements: asStringList(app["requirements"]),
	}

	return opp, nil
}

// NormalizeProfile coerces an LLM-extracted profile record into the canonical
// Profile, filling null lists with empty lists. Summary and ID are left for
// the caller.
func NormalizeProfile(raw map[string]any) models.Profile {
	years, _ := asFloat(raw["years_of_experience"])
	return models.Profile{
		Name:               asString(raw["name"]),
		Title:              asString(raw["title"]),
		PrimaryExpertise:   asStringList(raw["primary_expertise"]),
		SecondaryExpertise: asStringList(raw["secondary_expertise"]),
		Keywords:           asStringList(raw["keywords"]),
		YearsOfExperience:  int(years),
		SpeakingExperience: asString(raw["speaking_experience"]),
		NotableTalks:       asStringList(raw["notable_talks"]),
		NotableVenues:      asStringList(raw["notable_venues"]),
		Education:          asStringList(raw["education"]),
		Certifications:     asStringList(raw["certifications"]),
		Publications:       asStringList(raw["publications"]),
		Awards:             asStringList(raw["awards"]),
		Bio:                asString(raw["bio"]),
	}
}

// --- coercion helpers ---
//
// JSON from a language model routinely mixes up types: numbers as strings,
// null where a list belongs, "true" as a string. These helpers fold all of
// that into the type the schema wants, treating anything unusable as absent.

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "true")
	default:
		return false
	}
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asStringList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, it := range t {
			if s := asString(it); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return t
	default:
		return []string{}
	}
}
