package models

import (
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a session id is unknown or expired
var ErrSessionNotFound = errors.New("session not found")

// OpportunityType classifies a speaking engagement
type OpportunityType string

const (
	TypeConference OpportunityType = "conference"
	TypeSeminar    OpportunityType = "seminar"
	TypeWebinar    OpportunityType = "webinar"
	TypePodcast    OpportunityType = "podcast"
	TypePanel      OpportunityType = "panel"
	TypeWorkshop   OpportunityType = "workshop"
	TypeKeynote    OpportunityType = "keynote"
	TypeOther      OpportunityType = "other"
)

// ValidOpportunityType reports whether t is one of the known event types.
func ValidOpportunityType(t OpportunityType) bool {
	switch t {
	case TypeConference, TypeSeminar, TypeWebinar, TypePodcast, TypePanel, TypeWorkshop, TypeKeynote, TypeOther:
		return true
	}
	return false
}

// CompensationType classifies how an engagement pays
type CompensationType string

const (
	CompPaid       CompensationType = "paid"
	CompHonorarium CompensationType = "honorarium"
	CompTravelOnly CompensationType = "travel_only"
	CompUnpaid     CompensationType = "unpaid"
	CompNegotiable CompensationType = "negotiable"
	CompUnknown    CompensationType = "unknown"
)

// ValidCompensationType reports whether t is a known compensation kind.
func ValidCompensationType(t CompensationType) bool {
	switch t {
	case CompPaid, CompHonorarium, CompTravelOnly, CompUnpaid, CompNegotiable, CompUnknown:
		return true
	}
	return false
}

// DateInfo carries the raw date strings attached to an event. Values stay
// strings until the ranking stage parses them; extraction must never fail on a
// weird date.
type DateInfo struct {
	StartDate           string `json:"start_date,omitempty"`
	EndDate             string `json:"end_date,omitempty"`
	ApplicationDeadline string `json:"application_deadline,omitempty"`
}

type Location struct {
	Venue            string `json:"venue,omitempty"`
	City             string `json:"city,omitempty"`
	State            string `json:"state,omitempty"`
	Country          string `json:"country,omitempty"`
	IsVirtual        bool   `json:"is_virtual"`
	HasVirtualOption bool   `json:"has_virtual_option"`
}

type Compensation struct {
	IsPaid                bool             `json:"is_paid"`
	Type                  CompensationType `json:"compensation_type"`
	Amount                float64          `json:"amount,omitempty"`
	Currency              string           `json:"currency,omitempty"`
	IncludesTravel        bool             `json:"includes_travel"`
	IncludesAccommodation bool             `json:"includes_accommodation"`
	Details               string           `json:"details,omitempty"`
}

type ApplicationInfo struct {
	URL          string   `json:"url,omitempty"`
	ContactEmail string   `json:"contact_email,omitempty"`
	Requirements []string `json:"requirements"`
}

// Opportunity is the canonical record for one speaking engagement. Nested
// sub-records are value types, never pointers: downstream code reads their
// fields unconditionally.
type Opportunity struct {
	ID              string          `json:"id"`
	EventName       string          `json:"event_name"`
	EventType       OpportunityType `json:"event_type"`
	Description     string          `json:"description,omitempty"`
	Dates           DateInfo        `json:"dates"`
	Location        Location        `json:"location"`
	Compensation    Compensation    `json:"compensation"`
	Application     ApplicationInfo `json:"application"`
	TargetAudience  []string        `json:"target_audience"`
	AudienceSize    string          `json:"expected_audience_size,omitempty"`
	KeywordsMatched []string        `json:"keywords_matched"`
	SourceURL       string          `json:"source_url,omitempty"`
	ConfidenceScore float64         `json:"confidence_score"`
}

// SearchMetadata describes one extraction pass over web search results.
type SearchMetadata struct {
	SearchID           string   `json:"search_id"`
	Keywords           []string `json:"keywords"`
	SearchDate         string   `json:"search_date"`
	OpportunityTypes   []string `json:"opportunity_types"`
	LocationPreference string   `json:"location_preference,omitempty"`
	TotalResults       int      `json:"total_results"`
}

type SearchResponse struct {
	SearchMetadata SearchMetadata `json:"search_metadata"`
	Opportunities  []Opportunity  `json:"opportunities"`
}

// SearchRequest is the input for a discovery pass.
type SearchRequest struct {
	Keywords           []string `json:"keywords"`
	OpportunityTypes   []string `json:"opportunity_types"`
	LocationPreference string   `json:"location_preference,omitempty"`
	MaxResults         int      `json:"max_results,omitempty"`
}

// Profile is the structured candidate profile extracted from raw text.
// Created once per upload and never mutated afterwards.
type Profile struct {
	ID                 string   `json:"profile_id"`
	Name               string   `json:"name,omitempty"`
	Title              string   `json:"title,omitempty"`
	PrimaryExpertise   []string `json:"primary_expertise"`
	SecondaryExpertise []string `json:"secondary_expertise"`
	Keywords           []string `json:"keywords"`
	YearsOfExperience  int      `json:"years_of_experience,omitempty"`
	SpeakingExperience string   `json:"speaking_experience,omitempty"`
	NotableTalks       []string `json:"notable_talks"`
	NotableVenues      []string `json:"notable_venues"`
	Education          []string `json:"education"`
	Certifications     []string `json:"certifications"`
	Publications       []string `json:"publications"`
	Awards             []string `json:"awards"`
	Bio                string   `json:"bio,omitempty"`
	RawText            string   `json:"raw_text,omitempty"`
	Summary            string   `json:"profile_summary"`
}

// RankedOpportunity is a read-only view joining an opportunity's deterministic
// fields with the scores produced by one ranking pass. A new pass supersedes
// the previous list; entries are never mutated in place.
type RankedOpportunity struct {
	OpportunityID       string          `json:"opportunity_id"`
	EventName           string          `json:"event_name"`
	EventType           OpportunityType `json:"event_type"`
	Description         string          `json:"description,omitempty"`
	StartDate           string          `json:"start_date,omitempty"`
	EndDate             string          `json:"end_date,omitempty"`
	ApplicationDeadline string          `json:"application_deadline,omitempty"`
	Location            string          `json:"location,omitempty"`
	IsVirtual           bool            `json:"is_virtual"`
	IsPaid              bool            `json:"is_paid"`
	CompensationAmount  float64         `json:"compensation_amount,omitempty"`
	ApplicationURL      string          `json:"application_url,omitempty"`
	SourceURL           string          `json:"source_url,omitempty"`
	MatchScore          float64         `json:"match_score"`
	RelevanceScore      float64         `json:"relevance_score"`
	PreferenceScore     float64         `json:"preference_score"`
	MatchReasons        []string        `json:"match_reasons"`
	MatchingKeywords    []string        `json:"matching_keywords"`
	IsExpired           bool            `json:"is_expired"`
	DaysUntilDeadline   *int            `json:"days_until_deadline,omitempty"`
}

// RankingResult is the output of one ranking pass, including aggregate counts.
type RankingResult struct {
	RankedOpportunities  []RankedOpportunity `json:"ranked_opportunities"`
	TotalOpportunities   int                 `json:"total_opportunities"`
	ValidOpportunities   int                 `json:"valid_opportunities"`
	ExpiredOpportunities int                 `json:"expired_opportunities"`
}

// ScoreEntry is one opportunity's entry in the raw scoring response coming
// back from the LLM. Score fields are pointers so an omitted field is
// distinguishable from a genuine 0.0; the merge substitutes the neutral
// default per absent field.
type ScoreEntry struct {
	OpportunityID    string   `json:"opportunity_id"`
	EventName        string   `json:"event_name,omitempty"`
	MatchScore       *float64 `json:"match_score"`
	RelevanceScore   *float64 `json:"relevance_score"`
	PreferenceScore  *float64 `json:"preference_score"`
	MatchReasons     []string `json:"match_reasons"`
	MatchingKeywords []string `json:"matching_keywords"`
}

// Proposal is a structured pitch generated for one ranked opportunity.
type Proposal struct {
	ID                 string    `json:"id"`
	OpportunityID      string    `json:"opportunity_id"`
	EventName          string    `json:"event_name"`
	SubjectLine        string    `json:"subject_line"`
	Greeting           string    `json:"greeting"`
	OpeningParagraph   string    `json:"opening_paragraph"`
	ValueProposition   string    `json:"value_proposition"`
	RelevantExperience string    `json:"relevant_experience"`
	ProposedTopics     []string  `json:"proposed_topics"`
	ClosingParagraph   string    `json:"closing_paragraph"`
	Signature          string    `json:"signature"`
	FullProposal       string    `json:"full_proposal"`
	WordCount          int       `json:"word_count"`
	IsFallback         bool      `json:"is_fallback,omitempty"`
	GeneratedAt        time.Time `json:"generated_at"`
}

// TextChunk is a bounded substring of a longer document produced for
// embedding. Embedding is nil when generation failed for that chunk; callers
// skip such chunks instead of aborting.
type TextChunk struct {
	Index     int       `json:"index"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding,omitempty"`
}
