package profile

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/proposalarchitect/speakerscout/internal/extract"
	"github.com/proposalarchitect/speakerscout/models"
	"github.com/proposalarchitect/speakerscout/provider"
)

// Parser extracts a structured candidate profile from raw text through one
// LLM call and derives the flattened summary used as the comparison anchor
// at ranking time.
type Parser struct {
	llm    provider.Provider
	logger *log.Logger
}

func NewParser(llm provider.Provider) *Parser {
	return &Parser{
		llm:    llm,
		logger: log.New(log.Writer(), "[PROFILE] ", log.LstdFlags),
	}
}

// Parse builds a Profile from free-form profile text plus an optional
// preferences blurb. An unusable LLM response degrades to a profile carrying
// only the raw text; the summary is always derivable.
func (p *Parser) Parse(ctx context.Context, profileText, preferencesText string) (models.Profile, error) {
	raw := strings.TrimSpace(profileText)
	if raw == "" {
		return models.Profile{}, fmt.Errorf("profile text is empty")
	}

	prof := models.Profile{RawText: raw}

	resp, err := p.llm.Complete(ctx, profileSystemPrompt, profileUserPrompt(raw))
	if err != nil {
		p.logger.Printf("profile extraction call failed, keeping raw text only: %v", err)
	} else if records := extract.Records(resp, "profile"); len(records) > 0 {
		parsed := extract.NormalizeProfile(records[0])
		parsed.RawText = raw
		prof = parsed
	} else {
		p.logger.Printf("profile extraction response unparseable, keeping raw text only")
	}

	prof.ID = "profile_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	prof.Summary = Summary(prof, preferencesText)
	return prof, nil
}

// Summary flattens the structured profile into the deterministic text block
// handed to the ranking prompt. Field order is fixed; regenerating the
// summary for the same profile always yields the same string.
func Summary(p models.Profile, preferencesText string) string {
	var parts []string
	add := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			parts = append(parts, label+": "+value)
		}
	}

	add("Name", p.Name)
	add("Title", p.Title)
	add("Primary Expertise", strings.Join(p.PrimaryExpertise, ", "))
	add("Secondary Expertise", strings.Join(p.SecondaryExpertise, ", "))
	if p.YearsOfExperience > 0 {
		add("Years of Experience", strconv.Itoa(p.YearsOfExperience))
	}
	add("Speaking Experience", p.SpeakingExperience)
	add("Notable Venues", strings.Join(p.NotableVenues, ", "))
	add("Education", strings.Join(p.Education, ", "))
	add("Publications", strings.Join(p.Publications, ", "))
	add("Awards", strings.Join(p.Awards, ", "))
	add("Bio", p.Bio)
	add("Preferences", preferencesText)

	return strings.Join(parts, "\n")
}
