package proposal

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/proposalarchitect/speakerscout/internal/extract"
	"github.com/proposalarchitect/speakerscout/models"
	"github.com/proposalarchitect/speakerscout/provider"
)

// Generator writes outreach proposals for ranked opportunities. Every call
// produces a usable proposal: when the LLM response is unusable a template
// fallback is assembled from the deterministic opportunity fields instead.
type Generator struct {
	llm    provider.Provider
	logger *log.Logger
	now    func() time.Time
}

func NewGenerator(llm provider.Provider) *Generator {
	return &Generator{
		llm:    llm,
		logger: log.New(log.Writer(), "[PROPOSAL] ", log.LstdFlags),
		now:    time.Now,
	}
}

// Generate produces one proposal for a ranked opportunity. LLM or parse
// failures fall back to a deterministic template proposal flagged with
// IsFallback; Generate never returns an error.
func (g *Generator) Generate(ctx context.Context, opp models.RankedOpportunity, prof models.Profile) models.Proposal {
	resp, err := g.llm.Complete(ctx, proposalSystemPrompt, proposalUserPrompt(opp, prof))
	if err != nil {
		g.logger.Printf("proposal call failed for %s, using fallback: %v", opp.OpportunityID, err)
		return g.fallback(opp, prof)
	}

	records := extract.Records(resp, "proposal")
	if len(records) == 0 {
		g.logger.Printf("proposal response unparseable for %s, using fallback", opp.OpportunityID)
		return g.fallback(opp, prof)
	}

	var p models.Proposal
	if b, err := json.Marshal(records[0]); err == nil {
		_ = json.Unmarshal(b, &p)
	}
	if strings.TrimSpace(p.FullProposal) == "" {
		p.FullProposal = assembleFull(p)
	}
	if strings.TrimSpace(p.FullProposal) == "" {
		g.logger.Printf("proposal response empty for %s, using fallback", opp.OpportunityID)
		return g.fallback(opp, prof)
	}

	g.finalize(&p, opp)
	return p
}

// GenerateBatch produces proposals for the top n ranked opportunities, in
// ranking order. n <= 0 means all of them.
func (g *Generator) GenerateBatch(ctx context.Context, ranked []models.RankedOpportunity, prof models.Profile, n int) []models.Proposal {
	if n <= 0 || n > len(ranked) {
		n = len(ranked)
	}
	proposals := make([]models.Proposal, 0, n)
	for _, opp := range ranked[:n] {
		proposals = append(proposals, g.Generate(ctx, opp, prof))
	}
	g.logger.Printf("generated %d proposals", len(proposals))
	return proposals
}

// FormatForDownload renders proposals as one plain-text document, separated
// by rules, suitable for a file download.
func FormatForDownload(proposals []models.Proposal) string {
	var b strings.Builder
	for i, p := range proposals {
		if i > 0 {
			b.WriteString("\n\n" + strings.Repeat("=", 70) + "\n\n")
		}
		fmt.Fprintf(&b, "PROPOSAL %d: %s\n", i+1, p.EventName)
		fmt.Fprintf(&b, "Subject: %s\n\n", p.SubjectLine)
		b.WriteString(p.FullProposal)
	}
	return b.String()
}

// finalize stamps the metadata fields the model must not control.
func (g *Generator) finalize(p *models.Proposal, opp models.RankedOpportunity) {
	p.ID = "proposal_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	p.OpportunityID = opp.OpportunityID
	p.EventName = opp.EventName
	p.WordCount = len(strings.Fields(p.FullProposal))
	p.GeneratedAt = g.now().UTC()
}

// fallback assembles a plain template proposal from fields already on hand.
func (g *Generator) fallback(opp models.RankedOpportunity, prof models.Profile) models.Proposal {
	name := prof.Name
	if name == "" {
		name = "the candidate"
	}
	expertise := strings.Join(prof.PrimaryExpertise, ", ")
	if expertise == "" {
		expertise = "their field"
	}

	p := models.Proposal{
		SubjectLine:      fmt.Sprintf("Speaker Proposal for %s", opp.EventName),
		Greeting:         "Dear Organizing Committee,",
		OpeningParagraph: fmt.Sprintf("I am writing to express my interest in speaking at %s.", opp.EventName),
		ValueProposition: fmt.Sprintf("%s brings deep expertise in %s and a track record of engaging talks.", name, expertise),
		ClosingParagraph: "I would welcome the chance to discuss how my session could fit your program.",
		Signature:        fmt.Sprintf("Best regards,\n%s", name),
		IsFallback:       true,
	}
	p.FullProposal = assembleFull(p)
	g.finalize(&p, opp)
	return p
}

// assembleFull joins the structured sections into the send-ready text,
// skipping empty sections.
func assembleFull(p models.Proposal) string {
	sections := []string{
		p.Greeting,
		p.OpeningParagraph,
		p.ValueProposition,
		p.RelevantExperience,
	}
	if len(p.ProposedTopics) > 0 {
		var topics strings.Builder
		topics.WriteString("Proposed topics:\n")
		for _, t := range p.ProposedTopics {
			topics.WriteString("- " + t + "\n")
		}
		sections = append(sections, strings.TrimRight(topics.String(), "\n"))
	}
	sections = append(sections, p.ClosingParagraph, p.Signature)

	var parts []string
	for _, s := range sections {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}
