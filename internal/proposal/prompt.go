package proposal

import (
	"fmt"
	"strings"

	"github.com/proposalarchitect/speakerscout/models"
)

const proposalSystemPrompt = `You are an expert at writing compelling speaker proposals and conference pitches.

Write professional, personalized proposals that:
1. Open with a strong hook tied to the specific event
2. Clearly articulate the speaker's unique value
3. Reference relevant experience and credentials
4. Propose concrete talk topics suited to the audience
5. Close with a clear call to action

Keep the tone professional but warm. Avoid generic filler.`

func proposalUserPrompt(opp models.RankedOpportunity, prof models.Profile) string {
	var oppParts []string
	oppParts = append(oppParts, "Event: "+opp.EventName)
	oppParts = append(oppParts, "Type: "+string(opp.EventType))
	if opp.Description != "" {
		oppParts = append(oppParts, "Description: "+opp.Description)
	}
	if opp.Location != "" {
		oppParts = append(oppParts, "Location: "+opp.Location)
	}
	if opp.StartDate != "" {
		oppParts = append(oppParts, "Date: "+opp.StartDate)
	}
	if len(opp.MatchingKeywords) > 0 {
		oppParts = append(oppParts, "Matching Keywords: "+strings.Join(opp.MatchingKeywords, ", "))
	}
	if len(opp.MatchReasons) > 0 {
		oppParts = append(oppParts, "Why this is a fit: "+strings.Join(opp.MatchReasons, "; "))
	}

	return fmt.Sprintf(`Please write a speaker proposal for this opportunity.

**OPPORTUNITY:**
%s

**SPEAKER PROFILE:**
%s

**OUTPUT FORMAT:**
Return a JSON object with the following structure:
{
  "subject_line": "Email subject line",
  "greeting": "Dear ...",
  "opening_paragraph": "...",
  "value_proposition": "...",
  "relevant_experience": "...",
  "proposed_topics": ["Topic 1", "Topic 2", "Topic 3"],
  "closing_paragraph": "...",
  "signature": "Best regards, ...",
  "full_proposal": "The complete proposal text ready to send"
}

Return ONLY the JSON object, no additional text.`, strings.Join(oppParts, "\n"), prof.Summary)
}
