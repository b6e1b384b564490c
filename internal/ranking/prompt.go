package ranking

import "fmt"

const rankingSystemPrompt = `You are an expert career advisor specializing in matching speakers and thought leaders with speaking opportunities.

Your task is to analyze a candidate's profile and rank speaking opportunities based on how well they match the candidate's:
1. Expertise and knowledge areas
2. Experience level and credentials
3. Preferences (compensation, location, format)
4. Availability (checking for expired deadlines)

For each opportunity, provide:
- A match score (0.0 to 1.0)
- Key reasons why this opportunity is a good/bad fit
- Matching keywords between profile and opportunity

Be objective and accurate in your assessments.`

func rankingUserPrompt(profileSummary, opportunitiesText, currentDate string) string {
	return fmt.Sprintf(`Please rank the following speaking opportunities for this candidate.

**CURRENT DATE:** %s

**CANDIDATE PROFILE:**
%s

**OPPORTUNITIES TO RANK:**
%s

**INSTRUCTIONS:**
1. Filter out any opportunities with expired application deadlines (before %s)
2. Score each valid opportunity from 0.0 to 1.0 based on match quality
3. Identify specific reasons for the match/mismatch
4. List matching keywords between profile and opportunity

**OUTPUT FORMAT:**
Return a JSON array with the following structure for each opportunity:
[
  {
    "opportunity_id": "the opportunity id",
    "event_name": "event name",
    "match_score": 0.85,
    "relevance_score": 0.9,
    "preference_score": 0.8,
    "match_reasons": ["Reason 1", "Reason 2"],
    "matching_keywords": ["keyword1", "keyword2"]
  }
]

Sort the results by match_score in descending order (best matches first).
Return ONLY the JSON array, no additional text.`, currentDate, profileSummary, opportunitiesText, currentDate)
}
