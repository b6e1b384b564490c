package profile

import "fmt"

const profileSystemPrompt = `You are an expert at analyzing professional profiles and resumes.
Extract key information and return it as a JSON object.`

func profileUserPrompt(rawText string) string {
	return fmt.Sprintf(`Please analyze the following profile/resume text and extract key information.

**RAW TEXT:**
%s

**OUTPUT FORMAT:**
Return a JSON object with the following structure:
{
  "name": "Full Name",
  "title": "Professional Title",
  "primary_expertise": ["Area 1", "Area 2"],
  "secondary_expertise": ["Area 3", "Area 4"],
  "keywords": ["keyword1", "keyword2", "keyword3"],
  "years_of_experience": 10,
  "speaking_experience": "Description of speaking experience",
  "notable_talks": ["Talk 1", "Talk 2"],
  "notable_venues": ["Venue 1", "Venue 2"],
  "education": ["Degree 1", "Degree 2"],
  "certifications": ["Cert 1", "Cert 2"],
  "publications": ["Publication 1"],
  "awards": ["Award 1"],
  "bio": "A brief professional bio (2-3 sentences)",
  "summary": "A one-paragraph summary of the candidate's profile"
}

Return ONLY the JSON object, no additional text.`, rawText)
}
