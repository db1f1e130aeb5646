package llm

import "strings"

// AnalysisSystemPrompt is the system instruction sent with every resume
// analysis request.
const AnalysisSystemPrompt = "You are an expert resume reviewer. Always respond with valid JSON only."

const analysisPromptHeader = `You are an expert resume reviewer and career coach.

Analyze the resume carefully and return feedback in STRICT JSON format.

IMPORTANT RULES (CRITICAL):
1. Return ONLY valid JSON.
2. Do NOT include markdown.
3. Do NOT include backticks.
4. Do NOT include explanations outside JSON.
5. For every "status" field inside "sections", you MUST use ONLY one of these exact values:
   - "good"
   - "missing"
   - "needs-work"
6. Do NOT use variations like:
   - "needs improvement"
   - "needs-improvement"
   - "average"
   - "poor"
   - "weak"
   - or any other wording

If you use any value outside:
"good", "missing", "needs-work"
the response will be rejected.
`

const analysisPromptSchema = `Return a JSON object with EXACTLY this structure:

{
  "score": number (0-100),
  "summary": "Brief overall summary of the resume",
  "strengths": ["Strength 1", "Strength 2", "Strength 3", "Strength 4"],
  "improvements": ["Improvement 1", "Improvement 2", "Improvement 3", "Improvement 4", "Improvement 5"],
  "keywordMatch": {
    "technical": number (0-100),
    "soft": number (0-100),
    "industry": number (0-100)
  },
  "sections": {
    "contact": { "status": "good", "message": "Short explanation" },
    "summary": { "status": "missing", "message": "Short explanation" },
    "experience": { "status": "needs-work", "message": "Short explanation" },
    "education": { "status": "good", "message": "Short explanation" },
    "skills": { "status": "good", "message": "Short explanation" },
    "projects": { "status": "needs-work", "message": "Short explanation" }
  },
  "suggestions": [
    {
      "title": "Improvement title",
      "description": "Clear explanation of what to improve",
      "example": "Concrete example the user can follow"
    }
  ]
}`

// BuildAnalysisPrompt renders the analysis instruction text. It is a pure
// function: identical inputs produce a byte-identical prompt.
func BuildAnalysisPrompt(resumeText, jobDescription string) string {
	var b strings.Builder
	b.WriteString(analysisPromptHeader)
	b.WriteString("\nResume Content:\n")
	b.WriteString(resumeText)
	b.WriteString("\n")
	if strings.TrimSpace(jobDescription) != "" {
		b.WriteString("\nTarget Job Description: ")
		b.WriteString(jobDescription)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(analysisPromptSchema)
	b.WriteString("\n")
	return b.String()
}
