package resumes

import "time"

// SectionStatus is the closed vocabulary for per-section review verdicts.
type SectionStatus string

const (
	StatusGood      SectionStatus = "good"
	StatusMissing   SectionStatus = "missing"
	StatusNeedsWork SectionStatus = "needs-work"
)

// SectionNames lists the six resume sections every analysis must cover.
var SectionNames = []string{"contact", "summary", "experience", "education", "skills", "projects"}

// KeywordMatch scores keyword coverage per category, each 0-100.
type KeywordMatch struct {
	Technical int `json:"technical"`
	Soft      int `json:"soft"`
	Industry  int `json:"industry"`
}

// SectionReview is the verdict and explanation for one resume section.
type SectionReview struct {
	Status  SectionStatus `json:"status"`
	Message string        `json:"message"`
}

// Suggestion is one actionable improvement with a concrete example.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

// StructuredAnalysis is the validated analysis document. Instances only exist
// after passing ValidateAnalysis; downstream code may trust every field.
type StructuredAnalysis struct {
	Score        int                      `json:"score"`
	Summary      string                   `json:"summary"`
	Strengths    []string                 `json:"strengths"`
	Improvements []string                 `json:"improvements"`
	KeywordMatch KeywordMatch             `json:"keywordMatch"`
	Sections     map[string]SectionReview `json:"sections"`
	Suggestions  []Suggestion             `json:"suggestions"`
}

// Record is one persisted analysis: file metadata plus the validated result.
type Record struct {
	ID             string             `json:"id"`
	UserID         string             `json:"-"`
	FileName       string             `json:"fileName"`
	FileURL        string             `json:"fileUrl"`
	StorageKey     string             `json:"-"`
	SizeBytes      int64              `json:"sizeBytes"`
	MimeType       string             `json:"mimeType"`
	Analysis       StructuredAnalysis `json:"analysis"`
	JobDescription string             `json:"jobDescription,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}
