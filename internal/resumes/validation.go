package resumes

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// rawAnalysis mirrors the expected completion output with pointer fields so
// an absent field is distinguishable from a zero value.
type rawAnalysis struct {
	Score        *float64               `json:"score"`
	Summary      *string                `json:"summary"`
	Strengths    *[]string              `json:"strengths"`
	Improvements *[]string              `json:"improvements"`
	KeywordMatch *rawKeywordMatch       `json:"keywordMatch"`
	Sections     map[string]*rawSection `json:"sections"`
	Suggestions  *[]rawSuggestion       `json:"suggestions"`
}

type rawKeywordMatch struct {
	Technical *float64 `json:"technical"`
	Soft      *float64 `json:"soft"`
	Industry  *float64 `json:"industry"`
}

type rawSection struct {
	Status  *string `json:"status"`
	Message *string `json:"message"`
}

type rawSuggestion struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Example     *string `json:"example"`
}

// ValidateAnalysis parses completion output and enforces the full analysis
// contract. Parse failures return ErrMalformedOutput; well-formed JSON with
// the wrong shape returns a *SchemaError naming the first offending field.
// Validation is all-or-nothing: a single violation rejects the whole output.
func ValidateAnalysis(output string) (StructuredAnalysis, error) {
	var probe any
	if err := json.Unmarshal([]byte(output), &probe); err != nil {
		return StructuredAnalysis{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if _, ok := probe.(map[string]any); !ok {
		return StructuredAnalysis{}, &SchemaError{Reason: "top level is not a JSON object"}
	}

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(output), &raw); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
			return StructuredAnalysis{}, &SchemaError{Field: typeErr.Field, Reason: "wrong type, got " + typeErr.Value}
		}
		return StructuredAnalysis{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	if raw.Score == nil {
		return StructuredAnalysis{}, &SchemaError{Field: "score", Reason: "missing"}
	}
	if err := checkScore("score", *raw.Score); err != nil {
		return StructuredAnalysis{}, err
	}
	if raw.Summary == nil {
		return StructuredAnalysis{}, &SchemaError{Field: "summary", Reason: "missing"}
	}
	if strings.TrimSpace(*raw.Summary) == "" {
		return StructuredAnalysis{}, &SchemaError{Field: "summary", Reason: "empty"}
	}
	if raw.Strengths == nil {
		return StructuredAnalysis{}, &SchemaError{Field: "strengths", Reason: "missing"}
	}
	if raw.Improvements == nil {
		return StructuredAnalysis{}, &SchemaError{Field: "improvements", Reason: "missing"}
	}

	if raw.KeywordMatch == nil {
		return StructuredAnalysis{}, &SchemaError{Field: "keywordMatch", Reason: "missing"}
	}
	keywordScores := []struct {
		name  string
		value *float64
	}{
		{name: "keywordMatch.technical", value: raw.KeywordMatch.Technical},
		{name: "keywordMatch.soft", value: raw.KeywordMatch.Soft},
		{name: "keywordMatch.industry", value: raw.KeywordMatch.Industry},
	}
	for _, ks := range keywordScores {
		if ks.value == nil {
			return StructuredAnalysis{}, &SchemaError{Field: ks.name, Reason: "missing"}
		}
		if err := checkScore(ks.name, *ks.value); err != nil {
			return StructuredAnalysis{}, err
		}
	}

	if raw.Sections == nil {
		return StructuredAnalysis{}, &SchemaError{Field: "sections", Reason: "missing"}
	}
	sections := make(map[string]SectionReview, len(SectionNames))
	for _, name := range SectionNames {
		sec, ok := raw.Sections[name]
		if !ok || sec == nil {
			return StructuredAnalysis{}, &SchemaError{Field: "sections." + name, Reason: "missing"}
		}
		if sec.Status == nil {
			return StructuredAnalysis{}, &SchemaError{Field: "sections." + name + ".status", Reason: "missing"}
		}
		status := SectionStatus(*sec.Status)
		switch status {
		case StatusGood, StatusMissing, StatusNeedsWork:
		default:
			return StructuredAnalysis{}, &SchemaError{
				Field:  "sections." + name + ".status",
				Reason: fmt.Sprintf("%q is not one of good, missing, needs-work", *sec.Status),
			}
		}
		if sec.Message == nil {
			return StructuredAnalysis{}, &SchemaError{Field: "sections." + name + ".message", Reason: "missing"}
		}
		sections[name] = SectionReview{Status: status, Message: *sec.Message}
	}

	if raw.Suggestions == nil {
		return StructuredAnalysis{}, &SchemaError{Field: "suggestions", Reason: "missing"}
	}
	suggestions := make([]Suggestion, 0, len(*raw.Suggestions))
	for i, sg := range *raw.Suggestions {
		prefix := fmt.Sprintf("suggestions[%d]", i)
		if sg.Title == nil || strings.TrimSpace(*sg.Title) == "" {
			return StructuredAnalysis{}, &SchemaError{Field: prefix + ".title", Reason: "missing"}
		}
		if sg.Description == nil || strings.TrimSpace(*sg.Description) == "" {
			return StructuredAnalysis{}, &SchemaError{Field: prefix + ".description", Reason: "missing"}
		}
		if sg.Example == nil || strings.TrimSpace(*sg.Example) == "" {
			return StructuredAnalysis{}, &SchemaError{Field: prefix + ".example", Reason: "missing"}
		}
		suggestions = append(suggestions, Suggestion{
			Title:       *sg.Title,
			Description: *sg.Description,
			Example:     *sg.Example,
		})
	}

	return StructuredAnalysis{
		Score:        int(math.Round(*raw.Score)),
		Summary:      *raw.Summary,
		Strengths:    *raw.Strengths,
		Improvements: *raw.Improvements,
		KeywordMatch: KeywordMatch{
			Technical: int(math.Round(*raw.KeywordMatch.Technical)),
			Soft:      int(math.Round(*raw.KeywordMatch.Soft)),
			Industry:  int(math.Round(*raw.KeywordMatch.Industry)),
		},
		Sections:    sections,
		Suggestions: suggestions,
	}, nil
}

func checkScore(field string, v float64) error {
	if !isInteger(v) {
		return &SchemaError{Field: field, Reason: "must be an integer"}
	}
	if v < 0 || v > 100 {
		return &SchemaError{Field: field, Reason: fmt.Sprintf("must be between 0 and 100, got %g", v)}
	}
	return nil
}

func isInteger(v float64) bool {
	return math.Abs(v-math.Round(v)) <= 0.000001
}
