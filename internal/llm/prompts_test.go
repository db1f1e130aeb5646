package llm

import (
	"strings"
	"testing"
)

func TestBuildAnalysisPromptDeterministic(t *testing.T) {
	a := BuildAnalysisPrompt("resume text", "backend engineer")
	b := BuildAnalysisPrompt("resume text", "backend engineer")
	if a != b {
		t.Fatal("identical inputs must produce identical prompts")
	}
}

func TestBuildAnalysisPromptIncludesJobDescription(t *testing.T) {
	p := BuildAnalysisPrompt("resume text", "backend engineer at Acme")
	if !strings.Contains(p, "Target Job Description: backend engineer at Acme") {
		t.Fatalf("job description not embedded:\n%s", p)
	}
}

func TestBuildAnalysisPromptOmitsBlankJobDescription(t *testing.T) {
	for _, jd := range []string{"", "   ", "\n\t"} {
		p := BuildAnalysisPrompt("resume text", jd)
		if strings.Contains(p, "Target Job Description") {
			t.Fatalf("blank job description %q should be omitted", jd)
		}
	}
}

func TestBuildAnalysisPromptEnforcesStatusVocabulary(t *testing.T) {
	p := BuildAnalysisPrompt("resume text", "")
	for _, want := range []string{`"good"`, `"missing"`, `"needs-work"`, "needs improvement"} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
	if !strings.Contains(p, "Resume Content:\nresume text") {
		t.Fatalf("resume text not embedded:\n%s", p)
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "no fences", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "surrounding whitespace", in: "  \n{\"a\":1}\n  ", want: `{"a":1}`},
		{name: "leading fence only", in: "```json\n{\"a\":1}", want: `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripFences(tc.in); got != tc.want {
				t.Fatalf("StripFences(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
