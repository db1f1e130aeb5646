package resumes

import (
	"bytes"
	"fmt"
	"html/template"
)

// All analysis text in the report comes from model output and is untrusted,
// so rendering goes through html/template for contextual escaping.
const reportTemplate = `<!DOCTYPE html>
<html>
<head>
  <title>Resume Analysis Report</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 40px auto; padding: 20px; }
    h1 { color: #0ea5e9; border-bottom: 2px solid #0ea5e9; padding-bottom: 10px; }
    .score { font-size: 48px; font-weight: bold; color: #0ea5e9; text-align: center; margin: 20px 0; }
    .section { margin: 30px 0; padding: 20px; border: 1px solid #ddd; border-radius: 8px; }
    .strength { color: #10b981; margin: 5px 0; }
    .improvement { color: #f59e0b; margin: 5px 0; }
    .suggestion { background: #f3f4f6; padding: 15px; border-radius: 8px; margin: 10px 0; }
    .keyword-bar { height: 20px; background: #e5e7eb; border-radius: 10px; margin: 10px 0; }
    .keyword-fill { height: 100%; background: linear-gradient(to right, #0ea5e9, #3b82f6); border-radius: 10px; }
  </style>
</head>
<body>
  <h1>Resume Analysis Report</h1>
  <p>File: {{.FileName}}</p>
  <p>Date: {{.CreatedAt.Format "2006-01-02"}}</p>

  <div class="score">{{.Analysis.Score}}/100</div>
  <p>{{.Analysis.Summary}}</p>

  <div class="section">
    <h2>Strengths</h2>
    {{range .Analysis.Strengths}}<div class="strength">&#10003; {{.}}</div>{{end}}
  </div>

  <div class="section">
    <h2>Areas for Improvement</h2>
    {{range .Analysis.Improvements}}<div class="improvement">&#9888; {{.}}</div>{{end}}
  </div>

  <div class="section">
    <h2>Keyword Match</h2>
    <div>Technical: {{.Analysis.KeywordMatch.Technical}}%</div>
    <div class="keyword-bar"><div class="keyword-fill" style="width: {{.Analysis.KeywordMatch.Technical}}%"></div></div>
    <div>Soft Skills: {{.Analysis.KeywordMatch.Soft}}%</div>
    <div class="keyword-bar"><div class="keyword-fill" style="width: {{.Analysis.KeywordMatch.Soft}}%"></div></div>
    <div>Industry: {{.Analysis.KeywordMatch.Industry}}%</div>
    <div class="keyword-bar"><div class="keyword-fill" style="width: {{.Analysis.KeywordMatch.Industry}}%"></div></div>
  </div>

  <div class="section">
    <h2>AI Suggestions</h2>
    {{range .Analysis.Suggestions}}
    <div class="suggestion">
      <h3>{{.Title}}</h3>
      <p>{{.Description}}</p>
      <p><strong>Example:</strong> {{.Example}}</p>
    </div>
    {{end}}
  </div>
</body>
</html>
`

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

// RenderReport produces the standalone HTML report for a record.
func RenderReport(rec Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, rec); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
