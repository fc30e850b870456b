package ai

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/risk_assessment.md
var riskAssessmentPromptRaw string

// RiskAssessmentTemplate is the parsed prompt for automation-risk assessment.
// It expects {{.JobTitle}} and {{.Category}}.
var RiskAssessmentTemplate = template.Must(template.New("risk_assessment").Parse(riskAssessmentPromptRaw))
