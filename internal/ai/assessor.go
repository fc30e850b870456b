package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
)

// Assessment is the external view of a job's automation risk.
type Assessment struct {
	AutomationRisk     int
	CreativityRequired int // 0 when the model left it out
	RiskFactors        []string
	AITools            []string
	TimeToAutomation   string
	Reasoning          string
}

// Assessor renders the risk prompt, calls the provider and parses the answer.
type Assessor struct {
	provider LLMProvider
	tmpl     *template.Template
	logger   *slog.Logger
}

// NewAssessor creates an Assessor. A nil template selects RiskAssessmentTemplate.
func NewAssessor(provider LLMProvider, tmpl *template.Template, logger *slog.Logger) *Assessor {
	if tmpl == nil {
		tmpl = RiskAssessmentTemplate
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Assessor{provider: provider, tmpl: tmpl, logger: logger}
}

// Assess asks the provider for an assessment of jobTitle within category.
// Errors wrap ErrUnavailable or ErrMalformed.
func (a *Assessor) Assess(ctx context.Context, jobTitle, category string) (*Assessment, error) {
	var promptBuf bytes.Buffer
	if err := a.tmpl.Execute(&promptBuf, struct{ JobTitle, Category string }{
		JobTitle: jobTitle,
		Category: category,
	}); err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	raw, err := a.provider.Complete(ctx, promptBuf.String())
	if err != nil {
		return nil, fmt.Errorf("llm complete: %w", err)
	}

	assessment, err := parseAssessment(raw)
	if err != nil {
		a.logger.Debug("unparseable assessment", "job_title", jobTitle, "raw", truncate(raw, 200))
		return nil, err
	}
	return assessment, nil
}

// rawAssessment is the JSON shape requested from the LLM. AutomationRisk is a
// pointer so a missing field can be told apart from zero.
type rawAssessment struct {
	AutomationRisk     *float64 `json:"automationRisk"`
	CreativityRequired float64  `json:"creativityRequired"`
	RiskFactors        []string `json:"riskFactors"`
	AITools            []string `json:"aiTools"`
	TimeToAutomation   string   `json:"timeToAutomation"`
	Reasoning          string   `json:"reasoning"`
}

// parseAssessment accepts clean JSON, JSON wrapped in a markdown code fence,
// or JSON embedded in prose. Anything else is ErrMalformed.
func parseAssessment(raw string) (*Assessment, error) {
	obj := extractJSONObject(raw)
	if obj == "" {
		return nil, fmt.Errorf("%w: no JSON object in response", ErrMalformed)
	}

	var ra rawAssessment
	if err := json.Unmarshal([]byte(obj), &ra); err != nil {
		return nil, fmt.Errorf("%w: unmarshal assessment: %w", ErrMalformed, err)
	}
	if ra.AutomationRisk == nil {
		return nil, fmt.Errorf("%w: automationRisk missing", ErrMalformed)
	}
	if *ra.AutomationRisk < 0 || *ra.AutomationRisk > 100 {
		return nil, fmt.Errorf("%w: automationRisk %v out of range", ErrMalformed, *ra.AutomationRisk)
	}
	if ra.CreativityRequired < 0 || ra.CreativityRequired > 100 {
		return nil, fmt.Errorf("%w: creativityRequired %v out of range", ErrMalformed, ra.CreativityRequired)
	}

	return &Assessment{
		AutomationRisk:     int(*ra.AutomationRisk + 0.5),
		CreativityRequired: int(ra.CreativityRequired + 0.5),
		RiskFactors:        ra.RiskFactors,
		AITools:            ra.AITools,
		TimeToAutomation:   strings.TrimSpace(ra.TimeToAutomation),
		Reasoning:          ra.Reasoning,
	}, nil
}

// extractJSONObject strips code fences and returns the first balanced {...}
// span, honouring string literals. Returns "" when there is none.
func extractJSONObject(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
