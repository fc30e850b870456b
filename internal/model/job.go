package model

import "context"

// JobRecord is the automation-risk profile of a single job title.
type JobRecord struct {
	Title              string   `json:"title"`
	Category           string   `json:"category"`
	AutomationRisk     int      `json:"automationRisk"`     // 0-100
	MedianSalary       int      `json:"medianSalary"`       // whole dollars
	CreativityRequired int      `json:"creativityRequired"` // 0-100
	AIReplacements     string   `json:"aiReplacements"`     // ACTIVE, EMERGING, LIMITED, MINIMAL, ...
	RiskFactors        []string `json:"riskFactors"`
	AITools            []string `json:"aiTools"`
	TimeToAutomation   string   `json:"timeToAutomation"`
}

// JobAnalyzer derives a JobRecord for a title that is not in the curated table.
// It never fails: when every strategy is exhausted it returns a fallback record.
type JobAnalyzer interface {
	Analyze(ctx context.Context, title string) JobRecord
}
