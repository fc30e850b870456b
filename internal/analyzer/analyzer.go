// Package analyzer derives an automation-risk profile for job titles that are
// not in the curated table.
package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/DorinSirca/ismyjobcooked-api/internal/ai"
	"github.com/DorinSirca/ismyjobcooked-api/internal/filter"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

// Assessor is the optional external opinion on a job's automation risk.
type Assessor interface {
	Assess(ctx context.Context, jobTitle, category string) (*ai.Assessment, error)
}

// Analyzer implements model.JobAnalyzer with keyword heuristics, optionally
// blended with an LLM assessment.
type Analyzer struct {
	assessor Assessor
	matcher  *filter.KeywordMatcher
	timeout  time.Duration
	logger   *slog.Logger
}

var _ model.JobAnalyzer = (*Analyzer)(nil)

// New creates an Analyzer. A nil assessor disables the external assessment.
// timeout bounds the whole assessment including retries; zero means no bound
// beyond the caller's context.
func New(assessor Assessor, timeout time.Duration, logger *slog.Logger) *Analyzer {
	if assessor == nil {
		assessor = ai.NewNopAssessor()
	}
	return &Analyzer{
		assessor: assessor,
		matcher:  newCategoryMatcher(),
		timeout:  timeout,
		logger:   logger,
	}
}

// Analyze never fails. External errors fall back to the heuristics and a
// panic anywhere in the path yields a randomized record.
func (a *Analyzer) Analyze(ctx context.Context, title string) (rec model.JobRecord) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("job analysis panicked, returning random fallback",
				"job_title", title,
				"panic", r,
			)
			rec = a.Fallback(title)
		}
	}()

	a.logger.Info("analyzing unknown job", "job_title", title)

	category := a.categorize(title)
	base := baseRisk(title, category)
	assessment := a.assess(ctx, title, category)

	rec = combine(title, category, base, assessment)

	a.logger.Info("job analysis completed",
		"job_title", title,
		"category", category,
		"automation_risk", rec.AutomationRisk,
		"assessed", assessment != nil,
	)
	return rec
}

func (a *Analyzer) assess(ctx context.Context, title, category string) *ai.Assessment {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	assessment, err := a.assessor.Assess(ctx, title, category)
	switch {
	case err == nil:
		return assessment
	case errors.Is(err, ai.ErrDisabled):
		a.logger.Debug("llm assessment disabled, using heuristics", "job_title", title)
	case errors.Is(err, ai.ErrMalformed):
		a.logger.Warn("llm returned malformed assessment, using heuristics",
			"job_title", title,
			"error", err,
		)
	case errors.Is(err, ai.ErrUnavailable):
		a.logger.Warn("llm unavailable, using heuristics",
			"job_title", title,
			"error", err,
		)
	default:
		a.logger.Error("llm assessment failed, using heuristics",
			"job_title", title,
			"error", err,
		)
	}
	return nil
}

// combine builds the record from the heuristic base risk and, when present,
// the external assessment, which carries 70% of the weight.
func combine(title, category string, base int, assessment *ai.Assessment) model.JobRecord {
	risk := base
	var (
		creativity int
		factors    []string
		tools      []string
		horizon    string
	)

	if assessment != nil {
		risk = int(math.Round(float64(base)*0.3 + float64(assessment.AutomationRisk)*0.7))
		creativity = assessment.CreativityRequired
		if creativity == 0 {
			creativity = 50
		}
		factors = nonNil(assessment.RiskFactors)
		tools = nonNil(assessment.AITools)
		horizon = assessment.TimeToAutomation
		if horizon == "" {
			horizon = "5-10 years"
		}
	} else {
		creativity = max(20, 100-risk)
		factors = factorsFor(category)
		tools = toolsFor(category)
		horizon = TimeToAutomation(risk)
	}

	return model.JobRecord{
		Title:              capitalize(title),
		Category:           capitalize(category),
		AutomationRisk:     risk,
		MedianSalary:       EstimateSalary(category, risk, creativity),
		CreativityRequired: creativity,
		AIReplacements:     ReplacementStatus(risk),
		RiskFactors:        factors,
		AITools:            tools,
		TimeToAutomation:   horizon,
	}
}

// Fallback is the fully randomized record used when analysis itself breaks.
func (a *Analyzer) Fallback(title string) model.JobRecord {
	risk := rand.IntN(60) + 20
	category := categoryGeneral
	func() {
		defer func() { _ = recover() }()
		category = a.categorize(title)
	}()

	return model.JobRecord{
		Title:              capitalize(title),
		Category:           capitalize(category),
		AutomationRisk:     risk,
		MedianSalary:       rand.IntN(80000) + 30000,
		CreativityRequired: max(20, 100-risk),
		AIReplacements:     ReplacementStatus(risk),
		RiskFactors:        factorsFor(category),
		AITools:            toolsFor(category),
		TimeToAutomation:   TimeToAutomation(risk),
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func nonNil(s []string) []string {
	if len(s) == 0 {
		return []string{}
	}
	return append([]string(nil), s...)
}

// Category exposes the heuristic category of a title, lower-cased.
func (a *Analyzer) Category(title string) string {
	return a.categorize(title)
}
