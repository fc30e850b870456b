package analyzer

import (
	"math"
	"strings"

	"github.com/DorinSirca/ismyjobcooked-api/internal/filter"
)

const (
	categoryManagement     = "management"
	categoryAdministrative = "administrative"
	categoryGeneral        = "general"
)

// newCategoryMatcher scans in a fixed order; the first category with a
// keyword in the title wins.
func newCategoryMatcher() *filter.KeywordMatcher {
	return filter.NewKeywordMatcher().
		Add("finance", "accountant", "analyst", "banker", "financial", "investment", "trading", "auditor").
		Add("technology", "developer", "engineer", "programmer", "scientist", "architect", "devops", "data").
		Add("healthcare", "doctor", "nurse", "therapist", "technician", "medical", "health", "clinical").
		Add("education", "teacher", "professor", "instructor", "educator", "tutor", "academic").
		Add("retail", "cashier", "sales", "customer", "service", "representative", "clerk").
		Add("media", "designer", "writer", "editor", "content", "creative", "artist", "journalist").
		Add("legal", "lawyer", "attorney", "paralegal", "legal", "counsel", "advocate").
		Add("manufacturing", "worker", "operator", "technician", "inspector", "factory", "production")
}

var (
	managementKeywords     = []string{"manager", "director", "executive"}
	administrativeKeywords = []string{"assistant", "coordinator", "specialist"}
)

type riskFactor struct {
	name   string
	weight float64
}

var riskFactors = []riskFactor{
	{"data entry", 0.8},
	{"repetitive tasks", 0.7},
	{"rule-based decisions", 0.6},
	{"document processing", 0.75},
	{"customer service", 0.65},
	{"basic analysis", 0.5},
	{"reporting", 0.6},
	{"scheduling", 0.7},
	{"quality control", 0.8},
	{"inventory management", 0.75},
	{"basic coding", 0.4},
	{"content creation", 0.6},
	{"translation", 0.8},
	{"bookkeeping", 0.85},
	{"data collection", 0.7},
	{"phone support", 0.8},
	{"email handling", 0.7},
	{"form processing", 0.8},
	{"basic research", 0.5},
	{"social media management", 0.6},
}

var categoryAdjustments = map[string]float64{
	"finance":              0.1,
	"technology":           -0.2,
	"healthcare":           -0.3,
	"education":            -0.1,
	"retail":               0.2,
	"media":                0.0,
	"legal":                -0.2,
	"manufacturing":        0.3,
	categoryManagement:     -0.3,
	categoryAdministrative: 0.1,
	categoryGeneral:        0.0,
}

var aiToolsByCategory = map[string][]string{
	"finance":       {"QuickBooks AI", "Xero", "Sage Intacct", "Tableau AI", "Power BI"},
	"technology":    {"GitHub Copilot", "ChatGPT", "Claude", "AutoML", "DataRobot"},
	"healthcare":    {"IBM Watson", "Google Health AI", "AI diagnostics", "telemedicine"},
	"education":     {"Khan Academy", "Duolingo", "ChatGPT", "AI tutoring systems"},
	"retail":        {"ChatGPT", "Intercom", "Zendesk AI", "Self-checkout systems"},
	"media":         {"Midjourney", "DALL-E", "Canva AI", "ChatGPT", "Jasper"},
	"legal":         {"LexisNexis AI", "DoNotPay", "Harvey AI", "Legal AI tools"},
	"manufacturing": {"Industrial robots", "IoT sensors", "AI vision systems"},
}

var defaultRiskFactors = map[string][]string{
	"finance":              {"data processing", "reporting", "analysis"},
	"technology":           {"code generation", "testing", "documentation"},
	"healthcare":           {"data entry", "scheduling", "basic diagnostics"},
	"education":            {"grading", "content creation", "administration"},
	"retail":               {"customer service", "inventory", "transactions"},
	"media":                {"content creation", "editing", "formatting"},
	"legal":                {"document review", "research", "form preparation"},
	"manufacturing":        {"quality control", "monitoring", "assembly"},
	categoryManagement:     {"reporting", "scheduling", "communication"},
	categoryAdministrative: {"data entry", "scheduling", "documentation"},
	categoryGeneral:        {"repetitive tasks", "data processing", "basic analysis"},
}

var baseSalaries = map[string]float64{
	"finance":              65000,
	"technology":           85000,
	"healthcare":           70000,
	"education":            50000,
	"retail":               35000,
	"media":                55000,
	"legal":                80000,
	"manufacturing":        45000,
	categoryManagement:     75000,
	categoryAdministrative: 45000,
	categoryGeneral:        50000,
}

// categorize returns the lower-case category for title.
func (a *Analyzer) categorize(title string) string {
	if c, ok := a.matcher.Match(title); ok {
		return c
	}
	lower := strings.ToLower(title)
	switch {
	case filter.ContainsAny(lower, managementKeywords):
		return categoryManagement
	case filter.ContainsAny(lower, administrativeKeywords):
		return categoryAdministrative
	default:
		return categoryGeneral
	}
}

// baseRisk averages the weights of the risk factors named in the title (50
// when none are), shifts by the category adjustment and clamps to [0, 100].
func baseRisk(title, category string) int {
	lower := strings.ToLower(title)
	var sum float64
	n := 0
	for _, f := range riskFactors {
		squashed := strings.Replace(f.name, " ", "", 1)
		if strings.Contains(lower, squashed) || strings.Contains(lower, f.name) {
			sum += f.weight
			n++
		}
	}

	risk := 50.0
	if n > 0 {
		risk = sum / float64(n) * 100
	}
	risk += categoryAdjustments[category] * 100
	return int(math.Round(clamp(risk, 0, 100)))
}

func toolsFor(category string) []string {
	if tools, ok := aiToolsByCategory[category]; ok {
		return append([]string(nil), tools...)
	}
	return []string{"General AI tools"}
}

func factorsFor(category string) []string {
	if f, ok := defaultRiskFactors[category]; ok {
		return append([]string(nil), f...)
	}
	return []string{"general automation"}
}

// ReplacementStatus is the aiReplacements tier for a risk score.
func ReplacementStatus(risk int) string {
	switch {
	case risk >= 80:
		return "ACTIVE"
	case risk >= 60:
		return "EMERGING"
	case risk >= 40:
		return "LIMITED"
	default:
		return "MINIMAL"
	}
}

// TimeToAutomation is the horizon estimate for a risk score.
func TimeToAutomation(risk int) string {
	switch {
	case risk >= 80:
		return "1-3 years"
	case risk >= 60:
		return "3-5 years"
	case risk >= 40:
		return "5-10 years"
	default:
		return "10+ years"
	}
}

// EstimateSalary scales the category's base salary down with risk and up with
// creativity, clamped to [25000, 200000].
func EstimateSalary(category string, risk, creativity int) int {
	base, ok := baseSalaries[category]
	if !ok {
		base = 50000
	}
	riskAdj := float64(100-risk) / 100
	creativityAdj := float64(creativity) / 100
	salary := math.Round(base * (0.8 + riskAdj*0.2 + creativityAdj*0.3))
	return int(clamp(salary, 25000, 200000))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
