package jobs

import (
	"math/rand/v2"
	"strings"

	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

type curatedJob struct {
	key    string
	record model.JobRecord
}

// curated is the hand-maintained table served by /api/jobs/*. Order is
// significant: it drives category ordering and random selection.
var curated = []curatedJob{
	// Finance
	{"junior accountant", model.JobRecord{
		Title: "Junior Accountant", Category: "Finance", AutomationRisk: 88, MedianSalary: 42000,
		CreativityRequired: 15, AIReplacements: "ACTIVE",
		RiskFactors:      []string{"data entry", "repetitive tasks", "rule-based decisions"},
		AITools:          []string{"QuickBooks AI", "Xero", "Sage Intacct"},
		TimeToAutomation: "2-3 years",
	}},
	{"financial analyst", model.JobRecord{
		Title: "Financial Analyst", Category: "Finance", AutomationRisk: 45, MedianSalary: 85000,
		CreativityRequired: 60, AIReplacements: "EMERGING",
		RiskFactors:      []string{"data analysis", "reporting", "basic modeling"},
		AITools:          []string{"Tableau AI", "Power BI", "Alteryx"},
		TimeToAutomation: "5-7 years",
	}},
	{"investment banker", model.JobRecord{
		Title: "Investment Banker", Category: "Finance", AutomationRisk: 25, MedianSalary: 150000,
		CreativityRequired: 80, AIReplacements: "LIMITED",
		RiskFactors:      []string{"relationship building", "complex negotiations"},
		AITools:          []string{"DealRoom", "PitchBook"},
		TimeToAutomation: "10+ years",
	}},

	// Technology
	{"software developer", model.JobRecord{
		Title: "Software Developer", Category: "Technology", AutomationRisk: 23, MedianSalary: 95000,
		CreativityRequired: 85, AIReplacements: "MINIMAL",
		RiskFactors:      []string{"AI pair programming", "code generation"},
		AITools:          []string{"GitHub Copilot", "ChatGPT", "Claude"},
		TimeToAutomation: "10+ years",
	}},
	{"data scientist", model.JobRecord{
		Title: "Data Scientist", Category: "Technology", AutomationRisk: 35, MedianSalary: 120000,
		CreativityRequired: 75, AIReplacements: "EMERGING",
		RiskFactors:      []string{"automated ML", "data preprocessing"},
		AITools:          []string{"AutoML", "DataRobot", "H2O.ai"},
		TimeToAutomation: "7-10 years",
	}},
	{"web developer", model.JobRecord{
		Title: "Web Developer", Category: "Technology", AutomationRisk: 40, MedianSalary: 75000,
		CreativityRequired: 70, AIReplacements: "EMERGING",
		RiskFactors:      []string{"website builders", "AI code generation"},
		AITools:          []string{"Wix ADI", "Webflow", "ChatGPT"},
		TimeToAutomation: "5-8 years",
	}},

	// Healthcare
	{"nurse", model.JobRecord{
		Title: "Nurse", Category: "Healthcare", AutomationRisk: 18, MedianSalary: 65000,
		CreativityRequired: 60, AIReplacements: "MINIMAL",
		RiskFactors:      []string{"patient care", "emotional support"},
		AITools:          []string{"AI diagnostics", "telemedicine"},
		TimeToAutomation: "15+ years",
	}},
	{"doctor", model.JobRecord{
		Title: "Doctor", Category: "Healthcare", AutomationRisk: 12, MedianSalary: 200000,
		CreativityRequired: 90, AIReplacements: "MINIMAL",
		RiskFactors:      []string{"AI diagnostics", "telemedicine"},
		AITools:          []string{"IBM Watson", "Google Health AI"},
		TimeToAutomation: "20+ years",
	}},
	{"medical technician", model.JobRecord{
		Title: "Medical Technician", Category: "Healthcare", AutomationRisk: 55, MedianSalary: 45000,
		CreativityRequired: 30, AIReplacements: "ACTIVE",
		RiskFactors:      []string{"lab automation", "imaging analysis"},
		AITools:          []string{"Lab automation systems", "AI imaging"},
		TimeToAutomation: "3-5 years",
	}},

	// Education
	{"teacher", model.JobRecord{
		Title: "Teacher", Category: "Education", AutomationRisk: 45, MedianSalary: 48000,
		CreativityRequired: 75, AIReplacements: "PARTIAL",
		RiskFactors:      []string{"online learning", "AI tutoring"},
		AITools:          []string{"Khan Academy", "Duolingo", "ChatGPT"},
		TimeToAutomation: "8-12 years",
	}},
	{"professor", model.JobRecord{
		Title: "Professor", Category: "Education", AutomationRisk: 30, MedianSalary: 85000,
		CreativityRequired: 85, AIReplacements: "LIMITED",
		RiskFactors:      []string{"research", "mentoring"},
		AITools:          []string{"AI research tools", "online platforms"},
		TimeToAutomation: "15+ years",
	}},

	// Retail
	{"cashier", model.JobRecord{
		Title: "Cashier", Category: "Retail", AutomationRisk: 92, MedianSalary: 28000,
		CreativityRequired: 10, AIReplacements: "EVERYWHERE",
		RiskFactors:      []string{"self-checkout", "mobile payments"},
		AITools:          []string{"Self-checkout systems", "Amazon Go"},
		TimeToAutomation: "1-2 years",
	}},
	{"customer service representative", model.JobRecord{
		Title: "Customer Service Representative", Category: "Retail", AutomationRisk: 82, MedianSalary: 35000,
		CreativityRequired: 25, AIReplacements: "ACTIVE",
		RiskFactors:      []string{"chatbots", "AI voice systems"},
		AITools:          []string{"ChatGPT", "Intercom", "Zendesk AI"},
		TimeToAutomation: "2-4 years",
	}},

	// Media
	{"graphic designer", model.JobRecord{
		Title: "Graphic Designer", Category: "Media", AutomationRisk: 67, MedianSalary: 52000,
		CreativityRequired: 80, AIReplacements: "EMERGING",
		RiskFactors:      []string{"AI image generation", "template design"},
		AITools:          []string{"Midjourney", "DALL-E", "Canva AI"},
		TimeToAutomation: "3-6 years",
	}},
	{"content writer", model.JobRecord{
		Title: "Content Writer", Category: "Media", AutomationRisk: 75, MedianSalary: 45000,
		CreativityRequired: 70, AIReplacements: "ACTIVE",
		RiskFactors:      []string{"AI writing tools", "content generation"},
		AITools:          []string{"ChatGPT", "Jasper", "Copy.ai"},
		TimeToAutomation: "2-4 years",
	}},
	{"video editor", model.JobRecord{
		Title: "Video Editor", Category: "Media", AutomationRisk: 58, MedianSalary: 55000,
		CreativityRequired: 75, AIReplacements: "EMERGING",
		RiskFactors:      []string{"AI video editing", "automated cuts"},
		AITools:          []string{"Runway ML", "CapCut AI", "Adobe Firefly"},
		TimeToAutomation: "4-7 years",
	}},

	// Legal
	{"lawyer", model.JobRecord{
		Title: "Lawyer", Category: "Legal", AutomationRisk: 34, MedianSalary: 120000,
		CreativityRequired: 70, AIReplacements: "LIMITED",
		RiskFactors:      []string{"document review", "legal research"},
		AITools:          []string{"LexisNexis AI", "DoNotPay", "Harvey AI"},
		TimeToAutomation: "8-12 years",
	}},
	{"paralegal", model.JobRecord{
		Title: "Paralegal", Category: "Legal", AutomationRisk: 65, MedianSalary: 52000,
		CreativityRequired: 40, AIReplacements: "ACTIVE",
		RiskFactors:      []string{"document preparation", "research"},
		AITools:          []string{"Legal AI tools", "document automation"},
		TimeToAutomation: "3-6 years",
	}},

	// Manufacturing
	{"factory worker", model.JobRecord{
		Title: "Factory Worker", Category: "Manufacturing", AutomationRisk: 85, MedianSalary: 35000,
		CreativityRequired: 20, AIReplacements: "ACTIVE",
		RiskFactors:      []string{"robotics", "automation"},
		AITools:          []string{"Industrial robots", "IoT sensors"},
		TimeToAutomation: "2-5 years",
	}},
	{"quality inspector", model.JobRecord{
		Title: "Quality Inspector", Category: "Manufacturing", AutomationRisk: 78, MedianSalary: 42000,
		CreativityRequired: 25, AIReplacements: "ACTIVE",
		RiskFactors:      []string{"computer vision", "AI inspection"},
		AITools:          []string{"AI vision systems", "IoT monitoring"},
		TimeToAutomation: "3-5 years",
	}},
}

// Catalog is the curated job table. It is read-only after construction and
// safe for concurrent use.
type Catalog struct {
	order   []string
	records map[string]model.JobRecord
}

// NewCatalog returns the curated catalog.
func NewCatalog() *Catalog {
	c := &Catalog{records: make(map[string]model.JobRecord, len(curated))}
	for _, j := range curated {
		c.order = append(c.order, j.key)
		c.records[j.key] = j.record
	}
	return c
}

// NormalizeTitle is the lookup key for a free-text title.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Lookup returns the curated record for title, ignoring case and surrounding
// whitespace.
func (c *Catalog) Lookup(title string) (model.JobRecord, bool) {
	rec, ok := c.records[NormalizeTitle(title)]
	if !ok {
		return model.JobRecord{}, false
	}
	return cloneRecord(rec), true
}

// Keys returns the catalog keys in table order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.order...)
}

// Len is the number of curated records.
func (c *Catalog) Len() int { return len(c.order) }

// All returns a copy of the table keyed by normalized title.
func (c *Catalog) All() map[string]model.JobRecord {
	out := make(map[string]model.JobRecord, len(c.records))
	for k, v := range c.records {
		out[k] = cloneRecord(v)
	}
	return out
}

// ByCategory returns the records whose category matches case-insensitively.
func (c *Catalog) ByCategory(category string) []model.JobRecord {
	var out []model.JobRecord
	for _, k := range c.order {
		rec := c.records[k]
		if strings.EqualFold(rec.Category, category) {
			out = append(out, cloneRecord(rec))
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, k := range c.order {
		cat := c.records[k].Category
		if !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}
	return out
}

// Random picks one record uniformly.
func (c *Catalog) Random() (string, model.JobRecord) {
	k := c.order[rand.IntN(len(c.order))]
	return k, cloneRecord(c.records[k])
}

// Entries flattens the catalog into generator entries.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, k := range c.order {
		rec := c.records[k]
		out = append(out, Entry{Key: k, Title: rec.Title, Category: rec.Category, AutomationRisk: rec.AutomationRisk})
	}
	return out
}

func cloneRecord(r model.JobRecord) model.JobRecord {
	r.RiskFactors = append([]string(nil), r.RiskFactors...)
	r.AITools = append([]string(nil), r.AITools...)
	return r
}
