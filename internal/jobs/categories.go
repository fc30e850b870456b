package jobs

import (
	"math"
	"sort"
	"strings"
)

// CategoryInfo is the display metadata of a job category plus statistics
// computed over a table of entries.
type CategoryInfo struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Icon            string `json:"icon"`
	Color           string `json:"color"`
	AutomationTrend string `json:"automationTrend"`
	TotalJobs       int    `json:"totalJobs"`
	AverageRisk     int    `json:"averageRisk"`
}

var categoryMeta = []CategoryInfo{
	{Name: "Finance", Description: "Financial services, accounting, and investment roles", Icon: "fas fa-chart-line", Color: "text-green-400", AutomationTrend: "high"},
	{Name: "Technology", Description: "Software development, IT, and technical roles", Icon: "fas fa-code", Color: "text-cyan-400", AutomationTrend: "medium"},
	{Name: "Healthcare", Description: "Medical, nursing, and healthcare support roles", Icon: "fas fa-heartbeat", Color: "text-pink-400", AutomationTrend: "low"},
	{Name: "Education", Description: "Teaching, academic, and educational support roles", Icon: "fas fa-graduation-cap", Color: "text-blue-400", AutomationTrend: "medium"},
	{Name: "Retail", Description: "Sales, customer service, and retail operations", Icon: "fas fa-shopping-cart", Color: "text-purple-400", AutomationTrend: "high"},
	{Name: "Media", Description: "Creative, design, and content creation roles", Icon: "fas fa-video", Color: "text-red-400", AutomationTrend: "medium"},
	{Name: "Legal", Description: "Legal services, law enforcement, and compliance", Icon: "fas fa-gavel", Color: "text-yellow-400", AutomationTrend: "low"},
	{Name: "Manufacturing", Description: "Production, assembly, and industrial roles", Icon: "fas fa-industry", Color: "text-orange-400", AutomationTrend: "high"},
	{Name: "Administrative", Description: "Office support, coordination, and administrative roles", Icon: "fas fa-briefcase", Color: "text-gray-400", AutomationTrend: "high"},
	{Name: "Management", Description: "Leadership, supervision, and management roles", Icon: "fas fa-users-cog", Color: "text-indigo-400", AutomationTrend: "low"},
}

// CategoryNames lists the known categories in display order.
func CategoryNames() []string {
	out := make([]string, len(categoryMeta))
	for i, c := range categoryMeta {
		out[i] = c.Name
	}
	return out
}

// Categories returns the metadata of every known category with TotalJobs and
// AverageRisk computed over entries. Categories without entries report zeros.
func Categories(entries []Entry) []CategoryInfo {
	out := make([]CategoryInfo, 0, len(categoryMeta))
	for _, meta := range categoryMeta {
		risks := risksFor(entries, meta.Name)
		meta.TotalJobs = len(risks)
		if len(risks) > 0 {
			meta.AverageRisk = roundAvg(risks)
		}
		out = append(out, meta)
	}
	return out
}

// CategoryStats summarizes the risk distribution of one category.
type CategoryStats struct {
	Name         string `json:"name,omitempty"`
	TotalJobs    int    `json:"totalJobs"`
	AverageRisk  int    `json:"averageRisk"`
	MaxRisk      int    `json:"maxRisk"`
	MinRisk      int    `json:"minRisk"`
	RiskRange    int    `json:"riskRange"`
	HighRiskJobs int    `json:"highRiskJobs"`
	LowRiskJobs  int    `json:"lowRiskJobs"`
}

// OverallStats summarizes the whole table.
type OverallStats struct {
	TotalJobs       int `json:"totalJobs"`
	TotalCategories int `json:"totalCategories"`
	AverageRisk     int `json:"averageRisk"`
	MaxRisk         int `json:"maxRisk"`
	MinRisk         int `json:"minRisk"`
	HighRiskJobs    int `json:"highRiskJobs"`
	LowRiskJobs     int `json:"lowRiskJobs"`
}

// Statistics groups entries by category (first-seen order) and computes the
// per-category and overall distributions.
func Statistics(entries []Entry) ([]CategoryStats, OverallStats) {
	var order []string
	groups := make(map[string][]int)
	for _, e := range entries {
		if _, ok := groups[e.Category]; !ok {
			order = append(order, e.Category)
		}
		groups[e.Category] = append(groups[e.Category], e.AutomationRisk)
	}

	stats := make([]CategoryStats, 0, len(order))
	for _, name := range order {
		risks := groups[name]
		lo, hi := minMax(risks)
		stats = append(stats, CategoryStats{
			Name:         name,
			TotalJobs:    len(risks),
			AverageRisk:  roundAvg(risks),
			MaxRisk:      hi,
			MinRisk:      lo,
			RiskRange:    hi - lo,
			HighRiskJobs: countIf(risks, func(r int) bool { return r >= 70 }),
			LowRiskJobs:  countIf(risks, func(r int) bool { return r < 40 }),
		})
	}

	var all []int
	for _, e := range entries {
		all = append(all, e.AutomationRisk)
	}
	overall := OverallStats{TotalJobs: len(entries), TotalCategories: len(order)}
	if len(all) > 0 {
		overall.MinRisk, overall.MaxRisk = minMax(all)
		overall.AverageRisk = roundAvg(all)
		overall.HighRiskJobs = countIf(all, func(r int) bool { return r >= 70 })
		overall.LowRiskJobs = countIf(all, func(r int) bool { return r < 40 })
	}
	return stats, overall
}

// TrendingCategory is a category ranked by how cooked it is.
type TrendingCategory struct {
	CategoryStats
	TrendScore float64 `json:"trendScore"`
}

// TrendingCategories ranks categories by averageRisk + 0.5*highRiskJobs.
func TrendingCategories(entries []Entry, limit int) []TrendingCategory {
	stats, _ := Statistics(entries)
	out := make([]TrendingCategory, 0, len(stats))
	for _, s := range stats {
		out = append(out, TrendingCategory{
			CategoryStats: s,
			TrendScore:    float64(s.AverageRisk) + float64(s.HighRiskJobs)*0.5,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TrendScore > out[j].TrendScore })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SearchCategories matches keyword against category names and descriptions.
func SearchCategories(entries []Entry, keyword string) []CategoryInfo {
	term := strings.ToLower(strings.TrimSpace(keyword))
	var out []CategoryInfo
	for _, c := range Categories(entries) {
		if strings.Contains(strings.ToLower(c.Name), term) || strings.Contains(strings.ToLower(c.Description), term) {
			out = append(out, c)
		}
	}
	return out
}

// CategoryComparison is one side of a category comparison.
type CategoryComparison struct {
	TotalJobs          int `json:"totalJobs"`
	AverageRisk        int `json:"averageRisk"`
	MaxRisk            int `json:"maxRisk"`
	MinRisk            int `json:"minRisk"`
	HighRiskPercentage int `json:"highRiskPercentage"`
	LowRiskPercentage  int `json:"lowRiskPercentage"`
}

// CompareCategories compares the named categories (case-insensitive). Names
// without entries are left out of the result.
func CompareCategories(entries []Entry, names []string) map[string]CategoryComparison {
	out := make(map[string]CategoryComparison)
	for _, name := range names {
		var risks []int
		for _, e := range entries {
			if strings.EqualFold(e.Category, name) {
				risks = append(risks, e.AutomationRisk)
			}
		}
		if len(risks) == 0 {
			continue
		}
		lo, hi := minMax(risks)
		n := float64(len(risks))
		out[name] = CategoryComparison{
			TotalJobs:          len(risks),
			AverageRisk:        roundAvg(risks),
			MaxRisk:            hi,
			MinRisk:            lo,
			HighRiskPercentage: int(math.Round(float64(countIf(risks, func(r int) bool { return r >= 70 })) / n * 100)),
			LowRiskPercentage:  int(math.Round(float64(countIf(risks, func(r int) bool { return r < 40 })) / n * 100)),
		}
	}
	return out
}

func risksFor(entries []Entry, category string) []int {
	var out []int
	for _, e := range entries {
		if e.Category == category {
			out = append(out, e.AutomationRisk)
		}
	}
	return out
}

func roundAvg(xs []int) int {
	if len(xs) == 0 {
		return 0
	}
	sum := 0
	for _, x := range xs {
		sum += x
	}
	return int(math.Round(float64(sum) / float64(len(xs))))
}

func minMax(xs []int) (int, int) {
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	return lo, hi
}

func countIf(xs []int, pred func(int) bool) int {
	n := 0
	for _, x := range xs {
		if pred(x) {
			n++
		}
	}
	return n
}
