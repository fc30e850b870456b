package jobs

import "testing"

func TestCategories_CuratedStats(t *testing.T) {
	cats := Categories(NewCatalog().Entries())
	if len(cats) != 10 {
		t.Fatalf("got %d categories, want 10", len(cats))
	}

	byName := make(map[string]CategoryInfo)
	for _, c := range cats {
		byName[c.Name] = c
	}

	finance := byName["Finance"]
	// (88 + 45 + 25) / 3 = 52.67
	if finance.TotalJobs != 3 || finance.AverageRisk != 53 {
		t.Errorf("Finance = %d jobs / avg %d, want 3 / 53", finance.TotalJobs, finance.AverageRisk)
	}
	if byName["Management"].TotalJobs != 0 || byName["Management"].AverageRisk != 0 {
		t.Errorf("Management should be empty in the curated table: %+v", byName["Management"])
	}
}

func TestStatistics(t *testing.T) {
	entries := []Entry{
		{Key: "a", Category: "Retail", AutomationRisk: 90},
		{Key: "b", Category: "Retail", AutomationRisk: 30},
		{Key: "c", Category: "Legal", AutomationRisk: 50},
	}
	stats, overall := Statistics(entries)
	if len(stats) != 2 || stats[0].Name != "Retail" {
		t.Fatalf("unexpected stats %+v", stats)
	}
	r := stats[0]
	if r.AverageRisk != 60 || r.MaxRisk != 90 || r.MinRisk != 30 || r.RiskRange != 60 || r.HighRiskJobs != 1 || r.LowRiskJobs != 1 {
		t.Errorf("Retail stats = %+v", r)
	}
	if overall.TotalJobs != 3 || overall.TotalCategories != 2 || overall.AverageRisk != 57 {
		t.Errorf("overall = %+v", overall)
	}
}

func TestTrendingCategories(t *testing.T) {
	entries := []Entry{
		{Category: "Retail", AutomationRisk: 80},
		{Category: "Retail", AutomationRisk: 80},
		{Category: "Legal", AutomationRisk: 81},
	}
	got := TrendingCategories(entries, 5)
	// Retail: 80 + 2*0.5 = 81; Legal: 81 + 0.5 = 81.5
	if got[0].Name != "Legal" || got[0].TrendScore != 81.5 {
		t.Errorf("top trending = %+v", got[0])
	}
	if len(TrendingCategories(entries, 1)) != 1 {
		t.Error("limit not applied")
	}
}

func TestSearchCategories(t *testing.T) {
	got := SearchCategories(Extended(), "creative")
	if len(got) != 1 || got[0].Name != "Media" {
		t.Errorf("search creative = %+v", got)
	}
	if len(SearchCategories(Extended(), "zzz")) != 0 {
		t.Error("expected no matches")
	}
}

func TestCompareCategories(t *testing.T) {
	got := CompareCategories(Extended(), []string{"finance", "nope"})
	if _, ok := got["nope"]; ok {
		t.Error("unknown category should be omitted")
	}
	f, ok := got["finance"]
	if !ok {
		t.Fatal("finance missing")
	}
	if f.TotalJobs != 10 || f.MaxRisk != 92 || f.MinRisk != 25 {
		t.Errorf("finance comparison = %+v", f)
	}
	// 88, 75, 70, 92, 85 are >= 70
	if f.HighRiskPercentage != 50 {
		t.Errorf("high risk pct = %d, want 50", f.HighRiskPercentage)
	}
}
