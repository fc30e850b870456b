package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DorinSirca/ismyjobcooked-api/internal/analytics"
	"github.com/DorinSirca/ismyjobcooked-api/internal/jobs"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m tea.Model, keys ...string) browserModel {
	t.Helper()
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	return m.(browserModel)
}

func newSizedBrowser(t *testing.T) browserModel {
	t.Helper()
	m := newBrowserModel(jobs.NewCatalog())
	m.summarize = func(int) string { return "fixed summary" }
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(browserModel)
}

func TestGroupCatalog_SortsByRisk(t *testing.T) {
	groups := groupCatalog(jobs.NewCatalog())
	if len(groups) != 8 {
		t.Fatalf("got %d groups, want 8", len(groups))
	}
	finance := groups[0]
	if finance.name != "Finance" {
		t.Fatalf("first group = %q, want Finance", finance.name)
	}
	if finance.records[0].Title != "Junior Accountant" {
		t.Errorf("riskiest finance job = %q, want Junior Accountant", finance.records[0].Title)
	}
	for i := 1; i < len(finance.records); i++ {
		if finance.records[i].AutomationRisk > finance.records[i-1].AutomationRisk {
			t.Errorf("records not sorted by risk: %v", finance.records)
		}
	}
	// (88 + 45 + 25) / 3 rounded
	if finance.averageRisk != 53 {
		t.Errorf("finance average = %d, want 53", finance.averageRisk)
	}
}

func TestBrowser_NavigateToDetail(t *testing.T) {
	m := newSizedBrowser(t)
	if !m.ready {
		t.Fatal("expected model to be ready after resize")
	}

	m = press(t, m, "down")
	if m.leftCursor != 1 || m.rightCursor != 0 {
		t.Fatalf("cursors = %d/%d, want 1/0", m.leftCursor, m.rightCursor)
	}

	m = press(t, m, "enter")
	if m.activePane != 1 {
		t.Fatalf("enter on a category should focus the jobs pane")
	}

	m = press(t, m, "down", "enter")
	if m.view != viewDetail {
		t.Fatal("expected detail view")
	}
	// Technology sorted by risk: Web Developer, Data Scientist, Software Developer.
	if m.detail.Title != "Data Scientist" {
		t.Errorf("detail = %q, want Data Scientist", m.detail.Title)
	}
	if !strings.Contains(m.View(), "Data Scientist") {
		t.Error("detail view should show the job title")
	}

	m = press(t, m, "esc")
	if m.view != viewList {
		t.Error("esc should return to the list")
	}
}

func TestBrowser_CursorClampsAndResets(t *testing.T) {
	m := newSizedBrowser(t)

	m = press(t, m, "up")
	if m.leftCursor != 0 {
		t.Errorf("leftCursor = %d, want 0", m.leftCursor)
	}

	m = press(t, m, "tab", "down", "down", "down", "down")
	if m.rightCursor != 2 {
		t.Errorf("rightCursor = %d, want clamp at 2 for 3 finance jobs", m.rightCursor)
	}

	m = press(t, m, "tab", "down")
	if m.rightCursor != 0 {
		t.Errorf("changing category should reset the jobs cursor, got %d", m.rightCursor)
	}
}

func TestBrowser_Quit(t *testing.T) {
	m := newSizedBrowser(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestRenderRecord(t *testing.T) {
	rec, ok := jobs.NewCatalog().Lookup("junior accountant")
	if !ok {
		t.Fatal("junior accountant missing from catalog")
	}
	out := RenderRecord(rec, "Bro, you're absolutely cooked.", 100)
	for _, want := range []string{"Junior Accountant", "$42,000", "88/100 WELL-DONE", "QuickBooks AI", "data entry", "absolutely cooked"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered record missing %q:\n%s", want, out)
		}
	}
}

func TestSalary(t *testing.T) {
	for in, want := range map[int]string{0: "$0", 950: "$950", 42000: "$42,000", 1250000: "$1,250,000"} {
		if got := Salary(in); got != want {
			t.Errorf("Salary(%d) = %q, want %q", in, got, want)
		}
	}
}

func sampleSnapshot() DashboardSnapshot {
	return DashboardSnapshot{
		Dashboard: analytics.Dashboard{
			Overview:     analytics.Overview{TotalSearches: 1234, TotalShares: 5, AverageCookedScore: 61.5, UniqueJobsSearched: 3},
			RecentStats:  analytics.RecentStats{Searches: 12, UniqueJobs: 2, AverageScore: 58.25, Period: "7 days"},
			TrendingJobs: []analytics.PopularJob{{Title: "Teacher", Searches: 9, AverageScore: 45}},
			ShareMetrics: map[string]int{"twitter": 3, "linkedin": 2},
			ViralContent: []model.ShareEvent{{ID: "s1", Platform: "twitter", JobTitle: "Cashier", Timestamp: fixedNow.Add(-3 * time.Minute)}},
		},
		Timestamp: fixedNow,
	}
}

func TestDashboardClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/analytics/dashboard" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("days"); got != "14" {
			t.Errorf("days = %q, want 14", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sampleSnapshot())
	}))
	defer srv.Close()

	c := NewDashboardClient(srv.URL+"/", srv.Client())
	snap, err := c.Fetch(context.Background(), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Overview.TotalSearches != 1234 {
		t.Errorf("totalSearches = %d, want 1234", snap.Overview.TotalSearches)
	}
	if len(snap.TrendingJobs) != 1 || snap.TrendingJobs[0].Title != "Teacher" {
		t.Errorf("trending = %+v", snap.TrendingJobs)
	}
	if !snap.Timestamp.Equal(fixedNow) {
		t.Errorf("timestamp = %v, want %v", snap.Timestamp, fixedNow)
	}
}

func TestDashboardClient_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"Too many requests from this IP, please try again later.","retryAfter":"15 minutes"}`))
	}))
	defer srv.Close()

	_, err := NewDashboardClient(srv.URL, srv.Client()).Fetch(context.Background(), 7)
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *model.HTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", httpErr.StatusCode)
	}
	if httpErr.RetryAfter != 30*time.Second {
		t.Errorf("retryAfter = %v, want 30s", httpErr.RetryAfter)
	}
	if !strings.Contains(httpErr.Body, "Too many requests") {
		t.Errorf("body = %q", httpErr.Body)
	}
}

type fakeSource struct {
	snap  DashboardSnapshot
	err   error
	calls int
}

func (f *fakeSource) Fetch(_ context.Context, _ int) (DashboardSnapshot, error) {
	f.calls++
	return f.snap, f.err
}

func TestDashboardModel_RefreshCycle(t *testing.T) {
	src := &fakeSource{snap: sampleSnapshot()}
	m := newDashboardModel(src, "http://localhost:3000", 7, 5*time.Second)
	m.now = func() time.Time { return fixedNow }

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(dashboardModel)

	msg := m.fetchCmd()()
	if src.calls != 1 {
		t.Fatalf("calls = %d, want 1", src.calls)
	}
	next, cmd := m.Update(msg)
	m = next.(dashboardModel)
	if m.fetching || m.data == nil || m.gen != 1 {
		t.Fatalf("after fetch: fetching=%v data=%v gen=%d", m.fetching, m.data != nil, m.gen)
	}
	if cmd == nil {
		t.Fatal("expected the next refresh to be scheduled")
	}

	next, cmd = m.Update(refreshTickMsg{gen: 0})
	if cmd != nil {
		t.Error("stale tick should be ignored")
	}
	m = next.(dashboardModel)

	next, cmd = m.Update(refreshTickMsg{gen: 1})
	m = next.(dashboardModel)
	if !m.fetching || cmd == nil {
		t.Fatal("current tick should start a fetch")
	}

	view := m.View()
	for _, want := range []string{"Teacher", "1,234", "updated now"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDashboardModel_ErrorKeepsLastData(t *testing.T) {
	m := newDashboardModel(&fakeSource{}, "http://localhost:3000", 7, time.Second)
	m.now = func() time.Time { return fixedNow }
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	next, _ = next.Update(dashboardFetchedMsg{snap: sampleSnapshot(), at: fixedNow})
	next, _ = next.Update(dashboardFetchedMsg{err: errors.New("connection refused"), at: fixedNow})
	m = next.(dashboardModel)

	if m.data == nil || m.data.Overview.TotalSearches != 1234 {
		t.Fatal("a failed refresh should keep the last good data")
	}
	body := m.renderBody()
	if !strings.Contains(body, "connection refused") || !strings.Contains(body, "Teacher") {
		t.Errorf("body should show error and stale data:\n%s", body)
	}
}

func TestDashboardModel_ManualRefreshWhileFetching(t *testing.T) {
	m := newDashboardModel(&fakeSource{}, "x", 7, time.Second)
	_, cmd := m.Update(key("r"))
	if cmd != nil {
		t.Error("refresh while a fetch is in flight should be a no-op")
	}
}

func TestRenderDashboard(t *testing.T) {
	out := renderDashboard(sampleSnapshot(), fixedNow, 80)
	for _, want := range []string{"1,234", "61.50", "Last 7 days", "linkedin", "twitter", "Cashier", "3 minutes ago"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "linkedin") > strings.Index(out, "twitter") {
		t.Error("platforms should be listed alphabetically")
	}
}

func TestLoaderModel(t *testing.T) {
	m := newLoaderModel("Analyzing", time.Second, func(ctx context.Context) (int, error) {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("expected a deadline on the loader context")
		}
		return 42, nil
	})
	if !strings.Contains(m.View(), "Analyzing...") {
		t.Errorf("view = %q", m.View())
	}

	next, cmd := m.Update(m.doFetch()())
	final := next.(loaderModel[int])
	if !final.done || final.result != 42 || final.err != nil {
		t.Fatalf("final = %+v", final)
	}
	if cmd == nil {
		t.Error("expected quit after load")
	}
	if final.View() != "" {
		t.Errorf("done loader should render nothing, got %q", final.View())
	}
}

func TestLoaderModel_Cancel(t *testing.T) {
	m := newLoaderModel("Analyzing", time.Second, func(context.Context) (string, error) { return "", nil })
	next, _ := m.Update(key("ctrl+c"))
	final := next.(loaderModel[string])
	if !errors.Is(final.err, ErrCancelled) {
		t.Errorf("err = %v, want ErrCancelled", final.err)
	}
}
