package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/DorinSirca/ismyjobcooked-api/internal/analytics"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

// DashboardSnapshot is the body of GET /api/analytics/dashboard.
type DashboardSnapshot struct {
	analytics.Dashboard
	Timestamp time.Time `json:"timestamp"`
}

// DashboardClient reads the analytics dashboard of a running server.
type DashboardClient struct {
	baseURL string
	http    *http.Client
}

func NewDashboardClient(baseURL string, httpClient *http.Client) *DashboardClient {
	return &DashboardClient{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Fetch returns the dashboard covering the last days days. Non-200 answers
// come back as *model.HTTPError carrying the server's error message.
func (c *DashboardClient) Fetch(ctx context.Context, days int) (DashboardSnapshot, error) {
	u := c.baseURL + "/api/analytics/dashboard?" + url.Values{"days": {strconv.Itoa(days)}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return DashboardSnapshot{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return DashboardSnapshot{}, fmt.Errorf("fetch dashboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var envelope struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		body := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
			body = envelope.Error
			if envelope.Message != "" {
				body += ": " + envelope.Message
			}
		}
		return DashboardSnapshot{}, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: model.ParseRetryAfter(resp.Header.Get("Retry-After")),
			Body:       body,
		}
	}

	var snap DashboardSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return DashboardSnapshot{}, fmt.Errorf("decode dashboard: %w", err)
	}
	return snap, nil
}

type dashboardSource interface {
	Fetch(ctx context.Context, days int) (DashboardSnapshot, error)
}

type dashboardFetchedMsg struct {
	snap DashboardSnapshot
	err  error
	at   time.Time
}

// refreshTickMsg carries the generation it was scheduled for so that a manual
// refresh does not leave a second timer chain running.
type refreshTickMsg struct {
	gen int
}

type dashboardModel struct {
	source   dashboardSource
	target   string
	days     int
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time

	data      *DashboardSnapshot
	err       error
	lastFetch time.Time
	fetching  bool
	gen       int

	spinner  spinner.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

func newDashboardModel(src dashboardSource, target string, days int, interval time.Duration) dashboardModel {
	s := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("202"))
	return dashboardModel{
		source:   src,
		target:   target,
		days:     days,
		interval: interval,
		timeout:  10 * time.Second,
		now:      time.Now,
		fetching: true,
		spinner:  s,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.spinner.Tick)
}

func (m dashboardModel) fetchCmd() tea.Cmd {
	src, days, timeout, now := m.source, m.days, m.timeout, m.now
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		snap, err := src.Fetch(ctx, days)
		return dashboardFetchedMsg{snap: snap, err: err, at: now()}
	}
}

func (m dashboardModel) scheduleRefresh() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return refreshTickMsg{gen: gen}
	})
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(max(m.width-4, 20), max(m.height-4, 5))
			m.ready = true
		} else {
			m.viewport.Width = max(m.width-4, 20)
			m.viewport.Height = max(m.height-4, 5)
		}
		m.viewport.SetContent(m.renderBody())
		return m, nil

	case dashboardFetchedMsg:
		m.fetching = false
		m.lastFetch = msg.at
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			snap := msg.snap
			m.data = &snap
		}
		m.gen++
		m.viewport.SetContent(m.renderBody())
		return m, m.scheduleRefresh()

	case refreshTickMsg:
		if msg.gen != m.gen || m.fetching {
			return m, nil
		}
		m.fetching = true
		return m, m.fetchCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.fetching {
				return m, nil
			}
			m.fetching = true
			m.gen++
			return m, m.fetchCmd()
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	title := titleStyle.Render(fmt.Sprintf("Cooked Analytics · %s · last %d days", m.target, m.days))
	if m.fetching {
		title += " " + m.spinner.View()
	}
	content := activeBorderStyle.Width(m.width - 2).Render(m.viewport.View())

	updated := "never"
	if !m.lastFetch.IsZero() {
		updated = humanize.RelTime(m.lastFetch, m.now(), "ago", "from now")
	}
	status := fmt.Sprintf(" updated %s · refresh every %s    r refresh  ↑/↓ scroll  q quit", updated, m.interval)
	return title + "\n" + content + "\n" + statusBarStyle.Width(m.width).Render(status)
}

func (m dashboardModel) renderBody() string {
	var b strings.Builder
	if m.err != nil {
		b.WriteString(errorStyle.Render("⚠ "+m.err.Error()) + "\n\n")
	}
	if m.data == nil {
		if m.err == nil {
			b.WriteString(hintStyle.Render("  loading dashboard...") + "\n")
		}
		return b.String()
	}
	b.WriteString(renderDashboard(*m.data, m.now(), max(m.width-8, 20)))
	return b.String()
}

func renderDashboard(d DashboardSnapshot, now time.Time, width int) string {
	var b strings.Builder
	addField := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteByte('\n')
	}

	b.WriteString(divider("── Overview ", width) + "\n")
	addField("Total Searches", humanize.Comma(int64(d.Overview.TotalSearches)))
	addField("Total Shares", humanize.Comma(int64(d.Overview.TotalShares)))
	addField("Avg Cooked Score", fmt.Sprintf("%.2f", d.Overview.AverageCookedScore))
	addField("Unique Jobs", humanize.Comma(int64(d.Overview.UniqueJobsSearched)))

	b.WriteByte('\n')
	b.WriteString(divider("── Last "+d.RecentStats.Period+" ", width) + "\n")
	addField("Searches", humanize.Comma(int64(d.RecentStats.Searches)))
	addField("Unique Jobs", humanize.Comma(int64(d.RecentStats.UniqueJobs)))
	addField("Avg Score", fmt.Sprintf("%.2f", d.RecentStats.AverageScore))

	b.WriteByte('\n')
	b.WriteString(divider("── Trending Jobs ", width) + "\n")
	if len(d.TrendingJobs) == 0 {
		b.WriteString(hintStyle.Render("  no searches yet") + "\n")
	}
	for i, j := range d.TrendingJobs {
		score := RiskStyle(int(j.AverageScore + 0.5)).Render(fmt.Sprintf("%.1f", j.AverageScore))
		fmt.Fprintf(&b, "  %2d. %-32s %6s searches  avg %s\n",
			i+1, j.Title, humanize.Comma(int64(j.Searches)), score)
	}

	b.WriteByte('\n')
	b.WriteString(divider("── Shares by Platform ", width) + "\n")
	platforms := make([]string, 0, len(d.ShareMetrics))
	for p := range d.ShareMetrics {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	if len(platforms) == 0 {
		b.WriteString(hintStyle.Render("  no shares yet") + "\n")
	}
	for _, p := range platforms {
		addField("  "+p, humanize.Comma(int64(d.ShareMetrics[p])))
	}

	if len(d.ViralContent) > 0 {
		b.WriteByte('\n')
		b.WriteString(divider("── Recent Shares ", width) + "\n")
		for _, ev := range d.ViralContent {
			fmt.Fprintf(&b, "  %s · %s · %s\n",
				ev.Platform, ev.JobTitle, humanize.RelTime(ev.Timestamp, now, "ago", "from now"))
		}
	}
	return b.String()
}

// RunDashboard polls the dashboard of the server at baseURL every interval
// until the user quits.
func RunDashboard(baseURL string, days int, interval time.Duration) error {
	client := NewDashboardClient(baseURL, &http.Client{Timeout: 10 * time.Second})
	p := tea.NewProgram(newDashboardModel(client, baseURL, days, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
