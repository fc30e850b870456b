// Package tui holds the terminal front ends: a split-pane browser over the
// curated job catalog, a live analytics dashboard and an inline spinner for
// slow one-shot work.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/DorinSirca/ismyjobcooked-api/internal/jobs"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

// Lines per list item (title + subtitle + blank separator).
const itemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

type categoryGroup struct {
	name        string
	records     []model.JobRecord
	averageRisk int
}

type browserModel struct {
	groups        []categoryGroup
	leftViewport  viewport.Model
	rightViewport viewport.Model
	activePane    int // 0=categories, 1=jobs
	leftCursor    int
	rightCursor   int
	width         int
	height        int
	ready         bool

	view           viewState
	detail         model.JobRecord
	detailSummary  string
	detailViewport viewport.Model
	summarize      func(risk int) string
}

// groupCatalog splits the catalog by category, riskiest job first.
func groupCatalog(c *jobs.Catalog) []categoryGroup {
	var groups []categoryGroup
	for _, name := range c.Categories() {
		recs := c.ByCategory(name)
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].AutomationRisk > recs[j].AutomationRisk
		})
		sum := 0
		for _, r := range recs {
			sum += r.AutomationRisk
		}
		g := categoryGroup{name: name, records: recs}
		if len(recs) > 0 {
			g.averageRisk = (sum + len(recs)/2) / len(recs)
		}
		groups = append(groups, g)
	}
	return groups
}

func newBrowserModel(c *jobs.Catalog) browserModel {
	return browserModel{
		groups:    groupCatalog(c),
		summarize: jobs.Summary,
	}
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detailViewport.Width = m.width - 4
			m.detailViewport.Height = m.height - 4
			m.detailViewport.SetContent(RenderRecord(m.detail, m.detailSummary, m.width))
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}
	return m, nil
}

func (m browserModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "left", "right":
		m.activePane = 1 - m.activePane
		m.recalcContent()
		return m, nil
	case "up", "k":
		m.moveCursor(-1)
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		m.recalcContent()
		m.ensureCursorVisible()
		return m, nil
	case "enter":
		if m.activePane == 0 {
			m.activePane = 1
			m.recalcContent()
			return m, nil
		}
		return m.openDetailView(), nil
	}

	var cmd tea.Cmd
	if m.activePane == 0 {
		m.leftViewport, cmd = m.leftViewport.Update(msg)
	} else {
		m.rightViewport, cmd = m.rightViewport.Update(msg)
	}
	return m, cmd
}

func (m browserModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *browserModel) moveCursor(delta int) {
	if m.activePane == 0 {
		prev := m.leftCursor
		m.leftCursor = clamp(m.leftCursor+delta, 0, max(len(m.groups)-1, 0))
		if m.leftCursor != prev {
			m.rightCursor = 0
			m.rightViewport.GotoTop()
		}
		return
	}
	m.rightCursor = clamp(m.rightCursor+delta, 0, max(len(m.selectedRecords())-1, 0))
}

func (m *browserModel) ensureCursorVisible() {
	vp := &m.leftViewport
	cursor := m.leftCursor
	if m.activePane == 1 {
		vp = &m.rightViewport
		cursor = m.rightCursor
	}

	top := cursor * itemHeight
	bottom := top + itemHeight - 1
	if top < vp.YOffset {
		vp.SetYOffset(top)
	} else if bottom >= vp.YOffset+vp.Height {
		vp.SetYOffset(bottom - vp.Height + 1)
	}
}

func (m browserModel) selectedRecords() []model.JobRecord {
	if len(m.groups) == 0 {
		return nil
	}
	return m.groups[m.leftCursor].records
}

func (m browserModel) openDetailView() browserModel {
	recs := m.selectedRecords()
	if len(recs) == 0 {
		return m
	}
	m.view = viewDetail
	m.detail = recs[m.rightCursor]
	m.detailSummary = m.summarize(m.detail.AutomationRisk)
	m.detailViewport = viewport.New(m.width-4, m.height-4)
	m.detailViewport.SetContent(RenderRecord(m.detail, m.detailSummary, m.width))
	return m
}

func (m *browserModel) recalcLayout() {
	// 2 border chars per pane + 1 gap between panes.
	paneWidth := max((m.width-5)/2, 20)
	// Header (1) + border top/bottom (2) + status bar (1).
	paneHeight := max(m.height-4, 5)

	if !m.ready {
		m.leftViewport = viewport.New(paneWidth, paneHeight)
		m.rightViewport = viewport.New(paneWidth, paneHeight)
		m.ready = true
	} else {
		m.leftViewport.Width = paneWidth
		m.leftViewport.Height = paneHeight
		m.rightViewport.Width = paneWidth
		m.rightViewport.Height = paneHeight
	}
	m.recalcContent()
}

func (m *browserModel) recalcContent() {
	m.leftViewport.SetContent(renderGroups(m.groups, m.leftCursor, m.activePane == 0))
	m.rightViewport.SetContent(renderRecords(m.selectedRecords(), m.rightCursor, m.activePane == 1))
}

func (m browserModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.view == viewDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m browserModel) viewList() string {
	paneWidth := m.leftViewport.Width

	leftHeader := fmt.Sprintf(" Categories (%d)", len(m.groups))
	rightHeader := " Jobs"
	if len(m.groups) > 0 {
		rightHeader = fmt.Sprintf(" %s (%d)", m.groups[m.leftCursor].name, len(m.selectedRecords()))
	}

	leftHeaderStyle, rightHeaderStyle := activeHeaderStyle, inactiveHeaderStyle
	leftBorder, rightBorder := activeBorderStyle, inactiveBorderStyle
	if m.activePane == 1 {
		leftHeaderStyle, rightHeaderStyle = inactiveHeaderStyle, activeHeaderStyle
		leftBorder, rightBorder = inactiveBorderStyle, activeBorderStyle
	}

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(paneWidth+2).Render(leftHeaderStyle.Render(leftHeader)),
		" ",
		lipgloss.NewStyle().Width(paneWidth+2).Render(rightHeaderStyle.Render(rightHeader)),
	)
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		leftBorder.Width(paneWidth).Render(m.leftViewport.View()),
		" ",
		rightBorder.Width(paneWidth).Render(m.rightViewport.View()),
	)

	total := 0
	for _, g := range m.groups {
		total += len(g.records)
	}
	status := fmt.Sprintf(" %d jobs in %d categories    ←/→/Tab switch  ↑/↓ cursor  Enter open  q quit",
		total, len(m.groups))
	return headerRow + "\n" + panes + "\n" + statusBarStyle.Width(m.width).Render(status)
}

func (m browserModel) viewDetail() string {
	title := titleStyle.Render("How cooked is it?")
	content := activeBorderStyle.Width(m.width - 2).Render(m.detailViewport.View())
	status := statusBarStyle.Width(m.width).Render(" esc/backspace back  ↑/↓ scroll  q quit")
	return title + "\n" + content + "\n" + status
}

func renderGroups(groups []categoryGroup, cursor int, isActive bool) string {
	if len(groups) == 0 {
		return "  (no categories)"
	}
	items := make([][2]string, len(groups))
	for i, g := range groups {
		items[i] = [2]string{g.name, fmt.Sprintf("%d jobs · avg risk %d%%", len(g.records), g.averageRisk)}
	}
	return renderItems(items, cursor, isActive)
}

func renderRecords(recs []model.JobRecord, cursor int, isActive bool) string {
	if len(recs) == 0 {
		return "  (no jobs)"
	}
	items := make([][2]string, len(recs))
	for i, r := range recs {
		items[i] = [2]string{r.Title, fmt.Sprintf("%d%% · %s · %s", r.AutomationRisk, jobs.CookedLevel(r.AutomationRisk), Salary(r.MedianSalary))}
	}
	return renderItems(items, cursor, isActive)
}

// renderItems draws title/subtitle pairs, highlighting the cursor row when
// the pane has focus.
func renderItems(items [][2]string, cursor int, isActive bool) string {
	var b strings.Builder
	for i, it := range items {
		titleSt, subtitleSt, prefix := itemTitleStyle, itemSubtitleStyle, "  "
		if isActive && i == cursor {
			titleSt, subtitleSt, prefix = selectedTitleStyle, selectedSubtitleStyle, "> "
		}
		b.WriteString(prefix)
		b.WriteString(titleSt.Render(it[0]))
		b.WriteByte('\n')
		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(it[1]))
		b.WriteByte('\n')
		if i < len(items)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Salary formats whole dollars as "$42,000".
func Salary(dollars int) string {
	return "$" + humanize.Comma(int64(dollars))
}

// RenderRecord lays out one job profile for a terminal of the given width.
func RenderRecord(rec model.JobRecord, summary string, width int) string {
	var b strings.Builder
	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteByte('\n')
	}

	b.WriteString(titleStyle.Render(rec.Title))
	b.WriteByte('\n')
	addField("Category", rec.Category)
	b.WriteString(labelStyle.Render("Cooked Score"))
	b.WriteString(RiskStyle(rec.AutomationRisk).Render(
		fmt.Sprintf("%d/100 %s", rec.AutomationRisk, jobs.CookedLevel(rec.AutomationRisk))))
	b.WriteByte('\n')
	addField("Median Salary", Salary(rec.MedianSalary))
	addField("Creativity Required", fmt.Sprintf("%d%%", rec.CreativityRequired))
	addField("AI Replacements", rec.AIReplacements)
	addField("Time to Automation", rec.TimeToAutomation)

	wrapWidth := max(width-8, 20)
	bullets := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteByte('\n')
		b.WriteString(divider("── "+label+" ", wrapWidth) + "\n")
		for _, it := range items {
			b.WriteString(valueStyle.Render("  • "+it) + "\n")
		}
	}
	bullets("Risk Factors", rec.RiskFactors)
	bullets("AI Tools", rec.AITools)

	if summary != "" {
		b.WriteByte('\n')
		b.WriteString(hintStyle.Render(wordWrap(summary, wrapWidth)) + "\n")
	}
	return b.String()
}

// RunBrowser launches the split-pane catalog browser.
func RunBrowser(c *jobs.Catalog) error {
	p := tea.NewProgram(newBrowserModel(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
