package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/HaPhanBaoMinh/supmet/internal/analytics"
	"github.com/HaPhanBaoMinh/supmet/internal/domain"
	"github.com/HaPhanBaoMinh/supmet/internal/ui/styles"
	"github.com/HaPhanBaoMinh/supmet/internal/ui/widgets"
)

type View int

const (
	ViewTable View = iota
	ViewCharts
)

var viewNames = map[View]string{ViewTable: "Table", ViewCharts: "Charts"}

// SLA range the bars and sparklines are drawn over.
const (
	slaFloor = 85.0
	slaCeil  = 100.0
)

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	repo domain.MetricsRepo
	log  *zap.Logger

	// Month picker
	pickerOpen bool
	monthTable table.Model

	view    View
	month   string
	months  []string
	current string

	table    table.Model
	infoOpen bool

	// cache for the selected month
	modules []domain.NormalizedMetric
	trends  map[string][]float64

	width, height int
	err           error

	// bumped on every repo swap so results from the old repo are dropped
	gen int
}

// RepoMsg swaps the data source, e.g. after the config file changed.
type RepoMsg struct{ Repo domain.MetricsRepo }

type modulesMsg struct {
	month   string
	gen     int
	modules []domain.NormalizedMetric
	trends  map[string][]float64
}
type errMsg struct {
	month string
	gen   int
	err   error
}

// New builds the dashboard. month may be empty to open on the current month.
func New(repo domain.MetricsRepo, log *zap.Logger, month string) Model {
	ctx, cancel := context.WithCancel(context.Background())
	if log == nil {
		log = zap.NewNop()
	}

	t := table.New()
	t.SetHeight(12)
	t.SetWidth(100)

	m := Model{
		ctx:    ctx,
		cancel: cancel,
		repo:   repo,
		log:    log,
		view:   ViewTable,
		table:  t,
		width:  100,
		height: 30,
	}
	m.loadMonths()
	if month != "" && indexOf(m.months, month) >= 0 {
		m.month = month
	}

	m.monthTable = table.New()
	m.monthTable.SetColumns([]table.Column{{Title: "Months", Width: 32}})
	m.monthTable.SetHeight(10)
	m.monthTable.SetWidth(36)
	m.rebuildPicker()

	return m
}

// loadMonths refreshes the calendar from the repo and keeps the selected
// month if it still exists.
func (m *Model) loadMonths() {
	m.current = m.repo.CurrentMonth()
	if ms, err := m.repo.Months(m.ctx); err == nil && len(ms) > 0 {
		m.months = ms
	} else {
		m.months = []string{m.current} // fallback
		if err != nil {
			m.log.Warn("listing months failed", zap.Error(err))
		}
	}
	if indexOf(m.months, m.month) < 0 {
		m.month = m.current
	}
}

func (m *Model) rebuildPicker() {
	var rows []table.Row
	for _, mo := range m.months {
		label := mo
		if mo == m.current {
			label += "  (current)"
		}
		rows = append(rows, table.Row{label})
	}
	m.monthTable.SetRows(rows)
}

func (m Model) Init() tea.Cmd {
	return m.fetch()
}

func (m Model) fetch() tea.Cmd {
	repo, ctx, month, gen := m.repo, m.ctx, m.month, m.gen
	return func() tea.Msg {
		ms, err := repo.ListModules(ctx, month)
		if err != nil {
			return errMsg{month: month, gen: gen, err: err}
		}
		trends := make(map[string][]float64, len(ms))
		for _, mod := range ms {
			tr, err := repo.Trend(ctx, mod.Name)
			if err != nil {
				return errMsg{month: month, gen: gen, err: err}
			}
			trends[mod.Name] = tr
		}
		return modulesMsg{month: month, gen: gen, modules: ms, trends: trends}
	}
}

func (m Model) selectMonth(month string) (Model, tea.Cmd) {
	if month == m.month {
		return m, nil
	}
	m.month = month
	m.err = nil
	m.log.Info("month selected", zap.String("month", month), zap.Bool("current", month == m.current))
	return m, m.fetch()
}

func (m Model) step(delta int) (Model, tea.Cmd) {
	i := indexOf(m.months, m.month)
	if i < 0 {
		return m, nil
	}
	return m.selectMonth(m.months[clamp(i+delta, 0, len(m.months)-1)])
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

		// compute vertical layout using measured blocks, not magic numbers
		headerH := lipgloss.Height(m.renderHeader())
		cardsH := lipgloss.Height(m.renderCards())
		footerH := lipgloss.Height(styles.Footer.Render("x"))
		base := m.height - headerH - cardsH - footerH - 2

		if m.infoOpen {
			base -= lipgloss.Height(styles.Box.Render(m.renderInfo()))
		}
		if base < 5 {
			base = 5
		}
		m.table.SetHeight(base)
		m.table.SetWidth(m.width - 4)
		m.rebuildTable()
		return m, nil

	case modulesMsg:
		if msg.month != m.month || msg.gen != m.gen {
			return m, nil // stale
		}
		m.modules = msg.modules
		m.trends = msg.trends
		m.err = nil
		m.rebuildTable()

		if len(m.modules) > 0 {
			cur := m.table.Cursor()
			if cur < 0 || cur >= len(m.modules) {
				m.table.SetCursor(0)
			}
		}
		return m, nil

	case errMsg:
		if msg.month != m.month || msg.gen != m.gen {
			return m, nil // stale
		}
		m.err = msg.err
		// never leave another month's rows under this month's header
		m.modules = nil
		m.trends = nil
		m.rebuildTable()
		m.log.Error("loading modules failed", zap.String("month", m.month), zap.Error(msg.err))
		return m, nil

	case RepoMsg:
		if msg.Repo == nil {
			return m, nil
		}
		m.repo = msg.Repo
		m.gen++
		m.loadMonths()
		m.rebuildPicker()
		m.log.Info("data source reloaded", zap.Int("months", len(m.months)), zap.String("month", m.month))
		return m, m.fetch()

	case tea.KeyMsg:
		if m.pickerOpen {
			switch msg.String() {
			case "enter":
				m.pickerOpen = false
				m.monthTable.Blur()
				idx := clamp(m.monthTable.Cursor(), 0, len(m.months)-1)
				return m.selectMonth(m.months[idx])
			case "esc":
				m.pickerOpen = false
				m.monthTable.Blur()
				return m, nil
			case "up", "k", "down", "j", "pgup", "pgdown", "home", "end":
				var cmd tea.Cmd
				m.monthTable, cmd = m.monthTable.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.cancel()
			return m, tea.Quit

		case "m":
			m.pickerOpen = true
			m.monthTable.Focus()
			m.monthTable.SetCursor(clamp(indexOf(m.months, m.month), 0, len(m.months)-1))
			return m, nil

		case "left", "[":
			return m.step(-1)

		case "right", "]":
			return m.step(1)

		case "tab":
			if m.view == ViewTable {
				m.view = ViewCharts
			} else {
				m.view = ViewTable
			}
			return m, nil

		case "i":
			m.infoOpen = !m.infoOpen
			// trigger a synthetic resize to recalc heights
			w, h := m.width, m.height
			return m, func() tea.Msg { return tea.WindowSizeMsg{Width: w, Height: h} }

		case "esc":
			if m.infoOpen {
				m.infoOpen = false
				return m, nil
			}
			m.cancel()
			return m, tea.Quit

		case "up", "k", "down", "j":
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) rebuildTable() {
	total := m.table.Width()
	wName, wTickets, wTime, wSLA, wBar, wStatus, wTrend := moduleColWidths(total)

	cols := []table.Column{
		{Title: "MODULE", Width: wName},
		{Title: "TICKETS", Width: wTickets},
		{Title: "AVG TIME (min)", Width: wTime},
		{Title: "SLA %", Width: wSLA},
		{Title: "", Width: wBar},
		{Title: "STATUS", Width: wStatus},
		{Title: "TREND", Width: wTrend},
	}

	var rows []table.Row
	for _, mod := range m.modules {
		trend := widgets.Spark8(widgets.Rescale(m.trends[mod.Name], slaFloor, slaCeil), wTrend)
		if trend == "" {
			trend = "—"
		}
		rows = append(rows, table.Row{
			mod.Name,
			dash(mod.Tickets > 0, strconv.Itoa(mod.Tickets)),
			resolutionCell(mod),
			dash(mod.SLA > 0, formatPercent(mod.SLA)),
			widgets.Bar(widgets.Rescale([]float64{mod.SLA}, slaFloor, slaCeil)[0], wBar-1),
			string(mod.Status),
			trend,
		})
	}
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.Focus()
}

func (m Model) View() string {
	body := ""
	switch m.view {
	case ViewTable:
		body = lipgloss.NewStyle().Padding(0, 1).Render(m.table.View())
	case ViewCharts:
		body = lipgloss.NewStyle().Padding(0, 1).Render(m.renderCharts())
	}

	info := ""
	if m.infoOpen {
		info = styles.Box.Width(m.width - 2).Render(m.renderInfo())
	}

	// Overlay picker
	overlay := ""
	if m.pickerOpen {
		box := styles.Box.
			BorderForeground(lipgloss.Color("#7DCE13")).
			Width(40).Height(14)
		title := styles.Title.Render(" Switch Month (↑/↓, Enter, Esc) ")
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			m.monthTable.View(),
		)
		overlay = lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			box.Render(content),
		)
	}

	footer := styles.Footer.Render("↑/↓ move • [←/→] month • [m] pick month • [Tab] table/charts • [i] insights • [q] quit")
	if m.err != nil {
		footer = styles.Danger.Render("error: "+m.err.Error()) + "\n" + footer
	}

	main := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.renderCards(), body, info, footer)
	if m.pickerOpen {
		return main + "\n" + overlay
	}
	return main
}

func (m Model) renderHeader() string {
	month := m.month
	if month == m.current {
		month += " (current)"
	}
	return styles.Header.Render(
		fmt.Sprintf("Support Analytics Dashboard  │ month: %s  view: %s",
			styles.TabActive.Render(month), styles.Tab.Render(viewNames[m.view])),
	)
}

func (m Model) renderCards() string {
	s := analytics.Summarize(m.modules)
	card := func(title, value, status string, st lipgloss.Style) string {
		return styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
			styles.Faint.Render(title),
			styles.Title.Render(value),
			st.Render(status),
		))
	}

	breach := "-"
	if s.HasSLASummary {
		breach = fmt.Sprintf("%.0f min", s.AvgBreach)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Tickets", strconv.Itoa(s.TotalTickets), "Active", styles.Good),
		card("Avg Resolution Time", fmt.Sprintf("%.0f min", s.AvgResolution), "Average", styles.Warn),
		card("Overall SLA Compliance", formatPercent(s.OverallSLA), string(analytics.Classify(s.OverallSLA)), styles.ForStatus(analytics.Classify(s.OverallSLA))),
		card("Avg Breach Time", breach, "Monitor", styles.Danger),
	)
}

func (m Model) renderCharts() string {
	wLabel := chartLabelWidth(m.width)
	wBar := clamp(m.width-wLabel-16, 10, 60)

	line := func(i int, label, bar, value string) string {
		return fmt.Sprintf("%-*s %s %s", wLabel, truncate(label, wLabel), styles.Series(i).Render(bar), value)
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render("Resolution Time by Module") + "\n")
	res := analytics.ResolutionSeries(m.modules)
	var maxRes float64
	for _, mod := range res {
		if mod.ResolutionTime > maxRes {
			maxRes = mod.ResolutionTime
		}
	}
	for i, mod := range res {
		b.WriteString(line(i, mod.Name, widgets.Bar(mod.ResolutionTime/maxRes, wBar), fmt.Sprintf("%.2f min", mod.ResolutionTime)) + "\n")
	}

	b.WriteString("\n" + styles.Title.Render("SLA Compliance by Module") + "\n")
	for i, mod := range analytics.SLASeries(m.modules) {
		bar := widgets.Bar(widgets.Rescale([]float64{mod.SLA}, slaFloor, slaCeil)[0], wBar)
		b.WriteString(line(i, mod.Name, bar, formatPercent(mod.SLA)) + "\n")
	}

	b.WriteString("\n" + styles.Title.Render("Ticket Volume") + "\n")
	tickets := analytics.TicketSeries(m.modules)
	counts := make([]float64, len(tickets))
	for i, mod := range tickets {
		counts[i] = float64(mod.Tickets)
	}
	for i, share := range widgets.Shares(counts) {
		b.WriteString(line(i, tickets[i].Name, widgets.Bar(share, wBar), fmt.Sprintf("%3.0f%%", share*100)) + "\n")
	}

	s := analytics.Summarize(m.modules)
	b.WriteString("\n" + styles.Title.Render("SLA Overview") + "\n")
	b.WriteString(styles.Good.Render(widgets.Gauge(s.OverallSLA/100, wLabel+wBar)) +
		" " + formatPercent(s.OverallSLA) + " overall")

	return b.String()
}

func (m Model) renderInfo() string {
	var lines []string
	if best, ok := analytics.BestPerformer(m.modules); ok {
		lines = append(lines, fmt.Sprintf("Best performer:     %s has the highest SLA compliance at %s.",
			best.Name, styles.Good.Render(formatPercent(best.SLA))))
	}
	if worst, ok := analytics.WorstPerformer(m.modules); ok {
		lines = append(lines, fmt.Sprintf("Needs attention:    %s has the lowest SLA compliance at %s.",
			worst.Name, styles.Warn.Render(formatPercent(worst.SLA))))
	}
	if fastest, ok := analytics.Fastest(m.modules); ok {
		lines = append(lines, fmt.Sprintf("Fastest resolution: %s resolves tickets fastest at %s.",
			fastest.Name, styles.Info.Render(fmt.Sprintf("%.2f min", fastest.ResolutionTime))))
	}

	if i := m.table.Cursor(); i >= 0 && i < len(m.modules) {
		mod := m.modules[i]
		first, last := "", ""
		if len(m.months) > 0 {
			first, last = m.months[0], m.months[len(m.months)-1]
		}
		lines = append(lines, fmt.Sprintf("SLA trend %s: %s %s %s",
			mod.Name, first, widgets.Spark8(widgets.Rescale(m.trends[mod.Name], slaFloor, slaCeil), 24), last))
		if mod.Kind == domain.KindSLASummary {
			lines = append(lines, styles.Faint.Render("* average breach time"))
		}
	}
	if len(lines) == 0 {
		return "No insights for this month"
	}
	return strings.Join(lines, "\n")
}

func resolutionCell(mod domain.NormalizedMetric) string {
	if mod.ResolutionTime <= 0 {
		return "-"
	}
	s := fmt.Sprintf("%.2f", mod.ResolutionTime)
	if mod.Kind == domain.KindSLASummary {
		s += "*"
	}
	return s
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func dash(ok bool, s string) string {
	if !ok {
		return "-"
	}
	return s
}

func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}

func indexOf(xs []string, s string) int {
	for i, x := range xs {
		if x == s {
			return i
		}
	}
	return -1
}
