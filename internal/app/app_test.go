package app

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaPhanBaoMinh/supmet/internal/analytics"
	"github.com/HaPhanBaoMinh/supmet/internal/infrastructure/static"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newRepo(t *testing.T, cal analytics.Calendar) *static.Repo {
	t.Helper()
	r, err := static.New(cal, nil)
	require.NoError(t, err)
	return r
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// run executes cmd and feeds its message back into m.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	return m
}

func loaded(t *testing.T, month string) Model {
	t.Helper()
	m := New(newRepo(t, analytics.DefaultCalendar()), nil, month)
	return run(t, m, m.Init())
}

func TestNew_OpensOnCurrentMonth(t *testing.T) {
	m := loaded(t, "")
	assert.Equal(t, "December 2025", m.month)
	require.Len(t, m.modules, 7)
	assert.Len(t, m.table.Rows(), 7)
	assert.Len(t, m.trends["Agent Performance"], 12)

	assert.Equal(t, "Status Analysis", m.table.Rows()[6][0])
	assert.Equal(t, "-", m.table.Rows()[6][3], "missing SLA renders as a dash")
	assert.Equal(t, "458.67*", m.table.Rows()[3][2])
}

func TestNew_StartMonth(t *testing.T) {
	m := loaded(t, "June 2025")
	assert.Equal(t, "June 2025", m.month)
	assert.Equal(t, 318, m.modules[0].Tickets)

	m = New(newRepo(t, analytics.DefaultCalendar()), nil, "Smarch 2025")
	assert.Equal(t, "December 2025", m.month, "unknown start month falls back to current")
}

func TestStepMonths(t *testing.T) {
	m := loaded(t, "")

	m, cmd := send(t, m, key("left"))
	assert.Equal(t, "November 2025", m.month)
	m = run(t, m, cmd)

	want, err := newRepo(t, analytics.DefaultCalendar()).ListModules(context.Background(), "November 2025")
	require.NoError(t, err)
	assert.Equal(t, want, m.modules)

	m, cmd = send(t, m, key("]"))
	assert.Equal(t, "December 2025", m.month)
	m = run(t, m, cmd)

	m, cmd = send(t, m, key("right"))
	assert.Equal(t, "December 2025", m.month, "no month after the last one")
	assert.Nil(t, cmd)
}

func TestMonthPicker(t *testing.T) {
	m := loaded(t, "")

	m, _ = send(t, m, key("m"))
	require.True(t, m.pickerOpen)
	assert.Equal(t, 11, m.monthTable.Cursor())
	assert.Contains(t, m.View(), "Switch Month")

	m, _ = send(t, m, key("up"))
	m, _ = send(t, m, key("up"))
	m, cmd := send(t, m, key("enter"))
	assert.False(t, m.pickerOpen)
	assert.Equal(t, "October 2025", m.month)
	m = run(t, m, cmd)
	assert.Equal(t, "October 2025", m.month)

	m, _ = send(t, m, key("m"))
	m, cmd = send(t, m, key("esc"))
	assert.False(t, m.pickerOpen)
	assert.Nil(t, cmd)
	assert.Equal(t, "October 2025", m.month)
}

func TestToggleViewAndInsights(t *testing.T) {
	m := loaded(t, "")

	out := m.View()
	assert.Contains(t, out, "Support Analytics Dashboard")
	assert.Contains(t, out, "December 2025 (current)")
	assert.Contains(t, out, "Agent Performance")

	m, _ = send(t, m, key("tab"))
	assert.Equal(t, ViewCharts, m.view)
	out = m.View()
	assert.Contains(t, out, "Resolution Time by Module")
	assert.Contains(t, out, "SLA Overview")
	assert.Contains(t, out, "99.21% overall")

	m, cmd := send(t, m, key("i"))
	assert.True(t, m.infoOpen)
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())
	out = m.View()
	assert.Contains(t, out, "Requester Part Analysis has the highest SLA compliance")
	assert.Contains(t, out, "Shift Analysis has the lowest SLA compliance")
	assert.Contains(t, out, "Team Leader Summary resolves tickets fastest")

	m, _ = send(t, m, key("esc"))
	assert.False(t, m.infoOpen)
}

func TestStaleAndErrorMessages(t *testing.T) {
	m := loaded(t, "")

	m, _ = send(t, m, modulesMsg{month: "March 2025"})
	assert.Len(t, m.modules, 7, "stale result ignored")

	m, _ = send(t, m, errMsg{month: "March 2025", gen: m.gen, err: errors.New("late")})
	assert.Nil(t, m.err, "error for another month ignored")
	assert.Len(t, m.modules, 7)

	m, _ = send(t, m, errMsg{month: m.month, gen: m.gen, err: errors.New("boom")})
	out := m.View()
	assert.Contains(t, out, "error: boom")
	assert.Contains(t, out, "December 2025")
	assert.Empty(t, m.modules, "previous rows cleared on error")
	assert.Empty(t, m.table.Rows())
}

func TestRepoSwap_DropsResultsFromOldRepo(t *testing.T) {
	m := loaded(t, "")
	before := m.fetch()

	cal := analytics.Calendar{Months: []string{"November 2025", "December 2025"}, Current: "November 2025"}
	next := newRepo(t, cal)
	m, cmd := send(t, m, RepoMsg{Repo: next})
	assert.Equal(t, "December 2025", m.month)
	assert.Equal(t, 1, m.gen)

	m = run(t, m, cmd)
	want, err := next.ListModules(context.Background(), "December 2025")
	require.NoError(t, err)
	assert.Equal(t, want, m.modules)

	// the fetch started against the old repo finishes last
	m = run(t, m, before)
	assert.Equal(t, want, m.modules, "old repo result dropped")

	m, _ = send(t, m, errMsg{month: m.month, gen: 0, err: errors.New("old")})
	assert.Nil(t, m.err)
}

func TestRepoSwap(t *testing.T) {
	m := loaded(t, "")

	cal := analytics.Calendar{Months: []string{"April 2025", "May 2025", "June 2025"}, Current: "June 2025"}
	m, cmd := send(t, m, RepoMsg{Repo: newRepo(t, cal)})
	assert.Equal(t, "June 2025", m.month)
	assert.Equal(t, cal.Months, m.months)
	assert.Len(t, m.monthTable.Rows(), 3)

	m = run(t, m, cmd)
	assert.Equal(t, 381, m.modules[0].Tickets, "June is now the current month")
}

func TestQuit(t *testing.T) {
	m := loaded(t, "")
	_, cmd := send(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModuleColWidths(t *testing.T) {
	wName, wTickets, wTime, wSLA, wBar, wStatus, wTrend := moduleColWidths(120)
	assert.Equal(t, 120-77, wBar+wName-24)
	assert.Equal(t, 30, wBar)
	assert.Equal(t, 37, wName)
	assert.Equal(t, []int{8, 14, 8, 11, 12}, []int{wTickets, wTime, wSLA, wStatus, wTrend})

	_, _, _, _, wBar, _, _ = moduleColWidths(40)
	assert.Equal(t, 6, wBar)
}
