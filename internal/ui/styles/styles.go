package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/HaPhanBaoMinh/supmet/internal/domain"
)

var (
	Title     = lipgloss.NewStyle().Bold(true)
	TabActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7DCE13"))
	Tab       = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	Header    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	Footer    = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	Box       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	Card      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(24)
	Danger    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	Warn      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00"))
	Good      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7AF"))
	Info      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF"))
	Faint     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
)

// Palette colours chart series in order.
var Palette = []lipgloss.Color{
	"#06b6d4", // cyan
	"#8b5cf6", // purple
	"#10b981", // green
	"#f59e0b", // amber
	"#ef4444", // red
	"#ec4899", // pink
}

func Series(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Palette[i%len(Palette)])
}

func ForStatus(s domain.Status) lipgloss.Style {
	switch s.Color() {
	case "green":
		return Good
	case "yellow":
		return Warn
	case "red":
		return Danger
	default:
		return Faint
	}
}
