package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/attnlabs/focusd/internal/domain/category"
	"github.com/attnlabs/focusd/internal/domain/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	timerDisplayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69")).
				Bold(true)

	timerRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	workStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	unproductiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("203"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)
)

func (m *Model) View() string {
	var body string
	switch m.screen {
	case screenStats:
		body = m.statsView()
	case screenSites:
		body = m.sitesView()
	case screenInsight:
		body = m.insightView()
	default:
		body = m.timerView()
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Width(62).Render("focusd"))
	sb.WriteString("\n\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	if m.err != nil {
		sb.WriteString(errStyle.Render("daemon unreachable: " + m.err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("1 Timer | 2 Today | 3 Sites | 4 Insight | f Focus mode | q Quit"))
	return sb.String()
}

func (m *Model) timerView() string {
	phase := "Break"
	if m.state.WorkPhase {
		phase = "Work"
	}

	clock := fmt.Sprintf("%02d:%02d", m.remaining/60, m.remaining%60)
	var clockStr string
	if m.state.Running {
		clockStr = timerRunningStyle.Render(clock)
	} else {
		clockStr = timerDisplayStyle.Render(clock)
	}

	status := "Paused"
	statusStyle := inactiveStyle
	if m.state.Running {
		status = "Running"
		statusStyle = timerRunningStyle
	}

	focus := "off"
	if m.settings.FocusMode {
		focus = "on"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s phase\n\n", phase))
	sb.WriteString(clockStr)
	sb.WriteString(fmt.Sprintf("\n\n%s\n", statusStyle.Render(status)))
	sb.WriteString(fmt.Sprintf("Focus mode: %s\n\n", focus))
	sb.WriteString(fmt.Sprintf("Sessions today: %d   Streak: %dd (best %dd)\n",
		m.timerStats.SessionsToday, m.timerStats.CurrentStreakDays, m.timerStats.LongestStreakDays))
	sb.WriteString(fmt.Sprintf("Total: %d sessions, %d min focused\n\n", m.timerStats.TotalSessions, m.timerStats.TotalMinutes))
	sb.WriteString(helpStyle.Render("Space: Start/Pause | r: Reset"))
	return boxStyle.Width(60).Render(sb.String())
}

func (m *Model) statsView() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Today (%s)\n\n", m.day.Day))
	sb.WriteString(workStyle.Render(fmt.Sprintf("Work          %8s", report.FormatSeconds(m.day.Totals.Work))))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Neutral       %8s", report.FormatSeconds(m.day.Totals.Neutral)))
	sb.WriteString("\n")
	sb.WriteString(unproductiveStyle.Render(fmt.Sprintf("Unproductive  %8s", report.FormatSeconds(m.day.Totals.Unproductive))))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Tracked total %8s\n", report.FormatSeconds(m.day.Totals.All)))
	sb.WriteString(fmt.Sprintf("Productivity  %7d%%\n", m.day.Rate))
	return boxStyle.Width(60).Render(sb.String())
}

func (m *Model) sitesView() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("All sites (%d days tracked)\n\n", m.overview.Days))

	if len(m.overview.Sites) == 0 {
		sb.WriteString(inactiveStyle.Render("Nothing tracked yet."))
	}
	for i, site := range m.overview.Sites {
		line := fmt.Sprintf("%-30s %8s  %s", site.Domain, report.FormatSeconds(site.Seconds), renderCategory(site.Category))
		if i == m.selected {
			sb.WriteString(selectedStyle.Render(line))
		} else {
			sb.WriteString(itemStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Up/Down: Select | c: Cycle category | x: Delete site"))
	return boxStyle.Width(60).Render(sb.String())
}

func (m *Model) insightView() string {
	var sb strings.Builder
	sb.WriteString("Daily insight\n\n")
	if m.insight == "" {
		sb.WriteString(inactiveStyle.Render("Generating…"))
	} else {
		sb.WriteString(wrapText(m.insight, 56))
	}
	return boxStyle.Width(60).Render(sb.String())
}

func renderCategory(cat category.Category) string {
	switch cat {
	case category.Work:
		return workStyle.Render("work")
	case category.Unproductive:
		return unproductiveStyle.Render("unproductive")
	default:
		return inactiveStyle.Render("neutral")
	}
}

func wrapText(text string, width int) string {
	words := strings.Fields(text)
	var sb strings.Builder
	lineLen := 0
	for _, word := range words {
		if lineLen > 0 && lineLen+1+len(word) > width {
			sb.WriteString("\n")
			lineLen = 0
		} else if lineLen > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
