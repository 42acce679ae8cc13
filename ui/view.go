package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.mode == helpMode {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.activeTab {
	case processesTab:
		b.WriteString(headerStyle.Render(m.renderProcessHeader()))
		b.WriteString("\n")
		b.WriteString(baseStyle.Render(m.processTable.View()))
	case servicesTab:
		b.WriteString(baseStyle.Render(m.serviceTable.View()))
		b.WriteString("\n")
		b.WriteString(keybindDescStyle.Render(
			keybindStyle.Render("[s]") + " Start  " +
				keybindStyle.Render("[x]") + " Stop  " +
				keybindStyle.Render("[e]") + " Restart"))
	case performanceTab:
		b.WriteString(m.renderPerformance())
	}
	b.WriteString("\n")

	if m.mode == normalMode {
		b.WriteString(m.renderQuickHelp())
		b.WriteString("\n")
	}

	if m.statusText != "" {
		b.WriteString("\n")
		b.WriteString(m.renderStatus())
		b.WriteString("\n")
	}

	if m.mode == filterMode {
		b.WriteString("\n")
		b.WriteString(m.renderFilterBar())
	}

	if m.mode == confirmKillMode {
		b.WriteString("\n")
		b.WriteString(m.renderConfirmKill())
	}

	return b.String()
}

func (m Model) renderTitle() string {
	title := titleStyle.Render("Modern Task Manager")
	return lipgloss.NewStyle().
		Background(lipgloss.Color("62")).
		Foreground(lipgloss.Color("230")).
		Bold(true).
		Width(m.width).
		Align(lipgloss.Center).
		Render(title)
}

func (m Model) renderProcessHeader() string {
	direction := sortedColumnStyle.Render("↓")
	if !m.sorter.Descending {
		direction = sortedColumnStyle.Render("↑")
	}

	header := fmt.Sprintf("Sort: %s %s", sortedColumnStyle.Render(m.sorter.ColumnName()), direction)

	if !m.snapshot.TakenAt.IsZero() {
		header += fmt.Sprintf(" | Updated: %s", m.snapshot.TakenAt.Format("15:04:05"))
	}
	if m.filterText != "" {
		header += fmt.Sprintf(" | Filter: %s",
			lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Render(m.filterText))
	}
	return header
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(tabTitles))
	for i, title := range tabTitles {
		if tabID(i) == m.activeTab {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderPerformance() string {
	p := m.snapshot.Performance
	var b strings.Builder

	b.WriteString(gaugeLabelStyle.Render(fmt.Sprintf("Total CPU Usage: %s", FormatPercent(p.CPUPercent))))
	b.WriteString("\n")
	b.WriteString(m.cpuBar.ViewAs(p.CPUPercent / 100))
	b.WriteString("\n\n")

	b.WriteString(gaugeLabelStyle.Render("Memory"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Used: %s", FormatUsage(p.MemoryUsedGB, p.MemoryTotalGB, p.MemoryPercent)))
	b.WriteString("\n")
	b.WriteString(m.memBar.ViewAs(p.MemoryPercent / 100))
	b.WriteString("\n\n")

	b.WriteString(gaugeLabelStyle.Render("Disk"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Used: %s", FormatUsage(p.DiskUsedGB, p.DiskTotalGB, p.DiskPercent)))
	b.WriteString("\n")
	b.WriteString(m.diskBar.ViewAs(p.DiskPercent / 100))
	b.WriteString("\n")

	boot := "unknown"
	if !p.BootTime.IsZero() {
		boot = p.BootTime.Format("2006-01-02 15:04:05")
	}
	info := fmt.Sprintf("Boot Time: %s\nCPU Cores: %d\nMemory Total: %dGB",
		boot, p.CPUCores, p.MemoryTotalGB)
	b.WriteString(infoBlockStyle.Render(info))

	return b.String()
}

func (m Model) renderQuickHelp() string {
	quickHelp := fmt.Sprintf(
		"%s Tabs | %s Sort | %s Filter | %s End Process | %s Refresh | %s Help | %s Quit",
		keybindStyle.Render("[tab/1/2/3]"),
		keybindStyle.Render("[c/m/p/u/n]"),
		keybindStyle.Render("[/]"),
		keybindStyle.Render("[k]"),
		keybindStyle.Render("[r]"),
		keybindStyle.Render("[?]"),
		keybindStyle.Render("[q]"),
	)
	return keybindDescStyle.Render(quickHelp)
}

func (m Model) renderStatus() string {
	style := successStyle
	if m.statusError {
		style = errorStyle
	}
	return style.Render(m.statusText)
}

func (m Model) renderFilterBar() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Render("Filter: ") +
		m.filterInput.View() +
		keybindDescStyle.Render(" (Enter to apply, Esc to cancel)")
}

func (m Model) renderConfirmKill() string {
	return confirmStyle.Render(fmt.Sprintf(
		"End Process?\n\nAre you sure you want to end '%s' (PID: %d)?\n\n[y] Yes   [n] No",
		m.killName, m.killPID))
}

func (m Model) renderHelp() string {
	rows := []struct{ key, desc string }{
		{"tab / shift+tab", "cycle tabs"},
		{"1 / 2 / 3", "jump to Processes / Services / Performance"},
		{"up / down", "move selection"},
		{"c m p u n", "sort by CPU / memory / PID / user / name"},
		{"/", "filter processes"},
		{"k", "end selected process (SIGTERM, confirm)"},
		{"K", "force kill selected process (SIGKILL)"},
		{"s / x / e", "start / stop / restart selected service"},
		{"r", "refresh now"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Keybindings"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			keybindStyle.Render(fmt.Sprintf("%-16s", r.key)),
			keybindDescStyle.Render(r.desc)))
	}
	b.WriteString("\n")
	b.WriteString(keybindDescStyle.Render("press esc or q to close"))
	return helpBoxStyle.Render(b.String())
}
