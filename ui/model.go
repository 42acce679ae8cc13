package ui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TSZwane/modern-task-manager/model"
	"github.com/TSZwane/modern-task-manager/reconcile"
)

// refresher requests an out-of-band sample from the sampler loop.
type refresher interface {
	Refresh()
}

// Model holds TUI state. All of it is owned by the bubbletea event loop;
// the sampler only ever reaches it through snapshotMsg values.
type Model struct {
	refresher refresher

	processTable table.Model
	serviceTable table.Model

	snapshot model.Snapshot
	view     reconcile.ViewState
	sorter   *model.Sorter

	// visibleProcs mirrors the process table rows after filter+sort so the
	// cursor can be mapped back to a record without re-parsing row text.
	visibleProcs []model.ProcessRecord

	filterInput textinput.Model
	filterText  string
	mode        uiMode
	activeTab   tabID

	cpuBar  progress.Model
	memBar  progress.Model
	diskBar progress.Model

	statusText  string
	statusError bool

	killPID  int32
	killName string

	width  int
	height int
}

func NewModel(r refresher) Model {
	processColumns := []table.Column{
		{Title: "NAME", Width: 22},
		{Title: "PID", Width: 8},
		{Title: "STATUS", Width: 10},
		{Title: "USER", Width: 12},
		{Title: "CPU %", Width: 8},
		{Title: "MEMORY %", Width: 10},
	}

	pt := table.New(
		table.WithColumns(processColumns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	serviceColumns := []table.Column{
		{Title: "SERVICE", Width: 24},
		{Title: "STATUS", Width: 10},
		{Title: "DESCRIPTION", Width: 36},
		{Title: "PID", Width: 8},
	}

	// Both tables stay focused; key messages are routed to whichever tab
	// is active, so focus never needs toggling.
	st := table.New(
		table.WithColumns(serviceColumns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("cyan"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	pt.SetStyles(s)
	st.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "filter by name or user..."
	ti.CharLimit = 50

	return Model{
		refresher:    r,
		processTable: pt,
		serviceTable: st,
		sorter:       model.NewSorter(),
		filterInput:  ti,
		mode:         normalMode,
		activeTab:    processesTab,
		cpuBar:       progress.New(progress.WithDefaultGradient()),
		memBar:       progress.New(progress.WithDefaultGradient()),
		diskBar:      progress.New(progress.WithDefaultGradient()),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}
