package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TSZwane/modern-task-manager/model"
	"github.com/TSZwane/modern-task-manager/proc"
	"github.com/TSZwane/modern-task-manager/reconcile"
	"github.com/TSZwane/modern-task-manager/services"
)

const errorFmt = "Error: %v"

const serviceActionTimeout = 10 * time.Second

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.processTable.SetHeight(msg.Height - 12)
		m.serviceTable.SetHeight(msg.Height - 12)
		barWidth := msg.Width - 24
		if barWidth > 60 {
			barWidth = 60
		}
		if barWidth > 0 {
			m.cpuBar.Width = barWidth
			m.memBar.Width = barWidth
			m.diskBar.Width = barWidth
		}
		return m, nil

	case snapshotMsg:
		m.applySnapshot(model.Snapshot(msg))
		return m, nil

	case statusMsg:
		m.statusText = msg.text
		m.statusError = msg.isError
		return m, nil
	}

	// Update filter input if in filter mode
	if m.mode == filterMode {
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.filterText = m.filterInput.Value()
		m.updateProcessTable()
		return m, cmd
	}

	return m, nil
}

// applySnapshot runs the reconciler on the UI goroutine and replaces the
// rendered rows with the snapshot's contents.
func (m *Model) applySnapshot(snap model.Snapshot) {
	u := reconcile.Apply(m.view, snap)
	m.snapshot = snap
	m.view = u.State
	m.statusText = u.Status
	m.statusError = false
	m.updateProcessTable()
	m.updateServiceTable()
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case normalMode:
		return m.handleNormalMode(msg)
	case filterMode:
		return m.handleFilterMode(msg)
	case confirmKillMode:
		return m.handleConfirmKill(msg)
	case helpMode:
		return m.handleHelpMode(msg)
	}
	return m, nil
}

func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.mode = helpMode
		return m, nil

	case "tab":
		m.activeTab = (m.activeTab + 1) % tabID(len(tabTitles))
		return m, nil

	case "shift+tab":
		m.activeTab = (m.activeTab + tabID(len(tabTitles)) - 1) % tabID(len(tabTitles))
		return m, nil

	case "1":
		m.activeTab = processesTab
		return m, nil
	case "2":
		m.activeTab = servicesTab
		return m, nil
	case "3":
		m.activeTab = performanceTab
		return m, nil

	// Manual refresh: out-of-band sample plus status feedback
	case "r":
		if m.refresher != nil {
			m.refresher.Refresh()
		}
		return m, m.showStatus("Refreshing...", false)
	}

	switch m.activeTab {
	case processesTab:
		return m.handleProcessKeys(msg)
	case servicesTab:
		return m.handleServiceKeys(msg)
	}
	return m, nil
}

func (m Model) handleProcessKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {

	// Sorting. Handled keys return here so the table's own bindings
	// (j/k/u/d navigation) don't double-fire.
	case "c":
		m.sorter.Toggle(model.SortByCPU)
		m.updateProcessTable()
		return m, nil
	case "m":
		m.sorter.Toggle(model.SortByMem)
		m.updateProcessTable()
		return m, nil
	case "p":
		m.sorter.Toggle(model.SortByPID)
		m.updateProcessTable()
		return m, nil
	case "u":
		m.sorter.Toggle(model.SortByUser)
		m.updateProcessTable()
		return m, nil
	case "n":
		m.sorter.Toggle(model.SortByName)
		m.updateProcessTable()
		return m, nil

	// Filtering
	case "/":
		m.mode = filterMode
		m.filterInput.Focus()
		return m, textinput.Blink

	// End process (graceful, with confirmation)
	case "k":
		if rec, ok := m.selectedProcess(); ok {
			m.killPID = rec.Pid
			m.killName = rec.Name
			m.mode = confirmKillMode
		}
		return m, nil

	// Force kill
	case "K":
		if rec, ok := m.selectedProcess(); ok {
			return m, forceKillCmd(rec.Pid)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.processTable, cmd = m.processTable.Update(msg)
	m.syncProcessSelection()
	return m, cmd
}

func (m Model) handleServiceKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		if svc, ok := m.selectedService(); ok {
			return m, serviceActionCmd("start", svc.Name)
		}
		return m, nil
	case "x":
		if svc, ok := m.selectedService(); ok {
			return m, serviceActionCmd("stop", svc.Name)
		}
		return m, nil
	case "e":
		if svc, ok := m.selectedService(); ok {
			return m, serviceActionCmd("restart", svc.Name)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.serviceTable, cmd = m.serviceTable.Update(msg)
	m.syncServiceSelection()
	return m, cmd
}

func (m Model) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = normalMode
		m.filterInput.Blur()
		return m, nil
	case "enter":
		m.mode = normalMode
		m.filterInput.Blur()
		m.filterText = m.filterInput.Value()
		m.updateProcessTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.filterText = m.filterInput.Value()
	m.updateProcessTable()
	return m, cmd
}

func (m Model) handleConfirmKill(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		pid, name := m.killPID, m.killName
		m.mode = normalMode
		return m, terminateCmd(pid, name)

	case "n", "N", "esc", "q":
		m.mode = normalMode
		return m, nil
	}
	return m, nil
}

func (m Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = normalMode
		return m, nil
	}
	return m, nil
}

func (m *Model) updateProcessTable() {
	filtered := m.applyFilter(m.snapshot.Processes, m.filterText)

	// Sort on a copy
	sorted := make([]model.ProcessRecord, len(filtered))
	copy(sorted, filtered)
	m.sorter.Sort(sorted)
	m.visibleProcs = sorted

	m.processTable.SetColumns(m.buildProcessColumns())

	rows := make([]table.Row, 0, len(sorted))
	for _, r := range sorted {
		cpuText := fmt.Sprintf("%.1f", r.CPUPercent)
		memText := fmt.Sprintf("%.1f", r.MemPercent)

		if r.CPUPercent > 50 {
			cpuText = highUsageStyle.Render(cpuText)
		} else if r.CPUPercent > 20 {
			cpuText = medUsageStyle.Render(cpuText)
		}

		if r.MemPercent > 10 {
			memText = highUsageStyle.Render(memText)
		} else if r.MemPercent > 5 {
			memText = medUsageStyle.Render(memText)
		}

		rows = append(rows, table.Row{
			r.Name,
			fmt.Sprintf("%d", r.Pid),
			r.Status,
			r.User,
			cpuText,
			memText,
		})
	}
	m.processTable.SetRows(rows)
	m.restoreProcessCursor()
}

func (m *Model) updateServiceTable() {
	rows := make([]table.Row, 0, len(m.snapshot.Services))
	for _, s := range m.snapshot.Services {
		rows = append(rows, table.Row{s.Name, s.Status, s.Description, s.PID})
	}
	m.serviceTable.SetRows(rows)
	m.restoreServiceCursor()
}

// buildProcessColumns constructs the table columns with sort indicators applied.
func (m *Model) buildProcessColumns() []table.Column {
	columns := m.processTable.Columns()
	sortIndicator := "↓"
	if !m.sorter.Descending {
		sortIndicator = "↑"
	}

	columns[0].Title = "NAME"
	columns[1].Title = "PID"
	columns[2].Title = "STATUS"
	columns[3].Title = "USER"
	columns[4].Title = "CPU %"
	columns[5].Title = "MEMORY %"

	switch m.sorter.Column {
	case model.SortByName:
		columns[0].Title = "NAME " + sortIndicator
	case model.SortByPID:
		columns[1].Title = "PID " + sortIndicator
	case model.SortByStatus:
		columns[2].Title = "STATUS " + sortIndicator
	case model.SortByUser:
		columns[3].Title = "USER " + sortIndicator
	case model.SortByCPU:
		columns[4].Title = "CPU % " + sortIndicator
	case model.SortByMem:
		columns[5].Title = "MEMORY % " + sortIndicator
	}
	return columns
}

// restoreProcessCursor moves the cursor back to the previously selected
// PID when it is still visible, otherwise to the clamped scroll offset.
func (m *Model) restoreProcessCursor() {
	if len(m.visibleProcs) == 0 {
		m.processTable.SetCursor(0)
		return
	}

	if m.view.SelectedPID != 0 {
		for i := range m.visibleProcs {
			if m.visibleProcs[i].Pid == m.view.SelectedPID {
				m.processTable.SetCursor(i)
				return
			}
		}
	}

	cursor := m.view.ProcessScroll
	if cursor >= len(m.visibleProcs) {
		cursor = len(m.visibleProcs) - 1
	}
	m.processTable.SetCursor(cursor)
}

func (m *Model) restoreServiceCursor() {
	if len(m.snapshot.Services) == 0 {
		m.serviceTable.SetCursor(0)
		return
	}

	if m.view.SelectedService != "" {
		for i := range m.snapshot.Services {
			if m.snapshot.Services[i].Name == m.view.SelectedService {
				m.serviceTable.SetCursor(i)
				return
			}
		}
	}

	cursor := m.view.ServiceScroll
	if cursor >= len(m.snapshot.Services) {
		cursor = len(m.snapshot.Services) - 1
	}
	m.serviceTable.SetCursor(cursor)
}

// syncProcessSelection records selection and scroll after user navigation.
// Only key handling calls this; snapshot application goes through the
// reconciler instead.
func (m *Model) syncProcessSelection() {
	m.view.ProcessScroll = m.processTable.Cursor()
	if rec, ok := m.selectedProcess(); ok {
		m.view.SelectedPID = rec.Pid
	} else {
		m.view.SelectedPID = 0
	}
}

func (m *Model) syncServiceSelection() {
	m.view.ServiceScroll = m.serviceTable.Cursor()
	if svc, ok := m.selectedService(); ok {
		m.view.SelectedService = svc.Name
	} else {
		m.view.SelectedService = ""
	}
}

func (m Model) selectedProcess() (model.ProcessRecord, bool) {
	i := m.processTable.Cursor()
	if i < 0 || i >= len(m.visibleProcs) {
		return model.ProcessRecord{}, false
	}
	return m.visibleProcs[i], true
}

func (m Model) selectedService() (model.ServiceRecord, bool) {
	i := m.serviceTable.Cursor()
	if i < 0 || i >= len(m.snapshot.Services) {
		return model.ServiceRecord{}, false
	}
	return m.snapshot.Services[i], true
}

// applyFilter returns process records matching the filter text by name,
// user or status. Empty text returns the input unchanged.
func (m *Model) applyFilter(records []model.ProcessRecord, text string) []model.ProcessRecord {
	if text == "" {
		return records
	}

	searchLower := strings.ToLower(text)
	filtered := make([]model.ProcessRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), searchLower) ||
			strings.Contains(strings.ToLower(r.User), searchLower) ||
			strings.Contains(strings.ToLower(r.Status), searchLower) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (m Model) showStatus(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}

func terminateCmd(pid int32, name string) tea.Cmd {
	return func() tea.Msg {
		if err := proc.TerminateProcess(int(pid)); err != nil {
			return statusMsg{text: fmt.Sprintf(errorFmt, err), isError: true}
		}
		return statusMsg{text: fmt.Sprintf("Process %s terminated", name)}
	}
}

func forceKillCmd(pid int32) tea.Cmd {
	return func() tea.Msg {
		if err := proc.ForceKillProcess(int(pid)); err != nil {
			return statusMsg{text: fmt.Sprintf(errorFmt, err), isError: true}
		}
		return statusMsg{text: fmt.Sprintf("Sent SIGKILL to PID %d", pid)}
	}
}

func serviceActionCmd(action, unit string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), serviceActionTimeout)
		defer cancel()

		var err error
		switch action {
		case "start":
			err = services.Start(ctx, unit)
		case "stop":
			err = services.Stop(ctx, unit)
		case "restart":
			err = services.Restart(ctx, unit)
		}

		if err != nil {
			return statusMsg{text: fmt.Sprintf(errorFmt, err), isError: true}
		}
		return statusMsg{text: fmt.Sprintf("Service %s: %s requested", unit, action)}
	}
}
