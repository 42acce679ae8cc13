// Package reconcile merges a fresh Snapshot into the presentation's view
// state. Apply is pure: given the same previous state and snapshot it
// always produces the same result, so the UI can run it on every data
// message without hidden coupling.
package reconcile

import (
	"fmt"

	"github.com/TSZwane/modern-task-manager/model"
)

// ViewState is owned by the presentation goroutine. Selection is tracked
// by identity (PID / unit name), not row position, because row order may
// shift between samples. Scroll offsets are row indices.
type ViewState struct {
	SelectedPID     int32  // 0 means no selection
	SelectedService string // "" means no selection
	ProcessScroll   int
	ServiceScroll   int
}

// Update is the full view replacement computed for one snapshot.
// Selected indices are positions in the snapshot's row order, -1 when the
// previously selected identity is no longer present.
type Update struct {
	Processes       []model.ProcessRecord
	Services        []model.ServiceRecord
	SelectedProcess int
	SelectedService int
	State           ViewState
	Status          string
}

// Apply replaces the row set with the snapshot's contents, re-establishes
// selection by identity, clamps scroll offsets to the new content and
// recomputes the status summary.
func Apply(prev ViewState, snap model.Snapshot) Update {
	u := Update{
		Processes:       snap.Processes,
		Services:        snap.Services,
		SelectedProcess: -1,
		SelectedService: -1,
	}

	state := prev
	state.SelectedPID = 0
	state.SelectedService = ""

	if prev.SelectedPID != 0 {
		for i := range snap.Processes {
			if snap.Processes[i].Pid == prev.SelectedPID {
				u.SelectedProcess = i
				state.SelectedPID = prev.SelectedPID
				break
			}
		}
	}

	if prev.SelectedService != "" {
		for i := range snap.Services {
			if snap.Services[i].Name == prev.SelectedService {
				u.SelectedService = i
				state.SelectedService = prev.SelectedService
				break
			}
		}
	}

	state.ProcessScroll = clampScroll(prev.ProcessScroll, len(snap.Processes))
	state.ServiceScroll = clampScroll(prev.ServiceScroll, len(snap.Services))

	u.State = state
	u.Status = StatusLine(snap)
	return u
}

// StatusLine renders the one-line summary shown in the status bar.
func StatusLine(snap model.Snapshot) string {
	return fmt.Sprintf("Processes: %d | CPU: %.1f%% | Memory: %.1f%%",
		len(snap.Processes),
		snap.Performance.CPUPercent,
		snap.Performance.MemoryPercent)
}

func clampScroll(offset, rows int) int {
	if rows == 0 {
		return 0
	}
	if offset >= rows {
		return rows - 1
	}
	if offset < 0 {
		return 0
	}
	return offset
}
