package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TSZwane/modern-task-manager/model"
)

func snapWith(procs []model.ProcessRecord, svcs []model.ServiceRecord, perf model.Performance) model.Snapshot {
	return model.NewSnapshot(procs, svcs, perf, time.Now())
}

func threeProcs() []model.ProcessRecord {
	return []model.ProcessRecord{
		{Pid: 10, Name: "a"},
		{Pid: 20, Name: "b"},
		{Pid: 30, Name: "c"},
	}
}

func TestApply_SelectionSurvivesWhenPIDPresent(t *testing.T) {
	prev := ViewState{SelectedPID: 20}
	u := Apply(prev, snapWith(threeProcs(), nil, model.Performance{}))

	assert.Equal(t, 1, u.SelectedProcess)
	assert.Equal(t, int32(20), u.State.SelectedPID)
}

func TestApply_SelectionSurvivesReordering(t *testing.T) {
	prev := ViewState{SelectedPID: 20}
	reordered := []model.ProcessRecord{
		{Pid: 30, Name: "c"},
		{Pid: 20, Name: "b"},
		{Pid: 10, Name: "a"},
	}

	u := Apply(prev, snapWith(reordered, nil, model.Performance{}))
	assert.Equal(t, 1, u.SelectedProcess, "selection follows identity, not row position")
}

func TestApply_SelectionClearedWhenProcessExits(t *testing.T) {
	// pid=20 selected, then it exits between samples.
	prev := ViewState{SelectedPID: 20}
	next := []model.ProcessRecord{
		{Pid: 10, Name: "a"},
		{Pid: 30, Name: "c"},
	}

	u := Apply(prev, snapWith(next, nil, model.Performance{}))

	require.Len(t, u.Processes, 2)
	assert.Equal(t, -1, u.SelectedProcess, "selection must be empty, not an arbitrary row")
	assert.Zero(t, u.State.SelectedPID)
}

func TestApply_ServiceSelectionByName(t *testing.T) {
	svcs := []model.ServiceRecord{
		{Name: "ssh.service"},
		{Name: "cron.service"},
	}
	prev := ViewState{SelectedService: "cron.service"}

	u := Apply(prev, snapWith(nil, svcs, model.Performance{}))
	assert.Equal(t, 1, u.SelectedService)
	assert.Equal(t, "cron.service", u.State.SelectedService)
}

func TestApply_ServiceSelectionClearedWhenOutsideWindow(t *testing.T) {
	prev := ViewState{SelectedService: "nginx.service"}
	u := Apply(prev, snapWith(nil, []model.ServiceRecord{{Name: "ssh.service"}}, model.Performance{}))

	assert.Equal(t, -1, u.SelectedService)
	assert.Empty(t, u.State.SelectedService)
}

func TestApply_ScrollClampedToNewContent(t *testing.T) {
	prev := ViewState{ProcessScroll: 50, ServiceScroll: 4}
	u := Apply(prev, snapWith(threeProcs(), []model.ServiceRecord{{Name: "s"}}, model.Performance{}))

	assert.Equal(t, 2, u.State.ProcessScroll)
	assert.Equal(t, 0, u.State.ServiceScroll)
}

func TestApply_ScrollPreservedWhenInRange(t *testing.T) {
	prev := ViewState{ProcessScroll: 1}
	u := Apply(prev, snapWith(threeProcs(), nil, model.Performance{}))
	assert.Equal(t, 1, u.State.ProcessScroll)
}

func TestApply_EmptySnapshotZeroesScroll(t *testing.T) {
	prev := ViewState{ProcessScroll: 3, ServiceScroll: 2}
	u := Apply(prev, snapWith(nil, nil, model.Performance{}))

	assert.Equal(t, 0, u.State.ProcessScroll)
	assert.Equal(t, 0, u.State.ServiceScroll)
}

func TestApply_StatusSummary(t *testing.T) {
	perf := model.Performance{CPUPercent: 55.5, MemoryPercent: 50.0}
	u := Apply(ViewState{}, snapWith(threeProcs(), nil, perf))

	assert.Equal(t, "Processes: 3 | CPU: 55.5% | Memory: 50.0%", u.Status)
}

func TestApply_Idempotent(t *testing.T) {
	prev := ViewState{SelectedPID: 30, SelectedService: "ssh.service", ProcessScroll: 2}
	snap := snapWith(threeProcs(),
		[]model.ServiceRecord{{Name: "ssh.service", Status: "active"}},
		model.Performance{CPUPercent: 12.3, MemoryPercent: 45.6})

	first := Apply(prev, snap)
	second := Apply(prev, snap)
	assert.Equal(t, first, second)
}

func TestApply_RowsReplacedWholesale(t *testing.T) {
	u := Apply(ViewState{}, snapWith(threeProcs(), nil, model.Performance{}))
	require.Len(t, u.Processes, 3)

	next := Apply(u.State, snapWith([]model.ProcessRecord{{Pid: 99, Name: "z"}}, nil, model.Performance{}))
	require.Len(t, next.Processes, 1)
	assert.Equal(t, int32(99), next.Processes[0].Pid)
}
