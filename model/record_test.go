package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot_DropsDuplicatePIDs(t *testing.T) {
	procs := []ProcessRecord{
		{Pid: 10, Name: "a"},
		{Pid: 20, Name: "b"},
		{Pid: 10, Name: "a-again"},
		{Pid: 30, Name: "c"},
	}

	snap := NewSnapshot(procs, nil, Performance{}, time.Now())

	require.Len(t, snap.Processes, 3)
	assert.Equal(t, "a", snap.Processes[0].Name, "first occurrence wins")
	assert.Equal(t, int32(20), snap.Processes[1].Pid)
	assert.Equal(t, int32(30), snap.Processes[2].Pid)

	seen := map[int32]bool{}
	for _, p := range snap.Processes {
		assert.False(t, seen[p.Pid], "duplicate pid %d survived", p.Pid)
		seen[p.Pid] = true
	}
}

func TestNewSnapshot_KeepsOrderAndFields(t *testing.T) {
	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svcs := []ServiceRecord{{Name: "ssh.service", Status: "active"}}
	perf := Performance{CPUPercent: 12.5, CPUCores: 8}

	snap := NewSnapshot([]ProcessRecord{{Pid: 1, Name: "init"}}, svcs, perf, at)

	assert.Equal(t, at, snap.TakenAt)
	assert.Equal(t, perf, snap.Performance)
	assert.Equal(t, svcs, snap.Services)
}
