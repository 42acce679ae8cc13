package model

import "time"

// ProcessRecord is one live process as seen at sample time.
// Identity key is Pid; records are rebuilt from scratch every sample.
type ProcessRecord struct {
	Name       string
	Pid        int32
	Status     string
	User       string
	CPUPercent float64
	MemPercent float64
}

// ServiceRecord is one init-system unit. Identity key is Name.
// PID is display text; parsed units report "N/A".
type ServiceRecord struct {
	Name        string
	Status      string
	Description string
	PID         string
}

// Performance holds whole-system figures for one sample.
// GB fields are truncated, not rounded.
type Performance struct {
	CPUPercent    float64
	MemoryPercent float64
	MemoryUsedGB  uint64
	MemoryTotalGB uint64
	DiskPercent   float64
	DiskUsedGB    uint64
	DiskTotalGB   uint64
	BootTime      time.Time
	CPUCores      int
}

// Snapshot bundles everything captured in one sampling cycle. It is never
// mutated after construction and is the only value crossing from the
// sampler goroutine to the UI.
type Snapshot struct {
	Processes   []ProcessRecord
	Services    []ServiceRecord
	Performance Performance
	TakenAt     time.Time
}

// NewSnapshot builds a Snapshot, dropping duplicate PIDs from a racing
// process-list read. First occurrence wins.
func NewSnapshot(procs []ProcessRecord, svcs []ServiceRecord, perf Performance, at time.Time) Snapshot {
	seen := make(map[int32]struct{}, len(procs))
	unique := make([]ProcessRecord, 0, len(procs))
	for _, p := range procs {
		if _, ok := seen[p.Pid]; ok {
			continue
		}
		seen[p.Pid] = struct{}{}
		unique = append(unique, p)
	}

	return Snapshot{
		Processes:   unique,
		Services:    svcs,
		Performance: perf,
		TakenAt:     at,
	}
}
