package monitor

import (
	"context"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/TSZwane/modern-task-manager/model"
)

const gib = 1024 * 1024 * 1024

// cpuSampleWindow smooths instantaneous CPU readings over a short interval.
const cpuSampleWindow = 100 * time.Millisecond

// Collector reads process and system state from the OS. It holds no state
// between samples; every call produces fresh records.
type Collector struct {
	DiskPath string
}

func NewCollector(diskPath string) *Collector {
	if diskPath == "" {
		diskPath = "/"
	}
	return &Collector{DiskPath: diskPath}
}

// Processes enumerates all visible processes. A process that vanishes or
// denies access between enumeration and field reads is skipped, never an
// error; the next cycle picks up current state.
func (c *Collector) Processes(ctx context.Context) []model.ProcessRecord {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil
	}

	records := make([]model.ProcessRecord, 0, len(procs))
	for _, p := range procs {
		if p == nil {
			continue
		}
		rec, ok := readProcess(ctx, p)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func readProcess(ctx context.Context, p *process.Process) (model.ProcessRecord, bool) {
	rec := model.ProcessRecord{Pid: p.Pid}

	name, err := p.NameWithContext(ctx)
	if err != nil {
		return rec, false
	}
	rec.Name = name

	status, err := p.StatusWithContext(ctx)
	if err != nil {
		return rec, false
	}
	rec.Status = strings.Join(status, ",")

	user, err := p.UsernameWithContext(ctx)
	if err != nil {
		return rec, false
	}
	rec.User = user

	cpuPct, err := p.CPUPercentWithContext(ctx)
	if err != nil {
		return rec, false
	}
	rec.CPUPercent = cpuPct

	memPct, err := p.MemoryPercentWithContext(ctx)
	if err != nil {
		return rec, false
	}
	rec.MemPercent = float64(memPct)

	return rec, true
}

// Performance captures system-wide CPU, memory, disk and boot figures.
// Individual read failures leave the corresponding fields zeroed; the
// sample as a whole never fails.
func (c *Collector) Performance(ctx context.Context) model.Performance {
	var perf model.Performance

	if pct, err := cpu.PercentWithContext(ctx, cpuSampleWindow, false); err == nil && len(pct) > 0 {
		perf.CPUPercent = pct[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		perf.MemoryPercent = vm.UsedPercent
		perf.MemoryUsedGB = bytesToGB(vm.Used)
		perf.MemoryTotalGB = bytesToGB(vm.Total)
	}

	if du, err := disk.UsageWithContext(ctx, c.DiskPath); err == nil {
		perf.DiskPercent = du.UsedPercent
		perf.DiskUsedGB = bytesToGB(du.Used)
		perf.DiskTotalGB = bytesToGB(du.Total)
	}

	if bt, err := host.BootTimeWithContext(ctx); err == nil {
		perf.BootTime = time.Unix(int64(bt), 0)
	}

	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		perf.CPUCores = n
	}

	return perf
}

// bytesToGB truncates to whole gigabytes for display. 1.9 GiB reports as 1.
func bytesToGB(b uint64) uint64 {
	return b / gib
}
