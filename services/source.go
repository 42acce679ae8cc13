// Package services lists and controls init-system units. Listing is
// best-effort display data: it shells out to systemctl, parses its tabular
// output, and falls back to a fixed placeholder set when the command is
// missing or misbehaves. Callers never see an error from Capture.
package services

import (
	"context"
	"os/exec"
	"strings"

	"github.com/TSZwane/modern-task-manager/model"
)

// DefaultLimit caps how many units are shown. A display-simplicity choice,
// not a technical limit.
const DefaultLimit = 5

type runnerFunc func(ctx context.Context) ([]byte, error)

// Source captures a bounded list of service records.
type Source struct {
	Limit int
	run   runnerFunc
}

func NewSource(limit int) *Source {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Source{Limit: limit, run: runListUnits}
}

func runListUnits(ctx context.Context) ([]byte, error) {
	return exec.CommandContext(ctx, "systemctl", "list-units", "--type=service", "--no-pager").Output()
}

// Capture returns up to Limit service records. Any failure of the
// underlying query yields the placeholder set instead of an error.
func (s *Source) Capture(ctx context.Context) []model.ServiceRecord {
	out, err := s.run(ctx)
	if err != nil {
		return Fallback()
	}

	records := parseUnits(out, s.Limit)
	if len(records) == 0 {
		return Fallback()
	}
	return records
}

// parseUnits reads systemctl's whitespace-delimited table: one header line,
// then one line per unit. Only the first limit data lines are considered;
// lines with fewer than four fields are skipped.
func parseUnits(out []byte, limit int) []model.ServiceRecord {
	lines := strings.Split(string(out), "\n")
	if len(lines) < 2 {
		return nil
	}

	data := lines[1:]
	if len(data) > limit {
		data = data[:limit]
	}

	records := make([]model.ServiceRecord, 0, limit)
	for _, line := range data {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}

		desc := "System Service"
		if len(fields) > 4 {
			desc = strings.Join(fields[4:], " ")
		}

		records = append(records, model.ServiceRecord{
			Name:        fields[0],
			Status:      fields[3],
			Description: desc,
			PID:         "N/A",
		})
	}
	return records
}

// Fallback is the fixed placeholder set shown when the unit query is
// unavailable.
func Fallback() []model.ServiceRecord {
	return []model.ServiceRecord{
		{Name: "ssh.service", Status: "active", Description: "OpenSSH Server", PID: "1234"},
		{Name: "cron.service", Status: "active", Description: "Cron Daemon", PID: "5678"},
		{Name: "nginx.service", Status: "active", Description: "Web Server", PID: "9012"},
	}
}
