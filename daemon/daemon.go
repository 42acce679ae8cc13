// Package daemon is the headless watch mode: it consumes the same
// snapshots the TUI does, but instead of rendering it compares process
// figures against configured thresholds and posts webhook alerts.
package daemon

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/TSZwane/modern-task-manager/alert"
	"github.com/TSZwane/modern-task-manager/config"
	"github.com/TSZwane/modern-task-manager/model"
)

const alertCooldown = 60 * time.Second

type Daemon struct {
	mu         sync.RWMutex
	cfg        *config.Config
	logger     *log.Logger
	lastAlerts map[int32]time.Time
	notify     func(webhookURL, msg string) error
	now        func() time.Time
}

func New(cfg *config.Config, logger *log.Logger) *Daemon {
	return &Daemon{
		cfg:        cfg,
		logger:     logger,
		lastAlerts: make(map[int32]time.Time),
		notify:     alert.Send,
		now:        time.Now,
	}
}

// Send implements monitor.Sink. Each snapshot is checked against the
// current thresholds; a process alerts at most once per cooldown window.
func (d *Daemon) Send(snap model.Snapshot) {
	cfg := d.snapshotConfig()
	webhook := cfg.Webhooks[cfg.ActiveWebhook]

	for i := range snap.Processes {
		d.check(&snap.Processes[i], cfg, webhook)
	}

	d.logger.Printf("sampled %d processes, cpu %.1f%%, mem %.1f%%",
		len(snap.Processes), snap.Performance.CPUPercent, snap.Performance.MemoryPercent)
}

func (d *Daemon) check(p *model.ProcessRecord, cfg *config.Config, webhook string) {
	now := d.now()

	if t, ok := d.lastAlert(p.Pid); ok && now.Sub(t) < alertCooldown {
		return
	}

	var msg string
	switch {
	case p.CPUPercent >= cfg.CPUThreshold:
		msg = fmt.Sprintf("High CPU: PID %d (%s) at %.1f%%", p.Pid, p.Name, p.CPUPercent)
	case p.MemPercent >= cfg.MemThreshold:
		msg = fmt.Sprintf("High Memory: PID %d (%s) at %.1f%%", p.Pid, p.Name, p.MemPercent)
	default:
		return
	}

	if err := d.notify(webhook, msg); err != nil {
		d.logger.Printf("alert delivery failed: %v", err)
	}
	d.setLastAlert(p.Pid, now)
}

// WatchConfig reloads thresholds when the config file is rewritten.
func (d *Daemon) WatchConfig(ctx context.Context, path string) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		d.logger.Printf("config watch unavailable: %v", err)
		return
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		d.logger.Printf("config watch unavailable: %v", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case e, ok := <-w.Events:
			if !ok {
				return
			}
			if e.Op&fsnotify.Write == fsnotify.Write {
				cfg, err := config.LoadFrom(path)
				if err == nil {
					d.mu.Lock()
					d.cfg = cfg
					d.mu.Unlock()
					d.logger.Println("config reloaded")
				}
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			d.logger.Printf("config watch error: %v", err)
		}
	}
}

func (d *Daemon) snapshotConfig() *config.Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

func (d *Daemon) lastAlert(pid int32) (time.Time, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.lastAlerts[pid]
	return t, ok
}

func (d *Daemon) setLastAlert(pid int32, t time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastAlerts[pid] = t
}
