package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/TSZwane/modern-task-manager/config"
	"github.com/TSZwane/modern-task-manager/daemon"
	"github.com/TSZwane/modern-task-manager/monitor"
	"github.com/TSZwane/modern-task-manager/services"
	"github.com/TSZwane/modern-task-manager/ui"
)

func main() {
	app := &cli.App{
		Name:        "taskmgr",
		Usage:       "process, service and performance monitor",
		Description: "terminal task manager with real-time process monitoring, system performance and basic systemd service visibility",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "sampling interval in seconds",
				EnvVars: []string{"TASKMGR_INTERVAL"},
			},
			&cli.IntFlag{
				Name:    "services",
				Aliases: []string{"s"},
				Usage:   "maximum number of service units to display",
				EnvVars: []string{"TASKMGR_SERVICES"},
			},
			&cli.StringFlag{
				Name:    "disk",
				Aliases: []string{"d"},
				Usage:   "filesystem path for disk usage",
				EnvVars: []string{"TASKMGR_DISK"},
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			{
				Name:   "watch",
				Usage:  "headless mode: sample continuously and alert on thresholds",
				Action: runWatch,
			},
		},
		CommandNotFound: func(c *cli.Context, command string) {
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", command)
			cli.ShowAppHelpAndExit(c, 1)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) *config.Config {
	cfg, _ := config.Load()
	if c.Int("interval") > 0 {
		cfg.UpdateIntervalSeconds = c.Int("interval")
	}
	if c.Int("services") > 0 {
		cfg.ServiceLimit = c.Int("services")
	}
	if c.String("disk") != "" {
		cfg.DiskPath = c.String("disk")
	}
	return cfg
}

func runTUI(c *cli.Context) error {
	cfg := loadConfig(c)
	logger := log.New(os.Stderr, "[taskmgr] ", log.LstdFlags)

	engine := monitor.NewEngine(
		monitor.NewCollector(cfg.DiskPath),
		services.NewSource(cfg.ServiceLimit),
		cfg.Interval(),
		logger,
	)

	p := tea.NewProgram(ui.NewModel(engine), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go engine.Run(ctx, ui.NewProgramSink(p))

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runWatch(c *cli.Context) error {
	cfg := loadConfig(c)
	logger := log.New(os.Stderr, "[taskmgr-watch] ", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := daemon.New(cfg, logger)
	go d.WatchConfig(ctx, config.Path())

	engine := monitor.NewEngine(
		monitor.NewCollector(cfg.DiskPath),
		services.NewSource(cfg.ServiceLimit),
		cfg.Interval(),
		logger,
	)

	if err := engine.Run(ctx, d); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
