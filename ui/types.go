package ui

import "github.com/TSZwane/modern-task-manager/model"

// Messages

type snapshotMsg model.Snapshot

type statusMsg struct {
	text    string
	isError bool
}

// UI Modes

type uiMode int

const (
	normalMode uiMode = iota
	filterMode
	confirmKillMode
	helpMode
)

// Tabs

type tabID int

const (
	processesTab tabID = iota
	servicesTab
	performanceTab
)

var tabTitles = []string{"Processes", "Services", "Performance"}
