package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TSZwane/modern-task-manager/model"
)

// ProgramSink adapts a bubbletea Program to the sampler's Sink contract.
// Program.Send is safe from any goroutine and the program processes posted
// messages in order, so snapshot application stays serialized on the UI
// event loop.
type ProgramSink struct {
	program *tea.Program
}

func NewProgramSink(p *tea.Program) *ProgramSink {
	return &ProgramSink{program: p}
}

func (s *ProgramSink) Send(snap model.Snapshot) {
	s.program.Send(snapshotMsg(snap))
}
