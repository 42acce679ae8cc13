package monitor

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TSZwane/modern-task-manager/model"
)

type fakeSource struct {
	procs      []model.ProcessRecord
	perf       model.Performance
	panicFirst bool
	calls      int
}

func (f *fakeSource) Processes(_ context.Context) []model.ProcessRecord {
	f.calls++
	if f.panicFirst && f.calls == 1 {
		panic("proc table went away")
	}
	return f.procs
}

func (f *fakeSource) Performance(_ context.Context) model.Performance {
	return f.perf
}

type fakeServices struct {
	records []model.ServiceRecord
}

func (f *fakeServices) Capture(_ context.Context) []model.ServiceRecord {
	return f.records
}

type chanSink struct {
	ch chan model.Snapshot
}

func (s *chanSink) Send(snap model.Snapshot) {
	s.ch <- snap
}

func newTestEngine(src *fakeSource, interval time.Duration) (*Engine, *chanSink) {
	svcs := &fakeServices{records: []model.ServiceRecord{{Name: "ssh.service", Status: "active"}}}
	e := NewEngine(src, svcs, interval, log.New(io.Discard, "", 0))
	return e, &chanSink{ch: make(chan model.Snapshot, 16)}
}

func recv(t *testing.T, ch chan model.Snapshot, within time.Duration) model.Snapshot {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(within):
		t.Fatal("no snapshot received in time")
		return model.Snapshot{}
	}
}

func TestEngine_FirstSampleIsImmediate(t *testing.T) {
	src := &fakeSource{
		procs: []model.ProcessRecord{{Pid: 10, Name: "a"}},
		perf:  model.Performance{CPUPercent: 42},
	}
	e, sink := newTestEngine(src, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go e.Run(ctx, sink)

	snap := recv(t, sink.ch, time.Second)
	require.Len(t, snap.Processes, 1)
	assert.Equal(t, 42.0, snap.Performance.CPUPercent)
	assert.Len(t, snap.Services, 1)
}

func TestEngine_RefreshTriggersOutOfBandSample(t *testing.T) {
	src := &fakeSource{procs: []model.ProcessRecord{{Pid: 1}}}
	e, sink := newTestEngine(src, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go e.Run(ctx, sink)

	recv(t, sink.ch, time.Second) // startup sample
	e.Refresh()
	recv(t, sink.ch, time.Second)
}

func TestEngine_RefreshCoalescesWhenPending(t *testing.T) {
	e := NewEngine(&fakeSource{}, &fakeServices{}, time.Hour, nil)

	// Not running: both requests must land in the capacity-1 channel
	// without blocking.
	e.Refresh()
	e.Refresh()
	assert.Len(t, e.refresh, 1)
}

func TestEngine_StopsOnCancel(t *testing.T) {
	src := &fakeSource{}
	e, sink := newTestEngine(src, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx, sink) }()

	recv(t, sink.ch, time.Second)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("engine did not stop after cancel")
	}
}

func TestEngine_CyclePanicDoesNotKillLoop(t *testing.T) {
	src := &fakeSource{
		procs:      []model.ProcessRecord{{Pid: 7, Name: "survivor"}},
		panicFirst: true,
	}
	e, sink := newTestEngine(src, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go e.Run(ctx, sink)

	// First cycle panics and delivers nothing; a refresh must still work.
	e.Refresh()
	snap := recv(t, sink.ch, time.Second)
	require.Len(t, snap.Processes, 1)
	assert.Equal(t, "survivor", snap.Processes[0].Name)
}

func TestNewEngine_DefaultsInterval(t *testing.T) {
	e := NewEngine(&fakeSource{}, &fakeServices{}, 0, nil)
	assert.Equal(t, DefaultInterval, e.interval)
}
