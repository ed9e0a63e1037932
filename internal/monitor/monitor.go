package monitor

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Statuses emitted by long-running jobs.
const (
	StatusStart     = "start"
	StatusProgress  = "progress"
	StatusWarning   = "warning"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Emitter is a fire-and-forget observability sink. Callers must not depend
// on any outcome of an emission; a broken sink must never break a job.
type Emitter interface {
	Emit(job, status string, fields map[string]any)
}

// SlogEmitter writes monitoring events through a structured logger.
type SlogEmitter struct {
	logger *slog.Logger
}

// NewSlogEmitter builds an emitter over the given logger.
// A nil logger falls back to a default text handler on stderr honoring
// LOG_LEVEL, the same convention the rest of the CLI uses.
func NewSlogEmitter(logger *slog.Logger) *SlogEmitter {
	if logger == nil {
		logger = defaultLogger()
	}
	return &SlogEmitter{logger: logger}
}

func defaultLogger() *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// Emit implements Emitter.
func (e *SlogEmitter) Emit(job, status string, fields map[string]any) {
	attrs := make([]any, 0, 2*len(fields)+2)
	attrs = append(attrs, "job", job)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	if status == StatusWarning || status == StatusFailed {
		e.logger.Warn(status, attrs...)
		return
	}
	e.logger.Info(status, attrs...)
}

// Event is one recorded emission.
type Event struct {
	Job    string
	Status string
	Fields map[string]any
}

// Recorder keeps emitted events in memory, in emission order. Used by tests
// to assert on job lifecycles.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Emit implements Emitter.
func (r *Recorder) Emit(job, status string, fields map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Job: job, Status: status, Fields: fields})
}

// Events returns a copy of all recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Statuses returns just the status sequence, for order assertions.
func (r *Recorder) Statuses() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Status
	}
	return out
}
