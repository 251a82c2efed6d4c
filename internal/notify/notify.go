// Package notify abstracts the user-facing notification surface (the
// toast area of the admin UI). Components report outcomes here instead of
// returning presentation strings up the stack.
package notify

import "github.com/rs/zerolog"

// Notifier receives user-facing messages.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// Log is a zerolog-backed Notifier for headless runs.
type Log struct {
	log zerolog.Logger
}

// NewLog wraps a logger as a notification sink.
func NewLog(log zerolog.Logger) *Log {
	return &Log{log: log.With().Str("component", "notify").Logger()}
}

func (l *Log) Success(message string) { l.log.Info().Str("kind", "success").Msg(message) }
func (l *Log) Error(message string)   { l.log.Error().Str("kind", "error").Msg(message) }
func (l *Log) Info(message string)    { l.log.Info().Str("kind", "info").Msg(message) }

// Recorder collects notifications in order, for tests and batch tooling.
type Recorder struct {
	Entries []Entry
}

// Entry is one recorded notification.
type Entry struct {
	Kind    string
	Message string
}

func (r *Recorder) Success(message string) { r.Entries = append(r.Entries, Entry{"success", message}) }
func (r *Recorder) Error(message string)   { r.Entries = append(r.Entries, Entry{"error", message}) }
func (r *Recorder) Info(message string)    { r.Entries = append(r.Entries, Entry{"info", message}) }

// ByKind returns the recorded messages of one kind.
func (r *Recorder) ByKind(kind string) []string {
	var out []string
	for _, e := range r.Entries {
		if e.Kind == kind {
			out = append(out, e.Message)
		}
	}
	return out
}
