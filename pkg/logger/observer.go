package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// Logs is the read side of an observer logger: the entries recorded so far.
type Logs interface {
	// Len returns the number of recorded entries.
	Len() int

	// All returns a copy of every recorded entry.
	All() []observer.LoggedEntry

	// TakeAll returns a copy of every recorded entry and resets the
	// recording.
	TakeAll() []observer.LoggedEntry
}

var _ Logs = (*observer.ObservedLogs)(nil)

// NewObserverLogger returns a logger that records entries in memory together
// with the recording, for tests that assert on log output. An unknown level
// records everything.
func NewObserverLogger(level string) (Logger, Logs) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	observerLogger, logs := observer.New(lvl)
	logger := &ZapLogger{
		Logger: zap.New(observerLogger),
	}

	return logger, logs
}
