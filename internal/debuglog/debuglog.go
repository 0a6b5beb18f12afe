// Package debuglog keeps the rolling debug log shown in the shell.
//
// The log holds the last Capacity lines, newest first. Lines are only
// recorded while debug mode is on, except forced lines (errors), which are
// always recorded. Every recorded line is mirrored to the system log.
package debuglog

import (
	"sync"
	"time"

	"github.com/magmaskv/casttompv/internal/logging"
)

// Capacity is the maximum number of lines kept.
const Capacity = 20

// TimeLayout is the timestamp prefix format (HH:mm:ss).
const TimeLayout = "15:04:05"

// Entry is one recorded line.
type Entry struct {
	Time    time.Time
	Message string
}

// String formats the entry the way Render shows it.
func (e Entry) String() string {
	return e.Time.Format(TimeLayout) + ": " + e.Message
}

// Log is a bounded, newest-first debug log. It is safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	enabled bool
	entries []Entry // ring storage, oldest at head
	head    int
	now     func() time.Time
}

// New returns an empty Log with debug mode set to enabled.
func New(enabled bool) *Log {
	return &Log{
		enabled: enabled,
		entries: make([]Entry, 0, Capacity),
		now:     time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (l *Log) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// SetEnabled turns debug mode on or off.
func (l *Log) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// Enabled reports whether debug mode is on.
func (l *Log) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// Append records message if debug mode is on or force is set.
// Once Capacity lines are held, the oldest is evicted.
func (l *Log) Append(message string, force bool) {
	l.mu.Lock()
	if !force && !l.enabled {
		l.mu.Unlock()
		return
	}

	e := Entry{Time: l.now(), Message: message}
	if len(l.entries) < Capacity {
		l.entries = append(l.entries, e)
	} else {
		l.entries[l.head] = e
		l.head = (l.head + 1) % Capacity
	}
	l.mu.Unlock()

	logging.LogDebugLine(message, force)
}

// Debug records message only while debug mode is on.
func (l *Log) Debug(message string) {
	l.Append(message, false)
}

// Force records message regardless of debug mode.
func (l *Log) Force(message string) {
	l.Append(message, true)
}

// Entries returns a copy of the held entries, newest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.entries)
	out := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		// walk backwards from the newest slot
		idx := (l.head - 1 - i + 2*n) % n
		out = append(out, l.entries[idx])
	}
	return out
}

// Render returns the held lines newest first, each prefixed with HH:mm:ss.
func (l *Log) Render() []string {
	entries := l.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return lines
}

// Len returns the number of held entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
