package transcript

import (
	"sync"
	"time"
)

// Log is an append-only transcript. Entries are never mutated or reordered.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

func NewLog() *Log {
	return &Log{now: time.Now}
}

// NewLogWithClock is used by tests that need stable timestamps.
func NewLogWithClock(now func() time.Time) *Log {
	return &Log{now: now}
}

// Append stamps e with its offset in the log and the current time.
func (l *Log) Append(e Entry) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.Seq = len(l.entries)
	e.At = l.now().UTC()
	if len(e.Options) > 0 {
		e.Options = append(e.Options[:0:0], e.Options...)
	}
	l.entries = append(l.entries, e)
	return e
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Entries returns a copy of the full history.
func (l *Log) Entries() []Entry {
	return l.Since(0)
}

// Since returns a copy of the entries after the first offset ones.
func (l *Log) Since(offset int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(l.entries) {
		return []Entry{}
	}
	out := make([]Entry, len(l.entries)-offset)
	copy(out, l.entries[offset:])
	return out
}

// Last returns the most recent entry.
func (l *Log) Last() (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}
