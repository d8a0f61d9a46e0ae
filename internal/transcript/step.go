package transcript

import "time"

// Pause names a presentation delay.
type Pause struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// Pause names.
const (
	PauseTyping   = "typing"
	PauseHandoff  = "handoff"
	PauseThinking = "thinking"
)

// Step is either a pause or an entry to append. A conversation turn is an
// ordered list of steps played back by an Emitter.
type Step struct {
	Pause *Pause `json:"pause,omitempty"`
	Entry *Entry `json:"entry,omitempty"`
}

func Wait(name string, d time.Duration) Step {
	return Step{Pause: &Pause{Name: name, Duration: d}}
}

func Say(e Entry) Step {
	return Step{Entry: &e}
}

// Entries returns the entries of steps in order, ignoring pauses.
func Entries(steps []Step) []Entry {
	out := make([]Entry, 0, len(steps))
	for _, s := range steps {
		if s.Entry != nil {
			out = append(out, *s.Entry)
		}
	}
	return out
}

// TotalPause sums every pause in steps.
func TotalPause(steps []Step) time.Duration {
	var total time.Duration
	for _, s := range steps {
		if s.Pause != nil {
			total += s.Pause.Duration
		}
	}
	return total
}
