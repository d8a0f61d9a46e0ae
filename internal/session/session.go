package session

import (
	"context"
	"sync"
	"time"

	"loan-saarthi/internal/conversation"
	"loan-saarthi/internal/transcript"
)

type session struct {
	id  string
	log *transcript.Log

	// mu serializes operations, including their emission.
	mu sync.Mutex

	// view guards the fields read by Get while an operation runs.
	view      sync.RWMutex
	state     conversation.State
	createdAt time.Time
	touchedAt time.Time

	// emission guards the cancel func of the emission in progress and the
	// number of restarts waiting for mu.
	emission   sync.Mutex
	cancel     context.CancelFunc
	restarting int
}

func (s *session) current() conversation.State {
	s.view.RLock()
	defer s.view.RUnlock()
	return s.state
}

func (s *session) commit(st conversation.State, at time.Time) {
	s.view.Lock()
	s.state = st
	s.touchedAt = at
	s.view.Unlock()
}

func (s *session) lastTouched() time.Time {
	s.view.RLock()
	defer s.view.RUnlock()
	return s.touchedAt
}

func (s *session) snapshot() Snapshot {
	s.view.RLock()
	st := s.state
	snap := Snapshot{
		ID:           s.id,
		Phase:        st.Phase,
		AcceptsInput: st.Phase.AcceptsInput(),
		Request:      st.Request,
		Profile:      st.Profile,
		Verdict:      st.Verdict,
		Sanction:     st.Sanction,
		CreatedAt:    s.createdAt,
		UpdatedAt:    s.touchedAt,
	}
	s.view.RUnlock()

	snap.TranscriptLength = s.log.Len()
	if last, ok := s.log.Last(); ok && last.Kind == transcript.KindBot {
		snap.Options = last.Options
	}
	return snap
}

// beginEmission returns the context an emission runs under. A restart that
// is already waiting cancels it immediately.
func (s *session) beginEmission(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	s.emission.Lock()
	s.cancel = cancel
	if s.restarting > 0 {
		cancel()
	}
	s.emission.Unlock()

	return ctx, func() {
		s.emission.Lock()
		s.cancel = nil
		s.emission.Unlock()
		cancel()
	}
}

// interrupt announces a restart and cancels the emission in progress.
func (s *session) interrupt() {
	s.emission.Lock()
	s.restarting++
	if s.cancel != nil {
		s.cancel()
	}
	s.emission.Unlock()
}

// interrupted is called by the restart once it holds mu.
func (s *session) interrupted() {
	s.emission.Lock()
	s.restarting--
	s.emission.Unlock()
}
