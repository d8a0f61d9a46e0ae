// Package session keeps live conversations in memory and serializes the
// operations applied to each of them.
package session

import (
	"context"
	"sync"
	"time"

	apperrors "loan-saarthi/internal/common/errors"
	"loan-saarthi/internal/common/logger"
	"loan-saarthi/internal/common/metrics"
	"loan-saarthi/internal/common/observability"
	"loan-saarthi/internal/conversation"
	"loan-saarthi/internal/models"
	"loan-saarthi/internal/notify"
	"loan-saarthi/internal/transcript"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const notifyTimeout = 5 * time.Second

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ID               string                   `json:"id"`
	Phase            conversation.Phase       `json:"phase"`
	AcceptsInput     bool                     `json:"acceptsInput"`
	Request          models.LoanRequest       `json:"request"`
	Profile          *models.ApplicantProfile `json:"profile,omitempty"`
	Verdict          *models.Verdict          `json:"verdict,omitempty"`
	Sanction         *models.Sanction         `json:"sanction,omitempty"`
	Options          []models.Option          `json:"options,omitempty"`
	TranscriptLength int                      `json:"transcriptLength"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

// Turn is the outcome of one operation on a session.
type Turn struct {
	Snapshot Snapshot           `json:"session"`
	Entries  []transcript.Entry `json:"entries"`
	Reprompt string             `json:"reprompt,omitempty"`
	Ignored  bool               `json:"ignored,omitempty"`
}

type Manager struct {
	machine  *conversation.Machine
	emitter  *transcript.Emitter
	notifier notify.Notifier
	obs      *observability.Observability
	logger   logger.Logger
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewManager(machine *conversation.Machine, emitter *transcript.Emitter, notifier notify.Notifier, obs *observability.Observability, log logger.Logger) *Manager {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	if obs == nil {
		obs = &observability.Observability{}
	}
	return &Manager{
		machine:  machine,
		emitter:  emitter,
		notifier: notifier,
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": "session-manager"}),
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Create opens a session and emits the greeting.
func (m *Manager) Create(ctx context.Context) (Turn, error) {
	ctx, span := m.obs.StartSpan(ctx, "session.create")
	defer span.End()

	now := m.now()
	s := &session{
		id:        uuid.NewString(),
		log:       transcript.NewLogWithClock(m.now),
		createdAt: now,
		touchedAt: now,
		state:     conversation.NewState(),
	}
	span.SetAttributes(attribute.String("session.id", s.id))

	m.mu.Lock()
	m.sessions[s.id] = s
	count := len(m.sessions)
	m.mu.Unlock()
	metrics.SessionsActive.Set(float64(count))

	s.mu.Lock()
	defer s.mu.Unlock()

	res := m.machine.Start()
	entries, _ := m.apply(ctx, s, res)

	m.logger.Info("session created", map[string]interface{}{"sessionId": s.id})
	return Turn{Snapshot: s.snapshot(), Entries: entries}, nil
}

// Advance applies one user turn.
func (m *Manager) Advance(ctx context.Context, id string, in models.UserInput) (Turn, error) {
	ctx, span := m.obs.StartSpan(ctx, "session.advance", attribute.String("session.id", id))
	defer span.End()

	s, err := m.lookup(id)
	if err != nil {
		return Turn{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.current()
	if before.Phase == conversation.PhaseEnded {
		return Turn{Snapshot: s.snapshot(), Ignored: true}, apperrors.NewSessionEndedError(id)
	}

	start := time.Now()
	res := m.machine.Advance(ctx, before, in)
	metrics.AdvanceDuration.WithLabelValues(string(before.Phase)).Observe(time.Since(start).Seconds())

	if res.Ignored {
		return Turn{Snapshot: s.snapshot(), Ignored: true}, nil
	}

	metrics.ConversationTurns.WithLabelValues(string(before.Phase)).Inc()
	m.obs.RecordTurn(ctx, string(before.Phase), res.Reprompt != "")
	if res.Reprompt != "" {
		metrics.ConversationReprompts.WithLabelValues(string(before.Phase), res.Reprompt).Inc()
	}

	entries, interrupted := m.apply(ctx, s, res)
	m.afterTransition(ctx, s, before, res, interrupted)

	return Turn{Snapshot: s.snapshot(), Entries: entries, Reprompt: res.Reprompt}, nil
}

// SubmitDocument delivers the salary-slip signal. It is ignored unless the
// session is waiting for the document.
func (m *Manager) SubmitDocument(ctx context.Context, id string) (Turn, error) {
	ctx, span := m.obs.StartSpan(ctx, "session.submit_document", attribute.String("session.id", id))
	defer span.End()

	s, err := m.lookup(id)
	if err != nil {
		return Turn{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.current()
	res := m.machine.SubmitDocument(before)
	if res.Ignored {
		m.logger.Debug("document signal ignored", map[string]interface{}{
			"sessionId": id,
			"phase":     string(before.Phase),
		})
		return Turn{Snapshot: s.snapshot(), Ignored: true}, nil
	}

	entries, interrupted := m.apply(ctx, s, res)
	m.afterTransition(ctx, s, before, res, interrupted)

	return Turn{Snapshot: s.snapshot(), Entries: entries}, nil
}

// Restart stops any emission in progress, waits for the operation holding
// the session and resets it to the greeting. Valid from any phase.
func (m *Manager) Restart(ctx context.Context, id string) (Turn, error) {
	ctx, span := m.obs.StartSpan(ctx, "session.restart", attribute.String("session.id", id))
	defer span.End()

	s, err := m.lookup(id)
	if err != nil {
		return Turn{}, err
	}

	s.interrupt()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interrupted()

	before := s.current()
	res := m.machine.Restart(before)
	entries, interrupted := m.apply(ctx, s, res)
	m.afterTransition(ctx, s, before, res, interrupted)

	return Turn{Snapshot: s.snapshot(), Entries: entries}, nil
}

func (m *Manager) Get(id string) (Snapshot, error) {
	s, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	return s.snapshot(), nil
}

// Transcript returns the session's entries from offset on. It does not wait
// for an operation in progress, so pollers see entries as they are emitted.
func (m *Manager) Transcript(id string, offset int) ([]transcript.Entry, error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.log.Since(offset), nil
}

// EvictIdle removes sessions untouched for longer than ttl. Sessions with an
// operation in progress are kept.
func (m *Manager) EvictIdle(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, s := range m.sessions {
		if !s.mu.TryLock() {
			continue
		}
		if s.lastTouched().Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
		s.mu.Unlock()
	}

	if evicted > 0 {
		metrics.SessionsEvicted.Add(float64(evicted))
		m.logger.Info("idle sessions evicted", map[string]interface{}{
			"evicted":   evicted,
			"remaining": len(m.sessions),
		})
	}
	metrics.SessionsActive.Set(float64(len(m.sessions)))
	return evicted
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) lookup(id string) (*session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewSessionNotFoundError(id)
	}
	return s, nil
}

// apply commits the new state and plays the steps into the transcript. The
// emission is detached from the caller's context so a dropped client does
// not truncate the transcript; only a restart interrupts it. The flag
// reports whether the steps were cut short.
func (m *Manager) apply(ctx context.Context, s *session, res conversation.Result) ([]transcript.Entry, bool) {
	s.commit(res.State, m.now())

	emitCtx, done := s.beginEmission(context.WithoutCancel(ctx))
	defer done()

	entries, err := m.emitter.Emit(emitCtx, s.log, res.Steps)
	if err != nil {
		m.logger.Info("emission interrupted by restart", map[string]interface{}{
			"sessionId": s.id,
			"emitted":   len(entries),
		})
		return entries, true
	}
	return entries, false
}

func (m *Manager) afterTransition(ctx context.Context, s *session, before conversation.State, res conversation.Result, interrupted bool) {
	for _, tr := range res.Transitions {
		metrics.PhaseTransitions.WithLabelValues(string(tr.From), string(tr.To)).Inc()
		m.logger.Info("phase transition", map[string]interface{}{
			"sessionId": s.id,
			"from":      string(tr.From),
			"to":        string(tr.To),
		})
	}

	after := res.State
	if before.Verdict == nil && after.Verdict != nil {
		metrics.UnderwritingVerdicts.WithLabelValues(string(after.Verdict.Kind), after.Verdict.Reason).Inc()
		m.obs.RecordVerdict(ctx, string(after.Verdict.Kind))
	}

	if res.Sanctioned() {
		if interrupted {
			m.logger.Info("sanction notice skipped, restart interrupted the approval", map[string]interface{}{
				"sessionId": s.id,
			})
			return
		}
		metrics.SanctionsIssued.Inc()
		m.notifySanction(ctx, s.id, after)
	}
}

func (m *Manager) notifySanction(ctx context.Context, id string, st conversation.State) {
	if st.Profile == nil || st.Sanction == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	notice := notify.Notice{
		SessionID:     id,
		ApplicantID:   st.Profile.ID,
		ApplicantName: st.Profile.DisplayName,
		Phone:         st.Profile.Phone,
		Amount:        st.Sanction.Amount,
		TenureMonths:  st.Sanction.TenureMonths,
		EMI:           st.Sanction.EMI,
		IssuedAt:      st.Sanction.IssuedAt,
	}
	if err := m.notifier.SanctionIssued(ctx, notice); err != nil {
		m.logger.Warn("sanction notice not delivered", map[string]interface{}{
			"sessionId": id,
			"error":     err,
		})
	}
}
