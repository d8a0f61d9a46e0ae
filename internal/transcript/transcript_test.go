package transcript

import (
	"context"
	"sync"
	"testing"
	"time"

	"loan-saarthi/internal/common/logger"
	"loan-saarthi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type recordingDelayer struct {
	mu     sync.Mutex
	pauses []Pause
}

func (r *recordingDelayer) Pause(ctx context.Context, p Pause) error {
	r.mu.Lock()
	r.pauses = append(r.pauses, p)
	r.mu.Unlock()
	return ctx.Err()
}

// cancellingDelayer cancels the context on the n-th pause.
type cancellingDelayer struct {
	n      int
	seen   int
	cancel context.CancelFunc
}

func (c *cancellingDelayer) Pause(ctx context.Context, _ Pause) error {
	c.seen++
	if c.seen == c.n {
		c.cancel()
	}
	return ctx.Err()
}

func fixedClock() func() time.Time {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func sampleSteps() []Step {
	return []Step{
		Say(User("Yes, let's go")),
		Say(System("🔄 Handoff: Master Agent ➔ Sales Agent")),
		Wait(PauseHandoff, 800*time.Millisecond),
		Wait(PauseTyping, time.Second),
		Say(Bot(AgentSales, "What do you need this loan for?", models.Option{Label: "Medical", Value: "medical"})),
	}
}

// ==========================
// Log Tests
// ==========================

func TestLog_AppendAssignsSequence(t *testing.T) {
	l := NewLogWithClock(fixedClock())

	first := l.Append(User("hello"))
	second := l.Append(Bot(AgentMaster, "hi"))

	assert.Equal(t, 0, first.Seq)
	assert.Equal(t, 1, second.Seq)
	assert.Equal(t, fixedClock()(), first.At)
	assert.Equal(t, 2, l.Len())

	last, ok := l.Last()
	require.True(t, ok)
	assert.Equal(t, "hi", last.Text)
}

func TestLog_SinceReturnsCopies(t *testing.T) {
	l := NewLog()
	for _, text := range []string{"a", "b", "c"} {
		l.Append(System(text))
	}

	tail := l.Since(1)
	require.Len(t, tail, 2)
	assert.Equal(t, "b", tail[0].Text)

	tail[0].Text = "mutated"
	assert.Equal(t, "b", l.Entries()[1].Text)

	assert.Empty(t, l.Since(10))
	assert.Len(t, l.Since(-3), 3)
}

func TestLog_OptionsAreNotShared(t *testing.T) {
	l := NewLog()
	options := []models.Option{{Label: "Restart", Value: "restart"}}
	l.Append(Bot(AgentUnderwriter, "done", options...))

	options[0].Label = "changed"
	assert.Equal(t, "Restart", l.Entries()[0].Options[0].Label)
}

func TestLog_EmptyLast(t *testing.T) {
	_, ok := NewLog().Last()
	assert.False(t, ok)
}

// ==========================
// Step Tests
// ==========================

func TestSteps_EntriesAndTotalPause(t *testing.T) {
	steps := sampleSteps()

	entries := Entries(steps)
	require.Len(t, entries, 3)
	assert.Equal(t, KindUser, entries[0].Kind)
	assert.Equal(t, KindBot, entries[2].Kind)
	assert.Equal(t, 1800*time.Millisecond, TotalPause(steps))
}

func TestSystemCard(t *testing.T) {
	e := SystemCard(Card{Kind: CardApproval, Amount: 500000, TenureMonths: 24, EMI: 23537})
	assert.Equal(t, KindSystem, e.Kind)
	require.NotNil(t, e.Card)
	assert.Equal(t, int64(23537), e.Card.EMI)
}

func TestLog_SeqMatchesSinceOffset(t *testing.T) {
	l := NewLog()
	for _, text := range []string{"one", "two", "three", "four"} {
		l.Append(User(text))
	}

	for offset := 0; offset < l.Len(); offset++ {
		tail := l.Since(offset)
		require.NotEmpty(t, tail)
		assert.Equal(t, offset, tail[0].Seq)
	}
	assert.Empty(t, l.Since(l.Len()))
}

// ==========================
// Emitter Tests
// ==========================

func TestEmitter_PlaysStepsInOrder(t *testing.T) {
	delayer := &recordingDelayer{}
	emitter := NewEmitter(delayer, logger.NewTestLogger(t))
	l := NewLog()

	appended, err := emitter.Emit(context.Background(), l, sampleSteps())
	require.NoError(t, err)
	require.Len(t, appended, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{appended[0].Seq, appended[1].Seq, appended[2].Seq})
	assert.Equal(t, []Pause{
		{Name: PauseHandoff, Duration: 800 * time.Millisecond},
		{Name: PauseTyping, Duration: time.Second},
	}, delayer.pauses)
}

func TestEmitter_CancelDropsRemainingSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	emitter := NewEmitter(&cancellingDelayer{n: 1, cancel: cancel}, logger.NewNoOpLogger())
	l := NewLog()

	appended, err := emitter.Emit(ctx, l, sampleSteps())
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, appended, 2)
	assert.Equal(t, 2, l.Len())
}

func TestEmitter_NilDelayerSkipsPauses(t *testing.T) {
	emitter := NewEmitter(nil, logger.NewNoOpLogger())
	l := NewLog()

	start := time.Now()
	_, err := emitter.Emit(context.Background(), l, sampleSteps())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, 3, l.Len())
}

// ==========================
// Delayer Tests
// ==========================

func TestTimerDelay_Scaled(t *testing.T) {
	d := TimerDelay{Scale: 0.01}

	start := time.Now()
	require.NoError(t, d.Pause(context.Background(), Pause{Name: PauseTyping, Duration: time.Second}))
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
}

func TestTimerDelay_ZeroScaleReturnsImmediately(t *testing.T) {
	d := TimerDelay{}
	assert.NoError(t, d.Pause(context.Background(), Pause{Duration: time.Hour}))
}

func TestTimerDelay_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := TimerDelay{Scale: 1}.Pause(ctx, Pause{Name: PauseThinking, Duration: time.Hour})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNoDelay_HonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	assert.NoError(t, NoDelay{}.Pause(ctx, Pause{}))
	cancel()
	assert.ErrorIs(t, NoDelay{}.Pause(ctx, Pause{}), context.Canceled)
}
