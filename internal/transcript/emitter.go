package transcript

import (
	"context"
	"time"

	"loan-saarthi/internal/common/logger"
)

// Delayer waits out a named pause. Implementations must return early with
// ctx.Err() when ctx is done.
type Delayer interface {
	Pause(ctx context.Context, p Pause) error
}

// NoDelay skips every pause.
type NoDelay struct{}

func (NoDelay) Pause(ctx context.Context, _ Pause) error {
	return ctx.Err()
}

// TimerDelay sleeps for the pause duration multiplied by Scale.
type TimerDelay struct {
	Scale float64
}

func (d TimerDelay) Pause(ctx context.Context, p Pause) error {
	wait := time.Duration(float64(p.Duration) * d.Scale)
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Emitter plays steps into a Log, honoring pauses through a Delayer.
type Emitter struct {
	delayer Delayer
	logger  logger.Logger
}

func NewEmitter(delayer Delayer, log logger.Logger) *Emitter {
	if delayer == nil {
		delayer = NoDelay{}
	}
	return &Emitter{
		delayer: delayer,
		logger:  log.WithFields(map[string]interface{}{"component": "transcript-emitter"}),
	}
}

// Emit appends the entries of steps to l in order. When ctx is cancelled
// during a pause the remaining steps are dropped and ctx.Err() is returned
// together with what was appended so far.
func (e *Emitter) Emit(ctx context.Context, l *Log, steps []Step) ([]Entry, error) {
	appended := make([]Entry, 0, len(steps))
	for i, s := range steps {
		if s.Pause != nil {
			if err := e.delayer.Pause(ctx, *s.Pause); err != nil {
				e.logger.Debug("emission interrupted", map[string]interface{}{
					"pause":   s.Pause.Name,
					"dropped": len(steps) - i,
				})
				return appended, err
			}
			continue
		}
		if s.Entry != nil {
			appended = append(appended, l.Append(*s.Entry))
		}
	}
	return appended, nil
}
