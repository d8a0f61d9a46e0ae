package observability

import (
	"context"
	"testing"
	"time"

	"loan-saarthi/internal/common/logger"

	"github.com/stretchr/testify/assert"
)

func TestObservability_ZeroValueIsSafe(t *testing.T) {
	var o Observability
	ctx := context.Background()

	assert.NotPanics(t, func() {
		o.RecordTurn(ctx, "greeting", false)
		o.RecordVerdict(ctx, "instant")
		o.RecordJobProcessed(ctx, "completed")
		o.RecordJobDuration(ctx, time.Millisecond, "completed")
		_, span := o.StartSpan(ctx, "session.advance")
		span.End()
		o.Shutdown()
	})
}

func TestNew_RecordsSpansAndMetrics(t *testing.T) {
	o := New("loan-saarthi-test", logger.NewTestLogger(t))
	defer o.Shutdown()
	ctx := context.Background()

	_, span := o.StartSpan(ctx, "session.create")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.NotPanics(t, func() {
		o.RecordTurn(ctx, "purpose", true)
		o.RecordVerdict(ctx, "conditional")
	})
}
