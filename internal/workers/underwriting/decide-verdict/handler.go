package decideverdict

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"loan-saarthi/internal/common/config"
	"loan-saarthi/internal/common/errors"
	"loan-saarthi/internal/common/logger"
	"loan-saarthi/internal/common/metrics"
	"loan-saarthi/internal/common/observability"
	"loan-saarthi/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const TaskType = "underwriting-decide-verdict"

type Handler struct {
	config       *Config
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
	obs          *observability.Observability
	now          func() time.Time
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Logger        logger.Logger
	Observability *observability.Observability
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	obs := opts.Observability
	if obs == nil {
		obs = &observability.Observability{}
	}

	return &Handler{
		config:       workerConfig,
		logger:       log,
		errorHandler: errors.NewErrorHandler(log),
		obs:          obs,
		now:          time.Now,
	}, nil
}

// Enabled reports whether the worker should be opened at all.
func (h *Handler) Enabled() bool {
	return h.config.Enabled
}

func (h *Handler) MaxJobsActive() int {
	return h.config.MaxJobsActive
}

func (h *Handler) Timeout() time.Duration {
	return h.config.Timeout
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	ctx, span := h.obs.StartSpan(ctx, TaskType, attribute.Int64("jobKey", job.GetKey()))
	defer span.End()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	input, err := h.parseInput(job)
	if err != nil {
		h.failJob(ctx, client, job, err, start)
		return nil
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err, start)
		return nil
	}

	return h.completeJob(ctx, client, job, output, start)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	raw := []byte(job.GetVariables())
	if result := inputSchema.ValidateBytes(raw); !result.Valid {
		return nil, errors.NewUnderwritingInputInvalidError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var input Input
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, errors.NewInvalidRequestError(fmt.Sprintf("parse variables: %v", err))
	}
	return &input, nil
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.Request.DeclaredMonthlySalary < 0 {
		return nil, errors.NewUnderwritingInputInvalidError("declaredMonthlySalary must not be negative")
	}

	verdict := h.config.Policy.Decide(input.Profile, input.Request)
	output := &Output{
		VerdictKind:      verdict.Kind,
		Verdict:          verdict,
		RequiredDocument: verdict.RequiredDocument,
	}

	if verdict.Kind == models.VerdictInstant {
		if sanction, ok := h.config.Policy.Sanction(verdict); ok {
			sanction.IssuedAt = h.now().UTC()
			output.Sanction = &sanction
		}
	}

	metrics.UnderwritingVerdicts.WithLabelValues(string(verdict.Kind), verdict.Reason).Inc()
	return output, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output, start time.Time) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("create complete job command: %w", err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("send complete job command: %w", err)
	}

	elapsed := time.Since(start)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(elapsed.Seconds())
	h.obs.RecordJobProcessed(ctx, "completed")
	h.obs.RecordJobDuration(ctx, elapsed, "completed")
	h.obs.RecordVerdict(ctx, string(output.VerdictKind))

	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":  job.GetKey(),
		"verdict": string(output.VerdictKind),
	})
	return nil
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, start time.Time) {
	stdErr := errors.AsStandardError(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.obs.RecordJobProcessed(ctx, "failed")
	h.obs.RecordJobDuration(ctx, time.Since(start), "failed")
	h.errorHandler.HandleJobError(ctx, client, job, stdErr)
}

// Execute runs the decision without a job, for callers that already hold
// the parsed variables.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
