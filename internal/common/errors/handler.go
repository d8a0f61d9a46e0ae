package errors

import (
	"context"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// ErrorHandler reports worker failures to the broker. Retryable technical
// faults fail the job with a retry budget; everything else is thrown as a
// BPMN error so the process can route it.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// JobOutcome is what HandleJobError sends for a failed job.
type JobOutcome struct {
	Throw   bool
	Retries int
}

// DecideOutcome never grants more retries than the broker has left on the job.
func DecideOutcome(stdErr *StandardError, remaining int32) JobOutcome {
	bpmnErr := ConvertToBPMNError(stdErr)
	if bpmnErr.Retries == 0 || remaining <= 0 {
		return JobOutcome{Throw: true}
	}
	retries := bpmnErr.Retries
	if int(remaining)-1 < retries {
		retries = int(remaining) - 1
	}
	return JobOutcome{Retries: retries}
}

func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := AsStandardError(err)
	bpmnErr := ConvertToBPMNError(stdErr)
	outcome := DecideOutcome(stdErr, job.GetRetries())

	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":          job.GetKey(),
		"jobType":         job.GetType(),
		"processInstance": job.GetProcessInstanceKey(),
		"errorCode":       string(stdErr.Code),
		"bpmnErrorCode":   bpmnErr.Code,
		"details":         stdErr.Details,
		"errorCategory":   GetErrorCategory(stdErr.Code),
		"thrown":          outcome.Throw,
		"retries":         outcome.Retries,
	})

	var sendErr error
	if outcome.Throw {
		sendErr = h.throw(ctx, client, job, bpmnErr)
	} else {
		sendErr = h.fail(ctx, client, job, bpmnErr, outcome.Retries)
	}
	if sendErr != nil {
		h.logger.Error("Failed to report job error to broker", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  sendErr.Error(),
		})
	}
}

func (h *ErrorHandler) fail(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError, retries int) error {
	cmd := client.NewFailJobCommand().
		JobKey(job.GetKey()).
		Retries(int32(retries)).
		ErrorMessage(fmt.Sprintf("[%s] %s", bpmnErr.Code, bpmnErr.Message))

	withVars, err := cmd.VariablesFromMap(bpmnErr.ToErrorVariables())
	if err != nil {
		_, err = cmd.Send(ctx)
		return err
	}
	_, err = withVars.Send(ctx)
	return err
}

func (h *ErrorHandler) throw(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) error {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.GetKey()).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	withVars, err := cmd.VariablesFromMap(bpmnErr.ToErrorVariables())
	if err != nil {
		_, err = cmd.Send(ctx)
		return err
	}
	_, err = withVars.Send(ctx)
	return err
}
