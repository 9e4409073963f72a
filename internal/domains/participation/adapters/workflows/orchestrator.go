package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/converter"

	participationapp "github.com/Apurer/petshow-api/internal/domains/participation/application"
	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
	participationactivities "github.com/Apurer/petshow-api/internal/durable/temporal/activities/participation"
	participationworkflows "github.com/Apurer/petshow-api/internal/durable/temporal/workflows/participation"
)

// fingerprintMemo is the memo field holding the request fingerprint of a keyed registration run.
const fingerprintMemo = "requestFingerprint"

var (
	_ ports.WorkflowOrchestrator = (*TemporalParticipationWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineParticipationWorkflows)(nil)
)

// TemporalParticipationWorkflows starts register and withdraw workflows on a Temporal cluster.
type TemporalParticipationWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalParticipationWorkflows wires a Temporal client into the orchestrator.
func NewTemporalParticipationWorkflows(c client.Client) *TemporalParticipationWorkflows {
	return &TemporalParticipationWorkflows{client: c, taskQueue: participationworkflows.TaskQueue}
}

// Register runs the durable registration workflow and waits for its result.
// A retried request with the same idempotency key attaches to the run still in
// flight; a different request under that key fails with domain.ErrIdempotencyConflict.
func (o *TemporalParticipationWorkflows) Register(ctx context.Context, input types.RegisterInput) (*types.RegistrationResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal participation workflows not configured")
	}
	fingerprint, err := participationapp.FingerprintRegister(input)
	if err != nil {
		return nil, err
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildRegistrationWorkflowID(input, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
		Memo:      map[string]any{fingerprintMemo: fingerprint},
		// surface a running duplicate so its request can be compared before attaching
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		participationworkflows.RegistrationWorkflowName,
		participationworkflows.RegistrationWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) || strings.TrimSpace(input.IdempotencyKey) == "" {
			return nil, err
		}
		if err := o.sameRequest(ctx, workflowID, alreadyStarted.RunId, fingerprint); err != nil {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var result types.RegistrationResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, participationactivities.DecodeError(err)
	}
	return &result, nil
}

// sameRequest compares the fingerprint memo of a running registration with the new request.
func (o *TemporalParticipationWorkflows) sameRequest(ctx context.Context, workflowID, runID, fingerprint string) error {
	desc, err := o.client.DescribeWorkflowExecution(ctx, workflowID, runID)
	if err != nil {
		return err
	}
	var started string
	if payload := desc.GetWorkflowExecutionInfo().GetMemo().GetFields()[fingerprintMemo]; payload != nil {
		if err := converter.GetDefaultDataConverter().FromPayload(payload, &started); err != nil {
			return fmt.Errorf("decode registration fingerprint: %w", err)
		}
	}
	if started != fingerprint {
		return domain.ErrIdempotencyConflict
	}
	return nil
}

// Withdraw runs the durable withdrawal workflow and waits for its result.
func (o *TemporalParticipationWorkflows) Withdraw(ctx context.Context, input types.WithdrawInput) (*types.WithdrawalResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal participation workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("withdrawal-%d-%s", input.RegistrationID, traceComponent),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		participationworkflows.WithdrawalWorkflowName,
		participationworkflows.WithdrawalWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		return nil, err
	}
	var result types.WithdrawalResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, participationactivities.DecodeError(err)
	}
	return &result, nil
}

// InlineParticipationWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineParticipationWorkflows struct {
	service ports.Service
}

// NewInlineParticipationWorkflows wraps the participation service for synchronous execution.
func NewInlineParticipationWorkflows(service ports.Service) *InlineParticipationWorkflows {
	return &InlineParticipationWorkflows{service: service}
}

// Register delegates to the application service without durable orchestration.
func (o *InlineParticipationWorkflows) Register(ctx context.Context, input types.RegisterInput) (*types.RegistrationResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline participation workflows not configured")
	}
	return o.service.Register(ctx, input)
}

// Withdraw delegates to the application service without durable orchestration.
func (o *InlineParticipationWorkflows) Withdraw(ctx context.Context, input types.WithdrawInput) (*types.WithdrawalResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline participation workflows not configured")
	}
	return o.service.Withdraw(ctx, input)
}

func buildRegistrationWorkflowID(input types.RegisterInput, traceComponent string) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("registration-idem-%s", hashIdempotencyKey(key))
	}
	return fmt.Sprintf("registration-%d-%d-%s", input.EventID, input.PetID, traceComponent)
}

func hashIdempotencyKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	// First 16 hex chars keep workflow IDs readable while remaining deterministic.
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
