package workflows

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	commonpb "go.temporal.io/api/common/v1"
	"go.temporal.io/api/serviceerror"
	workflowpb "go.temporal.io/api/workflow/v1"
	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/converter"

	participationapp "github.com/Apurer/petshow-api/internal/domains/participation/application"
	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

type recordingService struct {
	ports.Service
	registered []types.RegisterInput
}

func (s *recordingService) Register(_ context.Context, input types.RegisterInput) (*types.RegistrationResult, error) {
	s.registered = append(s.registered, input)
	return &types.RegistrationResult{Registration: &domain.Registration{ID: 11}, Amount: 300}, nil
}

func TestInlineParticipationWorkflows_DelegatesToService(t *testing.T) {
	svc := &recordingService{}
	orchestrator := NewInlineParticipationWorkflows(svc)

	result, err := orchestrator.Register(context.Background(), types.RegisterInput{OwnerID: 1, PetID: 2, EventID: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(11), result.Registration.ID)
	require.Len(t, svc.registered, 1)

	var unset *InlineParticipationWorkflows
	_, err = unset.Withdraw(context.Background(), types.WithdrawInput{})
	assert.Error(t, err)
}

func TestBuildRegistrationWorkflowID_StableForIdempotencyKey(t *testing.T) {
	input := types.RegisterInput{OwnerID: 1, PetID: 2, EventID: 3, IdempotencyKey: " retry-7 "}
	first := buildRegistrationWorkflowID(input, "trace-a")
	second := buildRegistrationWorkflowID(input, "trace-b")
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "registration-idem-"))
	assert.Len(t, strings.TrimPrefix(first, "registration-idem-"), 16)

	input.IdempotencyKey = ""
	assert.Equal(t, "registration-3-2-trace-a", buildRegistrationWorkflowID(input, "trace-a"))
}

func TestWorkflowTraceComponent_UsesSpanTraceID(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))
	assert.Equal(t, traceID.String(), workflowTraceComponent(ctx))
	assert.True(t, strings.HasPrefix(workflowTraceComponent(context.Background()), "fallback-"))
}

type finishedRun struct {
	client.WorkflowRun
	id     string
	result types.RegistrationResult
}

func (r *finishedRun) Get(_ context.Context, valuePtr interface{}) error {
	*valuePtr.(*types.RegistrationResult) = r.result
	return nil
}

// runningClient reports a keyed registration already in flight for the given fingerprint.
type runningClient struct {
	client.Client
	fingerprint string
	started     client.StartWorkflowOptions
	attached    []string
}

func (c *runningClient) ExecuteWorkflow(_ context.Context, options client.StartWorkflowOptions, _ interface{}, _ ...interface{}) (client.WorkflowRun, error) {
	c.started = options
	return nil, serviceerror.NewWorkflowExecutionAlreadyStarted("running", "", "run-1")
}

func (c *runningClient) DescribeWorkflowExecution(_ context.Context, _, _ string) (*workflowservice.DescribeWorkflowExecutionResponse, error) {
	payload, err := converter.GetDefaultDataConverter().ToPayload(c.fingerprint)
	if err != nil {
		return nil, err
	}
	return &workflowservice.DescribeWorkflowExecutionResponse{
		WorkflowExecutionInfo: &workflowpb.WorkflowExecutionInfo{
			Memo: &commonpb.Memo{Fields: map[string]*commonpb.Payload{fingerprintMemo: payload}},
		},
	}, nil
}

func (c *runningClient) GetWorkflow(_ context.Context, workflowID, _ string) client.WorkflowRun {
	c.attached = append(c.attached, workflowID)
	return &finishedRun{id: workflowID, result: types.RegistrationResult{Registration: &domain.Registration{ID: 21}}}
}

func TestTemporalRegister_AttachesOnlyToTheSameRequest(t *testing.T) {
	original := types.RegisterInput{OwnerID: 1, PetID: 2, EventID: 3, IdempotencyKey: "retry-7"}
	fingerprint, err := participationapp.FingerprintRegister(original)
	require.NoError(t, err)

	c := &runningClient{fingerprint: fingerprint}
	orchestrator := NewTemporalParticipationWorkflows(c)

	result, err := orchestrator.Register(context.Background(), original)
	require.NoError(t, err)
	assert.Equal(t, int64(21), result.Registration.ID)
	require.Len(t, c.attached, 1)
	assert.True(t, c.started.WorkflowExecutionErrorWhenAlreadyStarted)
	assert.Equal(t, fingerprint, c.started.Memo[fingerprintMemo])

	changed := original
	changed.EventID = 4
	_, err = orchestrator.Register(context.Background(), changed)
	assert.ErrorIs(t, err, domain.ErrIdempotencyConflict)
	assert.Len(t, c.attached, 1)
}

func TestTemporalRegister_UnkeyedDuplicateIsAnError(t *testing.T) {
	c := &runningClient{}
	orchestrator := NewTemporalParticipationWorkflows(c)

	_, err := orchestrator.Register(context.Background(), types.RegisterInput{OwnerID: 1, PetID: 2, EventID: 3})
	var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
	assert.ErrorAs(t, err, &alreadyStarted)
	assert.Empty(t, c.attached)
}
