package participation

import (
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/workflow"

	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	participationactivities "github.com/Apurer/petshow-api/internal/durable/temporal/activities/participation"
	"github.com/Apurer/petshow-api/internal/durable/temporal/sequences"
)

const (
	// RegistrationWorkflowName is the public identifier for registering the workflow.
	RegistrationWorkflowName = "participation.workflows.Registration"
	// WithdrawalWorkflowName is the public identifier for the withdrawal workflow.
	WithdrawalWorkflowName = "participation.workflows.Withdrawal"
	// TaskQueue is the queue consumed by the worker processing participation workflows.
	TaskQueue = "PARTICIPATION"
)

// RegistrationWorkflowInput captures the payload of a durable registration.
type RegistrationWorkflowInput struct {
	Command types.RegisterInput
	TraceID string
}

// WithdrawalWorkflowInput captures the payload of a durable withdrawal.
type WithdrawalWorkflowInput struct {
	Command types.WithdrawInput
	TraceID string
}

// RegistrationWorkflow enrolls a pet in an event.
func RegistrationWorkflow(ctx workflow.Context, input RegistrationWorkflowInput) (*types.RegistrationResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("RegistrationWorkflow started", withTraceID(input.TraceID, "petId", input.Command.PetID, "eventId", input.Command.EventID)...)
	result, err := sequences.RunRegistrationSequence(ctx, input.Command)
	if err != nil {
		logger.Error("RegistrationWorkflow failed", withTraceID(input.TraceID, "petId", input.Command.PetID, "error", err)...)
		return nil, err
	}
	logger.Info("RegistrationWorkflow completed", withTraceID(input.TraceID, "registrationId", result.Registration.ID)...)
	return result, nil
}

// WithdrawalWorkflow cancels a registration and settles its refund.
func WithdrawalWorkflow(ctx workflow.Context, input WithdrawalWorkflowInput) (*types.WithdrawalResult, error) {
	logger := workflow.GetLogger(ctx)
	registrationID := input.Command.RegistrationID
	logger.Info("WithdrawalWorkflow started", withTraceID(input.TraceID, "registrationId", registrationID)...)
	result, err := sequences.RunWithdrawalSequence(ctx, input.Command)
	if err != nil {
		logger.Error("WithdrawalWorkflow failed", withTraceID(input.TraceID, "registrationId", registrationID, "error", err)...)
		return nil, err
	}
	logger.Info("WithdrawalWorkflow completed", withTraceID(input.TraceID, "registrationId", registrationID, "refundPercent", result.Refund.Percent)...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}

// Registry is the subset of a Temporal worker used to register participation workflows.
type Registry interface {
	RegisterWorkflowWithOptions(w interface{}, options workflow.RegisterOptions)
	RegisterActivityWithOptions(a interface{}, options activity.RegisterOptions)
}

// Register wires both workflows and their activities under their public names.
func Register(registry Registry, activities *participationactivities.Activities) {
	registry.RegisterWorkflowWithOptions(RegistrationWorkflow, workflow.RegisterOptions{Name: RegistrationWorkflowName})
	registry.RegisterWorkflowWithOptions(WithdrawalWorkflow, workflow.RegisterOptions{Name: WithdrawalWorkflowName})
	registry.RegisterActivityWithOptions(activities.Register, activity.RegisterOptions{Name: participationactivities.RegisterActivityName})
	registry.RegisterActivityWithOptions(activities.Withdraw, activity.RegisterOptions{Name: participationactivities.WithdrawActivityName})
}
