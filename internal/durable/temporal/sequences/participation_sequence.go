package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	participationactivities "github.com/Apurer/petshow-api/internal/durable/temporal/activities/participation"
)

// lifecycleOptions runs each engine transaction exactly once. The engine never retries:
// a repeated register would double charge and a repeated withdraw would fail as not paid.
func lifecycleOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
}

// RunRegistrationSequence executes the registration activity.
func RunRegistrationSequence(ctx workflow.Context, input types.RegisterInput) (*types.RegistrationResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("registration sequence started", "petId", input.PetID, "eventId", input.EventID)
	ctx = workflow.WithActivityOptions(ctx, lifecycleOptions())

	var result types.RegistrationResult
	err := workflow.ExecuteActivity(ctx, participationactivities.RegisterActivityName, input).Get(ctx, &result)
	if err != nil {
		logger.Error("registration sequence failed", "petId", input.PetID, "eventId", input.EventID, "error", err)
		return nil, err
	}
	if result.Registration != nil {
		logger.Info("registration sequence completed", "registrationId", result.Registration.ID)
	}
	return &result, nil
}

// RunWithdrawalSequence executes the withdrawal activity.
func RunWithdrawalSequence(ctx workflow.Context, input types.WithdrawInput) (*types.WithdrawalResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("withdrawal sequence started", "registrationId", input.RegistrationID)
	ctx = workflow.WithActivityOptions(ctx, lifecycleOptions())

	var result types.WithdrawalResult
	err := workflow.ExecuteActivity(ctx, participationactivities.WithdrawActivityName, input).Get(ctx, &result)
	if err != nil {
		logger.Error("withdrawal sequence failed", "registrationId", input.RegistrationID, "error", err)
		return nil, err
	}
	logger.Info("withdrawal sequence completed", "registrationId", input.RegistrationID, "refund", result.Refund.Amount)
	return &result, nil
}
