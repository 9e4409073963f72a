package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

type stubService struct {
	ports.Service
	registerErr error
}

func (s stubService) Register(_ context.Context, input types.RegisterInput) (*types.RegistrationResult, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &types.RegistrationResult{
		Registration: &domain.Registration{ID: 7, OwnerID: input.OwnerID, EventID: input.EventID},
		Amount:       250,
		Discounted:   true,
	}, nil
}

func (stubService) Withdraw(_ context.Context, input types.WithdrawInput) (*types.WithdrawalResult, error) {
	return &types.WithdrawalResult{
		Registration: &domain.Registration{ID: input.RegistrationID},
		Refund:       domain.Refund{DaysUntil: 10, Percent: 50, Amount: 150},
	}, nil
}

func instrumented(t *testing.T, inner ports.Service) (ports.Service, *sdkmetric.ManualReader, *tracetest.SpanRecorder) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("test")
	return New(inner, WithMeter(meter), WithTracer(tracer)), reader, recorder
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Aggregation{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestService_RegisterCountsPaidRegistrations(t *testing.T) {
	svc, reader, recorder := instrumented(t, stubService{})

	_, err := svc.Register(context.Background(), types.RegisterInput{OwnerID: 1, PetID: 2, EventID: 3})
	require.NoError(t, err)

	metrics := collect(t, reader)
	sum, ok := metrics["participation.service.registrations"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "ParticipationService.Register", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestService_RejectionsOnlyCountBusinessRules(t *testing.T) {
	svc, reader, recorder := instrumented(t, stubService{registerErr: domain.ErrEventFull})
	_, err := svc.Register(context.Background(), types.RegisterInput{OwnerID: 1, PetID: 2, EventID: 3})
	require.ErrorIs(t, err, domain.ErrEventFull)

	failing, failingReader, _ := instrumented(t, stubService{registerErr: errors.New("connection reset")})
	_, err = failing.Register(context.Background(), types.RegisterInput{OwnerID: 1, PetID: 2, EventID: 3})
	require.Error(t, err)

	rejected, ok := collect(t, reader)["participation.service.rejections"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, rejected.DataPoints, 1)
	assert.Equal(t, int64(1), rejected.DataPoints[0].Value)
	assert.NotContains(t, collect(t, failingReader), "participation.service.rejections")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestService_WithdrawRecordsRefund(t *testing.T) {
	svc, reader, _ := instrumented(t, stubService{})

	_, err := svc.Withdraw(context.Background(), types.WithdrawInput{OwnerID: 1, RegistrationID: 7})
	require.NoError(t, err)

	hist, ok := collect(t, reader)["participation.service.refund_amount"].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
	assert.Equal(t, 150.0, hist.DataPoints[0].Sum)
}
