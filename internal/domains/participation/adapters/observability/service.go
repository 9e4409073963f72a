package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/Apurer/petshow-api/internal/domains/participation/application/types"
	"github.com/Apurer/petshow-api/internal/domains/participation/domain"
	"github.com/Apurer/petshow-api/internal/domains/participation/ports"
)

const tracerName = "github.com/Apurer/petshow-api/internal/domains/participation/adapters/observability/service"

// Service decorates the participation service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create the lifecycle instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) Register(ctx context.Context, input types.RegisterInput) (*types.RegistrationResult, error) {
	attrs := []slog.Attr{
		slog.Int64("owner.id", input.OwnerID),
		slog.Int64("pet.id", input.PetID),
		slog.Int64("event.id", input.EventID),
	}
	ctx, span := s.startSpan(ctx, "ParticipationService.Register",
		attribute.Int64("owner.id", input.OwnerID),
		attribute.Int64("pet.id", input.PetID),
		attribute.Int64("event.id", input.EventID),
		attribute.Bool("idempotency.key_present", input.IdempotencyKey != ""),
	)
	defer span.End()

	s.logInfo(ctx, "registering pet", attrs...)
	result, err := s.inner.Register(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, "register", err)
		return nil, s.handleError(ctx, span, err, "failed to register pet", attrs...)
	}
	span.SetAttributes(
		attribute.Int64("registration.id", result.Registration.ID),
		attribute.Float64("registration.amount", result.Amount),
		attribute.Bool("registration.replayed", result.Replayed),
	)
	if !result.Replayed {
		s.metrics.recordRegistered(ctx, result.Discounted)
	}
	s.logInfo(ctx, "pet registered", append(attrs,
		slog.Int64("registration.id", result.Registration.ID),
		slog.Float64("amount", result.Amount),
		slog.Bool("discounted", result.Discounted),
		slog.Int("warnings", len(result.Warnings)),
		slog.Bool("replayed", result.Replayed))...)
	return result, nil
}

func (s *Service) QuoteRegistration(ctx context.Context, input types.QuoteRegistrationInput) (*types.RegistrationQuote, error) {
	ctx, span := s.startSpan(ctx, "ParticipationService.QuoteRegistration",
		attribute.Int64("pet.id", input.PetID),
		attribute.Int64("event.id", input.EventID),
	)
	defer span.End()

	result, err := s.inner.QuoteRegistration(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to quote registration", slog.Int64("event.id", input.EventID))
	}
	span.SetAttributes(attribute.Float64("registration.amount", result.Amount))
	return result, nil
}

func (s *Service) Transfer(ctx context.Context, input types.TransferInput, confirm ports.TopUpConfirmer) (*types.TransferResult, error) {
	attrs := []slog.Attr{
		slog.Int64("registration.id", input.RegistrationID),
		slog.Int64("event.target_id", input.NewEventID),
	}
	ctx, span := s.startSpan(ctx, "ParticipationService.Transfer",
		attribute.Int64("registration.id", input.RegistrationID),
		attribute.Int64("event.target_id", input.NewEventID),
	)
	defer span.End()

	s.logInfo(ctx, "transferring registration", attrs...)
	result, err := s.inner.Transfer(ctx, input, confirm)
	if err != nil {
		s.metrics.recordRejected(ctx, "transfer", err)
		return nil, s.handleError(ctx, span, err, "failed to transfer registration", attrs...)
	}
	span.SetAttributes(
		attribute.Int64("event.source_id", result.FromEventID),
		attribute.Float64("transfer.delta", result.Quote.Delta),
	)
	s.metrics.recordTransferred(ctx, result.Quote)
	s.logInfo(ctx, "registration transferred", append(attrs,
		slog.Int64("event.source_id", result.FromEventID),
		slog.Float64("top_up", result.Quote.TopUp),
		slog.Float64("refund", result.Quote.Refund))...)
	return result, nil
}

func (s *Service) QuoteTransfer(ctx context.Context, input types.QuoteTransferInput) (*types.TransferQuote, error) {
	ctx, span := s.startSpan(ctx, "ParticipationService.QuoteTransfer",
		attribute.Int64("registration.id", input.RegistrationID),
		attribute.Int64("event.target_id", input.NewEventID),
	)
	defer span.End()

	result, err := s.inner.QuoteTransfer(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to quote transfer", slog.Int64("registration.id", input.RegistrationID))
	}
	span.SetAttributes(attribute.Float64("transfer.delta", result.Quote.Delta))
	return result, nil
}

func (s *Service) Withdraw(ctx context.Context, input types.WithdrawInput) (*types.WithdrawalResult, error) {
	ctx, span := s.startSpan(ctx, "ParticipationService.Withdraw", attribute.Int64("registration.id", input.RegistrationID))
	defer span.End()

	s.logInfo(ctx, "withdrawing registration", slog.Int64("registration.id", input.RegistrationID))
	result, err := s.inner.Withdraw(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx, "withdraw", err)
		return nil, s.handleError(ctx, span, err, "failed to withdraw registration", slog.Int64("registration.id", input.RegistrationID))
	}
	span.SetAttributes(
		attribute.Int("refund.percent", result.Refund.Percent),
		attribute.Float64("refund.amount", result.Refund.Amount),
	)
	s.metrics.recordWithdrawn(ctx, result.Refund)
	s.logInfo(ctx, "registration withdrawn",
		slog.Int64("registration.id", input.RegistrationID),
		slog.Int("refund.days_until", result.Refund.DaysUntil),
		slog.Int("refund.percent", result.Refund.Percent),
		slog.Float64("refund.amount", result.Refund.Amount),
		slog.Int("removed_entries", result.RemovedEntries))
	return result, nil
}

func (s *Service) QuoteWithdrawal(ctx context.Context, ref types.RegistrationRef) (*types.WithdrawalQuote, error) {
	ctx, span := s.startSpan(ctx, "ParticipationService.QuoteWithdrawal", attribute.Int64("registration.id", ref.RegistrationID))
	defer span.End()

	result, err := s.inner.QuoteWithdrawal(ctx, ref)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to quote withdrawal", slog.Int64("registration.id", ref.RegistrationID))
	}
	span.SetAttributes(attribute.Int("refund.percent", result.Refund.Percent))
	return result, nil
}

func (s *Service) SetAttendance(ctx context.Context, input types.AttendanceInput) (*domain.Entry, error) {
	ctx, span := s.startSpan(ctx, "ParticipationService.SetAttendance", attribute.Int64("entry.id", input.EntryID), attribute.Int64("event.id", input.EventID))
	defer span.End()

	result, err := s.inner.SetAttendance(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set attendance", slog.Int64("entry.id", input.EntryID))
	}
	s.logInfo(ctx, "attendance updated", slog.Int64("entry.id", result.ID), slog.String("attendance", string(result.Attendance)))
	return result, nil
}

func (s *Service) RecordScore(ctx context.Context, input types.RecordScoreInput) (*types.ScoreResult, error) {
	ctx, span := s.startSpan(ctx, "ParticipationService.RecordScore",
		attribute.Int64("entry.id", input.EntryID),
		attribute.Int64("event.id", input.EventID),
		attribute.Float64("entry.score", input.Score),
	)
	defer span.End()

	result, err := s.inner.RecordScore(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to record score", slog.Int64("entry.id", input.EntryID))
	}
	s.metrics.recordScored(ctx)
	s.logInfo(ctx, "score recorded",
		slog.Int64("entry.id", input.EntryID),
		slog.Float64("score", input.Score),
		slog.Int("ranked", len(result.Ranking)))
	return result, nil
}

func (s *Service) SeedAwards(ctx context.Context, input types.SeedAwardsInput) ([]*domain.Award, error) {
	ctx, span := s.startSpan(ctx, "ParticipationService.SeedAwards",
		attribute.Int64("event.id", input.EventID),
		attribute.Int("award.count", len(input.Awards)),
	)
	defer span.End()

	result, err := s.inner.SeedAwards(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to seed awards", slog.Int64("event.id", input.EventID))
	}
	s.logInfo(ctx, "awards seeded", slog.Int64("event.id", input.EventID), slog.Int("count", len(result)))
	return result, nil
}

func (s *Service) AssignAward(ctx context.Context, input types.AssignAwardInput) (*domain.Award, error) {
	attrs := []slog.Attr{
		slog.Int64("event.id", input.EventID),
		slog.Int64("pet.id", input.PetID),
		slog.String("award.name", input.AwardName),
	}
	ctx, span := s.startSpan(ctx, "ParticipationService.AssignAward",
		attribute.Int64("event.id", input.EventID),
		attribute.Int64("pet.id", input.PetID),
	)
	defer span.End()

	result, err := s.inner.AssignAward(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to assign award", attrs...)
	}
	s.metrics.recordAwarded(ctx)
	s.logInfo(ctx, "award assigned", append(attrs, slog.Int64("award.id", result.ID))...)
	return result, nil
}

func (s *Service) ClearAward(ctx context.Context, input types.ClearAwardInput) (int, error) {
	ctx, span := s.startSpan(ctx, "ParticipationService.ClearAward",
		attribute.Int64("event.id", input.EventID),
		attribute.Int64("pet.id", input.PetID),
	)
	defer span.End()

	cleared, err := s.inner.ClearAward(ctx, input)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to clear award", slog.Int64("event.id", input.EventID))
	}
	s.logInfo(ctx, "awards cleared", slog.Int64("event.id", input.EventID), slog.Int64("pet.id", input.PetID), slog.Int("count", cleared))
	return cleared, nil
}

func (s *Service) GetRegistration(ctx context.Context, ref types.RegistrationRef) (*types.RegistrationDetails, error) {
	ctx, span := s.startSpan(ctx, "ParticipationService.GetRegistration", attribute.Int64("registration.id", ref.RegistrationID))
	defer span.End()

	result, err := s.inner.GetRegistration(ctx, ref)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load registration", slog.Int64("registration.id", ref.RegistrationID))
	}
	return result, nil
}

func (s *Service) ListOwnerRegistrations(ctx context.Context, ownerID int64) ([]domain.RegistrationSummary, error) {
	ctx, span := s.startSpan(ctx, "ParticipationService.ListOwnerRegistrations", attribute.Int64("owner.id", ownerID))
	defer span.End()

	result, err := s.inner.ListOwnerRegistrations(ctx, ownerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list registrations", slog.Int64("owner.id", ownerID))
	}
	span.SetAttributes(attribute.Int("registration.result.count", len(result)))
	return result, nil
}

func (s *Service) EventStanding(ctx context.Context, eventID int64) (*domain.Standing, error) {
	ctx, span := s.startSpan(ctx, "ParticipationService.EventStanding", attribute.Int64("event.id", eventID))
	defer span.End()

	result, err := s.inner.EventStanding(ctx, eventID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load event standing", slog.Int64("event.id", eventID))
	}
	span.SetAttributes(attribute.Int("event.available_spots", result.AvailableSpots))
	return result, nil
}

func (s *Service) EventEntries(ctx context.Context, eventID int64) ([]*domain.Entry, error) {
	ctx, span := s.startSpan(ctx, "ParticipationService.EventEntries", attribute.Int64("event.id", eventID))
	defer span.End()

	result, err := s.inner.EventEntries(ctx, eventID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list event entries", slog.Int64("event.id", eventID))
	}
	return result, nil
}

func (s *Service) EventAwards(ctx context.Context, eventID int64) ([]*domain.Award, error) {
	ctx, span := s.startSpan(ctx, "ParticipationService.EventAwards", attribute.Int64("event.id", eventID))
	defer span.End()

	result, err := s.inner.EventAwards(ctx, eventID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list event awards", slog.Int64("event.id", eventID))
	}
	return result, nil
}

func (s *Service) ListLog(ctx context.Context, filter domain.LogFilter) ([]*domain.LogEntry, error) {
	ctx, span := s.startSpan(ctx, "ParticipationService.ListLog",
		attribute.Int64("registration.id", filter.RegistrationID),
		attribute.Int64("event.id", filter.EventID),
	)
	defer span.End()

	result, err := s.inner.ListLog(ctx, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list participation log")
	}
	span.SetAttributes(attribute.Int("log.result.count", len(result)))
	return result, nil
}

func (s *Service) ReleasePet(ctx context.Context, petID int64, remove func(ctx context.Context) error) error {
	ctx, span := s.startSpan(ctx, "ParticipationService.ReleasePet", attribute.Int64("pet.id", petID))
	defer span.End()

	if err := s.inner.ReleasePet(ctx, petID, remove); err != nil {
		return s.handleError(ctx, span, err, "failed to release pet", slog.Int64("pet.id", petID))
	}
	s.logInfo(ctx, "pet released from events", slog.Int64("pet.id", petID))
	return nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	level := slog.LevelError
	if domain.IsKind(err) {
		level = slog.LevelWarn
	}
	s.logger.LogAttrs(ctx, level, msg, append(attrs, slog.String("error", err.Error()))...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	registrations metric.Int64Counter
	rejections    metric.Int64Counter
	transfers     metric.Int64Counter
	withdrawals   metric.Int64Counter
	scores        metric.Int64Counter
	awards        metric.Int64Counter
	refunds       metric.Float64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	registrations, _ := m.Int64Counter("participation.service.registrations", metric.WithDescription("Number of paid registrations"))
	rejections, _ := m.Int64Counter("participation.service.rejections", metric.WithDescription("Number of lifecycle operations rejected by a business rule"))
	transfers, _ := m.Int64Counter("participation.service.transfers", metric.WithDescription("Number of registrations moved to another event"))
	withdrawals, _ := m.Int64Counter("participation.service.withdrawals", metric.WithDescription("Number of cancelled registrations"))
	scores, _ := m.Int64Counter("participation.service.scores", metric.WithDescription("Number of recorded scores"))
	awards, _ := m.Int64Counter("participation.service.awards_assigned", metric.WithDescription("Number of special awards assigned"))
	refunds, _ := m.Float64Histogram("participation.service.refund_amount",
		metric.WithDescription("Refund paid out on withdrawal"),
		metric.WithUnit("{currency}"))
	return serviceMetrics{
		registrations: registrations,
		rejections:    rejections,
		transfers:     transfers,
		withdrawals:   withdrawals,
		scores:        scores,
		awards:        awards,
		refunds:       refunds,
	}
}

func (m serviceMetrics) recordRegistered(ctx context.Context, discounted bool) {
	addCounter(ctx, m.registrations, 1, attribute.Bool("registration.discounted", discounted))
}

func (m serviceMetrics) recordRejected(ctx context.Context, op string, err error) {
	if !domain.IsKind(err) {
		return
	}
	addCounter(ctx, m.rejections, 1, attribute.String("operation", op))
}

func (m serviceMetrics) recordTransferred(ctx context.Context, quote domain.TransferQuote) {
	settlement := "even"
	switch {
	case quote.TopUp > 0:
		settlement = "top_up"
	case quote.Refund > 0:
		settlement = "refund"
	}
	addCounter(ctx, m.transfers, 1, attribute.String("transfer.settlement", settlement))
}

func (m serviceMetrics) recordWithdrawn(ctx context.Context, refund domain.Refund) {
	addCounter(ctx, m.withdrawals, 1, attribute.Int("refund.percent", refund.Percent))
	if m.refunds != nil {
		m.refunds.Record(ctx, refund.Amount, metric.WithAttributes(attribute.Int("refund.percent", refund.Percent)))
	}
}

func (m serviceMetrics) recordScored(ctx context.Context) {
	addCounter(ctx, m.scores, 1)
}

func (m serviceMetrics) recordAwarded(ctx context.Context) {
	addCounter(ctx, m.awards, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
