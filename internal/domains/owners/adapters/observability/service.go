package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ownerapp "github.com/Apurer/petshow-api/internal/domains/owners/application"
	ownerdomain "github.com/Apurer/petshow-api/internal/domains/owners/domain"
	ownerports "github.com/Apurer/petshow-api/internal/domains/owners/ports"
)

const tracerName = "github.com/Apurer/petshow-api/internal/domains/owners/adapters/observability/service"

// Service decorates the owner service with tracing, logging, and metrics.
type Service struct {
	inner   ownerports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core owner service.
func New(inner ownerports.Service, opts ...Option) ownerports.Service {
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

func (s *Service) CreateOwner(ctx context.Context, owner *ownerdomain.Owner) (*ownerdomain.Owner, error) {
	ctx, span := s.tracer.Start(ctx, "OwnerService.CreateOwner")
	defer span.End()
	result, err := s.inner.CreateOwner(ctx, owner)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create owner")
	}
	span.SetAttributes(attribute.Int64("owner.id", result.ID))
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "owner created", slog.Int64("owner.id", result.ID))
	return result, nil
}

func (s *Service) GetOwner(ctx context.Context, id int64) (*ownerdomain.Owner, error) {
	ctx, span := s.tracer.Start(ctx, "OwnerService.GetOwner", trace.WithAttributes(attribute.Int64("owner.id", id)))
	defer span.End()
	result, err := s.inner.GetOwner(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load owner", slog.Int64("owner.id", id))
	}
	return result, nil
}

func (s *Service) UpdateOwner(ctx context.Context, id int64, updated *ownerdomain.Owner) (*ownerdomain.Owner, error) {
	ctx, span := s.tracer.Start(ctx, "OwnerService.UpdateOwner", trace.WithAttributes(attribute.Int64("owner.id", id)))
	defer span.End()
	result, err := s.inner.UpdateOwner(ctx, id, updated)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update owner", slog.Int64("owner.id", id))
	}
	s.logInfo(ctx, "owner updated", slog.Int64("owner.id", id))
	return result, nil
}

func (s *Service) ListOwners(ctx context.Context) ([]*ownerdomain.Owner, error) {
	ctx, span := s.tracer.Start(ctx, "OwnerService.ListOwners")
	defer span.End()
	result, err := s.inner.ListOwners(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list owners")
	}
	span.SetAttributes(attribute.Int("owners.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	level := slog.LevelError
	if errors.Is(err, ownerapp.ErrInvalidInput) || errors.Is(err, ownerports.ErrNotFound) || errors.Is(err, ownerports.ErrDuplicateEmail) {
		level = slog.LevelWarn
	}
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, level, msg, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	created metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("owners.service.created", metric.WithDescription("Number of owners created"))
	return serviceMetrics{created: created}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.created != nil {
		m.created.Add(ctx, 1)
	}
}

var _ ownerports.Service = (*Service)(nil)
