package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/petshow-api/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/petshow-api/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
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
	return s
}

func (s *Service) CreateEvent(ctx context.Context, event *catalogdomain.Event) (*catalogdomain.Event, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateEvent")
	defer span.End()

	result, err := s.inner.CreateEvent(ctx, event)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create event")
	}
	span.SetAttributes(attribute.Int64("event.id", result.ID))
	s.metrics.recordEventCreated(ctx)
	s.logInfo(ctx, "event created",
		slog.Int64("event.id", result.ID),
		slog.Int("event.max_participants", result.MaxParticipants),
		slog.Bool("event.open", result.Open))
	return result, nil
}

func (s *Service) GetEvent(ctx context.Context, id int64) (*catalogdomain.Event, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetEvent", trace.WithAttributes(attribute.Int64("event.id", id)))
	defer span.End()

	result, err := s.inner.GetEvent(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load event", slog.Int64("event.id", id))
	}
	return result, nil
}

func (s *Service) ListEvents(ctx context.Context, openOnly bool) ([]*catalogdomain.Event, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListEvents", trace.WithAttributes(attribute.Bool("events.open_only", openOnly)))
	defer span.End()

	result, err := s.inner.ListEvents(ctx, openOnly)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list events")
	}
	span.SetAttributes(attribute.Int("events.count", len(result)))
	return result, nil
}

func (s *Service) SetEventOpen(ctx context.Context, id int64, open bool) (*catalogdomain.Event, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.SetEventOpen",
		trace.WithAttributes(attribute.Int64("event.id", id), attribute.Bool("event.open", open)))
	defer span.End()

	result, err := s.inner.SetEventOpen(ctx, id, open)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to toggle event", slog.Int64("event.id", id))
	}
	s.logInfo(ctx, "event availability changed", slog.Int64("event.id", id), slog.Bool("event.open", open))
	return result, nil
}

func (s *Service) CreateBreed(ctx context.Context, breed *catalogdomain.Breed) (*catalogdomain.Breed, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateBreed")
	defer span.End()

	result, err := s.inner.CreateBreed(ctx, breed)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create breed")
	}
	s.logInfo(ctx, "breed created", slog.Int64("breed.id", result.ID), slog.String("breed.size", result.Size.String()))
	return result, nil
}

func (s *Service) ListBreeds(ctx context.Context) ([]*catalogdomain.Breed, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListBreeds")
	defer span.End()

	result, err := s.inner.ListBreeds(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list breeds")
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	eventsCreated metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	eventsCreated, _ := m.Int64Counter("catalog.service.events_created", metric.WithDescription("Number of events created"))
	return serviceMetrics{eventsCreated: eventsCreated}
}

func (m serviceMetrics) recordEventCreated(ctx context.Context) {
	if m.eventsCreated != nil {
		m.eventsCreated.Add(ctx, 1)
	}
}

var _ catalogports.Service = (*Service)(nil)
