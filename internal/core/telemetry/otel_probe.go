package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"crmchat/internal/core/domain"
	"crmchat/internal/core/port"
	"crmchat/pkg/config"
)

const tracerName = "crmchat"

// OTELProbe implements Telemetry with OpenTelemetry spans, zap logs and,
// when metrics are given, Prometheus counters.
type OTELProbe struct {
	logger  *config.LokiLogger
	metrics *AppMetrics
}

func NewOTELProbe(logger *config.LokiLogger, metrics *AppMetrics) port.Telemetry {
	return &OTELProbe{
		logger:  logger,
		metrics: metrics,
	}
}

// OTelSpan adapts trace.Span to port.Span.
type OTelSpan struct {
	span trace.Span
}

func (s *OTelSpan) End() {
	s.span.End()
}

func (s *OTelSpan) SetAttributes(attrs map[string]interface{}) {
	s.span.SetAttributes(toAttributes(attrs)...)
}

func (s *OTelSpan) SetStatus(code string, message string) {
	var statusCode codes.Code

	switch code {
	case "ok":
		statusCode = codes.Ok
	case "error":
		statusCode = codes.Error
	default:
		statusCode = codes.Unset
	}

	s.span.SetStatus(statusCode, message)
}

func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
}

func toAttributes(attrs map[string]interface{}) []attribute.KeyValue {
	result := make([]attribute.KeyValue, 0, len(attrs))

	for key, value := range attrs {
		switch v := value.(type) {
		case string:
			result = append(result, attribute.String(key, v))
		case int:
			result = append(result, attribute.Int(key, v))
		case int64:
			result = append(result, attribute.Int64(key, v))
		case float64:
			result = append(result, attribute.Float64(key, v))
		case bool:
			result = append(result, attribute.Bool(key, v))
		case []string:
			result = append(result, attribute.StringSlice(key, v))
		default:
			result = append(result, attribute.String(key, fmt.Sprintf("%v", v)))
		}
	}

	return result
}

func (p *OTELProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs map[string]interface{}) (context.Context, port.Span) {
	spanName := fmt.Sprintf("repository.%s.%s", entity, operation)

	standardAttrs := append([]attribute.KeyValue{
		attribute.String("repository.entity", entity),
		attribute.String("repository.operation", operation),
		attribute.String("component", "repository"),
	}, toAttributes(attrs)...)

	ctx, span := otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(standardAttrs...))

	return ctx, &OTelSpan{span: span}
}

func (p *OTELProbe) StartServiceSpan(ctx context.Context, service string, operation string, attrs map[string]interface{}) (context.Context, port.Span) {
	spanName := fmt.Sprintf("service.%s.%s", service, operation)

	standardAttrs := append([]attribute.KeyValue{
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
		attribute.String("component", "service"),
	}, toAttributes(attrs)...)

	ctx, span := otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(standardAttrs...))

	return ctx, &OTelSpan{span: span}
}

func (p *OTELProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
	if p.metrics != nil {
		p.metrics.RecordDatabaseOperation(ctx, operation, entity, err)
	}

	if err != nil {
		p.logFailure(ctx, err, "Repository operation failed",
			zap.String("operation", operation),
			zap.String("entity", entity),
			zap.Duration("duration", duration),
		)
	}
}

func (p *OTELProbe) RecordRepositoryQuery(ctx context.Context, operation string, entity string, query string, args []interface{}) {
	argTypes := make([]string, len(args))

	for i := range args {
		argTypes[i] = fmt.Sprintf("%T", args[i])
	}

	p.logger.Logger.Ctx(ctx).Debug("Executing repository query",
		zap.String("operation", operation),
		zap.String("entity", entity),
		zap.String("query", query),
		zap.Strings("args_types", argTypes),
	)
}

func (p *OTELProbe) RecordServiceOperation(ctx context.Context, service string, operation string, duration time.Duration, err error) {
	if p.metrics != nil {
		p.metrics.RecordEntityOperation(ctx, service, operation)
	}

	if err != nil {
		p.logFailure(ctx, err, "Service operation failed",
			zap.String("service", service),
			zap.String("operation", operation),
			zap.Duration("duration", duration),
		)
	}
}

// logFailure reports store failures at error level. Not-found and
// validation outcomes are answered to the client and only logged at debug.
func (p *OTELProbe) logFailure(ctx context.Context, err error, msg string, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))

	if domain.IsStorageError(err) {
		p.logger.ErrorWithTrace(ctx, msg, fields...)
		return
	}

	p.logger.Logger.Ctx(ctx).Debug(msg, fields...)
}

func (p *OTELProbe) RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, metadata map[string]interface{}) {
	trace.SpanFromContext(ctx).AddEvent(event, trace.WithAttributes(
		append([]attribute.KeyValue{
			attribute.String("entity", entity),
			attribute.String("entity_id", entityID),
		}, toAttributes(metadata)...)...,
	))

	if p.metrics != nil {
		p.metrics.RecordBusinessEvent(ctx, event)
	}

	p.logger.InfoWithTrace(ctx, "Business event recorded",
		zap.String("event", event),
		zap.String("entity", entity),
		zap.String("entity_id", entityID),
		zap.Any("metadata", metadata),
	)
}

func (p *OTELProbe) RecordError(ctx context.Context, operation string, err error, metadata map[string]interface{}) {
	p.logger.ErrorWithTrace(ctx, "Operation error recorded",
		zap.String("operation", operation),
		zap.Error(err),
		zap.Any("metadata", metadata),
	)
}
