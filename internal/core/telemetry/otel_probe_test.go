package telemetry

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"crmchat/internal/core/domain"
	"crmchat/pkg/config"
)

func withSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)

	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		provider.Shutdown(context.Background())
	})

	return recorder
}

func TestOTELProbe_ServiceSpanWithBusinessEvent(t *testing.T) {
	RegisterTestingT(t)

	recorder := withSpanRecorder(t)
	registry := prometheus.NewRegistry()
	probe := NewOTELProbe(config.NewNopLogger(), NewAppMetrics(registry))

	ctx, span := probe.StartServiceSpan(context.Background(), "deal", "Create", map[string]interface{}{
		"deal.created_by": "79001234567",
	})
	probe.RecordBusinessEvent(ctx, "deal.created", "deal", "1", map[string]interface{}{"amount": 100.0})
	probe.RecordServiceOperation(ctx, "deal", "Create", 0, nil)
	span.SetStatus("ok", "")
	span.End()

	spans := recorder.Ended()
	Expect(spans).To(HaveLen(1))
	Expect(spans[0].Name()).To(Equal("service.deal.Create"))
	Expect(spans[0].Status().Code).To(Equal(codes.Ok))
	Expect(spans[0].Events()).To(HaveLen(1))
	Expect(spans[0].Events()[0].Name).To(Equal("deal.created"))

	Expect(testutil.ToFloat64(probeMetrics(probe).businessEvents.WithLabelValues("deal.created"))).To(Equal(1.0))
	Expect(testutil.ToFloat64(probeMetrics(probe).entityOperations.WithLabelValues("deal", "Create"))).To(Equal(1.0))
}

func TestOTELProbe_RepositorySpanError(t *testing.T) {
	RegisterTestingT(t)

	recorder := withSpanRecorder(t)
	probe := NewOTELProbe(config.NewNopLogger(), nil)

	ctx, span := probe.StartRepositorySpan(context.Background(), "Delete", "deal", map[string]interface{}{
		"db.table": "deals",
	})
	probe.RecordRepositoryOperation(ctx, "Delete", "deal", 0, errors.New("database is locked"))
	span.RecordError(errors.New("database is locked"))
	span.SetStatus("error", "database is locked")
	span.End()

	spans := recorder.Ended()
	Expect(spans).To(HaveLen(1))
	Expect(spans[0].Name()).To(Equal("repository.deal.Delete"))
	Expect(spans[0].Status().Code).To(Equal(codes.Error))
}

func TestOTELProbe_OnlyStorageFailuresLogAtErrorLevel(t *testing.T) {
	RegisterTestingT(t)

	core, logs := observer.New(zapcore.DebugLevel)
	probe := NewOTELProbe(&config.LokiLogger{Logger: otelzap.New(zap.New(core))}, nil)
	ctx := context.Background()

	probe.RecordServiceOperation(ctx, "deal", "Update", 0, domain.ErrEmptyPatch)
	probe.RecordRepositoryOperation(ctx, "GetByID", "deal", 0, domain.ErrNotFound)
	probe.RecordRepositoryOperation(ctx, "Create", "deal", 0, &domain.StorageError{Op: "deal.Create", Err: errors.New("disk I/O error")})
	probe.RecordServiceOperation(ctx, "deal", "List", 0, nil)

	Expect(logs.FilterLevelExact(zapcore.ErrorLevel).Len()).To(Equal(1))
	Expect(logs.FilterLevelExact(zapcore.ErrorLevel).All()[0].Message).To(Equal("Repository operation failed"))
	Expect(logs.FilterLevelExact(zapcore.DebugLevel).Len()).To(Equal(2))
}

func TestToAttributes(t *testing.T) {
	RegisterTestingT(t)

	attrs := toAttributes(map[string]interface{}{
		"s":  "x",
		"i":  1,
		"ss": []string{"name", "amount"},
	})

	Expect(attrs).To(HaveLen(3))
}

func probeMetrics(probe interface{}) *AppMetrics {
	return probe.(*OTELProbe).metrics
}
