package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LokiLogger logs through zap with trace correlation and, when a Loki
// URL is configured, mirrors info and error entries to Loki.
type LokiLogger struct {
	Logger      *otelzap.Logger
	serviceName string
	lokiURL     string
	httpClient  *http.Client
}

type LokiLogEntry struct {
	Streams []LokiStream `json:"streams"`
}

type LokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

func NewLokiLogger(serviceName, lokiURL string) (*LokiLogger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.TimeKey = "timestamp"

	zapLogger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	logger := &LokiLogger{
		Logger:      otelzap.New(zapLogger),
		serviceName: serviceName,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}

	if lokiURL != "" {
		logger.lokiURL = lokiURL + "/loki/api/v1/push"
	}

	return logger, nil
}

// NewNopLogger discards everything. Used by tests.
func NewNopLogger() *LokiLogger {
	return &LokiLogger{
		Logger:      otelzap.New(zap.NewNop()),
		serviceName: "test",
		httpClient:  http.DefaultClient,
	}
}

// Zap exposes the underlying logger for components that take *zap.Logger.
func (l *LokiLogger) Zap() *zap.Logger {
	return l.Logger.Logger
}

func (l *LokiLogger) Sync() error {
	return l.Logger.Sync()
}

func (l *LokiLogger) InfoWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.logWithTrace(ctx, zapcore.InfoLevel, msg, fields...)
}

func (l *LokiLogger) WarnWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.logWithTrace(ctx, zapcore.WarnLevel, msg, fields...)
}

func (l *LokiLogger) ErrorWithTrace(ctx context.Context, msg string, fields ...zap.Field) {
	l.logWithTrace(ctx, zapcore.ErrorLevel, msg, fields...)
}

func (l *LokiLogger) logWithTrace(ctx context.Context, level zapcore.Level, msg string, fields ...zap.Field) {
	logFields := append(fields, zap.String("service", l.serviceName))

	switch level {
	case zapcore.ErrorLevel:
		l.Logger.Ctx(ctx).Error(msg, logFields...)
	case zapcore.WarnLevel:
		l.Logger.Ctx(ctx).Warn(msg, logFields...)
	default:
		l.Logger.Ctx(ctx).Info(msg, logFields...)
	}

	if l.lokiURL == "" {
		return
	}

	entry, err := l.buildEntry(ctx, level, msg, logFields)
	if err != nil {
		l.Logger.Error("Failed to encode Loki entry", zap.Error(err))
		return
	}

	go l.push(entry)
}

func (l *LokiLogger) buildEntry(ctx context.Context, level zapcore.Level, msg string, fields []zap.Field) (LokiLogEntry, error) {
	encoder := zapcore.NewMapObjectEncoder()

	for _, field := range fields {
		field.AddTo(encoder)
	}

	logData := encoder.Fields
	logData["timestamp"] = time.Now().Format(time.RFC3339Nano)
	logData["level"] = level.String()
	logData["message"] = msg

	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if spanContext.IsValid() {
		logData["trace_id"] = spanContext.TraceID().String()
		logData["span_id"] = spanContext.SpanID().String()
	}

	line, err := json.Marshal(logData)
	if err != nil {
		return LokiLogEntry{}, err
	}

	return LokiLogEntry{
		Streams: []LokiStream{
			{
				Stream: map[string]string{
					"service": l.serviceName,
					"level":   level.String(),
				},
				Values: [][]string{
					{strconv.FormatInt(time.Now().UnixNano(), 10), string(line)},
				},
			},
		},
	}, nil
}

func (l *LokiLogger) push(entry LokiLogEntry) {
	body, err := json.Marshal(entry)
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, l.lokiURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	io.Copy(io.Discard, resp.Body)
}
