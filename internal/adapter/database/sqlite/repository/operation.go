package repository

import (
	"context"
	"time"

	"crmchat/internal/adapter/database/sqlite"
	"crmchat/internal/core/port"
	tel "crmchat/internal/core/telemetry"
)

// operation tracks one repository call: its span, its duration and the
// translation of driver errors into domain errors.
type operation struct {
	ctx       context.Context
	span      port.Span
	telemetry port.Telemetry
	name      string
	entity    string
	startTime time.Time
}

func startOperation(ctx context.Context, telemetry port.Telemetry, name, entity string, attrs map[string]interface{}) *operation {
	if attrs == nil {
		attrs = map[string]interface{}{}
	}

	attrs["db.system"] = "sqlite"

	ctx, span := telemetry.StartRepositorySpan(ctx, name, entity, attrs)

	return &operation{
		ctx:       ctx,
		span:      span,
		telemetry: telemetry,
		name:      name,
		entity:    entity,
		startTime: time.Now(),
	}
}

func (o *operation) query(stmt string, args []interface{}) {
	o.telemetry.RecordRepositoryQuery(o.ctx, o.name, o.entity, stmt, args)
}

// end closes the span and returns err translated by sqlite.WrapError.
func (o *operation) end(err error) error {
	err = sqlite.WrapError(o.entity+"."+o.name, err)
	duration := time.Since(o.startTime)

	o.span.SetAttributes(map[string]interface{}{
		"operation.duration_ns": duration.Nanoseconds(),
	})

	if err != nil {
		o.span.SetStatus("error", err.Error())
		o.span.RecordError(err)
	} else {
		o.span.SetStatus("ok", "")
	}

	o.telemetry.RecordRepositoryOperation(o.ctx, o.name, o.entity, duration, err)
	o.span.End()

	return err
}

func probeOrNoOp(telemetry port.Telemetry) port.Telemetry {
	if telemetry == nil {
		return tel.NewNoOpProbe()
	}

	return telemetry
}
