package service

import (
	"context"
	"time"

	"crmchat/internal/core/port"
	tel "crmchat/internal/core/telemetry"
)

// startSpan opens a service span. The returned func records the outcome
// held by errp and ends the span; call it deferred.
func startSpan(ctx context.Context, telemetry port.Telemetry, service, operation string, attrs map[string]interface{}) (context.Context, func(errp *error)) {
	ctx, span := telemetry.StartServiceSpan(ctx, service, operation, attrs)
	startTime := time.Now()

	return ctx, func(errp *error) {
		var err error
		if errp != nil {
			err = *errp
		}

		if err != nil {
			span.SetStatus("error", err.Error())
			span.RecordError(err)
		} else {
			span.SetStatus("ok", "")
		}

		telemetry.RecordServiceOperation(ctx, service, operation, time.Since(startTime), err)
		span.End()
	}
}

func probeOrNoOp(telemetry port.Telemetry) port.Telemetry {
	if telemetry == nil {
		return tel.NewNoOpProbe()
	}

	return telemetry
}
