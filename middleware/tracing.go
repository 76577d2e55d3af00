package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/statecraft"
)

// tracerName is the instrumentation scope name for statecraft tracing.
const tracerName = "github.com/xraph/statecraft"

// Tracing returns middleware that wraps action execution in an
// OpenTelemetry span. If no TracerProvider is configured globally, the
// default noop tracer is used and this middleware becomes a pass-through
// with zero overhead.
//
// Span attributes include: statecraft.dispatch.id, statecraft.model,
// statecraft.namespace, statecraft.action, statecraft.batch.id.
// On error, the span status is set to codes.Error with the error message.
func Tracing() Middleware {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided tracer.
// This variant allows injecting a specific TracerProvider for testing or
// when multiple providers are in use.
func TracingWithTracer(tracer trace.Tracer) Middleware {
	return func(ctx context.Context, inv *statecraft.Invocation, next Handler) (any, error) {
		ctx, span := tracer.Start(ctx, "statecraft.action.execute",
			trace.WithAttributes(
				attribute.String("statecraft.dispatch.id", inv.ID.String()),
				attribute.String("statecraft.model", inv.Model),
				attribute.String("statecraft.namespace", inv.Namespace),
				attribute.String("statecraft.action", inv.Action),
				attribute.String("statecraft.batch.id", inv.BatchID.String()),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		out, err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return out, err
	}
}
