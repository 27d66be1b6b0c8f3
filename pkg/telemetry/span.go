// pkg/telemetry/span.go
// Small OpenTelemetry helpers for tagging spans and baggage with the frame
// pair a transform operation concerns. Deliberately free of imports on any
// internal package so external consumers embedding pkg/tf2 can reuse these
// helpers in their own instrumentation layers.
//
//	ctx, span := telemetry.StartTransformSpan(ctx, tracer, "client.Publish", from, to)
//	defer span.End()
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/trace"
)

const (
	attrFromFrame = "tf2.from_frame"
	attrToFrame   = "tf2.to_frame"
	baggageFrames = "tf2.frames"
)

// StartTransformSpan starts a child span of the span in ctx (or a root span
// if ctx has none) tagged with the (from, to) frame pair it concerns.
func StartTransformSpan(ctx context.Context, tracer trace.Tracer, name, from, to string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String(attrFromFrame, from),
		attribute.String(attrToFrame, to),
	}
	opts = append(opts, trace.WithAttributes(attrs...))
	return tracer.Start(ctx, name, opts...)
}

// WithFramePair returns a context carrying a "tf2.frames" baggage item of the
// form "from->to", so downstream services can annotate their own spans even
// if the span context itself is dropped by an intermediate hop.
func WithFramePair(ctx context.Context, from, to string) context.Context {
	member, err := baggage.NewMember(baggageFrames, from+"->"+to)
	if err != nil {
		return ctx
	}
	bg, err := baggage.FromContext(ctx).SetMember(member)
	if err != nil {
		return ctx
	}
	return baggage.ContextWithBaggage(ctx, bg)
}
