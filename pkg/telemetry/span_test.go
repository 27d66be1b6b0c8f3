package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestStartTransformSpanReturnsUsableSpan(t *testing.T) {
	tracer := noop.NewTracerProvider().Tracer("test")
	ctx, span := StartTransformSpan(context.Background(), tracer, "unit.test", "base_link", "camera")
	defer span.End()

	if ctx == nil {
		t.Fatal("StartTransformSpan returned a nil context")
	}
	if span == nil {
		t.Fatal("StartTransformSpan returned a nil span")
	}
}

func TestWithFramePairAddsBaggageMember(t *testing.T) {
	ctx := WithFramePair(context.Background(), "base_link", "camera")

	member := baggage.FromContext(ctx).Member(baggageFrames)
	if got, want := member.Value(), "base_link->camera"; got != want {
		t.Fatalf("baggage member %q = %q, want %q", baggageFrames, got, want)
	}
}

func TestWithFramePairPreservesExistingBaggage(t *testing.T) {
	base, err := baggage.NewMember("tf2.request_id", "abc123")
	if err != nil {
		t.Fatalf("baggage.NewMember: %v", err)
	}
	bg, err := baggage.New(base)
	if err != nil {
		t.Fatalf("baggage.New: %v", err)
	}
	ctx := baggage.ContextWithBaggage(context.Background(), bg)

	ctx = WithFramePair(ctx, "odom", "base_link")

	out := baggage.FromContext(ctx)
	if got := out.Member("tf2.request_id").Value(); got != "abc123" {
		t.Fatalf("pre-existing baggage member dropped: got %q", got)
	}
	if got, want := out.Member(baggageFrames).Value(), "odom->base_link"; got != want {
		t.Fatalf("baggage member %q = %q, want %q", baggageFrames, got, want)
	}
}
