package tf2

import (
	"errors"
	"testing"
)

func sampleAt(sec int32, x float64) StampedTransform {
	return StampedTransform{
		ParentFrameID: "world",
		ChildFrameID:  "base_link",
		Stamp:         Time{Sec: sec},
		Transform:     Transform{Translation: Vector3{X: x}, Rotation: IdentityQuaternion},
	}
}

func TestEdgeHistoryExactHit(t *testing.T) {
	h := NewEdgeHistory(false, Duration{Sec: 10})
	h.Insert(sampleAt(1, 1))
	h.Insert(sampleAt(2, 2))

	got, err := h.SampleAt(Time{Sec: 2})
	if err != nil {
		t.Fatalf("SampleAt exact: unexpected error %v", err)
	}
	if got.Transform.Translation.X != 2 {
		t.Fatalf("SampleAt exact = %+v, want X=2", got.Transform.Translation)
	}
}

func TestEdgeHistoryInterpolatesBetweenSamples(t *testing.T) {
	h := NewEdgeHistory(false, Duration{Sec: 10})
	h.Insert(sampleAt(0, 0))
	h.Insert(sampleAt(1, 10))

	got, err := h.SampleAt(Time{Sec: 0, Nanosec: 500_000_000})
	if err != nil {
		t.Fatalf("SampleAt midpoint: unexpected error %v", err)
	}
	if !approxEqual(got.Transform.Translation.X, 5) {
		t.Fatalf("SampleAt midpoint X = %v, want 5", got.Transform.Translation.X)
	}
}

func TestEdgeHistoryBeforeOldestIsErrLookupInPast(t *testing.T) {
	h := NewEdgeHistory(false, Duration{Sec: 10})
	h.Insert(sampleAt(5, 0))
	h.Insert(sampleAt(6, 0))

	_, err := h.SampleAt(Time{Sec: 1})
	var pastErr *ErrLookupInPast
	if !errors.As(err, &pastErr) {
		t.Fatalf("SampleAt before oldest: got %v, want *ErrLookupInPast", err)
	}
}

func TestEdgeHistoryAfterNewestIsErrLookupInFuture(t *testing.T) {
	h := NewEdgeHistory(false, Duration{Sec: 10})
	h.Insert(sampleAt(5, 0))
	h.Insert(sampleAt(6, 0))

	_, err := h.SampleAt(Time{Sec: 100})
	var futureErr *ErrLookupInFuture
	if !errors.As(err, &futureErr) {
		t.Fatalf("SampleAt after newest: got %v, want *ErrLookupInFuture", err)
	}
}

func TestEdgeHistoryLatestSentinelReturnsNewest(t *testing.T) {
	h := NewEdgeHistory(false, Duration{Sec: 10})
	h.Insert(sampleAt(1, 1))
	h.Insert(sampleAt(2, 2))
	h.Insert(sampleAt(3, 3))

	got, err := h.SampleAt(Time{})
	if err != nil {
		t.Fatalf("SampleAt(latest): unexpected error %v", err)
	}
	if got.Transform.Translation.X != 3 {
		t.Fatalf("SampleAt(latest).X = %v, want 3 (newest)", got.Transform.Translation.X)
	}
}

func TestEdgeHistoryStaticAlwaysReturnsNewest(t *testing.T) {
	h := NewEdgeHistory(true, Duration{})
	h.Insert(sampleAt(1, 1))
	h.Insert(sampleAt(2, 2))

	got, err := h.SampleAt(Time{Sec: 9999})
	if err != nil {
		t.Fatalf("SampleAt static: unexpected error %v", err)
	}
	if got.Transform.Translation.X != 2 {
		t.Fatalf("SampleAt static far future = %v, want newest 2", got.Transform.Translation.X)
	}
}

func TestEdgeHistoryInsertReplacesExactStamp(t *testing.T) {
	h := NewEdgeHistory(false, Duration{Sec: 10})
	h.Insert(sampleAt(1, 1))
	h.Insert(sampleAt(1, 99))
	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (replace, not append)", h.Len())
	}
	got, _ := h.SampleAt(Time{Sec: 1})
	if got.Transform.Translation.X != 99 {
		t.Fatalf("replaced sample X = %v, want 99", got.Transform.Translation.X)
	}
}

func TestEdgeHistoryEvictsOutsideCacheDuration(t *testing.T) {
	h := NewEdgeHistory(false, Duration{Sec: 2})
	h.Insert(sampleAt(0, 0))
	h.Insert(sampleAt(1, 1))
	h.Insert(sampleAt(10, 10))

	if h.Len() != 1 {
		t.Fatalf("Len() after eviction = %d, want 1 (only the newest sample within 2s of t=10)", h.Len())
	}
	newest, ok := h.NewestStamp()
	if !ok || newest != (Time{Sec: 10}) {
		t.Fatalf("NewestStamp() = %+v, ok=%v, want {Sec:10}", newest, ok)
	}
}

func TestEdgeHistoryHasValidTransform(t *testing.T) {
	h := NewEdgeHistory(false, Duration{Sec: 10})
	if h.HasValidTransform(Time{Sec: 1}) {
		t.Fatal("empty history must never report a valid transform")
	}
	h.Insert(sampleAt(1, 0))
	h.Insert(sampleAt(5, 0))

	if !h.HasValidTransform(Time{Sec: 3}) {
		t.Fatal("time within [oldest,newest] must be valid")
	}
	if h.HasValidTransform(Time{Sec: 0, Nanosec: 500_000_000}) {
		t.Fatal("time before oldest must not be valid")
	}
	if h.HasValidTransform(Time{Sec: 6}) {
		t.Fatal("time after newest must not be valid")
	}
	if !h.HasValidTransform(Time{}) {
		t.Fatal("the latest sentinel must always be valid for a non-empty history")
	}
}
