package tf2

import (
	"errors"
	"testing"
)

func stamped(parent, child string, sec int32, x float64) StampedTransform {
	return StampedTransform{
		ParentFrameID: parent,
		ChildFrameID:  child,
		Stamp:         Time{Sec: sec},
		Transform:     Transform{Translation: Vector3{X: x}, Rotation: IdentityQuaternion},
	}
}

func TestBufferDirectLookup(t *testing.T) {
	b := NewTfBuffer()
	b.HandleIncoming([]StampedTransform{stamped("world", "base_link", 1, 5)}, false)

	got, err := b.LookupTransform("world", "base_link", Time{Sec: 1})
	if err != nil {
		t.Fatalf("LookupTransform: unexpected error %v", err)
	}
	if got.Transform.Translation.X != 5 {
		t.Fatalf("LookupTransform.X = %v, want 5", got.Transform.Translation.X)
	}
}

func TestBufferInverseLookup(t *testing.T) {
	b := NewTfBuffer()
	b.HandleIncoming([]StampedTransform{stamped("world", "base_link", 1, 5)}, false)

	got, err := b.LookupTransform("base_link", "world", Time{Sec: 1})
	if err != nil {
		t.Fatalf("LookupTransform (inverse direction): unexpected error %v", err)
	}
	if !approxEqual(got.Transform.Translation.X, -5) {
		t.Fatalf("LookupTransform(base_link->world).X = %v, want -5", got.Transform.Translation.X)
	}
}

func TestBufferChainedLookup(t *testing.T) {
	b := NewTfBuffer()
	b.HandleIncoming([]StampedTransform{
		stamped("world", "base_link", 1, 10),
		stamped("base_link", "sensor", 1, 1),
	}, false)

	got, err := b.LookupTransform("world", "sensor", Time{Sec: 1})
	if err != nil {
		t.Fatalf("LookupTransform chained: unexpected error %v", err)
	}
	if !approxEqual(got.Transform.Translation.X, 11) {
		t.Fatalf("LookupTransform(world->sensor).X = %v, want 11", got.Transform.Translation.X)
	}
}

func TestBufferSameFrameIsIdentity(t *testing.T) {
	b := NewTfBuffer()
	b.HandleIncoming([]StampedTransform{stamped("world", "base_link", 1, 5)}, false)

	got, err := b.LookupTransform("world", "world", Time{Sec: 1})
	if err != nil {
		t.Fatalf("LookupTransform(world->world): unexpected error %v", err)
	}
	if !vecApproxEqual(got.Transform.Translation, Vector3{}) {
		t.Fatalf("LookupTransform(world->world).Translation = %+v, want zero", got.Transform.Translation)
	}
}

func TestBufferNoPathIsErrCouldNotFindTransform(t *testing.T) {
	b := NewTfBuffer()
	b.HandleIncoming([]StampedTransform{stamped("world", "base_link", 1, 5)}, false)

	_, err := b.LookupTransform("world", "nonexistent", Time{Sec: 1})
	var notFound *ErrCouldNotFindTransform
	if !errors.As(err, &notFound) {
		t.Fatalf("LookupTransform to a disconnected frame: got %v, want *ErrCouldNotFindTransform", err)
	}
}

func TestBufferPrefersShortestPath(t *testing.T) {
	b := NewTfBuffer()
	// Two paths from world to sensor: a direct edge, and a two-hop detour
	// through base_link. BFS should make the direct edge win regardless of
	// insertion order, since it is discovered at a shallower frontier depth.
	b.HandleIncoming([]StampedTransform{
		stamped("world", "base_link", 1, 100),
		stamped("base_link", "sensor", 1, 100),
		stamped("world", "sensor", 1, 7),
	}, false)

	got, err := b.LookupTransform("world", "sensor", Time{Sec: 1})
	if err != nil {
		t.Fatalf("LookupTransform: unexpected error %v", err)
	}
	if !approxEqual(got.Transform.Translation.X, 7) {
		t.Fatalf("LookupTransform.X = %v, want 7 (direct edge via BFS shortest path)", got.Transform.Translation.X)
	}
}

func TestBufferDynamicTopologyChange(t *testing.T) {
	b := NewTfBuffer()
	b.HandleIncoming([]StampedTransform{stamped("world", "base_link", 1, 1)}, false)

	if _, err := b.LookupTransform("world", "sensor", Time{Sec: 1}); err == nil {
		t.Fatal("expected lookup to fail before the sensor edge exists")
	}

	// A later world->base_link sample keeps that edge valid at t=2, and the
	// new base_link->sensor edge makes world->sensor traversable for the
	// first time.
	b.HandleIncoming([]StampedTransform{
		stamped("world", "base_link", 2, 1),
		stamped("base_link", "sensor", 2, 2),
	}, false)

	got, err := b.LookupTransform("world", "sensor", Time{Sec: 2})
	if err != nil {
		t.Fatalf("LookupTransform after topology change: unexpected error %v", err)
	}
	if !approxEqual(got.Transform.Translation.X, 3) {
		t.Fatalf("LookupTransform.X = %v, want 3", got.Transform.Translation.X)
	}
}

func TestBufferLookupTransformWithTimeTravel(t *testing.T) {
	b := NewTfBuffer()
	b.HandleIncoming([]StampedTransform{
		stamped("world", "robot_a", 1, 0),
		stamped("world", "robot_a", 2, 10),
		stamped("world", "robot_b", 1, 3),
		stamped("world", "robot_b", 2, 3),
	}, false)

	// robot_a moved from x=0 at t=1 to x=10 at t=2, while robot_b stayed at
	// x=3 relative to world throughout. The query asks: "a point at
	// robot_b's origin at t=2, expressed in robot_a's frame as of t=1, using
	// world as the stationary bridge between the two times." robot_b sits at
	// world-x=3 at t=2; robot_a sits at world-x=0 at t=1; so the point is at
	// world-x=3, which is +3 in robot_a's t=1 frame.
	got, err := b.LookupTransformWithTimeTravel("robot_a", Time{Sec: 1}, "robot_b", Time{Sec: 2}, "world")
	if err != nil {
		t.Fatalf("LookupTransformWithTimeTravel: unexpected error %v", err)
	}
	if !approxEqual(got.Transform.Translation.X, 3) {
		t.Fatalf("LookupTransformWithTimeTravel.X = %v, want 3", got.Transform.Translation.X)
	}
}

func TestBufferStaticEdgeAlwaysValid(t *testing.T) {
	b := NewTfBuffer()
	b.HandleIncoming([]StampedTransform{stamped("world", "map_origin", 1, 42)}, true)

	got, err := b.LookupTransform("world", "map_origin", Time{Sec: 999})
	if err != nil {
		t.Fatalf("LookupTransform on static edge: unexpected error %v", err)
	}
	if !approxEqual(got.Transform.Translation.X, 42) {
		t.Fatalf("static edge lookup.X = %v, want 42", got.Transform.Translation.X)
	}
}
