package tf2

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func vecApproxEqual(a, b Vector3) bool {
	return approxEqual(a.X, b.X) && approxEqual(a.Y, b.Y) && approxEqual(a.Z, b.Z)
}

// quatApproxEqual treats q and -q as the same rotation.
func quatApproxEqual(a, b Quaternion) bool {
	same := approxEqual(a.X, b.X) && approxEqual(a.Y, b.Y) && approxEqual(a.Z, b.Z) && approxEqual(a.W, b.W)
	if same {
		return true
	}
	return approxEqual(a.X, -b.X) && approxEqual(a.Y, -b.Y) && approxEqual(a.Z, -b.Z) && approxEqual(a.W, -b.W)
}

func TestInverseRoundTrip(t *testing.T) {
	original := StampedTransform{
		ParentFrameID: "world",
		ChildFrameID:  "base_link",
		Stamp:         Time{Sec: 1},
		Transform: Transform{
			Translation: Vector3{X: 1, Y: 2, Z: 3},
			Rotation:    Quaternion{X: 0, Y: 0, Z: 0.7071067811865476, W: 0.7071067811865476},
		},
	}
	back := Inverse(Inverse(original))
	if !vecApproxEqual(back.Transform.Translation, original.Transform.Translation) {
		t.Fatalf("translation round-trip mismatch: got %+v, want %+v", back.Transform.Translation, original.Transform.Translation)
	}
	if !quatApproxEqual(back.Transform.Rotation, original.Transform.Rotation) {
		t.Fatalf("rotation round-trip mismatch: got %+v, want %+v", back.Transform.Rotation, original.Transform.Rotation)
	}
	if back.ParentFrameID != original.ParentFrameID || back.ChildFrameID != original.ChildFrameID {
		t.Fatalf("frame ids round-trip mismatch: got %s->%s, want %s->%s", back.ParentFrameID, back.ChildFrameID, original.ParentFrameID, original.ChildFrameID)
	}
}

func TestInverseSwapsFrames(t *testing.T) {
	fwd := StampedTransform{
		ParentFrameID: "world",
		ChildFrameID:  "base_link",
		Transform:     Transform{Translation: Vector3{X: 1}, Rotation: IdentityQuaternion},
	}
	inv := Inverse(fwd)
	if inv.ParentFrameID != "base_link" || inv.ChildFrameID != "world" {
		t.Fatalf("Inverse did not swap frame ids: got %s->%s", inv.ParentFrameID, inv.ChildFrameID)
	}
	if !vecApproxEqual(inv.Transform.Translation, Vector3{X: -1}) {
		t.Fatalf("Inverse translation = %+v, want {-1,0,0}", inv.Transform.Translation)
	}
}

func TestComposeIdentity(t *testing.T) {
	tr := Transform{Translation: Vector3{X: 1, Y: 2, Z: 3}, Rotation: IdentityQuaternion}
	got := Compose(Identity, tr)
	if !vecApproxEqual(got.Translation, tr.Translation) {
		t.Fatalf("Compose(Identity, tr).Translation = %+v, want %+v", got.Translation, tr.Translation)
	}
	got2 := Compose(tr, Identity)
	if !vecApproxEqual(got2.Translation, tr.Translation) {
		t.Fatalf("Compose(tr, Identity).Translation = %+v, want %+v", got2.Translation, tr.Translation)
	}
}

func TestComposeTranslationOnly(t *testing.T) {
	a := Transform{Translation: Vector3{X: 1, Y: 0, Z: 0}, Rotation: IdentityQuaternion}
	b := Transform{Translation: Vector3{X: 0, Y: 1, Z: 0}, Rotation: IdentityQuaternion}
	got := Compose(a, b)
	want := Vector3{X: 1, Y: 1, Z: 0}
	if !vecApproxEqual(got.Translation, want) {
		t.Fatalf("Compose translation = %+v, want %+v", got.Translation, want)
	}
}

func TestChainEmptyIsIdentity(t *testing.T) {
	got := Chain(nil)
	if !vecApproxEqual(got.Translation, Identity.Translation) || !quatApproxEqual(got.Rotation, Identity.Rotation) {
		t.Fatalf("Chain(nil) = %+v, want Identity", got)
	}
}

func TestChainOrderMatters(t *testing.T) {
	rotate90Z := Quaternion{X: 0, Y: 0, Z: 0.7071067811865476, W: 0.7071067811865476}
	a := Transform{Translation: Vector3{X: 1, Y: 0, Z: 0}, Rotation: rotate90Z}
	b := Transform{Translation: Vector3{X: 1, Y: 0, Z: 0}, Rotation: IdentityQuaternion}
	got := Chain([]Transform{a, b})
	want := Vector3{X: 1, Y: 1, Z: 0}
	if !vecApproxEqual(got.Translation, want) {
		t.Fatalf("Chain([a,b]).Translation = %+v, want %+v", got.Translation, want)
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	t1 := Transform{Translation: Vector3{X: 0, Y: 0, Z: 0}, Rotation: IdentityQuaternion}
	t2 := Transform{Translation: Vector3{X: 10, Y: 0, Z: 0}, Rotation: Quaternion{X: 0, Y: 0, Z: 1, W: 0}}

	at1 := Interpolate(t1, t2, 1)
	if !vecApproxEqual(at1.Translation, t1.Translation) {
		t.Fatalf("Interpolate(weight=1).Translation = %+v, want t1 %+v", at1.Translation, t1.Translation)
	}
	if !quatApproxEqual(at1.Rotation, t1.Rotation) {
		t.Fatalf("Interpolate(weight=1).Rotation = %+v, want t1 %+v", at1.Rotation, t1.Rotation)
	}

	at0 := Interpolate(t1, t2, 0)
	if !vecApproxEqual(at0.Translation, t2.Translation) {
		t.Fatalf("Interpolate(weight=0).Translation = %+v, want t2 %+v", at0.Translation, t2.Translation)
	}
	if !quatApproxEqual(at0.Rotation, t2.Rotation) {
		t.Fatalf("Interpolate(weight=0).Rotation = %+v, want t2 %+v", at0.Rotation, t2.Rotation)
	}
}

func TestInterpolateIdentical(t *testing.T) {
	tr := Transform{Translation: Vector3{X: 3, Y: 4, Z: 5}, Rotation: Quaternion{X: 0, Y: 0.6, Z: 0, W: 0.8}}
	got := Interpolate(tr, tr, 0.37)
	if !vecApproxEqual(got.Translation, tr.Translation) {
		t.Fatalf("Interpolate(T,T,w).Translation = %+v, want %+v", got.Translation, tr.Translation)
	}
	if !quatApproxEqual(got.Rotation, tr.Rotation) {
		t.Fatalf("Interpolate(T,T,w).Rotation = %+v, want %+v", got.Rotation, tr.Rotation)
	}
}

func TestInterpolateTranslationMidpoint(t *testing.T) {
	t1 := Transform{Translation: Vector3{X: 0, Y: 0, Z: 0}, Rotation: IdentityQuaternion}
	t2 := Transform{Translation: Vector3{X: 0, Y: 1, Z: 0}, Rotation: IdentityQuaternion}
	// weight = 0.3 is the weight of t1, i.e. the result lies 70% of the way
	// from t1 toward t2, under the before/after SampleAt convention: weight =
	// 1 - elapsed/total, so at elapsed=0.7s out of 1s, weight=0.3.
	got := Interpolate(t1, t2, 0.3)
	want := Vector3{X: 0, Y: 0.7, Z: 0}
	if !vecApproxEqual(got.Translation, want) {
		t.Fatalf("Interpolate translation = %+v, want %+v", got.Translation, want)
	}
}

func TestInterpolateRotationIsUnit(t *testing.T) {
	t1 := Transform{Rotation: Quaternion{X: 0, Y: 0, Z: 0, W: 1}}
	t2 := Transform{Rotation: Quaternion{X: 1, Y: 0, Z: 0, W: 0}}
	got := Interpolate(t1, t2, 0.5)
	if n := got.Rotation.norm(); !approxEqual(n, 1) {
		t.Fatalf("Interpolate rotation norm = %v, want 1", n)
	}
}

func TestInterpolateShortArc(t *testing.T) {
	q := Quaternion{X: 0, Y: 0, Z: 0.7071067811865476, W: 0.7071067811865476}
	negQ := Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}
	t1 := Transform{Rotation: q}
	t2 := Transform{Rotation: negQ}
	got := Interpolate(t1, t2, 0.5)
	if !quatApproxEqual(got.Rotation, q) {
		t.Fatalf("short-arc Interpolate = %+v, want close to %+v", got.Rotation, q)
	}
}
