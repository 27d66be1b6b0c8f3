// pkg/tf2/transform.go
// Rigid-transform math: inversion, composition, chaining and interpolation.
// Rotations are unit quaternions (x, y, z, w); translations are float64
// meters. Quaternion sign is not canonicalized on store — q and -q denote the
// same rotation — only Interpolate picks the short-arc sign, and only
// Interpolate and the final lookup result re-normalize, per the numerical
// notes in the spec.
package tf2

import "math"

// Vector3 is a translation component.
type Vector3 struct {
    X, Y, Z float64
}

// Quaternion is a rotation component, not guaranteed unit-normalized between
// calls to Interpolate.
type Quaternion struct {
    X, Y, Z, W float64
}

// IdentityQuaternion is the no-rotation quaternion.
var IdentityQuaternion = Quaternion{X: 0, Y: 0, Z: 0, W: 1}

// Transform is a rigid motion: rotation followed by translation.
type Transform struct {
    Translation Vector3
    Rotation    Quaternion
}

// Identity is the zero-translation, zero-rotation transform.
var Identity = Transform{Translation: Vector3{}, Rotation: IdentityQuaternion}

// StampedTransform is a Transform between two named frames at an instant.
type StampedTransform struct {
    ParentFrameID string
    ChildFrameID  string
    Stamp         Time
    Transform     Transform
}

func (q Quaternion) conjugate() Quaternion {
    return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

func (q Quaternion) norm() float64 {
    return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

func (q Quaternion) normalized() Quaternion {
    n := q.norm()
    if n == 0 {
        return IdentityQuaternion
    }
    return Quaternion{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

// rotate applies q to the vector v (q * v * q^-1 for unit q).
func (q Quaternion) rotate(v Vector3) Vector3 {
    // Treat v as a pure quaternion (v, 0) and compute q * v * conjugate(q).
    qv := Quaternion{X: v.X, Y: v.Y, Z: v.Z, W: 0}
    r := quatMul(quatMul(q, qv), q.conjugate())
    return Vector3{X: r.X, Y: r.Y, Z: r.Z}
}

func quatMul(a, b Quaternion) Quaternion {
    return Quaternion{
        W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
        X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
        Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
        Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
    }
}

func addVec(a, b Vector3) Vector3 {
    return Vector3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

func scaleVec(v Vector3, s float64) Vector3 {
    return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func negVec(v Vector3) Vector3 {
    return Vector3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Inverse returns the inverse transform. If t maps parent->child, Inverse(t)
// maps child->parent, preserving the stamp.
func Inverse(t StampedTransform) StampedTransform {
    qInv := t.Transform.Rotation.conjugate()
    trans := negVec(qInv.rotate(t.Transform.Translation))
    return StampedTransform{
        ParentFrameID: t.ChildFrameID,
        ChildFrameID:  t.ParentFrameID,
        Stamp:         t.Stamp,
        Transform: Transform{
            Translation: trans,
            Rotation:    qInv,
        },
    }
}

// Compose returns the transform mapping a -> c given t1 maps a -> b and t2
// maps b -> c.
func Compose(t1, t2 Transform) Transform {
    return Transform{
        Rotation:    quatMul(t1.Rotation, t2.Rotation),
        Translation: addVec(t1.Translation, t1.Rotation.rotate(t2.Translation)),
    }
}

// Chain left-folds Compose over the sequence, starting from Identity. Order
// matters: the first element is applied first (composed nearest the root
// frame).
func Chain(seq []Transform) Transform {
    result := Identity
    for _, t := range seq {
        result = Compose(result, t)
    }
    return result
}

// Interpolate blends t1 toward t2 by weight (the weight of t1): translation
// is the linear blend weight*t1 + (1-weight)*t2; rotation is a slerp toward
// t1 with the same weight. The short-arc case is handled by flipping t2's
// sign when the quaternions' dot product is negative, and near-parallel
// quaternions fall back to linear interpolation to avoid a divide-by-zero.
// The result is always unit-renormalized.
func Interpolate(t1, t2 Transform, weight float64) Transform {
    translation := addVec(scaleVec(t1.Translation, weight), scaleVec(t2.Translation, 1-weight))

    q1 := t1.Rotation
    q2 := t2.Rotation
    dot := q1.X*q2.X + q1.Y*q2.Y + q1.Z*q2.Z + q1.W*q2.W
    if dot < 0 {
        q2 = Quaternion{X: -q2.X, Y: -q2.Y, Z: -q2.Z, W: -q2.W}
        dot = -dot
    }

    const dotThreshold = 1 - 1e-9
    var rotation Quaternion
    if dot > dotThreshold {
        // Nearly parallel: linear interpolation avoids a 0/0 in the slerp
        // coefficients and is numerically equivalent in the limit.
        rotation = Quaternion{
            X: q1.X*weight + q2.X*(1-weight),
            Y: q1.Y*weight + q2.Y*(1-weight),
            Z: q1.Z*weight + q2.Z*(1-weight),
            W: q1.W*weight + q2.W*(1-weight),
        }
    } else {
        theta0 := math.Acos(dot)
        sinTheta0 := math.Sin(theta0)
        s1 := math.Sin(weight*theta0) / sinTheta0
        s2 := math.Sin((1-weight)*theta0) / sinTheta0
        rotation = Quaternion{
            X: q1.X*s1 + q2.X*s2,
            Y: q1.Y*s1 + q2.Y*s2,
            Z: q1.Z*s1 + q2.Z*s2,
            W: q1.W*s1 + q2.W*s2,
        }
    }

    return Transform{Translation: translation, Rotation: rotation.normalized()}
}
