// Package geom provides the 3D math used to place windows around a camera:
//   - Euler/quaternion conversion (XYZ order)
//   - camera-relative offsets to world space
//   - points along the camera's forward axis
//   - pairwise overlap separation
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance used for degenerate vectors and approximate comparisons.
const Epsilon = 1e-9

var (
	// AxisX is the unit X axis.
	AxisX = mgl64.Vec3{1, 0, 0}
	// AxisY is the unit Y axis.
	AxisY = mgl64.Vec3{0, 1, 0}
	// AxisZ is the unit Z axis.
	AxisZ = mgl64.Vec3{0, 0, 1}
	// Origin is the world origin.
	Origin = mgl64.Vec3{}
	// Unit is a uniform scale of one.
	Unit = mgl64.Vec3{1, 1, 1}
)

// Euler is an orientation in radians applied in X, then Y, then Z order.
type Euler struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
	Z float64 `toml:"z"`
}

// EulerDeg builds an Euler from angles in degrees.
func EulerDeg(x, y, z float64) Euler {
	return Euler{X: mgl64.DegToRad(x), Y: mgl64.DegToRad(y), Z: mgl64.DegToRad(z)}
}

// Quat returns the rotation as a quaternion (qx * qy * qz).
func (e Euler) Quat() mgl64.Quat {
	qx := mgl64.QuatRotate(e.X, AxisX)
	qy := mgl64.QuatRotate(e.Y, AxisY)
	qz := mgl64.QuatRotate(e.Z, AxisZ)
	return qx.Mul(qy).Mul(qz)
}

// IsZero reports whether all three angles are zero.
func (e Euler) IsZero() bool { return e == Euler{} }

// ApproxEqual compares two orientations angle by angle.
func (e Euler) ApproxEqual(o Euler, eps float64) bool {
	return math.Abs(e.X-o.X) <= eps && math.Abs(e.Y-o.Y) <= eps && math.Abs(e.Z-o.Z) <= eps
}

// EulerFromQuat decomposes q into XYZ-ordered angles.
func EulerFromQuat(q mgl64.Quat) Euler {
	m := q.Normalize().Mat4()
	m11, m12, m13 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m22, m23 := m.At(1, 1), m.At(1, 2)
	m32, m33 := m.At(2, 1), m.At(2, 2)

	var e Euler
	e.Y = math.Asin(mgl64.Clamp(m13, -1, 1))
	if math.Abs(m13) < 0.9999999 {
		e.X = math.Atan2(-m23, m33)
		e.Z = math.Atan2(-m12, m11)
	} else {
		e.X = math.Atan2(m32, m22)
	}
	return e
}

// FaceTowards returns the orientation that points an object's +Z axis from
// `from` at `target`, with no roll. Coincident points yield the zero rotation.
func FaceTowards(from, target mgl64.Vec3) Euler {
	d := target.Sub(from)
	if d.Len() < Epsilon {
		return Euler{}
	}
	yaw := math.Atan2(d.X(), d.Z())
	pitch := math.Atan2(-d.Y(), math.Hypot(d.X(), d.Z()))
	q := mgl64.QuatRotate(yaw, AxisY).Mul(mgl64.QuatRotate(pitch, AxisX))
	return EulerFromQuat(q)
}

// Normalize returns v scaled to unit length, or the zero vector if v is degenerate.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b mgl64.Vec3) float64 { return b.Sub(a).Len() }

// ApproxEqual reports whether every component of a and b differs by at most
// eps. The tolerance is absolute.
func ApproxEqual(a, b mgl64.Vec3, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// IsOrigin reports whether v is the origin sentinel.
func IsOrigin(v mgl64.Vec3) bool { return v == Origin }
