package rigmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Identity returns the identity rotation.
func Identity() quat.Number {
	return quat.Number{Real: 1}
}

// IsIdentity reports whether q leaves every vector unchanged, within tol.
func IsIdentity(q quat.Number, tol float64) bool {
	return math.Abs(math.Abs(q.Real)-1) <= tol &&
		math.Abs(q.Imag) <= tol && math.Abs(q.Jmag) <= tol && math.Abs(q.Kmag) <= tol
}

// Normalize returns q scaled to unit length. A zero quaternion becomes the
// identity.
func Normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n <= Epsilon || math.IsNaN(n) {
		return Identity()
	}
	return quat.Scale(1/n, q)
}

// Mul composes rotations: the result applies b first, then a.
func Mul(a, b quat.Number) quat.Number {
	return quat.Mul(a, b)
}

// Inverse returns the inverse of the unit rotation q.
func Inverse(q quat.Number) quat.Number {
	return quat.Conj(q)
}

// Rotate applies q to v.
func Rotate(q quat.Number, v r3.Vec) r3.Vec {
	return r3.Rotation(q).Rotate(v)
}

// AxisAngle returns the rotation of angle radians about axis. A zero axis
// yields the identity.
func AxisAngle(axis r3.Vec, angle float64) quat.Number {
	axis = NormalizeOrZero(axis)
	if IsZero(axis) || angle == 0 {
		return Identity()
	}
	return quat.Number(r3.NewRotation(angle, axis))
}

// ToAxisAngle decomposes the unit rotation q. The identity returns the Y
// axis with a zero angle.
func ToAxisAngle(q quat.Number) (r3.Vec, float64) {
	q = Normalize(q)
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	s := math.Sqrt(1 - q.Real*q.Real)
	if s <= Epsilon {
		return UnitY, 0
	}
	axis := r3.Vec{X: q.Imag / s, Y: q.Jmag / s, Z: q.Kmag / s}
	return axis, 2 * math.Acos(Clamp(q.Real, -1, 1))
}

// RotationArc returns the shortest rotation taking the unit vector from onto
// the unit vector to. Antiparallel inputs rotate half a turn about an
// arbitrary axis orthogonal to from.
func RotationArc(from, to r3.Vec) quat.Number {
	d := r3.Dot(from, to)
	if d >= 1-1e-12 {
		return Identity()
	}
	if d <= -1+1e-6 {
		axis := r3.Cross(UnitX, from)
		if r3.Norm2(axis) < 1e-12 {
			axis = r3.Cross(UnitY, from)
		}
		return AxisAngle(axis, math.Pi)
	}
	c := r3.Cross(from, to)
	return Normalize(quat.Number{Real: 1 + d, Imag: c.X, Jmag: c.Y, Kmag: c.Z})
}

// Up returns the rotated +Y axis.
func Up(q quat.Number) r3.Vec { return Rotate(q, UnitY) }

// Down returns the rotated -Y axis.
func Down(q quat.Number) r3.Vec { return Rotate(q, NegUnitY) }

// Right returns the rotated +X axis.
func Right(q quat.Number) r3.Vec { return Rotate(q, UnitX) }

// Forward returns the rotated -Z axis.
func Forward(q quat.Number) r3.Vec { return Rotate(q, r3.Vec{Z: -1}) }

// LookRotation returns the orientation whose forward (-Z) axis points along
// forward and whose up axis lies in the plane of forward and up. When the
// two are parallel a fallback up axis is chosen.
func LookRotation(forward, up r3.Vec) quat.Number {
	f := NormalizeOrZero(forward)
	if IsZero(f) {
		return Identity()
	}
	r := NormalizeOrZero(r3.Cross(f, up))
	if IsZero(r) {
		r = NormalizeOrZero(r3.Cross(f, UnitZ))
		if IsZero(r) {
			r = NormalizeOrZero(r3.Cross(f, UnitX))
		}
	}
	u := r3.Cross(r, f)
	b := r3.Scale(-1, f)
	return fromBasis(r, u, b)
}

// fromBasis converts the orthonormal columns x, y, z of a rotation matrix
// into a quaternion.
func fromBasis(x, y, z r3.Vec) quat.Number {
	m00, m01, m02 := x.X, y.X, z.X
	m10, m11, m12 := x.Y, y.Y, z.Y
	m20, m21, m22 := x.Z, y.Z, z.Z

	var q quat.Number
	switch trace := m00 + m11 + m22; {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		q = quat.Number{Real: 0.25 * s, Imag: (m21 - m12) / s, Jmag: (m02 - m20) / s, Kmag: (m10 - m01) / s}
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		q = quat.Number{Real: (m21 - m12) / s, Imag: 0.25 * s, Jmag: (m01 + m10) / s, Kmag: (m02 + m20) / s}
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		q = quat.Number{Real: (m02 - m20) / s, Imag: (m01 + m10) / s, Jmag: 0.25 * s, Kmag: (m12 + m21) / s}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		q = quat.Number{Real: (m10 - m01) / s, Imag: (m02 + m20) / s, Jmag: (m12 + m21) / s, Kmag: 0.25 * s}
	}
	return Normalize(q)
}
