package arcball

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Identity is the rotation that leaves every vector unchanged.
var Identity = r3.Rotation{Real: 1}

// slerpEpsilon is the 1-cos(theta) below which slerp falls back to a linear
// blend, where sin(theta) is too small to divide by.
const slerpEpsilon = 1e-6

// clamp1 clamps v into [-1, 1] so acos and asin never see overshoot.
func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// Slerp spherically interpolates from a toward b by t along the shorter arc.
// The result is not renormalized; callers that need a unit quaternion
// normalize it themselves.
func Slerp(a, b r3.Rotation, t float64) r3.Rotation {
	qa, qb := quat.Number(a), quat.Number(b)

	cosom := qa.Real*qb.Real + qa.Imag*qb.Imag + qa.Jmag*qb.Jmag + qa.Kmag*qb.Kmag
	if cosom < 0 {
		cosom = -cosom
		qb = quat.Scale(-1, qb)
	}

	var s0, s1 float64
	if 1-cosom > slerpEpsilon {
		omega := math.Acos(clamp1(cosom))
		sinom := math.Sin(omega)
		s0 = math.Sin((1-t)*omega) / sinom
		s1 = math.Sin(t*omega) / sinom
	} else {
		s0 = 1 - t
		s1 = t
	}
	return r3.Rotation(quat.Add(quat.Scale(s0, qa), quat.Scale(s1, qb)))
}

// Normalize returns r scaled to unit length. A zero quaternion yields Identity.
func Normalize(r r3.Rotation) r3.Rotation {
	q := quat.Number(r)
	n := quat.Abs(q)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return Identity
	}
	return r3.Rotation(quat.Scale(1/n, q))
}

// Compose returns the rotation that applies b first and then a (a * b).
func Compose(a, b r3.Rotation) r3.Rotation {
	return r3.Rotation(quat.Mul(quat.Number(a), quat.Number(b)))
}

// Conjugate returns the inverse of a unit rotation.
func Conjugate(r r3.Rotation) r3.Rotation {
	return r3.Rotation(quat.Conj(quat.Number(r)))
}

// AxisAngle builds a rotation of angle radians around axis. The axis must
// already be a unit vector; no normalization happens here.
func AxisAngle(axis r3.Vec, angle float64) r3.Rotation {
	s, c := math.Sincos(angle / 2)
	return r3.Rotation{Real: c, Imag: s * axis.X, Jmag: s * axis.Y, Kmag: s * axis.Z}
}

// Angle returns the rotation angle of a unit quaternion in [0, 2π]. It is
// computed from the vector part, which stays accurate for tiny angles where
// 2·acos(w) loses precision.
func Angle(r r3.Rotation) float64 {
	return 2 * math.Atan2(math.Sqrt(r.Imag*r.Imag+r.Jmag*r.Jmag+r.Kmag*r.Kmag), r.Real)
}

// Norm returns the quaternion length of r.
func Norm(r r3.Rotation) float64 {
	return quat.Abs(quat.Number(r))
}

// AngleBetween returns the smallest rotation angle that takes a to b.
func AngleBetween(a, b r3.Rotation) float64 {
	d := Compose(b, Conjugate(a))
	return 2 * math.Atan2(math.Sqrt(d.Imag*d.Imag+d.Jmag*d.Jmag+d.Kmag*d.Kmag), math.Abs(d.Real))
}

// vecAngle returns the angle between two vectors given their cross product
// length.
func vecAngle(a, b r3.Vec, crossNorm float64) float64 {
	return math.Atan2(crossNorm, r3.Dot(a, b))
}

// isFinite reports whether every component of r is a finite number.
func isFinite(r r3.Rotation) bool {
	for _, v := range [4]float64{r.Real, r.Imag, r.Jmag, r.Kmag} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func vecFinite(v r3.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}
