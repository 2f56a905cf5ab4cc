package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// minQuatScale bounds the denominator of the trace branches. Valid rotation
// submatrices keep it at or above 0.5.
const minQuatScale = 1e-6

// RotationToQuat converts a simulation rotation submatrix into the quaternion
// used by the transform system. The submatrix is treated as the upper-left
// block of a 3×3 rotation whose third diagonal entry is 1, so the result is a
// rotation about the plane normal: V[0] and V[1] are always zero.
//
// Input that is not a rotation never divides by zero. Where neither trace
// branch applies, the planar angle is recovered with atan2 and returned as a
// unit quaternion; non-finite entries map to the identity.
func RotationToQuat(m mgl32.Mat2) mgl32.Quat {
	// mgl32 matrices are column-major.
	m11, m21, m12, m22 := float64(m[0]), float64(m[1]), float64(m[2]), float64(m[3])
	for _, v := range [...]float64{m11, m21, m12, m22} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return mgl32.QuatIdent()
		}
	}

	trace := 1 + m11 + m22
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) / 2
		if s < minQuatScale {
			return planarQuat(m11, m21, m12, m22)
		}
		return quatWK(s, (m21-m12)/(4*s))
	case (m11 > m22 && m11 > 1) || m22 > 1:
		// Only reachable when a diagonal entry exceeds 1, which no rotation
		// produces.
		return planarQuat(m11, m21, m12, m22)
	default:
		s := math.Sqrt(2-m22-m11) / 2
		if s < minQuatScale {
			return planarQuat(m11, m21, m12, m22)
		}
		return quatWK((m21-m12)/(4*s), s)
	}
}

// planarQuat extracts the rotation angle of an arbitrary 2×2 matrix and
// returns the matching unit quaternion about the plane normal.
func planarQuat(m11, m21, m12, m22 float64) mgl32.Quat {
	y := m21 - m12
	x := m11 + m22
	if x == 0 && y == 0 {
		return mgl32.QuatIdent()
	}
	half := math.Atan2(y, x) / 2
	return quatWK(math.Cos(half), math.Sin(half))
}

func quatWK(w, k float64) mgl32.Quat {
	return mgl32.Quat{W: float32(w), V: mgl32.Vec3{0, 0, float32(k)}}
}

// PlanarAngle returns the rotation about the plane normal encoded by q, in
// radians within [0, 2π).
func PlanarAngle(q mgl32.Quat) float32 {
	a := 2 * math.Atan2(float64(q.V[2]), float64(q.W))
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return float32(a)
}

// AngleSubmatrix builds the rotation submatrix for angle radians.
func AngleSubmatrix(angle float64) mgl32.Mat2 {
	c, s := float32(math.Cos(angle)), float32(math.Sin(angle))
	return mgl32.Mat2{c, s, -s, c}
}
