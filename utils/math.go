package utils

import "math"

/*
	Symmetric 3x3 tensors are stored in compact form:
		[xx, yy, zz, xy, yz, xz]
	matching the storage of anisotropic diffusivities and of the Reynolds
	stress components. Full 3x3 tensors are stored row-major [9]float64.
*/

// RInfinite stands in for "effectively infinite" in exchange coefficients;
// dividing by (hint + RInfinite) drives the Robin form to strong Dirichlet.
const RInfinite = 1.e30

// Epzero is the relative round-off guard used by the clipping paths.
const Epzero = 1.e-12

// IsInfinite reports whether v carries the RInfinite sentinel (or larger).
func IsInfinite(v float64) bool {
	return v >= 0.5*RInfinite
}

func Dot3(u, v [3]float64) float64 {
	return u[0]*v[0] + u[1]*v[1] + u[2]*v[2]
}

func Norm3(u [3]float64) float64 {
	return math.Sqrt(Dot3(u, u))
}

func Cross3(u, v [3]float64) (w [3]float64) {
	w[0] = u[1]*v[2] - u[2]*v[1]
	w[1] = u[2]*v[0] - u[0]*v[2]
	w[2] = u[0]*v[1] - u[1]*v[0]
	return
}

// Sym33Vec3 computes w = S·v for a compact symmetric tensor S.
func Sym33Vec3(s [6]float64, v [3]float64) (w [3]float64) {
	w[0] = s[0]*v[0] + s[3]*v[1] + s[5]*v[2]
	w[1] = s[3]*v[0] + s[1]*v[1] + s[4]*v[2]
	w[2] = s[5]*v[0] + s[4]*v[1] + s[2]*v[2]
	return
}

// Sym33Inv inverts a compact symmetric tensor via its cofactors.
func Sym33Inv(s [6]float64) (inv [6]float64) {
	var m [6]float64
	m[0] = s[1]*s[2] - s[4]*s[4]
	m[1] = s[0]*s[2] - s[5]*s[5]
	m[2] = s[0]*s[1] - s[3]*s[3]
	m[3] = s[4]*s[5] - s[3]*s[2]
	m[4] = s[3]*s[5] - s[0]*s[4]
	m[5] = s[3]*s[4] - s[1]*s[5]
	invdet := 1.0 / (s[0]*m[0] + s[3]*m[3] + s[5]*m[5])
	for i := 0; i < 6; i++ {
		inv[i] = m[i] * invdet
	}
	return
}

// Sym33Diag builds the isotropic compact tensor v·I.
func Sym33Diag(v float64) [6]float64 {
	return [6]float64{v, v, v, 0, 0, 0}
}

// TangentOf returns two unit tangents completing n to an orthonormal frame.
func TangentOf(n [3]float64) (t1, t2 [3]float64) {
	// Pick a seed axis not aligned with n
	seed := [3]float64{1, 0, 0}
	if math.Abs(n[0]) >= math.Abs(n[1]) && math.Abs(n[0]) >= math.Abs(n[2]) {
		seed = [3]float64{0, 1, 0}
	}
	t1 = Cross3(n, seed)
	oon := 1.0 / Norm3(t1)
	for i := 0; i < 3; i++ {
		t1[i] *= oon
	}
	t2 = Cross3(n, t1)
	return
}

func MinF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func MaxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
