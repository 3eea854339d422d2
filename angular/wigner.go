package angular

import "math"

// WignerEckartFactor computes the geometric prefactor of the Wigner–Eckart
// theorem,
//
//	(−1)^(jf−mf) · sqrt(2jf+1) · W3j(jf, k, ji; −mf, q, mi),
//
// relating the full matrix element of a rank-k tensor component to its
// reduced matrix element. All arguments doubled; returns 0.0 unless
// mi + q = mf and the triad (jf, k, ji) is triangular.
func WignerEckartFactor(jf, k, ji, mf, q, mi int) float64 {
	if !Triangle(jf, k, ji) {
		return 0.0
	}
	if mi+q-mf != 0 {
		return 0.0
	}

	r := math.Sqrt(float64(jf) + 1.0)
	if isOdd((jf - mf) / 2) {
		r = -r
	}

	return r * W3j(jf, k, ji, -mf, q, mi)
}

// ClebschGordan computes the Clebsch–Gordan coefficient
// <j1 m1, j2 m2 | jf mf> from the 3j symbol:
//
//	(−1)^(j1−j2+mf) · sqrt(2jf+1) · W3j(j1, j2, jf; m1, m2, −mf).
//
// All arguments doubled.
func ClebschGordan(j1, m1, j2, m2, jf, mf int) float64 {
	r := math.Sqrt(float64(jf)+1.0) * W3j(j1, j2, jf, m1, m2, -mf)
	if isOdd((j1 - j2 + mf) / 2) {
		r = -r
	}

	return r
}

// ReducedCL computes the reduced matrix element of the normalized spherical
// harmonics between relativistic orbitals, <ja || C^k || jb>:
//
//	(−1)^(ja+1/2) · sqrt((2ja+1)(2jb+1)) · W3j(ja, k, jb; 1/2, 0, −1/2).
//
// All arguments doubled. It does not check the parity selection rule on the
// orbital angular momenta; that is the caller's concern.
func ReducedCL(ja, k, jb int) float64 {
	r := math.Sqrt(float64(ja)+1.0) * math.Sqrt(float64(jb)+1.0) *
		W3j(ja, k, jb, 1, 0, -1)
	if isOdd((ja + 1) / 2) {
		r = -r
	}

	return r
}

// WignerDMatrix computes the rotation matrix element <j m|exp(−i·Jy·a)|j n>
// for a rotation angle a (radians); j2, m2, n2 are the doubled j, m, n.
//
// Finite sum over k with log-factorial weights; exact for all admissible
// doubled arguments.
func WignerDMatrix(a float64, j2, m2, n2 int) float64 {
	a *= 0.5
	kmin := maxInt(0, (m2+n2)/2)
	kmax := minInt((j2+m2)/2, (j2+n2)/2)
	ca := math.Cos(a)
	sa := math.Sin(a)

	var x float64
	for k := kmin; k <= kmax; k++ {
		b := math.Pow(ca, float64(2*k-(m2+n2)/2))
		b *= math.Pow(sa, float64(j2+(m2+n2)/2-2*k))
		c := LnFactorial(k)
		c += LnFactorial((j2+m2)/2 - k)
		c += LnFactorial((j2+n2)/2 - k)
		c += LnFactorial(k - (m2+n2)/2)
		b /= math.Exp(c)
		if isOdd(k) {
			b = -b
		}
		x += b
	}

	c := LnFactorial((j2 + m2) / 2)
	c += LnFactorial((j2 - m2) / 2)
	c += LnFactorial((j2 + n2) / 2)
	c += LnFactorial((j2 - n2) / 2)
	c = math.Exp(0.5 * c)
	if isOdd((j2 + m2) / 2) {
		c = -c
	}

	return x * c
}
