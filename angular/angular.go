package angular

import "math"

// lnZero stands in for ln(0) in log-space accumulation; matches the
// convention of the reference implementation this package follows.
const lnZero = -100.0

// LnFactorial returns ln(n!), with ln(0!) = 0.
//
// Complexity: O(1) via the log-gamma function.
func LnFactorial(n int) float64 {
	if n <= 0 {
		return 0.0
	}
	v, _ := math.Lgamma(float64(n) + 1.0)

	return v
}

// LnInteger returns ln(n), with the ln(0) placeholder lnZero so that
// exponentiating a sum containing it yields a numeric zero.
func LnInteger(n int) float64 {
	if n == 0 {
		return lnZero
	}

	return math.Log(float64(n))
}

// Triangle reports whether three angular momenta (doubled) satisfy the
// triangular relation |j2−j3| ≤ j1 ≤ j2+j3.
//
// Note: Triangle does not check the integer-perimeter (parity) rule;
// the symbol evaluators do, returning 0.0 for parity-forbidden triads.
func Triangle(j1, j2, j3 int) bool {
	d := j2 - j3
	if d < 0 {
		d = -d
	}

	return j1 >= d && j1 <= j2+j3
}

// triadOK reports whether (j1, j2, j3) is a fully admissible coupling
// triad: triangular and with an even doubled perimeter.
func triadOK(j1, j2, j3 int) bool {
	return Triangle(j1, j2, j3) && !isOdd(j1+j2+j3)
}

// lnDelta returns ln Δ(j1 j2 j3), the triangle coefficient of the Racah
// closed forms, for an admissible triad (doubled arguments).
func lnDelta(j1, j2, j3 int) float64 {
	return LnFactorial((j1+j2-j3)/2) +
		LnFactorial((j1-j2+j3)/2) +
		LnFactorial((-j1+j2+j3)/2) -
		LnFactorial((j1+j2+j3)/2+1)
}

// W3j computes the Wigner 3j symbol
//
//	( j1 j2 j3 )
//	( m1 m2 m3 )
//
// with all six arguments doubled. Returns exactly 0.0 for any selection-rule
// violation (m1+m2+m3 ≠ 0, triangle failure, |m| > j, or parity mismatch).
//
// Closed form: the Racah single-sum expression with log-factorial
// accumulation. Complexity: O(j) for the alternating sum.
func W3j(j1, j2, j3, m1, m2, m3 int) float64 {
	if m1+m2+m3 != 0 {
		return 0.0
	}
	if !triadOK(j1, j2, j3) {
		return 0.0
	}
	if absInt(m1) > j1 || absInt(m2) > j2 || absInt(m3) > j3 {
		return 0.0
	}
	// m must carry the same half-integer character as j.
	if isOdd(j1+m1) || isOdd(j2+m2) || isOdd(j3+m3) {
		return 0.0
	}

	// Alternating-sum bounds, all exact integers for admissible input.
	kmin := maxInt(0, maxInt((j2-j3-m1)/2, (j1-j3+m2)/2))
	kmax := minInt((j1+j2-j3)/2, minInt((j1-m1)/2, (j2+m2)/2))
	if kmin > kmax {
		return 0.0
	}

	// Log-space prefactor: sqrt(Δ · Π (j±m)!).
	pref := 0.5 * (lnDelta(j1, j2, j3) +
		LnFactorial((j1+m1)/2) + LnFactorial((j1-m1)/2) +
		LnFactorial((j2+m2)/2) + LnFactorial((j2-m2)/2) +
		LnFactorial((j3+m3)/2) + LnFactorial((j3-m3)/2))

	var sum float64
	for k := kmin; k <= kmax; k++ {
		ln := LnFactorial(k) +
			LnFactorial((j1+j2-j3)/2-k) +
			LnFactorial((j1-m1)/2-k) +
			LnFactorial((j2+m2)/2-k) +
			LnFactorial((j3-j2+m1)/2+k) +
			LnFactorial((j3-j1-m2)/2+k)
		term := math.Exp(pref - ln)
		if isOdd(k) {
			term = -term
		}
		sum += term
	}
	if isOdd((j1 - j2 - m3) / 2) {
		sum = -sum
	}

	return sum
}

// W6j computes the Wigner 6j symbol
//
//	{ j1 j2 j3 }
//	{ i1 i2 i3 }
//
// with all six arguments doubled. Returns exactly 0.0 when any of the four
// coupling triads is forbidden.
//
// Closed form: Racah's single-sum formula. Complexity: O(j).
func W6j(j1, j2, j3, i1, i2, i3 int) float64 {
	if !triadOK(j1, j2, j3) || !triadOK(j1, i2, i3) ||
		!triadOK(i1, j2, i3) || !triadOK(i1, i2, j3) {
		return 0.0
	}

	t1 := (j1 + j2 + j3) / 2
	t2 := (j1 + i2 + i3) / 2
	t3 := (i1 + j2 + i3) / 2
	t4 := (i1 + i2 + j3) / 2
	t5 := (j1 + j2 + i1 + i2) / 2
	t6 := (j2 + j3 + i2 + i3) / 2
	t7 := (j1 + j3 + i1 + i3) / 2

	kmin := maxInt(maxInt(t1, t2), maxInt(t3, t4))
	kmax := minInt(t5, minInt(t6, t7))
	if kmin > kmax {
		return 0.0
	}

	pref := 0.5 * (lnDelta(j1, j2, j3) + lnDelta(j1, i2, i3) +
		lnDelta(i1, j2, i3) + lnDelta(i1, i2, j3))

	var sum float64
	for k := kmin; k <= kmax; k++ {
		ln := LnFactorial(k-t1) + LnFactorial(k-t2) +
			LnFactorial(k-t3) + LnFactorial(k-t4) +
			LnFactorial(t5-k) + LnFactorial(t6-k) + LnFactorial(t7-k)
		term := math.Exp(pref + LnFactorial(k+1) - ln)
		if isOdd(k) {
			term = -term
		}
		sum += term
	}

	return sum
}

// W6jTriangle reports whether the 6j symbol is permitted by the four
// triangular constraints on its coupling triads.
func W6jTriangle(j1, j2, j3, i1, i2, i3 int) bool {
	return Triangle(j1, j2, j3) &&
		Triangle(j1, i2, i3) &&
		Triangle(i1, j2, i3) &&
		Triangle(i1, i2, j3)
}

// W9j computes the Wigner 9j symbol
//
//	{ j1 j2 j3 }
//	{ i1 i2 i3 }
//	{ k1 k2 k3 }
//
// with all nine arguments doubled, as the standard single sum over an
// intermediate momentum of triple 6j products. Returns exactly 0.0 when any
// row or column triad is forbidden.
//
// Complexity: O(j) terms, each an O(j) 6j evaluation.
func W9j(j1, j2, j3, i1, i2, i3, k1, k2, k3 int) float64 {
	if !W9jTriangle(j1, j2, j3, i1, i2, i3, k1, k2, k3) {
		return 0.0
	}

	xmin := maxInt(absInt(j1-k3), maxInt(absInt(j2-i3), absInt(i1-k2)))
	xmax := minInt(j1+k3, minInt(j2+i3, i1+k2))

	var sum float64
	for x := xmin; x <= xmax; x += 2 {
		term := float64(x+1) *
			W6j(j1, j2, j3, i3, k3, x) *
			W6j(i1, i2, i3, j2, x, k2) *
			W6j(k1, k2, k3, x, j1, i1)
		if isOdd(x) {
			term = -term
		}
		sum += term
	}

	return sum
}

// W9jTriangle reports whether the 9j symbol is allowed by the triangular
// constraints of its three row triads and three column triads.
func W9jTriangle(j1, j2, j3, i1, i2, i3, k1, k2, k3 int) bool {
	return Triangle(j1, j2, j3) &&
		Triangle(i1, i2, i3) &&
		Triangle(k1, k2, k3) &&
		Triangle(j1, i1, k1) &&
		Triangle(j2, i2, k2) &&
		Triangle(j3, i3, k3)
}

// isOdd reports the parity of x; correct for negative x as well.
func isOdd(x int) bool { return x&1 == 1 }

func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
