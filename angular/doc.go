// Package angular provides the elementary angular-momentum coupling
// primitives: Wigner 3j/6j/9j symbols, Clebsch–Gordan coefficients, the
// geometric Wigner–Eckart factor, the reduced matrix element of the
// normalized spherical harmonics, and the Wigner rotation d-matrix.
//
// 🚀 Conventions
//
//	Every angular-momentum argument is TWICE its actual value, so that
//	half-integer momenta are represented exactly by integers:
//
//	  j = 1/2  →  1
//	  j = 1    →  2
//	  j = 5/2  →  5
//
//	Projections (m values) follow the same doubling. Phases of the form
//	(−1)^(j1+j2+…) are evaluated as the parity of (d1+d2+…)/2, which is
//	an exact integer whenever the corresponding triangle rules hold.
//
// ✨ Guarantees
//
//   - Every function is pure and total over admissible inputs
//   - Triangle-forbidden or parity-forbidden combinations return exactly 0.0,
//     never an error
//   - All factorial-heavy closed forms accumulate in log space
//     (LnFactorial) to stay finite for large momenta
//
// The closed forms are the standard Racah expressions: the 3j and 6j
// symbols as single alternating factorial sums, the 9j symbol as a sum of
// triple 6j products over one intermediate momentum.
//
// Performance: each symbol is O(j) in the summation range; no allocation.
package angular
