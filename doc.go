// Package recoupling computes angular-momentum recoupling coefficients for
// many-electron atomic states in jj coupling — the machinery every energy
// matrix element, transition rate and interaction strength of an atomic
// structure code is built on.
//
// 🚀 What is recoupling?
//
//	A pure-Go library that brings together:
//		• angular/  — Wigner 3j/6j/9j symbols, Clebsch–Gordan coefficients,
//		  Wigner–Eckart factors and the rotation d-matrix, all in the exact
//		  doubled-integer convention for half-integer momenta
//		• shell/    — relativistic subshells and chain-coupled shell states,
//		  the representation atomic configurations arrive in
//		• recouple/ — the core: interacting-shell analysis with a structural
//		  pattern cache, the recursive spectator-stripping formula engine,
//		  and the tensor reduction drivers AngularZ and AngularZxZ0
//
// ✨ Why choose recoupling?
//
//   - Exact half-integer arithmetic – every angular momentum is a doubled
//     integer; no floating-point j values anywhere in the bookkeeping
//   - Reusable symbolic formulas – one tree reduction per coupling topology,
//     cheap re-evaluation for every basis-state pair sharing that topology
//   - Session-scoped state – caches and the rank cap live on an explicit
//     Session, so independent workers never share hidden globals
//   - Pure Go – no cgo, no GSL, no hidden deps
//
// A one-body tensor operator can only connect configurations whose shell
// occupations differ in at most two places; a two-body operator in at most
// four. The analyzer finds those shells, the formula engine strips every
// spectator shell off the coupling chain with a 6j weight per step, and the
// residual two- or four-shell core resolves through a terminal 6j or 9j
// symbol. The result is a list of (rank, coefficient) pairs.
//
// Quick sketch of a coupling chain for four shells:
//
//	((s1 s2)J12 s3)J123 s4)J
//
// Strip s4 and s3 as spectators, and the matrix element of an operator
// acting on s1 and s2 reduces to two 6j factors times a terminal symbol.
//
// Dive into recouple/doc.go for the algorithm walkthrough and angular/doc.go
// for the symbol conventions.
//
//	go get github.com/atomkit/recoupling
package recoupling
