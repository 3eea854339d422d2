// Package recouple computes recoupling coefficients between chain-coupled
// many-electron states: the shell-interaction analysis, the recursive
// decoupling engine, and the tensor reduction drivers AngularZ (one-body
// operator Z^k) and AngularZxZ0 (two-body scalar product Z^k · Z^k).
//
// 🚀 The problem
//
//	An N-shell configuration couples its shells in a fixed chain
//
//	  (((s0 s1)J1 s2)J2 … s{N−1})J
//
//	and a tensor operator acts on at most two (one-body) or four
//	(two-body) of those shells — the ones whose occupation differs
//	between bra and ket. Every other shell is a spectator. The matrix
//	element factorizes into
//
//	  (recoupling coefficient) × (single-shell reduced matrix elements)
//
//	and this package computes the first factor, per candidate tensor
//	rank, leaving the in-shell elements to the caller.
//
// ✨ How it works
//
//   - GetInteract compares bra and ket occupations, isolates the
//     interacting shells, fixes the canonical (ascending-position) order
//     and the fermion reordering phase, and caches the result per
//     shell-structure signature — thousands of basis-state pairs share one
//     signature.
//   - The decoupling engine walks the chain outermost-in: a spectator
//     shell comes off with one 6j weight; an interacting shell passes its
//     operator leg through one 9j node; the innermost position terminates
//     the walk. Each step is O(1), the whole reduction O(N) per rank.
//   - A Formula captures the walk symbolically, so one tree reduction per
//     coupling topology serves every numeric chain and every candidate
//     rank sharing it; the triad tables record the consumed momenta.
//   - AngularZ and AngularZxZ0 orchestrate the engine across the
//     interacting shells, fold in the tensor-swap and scalar-product
//     factors, and merge rank lists with SumCoeff.
//
// All state lives on a Session: the pattern cache, the formula cache and
// the maximum-rank cap. Sessions are safe for concurrent use; a lost cache
// race costs a recomputation, never a wrong answer.
//
// Phase convention (the one composition rule):
//
//	total sign = InteractDatum.Phase        (fermion crossings, analyzer)
//	           × SortShell permutation sign (leg reordering, drivers)
//	           × angular swap factors       (tensor algebra, internal)
//
// Doubled-integer angular momenta throughout; see package angular.
package recouple
