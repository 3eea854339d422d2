// Package shell defines the configuration-side input types the recoupling
// core consumes: relativistic electron subshells and the chain-coupled
// shell states that carry a configuration's angular-momentum bookkeeping.
//
// 🚀 Representation
//
//	A Shell is identified by its principal quantum number n and the
//	relativistic angular quantum number κ, which encodes both j and l:
//
//	  κ > 0  →  j = κ − 1/2,  l = κ
//	  κ < 0  →  j = −κ − 1/2, l = −κ − 1
//
//	A configuration couples its shells in a fixed chain: shell 0 first,
//	then each further shell onto the running intermediate momentum:
//
//	  (((s0 s1)J1 s2)J2 … s{N−1})J{N−1}
//
//	State records one node of that chain — the shell's own coupled
//	momentum ShellJ, the intermediate TotalJ after coupling it, and a
//	seniority tag Nu. States are ordered innermost (index 0) outward;
//	the last TotalJ is the configuration's total angular momentum.
//
// All angular momenta are doubled integers (see package angular).
//
// ✨ Guarantees
//
//   - Shell and State are immutable value types
//   - ValidateChain fails fast on a triangle-inconsistent chain instead of
//     letting a malformed configuration reach the recoupling engine
//   - Compatible distinguishes a legitimate occupation difference from a
//     structural mismatch between two shell sequences
package shell
