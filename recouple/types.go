package recouple

import (
	"fmt"

	"github.com/atomkit/recoupling/shell"
)

const (
	// MaxShells is the hard cap on coupling-chain length. Chains are sized
	// dynamically; the cap only guards against malformed input, and
	// exceeding it fails with ErrCapacity rather than truncating.
	MaxShells = 64

	// MaxInteract is the largest number of operator legs any supported
	// operator carries: four, for a two-body tensor product.
	MaxInteract = 4

	// DefaultMaxRank is the default cap on candidate tensor ranks,
	// doubled. Rank enumeration in the drivers never exceeds it.
	DefaultMaxRank = 20

	// rankSlot marks a symbolic rank inside a Formula: the position is
	// filled with the candidate rank at evaluation time.
	rankSlot = -1
)

// InteractShell describes one shell that participates in an operator's
// action: its position in the coupling chain, its quantum numbers, and its
// occupation in the bra and ket states independently.
type InteractShell struct {
	// Index is the shell's position within the coupling chain, innermost
	// first.
	Index int
	// N is the principal quantum number.
	N int
	// J is the doubled total angular momentum of the subshell.
	J int
	// KL is the doubled orbital angular momentum.
	KL int
	// Kappa is the relativistic angular quantum number.
	Kappa int
	// NQBra and NQKet are the shell's occupation numbers in the bra and
	// the ket state.
	NQBra int
	NQKet int
}

// FromShell builds an InteractShell for the subshell sh at chain position
// idx, with the given bra/ket occupations.
func FromShell(idx int, sh shell.Shell, nqBra, nqKet int) InteractShell {
	return InteractShell{
		Index: idx,
		N:     sh.N,
		J:     sh.J(),
		KL:    sh.L(),
		Kappa: sh.Kappa,
		NQBra: nqBra,
		NQKet: nqKet,
	}
}

// Compact renders the shell as a short printable code n[l]j±, used in
// cache keys and diagnostics.
func (s InteractShell) Compact() string {
	d := '-'
	if s.NQBra > s.NQKet {
		d = '+'
	} else if s.NQBra == s.NQKet {
		d = '='
	}

	return fmt.Sprintf("%d.%d.%d%c", s.N, s.Kappa, s.Index, d)
}

// InteractDatum is the cached outcome of one shell-interaction analysis:
// the interacting shells in canonical (ascending-index) order, the shell
// count of the bra state, and the fermion-crossing phase. One datum serves
// every pair of basis states sharing the same shell-structure signature.
type InteractDatum struct {
	// Bra is the shell structure of the bra state.
	Bra []shell.Shell
	// Shells lists the operator legs: for a one-body operator the
	// creation-side shell then the annihilation-side shell; for a two-body
	// operator the legs of the first tensor factor (creation, annihilation)
	// followed by the legs of the second.
	Shells []InteractShell
	// NShells is the number of shells in the bra state.
	NShells int
	// Phase is ±1: the sign from anticommuting the operator legs through
	// the occupied spectator shells into canonical position order.
	Phase int
}

// RankCoeff is one (rank, coefficient) pair of a reduction result. K is the
// doubled tensor rank.
type RankCoeff struct {
	K     int
	Coeff float64
}

// RankCoeffList is an ordered collection of rank-coefficient pairs, sorted
// ascending by rank. Ranks may repeat across intermediate merges; Add sums
// coefficients of matching ranks.
type RankCoeffList []RankCoeff

// Get returns the coefficient at rank k and whether the rank is present.
func (l RankCoeffList) Get(k int) (float64, bool) {
	for _, rc := range l {
		if rc.K == k {
			return rc.Coeff, true
		}
	}

	return 0, false
}

// Add sums c into the entry of rank k, inserting the rank in ascending
// order if absent, and returns the updated list.
func (l RankCoeffList) Add(k int, c float64) RankCoeffList {
	for i := range l {
		if l[i].K == k {
			l[i].Coeff += c

			return l
		}
		if l[i].K > k {
			l = append(l, RankCoeff{})
			copy(l[i+1:], l[i:])
			l[i] = RankCoeff{K: k, Coeff: c}

			return l
		}
	}

	return append(l, RankCoeff{K: k, Coeff: c})
}

// Ranks returns the doubled ranks present, in list order.
func (l RankCoeffList) Ranks() []int {
	ks := make([]int, len(l))
	for i, rc := range l {
		ks[i] = rc.K
	}

	return ks
}

// Coeffs returns the coefficients, in list order. The slice is a copy.
func (l RankCoeffList) Coeffs() []float64 {
	cs := make([]float64, len(l))
	for i, rc := range l {
		cs[i] = rc.Coeff
	}

	return cs
}

// Prune drops entries whose coefficient magnitude is below eps and
// returns the compacted list.
func (l RankCoeffList) Prune(eps float64) RankCoeffList {
	out := l[:0]
	for _, rc := range l {
		if rc.Coeff > eps || rc.Coeff < -eps {
			out = append(out, rc)
		}
	}

	return out
}
