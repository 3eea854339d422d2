package recouple

import (
	"fmt"
	"strings"

	"github.com/atomkit/recoupling/shell"
)

// GetInteract analyzes the shell structures of a bra and a ket
// configuration and determines whether an operator with the given body
// count can connect them.
//
// Returns:
//   - (datum, nil) when the states can interact: the operator legs in
//     canonical ascending-position order and the fermion-crossing phase;
//   - (nil, nil) when they cannot — more shells differ in occupation than
//     the operator allows. That is a definite physical zero, not an error;
//   - (nil, err) on a structural mismatch between the two shell sequences,
//     which is a caller bug (ErrStructure).
//
// twoBody selects the leg budget: two legs for a one-body operator, four
// for a two-body one.
//
// Side effect: the result is cached per shell-structure signature (shell
// quantum numbers plus the occupation-difference pattern), so every pair
// of basis states sharing the structure reuses one analysis.
func (s *Session) GetInteract(bra, ket *shell.Config, twoBody bool) (*InteractDatum, error) {
	if err := shell.Compatible(bra.Shells, ket.Shells); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStructure, err)
	}
	if len(bra.Shells) > MaxShells {
		return nil, fmt.Errorf("%w: %d shells (max %d)", ErrCapacity, len(bra.Shells), MaxShells)
	}

	key := signature(bra.Shells, ket.Shells, twoBody)
	if d, ok := s.lookupDatum(key); ok {
		return d, nil
	}

	d := interactingShells(bra.Shells, ket.Shells, twoBody)
	if d == nil {
		// Definite zeros are not cached: they are cheap to re-derive and
		// keeping them out bounds the pattern map by the interacting set.
		return nil, nil
	}

	return s.storeDatum(key, d), nil
}

// interactingShells performs the occupation-difference analysis on two
// compatible shell sequences. nil means the operator cannot connect them.
func interactingShells(bra, ket []shell.Shell, twoBody bool) *InteractDatum {
	maxLegs := 2
	if twoBody {
		maxLegs = 4
	}

	var creations, annihilations []int
	for i := range bra {
		switch d := bra[i].NQ - ket[i].NQ; {
		case d == 0:
			// spectator
		case d > 0 && d <= maxLegs/2:
			for c := 0; c < d; c++ {
				creations = append(creations, i)
			}
		case d < 0 && -d <= maxLegs/2:
			for c := 0; c < -d; c++ {
				annihilations = append(annihilations, i)
			}
		default:
			return nil
		}
	}

	if len(creations) != len(annihilations) || 2*len(creations) > maxLegs {
		return nil
	}

	d := &InteractDatum{
		Bra:     bra,
		NShells: len(bra),
		Phase:   crossingPhase(bra, ket, creations, annihilations),
	}
	// Canonical leg order: factor pairs (creation, annihilation) with
	// creations ascending and annihilations ascending.
	for p := range creations {
		d.Shells = append(d.Shells,
			FromShell(creations[p], bra[creations[p]], bra[creations[p]].NQ, ket[creations[p]].NQ),
			FromShell(annihilations[p], bra[annihilations[p]], bra[annihilations[p]].NQ, ket[annihilations[p]].NQ))
	}

	return d
}

// crossingPhase evaluates the sign of <bra| a†c1 a†c2 ãa2 ãa1 |ket> from
// fermion anticommutation alone: each operator, applied right to left,
// crosses every occupied inner shell once. Creations and annihilations
// arrive ascending by position.
func crossingPhase(bra, ket []shell.Shell, creations, annihilations []int) int {
	occ := make([]int, len(ket))
	for i := range ket {
		occ[i] = ket[i].NQ
	}

	exp := 0
	apply := func(p, delta int) {
		for i := 0; i < p; i++ {
			exp += occ[i]
		}
		occ[p] += delta
	}

	for i := 0; i < len(annihilations); i++ {
		apply(annihilations[i], -1)
	}
	for i := len(creations) - 1; i >= 0; i-- {
		apply(creations[i], +1)
	}

	if exp&1 == 1 {
		return -1
	}

	return 1
}

// signature builds the cache key of a (bra, ket) shell-structure pair:
// per position, the subshell identity and both occupations.
func signature(bra, ket []shell.Shell, twoBody bool) string {
	var b strings.Builder
	if twoBody {
		b.WriteByte('2')
	} else {
		b.WriteByte('1')
	}
	for i := range bra {
		fmt.Fprintf(&b, "|%d.%d.%d.%d", bra[i].N, bra[i].Kappa, bra[i].NQ, ket[i].NQ)
	}

	return b.String()
}
