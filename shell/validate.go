package shell

import (
	"fmt"

	"github.com/atomkit/recoupling/angular"
)

// ValidateChain checks that a coupling chain is internally consistent with
// its shell list: equal lengths, occupations within [0, 2j+1], and every
// chain node triangular — TotalJ[i] must couple from (TotalJ[i−1],
// ShellJ[i]), with TotalJ[0] == ShellJ[0].
//
// Returns nil on success; otherwise one of ErrChainLength, ErrOccupation,
// ErrChainCoupling wrapped with the offending position.
//
// Complexity: O(n) for n shells.
func ValidateChain(shells []Shell, states []State) error {
	if len(shells) != len(states) {
		return fmt.Errorf("%w: %d shells, %d states", ErrChainLength, len(shells), len(states))
	}

	for i, sh := range shells {
		if sh.NQ < 0 || sh.NQ > sh.MaxNQ() {
			return fmt.Errorf("%w: shell %d holds %d of %d", ErrOccupation, i, sh.NQ, sh.MaxNQ())
		}
		if i == 0 {
			if states[0].TotalJ != states[0].ShellJ {
				return fmt.Errorf("%w: node 0 total %d != shell %d",
					ErrChainCoupling, states[0].TotalJ, states[0].ShellJ)
			}

			continue
		}
		if !angular.Triangle(states[i-1].TotalJ, states[i].ShellJ, states[i].TotalJ) {
			return fmt.Errorf("%w: node %d (%d %d %d)", ErrChainCoupling,
				i, states[i-1].TotalJ, states[i].ShellJ, states[i].TotalJ)
		}
	}

	return nil
}

// Compatible checks that two shell sequences describe the same chain of
// subshells, position by position, ignoring occupation. A mismatch is a
// structural error (caller bug), not a physical selection rule.
func Compatible(bra, ket []Shell) error {
	if len(bra) != len(ket) {
		return fmt.Errorf("%w: %d vs %d shells", ErrStructure, len(bra), len(ket))
	}
	for i := range bra {
		if !bra[i].Same(ket[i]) {
			return fmt.Errorf("%w: position %d (%v vs %v)", ErrStructure, i, bra[i], ket[i])
		}
	}

	return nil
}
