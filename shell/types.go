package shell

import "fmt"

// Shell is one relativistic electron subshell of a configuration.
// Immutable once constructed.
type Shell struct {
	// N is the principal quantum number (n ≥ 1).
	N int
	// Kappa is the relativistic angular quantum number κ (κ ≠ 0).
	Kappa int
	// NQ is the occupation number of the subshell.
	NQ int
}

// J returns the doubled total angular momentum of the subshell:
// 2j = 2|κ| − 1.
func (s Shell) J() int {
	k := s.Kappa
	if k < 0 {
		k = -k
	}

	return 2*k - 1
}

// L returns the doubled orbital angular momentum of the subshell:
// 2l = 2κ for κ > 0, 2(−κ−1) for κ < 0.
func (s Shell) L() int {
	if s.Kappa > 0 {
		return 2 * s.Kappa
	}

	return 2 * (-s.Kappa - 1)
}

// MaxNQ returns the closed-subshell occupation 2j+1.
func (s Shell) MaxNQ() int { return s.J() + 1 }

// Same reports whether two shells are the same subshell (n, κ), ignoring
// occupation.
func (s Shell) Same(t Shell) bool { return s.N == t.N && s.Kappa == t.Kappa }

// String renders the shell as n[κ]^nq, e.g. "2[-2]^1" for a 2p3/2 electron.
func (s Shell) String() string {
	return fmt.Sprintf("%d[%d]^%d", s.N, s.Kappa, s.NQ)
}

// State is one node of a configuration's coupling chain.
type State struct {
	// ShellJ is the doubled angular momentum of the shell's own coupled
	// many-electron state.
	ShellJ int
	// TotalJ is the doubled intermediate angular momentum of the chain
	// after this shell has been coupled on.
	TotalJ int
	// Nu is the seniority tag distinguishing states of equal ShellJ.
	Nu int
}

// Config is the minimal configuration carrier the recoupling core consumes:
// an ordered shell list, innermost first.
type Config struct {
	Shells []Shell
}

// TotalJ returns the doubled total angular momentum of a coupling chain,
// or 0 for an empty chain.
func TotalJ(states []State) int {
	if len(states) == 0 {
		return 0
	}

	return states[len(states)-1].TotalJ
}
