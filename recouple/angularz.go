package recouple

import (
	"fmt"
	"math"

	"github.com/atomkit/recoupling/angular"
	"github.com/atomkit/recoupling/shell"
)

// AngularZ computes the recoupling coefficients of the one-body tensor
// operator Z^k = [a†(s1) ⊗ ã(s2)]^k between two chain-coupled states, for
// every candidate doubled rank k admitted by the leg momenta, the total
// angular momenta and the session's rank cap.
//
// The returned coefficients multiply the single-shell reduced matrix
// elements of the creation leg on s1 and the annihilation leg on s2 (the
// caller evaluates those); ranks with a zero coefficient are absent from
// the list. The fermion-crossing phase of the interaction datum is NOT
// folded in — see the package phase convention.
//
// Errors: ErrStructure on mismatched chains, ErrCapacity past MaxShells,
// ErrShellIndex for a leg outside the chain.
//
// Complexity: one O(n) formula build per topology (cached on the session),
// then O(n) symbol evaluations per candidate rank.
func (se *Session) AngularZ(bra, ket []shell.State, s1, s2 InteractShell) (RankCoeffList, error) {
	n := len(bra)
	if err := checkDriver(bra, ket, s1.Index, s2.Index); err != nil {
		return nil, err
	}

	jb, jk := shell.TotalJ(bra), shell.TotalJ(ket)
	klo := maxj(absj(s1.J-s2.J), absj(jb-jk))
	khi := minj(s1.J+s2.J, minj(jb+jk, se.MaxRank()))

	var list RankCoeffList
	if klo > khi {
		return list, nil
	}

	var (
		pos, legs, segs []int
		swapped         bool
	)
	if s1.Index == s2.Index {
		// Diagonal: both legs on one shell form a composite of rank k.
		pos = []int{s1.Index}
		legs = []int{rankSlot}
		segs = []int{rankSlot, 0}
	} else {
		lo, hi := s1, s2
		if s2.Index < s1.Index {
			lo, hi = s2, s1
			// Chain order couples [ã ⊗ a†]^k; restoring the canonical
			// [a† ⊗ ã]^k order costs (−1)^(j1+j2−k).
			swapped = true
		}
		pos = []int{hi.Index, lo.Index}
		legs = []int{hi.J, lo.J}
		segs = []int{rankSlot, lo.J, 0}
	}

	f := se.formula(formulaKey(n, pos, legs, segs), func() *Formula {
		return buildFormula(n, pos, legs, segs)
	})

	for k := klo; k <= khi; k += 2 {
		c := f.Eval(bra, ket, k)
		if c == 0 {
			continue
		}
		if swapped {
			c *= halfSign(s1.J + s2.J - k)
		}
		list = list.Add(k, c)
	}

	return list, nil
}

// SumCoeff merges src into dst through the tensor-leg exchange kernel: for
// every destination rank K and source rank K',
//
//	dst[K] += phase · (−1)^((K+K')/2) · √((K+1)(K'+1)) ·
//	          {j1 j2 K; j3 j4 K'} · src[K']
//
// (all momenta doubled), where j1..j4 are the four single-particle momenta
// whose final coupling is being recombined. Destination ranks outside
// every kernel triangle pass through unchanged. Returns the updated dst.
//
// The kernel is symmetric under exchanging the two lists together with
// j1 ↔ j3, which is the commutativity the tests pin down.
func SumCoeff(dst, src RankCoeffList, phase int, j1, j2, j3, j4 int) RankCoeffList {
	for i := range dst {
		k := dst[i].K
		var acc float64
		for _, rc := range src {
			x := angular.W6j(j1, j2, k, j3, j4, rc.K)
			if x == 0 {
				continue
			}
			x *= math.Sqrt(float64(k+1) * float64(rc.K+1))
			x *= halfSign(k + rc.K)
			acc += x * rc.Coeff
		}
		dst[i].Coeff += float64(phase) * acc
	}

	return dst
}

// checkDriver validates the chain pair and leg positions shared by the
// reduction drivers.
func checkDriver(bra, ket []shell.State, pos ...int) error {
	n := len(bra)
	if n == 0 || n != len(ket) {
		return fmt.Errorf("%w: %d bra vs %d ket states", ErrStructure, n, len(ket))
	}
	if n > MaxShells {
		return fmt.Errorf("%w: %d shells (max %d)", ErrCapacity, n, MaxShells)
	}
	for _, p := range pos {
		if p < 0 || p >= n {
			return fmt.Errorf("%w: position %d of %d", ErrShellIndex, p, n)
		}
	}

	return nil
}

// halfSign returns (−1)^(e/2) for an even doubled exponent e.
func halfSign(e int) float64 {
	if (e/2)&1 == 1 {
		return -1
	}

	return 1
}

func absj(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

func minj(a, b int) int {
	if a < b {
		return a
	}

	return b
}

func maxj(a, b int) int {
	if a > b {
		return a
	}

	return b
}
