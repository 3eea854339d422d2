package recouple

import (
	"fmt"
	"math"
	"sync"

	"github.com/atomkit/recoupling/angular"
	"github.com/atomkit/recoupling/shell"
)

// Triad is one triple of doubled angular momenta consumed by an elementary
// 6j/9j recoupling step: the shell's own momentum, the intermediate before
// the step, and the intermediate after it.
type Triad [3]int

// stepKind discriminates the elementary operations of a decoupling walk.
type stepKind uint8

const (
	// stepStrip removes one spectator shell with a 6j weight.
	stepStrip stepKind = iota
	// stepNode passes one operator leg through a 9j node.
	stepNode
	// stepOrigin terminates the walk at chain position 0.
	stepOrigin
)

// planStep is one symbolic step of a Formula: positions and ranks only,
// no numeric momenta. A rank of rankSlot is substituted with the candidate
// rank at evaluation time.
type planStep struct {
	kind     stepKind
	pos      int
	seg      int  // rank carried by the chain above pos
	below    int  // rank below a node step
	leg      int  // operator-leg rank at a node or origin step
	hasLeg   bool // origin step carries an operator leg
	legAbove bool // origin step closes a passive region below the legs
}

// Formula is the symbolic recoupling plan for one coupling-chain topology:
// which positions are free (spectators, stripped) versus fixed
// (interacting), in which order they are consumed, and which rank flows
// through each chain segment. One Formula serves every numeric chain and
// every candidate rank sharing the topology; only the terminal symbol
// values differ between evaluations.
type Formula struct {
	// NShells and NInteract describe the topology size.
	NShells   int
	NInteract int
	// Free flags spectator positions; fixed positions carry operator legs.
	Free []bool
	// Order is the consumption order of chain positions, outermost first.
	Order []int
	// Interact lists the interacting positions, descending.
	Interact []int
	// Ranks lists the candidate doubled ranks of the last evaluation.
	Ranks []int
	// Tr1 and Tr2 are the bra- and ket-side triad tables: per step, the
	// momenta entering the elementary recoupling. Filled by the first
	// evaluation and sealed afterwards.
	Tr1, Tr2 []Triad
	// Coeff and Phase accumulate the result of the last evaluation at the
	// last candidate rank: Coeff = |value|-bearing product, Phase = the
	// net sign exponent parity folded into it.
	Coeff float64
	Phase int

	mu     sync.Mutex
	steps  []planStep
	sealed bool
}

// buildFormula lays out the symbolic walk for a chain of n shells with
// operator legs at pos (descending), leg ranks legs (parallel to pos), and
// segment ranks segs (len(pos)+1 entries: segs[t] above pos[t], the last
// always 0). Ranks may be rankSlot to defer to the candidate rank.
func buildFormula(n int, pos, legs, segs []int) *Formula {
	f := &Formula{
		NShells:   n,
		NInteract: len(pos),
		Free:      make([]bool, n),
		Interact:  append([]int(nil), pos...),
	}
	for i := range f.Free {
		f.Free[i] = !isPresent(i, pos)
	}

	t := 0
	for i := n - 1; i > 0; i-- {
		f.Order = append(f.Order, i)
		if t < len(pos) && i == pos[t] {
			f.steps = append(f.steps, planStep{
				kind: stepNode, pos: i, seg: segs[t], below: segs[t+1], leg: legs[t],
			})
			t++

			continue
		}
		f.steps = append(f.steps, planStep{kind: stepStrip, pos: i, seg: segs[t]})
	}
	f.Order = append(f.Order, 0)
	org := planStep{kind: stepOrigin, pos: 0}
	if t < len(pos) {
		// Position 0 carries a leg; the arriving segment rank must match it.
		org.seg = segs[t]
		org.leg = legs[t]
		org.hasLeg = true
	} else {
		org.legAbove = len(pos) > 0
	}
	f.steps = append(f.steps, org)

	return f
}

// key is the cache key of the topology: sizes, positions and rank slots.
func formulaKey(n int, pos, legs, segs []int) string {
	return fmt.Sprintf("%d|%v|%v|%v", n, pos, legs, segs)
}

// sub resolves a symbolic rank against the candidate rank k.
func sub(r, k int) int {
	if r == rankSlot {
		return k
	}

	return r
}

// Eval evaluates the Formula against concrete bra/ket chains at candidate
// rank k and returns the numeric recoupling coefficient. A triangle
// failure at any step yields 0.0 — a forbidden channel, not an error.
//
// The first evaluation records the triad tables; they are immutable
// afterwards.
func (f *Formula) Eval(bra, ket []shell.State, k int) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	record := !f.sealed
	coeff := 1.0
	phase := 0

	for _, st := range f.steps {
		i := st.pos
		if record && st.kind != stepOrigin {
			f.Tr1 = append(f.Tr1, Triad{bra[i].ShellJ, bra[i].TotalJ, bra[i-1].TotalJ})
			f.Tr2 = append(f.Tr2, Triad{ket[i].ShellJ, ket[i].TotalJ, ket[i-1].TotalJ})
		}

		var w float64
		switch st.kind {
		case stepStrip:
			w, phase = stripSix(bra, ket, i, sub(st.seg, k), phase)
		case stepNode:
			w = nodeNine(bra, ket, i, sub(st.below, k), sub(st.leg, k), sub(st.seg, k))
		case stepOrigin:
			w = origin(bra, ket, st, k)
		}
		if w == 0 {
			coeff = 0

			break
		}
		coeff *= w
	}

	if record {
		f.sealed = true
	}
	if !isPresent(k, f.Ranks) {
		f.Ranks = append(f.Ranks, k)
	}
	f.Coeff = coeff
	f.Phase = phase

	return coeff
}

// stripSix removes the spectator shell at position i, carrying a tensor of
// rank seg below it:
//
//	(−1)^(J'ᵢ₋₁+jᵢ+Jᵢ+seg) √((2J'ᵢ+1)(2Jᵢ+1)) {J'ᵢ₋₁ J'ᵢ jᵢ; Jᵢ Jᵢ₋₁ seg}
//
// with primes on the bra side. Returns 0.0 when the shell momenta differ
// between bra and ket or the 6j is triangle-forbidden.
func stripSix(bra, ket []shell.State, i, seg, phase int) (float64, int) {
	if bra[i].ShellJ != ket[i].ShellJ {
		return 0, phase
	}
	jsh := bra[i].ShellJ
	b0, b1 := bra[i-1].TotalJ, bra[i].TotalJ
	k0, k1 := ket[i-1].TotalJ, ket[i].TotalJ

	if !angular.W6jTriangle(b0, b1, jsh, k1, k0, seg) {
		return 0, phase
	}
	w := angular.W6j(b0, b1, jsh, k1, k0, seg)
	if w == 0 {
		return 0, phase
	}

	w *= math.Sqrt(float64(b1+1) * float64(k1+1))
	e := (b0 + jsh + k1 + seg) / 2
	if e&1 == 1 {
		w = -w
	}

	return w, phase + e
}

// nodeNine passes the operator leg at position i through a 9j node: the
// chain below carries rank below, the shell contributes rank leg, and the
// coupled operator above carries rank seg:
//
//	√((2J'ᵢ+1)(2Jᵢ+1)(2·seg+1)) { J'ᵢ₋₁ j'ᵢ J'ᵢ; Jᵢ₋₁ jᵢ Jᵢ; below leg seg }
func nodeNine(bra, ket []shell.State, i, below, leg, seg int) float64 {
	b0, bs, b1 := bra[i-1].TotalJ, bra[i].ShellJ, bra[i].TotalJ
	k0, ks, k1 := ket[i-1].TotalJ, ket[i].ShellJ, ket[i].TotalJ

	if !angular.W9jTriangle(b0, bs, b1, k0, ks, k1, below, leg, seg) {
		return 0
	}
	w := angular.W9j(b0, bs, b1, k0, ks, k1, below, leg, seg)
	if w == 0 {
		return 0
	}

	return w * math.Sqrt(float64(b1+1)*float64(k1+1)*float64(seg+1))
}

// origin terminates the walk at position 0. With a leg there, the chain
// below is the vacuum: the arriving rank must equal the leg rank and the
// shell transition must be triangular. Without one, the remaining segment
// must be scalar and the innermost momenta equal; when operator legs were
// consumed higher up, the untouched region enters as the identity, whose
// reduced matrix element is √(2J₀+1) — the rank-0 strips above then
// telescope it away against the innermost node.
func origin(bra, ket []shell.State, st planStep, k int) float64 {
	if st.hasLeg {
		if sub(st.seg, k) != sub(st.leg, k) {
			return 0
		}
		if !angular.Triangle(ket[0].ShellJ, sub(st.leg, k), bra[0].ShellJ) {
			return 0
		}

		return 1
	}
	if bra[0].ShellJ != ket[0].ShellJ || bra[0].TotalJ != ket[0].TotalJ {
		return 0
	}
	if st.legAbove {
		return math.Sqrt(float64(bra[0].TotalJ + 1))
	}

	return 1
}

// DecoupleShellRecursive computes the recoupling matrix element taking the
// coupled operator legs at positions interact (descending, parallel leg
// ranks legs) to uncoupled single-shell operators, by recursive spectator
// stripping. ranks holds the chain-segment ranks: ranks[t] above
// interact[t], with a trailing 0 for the region below the innermost leg.
//
// Returns 0.0 for triangle-forbidden channels; ErrCapacity when the chain
// exceeds MaxShells; ErrShellIndex or ErrStructure on malformed input.
//
// Complexity: O(n) elementary symbol evaluations.
func DecoupleShellRecursive(bra, ket []shell.State, interact, legs, ranks []int) (float64, error) {
	if err := checkChains(bra, ket, interact, legs, ranks); err != nil {
		return 0, err
	}

	return decoupleRec(bra, ket, len(bra)-1, interact, legs, ranks, 0), nil
}

// decoupleRec reduces positions i..0; t indexes the next interacting
// position to consume.
func decoupleRec(bra, ket []shell.State, i int, pos, legs, segs []int, t int) float64 {
	if i == 0 {
		if t < len(pos) && pos[t] == 0 {
			if segs[t] != legs[t] || !angular.Triangle(ket[0].ShellJ, legs[t], bra[0].ShellJ) {
				return 0
			}

			return 1
		}
		if bra[0].ShellJ != ket[0].ShellJ || bra[0].TotalJ != ket[0].TotalJ {
			return 0
		}
		if len(pos) > 0 {
			return math.Sqrt(float64(bra[0].TotalJ + 1))
		}

		return 1
	}

	if t < len(pos) && i == pos[t] {
		w := nodeNine(bra, ket, i, segs[t+1], legs[t], segs[t])
		if w == 0 {
			return 0
		}

		return w * decoupleRec(bra, ket, i-1, pos, legs, segs, t+1)
	}

	w, _ := stripSix(bra, ket, i, segs[t], 0)
	if w == 0 {
		return 0
	}

	return w * decoupleRec(bra, ket, i-1, pos, legs, segs, t)
}

// DecoupleShell is the iterative variant of DecoupleShellRecursive. The
// two are numerically identical — the loop consumes the same steps the
// recursion would, outermost first.
func DecoupleShell(bra, ket []shell.State, interact, legs, ranks []int) (float64, error) {
	if err := checkChains(bra, ket, interact, legs, ranks); err != nil {
		return 0, err
	}

	f := buildFormula(len(bra), interact, legs, ranks)

	return f.Eval(bra, ket, 0), nil
}

// IsShellInteracting reports whether the recoupling matrix element can be
// non-zero at all: a triangle-only dry run of the decoupling walk, with no
// symbol evaluations.
func IsShellInteracting(bra, ket []shell.State, interact, legs, ranks []int) bool {
	if checkChains(bra, ket, interact, legs, ranks) != nil {
		return false
	}

	t := 0
	for i := len(bra) - 1; i > 0; i-- {
		if t < len(interact) && i == interact[t] {
			if !angular.W9jTriangle(
				bra[i-1].TotalJ, bra[i].ShellJ, bra[i].TotalJ,
				ket[i-1].TotalJ, ket[i].ShellJ, ket[i].TotalJ,
				ranks[t+1], legs[t], ranks[t]) {
				return false
			}
			t++

			continue
		}
		if bra[i].ShellJ != ket[i].ShellJ {
			return false
		}
		if !angular.W6jTriangle(
			bra[i-1].TotalJ, bra[i].TotalJ, bra[i].ShellJ,
			ket[i].TotalJ, ket[i-1].TotalJ, ranks[t]) {
			return false
		}
	}
	if t < len(interact) && interact[t] == 0 {
		return ranks[t] == legs[t] &&
			angular.Triangle(ket[0].ShellJ, legs[t], bra[0].ShellJ)
	}

	return bra[0].ShellJ == ket[0].ShellJ && bra[0].TotalJ == ket[0].TotalJ
}

// checkChains validates chain sizes and leg positions shared by the
// decoupling entry points.
func checkChains(bra, ket []shell.State, interact, legs, ranks []int) error {
	n := len(bra)
	if n == 0 || n != len(ket) {
		return fmt.Errorf("%w: %d bra vs %d ket states", ErrStructure, n, len(ket))
	}
	if n > MaxShells {
		return fmt.Errorf("%w: %d shells (max %d)", ErrCapacity, n, MaxShells)
	}
	if len(interact) != len(legs) || len(ranks) != len(interact)+1 {
		return fmt.Errorf("%w: %d legs, %d leg ranks, %d segment ranks",
			ErrInteractCount, len(interact), len(legs), len(ranks))
	}
	if len(interact) > MaxInteract {
		return fmt.Errorf("%w: %d legs (max %d)", ErrCapacity, len(interact), MaxInteract)
	}
	prev := n
	for _, p := range interact {
		if p < 0 || p >= n {
			return fmt.Errorf("%w: position %d of %d", ErrShellIndex, p, n)
		}
		if p >= prev {
			return fmt.Errorf("%w: interact positions not descending", ErrShellIndex)
		}
		prev = p
	}
	if ranks[len(ranks)-1] != 0 {
		return fmt.Errorf("%w: trailing segment rank %d", ErrInteractCount, ranks[len(ranks)-1])
	}

	return nil
}
