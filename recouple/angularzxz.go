package recouple

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/atomkit/recoupling/angular"
	"github.com/atomkit/recoupling/shell"
)

// AngularZxZ0 computes the recoupling coefficients of the scalar product
// Z_A^k · Z_B^k between two chain-coupled states, where
// Z_A = [a†(s[0]) ⊗ ã(s[1])]^k and Z_B = [a†(s[2]) ⊗ ã(s[3])]^k, for every
// candidate doubled rank k admitted by both leg pairs and the session's
// rank cap.
//
// Legs landing on the same shell are fused into a composite tensor on that
// shell; the returned coefficient for rank k then multiplies the in-shell
// reduced matrix elements of the fused operators, coupled in the order
// stated per case below:
//
//   - four distinct shells: one element per leg;
//   - one factor diagonal on a shell: that factor's [a† ⊗ ã]^k composite;
//   - one leg of each factor on a shared shell: the composite couples the
//     Z_A leg first, [leg_A ⊗ leg_B]^t, summed over t internally;
//   - both factors spanning the same two shells: per-shell composites
//     [leg_A ⊗ leg_B]^t, Z_A leg first;
//   - all four legs on one shell: the rank-0 four-leg composite taken in
//     the given operator order.
//
// A split of three legs on one shell against one on another cannot be
// reduced to the chain form used here and yields ErrInteractCount.
//
// The fermion-crossing phase of the interaction datum is NOT folded in —
// see the package phase convention.
func (se *Session) AngularZxZ0(bra, ket []shell.State, s [4]InteractShell) (RankCoeffList, error) {
	n := len(bra)
	if err := checkDriver(bra, ket, s[0].Index, s[1].Index, s[2].Index, s[3].Index); err != nil {
		return nil, err
	}
	for i := 1; i < len(s); i++ {
		for j := 0; j < i; j++ {
			if s[i].Index == s[j].Index && s[i].J != s[j].J {
				return nil, fmt.Errorf("%w: legs %d and %d on shell %d carry different momenta",
					ErrStructure, j, i, s[i].Index)
			}
		}
	}
	if shell.TotalJ(bra) != shell.TotalJ(ket) {
		return nil, nil // scalar operator
	}

	klo := maxj(absj(s[0].J-s[1].J), absj(s[2].J-s[3].J))
	khi := minj(s[0].J+s[1].J, minj(s[2].J+s[3].J, se.MaxRank()))
	if klo > khi {
		return nil, nil
	}

	uniq := distinctPositions(s)

	form := func(pos, legs, segs []int) *Formula {
		return se.formula(formulaKey(n, pos, legs, segs), func() *Formula {
			return buildFormula(n, pos, legs, segs)
		})
	}

	var list RankCoeffList
	switch len(uniq) {
	case 4:
		list = se.zxzDistinct(bra, ket, s, klo, khi, form)

	case 3:
		list = se.zxzTriple(bra, ket, s, uniq, klo, khi, form)

	case 2:
		pa, pb := uniq[0], uniq[1]
		if countAt(s, pa) != 2 {
			return nil, fmt.Errorf("%w: legs split 3+1 across shells %d and %d",
				ErrInteractCount, pa, pb)
		}
		list = se.zxzDouble(bra, ket, s, pa, pb, klo, khi, form)

	case 1:
		// All four legs fuse into a rank-0 composite on one shell; the
		// chain factor is rank independent.
		f := form([]int{uniq[0]}, []int{0}, []int{0, 0})
		if c := f.Eval(bra, ket, 0); c != 0 {
			for k := klo; k <= khi; k += 2 {
				list = list.Add(k, scalarConv(k)*c)
			}
		}
	}

	if len(list) > 0 && floats.Norm(list.Coeffs(), 1) == 0 {
		return nil, nil
	}

	return list.Prune(0), nil
}

// zxzDistinct handles four legs on four distinct shells. After ordering
// each pair by position (collecting swap phases) and putting the pair that
// holds the lowest shell first, the pairing pattern against the
// position-sorted legs is adjacent, crossed or nested; the crossed and
// nested patterns reach the position-ordered chain through a single 6j
// exchange sum over the adjacent pair rank.
func (se *Session) zxzDistinct(bra, ket []shell.State, s [4]InteractShell,
	klo, khi int, form func(pos, legs, segs []int) *Formula) RankCoeffList {

	type leg struct{ pos, j int }
	a1, a2 := leg{s[0].Index, s[0].J}, leg{s[1].Index, s[1].J}
	b1, b2 := leg{s[2].Index, s[2].J}, leg{s[3].Index, s[3].J}
	swapA := a2.pos < a1.pos
	if swapA {
		a1, a2 = a2, a1
	}
	swapB := b2.pos < b1.pos
	if swapB {
		b1, b2 = b2, b1
	}
	if b1.pos < a1.pos {
		// Scalar factors commute; keep the pair holding the lowest shell
		// first.
		a1, a2, b1, b2 = b1, b2, a1, a2
		swapA, swapB = swapB, swapA
	}

	legs := []leg{a1, a2, b1, b2}
	sort.Slice(legs, func(i, j int) bool { return legs[i].pos < legs[j].pos })
	h0, h1, h2, h3 := legs[0].j, legs[1].j, legs[2].j, legs[3].j

	pairSwap := func(k int) float64 {
		sgn := 1.0
		if swapA {
			sgn *= halfSign(s[0].J + s[1].J - k)
		}
		if swapB {
			sgn *= halfSign(s[2].J + s[3].J - k)
		}
		return sgn
	}

	// The position-ordered chain couples the two lower legs to one pair
	// and the two upper to the other; all three patterns evaluate it.
	f := form(
		[]int{legs[3].pos, legs[2].pos, legs[1].pos, legs[0].pos},
		[]int{h3, h2, h1, h0},
		[]int{0, h3, rankSlot, h0, 0},
	)

	var list RankCoeffList
	switch a2.pos {
	case legs[1].pos: // adjacent: (q0 q1)(q2 q3)
		for k := klo; k <= khi; k += 2 {
			if c := f.Eval(bra, ket, k); c != 0 {
				list = list.Add(k, scalarConv(k)*pairSwap(k)*c)
			}
		}

	case legs[2].pos: // crossed: (q0 q2)(q1 q3)
		src := chainGrid(f, bra, ket, maxj(absj(h0-h1), absj(h2-h3)), minj(h0+h1, h2+h3))
		dst := make(RankCoeffList, 0, (khi-klo)/2+1)
		for k := klo; k <= khi; k += 2 {
			dst = append(dst, RankCoeff{K: k})
		}
		phase := 1
		if halfSign(h1+h2) < 0 {
			phase = -1
		}
		dst = SumCoeff(dst, src, phase, h3, h1, h0, h2)
		for _, rc := range dst {
			if rc.Coeff != 0 {
				list = list.Add(rc.K, scalarConv(rc.K)*pairSwap(rc.K)*rc.Coeff)
			}
		}

	default: // nested: (q0 q3)(q1 q2)
		src := chainGrid(f, bra, ket, maxj(absj(h0-h1), absj(h2-h3)), minj(h0+h1, h2+h3))
		for k := klo; k <= khi; k += 2 {
			var acc float64
			for _, rc := range src {
				w := angular.W6j(h0, h1, rc.K, h2, h3, k)
				if w == 0 {
					continue
				}
				w *= math.Sqrt(float64((rc.K + 1) * (k + 1)))
				w *= halfSign(h1+h3+rc.K+k) * halfSign(h2+h3-rc.K)
				acc += w * rc.Coeff
			}
			if acc != 0 {
				list = list.Add(k, scalarConv(k)*pairSwap(k)*acc)
			}
		}
	}

	return list
}

// zxzTriple handles three distinct shells: one shell carries two legs.
// Either one factor sits entirely on that shell (its composite keeps the
// operator rank k), or each factor contributes one leg there (the shared
// composite rank t is summed over through a 6j exchange).
func (se *Session) zxzTriple(bra, ket []shell.State, s [4]InteractShell,
	uniq []int, klo, khi int, form func(pos, legs, segs []int) *Formula) RankCoeffList {

	var pd int
	for _, p := range uniq {
		if countAt(s, p) == 2 {
			pd = p
		}
	}

	diagA := s[0].Index == pd && s[1].Index == pd
	diagB := s[2].Index == pd && s[3].Index == pd

	var list RankCoeffList
	if diagA || diagB {
		// One factor diagonal on pd, the other spanning shells u < v.
		oc, oa := s[0], s[1]
		if diagA {
			oc, oa = s[2], s[3]
		}
		o1, o2 := oc, oa
		swapO := o2.Index < o1.Index
		if swapO {
			o1, o2 = o2, o1
		}
		u, v := o1.Index, o2.Index
		gu, gv := o1.J, o2.J

		var f *Formula
		glue := func(int) float64 { return 1 }
		switch {
		case pd > v:
			f = form([]int{pd, v, u}, []int{rankSlot, gv, gu}, []int{0, rankSlot, gu, 0})
		case pd < u:
			f = form([]int{v, u, pd}, []int{gv, gu, rankSlot}, []int{0, gv, rankSlot, 0})
		default:
			f = form([]int{v, pd, u}, []int{gv, rankSlot, gu}, []int{0, gv, gu, 0})
			glue = func(k int) float64 { return halfSign(gv + k - gu) }
		}

		for k := klo; k <= khi; k += 2 {
			c := f.Eval(bra, ket, k)
			if c == 0 {
				continue
			}
			c *= scalarConv(k) * glue(k)
			if swapO {
				c *= halfSign(gu + gv - k)
			}
			list = list.Add(k, c)
		}

		return list
	}

	// Shared shell: one leg of each factor on pd, carrying its momentum g.
	g, aOut := s[0].J, s[1]
	if s[1].Index == pd {
		g, aOut = s[1].J, s[0]
	}
	bOut := s[3]
	if s[3].Index == pd {
		bOut = s[2]
	}
	gAo, gBo := aOut.J, bOut.J
	swapA := s[0].Index == pd // shared leg is A's creation
	swapB := s[2].Index == pd

	lo, hi := aOut, bOut
	orderSwapped := bOut.Index < aOut.Index
	if orderSwapped {
		lo, hi = bOut, aOut
	}
	gLo, gHi := lo.J, hi.J

	var f *Formula
	glue := func(int) float64 { return 1 }
	switch {
	case pd > hi.Index:
		f = form([]int{pd, hi.Index, lo.Index}, []int{rankSlot, gHi, gLo}, []int{0, rankSlot, gLo, 0})
	case pd < lo.Index:
		f = form([]int{hi.Index, lo.Index, pd}, []int{gHi, gLo, rankSlot}, []int{0, gHi, rankSlot, 0})
	default:
		f = form([]int{hi.Index, pd, lo.Index}, []int{gHi, rankSlot, gLo}, []int{0, gHi, gLo, 0})
		glue = func(t int) float64 { return halfSign(gHi + t - gLo) }
	}

	src := chainGrid(f, bra, ket, absj(gAo-gBo), minj(gAo+gBo, 2*g))
	for k := klo; k <= khi; k += 2 {
		var acc float64
		for _, rc := range src {
			w := angular.W6j(gAo, gBo, rc.K, g, g, k)
			if w == 0 {
				continue
			}
			w *= math.Sqrt(float64((rc.K + 1) * (k + 1)))
			w *= halfSign(gBo + g + rc.K + k)
			w *= glue(rc.K)
			if orderSwapped {
				w *= halfSign(gAo + gBo - rc.K)
			}
			acc += w * rc.Coeff
		}
		if acc == 0 {
			continue
		}
		c := acc * scalarConv(k)
		if swapA {
			c *= halfSign(g + gAo - k)
		}
		if swapB {
			c *= halfSign(g + gBo - k)
		}
		list = list.Add(k, c)
	}

	return list
}

// zxzDouble handles two distinct shells with two legs each: either both
// factors are diagonal, or each factor spans both shells and the exchange
// sum rebuilds per-shell composites of rank t.
func (se *Session) zxzDouble(bra, ket []shell.State, s [4]InteractShell,
	pa, pb, klo, khi int, form func(pos, legs, segs []int) *Formula) RankCoeffList {

	f := form([]int{pb, pa}, []int{rankSlot, rankSlot}, []int{0, rankSlot, 0})

	var list RankCoeffList
	if s[0].Index == s[1].Index {
		// Both factors diagonal: composites of rank k on each shell.
		for k := klo; k <= khi; k += 2 {
			if c := f.Eval(bra, ket, k); c != 0 {
				list = list.Add(k, scalarConv(k)*c)
			}
		}

		return list
	}

	// Crossed double: each factor has one leg on pa and one on pb.
	var jp, jq int
	for _, sh := range s {
		if sh.Index == pa {
			jp = sh.J
		} else {
			jq = sh.J
		}
	}
	swapA := s[0].Index == pb
	swapB := s[2].Index == pb

	src := chainGrid(f, bra, ket, 0, minj(2*jp, 2*jq))
	for k := klo; k <= khi; k += 2 {
		var acc float64
		for _, rc := range src {
			w := angular.W6j(jp, jp, rc.K, jq, jq, k)
			if w == 0 {
				continue
			}
			w *= math.Sqrt(float64((rc.K + 1) * (k + 1)))
			w *= halfSign(jp + jq + rc.K + k)
			acc += w * rc.Coeff
		}
		if acc == 0 {
			continue
		}
		c := acc * scalarConv(k)
		if swapA {
			c *= halfSign(jp + jq - k)
		}
		if swapB {
			c *= halfSign(jp + jq - k)
		}
		list = list.Add(k, c)
	}

	return list
}

// chainGrid evaluates f over every even rank in [lo, hi] and returns the
// non-zero values as a rank list.
func chainGrid(f *Formula, bra, ket []shell.State, lo, hi int) RankCoeffList {
	var grid RankCoeffList
	for r := maxj(lo, 0); r <= hi; r += 2 {
		if c := f.Eval(bra, ket, r); c != 0 {
			grid = grid.Add(r, c)
		}
	}

	return grid
}

// scalarConv converts a coupled rank-0 tensor amplitude to the scalar
// product normalization: (Z·Z) = (−1)^k √(2k+1) [Z ⊗ Z]^0.
func scalarConv(k int) float64 {
	return halfSign(k) * math.Sqrt(float64(k+1))
}

// distinctPositions returns the distinct interacting shell positions in
// ascending order.
func distinctPositions(s [4]InteractShell) []int {
	uniq := make([]int, 0, 4)
	for _, sh := range s {
		if !isPresent(sh.Index, uniq) {
			uniq = append(uniq, sh.Index)
		}
	}
	sort.Ints(uniq)

	return uniq
}

// countAt reports how many of the four legs sit on position p.
func countAt(s [4]InteractShell, p int) int {
	c := 0
	for _, sh := range s {
		if sh.Index == p {
			c++
		}
	}

	return c
}
