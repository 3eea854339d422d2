package recouple_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atomkit/recoupling/recouple"
	"github.com/atomkit/recoupling/shell"
)

func TestRankCoeffListAdd(t *testing.T) {
	var l recouple.RankCoeffList

	l = l.Add(4, 0.5)
	l = l.Add(0, 1.0)
	l = l.Add(2, -0.25)
	assert.Equal(t, []int{0, 2, 4}, l.Ranks(), "ranks kept ascending")

	l = l.Add(2, 0.75)
	c, ok := l.Get(2)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, c, 1e-15, "matching ranks sum")

	_, ok = l.Get(6)
	assert.False(t, ok)
}

func TestRankCoeffListCoeffsIsCopy(t *testing.T) {
	l := recouple.RankCoeffList{{K: 0, Coeff: 1}, {K: 2, Coeff: 2}}
	cs := l.Coeffs()
	cs[0] = 99

	c, _ := l.Get(0)
	assert.Equal(t, 1.0, c)
}

func TestRankCoeffListPrune(t *testing.T) {
	l := recouple.RankCoeffList{
		{K: 0, Coeff: 1e-3},
		{K: 2, Coeff: 1e-16},
		{K: 4, Coeff: -2e-3},
		{K: 6, Coeff: 0},
	}
	got := l.Prune(1e-12)

	assert.Equal(t, []int{0, 4}, got.Ranks())
}

func TestFromShell(t *testing.T) {
	sh := shell.Shell{N: 2, Kappa: -2, NQ: 2}
	is := recouple.FromShell(3, sh, 2, 1)

	assert.Equal(t, 3, is.Index)
	assert.Equal(t, 2, is.N)
	assert.Equal(t, 3, is.J)
	assert.Equal(t, 2, is.KL)
	assert.Equal(t, -2, is.Kappa)
	assert.Equal(t, 2, is.NQBra)
	assert.Equal(t, 1, is.NQKet)
}

func TestInteractShellCompact(t *testing.T) {
	creating := recouple.InteractShell{N: 2, Kappa: -2, Index: 1, NQBra: 2, NQKet: 1}
	spectating := recouple.InteractShell{N: 2, Kappa: -2, Index: 1, NQBra: 1, NQKet: 1}

	assert.Equal(t, "2.-2.1+", creating.Compact())
	assert.Equal(t, "2.-2.1=", spectating.Compact())
}
