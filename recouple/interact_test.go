package recouple_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomkit/recoupling/recouple"
	"github.com/atomkit/recoupling/shell"
)

func config(shells ...shell.Shell) *shell.Config {
	return &shell.Config{Shells: shells}
}

func TestGetInteractOneBody(t *testing.T) {
	se := recouple.NewSession()
	bra := config(
		shell.Shell{N: 1, Kappa: -1, NQ: 2},
		shell.Shell{N: 2, Kappa: 1, NQ: 1},
	)
	ket := config(
		shell.Shell{N: 1, Kappa: -1, NQ: 1},
		shell.Shell{N: 2, Kappa: 1, NQ: 2},
	)

	d, err := se.GetInteract(bra, ket, false)
	require.NoError(t, err)
	require.NotNil(t, d)

	require.Len(t, d.Shells, 2, "one creation, one annihilation")
	assert.Equal(t, 0, d.Shells[0].Index, "creation on the shell gaining in the bra")
	assert.Equal(t, 1, d.Shells[1].Index)
	assert.Equal(t, 2, d.NShells)

	// One electron hops from shell 1 to shell 0 across one occupied inner
	// electron: odd crossing count.
	assert.Equal(t, -1, d.Phase)
}

func TestGetInteractDiagonal(t *testing.T) {
	se := recouple.NewSession()
	c := config(
		shell.Shell{N: 1, Kappa: -1, NQ: 2},
		shell.Shell{N: 2, Kappa: -2, NQ: 1},
	)

	d, err := se.GetInteract(c, c, false)
	require.NoError(t, err)
	require.NotNil(t, d, "identical occupations still interact diagonally")
	assert.Empty(t, d.Shells)
	assert.Equal(t, 1, d.Phase)
}

func TestGetInteractDefiniteZero(t *testing.T) {
	se := recouple.NewSession()
	bra := config(
		shell.Shell{N: 1, Kappa: -1, NQ: 2},
		shell.Shell{N: 2, Kappa: -2, NQ: 0},
	)
	ket := config(
		shell.Shell{N: 1, Kappa: -1, NQ: 0},
		shell.Shell{N: 2, Kappa: -2, NQ: 2},
	)

	// A double hop needs a two-body operator.
	d, err := se.GetInteract(bra, ket, false)
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = se.GetInteract(bra, ket, true)
	require.NoError(t, err)
	require.NotNil(t, d)
	require.Len(t, d.Shells, 4)
	assert.Equal(t, []int{0, 1, 0, 1}, []int{
		d.Shells[0].Index, d.Shells[1].Index, d.Shells[2].Index, d.Shells[3].Index,
	}, "legs grouped as (creation, annihilation) factor pairs")
}

func TestGetInteractStructuralMismatch(t *testing.T) {
	se := recouple.NewSession()
	bra := config(shell.Shell{N: 1, Kappa: -1, NQ: 1})
	ket := config(shell.Shell{N: 1, Kappa: 1, NQ: 1})

	_, err := se.GetInteract(bra, ket, false)
	require.ErrorIs(t, err, recouple.ErrStructure)
}

func TestGetInteractCaching(t *testing.T) {
	se := recouple.NewSession()
	bra := config(
		shell.Shell{N: 1, Kappa: -1, NQ: 2},
		shell.Shell{N: 2, Kappa: 1, NQ: 1},
	)
	ket := config(
		shell.Shell{N: 1, Kappa: -1, NQ: 1},
		shell.Shell{N: 2, Kappa: 1, NQ: 2},
	)

	d1, err := se.GetInteract(bra, ket, false)
	require.NoError(t, err)
	d2, err := se.GetInteract(bra, ket, false)
	require.NoError(t, err)
	assert.Same(t, d1, d2, "second analysis served from the pattern cache")

	se.Reset()
	d3, err := se.GetInteract(bra, ket, false)
	require.NoError(t, err)
	assert.NotSame(t, d1, d3, "reset drops cached patterns")
}

func TestCrossingPhaseMultiHop(t *testing.T) {
	se := recouple.NewSession()

	// Ket 1s² 2p½¹, bra 1s¹ 2p½². The hop 0→1 crosses the remaining 1s
	// electron once.
	bra := config(
		shell.Shell{N: 1, Kappa: -1, NQ: 1},
		shell.Shell{N: 2, Kappa: 1, NQ: 2},
	)
	ket := config(
		shell.Shell{N: 1, Kappa: -1, NQ: 2},
		shell.Shell{N: 2, Kappa: 1, NQ: 1},
	)

	d, err := se.GetInteract(bra, ket, false)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, -1, d.Phase)
}

func BenchmarkGetInteract(b *testing.B) {
	se := recouple.NewSession()
	bra := config(
		shell.Shell{N: 1, Kappa: -1, NQ: 2},
		shell.Shell{N: 2, Kappa: 1, NQ: 2},
		shell.Shell{N: 2, Kappa: -2, NQ: 3},
	)
	ket := config(
		shell.Shell{N: 1, Kappa: -1, NQ: 2},
		shell.Shell{N: 2, Kappa: 1, NQ: 1},
		shell.Shell{N: 2, Kappa: -2, NQ: 4},
	)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		se.GetInteract(bra, ket, false) //nolint:errcheck
	}
}
