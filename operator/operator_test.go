package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/lelemmen/gqcp"
)

func TestNewOneElectron(t *testing.T) {
	f, err := NewOneElectron(mat.NewDense(3, 3, []float64{
		1, 2, 3,
		2, 4, 5,
		3, 5, 6,
	}))
	require.NoError(t, err)

	assert.Equal(t, 3, f.NumberOfOrbitals())
	assert.Equal(t, 5.0, f.Parameter(1, 2))
}

func TestNewOneElectron_NotSquare(t *testing.T) {
	_, err := NewOneElectron(mat.NewDense(2, 3, nil))

	var mismatch *gqcp.ErrDimensionMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestOneElectron_Algebra(t *testing.T) {
	f, err := NewOneElectron(mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	require.NoError(t, err)
	g, err := NewOneElectron(mat.NewDense(2, 2, []float64{10, 20, 30, 40}))
	require.NoError(t, err)

	sum, err := f.Add(g)
	require.NoError(t, err)
	assert.Equal(t, 11.0, sum.Parameter(0, 0))
	assert.Equal(t, 44.0, sum.Parameter(1, 1))

	scaled := f.Scaled(-2)
	assert.Equal(t, -2.0, scaled.Parameter(0, 0))
	assert.Equal(t, -8.0, scaled.Parameter(1, 1))

	// The originals are untouched.
	assert.Equal(t, 1.0, f.Parameter(0, 0))

	_, err = f.Add(ZeroOneElectron(3))
	var mismatch *gqcp.ErrDimensionMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestIdentityOneElectron(t *testing.T) {
	f := IdentityOneElectron(3)
	for p := 0; p < 3; p++ {
		for q := 0; q < 3; q++ {
			if p == q {
				assert.Equal(t, 1.0, f.Parameter(p, q))
			} else {
				assert.Equal(t, 0.0, f.Parameter(p, q))
			}
		}
	}
}

func TestNewTwoElectron(t *testing.T) {
	g, err := NewTwoElectron(2, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, g.NumberOfOrbitals())
	assert.True(t, g.IsExpressedUsingChemistsNotation())
	assert.False(t, g.IsAntisymmetrized())

	g.SetParameter(0, 1, 1, 0, 2.5)
	assert.Equal(t, 2.5, g.Parameter(0, 1, 1, 0))
	assert.Equal(t, 0.0, g.Parameter(1, 0, 0, 1))

	_, err = NewTwoElectron(2, make([]float64, 15))
	assert.Error(t, err)
}

func TestTwoElectron_AntisymmetrizedChemists(t *testing.T) {
	g, err := NewTwoElectron(2, nil)
	require.NoError(t, err)
	g.SetParameter(0, 1, 1, 0, 3.0)
	g.SetParameter(0, 0, 1, 1, 1.0)

	a := g.Antisymmetrized()
	assert.True(t, a.IsAntisymmetrized())

	// Chemist's exchange swaps the second and fourth index:
	// a(p,q,r,s) = g(p,q,r,s) - g(p,s,r,q).
	assert.Equal(t, g.Parameter(0, 1, 1, 0)-g.Parameter(0, 0, 1, 1), a.Parameter(0, 1, 1, 0))
	assert.Equal(t, g.Parameter(0, 0, 1, 1)-g.Parameter(0, 1, 1, 0), a.Parameter(0, 0, 1, 1))

	// The input is untouched.
	assert.False(t, g.IsAntisymmetrized())
	assert.Equal(t, 3.0, g.Parameter(0, 1, 1, 0))
}

func TestTwoElectron_AntisymmetrizationIdempotent(t *testing.T) {
	g, err := NewTwoElectron(2, []float64{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	})
	require.NoError(t, err)

	once := g.Antisymmetrized()
	twice := once.Antisymmetrized()

	// The guard flag makes the second call a no-op on the same object.
	assert.Same(t, once, twice)
	assert.Equal(t, once.RawParameters(), twice.RawParameters())
}

func TestTwoElectron_NotationRoundTrip(t *testing.T) {
	params := make([]float64, 16)
	for i := range params {
		params[i] = float64(i + 1)
	}
	g, err := NewTwoElectron(2, params)
	require.NoError(t, err)

	phys := g.InPhysicistsNotation()
	assert.True(t, phys.IsExpressedUsingPhysicistsNotation())

	// Chemist's (pq|rs) reads as physicist's <pr|qs>.
	for p := 0; p < 2; p++ {
		for q := 0; q < 2; q++ {
			for r := 0; r < 2; r++ {
				for s := 0; s < 2; s++ {
					assert.Equal(t, g.Parameter(p, q, r, s), phys.Parameter(p, r, q, s))
				}
			}
		}
	}

	// Conversion is exact both ways, and a no-op when already there.
	back := phys.InChemistsNotation()
	assert.Equal(t, g.RawParameters(), back.RawParameters())
	assert.Same(t, g, g.InChemistsNotation())
	assert.Same(t, phys, phys.InPhysicistsNotation())
}

func TestTwoElectron_Copy(t *testing.T) {
	g, err := NewTwoElectron(2, nil)
	require.NoError(t, err)
	g.SetParameter(1, 1, 1, 1, 9.0)

	c := g.Copy()
	c.SetParameter(1, 1, 1, 1, -9.0)

	assert.Equal(t, 9.0, g.Parameter(1, 1, 1, 1))
	assert.Equal(t, -9.0, c.Parameter(1, 1, 1, 1))
}

func TestEffectiveOneElectronPartition(t *testing.T) {
	g, err := NewTwoElectron(2, nil)
	require.NoError(t, err)
	g.SetParameter(0, 0, 0, 0, 2.0)
	g.SetParameter(0, 1, 1, 0, 4.0)
	g.SetParameter(1, 0, 0, 1, 6.0)

	k := g.EffectiveOneElectronPartition()

	// k(p,q) = -1/2 sum_r g(p,r,r,q).
	assert.InDelta(t, -0.5*(2.0+4.0), k.Parameter(0, 0), 1e-14)
	assert.InDelta(t, -0.5*6.0, k.Parameter(1, 1), 1e-14)
	assert.InDelta(t, 0.0, k.Parameter(0, 1), 1e-14)
}

func TestNewHamiltonian(t *testing.T) {
	h, err := NewHamiltonian(ZeroOneElectron(3), ZeroTwoElectron(3))
	require.NoError(t, err)
	assert.Equal(t, 3, h.NumberOfOrbitals())

	_, err = NewHamiltonian(ZeroOneElectron(3), ZeroTwoElectron(4))
	var mismatch *gqcp.ErrDimensionMismatch
	assert.ErrorAs(t, err, &mismatch)
}
