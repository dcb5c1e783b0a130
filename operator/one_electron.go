package operator

import (
	"github.com/lelemmen/gqcp"
	"gonum.org/v1/gonum/mat"
)

// OneElectron is a one-electron operator: a square matrix of parameters
// h(p, q) over the orbital indices.
type OneElectron struct {
	params *mat.Dense
}

// NewOneElectron wraps a square parameter matrix. The matrix is referenced,
// not copied; the evaluators never mutate it.
func NewOneElectron(params *mat.Dense) (*OneElectron, error) {
	r, c := params.Dims()
	if r != c {
		return nil, &gqcp.ErrDimensionMismatch{Expected: r, Actual: c}
	}
	return &OneElectron{params: params}, nil
}

// ZeroOneElectron creates the zero one-electron operator over orbitals orbitals.
func ZeroOneElectron(orbitals int) *OneElectron {
	return &OneElectron{params: mat.NewDense(orbitals, orbitals, nil)}
}

// IdentityOneElectron creates the identity one-electron operator, whose
// matrix representation in any ONV basis is N times the unit matrix.
func IdentityOneElectron(orbitals int) *OneElectron {
	f := ZeroOneElectron(orbitals)
	for p := 0; p < orbitals; p++ {
		f.params.Set(p, p, 1)
	}
	return f
}

// NumberOfOrbitals returns the orbital count the parameters are expressed in.
func (f *OneElectron) NumberOfOrbitals() int {
	r, _ := f.params.Dims()
	return r
}

// Parameter returns h(p, q).
func (f *OneElectron) Parameter(p, q int) float64 {
	return f.params.At(p, q)
}

// Parameters returns the underlying parameter matrix. It is shared, not
// copied.
func (f *OneElectron) Parameters() *mat.Dense {
	return f.params
}

// Add returns the element-wise sum of this operator and g as a new operator.
func (f *OneElectron) Add(g *OneElectron) (*OneElectron, error) {
	if f.NumberOfOrbitals() != g.NumberOfOrbitals() {
		return nil, &gqcp.ErrDimensionMismatch{Expected: f.NumberOfOrbitals(), Actual: g.NumberOfOrbitals()}
	}
	sum := mat.NewDense(f.NumberOfOrbitals(), f.NumberOfOrbitals(), nil)
	sum.Add(f.params, g.params)
	return &OneElectron{params: sum}, nil
}

// Scaled returns this operator with every parameter multiplied by c, as a
// new operator.
func (f *OneElectron) Scaled(c float64) *OneElectron {
	scaled := mat.NewDense(f.NumberOfOrbitals(), f.NumberOfOrbitals(), nil)
	scaled.Scale(c, f.params)
	return &OneElectron{params: scaled}
}
