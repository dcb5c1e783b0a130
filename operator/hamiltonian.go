package operator

import (
	"github.com/lelemmen/gqcp"
)

// Hamiltonian is a second-quantized Hamiltonian: a one-electron core part
// plus a two-electron part, expressed in the same orthonormal orbital basis.
type Hamiltonian struct {
	core        *OneElectron
	twoElectron *TwoElectron
}

// NewHamiltonian combines a core one-electron operator and a two-electron
// operator, which must span the same number of orbitals.
func NewHamiltonian(core *OneElectron, twoElectron *TwoElectron) (*Hamiltonian, error) {
	if core.NumberOfOrbitals() != twoElectron.NumberOfOrbitals() {
		return nil, &gqcp.ErrDimensionMismatch{
			Expected: core.NumberOfOrbitals(),
			Actual:   twoElectron.NumberOfOrbitals(),
		}
	}
	return &Hamiltonian{core: core, twoElectron: twoElectron}, nil
}

// Core returns the one-electron part.
func (h *Hamiltonian) Core() *OneElectron { return h.core }

// TwoElectron returns the two-electron part.
func (h *Hamiltonian) TwoElectron() *TwoElectron { return h.twoElectron }

// NumberOfOrbitals returns the orbital count both parts are expressed in.
func (h *Hamiltonian) NumberOfOrbitals() int { return h.core.NumberOfOrbitals() }
