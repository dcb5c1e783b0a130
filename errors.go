package gqcp

import (
	"errors"
	"fmt"
)

var (
	// ErrOverflow is returned when a basis dimension (a binomial coefficient)
	// exceeds the representable integer range. It is fatal at basis
	// construction.
	ErrOverflow = errors.New("basis dimension overflows uint64")

	// ErrAntisymmetrizedOperator is returned when a two-electron operator with
	// already-antisymmetrized matrix elements is passed to an evaluation
	// routine that expects raw integrals.
	ErrAntisymmetrizedOperator = errors.New("two-electron operator is antisymmetrized; evaluation expects raw integrals")
)

// ErrDimensionMismatch indicates incompatible dimensions: an operator whose
// orbital count differs from the basis's, or a vector whose length differs
// from the basis dimension.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrIndexOutOfRange indicates a bra or ket address outside [0, dim).
type ErrIndexOutOfRange struct {
	Index uint64
	Dim   uint64
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("address %d out of range for basis of dimension %d", e.Index, e.Dim)
}

// ErrInvalidBasis indicates an (orbitals, electrons) pair that cannot form an
// ONV basis: a non-positive or too-large orbital count (representations are a
// single machine word), or an electron count outside [0, orbitals].
type ErrInvalidBasis struct {
	Orbitals  int
	Electrons int
}

func (e *ErrInvalidBasis) Error() string {
	return fmt.Sprintf("invalid ONV basis: %d orbitals, %d electrons", e.Orbitals, e.Electrons)
}
