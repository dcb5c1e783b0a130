// Package operator holds second-quantized operator tensors expressed in an
// orthonormal orbital basis: one-electron operators (a square parameter
// matrix), two-electron operators (a rank-4 parameter tensor with notation
// and antisymmetrization flags), and Hamiltonians combining the two.
//
// The integrals themselves come from an external collaborator (an integral
// engine plus an orbital transformation); this package only stores them and
// provides the guarded, idempotent transformations the basis evaluation
// relies on: chemist's/physicist's notation conversion and
// antisymmetrization.
package operator
