// Package gqcp provides the ONV basis engine for many-body quantum operator
// evaluation.
//
// The engine builds a combinatorial basis of occupation number vectors (ONVs)
// for a fixed number of orbitals M and electrons N, maps each bit-pattern
// configuration to a dense integer address through a graph-weighted addressing
// scheme, and evaluates one- and two-electron operators (and Hamiltonians
// built from them) into dense matrices, sparse matrices, or matrix-vector
// products over that basis.
//
// # Packages
//
//   - onv:      the occupation number vector working object
//   - onvbasis: addressing scheme, enumeration, coupling counts and operator
//     evaluation, plus the frozen-core adaptor
//   - operator: one-/two-electron operator tensors and Hamiltonians
//
// # Quick Start
//
// Build a basis and evaluate a Hamiltonian into a dense matrix:
//
//	basis, err := onvbasis.New(5, 2) // M=5 orbitals, N=2 electrons, dim=C(5,2)=10
//	if err != nil {
//	    panic(err)
//	}
//
//	ham, _ := operator.NewHamiltonian(core, g) // integrals from a collaborator
//	matrix, err := basis.EvaluateHamiltonianDense(ham, true)
//
// Sparse evaluation pre-sizes its triplet storage exactly, using the coupling
// counters, before a single fill pass:
//
//	csr, err := basis.EvaluateHamiltonianSparse(ham, true)
//
// Matrix-vector products avoid materializing the matrix entirely:
//
//	diagonal, _ := basis.EvaluateHamiltonianDiagonal(ham)
//	y, err := basis.EvaluateHamiltonianMatvec(ham, x, diagonal)
//
// The produced matrices and vectors are consumed downstream by CI
// eigensolvers; this module itself does not diagonalize anything, performs no
// orbital optimization, and reads or writes no external file format.
//
// # Addressing
//
// The address bijection follows the Helgaker–Jørgensen–Olsen vertex-weight
// scheme: O(N) from representation to address, O(M) back, without ever
// materializing the configuration list. All evaluation routines compute
// excitation target addresses incrementally from arc weights rather than
// re-deriving them from scratch.
package gqcp
