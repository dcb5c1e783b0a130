// Package onvbasis implements the full ONV basis for a fixed orbital and
// electron count, and the evaluation of second-quantized operators in it.
//
// The basis addresses its C(M, N) configurations through the
// Helgaker–Jørgensen–Olsen vertex-weight scheme: a (M+1)x(N+1) table of
// combinatorial path counts gives an O(N) bijection from bit pattern to dense
// address and an O(M) inverse, without storing the configuration list.
//
// Evaluation follows a two-pass discipline for sparse targets: the coupling
// counters compute the exact number of nonzero entries first, storage is
// reserved once, and a single fill pass writes every element. Dense, sparse
// and matrix-vector targets share one traversal and differ only in how a
// computed (I, J, value) triple is consumed.
//
// A frozen-core adaptor wraps a smaller active basis, folds frozen-orbital
// contributions into the operators, and forwards evaluation.
package onvbasis
