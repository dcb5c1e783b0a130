// Package onv provides the occupation number vector (ONV) working object.
//
// An ONV encodes one electron configuration as a bit pattern over M orbital
// slots: bit p is set when orbital p is occupied. Alongside the raw word, an
// ONV caches the ascending list of occupied orbital indices so that repeated
// occupation queries on the same configuration cost O(1).
//
// An ONV is a mutable cursor, not a snapshot. Basis enumeration advances it
// in place between callbacks; callers that need a stable configuration across
// permutation steps must Copy first.
package onv
