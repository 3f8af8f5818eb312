// Package semiavid is a Semi-AVID-PR verifiable erasure-coded dispersal
// scheme: a client commits to a file with KZG polynomial commitments,
// splits it into Reed-Solomon coded chunks across N storage nodes, and
// any K honest nodes can reconstruct the original file. A light client
// can additionally sample single entries with a short KZG proof instead
// of downloading anything.
//
// The package is organized bottom-up:
//
//   - engine: the curve boundary (scalar field, G1/G2, pairing, FFT
//     domains), implemented by engine/bls12381 and engine/bn254 over
//     github.com/consensys/gnark-crypto.
//   - matrix: the dense field-matrix kernel used to invert the K×K
//     Vandermonde system at retrieval time.
//   - kzg: a thin, non-hiding KZG commitment adapter (commit/open/verify).
//   - scheme: the (N,K,L) dispersal parameters, domains and SRS.
//   - payload: byte <-> field-element packing for the L×K file matrix.
//   - dispersal: column commitments, row encoding, and the homomorphic
//     chunk-consistency check.
//   - retrieval: download, verify, and decode K of N coded columns.
//   - sampling: single-entry KZG open/verify.
//
// Curve arithmetic, the SRS ceremony, a CLI, benchmarking, wire
// serialization and networking are all out of scope; see the top-level
// design notes for the rationale.
package semiavid
