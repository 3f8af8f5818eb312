// Package kzg is a thin, non-hiding façade over the KZG polynomial
// commitment scheme: Commit, Open, Verify, built directly on an
// engine.Backend rather than on gnark-crypto's own kzg package, so the
// absence of a blinding term is visible in this file instead of inherited
// from a general-purpose dependency that defaults to hiding.
//
// A polynomial here is always in coefficient form, low-degree coefficient
// first (poly[i] is the coefficient of X^i). Commit and Open both require
// deg(P) <= L-1, i.e. len(poly) <= len(SRS.G1).
package kzg

import (
	"github.com/avidpr/semiavid/engine"
	"github.com/avidpr/semiavid/internal/errutil"
)

// SRS is a structured reference string truncated to L powers of the toxic
// secret tau: G1 holds {g, g^tau, ..., g^tau^(L-1)}, G2 holds {h, h^tau}.
// tau itself is never represented; it must have been discarded by
// whatever produced this SRS.
type SRS struct {
	G1 []engine.G1Point
	G2 [2]engine.G2Point
}

// Digest is a KZG commitment: an element of G1.
type Digest = engine.G1Point

// OpeningProof is a witness for a single evaluation: Point is z, the
// ClaimedValue is y = P(z), and H is the witness commitment.
type OpeningProof struct {
	H            engine.G1Point
	Point        engine.Scalar
	ClaimedValue engine.Scalar
}

// Commit returns g^P(tau), computed as a multi-scalar multiplication of
// poly's coefficients against the corresponding SRS powers. It panics if
// poly is longer than the SRS.
func Commit(backend engine.Backend, srs *SRS, poly []engine.Scalar) (Digest, error) {
	requirePreconditions("Commit", srs, len(poly))
	if len(poly) == 0 {
		return backend.G1Zero(), nil
	}
	return backend.G1MultiExp(srs.G1[:len(poly)], poly)
}

// Open computes the opening proof for poly at point z: the claimed value
// y = P(z) and a witness H = g^Q(tau), where Q(X) = (P(X)-y)/(X-z) is
// computed by exact synthetic division (the remainder is P(z)-y = 0 by
// construction). It panics if poly is longer than the SRS.
func Open(backend engine.Backend, srs *SRS, poly []engine.Scalar, z engine.Scalar) (OpeningProof, error) {
	requirePreconditions("Open", srs, len(poly))

	y := evaluate(backend, poly, z)
	quotient := divideByLinear(backend, poly, z)

	h, err := Commit(backend, srs, quotient)
	if err != nil {
		return OpeningProof{}, err
	}
	return OpeningProof{H: h, Point: z, ClaimedValue: y}, nil
}

// Verify checks that commitment is a commitment to some P with P(z) = y,
// given the witness in proof, via the pairing identity
// e(C - g^y, h) == e(W, h^tau - h^z).
func Verify(backend engine.Backend, srs *SRS, commitment Digest, proof OpeningProof) (bool, error) {
	gy := backend.G1ScalarMul(backend.G1Generator(), proof.ClaimedValue)
	cMinusY := backend.G1Sub(commitment, gy)
	negH := backend.G1Neg(proof.H)

	hTauMinusHz := backend.G2Sub(srs.G2[1], backend.G2ScalarMul(srs.G2[0], proof.Point))

	return backend.PairingCheck(
		[]engine.G1Point{cMinusY, negH},
		[]engine.G2Point{srs.G2[0], hTauMinusHz},
	)
}

func requirePreconditions(op string, srs *SRS, polyLen int) {
	errutil.Require(polyLen <= len(srs.G1), "kzg."+op, "polynomial degree %d exceeds SRS size %d", polyLen-1, len(srs.G1))
}

// evaluate computes poly(z) by Horner's method.
func evaluate(backend engine.Backend, poly []engine.Scalar, z engine.Scalar) engine.Scalar {
	if len(poly) == 0 {
		return backend.ScalarZero()
	}
	acc := poly[len(poly)-1]
	for i := len(poly) - 2; i >= 0; i-- {
		acc = backend.ScalarAdd(backend.ScalarMul(acc, z), poly[i])
	}
	return acc
}

// divideByLinear computes the coefficients of Q(X) = (P(X)-P(z))/(X-z) by
// synthetic division against the monic divisor (X-z). The division is
// exact: X-z always divides P(X)-P(z).
func divideByLinear(backend engine.Backend, poly []engine.Scalar, z engine.Scalar) []engine.Scalar {
	n := len(poly)
	if n == 0 {
		return nil
	}
	quotient := make([]engine.Scalar, n-1)
	if n == 1 {
		return quotient
	}
	quotient[n-2] = poly[n-1]
	for i := n - 2; i >= 1; i-- {
		quotient[i-1] = backend.ScalarAdd(poly[i], backend.ScalarMul(z, quotient[i]))
	}
	return quotient
}
