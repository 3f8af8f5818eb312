// Package engine is the boundary between the Semi-AVID-PR protocol core
// and the externally-supplied curve: the scalar field F, the groups G1
// and G2, the bilinear pairing, and FFT-capable evaluation domains. None
// of the arithmetic in this package is implemented here; every Backend is
// a thin adapter over github.com/consensys/gnark-crypto's per-curve
// packages. The rest of the module (matrix, kzg, scheme, dispersal,
// retrieval, sampling) is written once against this interface and runs
// unchanged over every supported curve.
//
// Curve selection is an opaque identifier (CurveID) carried alongside
// scheme parameters and used only to pick the Backend implementation; the
// protocol logic never branches on it.
package engine

import "math/big"

// CurveID identifies one of the closed set of supported pairing-friendly
// curves. It is opaque to everything except the code that picks a Backend.
type CurveID uint8

const (
	BLS12_381 CurveID = iota
	BN254
)

func (c CurveID) String() string {
	switch c {
	case BLS12_381:
		return "bls12-381"
	case BN254:
		return "bn254"
	default:
		return "unknown"
	}
}

// Scalar, G1Point and G2Point are opaque values owned by a Backend. A
// value produced by one Backend must never be passed to another: the core
// never mixes curves within a single scheme instance, and a Backend is
// free to panic if it is handed a value it did not produce.
type (
	Scalar  = any
	G1Point = any
	G2Point = any
)

// Domain is a multiplicative subgroup of F of power-of-two size, with
// FFT-based evaluation and interpolation between coefficient and
// evaluation form.
type Domain interface {
	// Cardinality is the subgroup's size (L or n, depending on the domain).
	Cardinality() uint64

	// Element returns the i-th domain element, the generator raised to i.
	// The implementations do not reduce i modulo Cardinality before
	// exponentiating; callers pass indices in [0, Cardinality).
	Element(i uint64) Scalar

	// FFT evaluates a polynomial given in coefficient form (low-degree
	// coefficient first) at every domain element, returning a new slice
	// in evaluation order. len(coeffs) must not exceed Cardinality.
	FFT(coeffs []Scalar) []Scalar

	// InverseFFT interpolates a polynomial from its values on the full
	// domain, returning the coefficient form. len(evals) must equal
	// Cardinality.
	InverseFFT(evals []Scalar) []Scalar
}

// Backend supplies every curve-dependent primitive the core needs: scalar
// field arithmetic, the two source groups, the pairing, multi-scalar
// multiplication, and evaluation domain construction.
type Backend interface {
	CurveID() CurveID

	// CapacityBits is CAPACITY(F): the bit-length of F's prime minus one,
	// the largest number of bits of a payload byte stream that fits
	// losslessly in one scalar.
	CapacityBits() int

	ScalarZero() Scalar
	ScalarOne() Scalar
	ScalarFromUint64(v uint64) Scalar
	ScalarFromBigInt(v *big.Int) Scalar
	ScalarToBigInt(a Scalar) *big.Int
	ScalarRandom() (Scalar, error)

	ScalarAdd(a, b Scalar) Scalar
	ScalarSub(a, b Scalar) Scalar
	ScalarMul(a, b Scalar) Scalar
	ScalarNeg(a Scalar) Scalar
	// ScalarInverse returns an external error if a is zero.
	ScalarInverse(a Scalar) (Scalar, error)
	// ScalarPow raises a to the integer exponent e. The exponent is used
	// as supplied, not reduced through any field encoding first. (The
	// homomorphic consistency check does not call ScalarPow: it builds
	// the powers of a domain element by repeated multiplication.)
	ScalarPow(a Scalar, e uint64) Scalar
	ScalarEqual(a, b Scalar) bool
	ScalarIsZero(a Scalar) bool

	// NewDomain constructs a multiplicative subgroup of the given
	// power-of-two size. It returns an external error if F has no
	// subgroup of that order.
	NewDomain(size uint64) (Domain, error)

	G1Zero() G1Point
	G1Generator() G1Point
	G1Add(a, b G1Point) G1Point
	G1Sub(a, b G1Point) G1Point
	G1Neg(a G1Point) G1Point
	G1ScalarMul(p G1Point, s Scalar) G1Point
	// G1MultiExp computes sum_i scalars[i]*points[i]. len(points) must
	// equal len(scalars).
	G1MultiExp(points []G1Point, scalars []Scalar) (G1Point, error)
	G1Equal(a, b G1Point) bool

	G2Zero() G2Point
	G2Generator() G2Point
	G2Add(a, b G2Point) G2Point
	G2Sub(a, b G2Point) G2Point
	G2Neg(a G2Point) G2Point
	G2ScalarMul(p G2Point, s Scalar) G2Point
	G2Equal(a, b G2Point) bool

	// PairingCheck reports whether the product of e(g1s[i], g2s[i]) over
	// all i equals 1 in GT. len(g1s) must equal len(g2s).
	PairingCheck(g1s []G1Point, g2s []G2Point) (bool, error)
}
