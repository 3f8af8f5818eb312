// Package testfixture builds ready-to-use scheme parameters over a
// deterministic toy SRS, shared by the test suites of every package in
// this module so each one does not have to repeat curve/SRS plumbing.
package testfixture

import (
	"github.com/avidpr/semiavid/engine"
	"github.com/avidpr/semiavid/engine/bls12381"
	"github.com/avidpr/semiavid/engine/bn254"
	"github.com/avidpr/semiavid/internal/testsrs"
	"github.com/avidpr/semiavid/scheme"
)

// Backend returns the engine.Backend for curve.
func Backend(curve engine.CurveID) engine.Backend {
	switch curve {
	case engine.BLS12_381:
		return bls12381.New()
	case engine.BN254:
		return bn254.New()
	default:
		panic("testfixture: unknown curve")
	}
}

// NewScheme constructs scheme parameters for curve with a deterministic
// toy SRS derived from seed. It is for tests only: the SRS it builds has
// no ceremony and no toxic-waste discard.
func NewScheme(curve engine.CurveID, n, k, l int, seed string) (*scheme.Params, error) {
	backend := Backend(curve)
	srs := testsrs.New(backend, l, []byte(seed))
	return scheme.New(backend, n, k, l, srs)
}

// Curves lists every curve exercised by the test suite.
var Curves = []engine.CurveID{engine.BLS12_381, engine.BN254}
