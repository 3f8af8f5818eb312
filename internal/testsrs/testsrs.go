// Package testsrs derives a deterministic, reproducible toy SRS for use
// in tests and fixtures. It stands in for the external trusted-setup
// ceremony the scheme otherwise depends on, whose toxic waste (tau) must
// ordinarily be discarded: here tau is derived from a seed by hashing with
// golang.org/x/crypto/blake2b and is never discarded, because it is
// never secret. An SRS built by this package must never be used outside
// tests — there is no ceremony, no toxic waste, and no security
// guarantee.
package testsrs

import (
	"math/big"

	"golang.org/x/crypto/blake2b"

	"github.com/avidpr/semiavid/engine"
	"github.com/avidpr/semiavid/kzg"
)

// New derives a toy SRS of length l (i.e. truncated to l powers of tau,
// matching a scheme's L) from seed. Distinct seeds produce distinct,
// unrelated SRS instances; the same seed always reproduces the same SRS,
// which is what makes this usable in table-driven and property tests.
func New(backend engine.Backend, l int, seed []byte) *kzg.SRS {
	digest := blake2b.Sum256(seed)
	tau := backend.ScalarFromBigInt(new(big.Int).SetBytes(digest[:]))

	g1 := backend.G1Generator()
	g2 := backend.G2Generator()

	g1Powers := make([]engine.G1Point, l)
	for i := 0; i < l; i++ {
		g1Powers[i] = backend.G1ScalarMul(g1, backend.ScalarPow(tau, uint64(i)))
	}

	return &kzg.SRS{
		G1: g1Powers,
		G2: [2]engine.G2Point{g2, backend.G2ScalarMul(g2, tau)},
	}
}
