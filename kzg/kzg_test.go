package kzg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avidpr/semiavid/engine"
	"github.com/avidpr/semiavid/internal/testfixture"
	"github.com/avidpr/semiavid/internal/testsrs"
	"github.com/avidpr/semiavid/kzg"
)

func randomPoly(t *testing.T, backend engine.Backend, degreePlusOne int) []engine.Scalar {
	t.Helper()
	out := make([]engine.Scalar, degreePlusOne)
	for i := range out {
		v, err := backend.ScalarRandom()
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

// TestCommitEquivalence checks that committing via kzg.Commit (a
// multi-exp) equals the direct sum of poly[i]*SRS.G1[i].
func TestCommitEquivalence(t *testing.T) {
	for _, curve := range testfixture.Curves {
		backend := testfixture.Backend(curve)
		srs := testsrs.New(backend, 8, []byte("commit-equivalence"))
		poly := randomPoly(t, backend, 8)

		got, err := kzg.Commit(backend, srs, poly)
		require.NoError(t, err)

		want := backend.G1Zero()
		for i, c := range poly {
			want = backend.G1Add(want, backend.G1ScalarMul(srs.G1[i], c))
		}
		require.True(t, backend.G1Equal(got, want), "curve %s", curve)
	}
}

func TestOpenVerifyRoundTrip(t *testing.T) {
	for _, curve := range testfixture.Curves {
		backend := testfixture.Backend(curve)
		srs := testsrs.New(backend, 8, []byte("open-verify"))
		poly := randomPoly(t, backend, 8)

		commitment, err := kzg.Commit(backend, srs, poly)
		require.NoError(t, err)

		z := backend.ScalarFromUint64(7)
		proof, err := kzg.Open(backend, srs, poly, z)
		require.NoError(t, err)

		ok, err := kzg.Verify(backend, srs, commitment, proof)
		require.NoError(t, err)
		require.True(t, ok, "curve %s", curve)
	}
}

// TestVerifyRejectsWrongValue checks that replacing y with y+1 in a valid
// opening tuple makes the verifier reject.
func TestVerifyRejectsWrongValue(t *testing.T) {
	backend := testfixture.Backend(engine.BLS12_381)
	srs := testsrs.New(backend, 8, []byte("wrong-value"))
	poly := randomPoly(t, backend, 8)

	commitment, err := kzg.Commit(backend, srs, poly)
	require.NoError(t, err)

	z := backend.ScalarFromUint64(3)
	proof, err := kzg.Open(backend, srs, poly, z)
	require.NoError(t, err)

	proof.ClaimedValue = backend.ScalarAdd(proof.ClaimedValue, backend.ScalarOne())
	ok, err := kzg.Verify(backend, srs, commitment, proof)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCommitPanicsOnOversizedPolynomial(t *testing.T) {
	backend := testfixture.Backend(engine.BLS12_381)
	srs := testsrs.New(backend, 4, []byte("oversized"))
	poly := randomPoly(t, backend, 5)
	require.Panics(t, func() { _, _ = kzg.Commit(backend, srs, poly) })
}
