package bn254_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avidpr/semiavid/engine"
	"github.com/avidpr/semiavid/engine/bn254"
)

func TestScalarInverseRejectsZero(t *testing.T) {
	b := bn254.New()
	_, err := b.ScalarInverse(b.ScalarZero())
	require.Error(t, err)
}

func TestDomainFFTRoundTrip(t *testing.T) {
	b := bn254.New()
	d, err := b.NewDomain(8)
	require.NoError(t, err)

	coeffs := make([]engine.Scalar, 8)
	for i := range coeffs {
		coeffs[i] = b.ScalarFromUint64(uint64(i + 1))
	}

	evals := d.FFT(coeffs)
	back := d.InverseFFT(evals)
	for i := range coeffs {
		require.True(t, b.ScalarEqual(coeffs[i], back[i]), "index %d", i)
	}
}

func TestPairingCheckTrivialIdentity(t *testing.T) {
	b := bn254.New()
	g1 := b.G1Generator()
	g2 := b.G2Generator()
	negG1 := b.G1Neg(g1)

	ok, err := b.PairingCheck([]engine.G1Point{g1, negG1}, []engine.G2Point{g2, g2})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCapacityBitsMatchesFixture(t *testing.T) {
	b := bn254.New()
	require.Equal(t, 253, b.CapacityBits())
}
