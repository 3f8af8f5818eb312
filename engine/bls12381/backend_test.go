package bls12381_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avidpr/semiavid/engine"
	"github.com/avidpr/semiavid/engine/bls12381"
)

func TestScalarInverseRejectsZero(t *testing.T) {
	b := bls12381.New()
	_, err := b.ScalarInverse(b.ScalarZero())
	require.Error(t, err)
}

func TestScalarArithmeticIdentities(t *testing.T) {
	b := bls12381.New()
	x, err := b.ScalarRandom()
	require.NoError(t, err)

	require.True(t, b.ScalarEqual(b.ScalarAdd(x, b.ScalarZero()), x))
	require.True(t, b.ScalarEqual(b.ScalarMul(x, b.ScalarOne()), x))

	inv, err := b.ScalarInverse(x)
	require.NoError(t, err)
	require.True(t, b.ScalarEqual(b.ScalarMul(x, inv), b.ScalarOne()))
}

func TestDomainFFTRoundTrip(t *testing.T) {
	b := bls12381.New()
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

func TestDomainElementIsGeneratorPower(t *testing.T) {
	b := bls12381.New()
	d, err := b.NewDomain(4)
	require.NoError(t, err)

	require.True(t, b.ScalarEqual(d.Element(0), b.ScalarOne()))
	e1 := d.Element(1)
	e2 := d.Element(2)
	require.True(t, b.ScalarEqual(b.ScalarMul(e1, e1), e2))
}

func TestPairingCheckTrivialIdentity(t *testing.T) {
	b := bls12381.New()
	g1 := b.G1Generator()
	g2 := b.G2Generator()
	negG1 := b.G1Neg(g1)

	ok, err := b.PairingCheck([]engine.G1Point{g1, negG1}, []engine.G2Point{g2, g2})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCapacityBitsMatchesFixture(t *testing.T) {
	b := bls12381.New()
	require.Equal(t, 254, b.CapacityBits())
}

func TestG1MultiExpMatchesScalarMul(t *testing.T) {
	b := bls12381.New()
	s := b.ScalarFromUint64(5)
	g1 := b.G1Generator()

	want := b.G1ScalarMul(g1, s)
	got, err := b.G1MultiExp([]engine.G1Point{g1}, []engine.Scalar{s})
	require.NoError(t, err)
	require.True(t, b.G1Equal(want, got))
}
