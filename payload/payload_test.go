package payload_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avidpr/semiavid/engine"
	"github.com/avidpr/semiavid/internal/testfixture"
	"github.com/avidpr/semiavid/payload"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	for _, curve := range testfixture.Curves {
		backend := testfixture.Backend(curve)
		const k, l = 4, 8

		maxBytes := (backend.CapacityBits() * k * l) / 8
		data := make([]byte, maxBytes-3)
		_, err := rand.Read(data)
		require.NoError(t, err)

		m, err := payload.Pack(backend, data, k, l)
		require.NoError(t, err)
		require.Equal(t, l, m.Height())
		require.Equal(t, k, m.Width())

		got, err := payload.Unpack(backend, m, len(data))
		require.NoError(t, err)
		require.Equal(t, data, got, "curve %s", curve)
	}
}

func TestPackRejectsOversizedData(t *testing.T) {
	backend := testfixture.Backend(engine.BLS12_381)
	const k, l = 2, 2
	maxBytes := (backend.CapacityBits() * k * l) / 8
	data := make([]byte, maxBytes+1)
	require.Panics(t, func() { _, _ = payload.Pack(backend, data, k, l) })
}

func TestRandomProducesWellShapedFile(t *testing.T) {
	backend := testfixture.Backend(engine.BN254)
	m, err := payload.Random(backend, 4, 4)
	require.NoError(t, err)
	require.Equal(t, 4, m.Height())
	require.Equal(t, 4, m.Width())
}
