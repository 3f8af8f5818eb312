package scheme_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/avidpr/semiavid/engine"
	"github.com/avidpr/semiavid/internal/testfixture"
	"github.com/avidpr/semiavid/scheme"
)

// TestFileSizeBytesFixtures checks FileSizeBytes against concrete
// fixtures for both curves.
func TestFileSizeBytesFixtures(t *testing.T) {
	cases := []struct {
		curve engine.CurveID
		n, k, l,
		want int
	}{
		{engine.BLS12_381, 512, 256, 1024, 8_323_072},
		{engine.BN254, 512, 256, 1024, 8_290_304},
	}
	for _, tc := range cases {
		params, err := testfixture.NewScheme(tc.curve, tc.n, tc.k, tc.l, "filesize")
		require.NoError(t, err)
		require.Equal(t, tc.want, params.FileSizeBytes(), "curve %s", tc.curve)
	}
}

// TestNewRejectsBadShape checks that setup rejects a non-power-of-two n
// and a k that is not less than n. These are precondition violations, so
// they panic rather than return an error.
func TestNewRejectsBadShape(t *testing.T) {
	require.Panics(t, func() {
		_, _ = testfixture.NewScheme(engine.BLS12_381, 10, 4, 8, "bad-n")
	}, "non-power-of-two n must be rejected")

	require.Panics(t, func() {
		_, _ = testfixture.NewScheme(engine.BLS12_381, 8, 8, 8, "bad-k")
	}, "k >= n must be rejected")
}

func TestNewRejectsBadL(t *testing.T) {
	require.Panics(t, func() {
		_, _ = testfixture.NewScheme(engine.BLS12_381, 16, 8, 12, "bad-l")
	}, "non-power-of-two L must be rejected")
}

func TestMetadataAccessors(t *testing.T) {
	params, err := testfixture.NewScheme(engine.BLS12_381, 16, 8, 32, "metadata")
	require.NoError(t, err)

	require.Equal(t, 8, params.NumColumnCommitments())
	require.Equal(t, 32, params.NumRowEncodings())
	require.Equal(t, 16, params.NumChunkVerifications())
	require.Equal(t, 8, params.NumDownloadedChunkVerifications())
	require.Equal(t, 32, params.NumRowDecodings())
	require.Equal(t, engine.BLS12_381, params.Curve())
}

func TestMetadataSnapshotsAreComparable(t *testing.T) {
	bls, err := testfixture.NewScheme(engine.BLS12_381, 16, 8, 32, "metadata-cmp")
	require.NoError(t, err)
	bn, err := testfixture.NewScheme(engine.BN254, 16, 8, 32, "metadata-cmp")
	require.NoError(t, err)

	want := scheme.Metadata{Curve: "bls12-381", N: 16, K: 8, L: 32, FileSizeBytes: bls.FileSizeBytes()}
	require.Empty(t, cmp.Diff(want, bls.Metadata()))

	require.NotEmpty(t, cmp.Diff(bls.Metadata(), bn.Metadata()), "different curves must produce different metadata")
}
