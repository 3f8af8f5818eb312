package retrieval_test

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/avidpr/semiavid/dispersal"
	"github.com/avidpr/semiavid/engine"
	"github.com/avidpr/semiavid/internal/testfixture"
	"github.com/avidpr/semiavid/payload"
	"github.com/avidpr/semiavid/retrieval"
)

// TestRetrieveRoundTrip disperses a random file, downloads columns
// {8..15}, verifies, decodes, and checks equality with the original file,
// for both curves.
func TestRetrieveRoundTrip(t *testing.T) {
	for _, curve := range testfixture.Curves {
		const n, k, l = 16, 8, 64
		params, err := testfixture.NewScheme(curve, n, k, l, "retrieve-roundtrip")
		require.NoError(t, err)

		file, err := payload.Random(params.Backend(), k, l)
		require.NoError(t, err)

		ctx := context.Background()
		df, err := dispersal.Disperse(ctx, params, file)
		require.NoError(t, err)

		s := make([]int, k)
		for i := range s {
			s[i] = n - k + i
		}

		decoded, ok, err := retrieval.Retrieve(ctx, params, df.Coded(), df.Commitments(), s)
		require.NoError(t, err)
		require.True(t, ok, "curve %s", curve)

		backend := params.Backend()
		for j := 0; j < l; j++ {
			for i := 0; i < k; i++ {
				require.True(t, backend.ScalarEqual(file.Get(j, i), decoded.Get(j, i)),
					"curve %s row %d col %d", curve, j, i)
			}
		}
	}
}

// TestRetrieveRejectsTamperedDownload verifies that a tampered coded
// column fails verification before decode ever runs, returning false
// without partial output.
func TestRetrieveRejectsTamperedDownload(t *testing.T) {
	const n, k, l = 16, 8, 32
	params, err := testfixture.NewScheme(engine.BLS12_381, n, k, l, "retrieve-tamper")
	require.NoError(t, err)

	file, err := payload.Random(params.Backend(), k, l)
	require.NoError(t, err)

	ctx := context.Background()
	df, err := dispersal.Disperse(ctx, params, file)
	require.NoError(t, err)

	backend := params.Backend()
	coded := df.Coded()
	coded.Set(0, 9, backend.ScalarAdd(coded.Get(0, 9), backend.ScalarOne()))

	s := []int{8, 9, 10, 11, 12, 13, 14, 15}
	decoded, ok, err := retrieval.Retrieve(ctx, params, coded, df.Commitments(), s)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, decoded)
}

func TestDownloadRejectsMalformedIndexSet(t *testing.T) {
	const n, k, l = 16, 8, 16
	params, err := testfixture.NewScheme(engine.BLS12_381, n, k, l, "bad-index-set")
	require.NoError(t, err)

	file, err := payload.Random(params.Backend(), k, l)
	require.NoError(t, err)
	ctx := context.Background()
	df, err := dispersal.Disperse(ctx, params, file)
	require.NoError(t, err)

	require.Panics(t, func() { retrieval.Download(params, df.Coded(), []int{0, 1, 2}) }, "too few indices")
	require.Panics(t, func() { retrieval.Download(params, df.Coded(), []int{0, 0, 1, 2, 3, 4, 5, 6}) }, "duplicate index")
	require.Panics(t, func() { retrieval.Download(params, df.Coded(), []int{0, 1, 2, 3, 4, 5, 6, 99}) }, "out-of-range index")
}

// TestRoundTripProperty checks that retrieve(download(S)) reproduces the
// original file for any well-formed S of size K, for every subset the
// property test happens to draw.
func TestRoundTripProperty(t *testing.T) {
	const n, k, l = 8, 4, 8
	params, err := testfixture.NewScheme(engine.BLS12_381, n, k, l, "roundtrip-property")
	require.NoError(t, err)

	file, err := payload.Random(params.Backend(), k, l)
	require.NoError(t, err)
	ctx := context.Background()
	df, err := dispersal.Disperse(ctx, params, file)
	require.NoError(t, err)

	backend := params.Backend()
	props := gopter.NewProperties(nil)
	props.Property("retrieve(download(S)) == file for any size-K S", prop.ForAll(
		func(seed int) bool {
			state := uint64(seed) + 1
			next := func() uint64 {
				state = state*6364136223846793005 + 1442695040888963407
				return state
			}
			idxs := make([]int, n)
			for i := range idxs {
				idxs[i] = i
			}
			for i := n - 1; i > 0; i-- {
				j := int(next() % uint64(i+1))
				idxs[i], idxs[j] = idxs[j], idxs[i]
			}
			s := idxs[:k]

			decoded, ok, err := retrieval.Retrieve(ctx, params, df.Coded(), df.Commitments(), s)
			if err != nil || !ok {
				return false
			}
			for j := 0; j < l; j++ {
				for i := 0; i < k; i++ {
					if !backend.ScalarEqual(file.Get(j, i), decoded.Get(j, i)) {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(0, 1<<20),
	))
	props.TestingRun(t)
}
