// Package retrieval implements the receiver side of Semi-AVID-PR: taking
// exactly K of the N coded columns, checking each one against the
// published column commitments with the same homomorphic check the
// disperser itself ran, and inverting the Vandermonde system those K
// columns form to recover the original file.
//
// The receiver-side state machine is modeled as a type graph:
// DownloadedFile can only be built from a coded matrix and an index set,
// VerifiedFile can only be built by verifying a DownloadedFile, and
// DecodedFile can only be built from a VerifiedFile.
package retrieval

import (
	"context"
	"runtime"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/avidpr/semiavid/dispersal"
	"github.com/avidpr/semiavid/engine"
	"github.com/avidpr/semiavid/internal/errutil"
	"github.com/avidpr/semiavid/kzg"
	"github.com/avidpr/semiavid/matrix"
	"github.com/avidpr/semiavid/scheme"
)

var log = zerolog.Nop()

// SetLogger overrides the package-level logger, which is silent
// (zerolog.Nop()) by default.
func SetLogger(l zerolog.Logger) { log = l }

// DownloadedFile is the set of K columns extracted from a coded file, in
// the caller-supplied order of the index set S. It is the receiver-side
// "Downloaded" state.
type DownloadedFile struct {
	params     *scheme.Params
	s          []int
	downloaded *matrix.Matrix // L x K, column u is node s[u]
	vinv       *matrix.Matrix // K x K, Vandermonde inverse for s
}

// S returns the index set the columns were downloaded from, in the order
// the caller supplied it.
func (d *DownloadedFile) S() []int { return d.s }

// Downloaded returns the L×K matrix of downloaded columns.
func (d *DownloadedFile) Downloaded() *matrix.Matrix { return d.downloaded }

// validateIndexSet checks that s has exactly params.K() entries, each in
// [0, params.N()), with no duplicates.
func validateIndexSet(params *scheme.Params, s []int) {
	errutil.Require(len(s) == params.K(), "retrieval.Download", "index set must have exactly %d entries, got %d", params.K(), len(s))
	seen := bitset.New(uint(params.N()))
	for _, idx := range s {
		errutil.Require(idx >= 0 && idx < params.N(), "retrieval.Download", "index %d out of range [0,%d)", idx, params.N())
		errutil.Require(!seen.Test(uint(idx)), "retrieval.Download", "duplicate index %d in index set", idx)
		seen.Set(uint(idx))
	}
}

// vandermondeInverse builds the K×K matrix V with V[t][u] = (gamma_e^s[u])^t
// (row = polynomial degree, column = chosen node) and inverts it. The
// matrix is a Vandermonde matrix on the distinct points gamma_e^s[u], so
// it is always invertible; Invert panics only if that invariant is
// somehow violated (a duplicate already rejected by validateIndexSet).
func vandermondeInverse(params *scheme.Params, s []int) *matrix.Matrix {
	backend := params.Backend()
	k := params.K()

	columns := make([][]engine.Scalar, k)
	for u, idx := range s {
		base := params.DomainE().Element(uint64(idx))
		col := make([]engine.Scalar, k)
		col[0] = backend.ScalarOne()
		for t := 1; t < k; t++ {
			col[t] = backend.ScalarMul(col[t-1], base)
		}
		columns[u] = col
	}

	rows := make([][]engine.Scalar, k)
	for t := 0; t < k; t++ {
		row := make([]engine.Scalar, k)
		for u := 0; u < k; u++ {
			row[u] = columns[u][t]
		}
		rows[t] = row
	}

	v := matrix.New(backend, k, k, rows)
	return v.Invert()
}

// Download extracts the columns named by s (each in [0,N), exactly K of
// them, no duplicates) from an L×N coded matrix, and prepares the
// Vandermonde decoder for s. It panics if s is malformed; it does not
// verify the downloaded data against any commitment.
func Download(params *scheme.Params, coded *matrix.Matrix, s []int) *DownloadedFile {
	errutil.Require(coded.Height() == params.L(), "retrieval.Download", "coded height %d does not match L=%d", coded.Height(), params.L())
	errutil.Require(coded.Width() == params.N(), "retrieval.Download", "coded width %d does not match N=%d", coded.Width(), params.N())
	validateIndexSet(params, s)

	downloaded := coded.HPick(s)
	vinv := vandermondeInverse(params, s)

	return &DownloadedFile{params: params, s: append([]int(nil), s...), downloaded: downloaded, vinv: vinv}
}

// VerifiedFile is a DownloadedFile whose columns have passed the
// homomorphic consistency check against the published column
// commitments. It is the only type Decode accepts.
type VerifiedFile struct {
	*DownloadedFile
}

// Verify runs the homomorphic consistency check against every downloaded
// column, in the caller-supplied order of S, comparing each
// against the commitment it ought to have given commitments. It returns
// (nil, false, nil) on a verification mismatch — not an error — and
// discloses nothing about which column failed.
func (d *DownloadedFile) Verify(ctx context.Context, commitments []kzg.Digest) (*VerifiedFile, bool, error) {
	errutil.Require(len(commitments) == d.params.K(), "retrieval.Verify", "expected %d commitments, got %d", d.params.K(), len(commitments))

	k := d.params.K()
	ok := make([]bool, k)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for u := 0; u < k; u++ {
		u := u
		g.Go(func() error {
			col := make([]engine.Scalar, d.downloaded.Height())
			for j := range col {
				col[j] = d.downloaded.Get(j, u)
			}
			cPrime, err := dispersal.InterpolateAndCommit(d.params, col)
			if err != nil {
				return errutil.External("retrieval.Verify", err)
			}
			cHat, err := dispersal.EncodedColumnCommitment(d.params, d.s[u], commitments)
			if err != nil {
				return errutil.External("retrieval.Verify", err)
			}
			ok[u] = d.params.Backend().G1Equal(cPrime, cHat)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	for _, v := range ok {
		if !v {
			log.Debug().Int("k", k).Msg("downloaded chunk verification failed")
			return nil, false, nil
		}
	}
	log.Debug().Int("k", k).Msg("downloaded chunk verification passed")
	return &VerifiedFile{DownloadedFile: d}, true, nil
}

// DecodedFile holds the recovered L×K original file, the receiver-side
// terminal state.
type DecodedFile struct {
	params  *scheme.Params
	decoded *matrix.Matrix
}

// Matrix returns the recovered L×K file.
func (d *DecodedFile) Matrix() *matrix.Matrix { return d.decoded }

// Decode recovers the original L×K file from a VerifiedFile's K
// downloaded columns by applying the Vandermonde inverse prepared at
// Download time to each row. Row decodings are independent and run on a
// bounded worker pool, assembled back in row-index order.
func (v *VerifiedFile) Decode(ctx context.Context) (*DecodedFile, error) {
	backend := v.params.Backend()
	k, l := v.params.K(), v.params.L()

	rows := make([][]engine.Scalar, l)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for j := 0; j < l; j++ {
		j := j
		g.Go(func() error {
			row := make([]engine.Scalar, k)
			for t := 0; t < k; t++ {
				acc := backend.ScalarZero()
				for u := 0; u < k; u++ {
					term := backend.ScalarMul(v.vinv.Get(u, t), v.downloaded.Get(j, u))
					acc = backend.ScalarAdd(acc, term)
				}
				row[t] = acc
			}
			rows[j] = row
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &DecodedFile{params: v.params, decoded: matrix.New(backend, l, k, rows)}, nil
}

// Retrieve runs the full receiver flow: download, verify, decode. It
// returns (nil, false, nil) on a verification mismatch, with no partial
// output.
func Retrieve(ctx context.Context, params *scheme.Params, coded *matrix.Matrix, commitments []kzg.Digest, s []int) (*matrix.Matrix, bool, error) {
	downloaded := Download(params, coded, s)
	verified, ok, err := downloaded.Verify(ctx, commitments)
	if err != nil || !ok {
		return nil, false, err
	}
	decoded, err := verified.Decode(ctx)
	if err != nil {
		return nil, false, err
	}
	return decoded.Matrix(), true, nil
}
