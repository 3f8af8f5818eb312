// Package dispersal implements the sender side of Semi-AVID-PR: committing
// to each column of a file, Reed-Solomon encoding each row onto the
// encoding domain, and the homomorphic consistency check that lets a
// storage node verify its single coded column against the column
// commitments without ever seeing the rest of the file.
package dispersal

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

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

// DispersedFile is the sender-side terminal state: a file that has been
// committed and encoded. Commitments and the coded matrix are retained
// for the lifetime of the file, so later sampling can reuse them without
// recomputation.
type DispersedFile struct {
	params      *scheme.Params
	commitments []kzg.Digest // len K, column-index order
	coded       *matrix.Matrix
	original    *matrix.Matrix
}

// Commitments returns a defensive copy of the K column commitments, in
// column-index order, so a caller cannot mutate the DispersedFile's own
// slice out from under it.
func (d *DispersedFile) Commitments() []kzg.Digest { return slices.Clone(d.commitments) }

// Coded returns the L×N coded matrix.
func (d *DispersedFile) Coded() *matrix.Matrix { return d.coded }

// Original returns the L×K file that was dispersed.
func (d *DispersedFile) Original() *matrix.Matrix { return d.original }

func columnValues(file *matrix.Matrix, col int) []engine.Scalar {
	l := file.Height()
	out := make([]engine.Scalar, l)
	for j := 0; j < l; j++ {
		out[j] = file.Get(j, col)
	}
	return out
}

// Disperse computes the column commitments and the row-wise Reed-Solomon
// encoding of file, an L×K matrix over params' backend. The K column
// commitments and the L row encodings are each computed on a bounded
// worker pool but assembled back into column-index / row-index order
// regardless of completion order.
func Disperse(ctx context.Context, params *scheme.Params, file *matrix.Matrix) (*DispersedFile, error) {
	errutil.Require(file.Height() == params.L(), "dispersal.Disperse", "file height %d does not match L=%d", file.Height(), params.L())
	errutil.Require(file.Width() == params.K(), "dispersal.Disperse", "file width %d does not match K=%d", file.Width(), params.K())

	start := time.Now()
	backend := params.Backend()
	srs := params.SRS()
	k, l, n := params.K(), params.L(), params.N()

	commitments := make([]kzg.Digest, k)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < k; i++ {
		i := i
		g.Go(func() error {
			coeffs := params.DomainC().InverseFFT(columnValues(file, i))
			c, err := kzg.Commit(backend, srs, coeffs)
			if err != nil {
				return errutil.External("dispersal.Disperse", err)
			}
			commitments[i] = c
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	codedRows := make([][]engine.Scalar, l)
	g2, gctx2 := errgroup.WithContext(ctx)
	g2.SetLimit(runtime.GOMAXPROCS(0))
	for j := 0; j < l; j++ {
		j := j
		g2.Go(func() error {
			codedRows[j] = params.DomainE().FFT(file.Row(j))
			return gctx2.Err()
		})
	}
	if err := g2.Wait(); err != nil {
		return nil, err
	}

	coded := matrix.New(backend, l, n, codedRows)
	log.Debug().Int("k", k).Int("L", l).Int("n", n).Dur("elapsed", time.Since(start)).Msg("disperse complete")
	return &DispersedFile{params: params, commitments: commitments, coded: coded, original: file}, nil
}

func powers(backend engine.Backend, base engine.Scalar, count int) []engine.Scalar {
	out := make([]engine.Scalar, count)
	if count == 0 {
		return out
	}
	out[0] = backend.ScalarOne()
	for t := 1; t < count; t++ {
		out[t] = backend.ScalarMul(out[t-1], base)
	}
	return out
}

// EncodedColumnCommitment computes C_hat_i = sum_t (gamma_e^i)^t * C_t,
// the commitment a coded column at encoding-domain index i ought to have
// if it is consistent with the published column commitments. i is the
// encoding-domain index of the node the column came from, not
// necessarily its position within a caller's subset of columns.
func EncodedColumnCommitment(params *scheme.Params, i int, commitments []kzg.Digest) (engine.G1Point, error) {
	backend := params.Backend()
	base := params.DomainE().Element(uint64(i))
	scalars := powers(backend, base, len(commitments))
	return backend.G1MultiExp(commitments, scalars)
}

// InterpolateAndCommit interpolates a D_c-sized vector of values (a
// single column of a coded or downloaded file) into coefficient form and
// commits to it. This is the "prime" side of the homomorphic consistency
// check: the commitment a column actually has.
func InterpolateAndCommit(params *scheme.Params, columnValues []engine.Scalar) (kzg.Digest, error) {
	coeffs := params.DomainC().InverseFFT(columnValues)
	return kzg.Commit(params.Backend(), params.SRS(), coeffs)
}

// VerifyChunks runs the homomorphic consistency check over every coded
// column: it interpolates each column of coded over D_c,
// commits to it, and compares against the commitment the column ought to
// have given the published column commitments. It returns true only if
// every one of the N columns checks out; it carries no information about
// which column failed. coded must be L×N.
func VerifyChunks(ctx context.Context, params *scheme.Params, coded *matrix.Matrix, commitments []kzg.Digest) (bool, error) {
	errutil.Require(coded.Height() == params.L(), "dispersal.VerifyChunks", "coded height %d does not match L=%d", coded.Height(), params.L())
	errutil.Require(coded.Width() == params.N(), "dispersal.VerifyChunks", "coded width %d does not match N=%d", coded.Width(), params.N())
	errutil.Require(len(commitments) == params.K(), "dispersal.VerifyChunks", "expected %d commitments, got %d", params.K(), len(commitments))

	backend := params.Backend()
	n := params.N()

	ok := make([]bool, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for idx := 0; idx < n; idx++ {
		idx := idx
		g.Go(func() error {
			cPrime, err := InterpolateAndCommit(params, columnValues(coded, idx))
			if err != nil {
				return errutil.External("dispersal.VerifyChunks", err)
			}
			cHat, err := EncodedColumnCommitment(params, idx, commitments)
			if err != nil {
				return errutil.External("dispersal.VerifyChunks", err)
			}
			ok[idx] = backend.G1Equal(cPrime, cHat)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	for _, v := range ok {
		if !v {
			log.Debug().Int("n", n).Msg("chunk verification failed")
			return false, nil
		}
	}
	log.Debug().Int("n", n).Msg("chunk verification passed")
	return true, nil
}
