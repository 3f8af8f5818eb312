// Package sampling implements single-entry opening and verification: a
// light client asks for one (row, column) entry of the file and gets
// back a KZG witness it can check against the published column
// commitment, without downloading the rest of the file.
package sampling

import (
	"github.com/rs/zerolog"

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

// Proof is the tuple a sampling open publishes: the claimed value,
// its coordinates, the column commitments it can be checked against, and
// the opening witness.
type Proof struct {
	Row         int
	Col         int
	Value       engine.Scalar
	Commitments []kzg.Digest
	Witness     engine.G1Point
}

// Open computes a sampling proof for file[row][col]: it re-interpolates
// column col (the prover need not have cached P_col from dispersal) and
// opens the resulting polynomial at z = gamma_c^row. It panics if col is
// not in [0,K) or row is not in [0,L).
func Open(params *scheme.Params, file *matrix.Matrix, row, col int, commitments []kzg.Digest) (Proof, error) {
	errutil.Require(col >= 0 && col < params.K(), "sampling.Open", "column %d out of range [0,%d)", col, params.K())
	errutil.Require(row >= 0 && row < params.L(), "sampling.Open", "row %d out of range [0,%d)", row, params.L())
	errutil.Require(len(commitments) == params.K(), "sampling.Open", "expected %d commitments, got %d", params.K(), len(commitments))

	backend := params.Backend()
	colVals := make([]engine.Scalar, file.Height())
	for j := range colVals {
		colVals[j] = file.Get(j, col)
	}
	coeffs := params.DomainC().InverseFFT(colVals)
	z := params.DomainC().Element(uint64(row))

	opening, err := kzg.Open(backend, params.SRS(), coeffs, z)
	if err != nil {
		return Proof{}, errutil.External("sampling.Open", err)
	}

	return Proof{
		Row:         row,
		Col:         col,
		Value:       opening.ClaimedValue,
		Commitments: commitments,
		Witness:     opening.H,
	}, nil
}

// Verify checks a sampling proof: that 0<=col<K and 0<=row<L, and that the
// KZG opening of commitments[col] at z = gamma_c^row to proof.Value is
// valid given proof.Witness. It is a pure boolean check; a malformed
// proof (out-of-range coordinates, wrong commitment count) is a
// precondition violation, not a verification failure.
func Verify(params *scheme.Params, proof Proof) (bool, error) {
	errutil.Require(proof.Col >= 0 && proof.Col < params.K(), "sampling.Verify", "column %d out of range [0,%d)", proof.Col, params.K())
	errutil.Require(proof.Row >= 0 && proof.Row < params.L(), "sampling.Verify", "row %d out of range [0,%d)", proof.Row, params.L())
	errutil.Require(len(proof.Commitments) == params.K(), "sampling.Verify", "expected %d commitments, got %d", params.K(), len(proof.Commitments))

	z := params.DomainC().Element(uint64(proof.Row))
	opening := kzg.OpeningProof{H: proof.Witness, Point: z, ClaimedValue: proof.Value}

	ok, err := kzg.Verify(params.Backend(), params.SRS(), proof.Commitments[proof.Col], opening)
	if err != nil {
		return false, errutil.External("sampling.Verify", err)
	}
	log.Debug().Int("row", proof.Row).Int("col", proof.Col).Bool("ok", ok).Msg("sampling verify")
	return ok, nil
}
