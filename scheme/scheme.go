// Package scheme holds the Semi-AVID-PR scheme parameters: the dispersal
// shape (n, k, L), the two evaluation domains (the poly-commit domain
// D_c of size L and the encoding domain D_e of size n), and the SRS
// truncated to L powers. Params is built once per (n, k, L, curve) and is
// read-only and safely shared across goroutines afterward; nothing in
// this package mutates a Params after New returns it.
package scheme

import (
	"github.com/rs/zerolog"

	"github.com/avidpr/semiavid/engine"
	"github.com/avidpr/semiavid/internal/errutil"
	"github.com/avidpr/semiavid/kzg"
)

// Params is the immutable scheme configuration: dimensions, domains, and
// SRS. n is the number of storage nodes / coded columns, k is the number
// of uncoded columns (k < n, the reconstruction threshold), and L is the
// row count (and the size of the poly-commit domain).
type Params struct {
	backend engine.Backend
	n, k, l int

	domainC engine.Domain // size L, generator gamma_c
	domainE engine.Domain // size n, generator gamma_e

	srs *kzg.SRS
}

// New constructs scheme parameters for the given dimensions and SRS. It
// panics if n or L is not a power of two, if k >= n, or if the SRS is not
// truncated to exactly L powers; it returns an external error if the
// backend's scalar field has no subgroup of order n or L.
func New(backend engine.Backend, n, k, l int, srs *kzg.SRS) (*Params, error) {
	errutil.Require(isPowerOfTwo(n), "scheme.New", "n must be a power of two, got %d", n)
	errutil.Require(isPowerOfTwo(l), "scheme.New", "L must be a power of two, got %d", l)
	errutil.Require(k < n, "scheme.New", "k (%d) must be less than n (%d)", k, n)
	errutil.Require(len(srs.G1) == l, "scheme.New", "SRS length %d does not match L=%d", len(srs.G1), l)

	domainC, err := backend.NewDomain(uint64(l))
	if err != nil {
		return nil, errutil.External("scheme.New", err)
	}
	domainE, err := backend.NewDomain(uint64(n))
	if err != nil {
		return nil, errutil.External("scheme.New", err)
	}

	p := &Params{
		backend: backend,
		n:       n,
		k:       k,
		l:       l,
		domainC: domainC,
		domainE: domainE,
		srs:     srs,
	}
	log.Debug().Int("n", n).Int("k", k).Int("L", l).Str("curve", backend.CurveID().String()).Msg("scheme parameters constructed")
	return p, nil
}

func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}

// Backend returns the arithmetic backend this scheme was built against.
func (p *Params) Backend() engine.Backend { return p.backend }

// Curve returns the opaque curve identifier.
func (p *Params) Curve() engine.CurveID { return p.backend.CurveID() }

// N returns the number of coded columns / storage nodes.
func (p *Params) N() int { return p.n }

// K returns the reconstruction threshold / number of uncoded columns.
func (p *Params) K() int { return p.k }

// L returns the row count / poly-commit domain size.
func (p *Params) L() int { return p.l }

// DomainC returns the poly-commit domain D_c (size L, generator gamma_c).
func (p *Params) DomainC() engine.Domain { return p.domainC }

// DomainE returns the encoding domain D_e (size n, generator gamma_e).
func (p *Params) DomainE() engine.Domain { return p.domainE }

// SRS returns the (shared, read-only) structured reference string.
func (p *Params) SRS() *kzg.SRS { return p.srs }

// FileSizeBytes implements the testable file-size formula: the number of
// whole bytes that fit losslessly into a k-column, L-row file, at
// CAPACITY(F) bits per element.
func (p *Params) FileSizeBytes() int {
	return (p.backend.CapacityBits() * p.k * p.l) / 8
}

// NumColumnCommitments is the number of KZG commitments a disperse call
// computes: one per uncoded column.
func (p *Params) NumColumnCommitments() int { return p.k }

// NumRowEncodings is the number of Reed-Solomon row encodings a disperse
// call computes: one per row.
func (p *Params) NumRowEncodings() int { return p.l }

// NumChunkVerifications is the number of per-column homomorphic checks
// the disperser runs against its own coded file: one per coded column.
func (p *Params) NumChunkVerifications() int { return p.n }

// NumDownloadedChunkVerifications is the number of homomorphic checks a
// retrieving client runs against the columns it downloaded: one per
// downloaded column (i.e. k).
func (p *Params) NumDownloadedChunkVerifications() int { return p.k }

// NumRowDecodings is the number of rows a successful retrieval decodes:
// one per row.
func (p *Params) NumRowDecodings() int { return p.l }

// Metadata is a plain-value snapshot of a Params' dimensions, useful for
// logging and for comparing two configurations (e.g. with
// google/go-cmp) without dragging the SRS or domains along.
type Metadata struct {
	Curve         string
	N, K, L       int
	FileSizeBytes int
}

// Metadata returns a snapshot of p's dimensional metadata.
func (p *Params) Metadata() Metadata {
	return Metadata{
		Curve:         p.backend.CurveID().String(),
		N:             p.n,
		K:             p.k,
		L:             p.l,
		FileSizeBytes: p.FileSizeBytes(),
	}
}

var log = zerolog.Nop()

// SetLogger overrides the package-level logger, which is silent
// (zerolog.Nop()) by default.
func SetLogger(l zerolog.Logger) { log = l }
