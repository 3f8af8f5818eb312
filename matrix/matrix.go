// Package matrix implements the dense field-element matrix kernel the
// retrieval path uses to invert a k×k Vandermonde submatrix. It is the
// only place in the module that needs more than pointwise scalar
// arithmetic, and it is deliberately small: construct/get/set, horizontal
// concatenation and column selection, elementary row operations, and
// Gauss-Jordan inversion. No partial pivoting is implemented because the
// only matrix this package ever inverts is built from distinct evaluation
// points of an encoding domain, which is guaranteed non-singular.
package matrix

import (
	"github.com/avidpr/semiavid/engine"
	"github.com/avidpr/semiavid/internal/errutil"
)

// Matrix is a dense h×w array of scalars belonging to a single Backend.
type Matrix struct {
	backend engine.Backend
	height  int
	width   int
	entries []engine.Scalar
}

// New constructs an h×w matrix from rows given in row-major order: rows[r]
// is the r-th row, of length w. It panics if any row's length does not
// match w or if len(rows) != h.
func New(backend engine.Backend, h, w int, rows [][]engine.Scalar) *Matrix {
	errutil.Require(len(rows) == h, "matrix.New", "expected %d rows, got %d", h, len(rows))
	entries := make([]engine.Scalar, h*w)
	for r, row := range rows {
		errutil.Require(len(row) == w, "matrix.New", "row %d: expected width %d, got %d", r, w, len(row))
		copy(entries[r*w:(r+1)*w], row)
	}
	return &Matrix{backend: backend, height: h, width: w, entries: entries}
}

// Identity constructs the d×d identity matrix.
func Identity(backend engine.Backend, d int) *Matrix {
	one := backend.ScalarOne()
	zero := backend.ScalarZero()
	entries := make([]engine.Scalar, d*d)
	for r := 0; r < d; r++ {
		for c := 0; c < d; c++ {
			if r == c {
				entries[r*d+c] = one
			} else {
				entries[r*d+c] = zero
			}
		}
	}
	return &Matrix{backend: backend, height: d, width: d, entries: entries}
}

// Height returns the number of rows.
func (m *Matrix) Height() int { return m.height }

// Width returns the number of columns.
func (m *Matrix) Width() int { return m.width }

func (m *Matrix) checkBounds(op string, r, c int) {
	errutil.Require(r >= 0 && r < m.height && c >= 0 && c < m.width,
		op, "index (%d,%d) out of bounds for %dx%d matrix", r, c, m.height, m.width)
}

// Get returns the scalar at row r, column c.
func (m *Matrix) Get(r, c int) engine.Scalar {
	m.checkBounds("matrix.Get", r, c)
	return m.entries[r*m.width+c]
}

// Set overwrites the scalar at row r, column c.
func (m *Matrix) Set(r, c int, v engine.Scalar) {
	m.checkBounds("matrix.Set", r, c)
	m.entries[r*m.width+c] = v
}

// Row returns a copy of row r as a slice.
func (m *Matrix) Row(r int) []engine.Scalar {
	errutil.Require(r >= 0 && r < m.height, "matrix.Row", "row %d out of bounds for height %d", r, m.height)
	out := make([]engine.Scalar, m.width)
	copy(out, m.entries[r*m.width:(r+1)*m.width])
	return out
}

// HConcat horizontally concatenates a and b, which must have equal
// heights; the result has a.Width()+b.Width() columns.
func HConcat(a, b *Matrix) *Matrix {
	errutil.Require(a.height == b.height, "matrix.HConcat", "height mismatch: %d vs %d", a.height, b.height)
	w := a.width + b.width
	entries := make([]engine.Scalar, a.height*w)
	for r := 0; r < a.height; r++ {
		copy(entries[r*w:r*w+a.width], a.entries[r*a.width:(r+1)*a.width])
		copy(entries[r*w+a.width:(r+1)*w], b.entries[r*b.width:(r+1)*b.width])
	}
	return &Matrix{backend: a.backend, height: a.height, width: w, entries: entries}
}

// HPick selects the columns at idxs, in the order given, producing a new
// matrix of the same height and len(idxs) columns.
func (m *Matrix) HPick(idxs []int) *Matrix {
	entries := make([]engine.Scalar, m.height*len(idxs))
	for r := 0; r < m.height; r++ {
		for j, c := range idxs {
			errutil.Require(c >= 0 && c < m.width, "matrix.HPick", "column index %d out of bounds for width %d", c, m.width)
			entries[r*len(idxs)+j] = m.entries[r*m.width+c]
		}
	}
	return &Matrix{backend: m.backend, height: m.height, width: len(idxs), entries: entries}
}

// DivideRow multiplies every entry of row r by v^-1. It panics if v is
// zero.
func (m *Matrix) DivideRow(r int, v engine.Scalar) {
	inv, err := m.backend.ScalarInverse(v)
	errutil.Require(err == nil, "matrix.DivideRow", "row %d: %v", r, err)
	for c := 0; c < m.width; c++ {
		i := r*m.width + c
		m.entries[i] = m.backend.ScalarMul(m.entries[i], inv)
	}
}

// AddMultipleOfRow adds v times row rSrc into row rDst, in place:
// row[rDst] += v * row[rSrc].
func (m *Matrix) AddMultipleOfRow(rSrc int, v engine.Scalar, rDst int) {
	for c := 0; c < m.width; c++ {
		srcVal := m.backend.ScalarMul(m.entries[rSrc*m.width+c], v)
		i := rDst*m.width + c
		m.entries[i] = m.backend.ScalarAdd(m.entries[i], srcVal)
	}
}

// Invert computes the inverse of a square d×d matrix by Gauss-Jordan
// elimination: augment with the identity, rescale each pivot row so its
// diagonal entry is one, eliminate the pivot column in every other row,
// and read the inverse off the right-hand d×d block. It panics if the
// matrix is not square or if a pivot is zero (the matrix is singular).
// No partial pivoting is performed: the only caller builds a Vandermonde
// matrix on distinct points, which is never singular.
func (m *Matrix) Invert() *Matrix {
	errutil.Require(m.height == m.width, "matrix.Invert", "matrix is not square: %dx%d", m.height, m.width)
	d := m.height
	aug := HConcat(m, Identity(m.backend, d))

	for i := 0; i < d; i++ {
		pivot := aug.Get(i, i)
		errutil.Require(!m.backend.ScalarIsZero(pivot), "matrix.Invert", "zero pivot at index %d: matrix is singular", i)
		aug.DivideRow(i, pivot)
		for r := 0; r < d; r++ {
			if r == i {
				continue
			}
			factor := m.backend.ScalarNeg(aug.Get(r, i))
			if m.backend.ScalarIsZero(factor) {
				continue
			}
			aug.AddMultipleOfRow(i, factor, r)
		}
	}

	idxs := make([]int, d)
	for i := range idxs {
		idxs[i] = d + i
	}
	return aug.HPick(idxs)
}
