// Package payload converts between raw bytes and the dense L×k
// field-element file matrix the protocol operates on, packing
// CAPACITY(F) bits per element (not byte-aligned) via
// github.com/icza/bitio, and between the file and the random fixtures
// used by tests.
package payload

import (
	"bytes"
	"math/big"

	"github.com/icza/bitio"

	"github.com/avidpr/semiavid/engine"
	"github.com/avidpr/semiavid/internal/errutil"
	"github.com/avidpr/semiavid/matrix"
)

// chunkSizes splits a bit width into a most-significant-first sequence of
// <=32-bit chunks; bitio.Reader/Writer only move up to 64 bits per call,
// and 32 keeps every chunk comfortably clear of that ceiling for any
// curve's CAPACITY(F).
func chunkSizes(bits int) []int {
	var sizes []int
	remaining := bits
	for remaining > 0 {
		n := 32
		if remaining < n {
			n = remaining
		}
		sizes = append(sizes, n)
		remaining -= n
	}
	return sizes
}

func readElementBits(r *bitio.Reader, bits int) (*big.Int, error) {
	v := new(big.Int)
	for _, n := range chunkSizes(bits) {
		chunk, err := r.ReadBits(uint8(n))
		if err != nil {
			return nil, err
		}
		v.Lsh(v, uint(n))
		v.Or(v, new(big.Int).SetUint64(chunk))
	}
	return v, nil
}

func writeElementBits(w *bitio.Writer, v *big.Int, bits int) error {
	remaining := bits
	for _, n := range chunkSizes(bits) {
		remaining -= n
		chunk := new(big.Int).Rsh(v, uint(remaining))
		mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(n)), big.NewInt(1))
		chunk.And(chunk, mask)
		if err := w.WriteBits(chunk.Uint64(), uint8(n)); err != nil {
			return err
		}
	}
	return nil
}

// Pack splits data into an L×k matrix of field elements, CAPACITY(F) bits
// per element, row-major (file[j][i] is row j, column i). data is
// zero-padded to exactly fill the matrix; it panics if data is too large
// to fit.
func Pack(backend engine.Backend, data []byte, k, l int) (*matrix.Matrix, error) {
	capacity := backend.CapacityBits()
	totalBits := capacity * k * l
	maxBytes := totalBits / 8 // matches scheme.Params.FileSizeBytes
	errutil.Require(len(data) <= maxBytes, "payload.Pack",
		"data of %d bytes exceeds capacity of %d bytes for a %dx%d file", len(data), maxBytes, l, k)

	bufBytes := (totalBits + 7) / 8 // enough whole bytes to hold every element's full capacity bits
	padded := make([]byte, bufBytes)
	copy(padded, data)
	r := bitio.NewReader(bytes.NewReader(padded))

	rows := make([][]engine.Scalar, l)
	for j := 0; j < l; j++ {
		row := make([]engine.Scalar, k)
		for i := 0; i < k; i++ {
			v, err := readElementBits(r, capacity)
			if err != nil {
				return nil, errutil.External("payload.Pack", err)
			}
			row[i] = backend.ScalarFromBigInt(v)
		}
		rows[j] = row
	}
	return matrix.New(backend, l, k, rows), nil
}

// Unpack reverses Pack, truncating the recovered byte stream to size
// bytes (the original, pre-padding length).
func Unpack(backend engine.Backend, m *matrix.Matrix, size int) ([]byte, error) {
	capacity := backend.CapacityBits()
	l, k := m.Height(), m.Width()

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	for j := 0; j < l; j++ {
		for i := 0; i < k; i++ {
			v := backend.ScalarToBigInt(m.Get(j, i))
			if err := writeElementBits(w, v, capacity); err != nil {
				return nil, errutil.External("payload.Unpack", err)
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, errutil.External("payload.Unpack", err)
	}

	out := buf.Bytes()
	errutil.Require(size <= len(out), "payload.Unpack", "requested size %d exceeds packed capacity %d", size, len(out))
	return out[:size], nil
}

// Random fills an L×k matrix with independent uniformly random field
// elements, for use as a test fixture (mirroring the reference
// implementation's random-file generator).
func Random(backend engine.Backend, k, l int) (*matrix.Matrix, error) {
	rows := make([][]engine.Scalar, l)
	for j := 0; j < l; j++ {
		row := make([]engine.Scalar, k)
		for i := 0; i < k; i++ {
			v, err := backend.ScalarRandom()
			if err != nil {
				return nil, errutil.External("payload.Random", err)
			}
			row[i] = v
		}
		rows[j] = row
	}
	return matrix.New(backend, l, k, rows), nil
}
