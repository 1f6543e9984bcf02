// Package secp256k1x is the thin adapter between this module's BIP-32 math
// and the curve backend spec.md §4.H and §6.5 treat as an opaque external
// capability. It wraps github.com/decred/dcrd/dcrec/secp256k1/v4, the same
// library the teacher's keys.go calls through PrivKeyFromBytes/PubKey/
// SerializeCompressed; tweak-add is grounded on the standard ModNScalar/
// JacobianPoint idiom for EC point addition used throughout the pack's
// secp256k1-consuming code (e.g. the plugin-secp256k1 signer).
package secp256k1x

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Scalar is a private key scalar reduced modulo the curve order n.
type Scalar struct {
	inner secp256k1.ModNScalar
}

// Point is a curve point (a public key).
type Point struct {
	inner secp256k1.PublicKey
}

// ScalarFromBytes interprets b as a big-endian 256-bit integer and rejects
// it unless it lies in [1, n-1].
func ScalarFromBytes(b []byte) (Scalar, error) {
	var s secp256k1.ModNScalar
	overflow := s.SetByteSlice(b)
	if overflow {
		return Scalar{}, newError(ErrInvalidScalar, "scalar is >= curve order n")
	}
	if s.IsZero() {
		return Scalar{}, newError(ErrInvalidScalar, "scalar is zero")
	}
	return Scalar{inner: s}, nil
}

// Bytes returns the scalar's big-endian 32-byte encoding.
func (s Scalar) Bytes() [32]byte {
	return s.inner.Bytes()
}

// Zero wipes the scalar's backing storage, leaving it logically zero.
func (s *Scalar) Zero() {
	s.inner.Zero()
}

// IsZero reports whether the scalar is zero.
func (s Scalar) IsZero() bool {
	return s.inner.IsZero()
}

// ScalarTweakAdd returns (s + tweak) mod n. It rejects a tweak that is
// itself >= n, or a result of zero.
func ScalarTweakAdd(s Scalar, tweak []byte) (Scalar, error) {
	var t secp256k1.ModNScalar
	if overflow := t.SetByteSlice(tweak); overflow {
		return Scalar{}, newError(ErrInvalidScalar, "tweak is >= curve order n")
	}
	sum := s.inner
	sum.Add(&t)
	if sum.IsZero() {
		return Scalar{}, newError(ErrInvalidScalar, "tweaked scalar is zero")
	}
	return Scalar{inner: sum}, nil
}

// PointFromCompressed parses a 33-byte SEC1-compressed point.
func PointFromCompressed(b []byte) (Point, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return Point{}, newError(ErrInvalidPoint, "parsing compressed point: %v", err)
	}
	return Point{inner: *pub}, nil
}

// PointTweakAdd returns tweak*G + p, rejecting a tweak >= n or an identity
// result.
func PointTweakAdd(p Point, tweak []byte) (Point, error) {
	var t secp256k1.ModNScalar
	if overflow := t.SetByteSlice(tweak); overflow {
		return Point{}, newError(ErrInvalidPoint, "tweak is >= curve order n")
	}

	var tweakJac secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&t, &tweakJac)

	var parentJac secp256k1.JacobianPoint
	p.inner.AsJacobian(&parentJac)

	var sumJac secp256k1.JacobianPoint
	secp256k1.AddNonConst(&tweakJac, &parentJac, &sumJac)

	if sumJac.Z.IsZero() {
		return Point{}, newError(ErrInvalidPoint, "tweak sum is the point at infinity")
	}

	sumJac.ToAffine()
	pub := secp256k1.NewPublicKey(&sumJac.X, &sumJac.Y)
	return Point{inner: *pub}, nil
}

// DerivePubkey computes s*G.
func DerivePubkey(s Scalar) Point {
	priv := secp256k1.NewPrivateKey(&s.inner)
	return Point{inner: *priv.PubKey()}
}

// CompressedEncode returns p's 33-byte SEC1-compressed encoding.
func CompressedEncode(p Point) [33]byte {
	var out [33]byte
	copy(out[:], p.inner.SerializeCompressed())
	return out
}
