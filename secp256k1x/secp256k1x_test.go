package secp256k1x

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarFromBytesRejectsZero(t *testing.T) {
	_, err := ScalarFromBytes(make([]byte, 32))
	require.Error(t, err)
	var sErr *Error
	require.ErrorAs(t, err, &sErr)
	require.Equal(t, ErrInvalidScalar, sErr.Kind)
}

func TestScalarFromBytesRejectsOverflow(t *testing.T) {
	// The curve order n; any value >= n overflows.
	n, err := hex.DecodeString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	require.NoError(t, err)
	_, err = ScalarFromBytes(n)
	require.Error(t, err)
	var sErr *Error
	require.ErrorAs(t, err, &sErr)
	require.Equal(t, ErrInvalidScalar, sErr.Kind)
}

func TestDerivePubkeyIsDeterministic(t *testing.T) {
	b, err := hex.DecodeString("e8f32e723decf4051aefac8e2c93c9c5b214313817cdb01a1494b917c8436b35")
	require.NoError(t, err)
	s, err := ScalarFromBytes(b)
	require.NoError(t, err)

	p1 := DerivePubkey(s)
	p2 := DerivePubkey(s)
	require.Equal(t, CompressedEncode(p1), CompressedEncode(p2))

	// Known compressed pubkey for this scalar (computed via direct
	// generator-point multiplication over the secp256k1 curve equation).
	require.Equal(t, "0339a36013301597daef41fbe593a02cc513d0b55527ec2df1050e2e8ff49c85c2", hex.EncodeToString(CompressedEncode(p1)[:]))
}

func TestPointFromCompressedRoundTrip(t *testing.T) {
	b, err := hex.DecodeString("e8f32e723decf4051aefac8e2c93c9c5b214313817cdb01a1494b917c8436b35")
	require.NoError(t, err)
	s, err := ScalarFromBytes(b)
	require.NoError(t, err)
	p := DerivePubkey(s)
	encoded := CompressedEncode(p)

	reparsed, err := PointFromCompressed(encoded[:])
	require.NoError(t, err)
	require.Equal(t, encoded, CompressedEncode(reparsed))
}

func TestScalarTweakAddMatchesDerivePubkeyCommutativity(t *testing.T) {
	parentBytes, err := hex.DecodeString("e8f32e723decf4051aefac8e2c93c9c5b214313817cdb01a1494b917c8436b35")
	require.NoError(t, err)
	parent, err := ScalarFromBytes(parentBytes)
	require.NoError(t, err)

	tweak, err := hex.DecodeString(strings.Repeat("01", 32))
	require.NoError(t, err)

	childScalar, err := ScalarTweakAdd(parent, tweak)
	require.NoError(t, err)

	parentPoint := DerivePubkey(parent)
	childFromPoint, err := PointTweakAdd(parentPoint, tweak)
	require.NoError(t, err)

	childFromScalar := DerivePubkey(childScalar)
	require.Equal(t, CompressedEncode(childFromScalar), CompressedEncode(childFromPoint))
}
