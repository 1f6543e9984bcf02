package bech32

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeBech32mCanonicalVector(t *testing.T) {
	// spec.md S6: Bech32m canonical vector (BIP-350 test vector, same
	// string the reference implementation uses).
	const vector = "split1checkupstagehandshakeupstreamerranterredcaperredlc445v"

	hrp, data, variant, err := Decode(vector)
	require.NoError(t, err)
	require.Equal(t, "split", hrp)
	require.Equal(t, Bech32m, variant)
	require.Len(t, data, 48)

	reencoded, err := EncodeM(hrp, data)
	require.NoError(t, err)
	require.Equal(t, vector, reencoded)
}

func TestDecodeBech32CanonicalVector(t *testing.T) {
	const vector = "split1checkupstagehandshakeupstreamerranterredcaperred2y9e3w"

	hrp, data, variant, err := Decode(vector)
	require.NoError(t, err)
	require.Equal(t, "split", hrp)
	require.Equal(t, Bech32, variant)

	reencoded, err := Encode(hrp, data)
	require.NoError(t, err)
	require.Equal(t, vector, reencoded)
}

func TestRoundTripFromBase256(t *testing.T) {
	cases := [][]byte{
		{},
		{0x00},
		{0x00, 0x01, 0x02, 0x03, 0x04},
		[]byte("hello bech32"),
	}
	for _, payload := range cases {
		encoded, err := EncodeFromBase256("hd", payload)
		require.NoError(t, err)

		hrp, decoded, variant, err := DecodeToBase256(encoded)
		require.NoError(t, err)
		require.Equal(t, "hd", hrp)
		require.Equal(t, Bech32, variant)
		require.Equal(t, payload, decoded)
	}
}

func TestDecodeRejectsMixedCase(t *testing.T) {
	const vector = "split1checkupstagehandshakeupstreamerranterredcaperredlc445v"
	mixed := strings.ToUpper(vector[:len(vector)/2]) + vector[len(vector)/2:]

	_, _, _, err := Decode(mixed)
	require.Error(t, err)
	var bechErr *Error
	require.ErrorAs(t, err, &bechErr)
	require.Equal(t, ErrInvalidCharacter, bechErr.Kind)
}

func TestDecodeRejectsMissingSeparator(t *testing.T) {
	_, _, _, err := Decode("nosepinhere")
	require.Error(t, err)
	var bechErr *Error
	require.ErrorAs(t, err, &bechErr)
	require.Equal(t, ErrNoSeparator, bechErr.Kind)
}

func TestDecodeRejectsInvalidCharacter(t *testing.T) {
	_, _, _, err := Decode("hd1bbbbbbbo")
	require.Error(t, err)
	var bechErr *Error
	require.ErrorAs(t, err, &bechErr)
	require.Equal(t, ErrInvalidCharacter, bechErr.Kind)
}

func TestDecodeRejectsBadChecksum(t *testing.T) {
	const vector = "split1checkupstagehandshakeupstreamerranterredcaperredlc445v"
	tampered := []byte(vector)
	last := tampered[len(tampered)-1]
	if last == Charset[0] {
		last = Charset[1]
	} else {
		last = Charset[0]
	}
	tampered[len(tampered)-1] = last

	_, _, _, err := Decode(string(tampered))
	require.Error(t, err)
	var bechErr *Error
	require.ErrorAs(t, err, &bechErr)
	require.Equal(t, ErrInvalidChecksum, bechErr.Kind)
}

func TestEncodedLenMatchesEncode(t *testing.T) {
	encoded, err := Encode("bc", []byte{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.Equal(t, EncodedLen(len("bc"), 5), len(encoded))
}

func TestDecodedLenMatchesDecodeToBase256(t *testing.T) {
	payload := []byte("some payload bytes")
	encoded, err := EncodeFromBase256("hd", payload)
	require.NoError(t, err)

	_, decoded, _, err := DecodeToBase256(encoded)
	require.NoError(t, err)

	_, dataLen, ok := DecodedLen(encoded)
	require.True(t, ok)
	require.Equal(t, len(decoded), dataLen)
}
