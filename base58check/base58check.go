// Package base58check implements Base58Check: base58 text encoding of a
// byte payload with an appended 4-byte double-SHA256 checksum, in the
// style of github.com/btcsuite/btcd/btcutil/base58 but exposing the
// buffer-sized variants and typed error taxonomy this module's callers
// (notably the xprv/xpub codec in package hdkey) require.
package base58check

import (
	"bytes"
	"crypto/sha256"
	"math/big"
)

// Alphabet is the 58-symbol base58 alphabet: digits and letters with 0, O,
// I, and l removed to avoid visual ambiguity.
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const checksumLen = 4

var bigRadix = big.NewInt(58)
var bigZero = big.NewInt(0)

var alphabetIndex [256]int8

func init() {
	for i := range alphabetIndex {
		alphabetIndex[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		alphabetIndex[Alphabet[i]] = int8(i)
	}
}

func checksum(payload []byte) [checksumLen]byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	var out [checksumLen]byte
	copy(out[:], second[:checksumLen])
	return out
}

// MaxEncodedLen returns an upper bound on the number of characters Encode
// produces for an n-byte payload (before the checksum is appended).
func MaxEncodedLen(n int) int {
	return ((n+checksumLen)*138)/100 + 1
}

// MaxDecodedLen returns an upper bound on the number of bytes Decode
// produces for an m-character encoded string. Each leading '1' decodes to a
// whole zero byte, so an all-'1' string decodes to m bytes and no
// m-character string decodes to more.
func MaxDecodedLen(m int) int {
	return m
}

// Encode appends a double-SHA256 checksum to payload and returns the
// Base58Check encoding.
func Encode(payload []byte) string {
	buf := make([]byte, len(payload)+checksumLen)
	copy(buf, payload)
	cksum := checksum(payload)
	copy(buf[len(payload):], cksum[:])
	return encodeRaw(buf)
}

func encodeRaw(combined []byte) string {
	leadingZeros := 0
	for leadingZeros < len(combined) && combined[leadingZeros] == 0 {
		leadingZeros++
	}

	x := new(big.Int).SetBytes(combined)
	mod := new(big.Int)
	var digits []byte
	for x.Cmp(bigZero) > 0 {
		x.DivMod(x, bigRadix, mod)
		digits = append(digits, Alphabet[mod.Int64()])
	}

	out := make([]byte, 0, leadingZeros+len(digits))
	for i := 0; i < leadingZeros; i++ {
		out = append(out, Alphabet[0])
	}
	// digits were accumulated least-significant-first; reverse them.
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, digits[i])
	}
	return string(out)
}

// Decode reverses Encode, verifying and stripping the checksum. It returns
// *Error with Kind InvalidCharacter, InvalidChecksum as appropriate.
func Decode(s string) ([]byte, error) {
	combined, err := decodeRaw(s)
	if err != nil {
		return nil, err
	}
	if len(combined) < checksumLen {
		return nil, newError(ErrInvalidChecksum, "decoded length %d shorter than checksum", len(combined))
	}
	payload := combined[:len(combined)-checksumLen]
	want := combined[len(combined)-checksumLen:]
	got := checksum(payload)
	if !bytes.Equal(got[:], want) {
		return nil, newError(ErrInvalidChecksum, "checksum mismatch")
	}
	return payload, nil
}

func decodeRaw(s string) ([]byte, error) {
	leadingZeros := 0
	for leadingZeros < len(s) && s[leadingZeros] == Alphabet[0] {
		leadingZeros++
	}

	x := new(big.Int)
	for i := 0; i < len(s); i++ {
		idx := alphabetIndex[s[i]]
		if idx < 0 {
			return nil, newError(ErrInvalidCharacter, "byte %q (0x%02x) not in base58 alphabet", s[i], s[i])
		}
		x.Mul(x, bigRadix)
		x.Add(x, big.NewInt(int64(idx)))
	}

	decodedBig := x.Bytes()
	out := make([]byte, leadingZeros+len(decodedBig))
	copy(out[leadingZeros:], decodedBig)
	return out, nil
}

// EncodeToBuf encodes payload into dst (which must hold at least
// MaxEncodedLen(len(payload)) bytes) and returns the number of bytes
// written, or an *Error with Kind BufferTooSmall.
func EncodeToBuf(dst []byte, payload []byte) (int, error) {
	encoded := Encode(payload)
	if len(dst) < len(encoded) {
		return 0, newError(ErrBufferTooSmall, "need %d bytes, have %d", len(encoded), len(dst))
	}
	return copy(dst, encoded), nil
}

// DecodeToBuf decodes s into dst (which must hold at least
// MaxDecodedLen(len(s)) bytes) and returns the number of bytes written.
func DecodeToBuf(dst []byte, s string) (int, error) {
	decoded, err := Decode(s)
	if err != nil {
		return 0, err
	}
	if len(dst) < len(decoded) {
		return 0, newError(ErrBufferTooSmall, "need %d bytes, have %d", len(decoded), len(dst))
	}
	return copy(dst, decoded), nil
}
