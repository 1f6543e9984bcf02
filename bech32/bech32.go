// Package bech32 implements Bech32 and Bech32m: an HRP-prefixed,
// BCH-checksummed base32 text encoding, per BIP-173 and BIP-350. It is
// adapted from the btcsuite bech32 implementation (see
// _examples/other_examples/.../mleku-orly__pkg-crypto-ec-bech32-bech32.go.go)
// to this module's bitbuf primitives and shared error taxonomy, and to
// expose the encoded/decoded length helpers the spec calls for.
package bech32

import (
	"strings"

	"github.com/nerdcash/hdcore/bitbuf"
)

// Charset is the 32-symbol alphabet used in the data part of a bech32
// string. Charset[i] is the character for 5-bit value i.
const Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// checksumLen is the number of 5-bit symbols in the trailing checksum.
const checksumLen = 6

// Variant distinguishes the original Bech32 checksum constant from the
// Bech32m constant introduced by BIP-350.
type Variant int

const (
	// Bech32 is the original variant (checksum constant 1), used for
	// segwit v0.
	Bech32 Variant = iota
	// Bech32m is the BIP-350 variant (checksum constant 0x2bc830a3), used
	// for segwit v1+.
	Bech32m
)

func (v Variant) constant() int {
	if v == Bech32m {
		return 0x2bc830a3
	}
	return 1
}

var charsetIndex [256]int8

func init() {
	for i := range charsetIndex {
		charsetIndex[i] = -1
	}
	for i := 0; i < len(Charset); i++ {
		charsetIndex[Charset[i]] = int8(i)
	}
}

// generator encodes the BCH generator polynomial over GF(32).
var generator = [5]int{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}

// polymod computes the BCH checksum over the concatenation of values. Every
// element of values must be a 5-bit symbol.
func polymod(values []int) int {
	chk := 1
	for _, v := range values {
		top := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ v
		for i := 0; i < 5; i++ {
			if (top>>uint(i))&1 == 1 {
				chk ^= generator[i]
			}
		}
	}
	return chk
}

// hrpExpand expands the human-readable part into the value sequence the
// checksum is computed over: high bits, a zero separator, then low bits.
func hrpExpand(hrp string) []int {
	out := make([]int, 0, len(hrp)*2+1)
	for i := 0; i < len(hrp); i++ {
		out = append(out, int(hrp[i])>>5)
	}
	out = append(out, 0)
	for i := 0; i < len(hrp); i++ {
		out = append(out, int(hrp[i])&31)
	}
	return out
}

func createChecksum(hrp string, data []byte, variant Variant) []int {
	values := hrpExpand(hrp)
	for _, d := range data {
		values = append(values, int(d))
	}
	values = append(values, make([]int, checksumLen)...)
	mod := polymod(values) ^ variant.constant()

	checksum := make([]int, checksumLen)
	for i := 0; i < checksumLen; i++ {
		checksum[i] = (mod >> uint(5*(checksumLen-1-i))) & 31
	}
	return checksum
}

func verifyChecksum(hrp string, data []byte) (Variant, bool) {
	values := hrpExpand(hrp)
	for _, d := range data {
		values = append(values, int(d))
	}
	mod := polymod(values)
	switch mod {
	case Bech32.constant():
		return Bech32, true
	case Bech32m.constant():
		return Bech32m, true
	default:
		return 0, false
	}
}

// Encode encodes data (each byte a 5-bit value) with the given HRP into a
// lowercase Bech32 string.
func Encode(hrp string, data []byte) (string, error) {
	return encode(hrp, data, Bech32)
}

// EncodeM is Encode using the Bech32m checksum constant.
func EncodeM(hrp string, data []byte) (string, error) {
	return encode(hrp, data, Bech32m)
}

func encode(hrp string, data []byte, variant Variant) (string, error) {
	hrp = strings.ToLower(hrp)
	for _, b := range data {
		if int(b) >= len(Charset) {
			return "", newError(ErrInvalidCharacter, "data byte %d out of range", b)
		}
	}

	checksum := createChecksum(hrp, data, variant)

	var sb strings.Builder
	sb.Grow(len(hrp) + 1 + len(data) + checksumLen)
	sb.WriteString(hrp)
	sb.WriteByte('1')
	for _, d := range data {
		sb.WriteByte(Charset[d])
	}
	for _, c := range checksum {
		sb.WriteByte(Charset[c])
	}
	return sb.String(), nil
}

// Decode decodes a bech32/bech32m string, returning the lowercase HRP, the
// 5-bit data part (checksum excluded), and which variant's checksum matched.
func Decode(s string) (hrp string, data []byte, variant Variant, err error) {
	if len(s) < 8 {
		return "", nil, 0, newError(ErrInvalidCharacter, "input too short to be valid")
	}

	hasLower, hasUpper := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 33 || c > 126 {
			return "", nil, 0, newError(ErrInvalidCharacter, "byte 0x%02x outside printable ASCII", c)
		}
		if c >= 'a' && c <= 'z' {
			hasLower = true
		}
		if c >= 'A' && c <= 'Z' {
			hasUpper = true
		}
	}
	if hasLower && hasUpper {
		return "", nil, 0, newError(ErrInvalidCharacter, "mixed case")
	}
	if hasUpper {
		s = strings.ToLower(s)
	}

	sep := strings.LastIndexByte(s, '1')
	if sep < 1 || sep+checksumLen+1 > len(s) {
		return "", nil, 0, newError(ErrNoSeparator, "no valid '1' separator")
	}

	hrp = s[:sep]
	dataPart := s[sep+1:]

	decoded := make([]byte, len(dataPart))
	for i := 0; i < len(dataPart); i++ {
		idx := charsetIndex[dataPart[i]]
		if idx < 0 {
			return "", nil, 0, newError(ErrInvalidCharacter, "byte %q not in bech32 charset", dataPart[i])
		}
		decoded[i] = byte(idx)
	}

	v, ok := verifyChecksum(hrp, decoded)
	if !ok {
		return "", nil, 0, newError(ErrInvalidChecksum, "checksum does not match bech32 or bech32m constant")
	}

	return hrp, decoded[:len(decoded)-checksumLen], v, nil
}

// ConvertBits re-exports bitbuf.ConvertBits for convenience, converting
// between base-256 payloads and the base-32 data part Encode/Decode expect.
func ConvertBits(data []byte, fromBits, toBits uint, pad bool) ([]byte, error) {
	out, err := bitbuf.ConvertBits(data, fromBits, toBits, pad)
	if err != nil {
		return nil, newError(ErrBadPadding, "%v", err)
	}
	return out, nil
}

// EncodeFromBase256 converts an 8-bit payload to 5-bit symbols and encodes
// it as a Bech32 string.
func EncodeFromBase256(hrp string, data []byte) (string, error) {
	converted, err := ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", err
	}
	return Encode(hrp, converted)
}

// EncodeMFromBase256 is EncodeFromBase256 using the Bech32m checksum.
func EncodeMFromBase256(hrp string, data []byte) (string, error) {
	converted, err := ConvertBits(data, 8, 5, true)
	if err != nil {
		return "", err
	}
	return EncodeM(hrp, converted)
}

// DecodeToBase256 decodes a bech32/bech32m string and converts its data
// part from 5-bit symbols back to an 8-bit payload.
func DecodeToBase256(s string) (hrp string, payload []byte, variant Variant, err error) {
	hrp, data, variant, err := Decode(s)
	if err != nil {
		return "", nil, 0, err
	}
	payload, err = bitbuf.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", nil, 0, newError(ErrBadPadding, "%v", err)
	}
	return hrp, payload, variant, nil
}

// EncodedLen returns the length of the Bech32/Bech32m string Encode
// produces for a given HRP length and 5-bit data length.
func EncodedLen(hrpLen, dataLen int) int {
	return hrpLen + 1 + dataLen + checksumLen
}

// DecodedLen returns the separator index (tag length) and the number of
// base-256 bytes the data part decodes to, given the full encoded string.
// ok is false if there is no '1' separator or the data part is too short
// to hold the checksum.
func DecodedLen(encoded string) (tagLen int, dataLen int, ok bool) {
	sep := strings.LastIndexByte(encoded, '1')
	if sep < 0 {
		return 0, 0, false
	}
	fiveBitLen := len(encoded) - sep - 1 - checksumLen
	if fiveBitLen < 0 {
		return 0, 0, false
	}
	return sep, fiveBitLen * 5 / 8, true
}

// EncodeBufferTooSmall is a BufferTooSmall error constructor for callers
// that encode into a fixed-size destination (e.g. a stack buffer) rather
// than a Go string builder.
func EncodeBufferTooSmall(need, have int) error {
	return newError(ErrBufferTooSmall, "need %d bytes, have %d", need, have)
}
