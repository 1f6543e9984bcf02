package mnemonic

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderAllZeroEntropy(t *testing.T) {
	// spec.md S2.
	m, err := Render(make([]byte, 16))
	require.NoError(t, err)
	require.Equal(t, "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", m.Phrase())
}

func TestRenderAllOnesEntropy(t *testing.T) {
	// spec.md S3.
	entropy := bytes.Repeat([]byte{0xff}, 16)
	m, err := Render(entropy)
	require.NoError(t, err)
	require.Equal(t, "zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo wrong", m.Phrase())
}

func TestParseKnownDecoding(t *testing.T) {
	// spec.md S4.
	const phrase = "funny essay radar tattoo casual dream idle wrestle defy length obtain tobacco"
	m, passphrase, err := Parse(phrase)
	require.NoError(t, err)
	require.Empty(t, passphrase)
	require.Equal(t, "5e29a6c2ef223a851c2ff239b0026271", hex.EncodeToString(m.Entropy()))
}

func TestRoundTripAllLegalEntropyLengths(t *testing.T) {
	for bits := 128; bits <= 512; bits += 32 {
		entropy := bytes.Repeat([]byte{0xa5}, bits/8)
		m, err := Render(entropy)
		require.NoError(t, err)

		parsed, passphrase, err := Parse(m.Phrase())
		require.NoError(t, err)
		require.Empty(t, passphrase)
		require.Equal(t, entropy, parsed.Entropy())
	}
}

func TestParseTrailingWordAsPassphrase(t *testing.T) {
	m, err := Render(make([]byte, 16))
	require.NoError(t, err)

	withExtra := m.Phrase() + " mySecret"
	parsed, passphrase, err := Parse(withExtra)
	require.NoError(t, err)
	require.Equal(t, "mySecret", passphrase)
	require.Equal(t, m.Entropy(), parsed.Entropy())
}

func TestParseRejectsBadWordCount(t *testing.T) {
	_, _, err := Parse("only four legal words here")
	require.Error(t, err)
	var mErr *Error
	require.ErrorAs(t, err, &mErr)
	require.Equal(t, ErrBadWordCount, mErr.Kind)
}

func TestParseRejectsInvalidWord(t *testing.T) {
	m, err := Render(make([]byte, 16))
	require.NoError(t, err)

	words := m.Phrase()
	tampered := "notarealbip39word" + words[7:]
	_, _, err = Parse(tampered)
	require.Error(t, err)
	var mErr *Error
	require.ErrorAs(t, err, &mErr)
	require.Equal(t, ErrInvalidWord, mErr.Kind)
}

func TestParseRejectsBadChecksum(t *testing.T) {
	// Swap the final word for a different one, keeping the word count legal
	// but breaking the checksum with overwhelming probability.
	m, err := Render(make([]byte, 16))
	require.NoError(t, err)

	fields := strings.Fields(m.Phrase())
	last := fields[len(fields)-1]
	replacement := "zoo"
	if last == replacement {
		replacement = "abandon"
	}
	fields[len(fields)-1] = replacement

	_, _, err = Parse(strings.Join(fields, " "))
	require.Error(t, err)
	var mErr *Error
	require.ErrorAs(t, err, &mErr)
	require.Equal(t, ErrInvalidChecksum, mErr.Kind)
}

func TestSeedIsDeterministic(t *testing.T) {
	m, err := Render(make([]byte, 16))
	require.NoError(t, err)

	seed1 := m.Seed("TREZOR")
	seed2 := m.Seed("TREZOR")
	require.Equal(t, seed1, seed2)
	require.Len(t, seed1, 64)

	seedNoPassphrase := m.Seed("")
	require.NotEqual(t, seed1, seedNoPassphrase)
}

func TestCloseZeroesEntropyAndIsIdempotent(t *testing.T) {
	m, err := Render(bytes.Repeat([]byte{0x7f}, 16))
	require.NoError(t, err)

	m.Close()
	for _, b := range m.Entropy() {
		require.Zero(t, b)
	}
	require.NotPanics(t, func() { m.Close() })
}
