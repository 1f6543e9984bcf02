package hdkey

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nerdcash/hdcore"
	"github.com/nerdcash/hdcore/base58check"
	"github.com/nerdcash/hdcore/keypath"
)

func TestMasterFromSeedKnownVector(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)

	master, err := MasterFromSeed(seed, hdcore.MainNet)
	require.NoError(t, err)
	require.Equal(t,
		"xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi",
		master.Encode())
}

func TestDerivePathKnownVector(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	master, err := MasterFromSeed(seed, hdcore.MainNet)
	require.NoError(t, err)

	path, err := keypath.Parse("m/0'/1/2'/2/1000000000")
	require.NoError(t, err)

	derived, err := master.Derive(path)
	require.NoError(t, err)
	require.Equal(t,
		"xprvA41z7zogVVwxVSgdKUHDy1SKmdb533PjDz7J6N6mV6uS3ze1ai8FHa8kmHScGpWmj4WggLyQjgPie1rFSruoUihUZREPSL39UNdE3BBDu76",
		derived.Encode())
	require.Equal(t,
		"xpub6H1LXWLaKsWFhvm6RVpEL9P4KfRZSW7abD2ttkWP3SSQvnyA8FSVqNTEcYFgJS2UaFcxupHiYkro49S8yGasTvXEYBVPamhGW6cFJodrTHy",
		derived.Public().Encode())
}

func TestNonHardenedDerivationCommutesWithPublicDerivation(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	master, err := MasterFromSeed(seed, hdcore.MainNet)
	require.NoError(t, err)

	childPriv, err := master.DerivePrivate(7)
	require.NoError(t, err)

	childPubFromPriv := childPriv.Public()
	childPubFromPub, err := master.Public().DerivePublic(7)
	require.NoError(t, err)

	require.Equal(t, childPubFromPriv.Encode(), childPubFromPub.Encode())
}

func TestHardenedDerivationFromPublicFails(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	master, err := MasterFromSeed(seed, hdcore.MainNet)
	require.NoError(t, err)

	_, err = master.Public().DerivePublic(0 | keypath.HardenedBit)
	require.Error(t, err)
	var hErr *hdcore.Error
	require.ErrorAs(t, err, &hErr)
	require.Equal(t, hdcore.ErrHardenedFromPublic, hErr.Kind)
}

func TestRootedPathOnNonRootKeyFails(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	master, err := MasterFromSeed(seed, hdcore.MainNet)
	require.NoError(t, err)

	child, err := master.DerivePrivate(0)
	require.NoError(t, err)

	rooted, err := keypath.Parse("m/0")
	require.NoError(t, err)
	_, err = child.Derive(rooted)
	require.Error(t, err)
	var hErr *hdcore.Error
	require.ErrorAs(t, err, &hErr)
	require.Equal(t, hdcore.ErrRootedFromNonRoot, hErr.Kind)
}

func TestIdentifierIsStableAndCached(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	master, err := MasterFromSeed(seed, hdcore.MainNet)
	require.NoError(t, err)

	id1, err := master.Identifier()
	require.NoError(t, err)
	require.NotNil(t, master.cachedIdentifier)
	require.Equal(t, id1, *master.cachedIdentifier)
	id2, err := master.Identifier()
	require.NoError(t, err)
	require.Equal(t, id1, id2)

	pubID, err := master.Public().Identifier()
	require.NoError(t, err)
	require.Equal(t, id1, pubID)
}

func TestEncodeDecodeXprvRoundTrip(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	master, err := MasterFromSeed(seed, hdcore.MainNet)
	require.NoError(t, err)

	encoded := master.Encode()
	decoded, err := DecodeXprv(encoded)
	require.NoError(t, err)
	require.Equal(t, encoded, decoded.Encode())
}

func TestEncodeDecodeXpubRoundTrip(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	master, err := MasterFromSeed(seed, hdcore.MainNet)
	require.NoError(t, err)

	encoded := master.Public().Encode()
	decoded, err := DecodeXpub(encoded)
	require.NoError(t, err)
	require.Equal(t, encoded, decoded.Encode())
}

func TestDecodeXprvRejectsWrongLength(t *testing.T) {
	// A valid Base58Check string whose payload is 77 bytes, not 78.
	_, err := DecodeXprv(base58check.Encode(make([]byte, 77)))
	require.Error(t, err)
	var hErr *hdcore.Error
	require.ErrorAs(t, err, &hErr)
	require.Equal(t, hdcore.ErrUnexpectedLength, hErr.Kind)
}

func TestDecodeXprvRejectsWrongVersion(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	master, err := MasterFromSeed(seed, hdcore.MainNet)
	require.NoError(t, err)

	_, err = DecodeXprv(master.Public().Encode())
	require.Error(t, err)
	var hErr *hdcore.Error
	require.ErrorAs(t, err, &hErr)
	require.Equal(t, hdcore.ErrUnrecognizedVersion, hErr.Kind)
}

func TestDecodeRejectsNonZeroFingerprintAtDepthZero(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	master, err := MasterFromSeed(seed, hdcore.MainNet)
	require.NoError(t, err)
	child, err := master.DerivePrivate(0)
	require.NoError(t, err)

	// Graft a depth-zero header onto a non-root key's serialized body:
	// the parent fingerprint is non-zero, which must be rejected.
	tampered := serializeHeader(hdcore.XprvVersion(hdcore.MainNet), 0, child.parentFingerprint, child.childIndex, child.chainCode)
	tampered[45] = 0x00
	secret := child.scalar.Bytes()
	copy(tampered[46:78], secret[:])
	encoded := base58check.Encode(tampered)

	_, err = DecodeXprv(encoded)
	require.Error(t, err)
	var hErr *hdcore.Error
	require.ErrorAs(t, err, &hErr)
	require.Equal(t, hdcore.ErrInvalidDerivationData, hErr.Kind)
}

func TestDecodeXprvRejectsCorruptedChecksum(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	master, err := MasterFromSeed(seed, hdcore.MainNet)
	require.NoError(t, err)

	encoded := master.Encode()
	corrupted := []byte(encoded)
	last := corrupted[len(corrupted)-1]
	if last == '1' {
		corrupted[len(corrupted)-1] = '2'
	} else {
		corrupted[len(corrupted)-1] = '1'
	}

	_, err = DecodeXprv(string(corrupted))
	require.Error(t, err)
	var hErr *hdcore.Error
	require.ErrorAs(t, err, &hErr)
	require.Equal(t, hdcore.ErrInvalidChecksum, hErr.Kind)
}

func TestCloseZeroesScalarAndIsIdempotent(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	require.NoError(t, err)
	master, err := MasterFromSeed(seed, hdcore.MainNet)
	require.NoError(t, err)

	master.Close()
	require.True(t, master.scalar.IsZero())
	require.NotPanics(t, func() { master.Close() })
}
