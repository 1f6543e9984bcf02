// Package hdcore implements a deterministic, Bitcoin-family hierarchical
// deterministic wallet core: BIP-39 mnemonics, BIP-32 extended keys, and a
// BIP-44 gap-limit account/address walker, built on the narrower codec
// packages (base58check, bech32, bitbuf) and the mnemonic package that
// ship alongside it in this module.
package hdcore

import (
	"fmt"

	"github.com/nerdcash/hdcore/keypath"
)

// ErrorKind enumerates this module's top-level failure modes: those
// belonging to extended-key decoding and derivation. The narrower codec
// packages (base58check, bech32, mnemonic) carry their own Kind enums; when
// hdkey surfaces a base58check failure it maps that failure onto the
// matching kind here and keeps the original message as text.
type ErrorKind int

const (
	// ErrUnrecognizedVersion indicates xprv/xpub version bytes outside the
	// four known mainnet/testnet private/public headers.
	ErrUnrecognizedVersion ErrorKind = iota
	// ErrUnexpectedLength indicates a decoded extended key was not 78 bytes.
	ErrUnexpectedLength
	// ErrInvalidChecksum indicates the Base58Check checksum on an xprv/xpub
	// string did not match its payload.
	ErrInvalidChecksum
	// ErrInvalidCharacter indicates an xprv/xpub string contained a byte
	// outside the Base58 alphabet.
	ErrInvalidCharacter
	// ErrInvalidKey indicates a scalar or point the curve backend rejected,
	// or a private-marker byte that was not 0x00.
	ErrInvalidKey
	// ErrInvalidDerivationData indicates a depth/parent-fingerprint/child-
	// index combination that contradicts master-key semantics.
	ErrInvalidDerivationData
	// ErrHardenedFromPublic indicates CKDpub was asked for a hardened child.
	ErrHardenedFromPublic
	// ErrRootedFromNonRoot indicates a rooted path was applied to a key
	// whose depth is greater than zero.
	ErrRootedFromNonRoot
	// ErrDepthOverflow indicates derivation would push depth past 255.
	ErrDepthOverflow
	// ErrVeryUnlikelyInvalidChildKey indicates CKDpriv/CKDpub produced an
	// out-of-range scalar or an identity point (probability < 2^-127); the
	// failing child index is attached via Error.ChildIndex and the caller
	// must retry with child_index+1.
	ErrVeryUnlikelyInvalidChildKey
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnrecognizedVersion:
		return "UnrecognizedVersion"
	case ErrUnexpectedLength:
		return "UnexpectedLength"
	case ErrInvalidChecksum:
		return "InvalidChecksum"
	case ErrInvalidCharacter:
		return "InvalidCharacter"
	case ErrInvalidKey:
		return "InvalidKey"
	case ErrInvalidDerivationData:
		return "InvalidDerivationData"
	case ErrHardenedFromPublic:
		return "HardenedFromPublic"
	case ErrRootedFromNonRoot:
		return "RootedFromNonRoot"
	case ErrDepthOverflow:
		return "DepthOverflow"
	case ErrVeryUnlikelyInvalidChildKey:
		return "VeryUnlikelyInvalidChildKey"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by the hdkey package. Path,
// when non-nil, names the derivation step the failure occurred at.
// ChildIndex is meaningful only for ErrVeryUnlikelyInvalidChildKey.
type Error struct {
	Kind       ErrorKind
	Msg        string
	Path       *keypath.Path
	ChildIndex uint32
}

func (e *Error) Error() string {
	if e.Path != nil {
		return fmt.Sprintf("hdcore: %s: %s (at %s)", e.Kind, e.Msg, e.Path.String())
	}
	return fmt.Sprintf("hdcore: %s: %s", e.Kind, e.Msg)
}

// Is reports whether target is an *Error with the same Kind, so callers can
// use errors.Is(err, &hdcore.Error{Kind: hdcore.ErrInvalidKey}).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

