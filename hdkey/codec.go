package hdkey

import (
	"encoding/binary"

	"github.com/nerdcash/hdcore"
	"github.com/nerdcash/hdcore/base58check"
	"github.com/nerdcash/hdcore/secp256k1x"
)

const serializedLen = 78

// mapBase58checkErrorKind surfaces the underlying base58check failure kind
// instead of flattening every decode error into ErrUnexpectedLength, which
// is reserved for the post-decode 78-byte length check.
func mapBase58checkErrorKind(err error) hdcore.ErrorKind {
	b58Err, ok := err.(*base58check.Error)
	if !ok {
		return hdcore.ErrUnexpectedLength
	}
	switch b58Err.Kind {
	case base58check.ErrInvalidCharacter:
		return hdcore.ErrInvalidCharacter
	case base58check.ErrInvalidChecksum:
		return hdcore.ErrInvalidChecksum
	default:
		return hdcore.ErrUnexpectedLength
	}
}

func serializeHeader(version [4]byte, depth uint8, parentFingerprint ParentFingerprint, childIndex uint32, chainCode ChainCode) []byte {
	buf := make([]byte, serializedLen)
	copy(buf[0:4], version[:])
	buf[4] = depth
	copy(buf[5:9], parentFingerprint[:])
	binary.BigEndian.PutUint32(buf[9:13], childIndex)
	copy(buf[13:45], chainCode[:])
	return buf
}

// Encode returns k's Base58Check xprv text form: 78 bytes of version,
// depth, parent fingerprint, child index, chain code, and a 0x00 marker
// byte followed by the 32-byte private scalar.
func (k *ExtendedPrivateKey) Encode() string {
	buf := serializeHeader(hdcore.XprvVersion(k.network), k.depth, k.parentFingerprint, k.childIndex, k.chainCode)
	buf[45] = 0x00
	secret := k.scalar.Bytes()
	copy(buf[46:78], secret[:])
	return base58check.Encode(buf)
}

// Encode returns k's Base58Check xpub text form: the same 78-byte layout as
// ExtendedPrivateKey.Encode, with the final 33 bytes holding the compressed
// public point instead of a marker byte and private scalar.
func (k *ExtendedPublicKey) Encode() string {
	buf := serializeHeader(hdcore.XpubVersion(k.network), k.depth, k.parentFingerprint, k.childIndex, k.chainCode)
	compressed := secp256k1x.CompressedEncode(k.point)
	copy(buf[45:78], compressed[:])
	return base58check.Encode(buf)
}

func decodeHeader(s string) (network hdcore.Network, depth uint8, parentFingerprint ParentFingerprint, childIndex uint32, chainCode ChainCode, versionIsPrivate bool, keyMaterial []byte, err error) {
	combined, decodeErr := base58check.Decode(s)
	if decodeErr != nil {
		err = &hdcore.Error{Kind: mapBase58checkErrorKind(decodeErr), Msg: decodeErr.Error()}
		return
	}
	if len(combined) != serializedLen {
		err = &hdcore.Error{Kind: hdcore.ErrUnexpectedLength, Msg: "decoded extended key is not 78 bytes"}
		return
	}

	var version [4]byte
	copy(version[:], combined[0:4])

	if net, ok := hdcore.NetworkFromXprvVersion(version); ok {
		network, versionIsPrivate = net, true
	} else if net, ok := hdcore.NetworkFromXpubVersion(version); ok {
		network, versionIsPrivate = net, false
	} else {
		err = &hdcore.Error{Kind: hdcore.ErrUnrecognizedVersion, Msg: "unrecognized version bytes"}
		return
	}

	depth = combined[4]
	copy(parentFingerprint[:], combined[5:9])
	childIndex = binary.BigEndian.Uint32(combined[9:13])
	copy(chainCode[:], combined[13:45])
	keyMaterial = combined[45:78]

	if depth == 0 {
		var zeroFingerprint ParentFingerprint
		if parentFingerprint != zeroFingerprint || childIndex != 0 {
			err = &hdcore.Error{Kind: hdcore.ErrInvalidDerivationData, Msg: "depth zero must carry a zero parent fingerprint and child index"}
			return
		}
	}
	return
}

// DecodeXprv parses an xprv string, validating its version bytes, length,
// private marker byte, and depth/fingerprint/child-index consistency.
func DecodeXprv(s string) (*ExtendedPrivateKey, error) {
	network, depth, parentFingerprint, childIndex, chainCode, isPrivate, keyMaterial, err := decodeHeader(s)
	if err != nil {
		return nil, err
	}
	if !isPrivate {
		return nil, &hdcore.Error{Kind: hdcore.ErrUnrecognizedVersion, Msg: "version bytes name a public key, not xprv"}
	}
	if keyMaterial[0] != 0x00 {
		return nil, &hdcore.Error{Kind: hdcore.ErrInvalidKey, Msg: "private key material must begin with a 0x00 marker byte"}
	}

	scalar, err := secp256k1x.ScalarFromBytes(keyMaterial[1:])
	if err != nil {
		return nil, &hdcore.Error{Kind: hdcore.ErrInvalidKey, Msg: "private scalar: " + err.Error()}
	}

	return &ExtendedPrivateKey{
		network:           network,
		depth:             depth,
		childIndex:        childIndex,
		chainCode:         chainCode,
		parentFingerprint: parentFingerprint,
		scalar:            scalar,
	}, nil
}

// DecodeXpub parses an xpub string, validating its version bytes, length,
// compressed point, and depth/fingerprint/child-index consistency.
func DecodeXpub(s string) (*ExtendedPublicKey, error) {
	network, depth, parentFingerprint, childIndex, chainCode, isPrivate, keyMaterial, err := decodeHeader(s)
	if err != nil {
		return nil, err
	}
	if isPrivate {
		return nil, &hdcore.Error{Kind: hdcore.ErrUnrecognizedVersion, Msg: "version bytes name a private key, not xpub"}
	}

	point, err := secp256k1x.PointFromCompressed(keyMaterial)
	if err != nil {
		return nil, &hdcore.Error{Kind: hdcore.ErrInvalidKey, Msg: "public point: " + err.Error()}
	}

	return &ExtendedPublicKey{
		network:           network,
		depth:             depth,
		childIndex:        childIndex,
		chainCode:         chainCode,
		parentFingerprint: parentFingerprint,
		point:             point,
	}, nil
}
