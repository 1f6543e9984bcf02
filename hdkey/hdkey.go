// Package hdkey implements BIP-32 hierarchical deterministic keys: master
// key generation from a seed, private (CKDpriv) and public (CKDpub) child
// derivation, and the xprv/xpub text codec. It is grounded on the teacher's
// keys.go (secp256k1 key construction via PrivKeyFromBytes/PubKey) and
// bip44.go (per-level NewChildKey walking), generalized from that package's
// single BIP-44 path shape to arbitrary keypath.Path values, and on
// kubetrail-bip32's key.go for the version-byte table and the decode-time
// invariant checks (depth-zero fingerprint/child-index consistency, scalar
// range) its Validate function performs.
package hdkey

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/binary"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required by the BIP-32 identifier algorithm

	"github.com/nerdcash/hdcore"
	"github.com/nerdcash/hdcore/keypath"
	"github.com/nerdcash/hdcore/secp256k1x"
)

const (
	minSeedLen = 13
	maxSeedLen = 64
)

// ChainCode is the 32-byte entropy an extended key mixes into every child
// derivation alongside the child index.
type ChainCode [32]byte

// ParentFingerprint is the first 4 bytes of the parent key's Identifier,
// stored in a child's serialized form to name its parent without requiring
// the parent itself.
type ParentFingerprint [4]byte

// Identifier is RIPEMD160(SHA256(compressed pubkey)): the full-length
// fingerprint a ParentFingerprint is truncated from.
type Identifier [20]byte

// ExtendedKey is the capability set common to ExtendedPrivateKey and
// ExtendedPublicKey: the BIP-32 node's coordinates in the tree, independent
// of whether its private scalar is present.
type ExtendedKey interface {
	Network() hdcore.Network
	Depth() uint8
	ChildIndex() uint32
	ChainCode() ChainCode
	ParentFingerprint() ParentFingerprint
	DerivationPath() *keypath.Path
	Identifier() (Identifier, error)
}

// ExtendedPrivateKey is a BIP-32 node holding its private scalar. It derives
// both private and public children and serializes to xprv text.
type ExtendedPrivateKey struct {
	network            hdcore.Network
	depth              uint8
	childIndex         uint32
	chainCode          ChainCode
	parentFingerprint  ParentFingerprint
	derivationPath     *keypath.Path
	scalar             secp256k1x.Scalar
	closed             bool
	cachedPublic       *ExtendedPublicKey
	cachedIdentifier   *Identifier
}

// ExtendedPublicKey is a BIP-32 node holding only its curve point. It
// derives non-hardened public children and serializes to xpub text.
type ExtendedPublicKey struct {
	network           hdcore.Network
	depth             uint8
	childIndex        uint32
	chainCode         ChainCode
	parentFingerprint ParentFingerprint
	derivationPath    *keypath.Path
	point             secp256k1x.Point
	cachedIdentifier  *Identifier
}

var (
	_ ExtendedKey = (*ExtendedPrivateKey)(nil)
	_ ExtendedKey = (*ExtendedPublicKey)(nil)
)

func (k *ExtendedPrivateKey) Network() hdcore.Network           { return k.network }
func (k *ExtendedPrivateKey) Depth() uint8                      { return k.depth }
func (k *ExtendedPrivateKey) ChildIndex() uint32                { return k.childIndex }
func (k *ExtendedPrivateKey) ChainCode() ChainCode              { return k.chainCode }
func (k *ExtendedPrivateKey) ParentFingerprint() ParentFingerprint { return k.parentFingerprint }
func (k *ExtendedPrivateKey) DerivationPath() *keypath.Path     { return k.derivationPath }

func (k *ExtendedPublicKey) Network() hdcore.Network           { return k.network }
func (k *ExtendedPublicKey) Depth() uint8                      { return k.depth }
func (k *ExtendedPublicKey) ChildIndex() uint32                { return k.childIndex }
func (k *ExtendedPublicKey) ChainCode() ChainCode              { return k.chainCode }
func (k *ExtendedPublicKey) ParentFingerprint() ParentFingerprint { return k.parentFingerprint }
func (k *ExtendedPublicKey) DerivationPath() *keypath.Path     { return k.derivationPath }

// Equal reports whether two chain codes are identical, in constant time.
func (c ChainCode) Equal(other ChainCode) bool {
	return subtle.ConstantTimeCompare(c[:], other[:]) == 1
}

func identifierOf(compressed [33]byte) Identifier {
	sum := sha256.Sum256(compressed[:])
	h := ripemd160.New()
	h.Write(sum[:])
	digest := h.Sum(nil)
	var id Identifier
	copy(id[:], digest)
	return id
}

// Identifier returns RIPEMD160(SHA256(compressed pubkey)), computed once and
// cached: the value never changes for a given key, but deriving it costs two
// hashes, so repeated calls should not repeat the work.
func (k *ExtendedPublicKey) Identifier() (Identifier, error) {
	if k.cachedIdentifier != nil {
		return *k.cachedIdentifier, nil
	}
	id := identifierOf(secp256k1x.CompressedEncode(k.point))
	k.cachedIdentifier = &id
	return id, nil
}

// Identifier returns the identifier of k's corresponding public key.
func (k *ExtendedPrivateKey) Identifier() (Identifier, error) {
	if k.cachedIdentifier != nil {
		return *k.cachedIdentifier, nil
	}
	id, err := k.Public().Identifier()
	if err != nil {
		return Identifier{}, err
	}
	k.cachedIdentifier = &id
	return id, nil
}

// Public returns k's corresponding ExtendedPublicKey, computed once and
// cached on first call.
func (k *ExtendedPrivateKey) Public() *ExtendedPublicKey {
	if k.cachedPublic != nil {
		return k.cachedPublic
	}
	k.cachedPublic = &ExtendedPublicKey{
		network:           k.network,
		depth:             k.depth,
		childIndex:        k.childIndex,
		chainCode:         k.chainCode,
		parentFingerprint: k.parentFingerprint,
		derivationPath:    k.derivationPath,
		point:             secp256k1x.DerivePubkey(k.scalar),
	}
	return k.cachedPublic
}

// Close wipes k's private scalar. It is idempotent: calling it more than
// once, or calling any other method afterward, is safe and simply observes
// a zeroed key.
func (k *ExtendedPrivateKey) Close() {
	if k.closed {
		return
	}
	k.scalar.Zero()
	k.closed = true
}

// MasterFromSeed derives the master extended private key from a seed, per
// BIP-32: I = HMAC-SHA512("Bitcoin seed", seed); the left half becomes the
// master scalar (which must lie in [1, n-1]) and the right half becomes the
// master chain code. seed must be between 13 and 64 bytes.
func MasterFromSeed(seed []byte, network hdcore.Network) (*ExtendedPrivateKey, error) {
	if len(seed) < minSeedLen || len(seed) > maxSeedLen {
		return nil, &hdcore.Error{
			Kind: hdcore.ErrInvalidKey,
			Msg:  "seed must be between 13 and 64 bytes",
		}
	}

	mac := hmac.New(sha512.New, []byte("Bitcoin seed"))
	mac.Write(seed)
	i := mac.Sum(nil)
	il, ir := i[:32], i[32:]

	scalar, err := secp256k1x.ScalarFromBytes(il)
	if err != nil {
		return nil, &hdcore.Error{Kind: hdcore.ErrInvalidKey, Msg: "master scalar out of range: " + err.Error()}
	}

	var chainCode ChainCode
	copy(chainCode[:], ir)

	return &ExtendedPrivateKey{
		network:        network,
		depth:          0,
		childIndex:     0,
		chainCode:      chainCode,
		derivationPath: keypath.Root(true),
		scalar:         scalar,
	}, nil
}

func hardenedChildData(parentScalar secp256k1x.Scalar, index uint32) []byte {
	secretBytes := parentScalar.Bytes()
	data := make([]byte, 0, 37)
	data = append(data, 0x00)
	data = append(data, secretBytes[:]...)
	var idxBuf [4]byte
	binary.BigEndian.PutUint32(idxBuf[:], index)
	return append(data, idxBuf[:]...)
}

func nonHardenedChildData(parentPoint secp256k1x.Point, index uint32) []byte {
	compressed := secp256k1x.CompressedEncode(parentPoint)
	data := make([]byte, 0, 37)
	data = append(data, compressed[:]...)
	var idxBuf [4]byte
	binary.BigEndian.PutUint32(idxBuf[:], index)
	return append(data, idxBuf[:]...)
}

func fingerprintOf(id Identifier) ParentFingerprint {
	var fp ParentFingerprint
	copy(fp[:], id[:4])
	return fp
}

// DerivePrivate computes the private child at the given raw index (hardened
// bit included, if wanted) per CKDpriv. On the vanishingly unlikely
// (probability < 2^-127) event that the derived scalar is invalid, it
// returns an *hdcore.Error with Kind ErrVeryUnlikelyInvalidChildKey and
// ChildIndex set to index; the caller should retry with index+1.
func (k *ExtendedPrivateKey) DerivePrivate(index uint32) (*ExtendedPrivateKey, error) {
	if k.depth == 255 {
		return nil, &hdcore.Error{Kind: hdcore.ErrDepthOverflow, Msg: "derivation would push depth past 255", Path: k.derivationPath}
	}

	var data []byte
	if keypath.IsHardened(index) {
		data = hardenedChildData(k.scalar, index)
	} else {
		data = nonHardenedChildData(secp256k1x.DerivePubkey(k.scalar), index)
	}

	mac := hmac.New(sha512.New, k.chainCode[:])
	mac.Write(data)
	i := mac.Sum(nil)
	il, ir := i[:32], i[32:]

	childScalar, err := secp256k1x.ScalarTweakAdd(k.scalar, il)
	if err != nil {
		return nil, &hdcore.Error{Kind: hdcore.ErrVeryUnlikelyInvalidChildKey, Msg: err.Error(), ChildIndex: index}
	}

	parentID, err := k.Identifier()
	if err != nil {
		return nil, err
	}

	var childChainCode ChainCode
	copy(childChainCode[:], ir)

	var childPath *keypath.Path
	if k.derivationPath != nil {
		childPath = k.derivationPath.Append(index)
	}

	return &ExtendedPrivateKey{
		network:           k.network,
		depth:             k.depth + 1,
		childIndex:        index,
		chainCode:         childChainCode,
		parentFingerprint: fingerprintOf(parentID),
		derivationPath:    childPath,
		scalar:            childScalar,
	}, nil
}

// DerivePublic computes the non-hardened public child at the given raw
// index per CKDpub. A hardened index is rejected with ErrHardenedFromPublic,
// since a hardened child requires the parent's private scalar. On the
// vanishingly unlikely event that the derived point is the identity, it
// returns ErrVeryUnlikelyInvalidChildKey with ChildIndex set to index.
func (k *ExtendedPublicKey) DerivePublic(index uint32) (*ExtendedPublicKey, error) {
	if keypath.IsHardened(index) {
		return nil, &hdcore.Error{Kind: hdcore.ErrHardenedFromPublic, Msg: "cannot derive a hardened child from a public key", Path: k.derivationPath}
	}
	if k.depth == 255 {
		return nil, &hdcore.Error{Kind: hdcore.ErrDepthOverflow, Msg: "derivation would push depth past 255", Path: k.derivationPath}
	}

	data := nonHardenedChildData(k.point, index)

	mac := hmac.New(sha512.New, k.chainCode[:])
	mac.Write(data)
	i := mac.Sum(nil)
	il, ir := i[:32], i[32:]

	childPoint, err := secp256k1x.PointTweakAdd(k.point, il)
	if err != nil {
		return nil, &hdcore.Error{Kind: hdcore.ErrVeryUnlikelyInvalidChildKey, Msg: err.Error(), ChildIndex: index}
	}

	parentID, err := k.Identifier()
	if err != nil {
		return nil, err
	}

	var childChainCode ChainCode
	copy(childChainCode[:], ir)

	var childPath *keypath.Path
	if k.derivationPath != nil {
		childPath = k.derivationPath.Append(index)
	}

	return &ExtendedPublicKey{
		network:           k.network,
		depth:             k.depth + 1,
		childIndex:        index,
		chainCode:         childChainCode,
		parentFingerprint: fingerprintOf(parentID),
		derivationPath:    childPath,
		point:             childPoint,
	}, nil
}

// Derive walks path from k, one CKDpriv step per index. A rooted path
// applied to a key whose depth is greater than zero is rejected with
// ErrRootedFromNonRoot: a rooted path only makes sense relative to the
// master key.
func (k *ExtendedPrivateKey) Derive(path *keypath.Path) (*ExtendedPrivateKey, error) {
	if path.IsRooted() && k.depth > 0 {
		return nil, &hdcore.Error{Kind: hdcore.ErrRootedFromNonRoot, Msg: "rooted path applied to a non-root key", Path: path}
	}
	current := k
	for i := 1; i <= path.Length(); i++ {
		index, err := path.Step(i)
		if err != nil {
			return nil, err
		}
		next, err := current.DerivePrivate(index)
		if err != nil {
			return nil, err
		}
		if current != k {
			current.Close()
		}
		current = next
	}
	return current, nil
}

// Derive walks path from k, one CKDpub step per index. Any hardened step
// fails with ErrHardenedFromPublic.
func (k *ExtendedPublicKey) Derive(path *keypath.Path) (*ExtendedPublicKey, error) {
	if path.IsRooted() && k.depth > 0 {
		return nil, &hdcore.Error{Kind: hdcore.ErrRootedFromNonRoot, Msg: "rooted path applied to a non-root key", Path: path}
	}
	current := k
	for i := 1; i <= path.Length(); i++ {
		index, err := path.Step(i)
		if err != nil {
			return nil, err
		}
		next, err := current.DerivePublic(index)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}
