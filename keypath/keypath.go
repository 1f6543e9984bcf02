// Package keypath implements BIP-32 derivation paths: a persistent,
// immutable linked list of 32-bit child indices with an ABNF-style text
// grammar. It generalizes the flat []uint32/ParsePath shape used by the
// pack's HD-wallet examples (e.g. lnd's hdkeychain.ParsePath and
// iavl-okchain-go-sdk's hdpath.go) into the list-node value type spec.md
// §3 and §4.E call for; the string grammar and hardened-bit convention
// (apostrophe, high bit 0x80000000) are carried over unchanged.
package keypath

import (
	"strconv"
	"strings"
)

// HardenedBit is OR-ed into a child index to mark it hardened.
const HardenedBit uint32 = 0x80000000

// Path is an immutable, persistent derivation path: either the singleton
// root (`m`, or the empty unrooted path) or a node pointing at its parent
// plus the one additional step it adds. The zero value is not a valid
// Path; use Root.
type Path struct {
	parent *Path
	index  uint32
	length int
	rooted bool
}

var rootedRoot = &Path{rooted: true}
var unrootedRoot = &Path{rooted: false}

// Root returns the singleton root path: `m` if rooted, or the empty
// unrooted path otherwise. Both have Length() == 0.
func Root(rooted bool) *Path {
	if rooted {
		return rootedRoot
	}
	return unrootedRoot
}

// IsRooted reports whether this path is anchored at `m`.
func (p *Path) IsRooted() bool {
	return p.rooted
}

// Length returns the number of steps below the root (0 for the root
// itself).
func (p *Path) Length() int {
	return p.length
}

// Append returns a new path one step longer than p, with index as its
// final step (hardened bit included if set).
func (p *Path) Append(index uint32) *Path {
	return &Path{parent: p, index: index, length: p.length + 1, rooted: p.rooted}
}

// Step returns the raw 32-bit index (hardened bit included) of the i-th
// step, 1-based. i must be in [1, Length()]; i == 0 (the root) or i out of
// range is a caller error.
func (p *Path) Step(i int) (uint32, error) {
	if i < 1 || i > p.length {
		return 0, newError(ErrOutOfRange, "step %d out of range for path of length %d", i, p.length)
	}
	node := p
	for node.length > i {
		node = node.parent
	}
	return node.index, nil
}

// Parent returns the path one step shorter than p. Calling Parent on the
// root returns the root itself.
func (p *Path) Parent() *Path {
	if p.length == 0 {
		return p
	}
	return p.parent
}

// Truncate returns the prefix of p with length k. k must be in
// [0, Length()].
func (p *Path) Truncate(k int) (*Path, error) {
	if k < 0 || k > p.length {
		return nil, newError(ErrOutOfRange, "truncate length %d out of range for path of length %d", k, p.length)
	}
	node := p
	for node.length > k {
		node = node.parent
	}
	return node, nil
}

// Prefixes returns every non-empty prefix of p, shortest first, ending
// with p itself. The root path (length 0) returns an empty slice.
func (p *Path) Prefixes() []*Path {
	out := make([]*Path, p.length)
	node := p
	for i := p.length - 1; i >= 0; i-- {
		out[i] = node
		node = node.parent
	}
	return out
}

// IsHardened reports whether i's hardened bit is set.
func IsHardened(i uint32) bool {
	return i&HardenedBit != 0
}

// String renders p in its ABNF text form: `m` (or nothing, for unrooted)
// followed by `/index[']` per step.
func (p *Path) String() string {
	steps := p.Prefixes()
	var sb strings.Builder
	if p.rooted {
		sb.WriteByte('m')
	}
	for _, step := range steps {
		sb.WriteByte('/')
		plain := step.index &^ HardenedBit
		sb.WriteString(strconv.FormatUint(uint64(plain), 10))
		if IsHardened(step.index) {
			sb.WriteByte('\'')
		}
	}
	return sb.String()
}

// Parse parses a BIP-32 path string per the grammar:
//
//	path        = rooted / unrooted
//	rooted      = "m" *step
//	unrooted    = 1*step
//	step        = "/" index
//	index       = 1*DIGIT [ "'" ]        ; apostrophe => hardened
//
// Uppercase `M`, empty segments, stray characters, and a leading apostrophe
// are rejected.
func Parse(s string) (*Path, error) {
	rooted := false
	rest := s
	if strings.HasPrefix(rest, "m") {
		rooted = true
		rest = rest[1:]
	} else if strings.HasPrefix(rest, "M") {
		return nil, newError(ErrInvalidSyntax, "path must not start with uppercase 'M'")
	}

	if rest == "" {
		if !rooted {
			return nil, newError(ErrInvalidSyntax, "unrooted path must have at least one step")
		}
		return Root(true), nil
	}

	if !strings.HasPrefix(rest, "/") {
		return nil, newError(ErrInvalidSyntax, "expected '/' before step, got %q", rest)
	}

	path := Root(rooted)
	for _, segment := range strings.Split(rest[1:], "/") {
		if segment == "" {
			return nil, newError(ErrInvalidSyntax, "empty path segment")
		}
		hardened := false
		digits := segment
		if strings.HasSuffix(segment, "'") {
			hardened = true
			digits = segment[:len(segment)-1]
		}
		if digits == "" {
			return nil, newError(ErrInvalidSyntax, "missing digits in segment %q", segment)
		}
		for _, r := range digits {
			if r < '0' || r > '9' {
				return nil, newError(ErrInvalidSyntax, "stray character %q in segment %q", r, segment)
			}
		}
		value, err := strconv.ParseUint(digits, 10, 32)
		if err != nil {
			return nil, newError(ErrInvalidSyntax, "index %q out of range: %v", digits, err)
		}
		index := uint32(value)
		if hardened {
			if index&HardenedBit != 0 {
				return nil, newError(ErrInvalidSyntax, "index %q too large to harden", digits)
			}
			index |= HardenedBit
		}
		path = path.Append(index)
	}
	return path, nil
}

// Compare orders paths lexicographically by step index: at the first
// differing step, the path with the smaller plain (hardened-bit-stripped)
// value sorts first; if the plain values are equal, the hardened step
// sorts before the non-hardened one. A path that is a strict prefix of
// another sorts before it.
func Compare(a, b *Path) int {
	as := a.Prefixes()
	bs := b.Prefixes()
	for i := 0; i < len(as) && i < len(bs); i++ {
		ai, bi := as[i].index, bs[i].index
		aPlain, bPlain := ai&^HardenedBit, bi&^HardenedBit
		if aPlain != bPlain {
			if aPlain < bPlain {
				return -1
			}
			return 1
		}
		aHard, bHard := IsHardened(ai), IsHardened(bi)
		if aHard != bHard {
			if aHard {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}
