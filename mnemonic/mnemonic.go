// Package mnemonic implements BIP-39: entropy/checksum encoding into a
// human-readable word phrase, and PBKDF2-HMAC-SHA512 seed derivation from
// that phrase. It is grounded on the big.Int bit-shifting approach in
// iota-crypto-demo's bip39 package, adapted to this module's bitbuf
// primitives in place of math/big, and to tolerate a trailing extra word as
// an inline passphrase.
package mnemonic

import (
	"crypto/sha256"
	"crypto/sha512"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"

	"github.com/nerdcash/hdcore/bitbuf"
)

const (
	minEntropyBits = 32
	maxEntropyBits = 512
	seedLen        = 64
)

// Mnemonic is an immutable BIP-39 phrase paired with the entropy it encodes.
// The zero value is not usable; construct via Generate, Render, or Parse.
type Mnemonic struct {
	phrase  string
	entropy []byte
	closed  bool
}

func validEntropyBits(bits int) bool {
	return bits > 0 && bits%32 == 0 && bits >= minEntropyBits && bits <= maxEntropyBits
}

// Generate draws entropyBits of entropy from rnd (a CSPRNG such as
// crypto/rand.Reader) and renders it into a phrase.
func Generate(entropyBits int, rnd io.Reader) (*Mnemonic, error) {
	if !validEntropyBits(entropyBits) {
		return nil, newError(ErrInvalidEntropyLength, "entropy bits %d must be a positive multiple of 32 in [%d, %d]", entropyBits, minEntropyBits, maxEntropyBits)
	}
	entropy := make([]byte, entropyBits/8)
	if _, err := io.ReadFull(rnd, entropy); err != nil {
		return nil, newError(ErrInvalidEntropyLength, "reading entropy: %v", err)
	}
	return Render(entropy)
}

// Render deterministically encodes entropy into its BIP-39 phrase.
func Render(entropy []byte) (*Mnemonic, error) {
	bits := len(entropy) * 8
	if !validEntropyBits(bits) {
		return nil, newError(ErrInvalidEntropyLength, "entropy length %d bytes is not a positive multiple of 4 in range", len(entropy))
	}

	checksumBits := bits / 32
	totalBits := bits + checksumBits
	wordCount := totalBits / 11

	buf := make([]byte, (totalBits+7)/8)
	pos := 0
	for _, b := range entropy {
		pos = bitbuf.AppendBits(buf, pos, uint32(b), 8)
	}

	sum := sha256.Sum256(entropy)
	checksumValue := bitbuf.GetBits(sum[:], 0, checksumBits)
	bitbuf.AppendBits(buf, pos, checksumValue, checksumBits)

	words := make([]string, wordCount)
	for i := 0; i < wordCount; i++ {
		idx := bitbuf.GetBits(buf, i*11, 11)
		words[i] = englishWordlist[idx]
	}

	owned := make([]byte, len(entropy))
	copy(owned, entropy)

	return &Mnemonic{
		phrase:  strings.Join(words, " "),
		entropy: owned,
	}, nil
}

// Parse accepts a whitespace-separated phrase, tolerating one trailing word
// beyond a legal {3,6,...,48} word count as an inline passphrase. It
// verifies the checksum and returns the decoded Mnemonic plus any
// passphrase found inline (empty if the phrase had a legal word count on
// its own).
func Parse(phrase string) (*Mnemonic, string, error) {
	fields := strings.Fields(phrase)

	passphrase := ""
	words := fields
	if !legalWordCount(len(fields)) {
		if len(fields) > 0 && len(fields)%3 == 1 && legalWordCount(len(fields)-1) {
			passphrase = fields[len(fields)-1]
			words = fields[:len(fields)-1]
		} else {
			return nil, "", newError(ErrBadWordCount, "phrase has %d words, not a legal count and not one extra", len(fields))
		}
	}

	wordCount := len(words)
	totalBits := wordCount * 11
	entropyBits := wordCount * 32 / 3
	checksumBits := wordCount / 3

	buf := make([]byte, (totalBits+7)/8)
	pos := 0
	for _, w := range words {
		idx, ok := lookupWord(w)
		if !ok {
			return nil, "", newError(ErrInvalidWord, "%q is not a wordlist entry", w)
		}
		pos = bitbuf.AppendBits(buf, pos, uint32(idx), 11)
	}

	entropy := make([]byte, entropyBits/8)
	copy(entropy, buf[:entropyBits/8])

	checksumGot := bitbuf.GetBits(buf, entropyBits, checksumBits)
	sum := sha256.Sum256(entropy)
	checksumWant := bitbuf.GetBits(sum[:], 0, checksumBits)
	if checksumGot != checksumWant {
		return nil, "", newError(ErrInvalidChecksum, "decoded checksum does not match SHA-256(entropy)")
	}

	return &Mnemonic{
		phrase:  strings.ToLower(strings.Join(words, " ")),
		entropy: entropy,
	}, passphrase, nil
}

func legalWordCount(n int) bool {
	return n >= 3 && n <= 48 && n%3 == 0
}

// Phrase returns the space-joined lowercase word sequence.
func (m *Mnemonic) Phrase() string {
	return m.phrase
}

// Entropy returns the entropy this mnemonic encodes. The returned slice
// aliases internal state and must not be modified.
func (m *Mnemonic) Entropy() []byte {
	return m.entropy
}

// Seed derives the 64-byte BIP-39 seed for this mnemonic under the given
// passphrase (NFKD-normalized; empty string if none). When phrase and
// passphrase are both pure ASCII, NFKD is a no-op and norm.NFKD.String
// returns its input unchanged without allocating a new backing array.
func (m *Mnemonic) Seed(passphrase string) []byte {
	normalizedPhrase := norm.NFKD.String(m.phrase)
	salt := "mnemonic" + norm.NFKD.String(passphrase)
	return pbkdf2.Key([]byte(normalizedPhrase), []byte(salt), 2048, seedLen, sha512.New)
}

// Close zeros the mnemonic's entropy. Safe to call multiple times.
func (m *Mnemonic) Close() {
	if m.closed {
		return
	}
	for i := range m.entropy {
		m.entropy[i] = 0
	}
	m.closed = true
}
