package mnemonic

import "strings"

var wordIndex map[string]int

func init() {
	wordIndex = make(map[string]int, len(englishWordlist))
	for i, w := range englishWordlist {
		wordIndex[w] = i
	}
}

// lookupWord returns the 11-bit wordlist index for token, case-insensitively.
// ok is false if token is not a wordlist entry.
func lookupWord(token string) (int, bool) {
	idx, ok := wordIndex[strings.ToLower(token)]
	return idx, ok
}
