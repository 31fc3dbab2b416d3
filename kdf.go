package transposition

import (
	"encoding/hex"
	"sort"

	"golang.org/x/crypto/blake2b"
)

// minKeyLetters is the smallest usable grid width.
const minKeyLetters = 2

// fingerprintSize is the number of digest bytes shown by Key.Fingerprint.
const fingerprintSize = 8

// fingerprintDomain separates key fingerprints from any other BLAKE2b use of
// the same string.
const fingerprintDomain = "transposition-key-fingerprint"

// DeriveColumnOrder normalizes a raw cipher key and computes its column order.
//
// The column order lists, for each alphabetical rank of the normalized key's
// letters, the column position that letter occupies in the normalized key:
//
//	DeriveColumnOrder("SECRET") // "SECRT", [2 1 3 0 4], nil
//
// Returns ErrInvalidKey if the key has fewer than two unique letters.
func DeriveColumnOrder(key string) (string, []int, error) {
	letters, order, err := deriveOrder(key)
	if err != nil {
		return "", nil, err
	}
	return string(letters), order, nil
}

// deriveOrder does the work behind DeriveColumnOrder and keeps the letters as runes.
func deriveOrder(key string) ([]rune, []int, error) {
	letters := normalizeKeyRunes(key)
	if len(letters) < minKeyLetters {
		return nil, nil, ErrInvalidKey
	}

	order := make([]int, len(letters))
	for i := range order {
		order[i] = i
	}
	// Letters are unique after normalization, so stability only keeps the
	// result independent of the sort implementation.
	sort.SliceStable(order, func(a, b int) bool {
		return letters[order[a]] < letters[order[b]]
	})

	return letters, order, nil
}

// fingerprint returns a short hex BLAKE2b-256 digest of a normalized key.
// Raw keys that normalize identically share a fingerprint.
func fingerprint(normalized string) string {
	sum := blake2b.Sum256([]byte(fingerprintDomain + "\x00" + normalized))
	return hex.EncodeToString(sum[:fingerprintSize])
}
