package transposition

import (
	"fmt"
	"strings"
)

// filler pads the last grid row on encryption and is trimmed on decryption.
const filler = 'X'

// Key is a parsed cipher key: the normalized letters and their column order.
// It is immutable and safe for concurrent use.
type Key struct {
	letters []rune // normalized key, one column per letter
	order   []int  // rank -> original column
}

// ParseKey normalizes raw and derives its column order once, so the result
// can be reused across many Encrypt and Decrypt calls.
//
// Example:
//
//	key, err := transposition.ParseKey("secret")
//	if err != nil {
//	    return err // transposition.ErrInvalidKey
//	}
//	ciphertext := key.Encrypt("HELLO WORLD")
func ParseKey(raw string) (*Key, error) {
	letters, order, err := deriveOrder(raw)
	if err != nil {
		return nil, err
	}
	return &Key{letters: letters, order: order}, nil
}

// Encrypt encrypts message under key.
// Spaces are removed and letters upper-cased before the grid is filled;
// neither is recoverable from the ciphertext.
func Encrypt(message, key string) (string, error) {
	k, err := ParseKey(key)
	if err != nil {
		return "", err
	}
	return k.Encrypt(message), nil
}

// Decrypt decrypts ciphertext under key and trims trailing filler.
func Decrypt(ciphertext, key string) (string, error) {
	k, err := ParseKey(key)
	if err != nil {
		return "", err
	}
	return k.Decrypt(ciphertext), nil
}

// Normalized returns the normalized key, e.g. "SECRT" for "secret".
func (k *Key) Normalized() string {
	return string(k.letters)
}

// Columns returns the grid width.
func (k *Key) Columns() int {
	return len(k.letters)
}

// Order returns a copy of the 0-based column order.
func (k *Key) Order() []int {
	out := make([]int, len(k.order))
	copy(out, k.order)
	return out
}

// DisplayOrder returns the column order numbered from 1, as shown to users.
func (k *Key) DisplayOrder() []int {
	out := make([]int, len(k.order))
	for i, col := range k.order {
		out[i] = col + 1
	}
	return out
}

// Fingerprint returns a short digest identifying the normalized key.
func (k *Key) Fingerprint() string {
	return fingerprint(k.Normalized())
}

// String describes the key without revealing it.
func (k *Key) String() string {
	return fmt.Sprintf("transposition.Key{columns: %d, fingerprint: %s}", k.Columns(), k.Fingerprint())
}

// Encrypt lays the normalized message row by row into a grid as wide as the
// key, pads the last row with 'X', and reads the columns out in key order.
// The result length is always a multiple of Columns.
func (k *Key) Encrypt(message string) string {
	text := []rune(NormalizeMessage(message))
	cols := len(k.letters)
	rows := ceilDiv(len(text), cols)

	grid := make([]rune, rows*cols)
	n := copy(grid, text)
	for i := n; i < len(grid); i++ {
		grid[i] = filler
	}

	var out strings.Builder
	out.Grow(len(grid))
	for _, col := range k.order {
		for row := 0; row < rows; row++ {
			out.WriteRune(grid[row*cols+col])
		}
	}
	return out.String()
}

// Decrypt refills the grid column by column in key order and reads it back
// row by row, then trims trailing 'X' filler.
//
// When len(ciphertext) is not a multiple of Columns, the columns whose
// original position is below the remainder each take one extra character.
// That is an exact inverse only for rectangular input; other lengths decode
// on a best-effort basis.
func (k *Key) Decrypt(ciphertext string) string {
	text := []rune(ciphertext)
	total := len(text)
	cols := len(k.letters)
	rows := ceilDiv(total, cols)
	perCol := total / cols
	extra := total % cols

	grid := make([]rune, rows*cols)
	filled := make([]bool, rows*cols)
	next := 0
	for _, col := range k.order {
		height := perCol
		if col < extra {
			height++
		}
		for row := 0; row < height && next < total; row++ {
			grid[row*cols+col] = text[next]
			filled[row*cols+col] = true
			next++
		}
	}

	var out strings.Builder
	out.Grow(total)
	for i, r := range grid {
		if filled[i] {
			out.WriteRune(r)
		}
	}
	return strings.TrimRight(out.String(), string(filler))
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
