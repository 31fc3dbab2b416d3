// Package transposition implements a keyed columnar transposition cipher.
//
// A message is written row by row into a grid as wide as the key and read
// back out column by column, with the columns taken in the alphabetical order
// of the key's letters. It is a classical, educational cipher: it offers no
// protection against frequency analysis or known-plaintext attacks and must
// not be used to protect real secrets.
//
// # Keys
//
// A raw key may be any string. Only its letters count; they are upper-cased
// and repeated letters are dropped, keeping the first occurrence. At least
// two unique letters must remain, otherwise ErrInvalidKey is returned.
//
//	normalized, order, err := transposition.DeriveColumnOrder("SECRET")
//	// normalized = "SECRT"
//	// order      = [2 1 3 0 4]  (C, E, R, S, T)
//
// # Basic Usage
//
//	ciphertext, err := transposition.Encrypt("HELLO WORLD", "SECRET")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// ciphertext = "LREOLLHWOD"
//
//	plaintext, err := transposition.Decrypt(ciphertext, "SECRET")
//	// plaintext = "HELLOWORLD"
//
// To use one key many times, parse it once:
//
//	key, err := transposition.ParseKey("SECRET")
//	ciphertext := key.Encrypt("HELLO WORLD")
//	plaintext := key.Decrypt(ciphertext)
//
// # Normalization and Padding
//
// Encryption removes spaces and upper-cases the message, so neither spacing
// nor case survives a round trip. Digits and punctuation pass through
// unchanged. The last grid row is padded with 'X', and decryption trims
// every trailing 'X', so a plaintext that ends in 'X' loses it.
//
// Messages, ciphertexts and keys are treated as UTF-8 text and processed
// one rune at a time. Invalid UTF-8 bytes become U+FFFD before they reach
// the grid, so callers holding arbitrary bytes should validate them first.
//
// # Uneven Ciphertext
//
// Ciphertext from Encrypt always fills a rectangle. Decrypt also accepts
// other lengths: when the length is not a multiple of the key width, the
// columns whose original position is below the remainder take one extra
// character. Only rectangular input is guaranteed to decrypt exactly.
//
// # Concurrency
//
// All functions are pure, and a parsed *Key is read-only, so everything in
// this package is safe for concurrent use.
package transposition
