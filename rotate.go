package transposition

import "fmt"

// Rekey re-encrypts ciphertext produced under oldKey so that it decrypts under newKey.
// Both keys are validated before any work is done.
//
// Because decryption trims trailing filler, a plaintext that itself ended in
// 'X' loses those characters, exactly as a plain Decrypt would.
func Rekey(ciphertext, oldKey, newKey string) (string, error) {
	from, err := ParseKey(oldKey)
	if err != nil {
		return "", fmt.Errorf("old key: %w", err)
	}
	to, err := ParseKey(newKey)
	if err != nil {
		return "", fmt.Errorf("new key: %w", err)
	}
	return to.Encrypt(from.Decrypt(ciphertext)), nil
}

// NeedsRekey reports whether two raw keys differ once normalized, i.e.
// whether Rekey between them would change anything.
// Invalid keys always need rekeying.
func NeedsRekey(oldKey, newKey string) bool {
	from, err := ParseKey(oldKey)
	if err != nil {
		return true
	}
	to, err := ParseKey(newKey)
	if err != nil {
		return true
	}
	return from.Normalized() != to.Normalized()
}
