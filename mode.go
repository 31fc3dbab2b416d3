package transposition

import (
	"fmt"
	"strings"
)

// Mode selects the operation Process performs.
type Mode int

const (
	// ModeEncrypt turns plaintext into ciphertext.
	ModeEncrypt Mode = iota + 1
	// ModeDecrypt turns ciphertext back into plaintext.
	ModeDecrypt
)

// String returns the mode name accepted by ParseMode.
func (m Mode) String() string {
	switch m {
	case ModeEncrypt:
		return "encrypt"
	case ModeDecrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "encrypt" or "decrypt" (case-insensitive, surrounding
// whitespace ignored). Returns ErrUnknownMode for anything else.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encrypt":
		return ModeEncrypt, nil
	case "decrypt":
		return ModeDecrypt, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Process runs the selected operation on text under key.
// The key is validated before the mode, so an invalid key always yields
// ErrInvalidKey.
func Process(mode Mode, text, key string) (string, error) {
	k, err := ParseKey(key)
	if err != nil {
		return "", err
	}
	return k.Process(mode, text)
}

// Process runs the selected operation on text under k.
func (k *Key) Process(mode Mode, text string) (string, error) {
	switch mode {
	case ModeEncrypt:
		return k.Encrypt(text), nil
	case ModeDecrypt:
		return k.Decrypt(text), nil
	default:
		return "", fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}
}
