// Package textio loads message text for the command-line driver and saves
// results as plain UTF-8 files.
package textio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/klauspost/compress/zstd"
)

// decoderMaxMemory bounds what the zstd decoder will allocate for one frame (64MB).
const decoderMaxMemory = 64 * 1024 * 1024

// maxInputSize caps both raw and decompressed input.
var maxInputSize = decoderMaxMemory

// zstdMagic opens every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

var (
	// ErrEmptyOutput indicates there is nothing to save.
	ErrEmptyOutput = errors.New("textio: no output to save")

	// ErrWriteVerify indicates the output file is missing or empty after writing.
	ErrWriteVerify = errors.New("textio: file was written but appears to be empty")

	// ErrInputTooLarge indicates the input, before or after decompression, exceeds the size cap.
	ErrInputTooLarge = errors.New("textio: input too large")

	// ErrDecompressionFailed indicates a zstd-framed input could not be decoded.
	ErrDecompressionFailed = errors.New("textio: decompression failed")

	// ErrNotText indicates the input is not valid UTF-8.
	ErrNotText = errors.New("textio: input is not valid UTF-8 text")
)

var (
	// the zstd decoder is thread-safe and reusable
	zstdDecoder *zstd.Decoder
	zstdOnce    sync.Once
	zstdErr     error
)

func decoder() (*zstd.Decoder, error) {
	zstdOnce.Do(func() {
		zstdDecoder, zstdErr = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(decoderMaxMemory))
	})
	return zstdDecoder, zstdErr
}

// ReadInput returns the text at path, or everything on stdin when path is
// "" or "-". Input framed as zstd is decompressed first. One trailing line
// terminator is removed so an editor's final newline does not become part of
// the message.
func ReadInput(path string, stdin io.Reader) (string, error) {
	var r io.Reader = stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	if r == nil {
		return "", errors.New("textio: no input")
	}

	raw, err := io.ReadAll(io.LimitReader(r, int64(maxInputSize)+1))
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if len(raw) > maxInputSize {
		return "", ErrInputTooLarge
	}

	data, err := maybeDecompress(raw)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrNotText
	}

	return trimLineEnd(string(data)), nil
}

// maybeDecompress decodes data if it carries the zstd magic and returns it
// unchanged otherwise.
func maybeDecompress(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, zstdMagic) {
		return data, nil
	}
	dec, err := decoder()
	if err != nil {
		return nil, err
	}
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
			return nil, ErrInputTooLarge
		}
		return nil, fmt.Errorf("%w: %v", ErrDecompressionFailed, err)
	}
	if len(out) > maxInputSize {
		return nil, ErrInputTooLarge
	}
	return out, nil
}

func trimLineEnd(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}

// WriteOutput saves text to path as UTF-8, creating missing parent
// directories, and checks that a non-empty file resulted.
// Underlying errors are wrapped, so errors.Is(err, fs.ErrPermission) and
// errors.Is(err, fs.ErrNotExist) still work.
func WriteOutput(path, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyOutput
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return ErrWriteVerify
	}
	return nil
}
