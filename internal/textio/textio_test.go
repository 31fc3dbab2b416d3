package textio

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func compress(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func TestReadInput_File(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"no newline", "HELLO WORLD", "HELLO WORLD"},
		{"trailing newline", "HELLO WORLD\n", "HELLO WORLD"},
		{"trailing crlf", "HELLO WORLD\r\n", "HELLO WORLD"},
		{"only one newline trimmed", "HELLO\n\n", "HELLO\n"},
		{"inner newlines kept", "line one\nline two\n", "line one\nline two"},
		{"empty file", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "in.txt", []byte(tt.content))
			got, err := ReadInput(path, nil)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestReadInput_Stdin(t *testing.T) {
	for _, path := range []string{"", "-"} {
		got, err := ReadInput(path, strings.NewReader("attack at dawn\n"))
		require.NoError(t, err)
		require.Equal(t, "attack at dawn", got)
	}
}

func TestReadInput_NoReader(t *testing.T) {
	_, err := ReadInput("", nil)
	require.Error(t, err)
}

func TestReadInput_Zstd(t *testing.T) {
	plain := strings.Repeat("attack at dawn ", 200) + "\n"
	path := writeTemp(t, "in.txt.zst", compress(t, []byte(plain)))

	got, err := ReadInput(path, nil)
	require.NoError(t, err)
	require.Equal(t, strings.TrimSuffix(plain, "\n"), got)
}

func TestReadInput_ZstdFromStdin(t *testing.T) {
	got, err := ReadInput("-", strings.NewReader(string(compress(t, []byte("LREOLLHWOD")))))
	require.NoError(t, err)
	require.Equal(t, "LREOLLHWOD", got)
}

func TestReadInput_CorruptZstd(t *testing.T) {
	// Frame header descriptor with the reserved bit set.
	data := append(append([]byte{}, zstdMagic...), 0x08, 0x00, 0x00, 0x00, 0x00)
	path := writeTemp(t, "bad.zst", data)

	_, err := ReadInput(path, nil)
	require.ErrorIs(t, err, ErrDecompressionFailed)
}

func TestReadInput_NotText(t *testing.T) {
	path := writeTemp(t, "bin", []byte{0xff, 0xfe, 0x00, 0x80})

	_, err := ReadInput(path, nil)
	require.ErrorIs(t, err, ErrNotText)
}

func TestReadInput_MissingFile(t *testing.T) {
	_, err := ReadInput(filepath.Join(t.TempDir(), "missing.txt"), nil)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.txt")

	require.NoError(t, WriteOutput(path, "LREOLLHWOD"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "LREOLLHWOD", string(data))
}

func TestWriteOutput_Overwrites(t *testing.T) {
	path := writeTemp(t, "out.txt", []byte("old contents that are longer"))

	require.NoError(t, WriteOutput(path, "NEW"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "NEW", string(data))
}

func TestWriteOutput_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	for _, text := range []string{"", "  \n"} {
		require.ErrorIs(t, WriteOutput(path, text), ErrEmptyOutput)
	}
	_, err := os.Stat(path)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWriteOutput_ParentIsFile(t *testing.T) {
	parent := writeTemp(t, "file", []byte("x"))

	err := WriteOutput(filepath.Join(parent, "out.txt"), "DATA")
	require.Error(t, err)
}

func TestTrimLineEnd(t *testing.T) {
	require.Equal(t, "a", trimLineEnd("a\n"))
	require.Equal(t, "a", trimLineEnd("a\r\n"))
	require.Equal(t, "a\r", trimLineEnd("a\r"))
	require.Equal(t, "", trimLineEnd("\n"))
	require.Equal(t, "", trimLineEnd(""))
}

// shrinkInputCap lowers maxInputSize for the duration of the test.
func shrinkInputCap(t *testing.T, n int) {
	t.Helper()
	prev := maxInputSize
	maxInputSize = n
	t.Cleanup(func() { maxInputSize = prev })
}

func TestReadInput_RawTooLarge(t *testing.T) {
	shrinkInputCap(t, 1024)

	_, err := ReadInput("-", strings.NewReader(strings.Repeat("A", 1025)))
	require.ErrorIs(t, err, ErrInputTooLarge)

	path := writeTemp(t, "big.txt", bytes.Repeat([]byte("A"), 1025))
	_, err = ReadInput(path, nil)
	require.ErrorIs(t, err, ErrInputTooLarge)

	got, err := ReadInput("-", strings.NewReader(strings.Repeat("A", 1024)))
	require.NoError(t, err)
	require.Len(t, got, 1024)
}

func TestReadInput_DecompressedTooLarge(t *testing.T) {
	shrinkInputCap(t, 1024)
	frame := compress(t, bytes.Repeat([]byte("A"), 4096))
	require.Less(t, len(frame), 1024)

	_, err := ReadInput("-", bytes.NewReader(frame))
	require.ErrorIs(t, err, ErrInputTooLarge)
}

func TestReadInput_DecoderLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates a 64MB buffer to build the frame")
	}
	plain := make([]byte, decoderMaxMemory+10)

	t.Run("single frame", func(t *testing.T) {
		_, err := ReadInput("-", bytes.NewReader(compress(t, plain)))
		require.ErrorIs(t, err, ErrInputTooLarge)
	})

	t.Run("streamed frame", func(t *testing.T) {
		var buf bytes.Buffer
		enc, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		for off := 0; off < len(plain); off += 1 << 20 {
			end := min(off+1<<20, len(plain))
			_, err := enc.Write(plain[off:end])
			require.NoError(t, err)
		}
		require.NoError(t, enc.Close())

		_, err = ReadInput("-", &buf)
		require.ErrorIs(t, err, ErrInputTooLarge)
	})
}

func TestWriteOutput_VerifyFailsOnEmptyFile(t *testing.T) {
	// Writes to /dev/null succeed but leave nothing behind.
	if _, err := os.Stat(os.DevNull); err != nil || os.DevNull != "/dev/null" {
		t.Skip("needs /dev/null")
	}

	require.ErrorIs(t, WriteOutput(os.DevNull, "LREOLLHWOD"), ErrWriteVerify)
}

func TestWriteOutput_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := filepath.Join(t.TempDir(), "locked")
	require.NoError(t, os.Mkdir(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	err := WriteOutput(filepath.Join(dir, "out.txt"), "DATA")
	require.ErrorIs(t, err, fs.ErrPermission)

	err = WriteOutput(filepath.Join(dir, "sub", "out.txt"), "DATA")
	require.ErrorIs(t, err, fs.ErrPermission)
}
