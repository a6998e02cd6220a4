package fileio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/wenlu-dev/notepad/internal/engine/buffer"
)

// Sentinel errors for file operations.
var (
	ErrFileTooLarge = errors.New("file too large")
	ErrNotRegular   = errors.New("not a regular file")
)

// MaxFileSize caps the files the notepad will open. Documents larger
// than this belong in a different tool.
const MaxFileSize = 64 << 20

// FileInfo records how a document was stored on disk so Save can write
// it back the same way.
type FileInfo struct {
	Path       string
	Encoding   Encoding
	LineEnding buffer.LineEnding
	ReadOnly   bool
}

// Load reads the file at path, detects its encoding and line ending
// style, and returns the decoded UTF-8 text. The returned text keeps
// the file's original line endings; callers normalize when populating
// a buffer.
func Load(path string) (string, FileInfo, error) {
	info := FileInfo{Path: path, Encoding: EncodingUTF8, LineEnding: buffer.LineEndingLF}

	st, err := os.Stat(path)
	if err != nil {
		return "", info, err
	}
	if !st.Mode().IsRegular() {
		return "", info, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
	if st.Size() > MaxFileSize {
		return "", info, fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, path, st.Size())
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", info, err
	}

	info.Encoding = DetectEncoding(raw)
	text, err := Decode(raw, info.Encoding)
	if err != nil {
		return "", info, fmt.Errorf("decode %s as %s: %w", path, info.Encoding, err)
	}
	info.LineEnding = buffer.DetectLineEnding(text)
	info.ReadOnly = st.Mode().Perm()&0o200 == 0
	return text, info, nil
}

// Save encodes text per info and writes it to info.Path atomically:
// the content goes to a temp file in the same directory which is then
// renamed over the target, so a crash mid-write never truncates the
// original.
func Save(text string, info FileInfo) error {
	if info.Path == "" {
		return fmt.Errorf("save: empty path")
	}
	text = applyLineEnding(text, info.LineEnding)
	data, err := Encode(text, info.Encoding)
	if err != nil {
		return fmt.Errorf("encode as %s: %w", info.Encoding, err)
	}

	dir := filepath.Dir(info.Path)
	tmp, err := os.CreateTemp(dir, ".notepad-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if mode, ok := existingMode(info.Path); ok {
		os.Chmod(tmpName, mode)
	}
	return os.Rename(tmpName, info.Path)
}

func existingMode(path string) (fs.FileMode, bool) {
	st, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	return st.Mode().Perm(), true
}

// applyLineEnding converts LF-normalized text to the target style.
func applyLineEnding(text string, le buffer.LineEnding) string {
	if le == buffer.LineEndingLF {
		return text
	}
	// Normalize first so mixed input converts cleanly.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.ReplaceAll(text, "\n", le.Sequence())
}
