// Package fileio loads source files for viewing.
package fileio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edsrzf/mmap-go"

	"github.com/bkmeneguello/codeview/internal/viewerr"
)

// MaxFileSize is the largest file Load accepts.
const MaxFileSize = 20 << 20

// ErrTooLarge is reported for files above MaxFileSize.
var ErrTooLarge = errors.New("file is too large (>20MB) or size is invalid")

// Load reads the whole file at path. Every failure is an IO error carrying a
// message fit for the user.
func Load(path string) (string, error) {
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return "", viewerr.New(viewerr.IO, "open "+path, fmt.Errorf("cannot open file: %w", err))
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", viewerr.New(viewerr.IO, "stat "+path, ErrTooLarge)
	}
	if info.IsDir() {
		return "", viewerr.Errorf(viewerr.IO, "open "+path, "cannot open file: %s is a directory", path)
	}
	if info.Size() > MaxFileSize || info.Size() < 0 {
		return "", viewerr.New(viewerr.IO, "stat "+path, ErrTooLarge)
	}
	if info.Size() == 0 {
		return "", nil
	}

	m, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return "", viewerr.New(viewerr.IO, "read "+path, fmt.Errorf("error reading file: %w", err))
	}
	defer m.Unmap()

	return string(m), nil
}
