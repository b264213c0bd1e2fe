package export

import (
	"context"
	"strings"

	"github.com/bkmeneguello/codeview/internal/document"
	"github.com/bkmeneguello/codeview/internal/logging"
	"github.com/bkmeneguello/codeview/internal/viewerr"
)

// SavePrompt asks where to save the image, offering defaultName. It
// returns viewerr.ErrCancelled, or an empty path, when the user declines.
type SavePrompt func(defaultName string) (string, error)

// DefaultName replaces the extension of name with ".png".
func DefaultName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return name + ".png"
}

// Export renders the processed content of doc and saves it where prompt
// says. It returns the written path. A declined prompt returns
// viewerr.ErrCancelled, which callers treat as a silent no-op.
func Export(ctx context.Context, doc *document.Document, face *Face, opts Options, prompt SavePrompt) (string, error) {
	logger := logging.FromContext(ctx)

	s, err := Render(doc.Processed, doc.Language, face, opts)
	if err != nil {
		logger.Error("export render failed", logging.FieldPath, doc.Path, logging.FieldError, err)
		return "", err
	}
	pix, err := s.Pixels()
	if err != nil {
		logger.Error("export readback failed", logging.FieldPath, doc.Path, logging.FieldError, err)
		return "", err
	}

	path, err := prompt(DefaultName(doc.Name))
	if err == nil && path == "" {
		err = viewerr.ErrCancelled
	}
	if err != nil {
		return "", err
	}

	if err := WritePNG(ctx, path, pix, s.Width(), s.Height()); err != nil {
		logger.Error("export write failed", logging.FieldOutput, path, logging.FieldError, err)
		return "", err
	}
	logger.Info("exported image",
		logging.FieldPath, doc.Path,
		logging.FieldOutput, path,
		logging.FieldWidth, s.Width(),
		logging.FieldHeight, s.Height())
	return path, nil
}
