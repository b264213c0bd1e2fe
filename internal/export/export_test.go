package export

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkmeneguello/codeview/internal/document"
	"github.com/bkmeneguello/codeview/internal/layout"
	"github.com/bkmeneguello/codeview/internal/syntax"
	"github.com/bkmeneguello/codeview/internal/viewerr"
)

func testFace(t *testing.T) *Face {
	t.Helper()
	face, err := LoadFace("", 14, 4)
	require.NoError(t, err)
	t.Cleanup(func() { _ = face.Close() })
	return face
}

func TestDefaultName(t *testing.T) {
	assert.Equal(t, "main.png", DefaultName("main.cpp"))
	assert.Equal(t, "archive.tar.png", DefaultName("archive.tar.gz"))
	assert.Equal(t, "Makefile.png", DefaultName("Makefile"))
}

func TestLoadFace(t *testing.T) {
	face := testFace(t)

	assert.Greater(t, face.LineHeight(), 4)
	assert.Greater(t, face.Ascent(), 0)
	assert.Equal(t, 2*face.StringWidth("a"), face.StringWidth("ab"))
	assert.Zero(t, face.StringWidth(""))
}

func TestLoadFaceFailures(t *testing.T) {
	_, err := LoadFace(filepath.Join(t.TempDir(), "missing.ttf"), 14, 0)
	require.Error(t, err)
	assert.Equal(t, viewerr.RenderResource, viewerr.KindOf(err))

	_, err = ParseFace([]byte("not a font"), 14, 0)
	assert.Equal(t, viewerr.RenderResource, viewerr.KindOf(err))

	_, err = LoadFace("", 0, 0)
	assert.Equal(t, viewerr.RenderResource, viewerr.KindOf(err))
}

func TestRender(t *testing.T) {
	face := testFace(t)
	opts := DefaultOptions()
	content := "int x = 1; // one\n/* two\nthree */\n"

	s, err := Render(content, syntax.CFamily, face, opts)
	require.NoError(t, err)

	m := layout.Measure(content, face, opts.TabWidth)
	w, h, err := layout.Canvas(m, opts.Padding, opts.MaxDim)
	require.NoError(t, err)
	assert.Equal(t, w, s.Width())
	assert.Equal(t, h, s.Height())

	pix, err := s.Pixels()
	require.NoError(t, err)
	require.Len(t, pix, w*h*4)

	bg := opts.Palette.Background
	assert.Equal(t, []byte{bg.R, bg.G, bg.B, 0xff}, pix[:4])

	drawn := false
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != bg.R || pix[i+1] != bg.G || pix[i+2] != bg.B {
			drawn = true
			break
		}
	}
	assert.True(t, drawn, "no text drawn")
}

func TestRenderIsRepeatable(t *testing.T) {
	face := testFace(t)
	content := "a /* open\nstill open\n*/ b\n"

	first, err := Render(content, syntax.JavaScript, face, DefaultOptions())
	require.NoError(t, err)
	second, err := Render(content, syntax.JavaScript, face, DefaultOptions())
	require.NoError(t, err)

	p1, err := first.Pixels()
	require.NoError(t, err)
	p2, err := second.Pixels()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(p1, p2))
}

func TestRenderClampsToMaxDim(t *testing.T) {
	face := testFace(t)
	opts := DefaultOptions()
	opts.MaxDim = 64

	s, err := Render(string(bytes.Repeat([]byte("abcdefghij\n"), 50)), syntax.Unknown, face, opts)
	require.NoError(t, err)
	assert.Equal(t, 64, s.Width())
	assert.Equal(t, 64, s.Height())
}

func TestRenderSizeError(t *testing.T) {
	face := testFace(t)
	opts := DefaultOptions()
	opts.MaxDim = 2 * opts.Padding

	_, err := Render("x\n", syntax.Unknown, face, opts)
	require.Error(t, err)
	assert.Equal(t, viewerr.Size, viewerr.KindOf(err))
}

func TestEncodePNG(t *testing.T) {
	pix := []byte{
		1, 2, 3, 255, 4, 5, 6, 255,
		7, 8, 9, 255, 10, 11, 12, 255,
	}

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, pix, 2, 2))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	r, g, b, a := img.At(1, 1).RGBA()
	assert.Equal(t, []uint32{10, 11, 12, 255}, []uint32{r >> 8, g >> 8, b >> 8, a >> 8})

	err = EncodePNG(&buf, pix, 3, 2)
	assert.Equal(t, viewerr.Encode, viewerr.KindOf(err))
}

func TestExport(t *testing.T) {
	face := testFace(t)
	doc := document.New("src/main.cpp", "int main() {\n\treturn 0;\n}\n")
	out := filepath.Join(t.TempDir(), "out.png")

	var offered string
	path, err := Export(context.Background(), doc, face, DefaultOptions(), func(name string) (string, error) {
		offered = name
		return out, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "main.png", offered)
	assert.Equal(t, out, path)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	require.NoError(t, err)
}

func TestExportCancelled(t *testing.T) {
	face := testFace(t)
	doc := document.New("main.py", "x = 1\n")

	_, err := Export(context.Background(), doc, face, DefaultOptions(), func(string) (string, error) {
		return "", nil
	})
	require.ErrorIs(t, err, viewerr.ErrCancelled)
	assert.Empty(t, viewerr.Message(err))
}

func TestExportWriteFailure(t *testing.T) {
	face := testFace(t)
	doc := document.New("main.py", "x = 1\n")
	out := filepath.Join(t.TempDir(), "missing", "out.png")

	_, err := Export(context.Background(), doc, face, DefaultOptions(), func(string) (string, error) {
		return out, nil
	})
	require.Error(t, err)
	assert.Equal(t, viewerr.Encode, viewerr.KindOf(err))
	assert.NoFileExists(t, out)
}

func TestWriteAtomicCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(t.TempDir(), "x.png")
	require.Error(t, writeAtomic(ctx, out, []byte("x")))
	assert.NoFileExists(t, out)
}
