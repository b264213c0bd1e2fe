package viewerr

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("export: %w", New(Size, "canvas", errors.New("calculated image size is invalid")))

	assert.Equal(t, Size, KindOf(err))
	assert.Equal(t, "calculated image size is invalid", Message(err))
	assert.Equal(t, "Capture Error", Title(err))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Other, KindOf(errors.New("boom")))
	assert.Equal(t, "boom", Message(errors.New("boom")))
}

func TestCancelledHasNoMessage(t *testing.T) {
	assert.Empty(t, Message(ErrCancelled))
	assert.Empty(t, Message(fmt.Errorf("save prompt: %w", ErrCancelled)))
	assert.Empty(t, Message(nil))
}

func TestErrorUnwrap(t *testing.T) {
	err := New(IO, "load", os.ErrNotExist)

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "load: "+os.ErrNotExist.Error(), err.Error())
	assert.Equal(t, "Error", Title(err))
	assert.Equal(t, "Save Error", Title(Errorf(Encode, "png", "write failed")))
}
