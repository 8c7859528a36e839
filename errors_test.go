package lawdoc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/lawdoc"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", lawdoc.ErrorCode(nil))
	})

	t.Run("coded error", func(t *testing.T) {
		t.Parallel()
		err := lawdoc.Errorf(lawdoc.ENOTFOUND, "section %q not found", "s1")
		assert.Equal(t, lawdoc.ENOTFOUND, lawdoc.ErrorCode(err))
	})

	t.Run("wrapped coded error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("loading document: %w", lawdoc.Errorf(lawdoc.EUNPROCESSABLE, "malformed xml"))
		assert.Equal(t, lawdoc.EUNPROCESSABLE, lawdoc.ErrorCode(err))
	})

	t.Run("uncoded error is internal", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, lawdoc.EINTERNAL, lawdoc.ErrorCode(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", lawdoc.ErrorMessage(nil))
	})

	t.Run("coded error", func(t *testing.T) {
		t.Parallel()
		err := lawdoc.Errorf(lawdoc.EINVALID, "unknown tool %q", "nope")
		assert.Equal(t, `unknown tool "nope"`, lawdoc.ErrorMessage(err))
	})

	t.Run("uncoded error is generic", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", lawdoc.ErrorMessage(errors.New("boom")))
	})
}
