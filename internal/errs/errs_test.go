package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsThroughWrapping(t *testing.T) {
	base := E(NotFound, "vfs.find", errors.New("no such entry"))
	wrapped := fmt.Errorf("failed to open: %w", base)

	assert.True(t, errors.Is(wrapped, NotFound))
	assert.False(t, errors.Is(wrapped, ReadOnly))
	assert.Equal(t, NotFound, KindOf(wrapped))
}

func TestError_UnwrapCause(t *testing.T) {
	cause := errors.New("disk full")
	err := E(Storage, "repository.save", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "repository.save: storage: disk full", err.Error())
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "timeout", E(Timeout, "", nil).Error())
	assert.Equal(t, "cancel: timeout", E(Timeout, "cancel", nil).Error())
	assert.Equal(t, "conflict: dup", Errorf(Conflict, "", "dup").Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Cancelled, KindOf(fmt.Errorf("x: %w", Cancelled)))
	assert.True(t, Is(Errorf(Unreachable, "wake", "down"), Unreachable))
}
