package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	assert.Equal(t, "unauthorized: wrong password", New(Unauthorized, "wrong password").Error())
	assert.Equal(t, "transport_failed: get-me: context canceled",
		Wrap(TransportFailed, "get-me", context.Canceled).Error())
}

func TestKindSurvivesWrapping(t *testing.T) {
	base := Wrap(TransportFailed, "logout", context.DeadlineExceeded)
	wrapped := fmt.Errorf("logging out: %w", base)

	assert.Equal(t, TransportFailed, KindOf(wrapped))
	assert.True(t, Is(wrapped, TransportFailed))
	assert.False(t, Is(wrapped, APIFailed))
	assert.True(t, stderrors.Is(wrapped, context.DeadlineExceeded))
}

func TestWithStatus(t *testing.T) {
	e := WithStatus(503, "get-me failed")

	var target *E
	assert.True(t, stderrors.As(fmt.Errorf("x: %w", e), &target))
	assert.Equal(t, 503, target.Status)
	assert.Equal(t, APIFailed, target.Kind)
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(stderrors.New("plain")))
	assert.False(t, Is(nil, APIFailed))
}
