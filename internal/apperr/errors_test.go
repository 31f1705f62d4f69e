package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"sentinel", ErrUsernameTaken, KindValidation},
		{"wrapped sentinel", fmt.Errorf("register: %w", ErrInvalidCredentials), KindAuthentication},
		{"persistence", Persistence("save progression", errors.New("disk full")), KindPersistence},
		{"plain error", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestPersistence_HidesCauseInMessage(t *testing.T) {
	cause := errors.New("connection refused")
	err := Persistence("save progression", cause)

	assert.Equal(t, "Failed to save progression", MessageOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMessageOf_UnknownError(t *testing.T) {
	assert.Equal(t, "Internal server error", MessageOf(errors.New("secret detail")))
}

func TestSentinelsMatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("update: %w", ErrNotFoundOrForbidden)
	assert.True(t, errors.Is(err, ErrNotFoundOrForbidden))
	assert.False(t, errors.Is(err, ErrEmailNotFound))
}

func TestInternal_KeepsMessage(t *testing.T) {
	err := Internal("Failed to send reset email", errors.New("smtp 421"))
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "Failed to send reset email", MessageOf(err))
}
