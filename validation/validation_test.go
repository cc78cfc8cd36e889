package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/scribe-go/apperror"
)

type signupForm struct {
	Username string `validate:"required,min=3,max=30,username"`
	Password string `validate:"required,min=6,max=100"`
}

func TestStructValid(t *testing.T) {
	t.Parallel()

	v := New()
	err := v.Struct(signupForm{Username: "alice_99", Password: "secret123"})
	assert.NoError(t, err)
}

func TestStructFailures(t *testing.T) {
	t.Parallel()

	v := New()

	tests := []struct {
		name    string
		form    signupForm
		wantMsg string
	}{
		{"missing username", signupForm{Password: "secret123"}, "username is required"},
		{"short username", signupForm{Username: "ab", Password: "secret123"}, "username must be at least 3 characters"},
		{"invalid characters", signupForm{Username: "bad name!", Password: "secret123"}, "username may only contain"},
		{"short password", signupForm{Username: "alice", Password: "12345"}, "password must be at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.form)
			require.Error(t, err)
			assert.True(t, apperror.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestStructCollectsAllFailures(t *testing.T) {
	t.Parallel()

	v := New()
	err := v.Struct(signupForm{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username is required")
	assert.Contains(t, err.Error(), "password is required")
}
