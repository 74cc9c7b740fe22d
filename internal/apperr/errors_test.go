package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	sentinel := New(KindConflict, "email already taken")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "plain error", err: errors.New("boom"), want: KindInternal},
		{name: "nil", err: nil, want: KindInternal},
		{name: "sentinel", err: sentinel, want: KindConflict},
		{name: "wrapped with fmt", err: fmt.Errorf("register: %w", sentinel), want: KindConflict},
		{name: "outermost wins", err: Wrap(KindInternal, "login", New(KindValidation, "bad hash")), want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("strconv failure")
	err := Wrap(KindValidation, "cannot parse parameter", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "cannot parse parameter: strconv failure", err.Error())
	assert.Equal(t, "cannot parse parameter", err.Message())
	assert.Equal(t, "validation", err.ErrorKind().String())
}
