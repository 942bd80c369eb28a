package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brennanjay-74/idea-vault/pkg/types"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "storage unavailable is a system error",
			err:  fmt.Errorf("attach backend: %w", fmt.Errorf("%w: opening vault.db", types.ErrStorageUnavailable)),
			want: exitSysError,
		},
		{
			name: "detached vault is a system error",
			err:  types.ErrVaultDetached,
			want: exitSysError,
		},
		{
			name: "not found is a user error",
			err:  fmt.Errorf("idea abc not found: %w", types.ErrNotFound),
			want: exitUserError,
		},
		{
			name: "invalid bucket is a user error",
			err:  types.ErrInvalidBucket,
			want: exitUserError,
		},
		{
			name: "plain error is a user error",
			err:  errors.New("bad flag"),
			want: exitUserError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
