package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusError_Is(t *testing.T) {
	tests := []struct {
		op       Op
		sentinel error
	}{
		{OpHeaderParse, ErrHeaderParse},
		{OpPixelDecode, ErrPixelDecode},
		{OpSizeProbe, ErrSizeProbe},
		{OpEncode, ErrEncode},
	}

	all := []error{ErrHeaderParse, ErrPixelDecode, ErrSizeProbe, ErrEncode}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			err := NewStatusError(tt.op, 3)
			for _, s := range all {
				require.Equal(t, s == tt.sentinel, errors.Is(err, s))
			}
		})
	}
}

func TestStatusError_Message(t *testing.T) {
	err := NewStatusError(OpHeaderParse, 1)
	require.Equal(t, "lerc: failed to get info from blob: status 1", err.Error())

	err = NewStatusError(OpPixelDecode, 2).WithCause(ErrBlobTooShort)
	require.Contains(t, err.Error(), "failed to decode blob: status 2")
	require.Contains(t, err.Error(), ErrBlobTooShort.Error())
}

func TestStatusError_WithCause(t *testing.T) {
	base := NewStatusError(OpHeaderParse, 3)
	withCause := base.WithCause(ErrBlobTooShort)

	require.NoError(t, base.Err, "WithCause must not mutate the receiver")
	require.ErrorIs(t, withCause, ErrHeaderParse)
	require.ErrorIs(t, withCause, ErrBlobTooShort)
	require.NotErrorIs(t, base, ErrBlobTooShort)
}

func TestStatusCode(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		code, ok := StatusCode(NewStatusError(OpEncode, 5))
		require.True(t, ok)
		require.Equal(t, uint32(5), code)
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", NewStatusError(OpSizeProbe, 1000))
		code, ok := StatusCode(err)
		require.True(t, ok)
		require.Equal(t, uint32(1000), code)
		require.ErrorIs(t, err, ErrSizeProbe)
	})

	t.Run("plain error", func(t *testing.T) {
		_, ok := StatusCode(ErrBlobSizeMismatch)
		require.False(t, ok)
	})
}

func TestOp_String(t *testing.T) {
	require.Equal(t, "HeaderParse", OpHeaderParse.String())
	require.Equal(t, "Unknown", Op(0).String())
	require.Equal(t, "lerc: unknown operation failed: status 9", (&StatusError{Code: 9}).Error())
}
