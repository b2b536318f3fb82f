package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_TypeAndCause(t *testing.T) {
	cause := os.ErrPermission

	tests := []struct {
		name     string
		err      *AppError
		sentinel error
		errType  ErrorType
		code     string
	}{
		{"decode", NewDecode("in.png", cause), ErrDecode, ErrorTypeDecode, CodeDecodeFailed},
		{"directory", NewDirectory("out", cause), ErrDirectory, ErrorTypeDirectory, CodeDirectoryFailed},
		{"resample", NewResample("Icon-20.png", 20, cause), ErrResample, ErrorTypeResample, CodeResampleFailed},
		{"encode", NewEncode("Icon-20.png", cause), ErrEncode, ErrorTypeEncode, CodeEncodeFailed},
		{"write", NewWrite("Icon-20.png", cause), ErrWrite, ErrorTypeWrite, CodeWriteFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.errType, tt.err.Type)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			assert.True(t, errors.Is(tt.err, os.ErrPermission))
			assert.Contains(t, tt.err.Error(), cause.Error())
		})
	}
}

func TestIs_DistinguishesTypes(t *testing.T) {
	err := NewWrite("Icon-20.png", os.ErrPermission)
	assert.False(t, errors.Is(err, ErrEncode))
	assert.False(t, errors.Is(err, ErrDecode))
}

func TestFromError_Wrapped(t *testing.T) {
	inner := NewEncode("Icon-40.png", fmt.Errorf("boom"))
	wrapped := fmt.Errorf("context: %w", inner)

	got := FromError(wrapped)
	require.NotNil(t, got)
	assert.Same(t, inner, got)
	assert.Equal(t, ErrorTypeEncode, TypeOf(wrapped))

	plain := FromError(fmt.Errorf("plain"))
	assert.Equal(t, ErrorTypeUnknown, plain.Type)
	assert.Nil(t, FromError(nil))
	assert.Equal(t, ErrorType(""), TypeOf(nil))
}

func TestError_MessageFallbacks(t *testing.T) {
	assert.Equal(t, "write", (&AppError{Type: ErrorTypeWrite}).Error())
	assert.Equal(t, "only message", (&AppError{Message: "only message"}).Error())
	assert.Equal(t, "cause", (&AppError{InnerError: fmt.Errorf("cause")}).Error())
	assert.Equal(t, "write Icon-20.png: cause", NewWrite("Icon-20.png", fmt.Errorf("cause")).Error())
}

func TestRecover(t *testing.T) {
	assert.Nil(t, Recover(nil))
	assert.EqualError(t, Recover("bad bounds"), "bad bounds")
	assert.EqualError(t, Recover(42), "42")

	sentinel := fmt.Errorf("sentinel")
	assert.Same(t, sentinel, Recover(sentinel))
}

func TestWithStack(t *testing.T) {
	err := NewResample("Icon-20.png", 20, fmt.Errorf("panic")).WithStack()
	assert.NotEmpty(t, err.Stack)
	assert.Contains(t, Format(err), "stack:")
}

func TestErrorChain(t *testing.T) {
	chain := NewErrorChain()
	assert.False(t, chain.HasErrors())
	assert.Equal(t, "", chain.Error())

	chain.Add(NewWrite("Icon-20.png", os.ErrPermission)).
		Add(nil).
		Add(NewEncode("Icon-29.png", fmt.Errorf("bad pixels")))

	require.Equal(t, 2, chain.Len())
	assert.True(t, chain.HasType(ErrorTypeWrite))
	assert.False(t, chain.HasType(ErrorTypeDecode))
	assert.Equal(t, 1, chain.Filter(ErrorTypeEncode).Len())
	assert.True(t, errors.Is(chain, ErrWrite))
	assert.True(t, errors.Is(chain, os.ErrPermission))
	assert.Contains(t, chain.Error(), " | ")
}
