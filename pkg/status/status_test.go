package status

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	s := OK()
	require.True(t, s.IsOK())
	require.Equal(t, CodeOK, s.Code())
	require.Empty(t, s.Message())
	require.Equal(t, PosixUnset, s.PosixCode())
	require.Equal(t, "OK", s.String())
	require.NoError(t, s.Err())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name  string
		got   *Status
		code  Code
		check func(*Status) bool
	}{
		{"not found", NotFound("missing"), CodeNotFound, (*Status).IsNotFound},
		{"corruption", Corruption("bad bytes"), CodeCorruption, (*Status).IsCorruption},
		{"not supported", NotSupported("nope"), CodeNotSupported, (*Status).IsNotSupported},
		{"invalid argument", InvalidArgument("bad arg"), CodeInvalidArgument, (*Status).IsInvalidArgument},
		{"io error", IOError("disk"), CodeIOError, (*Status).IsIOError},
		{"already present", AlreadyPresent("dup"), CodeAlreadyPresent, (*Status).IsAlreadyPresent},
		{"runtime error", RuntimeError("boom"), CodeRuntimeError, (*Status).IsRuntimeError},
		{"network error", NetworkError("conn reset"), CodeNetworkError, (*Status).IsNetworkError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.code, tc.got.Code())
			require.True(t, tc.check(tc.got))
			require.False(t, tc.got.IsOK())
			require.Equal(t, PosixUnset, tc.got.PosixCode())
			require.Error(t, tc.got.Err())
		})
	}
}

func TestFormattedMessage(t *testing.T) {
	s := Corruption("row block has %d bytes, row size %d", 17, 8)
	require.Equal(t, "row block has 17 bytes, row size 8", s.Message())
	require.Equal(t, "Corruption: row block has 17 bytes, row size 8", s.String())
	require.Equal(t, s.String(), s.Error())
}

func TestWithPosixCode(t *testing.T) {
	s := IOError("write failed")
	withPosix := s.WithPosixCode(28)

	require.Equal(t, int32(28), withPosix.PosixCode())
	require.Equal(t, s.Message(), withPosix.Message())
	// Original is untouched.
	require.Equal(t, PosixUnset, s.PosixCode())

	// Attaching a posix code to OK is a no-op.
	require.Same(t, OK(), OK().WithPosixCode(28))
}

func TestExtensionCode(t *testing.T) {
	s := New(Code(42), "from the future")
	require.Equal(t, Code(42), s.Code())
	require.Equal(t, "code(42)", s.Code().String())
	require.Equal(t, "code(42): from the future", s.String())

	// New with CodeOK collapses to the shared OK value.
	require.Same(t, OK(), New(CodeOK, "ignored"))
}
