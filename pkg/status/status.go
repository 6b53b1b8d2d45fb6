// Package status defines the result type shared by the wire boundary
// layer. A Status carries an outcome code, an optional human-readable
// message and an optional posix error number, and is the value that
// crosses process boundaries through the wire status codec.
package status

import "fmt"

// Code identifies the outcome of an operation. The named constants form
// the closed set this layer understands; the type is an open int32 so
// extension codes from newer peers remain representable and can be
// mapped defensively instead of dropped.
type Code int32

const (
	CodeOK Code = iota
	CodeNotFound
	CodeCorruption
	CodeNotSupported
	CodeInvalidArgument
	CodeIOError
	CodeAlreadyPresent
	CodeRuntimeError
	CodeNetworkError
	CodeUnknown
)

var codeNames = map[Code]string{
	CodeOK:              "OK",
	CodeNotFound:        "Not found",
	CodeCorruption:      "Corruption",
	CodeNotSupported:    "Not supported",
	CodeInvalidArgument: "Invalid argument",
	CodeIOError:         "IO error",
	CodeAlreadyPresent:  "Already present",
	CodeRuntimeError:    "Runtime error",
	CodeNetworkError:    "Network error",
	CodeUnknown:         "Unknown",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int32(c))
}

// PosixUnset is the sentinel for a Status that carries no posix error
// number. It is never transmitted on the wire.
const PosixUnset int32 = -1

// Status is the outcome of an operation. The zero value is not useful;
// use OK or one of the constructors. A non-OK Status implements error.
type Status struct {
	code    Code
	message string
	posix   int32
}

var okStatus = &Status{code: CodeOK, posix: PosixUnset}

// OK returns the shared success status. It carries no message and no
// posix code.
func OK() *Status { return okStatus }

// New builds a status with an arbitrary code. Intended for extension
// codes outside the named set; prefer the typed constructors otherwise.
func New(code Code, message string) *Status {
	if code == CodeOK {
		return okStatus
	}
	return &Status{code: code, message: message, posix: PosixUnset}
}

func newf(code Code, format string, args []any) *Status {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Status{code: code, message: msg, posix: PosixUnset}
}

func NotFound(format string, args ...any) *Status {
	return newf(CodeNotFound, format, args)
}

func Corruption(format string, args ...any) *Status {
	return newf(CodeCorruption, format, args)
}

func NotSupported(format string, args ...any) *Status {
	return newf(CodeNotSupported, format, args)
}

func InvalidArgument(format string, args ...any) *Status {
	return newf(CodeInvalidArgument, format, args)
}

func IOError(format string, args ...any) *Status {
	return newf(CodeIOError, format, args)
}

func AlreadyPresent(format string, args ...any) *Status {
	return newf(CodeAlreadyPresent, format, args)
}

func RuntimeError(format string, args ...any) *Status {
	return newf(CodeRuntimeError, format, args)
}

func NetworkError(format string, args ...any) *Status {
	return newf(CodeNetworkError, format, args)
}

// WithPosixCode returns a copy of s carrying the given posix error
// number. Calling it on an OK status is a no-op.
func (s *Status) WithPosixCode(code int32) *Status {
	if s.code == CodeOK {
		return s
	}
	clone := *s
	clone.posix = code
	return &clone
}

func (s *Status) Code() Code      { return s.code }
func (s *Status) Message() string { return s.message }

// PosixCode returns the posix error number, or PosixUnset if none was
// attached.
func (s *Status) PosixCode() int32 { return s.posix }

func (s *Status) IsOK() bool              { return s.code == CodeOK }
func (s *Status) IsNotFound() bool        { return s.code == CodeNotFound }
func (s *Status) IsCorruption() bool      { return s.code == CodeCorruption }
func (s *Status) IsNotSupported() bool    { return s.code == CodeNotSupported }
func (s *Status) IsInvalidArgument() bool { return s.code == CodeInvalidArgument }
func (s *Status) IsIOError() bool         { return s.code == CodeIOError }
func (s *Status) IsAlreadyPresent() bool  { return s.code == CodeAlreadyPresent }
func (s *Status) IsRuntimeError() bool    { return s.code == CodeRuntimeError }
func (s *Status) IsNetworkError() bool    { return s.code == CodeNetworkError }

// String renders the status as "<code>: <message>"; OK renders as "OK".
func (s *Status) String() string {
	if s.code == CodeOK {
		return "OK"
	}
	if s.message == "" {
		return s.code.String()
	}
	return s.code.String() + ": " + s.message
}

// Error makes a non-OK Status usable as a plain Go error.
func (s *Status) Error() string { return s.String() }

// Err returns s as an error, or nil if s is OK. Useful at boundaries
// that speak error instead of *Status.
func (s *Status) Err() error {
	if s == nil || s.code == CodeOK {
		return nil
	}
	return s
}
