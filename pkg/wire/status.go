package wire

import (
	"github.com/valkyrdb/rowwire/pkg/status"
)

// StatusCode is the wire representation of a status outcome. Values
// are fixed: they are shared with remote peers and must never be
// renumbered.
type StatusCode int32

const (
	StatusOK              StatusCode = 0
	StatusNotFound        StatusCode = 1
	StatusCorruption      StatusCode = 2
	StatusNotSupported    StatusCode = 3
	StatusInvalidArgument StatusCode = 4
	StatusIOError         StatusCode = 5
	StatusAlreadyPresent  StatusCode = 6
	StatusRuntimeError    StatusCode = 7
	StatusNetworkError    StatusCode = 8
	StatusUnknownError    StatusCode = 999
)

// StatusDescriptor is the compact status form carried inside
// request/response envelopes. PosixCode is nil when no error number
// was attached; the local -1 sentinel is never transmitted.
type StatusDescriptor struct {
	Code      StatusCode `yaml:"code"`
	Message   string     `yaml:"message,omitempty"`
	PosixCode *int32     `yaml:"posix_code,omitempty"`
}

// StatusToWire maps a status to its wire descriptor. It never fails:
// codes outside the closed set are sent as StatusUnknownError with the
// stringified original code prefixed to the message, so the receiver
// still gets something readable.
func (c *Codec) StatusToWire(st *status.Status) StatusDescriptor {
	var d StatusDescriptor
	if st.IsOK() {
		// OK statuses carry no message and no posix code.
		d.Code = StatusOK
		return d
	}

	known := true
	switch st.Code() {
	case status.CodeNotFound:
		d.Code = StatusNotFound
	case status.CodeCorruption:
		d.Code = StatusCorruption
	case status.CodeNotSupported:
		d.Code = StatusNotSupported
	case status.CodeInvalidArgument:
		d.Code = StatusInvalidArgument
	case status.CodeIOError:
		d.Code = StatusIOError
	case status.CodeAlreadyPresent:
		d.Code = StatusAlreadyPresent
	case status.CodeRuntimeError:
		d.Code = StatusRuntimeError
	case status.CodeNetworkError:
		d.Code = StatusNetworkError
	default:
		c.log.Warn().
			Stringer("code", st.Code()).
			Str("status", st.String()).
			Msg("unknown status code translation, sending unknown error")
		if c.metrics != nil {
			c.metrics.unknownStatusCodes.WithLabelValues("encode").Inc()
		}
		d.Code = StatusUnknownError
		known = false
	}

	if known {
		// The receiver reconstructs the rest from the code.
		d.Message = st.Message()
	} else {
		d.Message = st.Code().String() + ": " + st.Message()
	}
	if st.PosixCode() != status.PosixUnset {
		posix := st.PosixCode()
		d.PosixCode = &posix
	}
	return d
}

// StatusFromWire reconstructs a status from its wire descriptor. It
// never fails: unknown or unset codes degrade to a generic runtime
// error carrying the original message.
func (c *Codec) StatusFromWire(d StatusDescriptor) *status.Status {
	var st *status.Status
	switch d.Code {
	case StatusOK:
		return status.OK()
	case StatusNotFound:
		st = status.NotFound("%s", d.Message)
	case StatusCorruption:
		st = status.Corruption("%s", d.Message)
	case StatusNotSupported:
		st = status.NotSupported("%s", d.Message)
	case StatusInvalidArgument:
		st = status.InvalidArgument("%s", d.Message)
	case StatusIOError:
		st = status.IOError("%s", d.Message)
	case StatusAlreadyPresent:
		st = status.AlreadyPresent("%s", d.Message)
	case StatusRuntimeError:
		st = status.RuntimeError("%s", d.Message)
	case StatusNetworkError:
		st = status.NetworkError("%s", d.Message)
	default:
		c.log.Warn().
			Int32("code", int32(d.Code)).
			Str("message", d.Message).
			Msg("unknown status code in descriptor")
		if c.metrics != nil {
			c.metrics.unknownStatusCodes.WithLabelValues("decode").Inc()
		}
		st = status.RuntimeError("(unknown error code): %s", d.Message)
	}

	if d.PosixCode != nil {
		st = st.WithPosixCode(*d.PosixCode)
	}
	return st
}
