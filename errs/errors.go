// Package errs defines the errors returned by the lerc packages.
//
// Contract violations detected on the Go side of the binding are plain sentinel
// errors. Failures reported by the codec library are *StatusError values that
// carry the library's status code verbatim and match one of the four operation
// sentinels (ErrHeaderParse, ErrPixelDecode, ErrSizeProbe, ErrEncode) with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

// Operation sentinels. Every *StatusError matches exactly one of them.
var (
	ErrHeaderParse = errors.New("lerc: failed to get info from blob")
	ErrPixelDecode = errors.New("lerc: failed to decode blob")
	ErrSizeProbe   = errors.New("lerc: failed to compute compressed size")
	ErrEncode      = errors.New("lerc: failed to encode blob")
)

// Blob contract errors.
var (
	ErrBlobTooShort      = errors.New("lerc: blob is shorter than the minimum header size")
	ErrBlobTooLarge      = errors.New("lerc: blob exceeds the maximum allowed size")
	ErrBlobSizeMismatch  = errors.New("lerc: blob size in header does not match buffer length")
	ErrInvalidFieldCount = errors.New("lerc: unexpected number of header fields")
	ErrInvalidHeaderSize = errors.New("lerc: invalid header size")
	ErrInvalidFileKey    = errors.New("lerc: invalid file key")
	ErrUnsupportedVer    = errors.New("lerc: unsupported blob version")
	ErrChecksumMismatch  = errors.New("lerc: checksum mismatch")
	ErrInvalidMask       = errors.New("lerc: invalid mask payload")
)

// Encode argument errors.
var (
	ErrInvalidDimensions   = errors.New("lerc: invalid raster dimensions")
	ErrDataLengthMismatch  = errors.New("lerc: data length does not match dimensions")
	ErrInvalidMaxZError    = errors.New("lerc: max z error must be a non-negative number")
	ErrInvalidMaskCount    = errors.New("lerc: mask count must be 0, 1 or the number of bands")
	ErrMaskLengthMismatch  = errors.New("lerc: mask length does not match dimensions")
	ErrUnsupportedDataType = errors.New("lerc: unsupported data type")
	ErrValueOutOfRange     = errors.New("lerc: value out of range for data type")
)

// Op identifies the codec entry point that failed.
type Op uint8

const (
	OpHeaderParse Op = iota + 1
	OpPixelDecode
	OpSizeProbe
	OpEncode
)

func (op Op) String() string {
	switch op {
	case OpHeaderParse:
		return "HeaderParse"
	case OpPixelDecode:
		return "PixelDecode"
	case OpSizeProbe:
		return "SizeProbe"
	case OpEncode:
		return "Encode"
	default:
		return "Unknown"
	}
}

func (op Op) sentinel() error {
	switch op {
	case OpHeaderParse:
		return ErrHeaderParse
	case OpPixelDecode:
		return ErrPixelDecode
	case OpSizeProbe:
		return ErrSizeProbe
	case OpEncode:
		return ErrEncode
	default:
		return nil
	}
}

// StatusError reports a non-zero status returned by a codec entry point.
//
// Code is the library status, preserved as returned. Err optionally records a
// binding-side cause, e.g. ErrBlobTooShort when the call was refused before it
// reached the library.
type StatusError struct {
	Op   Op
	Code uint32
	Err  error
}

// NewStatusError returns a *StatusError for op and code.
func NewStatusError(op Op, code uint32) *StatusError {
	return &StatusError{Op: op, Code: code}
}

// WithCause returns a copy of e that also wraps cause.
func (e *StatusError) WithCause(cause error) *StatusError {
	c := *e
	c.Err = cause

	return &c
}

func (e *StatusError) Error() string {
	msg := "lerc: unknown operation failed"
	if s := e.Op.sentinel(); s != nil {
		msg = s.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: status %d: %v", msg, e.Code, e.Err)
	}

	return fmt.Sprintf("%s: status %d", msg, e.Code)
}

// Unwrap exposes the operation sentinel and the optional cause to errors.Is.
func (e *StatusError) Unwrap() []error {
	out := make([]error, 0, 2)
	if s := e.Op.sentinel(); s != nil {
		out = append(out, s)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}

	return out
}

// StatusCode extracts the library status code from err.
//
// Returns:
//   - uint32: Status code of the first *StatusError in the chain
//   - bool: false if err does not wrap a *StatusError
func StatusCode(err error) (uint32, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}

	return 0, false
}
