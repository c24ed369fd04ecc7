// Package native defines the collaborator boundary between the binding and a
// LERC codec library.
//
// The codec exposes four entry points, mirrored by the Library interface:
//
//	lerc_getBlobInfo            -> Library.GetBlobInfo
//	lerc_decodeToDouble         -> Library.DecodeToDouble
//	lerc_computeCompressedSize  -> Library.ComputeCompressedSize
//	lerc_encode                 -> Library.Encode
//
// Each returns a Status; zero is success and any other value is passed through
// to callers verbatim.
//
// # Implementations
//
//   - CLibrary calls liblerc through cgo. It is compiled only with cgo and the
//     lerc build tag (go build -tags lerc) and links against -lLerc.
//   - lerc2.Codec (package lerc2) is a pure-Go implementation of the Lerc2
//     container used when the C library is not compiled in.
//
// # Wrappers
//
// Serialize routes every call of a Library through one process-wide mutex, for
// codec builds that keep global state. Instrument counts calls and bytes with
// Prometheus. Wrappers compose: Instrument(Serialize(lib), m).
//
// # Buffer ownership
//
// Slices passed to a Library are borrowed for the duration of one call. An
// implementation must not retain them, and callers must not resize or reuse
// them until the call returns.
package native
