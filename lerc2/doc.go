// Package lerc2 is a pure-Go codec for the Lerc2 blob container.
//
// Codec implements native.Library without cgo. It reads every header version
// from 2 to 6, verifies checksums, expands validity masks and decodes the
// payload forms that need no entropy coding:
//   - empty bands (no valid pixel)
//   - constant bands, globally or per depth slice
//   - one-sweep bands, where valid values are stored raw in row-major order
//
// Tiled and Huffman-coded payloads written by the reference codec are reported
// as native.StatusUnsupported; build with -tags lerc to decode those through
// liblerc.
//
// The encoder writes version 4 blobs. It chooses the constant form when it
// can and falls back to one sweep otherwise, so output is always lossless and
// the recorded max error is 0. Masks are RLE-compressed, and a band whose mask
// equals the previous band's omits it.
package lerc2
