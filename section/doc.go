// Package section defines the low-level binary structures of a Lerc2 blob.
//
// A LERC raster is stored as one or more concatenated band blobs. Each band
// blob is self-describing and little-endian:
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Header (58, 62, 66 or 90 bytes depending on version)     │
//	│  - "Lerc2 " file key (6 bytes)                           │
//	│  - version (int32), checksum (uint32, v3+)               │
//	│  - rows, cols, depth (v4+), numValid, microBlockSize,    │
//	│    blobSize, dataType (int32 each)                       │
//	│  - nBlobsMore (int32) and 4 flag bytes (v6+)             │
//	│  - maxZError, zMin, zMax (float64)                       │
//	│  - noData, noDataOrig (float64, v6+)                     │
//	├──────────────────────────────────────────────────────────┤
//	│ Mask                                                     │
//	│  - numBytes (int32), then an RLE-compressed bitmap       │
//	│    (absent when every or no pixel is valid)              │
//	├──────────────────────────────────────────────────────────┤
//	│ Per-depth ranges (v4+, only if zMin < zMax)              │
//	│  - depth minima, then depth maxima, as dataType elements │
//	├──────────────────────────────────────────────────────────┤
//	│ Pixel payload                                            │
//	│  - 1 byte: one sweep (raw valid values) or tiled         │
//	│  - values                                                │
//	└──────────────────────────────────────────────────────────┘
//
// The checksum is a Fletcher-32 variant over every byte after the checksum
// field up to blobSize.
//
// This package only handles the fixed structures: Header, the checksum and
// BitMask with its RLE codec. Payload handling lives in package lerc2.
package section
