package section

// File identification and versions.
const (
	// FileKey opens every Lerc2 band blob.
	FileKey = "Lerc2 "
	// FileKeyLen is the length of FileKey in bytes.
	FileKeyLen = len(FileKey)

	MinVersion     = 2 // oldest Lerc2 layout understood by ParseHeader
	CurrentVersion = 6 // newest Lerc2 layout understood by ParseHeader
	WriteVersion   = 4 // layout produced by Header.Bytes in this module's encoder

	// DefaultMicroBlockSize is the tile edge recorded by the encoder.
	DefaultMicroBlockSize = 8
)

// Byte offsets of fields shared by all versions.
const (
	VersionOffset  = FileKeyLen         // int32 version
	ChecksumOffset = VersionOffset + 4  // uint32 Fletcher-32 checksum, v3+
	ChecksumStart  = ChecksumOffset + 4 // first byte covered by the checksum

	// MinBlobSize is the smallest buffer that can carry a file key and version.
	MinBlobSize = FileKeyLen + 4
)

// RLE block markers.
const (
	rleEOF       int16 = -32768 // terminates an RLE stream
	rleMaxCount        = 32767  // longest literal or repeat block
	rleMinRepeat       = 5      // shortest run emitted as a repeat block
)

// HeaderSize returns the encoded header size for a Lerc2 version, or 0 for an
// unknown version.
//
//	v2:    key(6) version(4) ints(6*4) doubles(3*8)                          = 58
//	v3:    + checksum(4)                                                    = 62
//	v4-v5: + nDepth(4)                                                      = 66
//	v6:    + nBlobsMore(4) flags(4) noData doubles(2*8)                      = 90
func HeaderSize(version int32) int {
	switch {
	case version < MinVersion || version > CurrentVersion:
		return 0
	case version == 2:
		return FileKeyLen + 4 + 6*4 + 3*8
	case version == 3:
		return FileKeyLen + 4 + 4 + 6*4 + 3*8
	case version < 6:
		return FileKeyLen + 4 + 4 + 7*4 + 3*8
	default:
		return FileKeyLen + 4 + 4 + 8*4 + 4 + 5*8
	}
}
