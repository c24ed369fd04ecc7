package section

import "github.com/arloliu/lerc/endian"

// Fletcher32 computes the Fletcher-32 variant used by Lerc2.
//
// It differs from the textbook form: each 16-bit word is read high byte first,
// both sums start at 0xffff, and the sums are folded every 359 words.
func Fletcher32(data []byte) uint32 {
	sum1, sum2 := uint32(0xffff), uint32(0xffff)
	words := len(data) / 2
	p := 0

	for words > 0 {
		tlen := min(words, 359)
		words -= tlen
		for ; tlen > 0; tlen-- {
			sum1 += uint32(data[p]) << 8
			sum1 += uint32(data[p+1])
			sum2 += sum1
			p += 2
		}
		sum1 = (sum1 & 0xffff) + (sum1 >> 16)
		sum2 = (sum2 & 0xffff) + (sum2 >> 16)
	}

	if len(data)&1 != 0 {
		sum1 += uint32(data[p]) << 8
		sum2 += sum1
	}

	sum1 = (sum1 & 0xffff) + (sum1 >> 16)
	sum2 = (sum2 & 0xffff) + (sum2 >> 16)

	return sum2<<16 | sum1
}

// ComputeChecksum returns the checksum of a complete band blob, covering every
// byte after the checksum field.
func ComputeChecksum(band []byte) uint32 {
	if len(band) <= ChecksumStart {
		return Fletcher32(nil)
	}

	return Fletcher32(band[ChecksumStart:])
}

// PatchChecksum computes the checksum of a complete v3+ band blob and stores it
// in the header.
func PatchChecksum(band []byte) {
	endian.BlobEngine().PutUint32(band[ChecksumOffset:], ComputeChecksum(band))
}
