package huffcode

import (
	mathbits "math/bits"
)

func log2uint32(x uint32) uint32 {
	if x == 0 {
		x = 1
	}
	return uint32(32 - mathbits.LeadingZeros32(x))
}

// lowMask returns a mask covering the low size bits.
func lowMask(size byte) uint64 {
	if size >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << size) - 1
}

func bytesForBits(size uint64) uint64 {
	return (size + 7) / 8
}
