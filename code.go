package huffcode

import (
	"fmt"
	"strconv"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the maximum length of a single code, in bits.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The first bit is the most
	// significant of the Size low bits; bits above Size are always 0.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= MaxCodeSize, "size %d > MaxCodeSize %d", size, MaxCodeSize)
	return Code{Size: size, Bits: bits & lowMask(size)}
}

// Bit returns the i'th bit of this Code, counting from the first.
func (hc Code) Bit(i byte) byte {
	assert.Assertf(i < hc.Size, "bit %d out of range [0, %d)", i, hc.Size)
	return byte(hc.Bits>>(hc.Size-1-i)) & 1
}

// HasPrefix returns true if prefix is a prefix of this Code (or equal to it).
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Bits>>(hc.Size-prefix.Size) == prefix.Bits
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}

// appendBit returns this Code with one more bit at the end.
func (hc Code) appendBit(bit byte) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "cannot extend a %d-bit code", hc.Size)
	return Code{Size: hc.Size + 1, Bits: (hc.Bits << 1) | uint64(bit&1)}
}
