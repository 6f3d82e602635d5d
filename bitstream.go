package huffcode

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Bitstream is an ordered sequence of bits, packed most significant bit first
// into bytes.  The unused low bits of the final byte are 0.
//
// The zero Bitstream is empty.
//
type Bitstream struct {
	data []byte
	size uint64
}

// NewBitstream copies the first size bits of data into a new Bitstream.  Any
// bits of data past size are dropped.
func NewBitstream(data []byte, size uint64) (Bitstream, error) {
	if bytesForBits(size) > uint64(len(data)) {
		return Bitstream{}, fmt.Errorf("%w: %d bits do not fit in %d bytes", ErrInvalidBitstream, size, len(data))
	}
	return Bitstream{data: data, size: size}.Prefix(size), nil
}

// ParseBitstream parses a string of '0' and '1' characters.
func ParseBitstream(str string) (Bitstream, error) {
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	for i := 0; i < len(str); i++ {
		var bit bool
		switch str[i] {
		case '0':
		case '1':
			bit = true
		default:
			return Bitstream{}, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidBitstream, str[i], i)
		}
		if err := bw.WriteBool(bit); err != nil {
			return Bitstream{}, err
		}
	}
	if err := bw.Close(); err != nil {
		return Bitstream{}, err
	}
	return Bitstream{data: buf.Bytes(), size: uint64(len(str))}, nil
}

// Len returns the number of bits in the Bitstream.
func (bs Bitstream) Len() uint64 {
	return bs.size
}

// Bit returns the i'th bit of the Bitstream.
func (bs Bitstream) Bit(i uint64) byte {
	assert.Assertf(i < bs.size, "bit %d out of range [0, %d)", i, bs.size)
	return (bs.data[i/8] >> (7 - i%8)) & 1
}

// Bytes returns the packed bits.  The final byte is padded with 0 bits.  The
// returned slice must not be modified.
func (bs Bitstream) Bytes() []byte {
	return bs.data
}

// Prefix returns a new Bitstream holding the first n bits of this one.
func (bs Bitstream) Prefix(n uint64) Bitstream {
	assert.Assertf(n <= bs.size, "prefix %d longer than bitstream %d", n, bs.size)
	numBytes := bytesForBits(n)
	data := make([]byte, numBytes)
	copy(data, bs.data[:numBytes])
	if extra := n % 8; extra != 0 {
		data[numBytes-1] &^= byte(0xff) >> extra
	}
	return Bitstream{data: data, size: n}
}

// String returns the bits as a string of '0' and '1' characters.
func (bs Bitstream) String() string {
	var sb strings.Builder
	sb.Grow(int(bs.size))
	for i := uint64(0); i < bs.size; i++ {
		sb.WriteByte('0' + bs.Bit(i))
	}
	return sb.String()
}

var _ fmt.Stringer = Bitstream{}
