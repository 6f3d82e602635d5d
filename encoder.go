package huffcode

import (
	"bytes"

	"github.com/icza/bitio"
)

// Encode counts the symbols of the input, builds their Huffman tree, and
// encodes the input with it.  The Tree must be retained in order to decode
// the Bitstream later.
//
// Empty input is not an error: it produces an empty Bitstream and a nil Tree.
//
func Encode(input []byte) (Bitstream, *Tree, error) {
	if len(input) == 0 {
		return Bitstream{}, nil, nil
	}

	t, err := BuildTree(Count(input))
	if err != nil {
		return Bitstream{}, nil, err
	}

	bs, err := BuildCodeTable(t).Encode(input)
	if err != nil {
		return Bitstream{}, nil, err
	}
	return bs, t, nil
}

// Encode concatenates the Code of each input Symbol, in input order.
//
// If the input contains a Symbol without a Code, Encode fails with an
// *UnknownSymbolError and no Bitstream is produced.
//
func (ct CodeTable) Encode(input []byte) (Bitstream, error) {
	var buf bytes.Buffer
	buf.Grow(int(bytesForBits(uint64(len(input)) * uint64(ct.maxSize))))

	bw := bitio.NewWriter(&buf)
	var size uint64
	for offset, b := range input {
		hc, found := ct.Lookup(Symbol(b))
		if !found {
			return Bitstream{}, &UnknownSymbolError{Symbol: Symbol(b), Offset: offset}
		}
		if err := bw.WriteBits(hc.Bits, hc.Size); err != nil {
			return Bitstream{}, err
		}
		size += uint64(hc.Size)
	}
	if err := bw.Close(); err != nil {
		return Bitstream{}, err
	}

	return Bitstream{data: buf.Bytes(), size: size}, nil
}
