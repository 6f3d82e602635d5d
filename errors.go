package huffcode

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyAlphabet is returned when there are no symbols to build a
	// tree from.
	ErrEmptyAlphabet = errors.New("empty alphabet: no symbols to build a Huffman tree from")

	// ErrUnknownSymbol is matched by *UnknownSymbolError.
	ErrUnknownSymbol = errors.New("symbol is not in the code table")

	// ErrTruncatedStream is matched by *TruncatedStreamError.
	ErrTruncatedStream = errors.New("bitstream ends in the middle of a code")

	// ErrInvalidTree is returned when a tree is structurally broken, or
	// when a bitstream walks off an absent child.
	ErrInvalidTree = errors.New("invalid Huffman tree")

	// ErrCodeTooLong is returned when a tree would need codes longer than
	// MaxCodeSize bits.
	ErrCodeTooLong = errors.New("Huffman code too long")

	// ErrWeightOverflow is returned when the symbol frequencies add up to
	// more than fits in a uint64.
	ErrWeightOverflow = errors.New("Huffman tree weight overflows uint64")

	// ErrInvalidBitstream is returned for malformed bitstream input.
	ErrInvalidBitstream = errors.New("invalid bitstream")
)

// UnknownSymbolError is returned by the encoder when the input contains a
// symbol that the code table does not cover.  This usually means the table
// was built from a different input.
type UnknownSymbolError struct {
	Symbol Symbol
	Offset int
}

// Error fulfills the error interface.
func (err *UnknownSymbolError) Error() string {
	return fmt.Sprintf("%v: symbol %v at offset %d", ErrUnknownSymbol, err.Symbol, err.Offset)
}

// Is returns true for ErrUnknownSymbol.
func (err *UnknownSymbolError) Is(target error) bool {
	return target == ErrUnknownSymbol
}

// TruncatedStreamError is returned by the decoder when the bitstream runs out
// before reaching a leaf.
type TruncatedStreamError struct {
	// Size is the length of the bitstream, in bits.
	Size uint64

	// Pending is the number of trailing bits that did not complete a code.
	Pending int
}

// Error fulfills the error interface.
func (err *TruncatedStreamError) Error() string {
	return fmt.Sprintf("%v: %d trailing bits of %d do not complete a code", ErrTruncatedStream, err.Pending, err.Size)
}

// Is returns true for ErrTruncatedStream.
func (err *TruncatedStreamError) Is(target error) bool {
	return target == ErrTruncatedStream
}

var (
	_ error = (*UnknownSymbolError)(nil)
	_ error = (*TruncatedStreamError)(nil)
)
