// Package huffcode implements static, two-pass Huffman coding over a byte
// alphabet: count the symbols, build the Huffman tree, derive the prefix code,
// then encode and decode with it.
//
// The encoded Bitstream is not self-describing.  Callers must keep the Tree
// (see Tree.MarshalBinary) or the code lengths (see CodeTable.SizeBySymbol and
// TreeFromSizes) alongside it in order to decode later.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
//     <https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
package huffcode
