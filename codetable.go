package huffcode

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// CodeTable maps each Symbol of a Tree to its Code.
//
// The codes of a CodeTable always form a complete prefix code: no code is a
// prefix of another, and every Code has at least one bit.
//
type CodeTable struct {
	codes    []Code
	numCodes int
	minSize  byte
	maxSize  byte
}

// BuildCodeTable walks the Tree and assigns each leaf the path from the root
// to that leaf, with '0' for a left edge and '1' for a right edge.
//
// An empty Tree yields an empty CodeTable.
//
func BuildCodeTable(t *Tree) CodeTable {
	ct := CodeTable{codes: make([]Code, NumSymbols)}

	root := t.Root()
	if root == NoNode {
		return ct
	}

	// Walk the tree with an explicit stack rather than recursion; a
	// skewed tree can be MaxCodeSize levels deep.

	type stackItem struct {
		id NodeID
		hc Code
	}

	stack := make([]stackItem, 0, log2uint32(uint32(t.NumNodes()))+1)
	stack = append(stack, stackItem{root, Code{}})

	for len(stack) != 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.nodes[item.id]
		if node.Leaf {
			assert.Assertf(item.hc.Size != 0, "leaf %d for symbol %v is the root", item.id, node.Symbol)
			ct.add(node.Symbol, item.hc)
			continue
		}

		if node.Right != NoNode {
			stack = append(stack, stackItem{node.Right, item.hc.appendBit(1)})
		}
		if node.Left != NoNode {
			stack = append(stack, stackItem{node.Left, item.hc.appendBit(0)})
		}
	}

	return ct
}

// Lookup returns the Code for the given Symbol.  The second return value is
// false if the Symbol has no Code.
func (ct CodeTable) Lookup(symbol Symbol) (Code, bool) {
	if ct.codes == nil {
		return Code{}, false
	}
	hc := ct.codes[symbol]
	return hc, hc.Size != 0
}

// Len returns the number of Symbols that have a Code.
func (ct CodeTable) Len() int {
	return ct.numCodes
}

// Symbols returns the Symbols that have a Code, in ascending order.
func (ct CodeTable) Symbols() []Symbol {
	out := make([]Symbol, 0, ct.numCodes)
	for symbol, hc := range ct.codes {
		if hc.Size != 0 {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}

// MinSize is the bit length of the shortest legal code.
func (ct CodeTable) MinSize() byte {
	return ct.minSize
}

// MaxSize is the bit length of the longest legal code.
func (ct CodeTable) MaxSize() byte {
	return ct.maxSize
}

// SizeBySymbol returns an array containing the bit length for each Symbol,
// up to and including the last Symbol that has a Code.  Symbols without a
// Code have a length of 0.
//
// This array can be transmitted to another party and passed to TreeFromSizes
// to decode a Bitstream produced with the Canonical version of this table.
//
func (ct CodeTable) SizeBySymbol() []byte {
	end := len(ct.codes)
	for end > 0 && ct.codes[end-1].Size == 0 {
		end--
	}
	out := make([]byte, end)
	for symbol := 0; symbol < end; symbol++ {
		out[symbol] = ct.codes[symbol].Size
	}
	return out
}

// Canonical returns the canonical Huffman code with the same code lengths as
// this table.  Codes are assigned sequentially in order of (length, Symbol),
// per the algorithm detailed at
// <https://en.wikipedia.org/w/index.php?title=Canonical_Huffman_code&oldid=999983137>.
//
func (ct CodeTable) Canonical() CodeTable {
	if ct.numCodes == 0 {
		return CodeTable{codes: make([]Code, NumSymbols)}
	}

	sizes := ct.SizeBySymbol()
	codes, ok := canonicalCodes(sizes)
	assert.Assertf(ok, "code lengths %v of a valid CodeTable are not canonicalizable", sizes)

	out := CodeTable{codes: make([]Code, NumSymbols)}
	for symbol, hc := range codes {
		if hc.Size != 0 {
			out.add(Symbol(symbol), hc)
		}
	}
	return out
}

// String returns a brief description of this CodeTable.
func (ct CodeTable) String() string {
	return fmt.Sprintf("(Huffman code table with %d symbols, with coded lengths of %d .. %d bits)", ct.numCodes, ct.minSize, ct.maxSize)
}

// Dump writes a programmer-readable debugging dump of the CodeTable to the
// given writer.
func (ct CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.maxSize)
	for _, symbol := range ct.Symbols() {
		fmt.Fprintf(&buf, "\tEncode(%v) = %s\n", symbol, ct.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

var _ fmt.Stringer = CodeTable{}

func (ct *CodeTable) add(symbol Symbol, hc Code) {
	assert.Assertf(ct.codes[symbol].Size == 0, "symbol %v assigned twice", symbol)
	ct.codes[symbol] = hc
	if ct.numCodes == 0 {
		ct.minSize = hc.Size
		ct.maxSize = hc.Size
	} else if ct.minSize > hc.Size {
		ct.minSize = hc.Size
	} else if ct.maxSize < hc.Size {
		ct.maxSize = hc.Size
	}
	ct.numCodes++
}

// canonicalCodes assigns canonical codes to the given per-Symbol bit lengths.
// Lengths of 0 are skipped.  The second return value is false if no symbol
// has a length, or if some length exceeds MaxCodeSize.
//
// The codes are only guaranteed to be prefix-free if the lengths describe a
// complete code; callers holding untrusted lengths must check the result.
//
func canonicalCodes(sizes []byte) ([]Code, bool) {
	// Step 1: sort the symbols by (size, symbol) ascending.

	sorted := make(bySize, 0, len(sizes))
	for symbol, size := range sizes {
		if size == 0 {
			continue
		}
		if size > MaxCodeSize {
			return nil, false
		}
		sorted = append(sorted, symbolAndSize{Symbol(symbol), size})
	}
	if len(sorted) == 0 {
		return nil, false
	}
	sorted.Sort()

	// Step 2: assign the codes sequentially.

	codes := make([]Code, len(sizes))
	lastSize := sorted[0].size
	nextCode := uint64(0)
	for _, item := range sorted {
		if item.size > lastSize {
			nextCode <<= (item.size - lastSize)
			lastSize = item.size
		}
		codes[item.symbol] = MakeCode(item.size, nextCode)
		nextCode++
	}
	return codes, true
}

// type symbolAndSize + type bySize {{{

type symbolAndSize struct {
	symbol Symbol
	size   byte
}

type bySize []symbolAndSize

func (list bySize) Len() int {
	return len(list)
}

func (list bySize) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySize) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.size != b.size {
		return a.size < b.size
	}
	return a.symbol < b.symbol
}

func (list bySize) Sort() {
	sort.Sort(list)
}

var _ sort.Interface = bySize(nil)

// }}}
