package huffcode

import (
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// TreeFromSizes builds a decoding Tree from per-Symbol code lengths, such as
// those returned by CodeTable.SizeBySymbol.  The index into sizes is the
// Symbol; Symbols with a length of 0 are omitted from the code entirely.
//
// The tree matches the codes assigned by CodeTable.Canonical.  Its weights
// are all 0, since code lengths carry no frequency information.
//
// Lengths that over-subscribe or under-fill the code space are rejected with
// ErrInvalidTree, except for the degenerate case of a single Symbol with a
// length of 1.
//
func TreeFromSizes(sizes []byte) (*Tree, error) {
	if len(sizes) > NumSymbols {
		return nil, fmt.Errorf("%w: %d code lengths for an alphabet of %d symbols", ErrInvalidTree, len(sizes), NumSymbols)
	}

	var numCodes int
	for symbol, size := range sizes {
		if size > MaxCodeSize {
			return nil, fmt.Errorf("%w: symbol %v has length %d, max %d", ErrCodeTooLong, Symbol(symbol), size, MaxCodeSize)
		}
		if size != 0 {
			numCodes++
		}
	}
	if numCodes == 0 {
		return nil, ErrEmptyAlphabet
	}

	codes, ok := canonicalCodes(sizes)
	assert.Assertf(ok, "canonicalCodes rejected checked lengths %v", sizes)

	t := &Tree{
		nodes: make([]Node, 0, 2*numCodes),
		root:  NoNode,
	}
	t.root = t.addNode(Node{Left: NoNode, Right: NoNode})

	for symbol, hc := range codes {
		if hc.Size == 0 {
			continue
		}

		current := t.root
		for i := byte(0); i < hc.Size; i++ {
			if t.nodes[current].Leaf {
				return nil, fmt.Errorf("%w: code %s for symbol %v extends the code of symbol %v", ErrInvalidTree, hc, Symbol(symbol), t.nodes[current].Symbol)
			}

			bit := hc.Bit(i)
			last := (i+1 == hc.Size)

			child := t.nodes[current].Left
			if bit == 1 {
				child = t.nodes[current].Right
			}

			if child != NoNode {
				if last {
					return nil, fmt.Errorf("%w: code %s for symbol %v is already in use", ErrInvalidTree, hc, Symbol(symbol))
				}
				current = child
				continue
			}

			node := Node{Left: NoNode, Right: NoNode}
			if last {
				node.Symbol = Symbol(symbol)
				node.Leaf = true
			}
			child = t.addNode(node)
			if bit == 1 {
				t.nodes[current].Right = child
			} else {
				t.nodes[current].Left = child
			}
			current = child
		}
	}

	// Validate catches any internal node that is missing a child, i.e.
	// lengths that leave part of the code space unused.
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
