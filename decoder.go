package huffcode

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// Decode walks the Tree bit by bit, starting at the root: a 0 bit moves to the
// left child and a 1 bit to the right child.  On reaching a leaf, its Symbol
// is emitted and the walk restarts at the root.
//
// An empty Bitstream decodes to empty output, whatever the Tree.  Otherwise:
//
//   - a nil, empty, or malformed Tree fails with ErrInvalidTree, as does a bit
//     that leads to an absent child;
//
//   - a Bitstream that ends before reaching a leaf fails with a
//     *TruncatedStreamError.
//
// Decode never returns partial output.
//
func Decode(bs Bitstream, t *Tree) ([]byte, error) {
	if bs.Len() == 0 {
		return []byte{}, nil
	}

	root := t.Root()
	if root == NoNode {
		return nil, fmt.Errorf("%w: no tree to decode %d bits with", ErrInvalidTree, bs.Len())
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	br := bitio.NewReader(bytes.NewReader(bs.data))
	out := make([]byte, 0, bytesForBits(bs.Len()))

	current := root
	var pending int
	for i := uint64(0); i < bs.size; i++ {
		bit, err := br.ReadBool()
		if err != nil {
			return nil, err
		}

		node := t.nodes[current]
		next := node.Left
		if bit {
			next = node.Right
		}
		if next == NoNode {
			return nil, fmt.Errorf("%w: bit %d leads from node %d to an absent child", ErrInvalidTree, i, current)
		}

		if child := t.nodes[next]; child.Leaf {
			out = append(out, byte(child.Symbol))
			current = root
			pending = 0
		} else {
			current = next
			pending++
		}
	}

	if current != root {
		return nil, &TruncatedStreamError{Size: bs.size, Pending: pending}
	}
	return out, nil
}
