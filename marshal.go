package huffcode

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"

	"github.com/icza/bitio"
)

// MarshalBinary serializes the Tree so that it can be stored or sent next to
// a Bitstream.
//
// Nodes are written in pre-order, packed most significant bit first.  An
// internal node is a 0 bit followed by its left and then its right subtree.
// A leaf is a 1 bit, followed by its 8-bit Symbol and its weight as a
// uvarint.  The single-symbol tree is written as its lone leaf.  The final
// byte is padded with 0 bits.  An empty Tree serializes to no bytes at all.
//
func (t *Tree) MarshalBinary() ([]byte, error) {
	root := t.Root()
	if root == NoNode {
		return []byte{}, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	start := root
	if rootNode := t.nodes[root]; rootNode.Right == NoNode {
		start = rootNode.Left
	}

	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	var varint [binary.MaxVarintLen64]byte

	stack := make([]NodeID, 0, MaxCodeSize+1)
	stack = append(stack, start)
	for len(stack) != 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.nodes[id]
		if err := bw.WriteBool(node.Leaf); err != nil {
			return nil, err
		}

		if !node.Leaf {
			stack = append(stack, node.Right, node.Left)
			continue
		}

		if err := bw.WriteBits(uint64(node.Symbol), 8); err != nil {
			return nil, err
		}
		n := binary.PutUvarint(varint[:], node.Weight)
		if _, err := bw.Write(varint[:n]); err != nil {
			return nil, err
		}
	}

	if err := bw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary replaces the Tree with one read from data, in the format
// written by MarshalBinary.  Internal node weights are recomputed from the
// leaves, and the result is checked with Validate.
func (t *Tree) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		*t = Tree{root: NoNode}
		return nil
	}

	tr := treeReader{br: bitio.NewReader(bytes.NewReader(data))}

	first, err := tr.readNode()
	if err != nil {
		return err
	}

	type stackItem struct {
		id     NodeID
		filled byte
	}

	stack := make([]stackItem, 0, MaxCodeSize)
	if !tr.nodes[first].Leaf {
		stack = append(stack, stackItem{id: first})
	}

	for len(stack) != 0 {
		if len(stack) > MaxCodeSize {
			return fmt.Errorf("%w: serialized tree is deeper than %d", ErrCodeTooLong, MaxCodeSize)
		}

		child, err := tr.readNode()
		if err != nil {
			return err
		}

		top := &stack[len(stack)-1]
		if top.filled == 0 {
			tr.nodes[top.id].Left = child
		} else {
			tr.nodes[top.id].Right = child
		}
		top.filled++
		if top.filled == 2 {
			stack = stack[:len(stack)-1]
		}

		if !tr.nodes[child].Leaf {
			stack = append(stack, stackItem{id: child})
		}
	}

	if used, have := bytesForBits(tr.bits), uint64(len(data)); used != have {
		return fmt.Errorf("%w: %d trailing bytes after serialized tree", ErrInvalidTree, have-used)
	}
	if pad := 8*uint64(len(data)) - tr.bits; data[len(data)-1]&byte(lowMask(byte(pad))) != 0 {
		return fmt.Errorf("%w: non-zero padding after serialized tree", ErrInvalidTree)
	}

	// Pre-order places every child after its parent, so a reverse scan sees
	// children first.
	nodes := tr.nodes
	for id := len(nodes) - 1; id >= 0; id-- {
		node := &nodes[id]
		if node.Leaf {
			continue
		}
		left, right := nodes[node.Left].Weight, nodes[node.Right].Weight
		sum := left + right
		if sum < left {
			return fmt.Errorf("%w: node %d weighs %d + %d", ErrWeightOverflow, id, left, right)
		}
		node.Weight = sum
	}

	root := first
	if nodes[first].Leaf {
		root = NodeID(len(nodes))
		nodes = append(nodes, Node{Weight: nodes[first].Weight, Left: first, Right: NoNode})
	}

	tmp := Tree{nodes: nodes, root: root}
	if err := tmp.Validate(); err != nil {
		return err
	}
	*t = tmp
	return nil
}

var (
	_ encoding.BinaryMarshaler   = (*Tree)(nil)
	_ encoding.BinaryUnmarshaler = (*Tree)(nil)
)

// treeReader reads serialized nodes, keeping count of the bits consumed.
type treeReader struct {
	br    *bitio.Reader
	nodes []Node
	bits  uint64
}

// maxNodes is the size of a full tree over the whole alphabet.
const maxNodes = 2*NumSymbols - 1

func (tr *treeReader) readNode() (NodeID, error) {
	if len(tr.nodes) >= maxNodes {
		return NoNode, fmt.Errorf("%w: serialized tree has more than %d nodes", ErrInvalidTree, maxNodes)
	}

	isLeaf, err := tr.br.ReadBool()
	if err != nil {
		return NoNode, fmt.Errorf("%w: reading node tag: %v", ErrInvalidTree, err)
	}
	tr.bits++

	node := Node{Left: NoNode, Right: NoNode, Leaf: isLeaf}
	if isLeaf {
		symbol, err := tr.br.ReadBits(8)
		if err != nil {
			return NoNode, fmt.Errorf("%w: reading leaf symbol: %v", ErrInvalidTree, err)
		}
		tr.bits += 8

		weight, err := binary.ReadUvarint(tr)
		if err != nil {
			return NoNode, fmt.Errorf("%w: reading leaf weight: %v", ErrInvalidTree, err)
		}

		node.Symbol = Symbol(symbol)
		node.Weight = weight
	}

	id := NodeID(len(tr.nodes))
	tr.nodes = append(tr.nodes, node)
	return id, nil
}

// ReadByte lets binary.ReadUvarint read from the underlying bit reader.
func (tr *treeReader) ReadByte() (byte, error) {
	b, err := tr.br.ReadByte()
	if err == nil {
		tr.bits += 8
	}
	return b, err
}
