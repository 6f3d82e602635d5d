package huffcode

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// NodeID identifies a Node within its Tree.
type NodeID int32

// NoNode marks an absent child.
const NoNode = NodeID(-1)

// Node is one node of a Huffman tree.
//
// A leaf carries a Symbol and its weight.  An internal node carries only the
// combined weight of its subtree, which always equals the sum of its
// children's weights (an absent child weighs 0).
//
type Node struct {
	Weight uint64
	Left   NodeID
	Right  NodeID
	Symbol Symbol
	Leaf   bool
}

// Tree is a Huffman tree stored as an arena of Nodes.  A Tree is never
// modified once built, so it may be shared freely between goroutines.
//
// The zero Tree is empty: it has no root and can only decode an empty
// Bitstream.
//
type Tree struct {
	nodes []Node
	root  NodeID
}

// BuildTree builds the Huffman tree for the given frequencies.
//
// Leaves enter a min-heap in ascending Symbol order.  The two lightest nodes
// are repeatedly popped and merged, the first popped becoming the left child.
// Equal weights are broken by insertion order: whichever node entered the
// heap first leaves it first.  The result is therefore fully determined by
// the FrequencyTable.
//
// If only one symbol is present, its leaf is hung on the left of a synthetic
// root with no right child, so that the symbol's code is "0".
//
// Symbols with a count of zero are ignored.
//
func BuildTree(freq FrequencyTable) (*Tree, error) {
	symbols := freq.Symbols()
	numSymbols := len(symbols)
	if numSymbols == 0 {
		return nil, ErrEmptyAlphabet
	}

	t := &Tree{
		nodes: make([]Node, 0, 2*numSymbols),
		root:  NoNode,
	}

	h := weightHeap{list: make([]heapItem, 0, numSymbols)}
	var seq uint32
	for _, symbol := range symbols {
		weight := freq[symbol]
		id := t.addNode(Node{Weight: weight, Left: NoNode, Right: NoNode, Symbol: symbol, Leaf: true})
		h.list = append(h.list, heapItem{id: id, weight: weight, seq: seq})
		seq++
	}
	h.Init()

	if h.Len() == 1 {
		only := heap.Pop(&h).(heapItem)
		t.root = t.addNode(Node{Weight: only.weight, Left: only.id, Right: NoNode})
		return t, nil
	}

	for h.Len() > 1 {
		a := heap.Pop(&h).(heapItem)
		b := heap.Pop(&h).(heapItem)

		sum := a.weight + b.weight
		if sum < a.weight {
			return nil, fmt.Errorf("%w: merging weights %d and %d", ErrWeightOverflow, a.weight, b.weight)
		}

		depth := a.depth
		if depth < b.depth {
			depth = b.depth
		}
		depth++
		if depth > MaxCodeSize {
			return nil, fmt.Errorf("%w: tree depth exceeds %d", ErrCodeTooLong, MaxCodeSize)
		}

		id := t.addNode(Node{Weight: sum, Left: a.id, Right: b.id})
		heap.Push(&h, heapItem{id: id, weight: sum, seq: seq, depth: depth})
		seq++
	}

	root := heap.Pop(&h).(heapItem)
	assert.Assertf(root.weight == t.nodes[root.id].Weight, "root weight %d != node weight %d", root.weight, t.nodes[root.id].Weight)
	t.root = root.id
	return t, nil
}

// Root returns the NodeID of the root, or NoNode for an empty Tree.
func (t *Tree) Root() NodeID {
	if t == nil || len(t.nodes) == 0 {
		return NoNode
	}
	return t.root
}

// Node returns a copy of the Node with the given NodeID.
func (t *Tree) Node(id NodeID) Node {
	assert.Assertf(id >= 0 && int(id) < t.NumNodes(), "NodeID %d out of range [0, %d)", id, t.NumNodes())
	return t.nodes[id]
}

// NumNodes returns the number of nodes in the Tree, leaves included.
func (t *Tree) NumNodes() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// NumSymbols returns the number of leaves in the Tree.
func (t *Tree) NumSymbols() int {
	if t == nil {
		return 0
	}
	var n int
	for _, node := range t.nodes {
		if node.Leaf {
			n++
		}
	}
	return n
}

// Weight returns the weight of the root, i.e. the total of all symbol counts.
func (t *Tree) Weight() uint64 {
	root := t.Root()
	if root == NoNode {
		return 0
	}
	return t.nodes[root].Weight
}

// Validate checks the structural invariants of the Tree: the root is an
// internal node, every node is reachable exactly once, every internal node
// has two children (except the single-symbol root, which has only a left
// leaf), weights add up, no Symbol appears twice, and no path is longer than
// MaxCodeSize.
//
// An empty Tree is valid.
//
func (t *Tree) Validate() error {
	root := t.Root()
	if root == NoNode {
		return nil
	}

	numNodes := NodeID(len(t.nodes))
	inRange := func(id NodeID) bool {
		return id >= 0 && id < numNodes
	}

	if !inRange(root) {
		return fmt.Errorf("%w: root %d out of range [0, %d)", ErrInvalidTree, root, numNodes)
	}
	if t.nodes[root].Leaf {
		return fmt.Errorf("%w: root %d is a leaf", ErrInvalidTree, root)
	}

	type stackItem struct {
		id    NodeID
		depth byte
	}

	var seenSymbol [NumSymbols]bool
	seenNode := make([]bool, numNodes)
	stack := make([]stackItem, 0, log2uint32(uint32(numNodes))+1)
	stack = append(stack, stackItem{root, 0})

	for len(stack) != 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seenNode[item.id] {
			return fmt.Errorf("%w: node %d is reachable more than once", ErrInvalidTree, item.id)
		}
		seenNode[item.id] = true

		node := t.nodes[item.id]
		if node.Leaf {
			if seenSymbol[node.Symbol] {
				return fmt.Errorf("%w: symbol %v appears more than once", ErrInvalidTree, node.Symbol)
			}
			seenSymbol[node.Symbol] = true
			continue
		}

		if item.depth >= MaxCodeSize {
			return fmt.Errorf("%w: node %d is at depth %d", ErrCodeTooLong, item.id, item.depth)
		}

		if !inRange(node.Left) {
			return fmt.Errorf("%w: node %d has no left child", ErrInvalidTree, item.id)
		}

		var rightWeight uint64
		if node.Right == NoNode {
			if item.id != root || !t.nodes[node.Left].Leaf {
				return fmt.Errorf("%w: node %d has no right child", ErrInvalidTree, item.id)
			}
		} else if !inRange(node.Right) {
			return fmt.Errorf("%w: node %d has right child %d out of range", ErrInvalidTree, item.id, node.Right)
		} else {
			rightWeight = t.nodes[node.Right].Weight
		}

		leftWeight := t.nodes[node.Left].Weight
		if sum := leftWeight + rightWeight; sum < leftWeight || sum != node.Weight {
			return fmt.Errorf("%w: node %d has weight %d, but its children weigh %d + %d", ErrInvalidTree, item.id, node.Weight, leftWeight, rightWeight)
		}

		if node.Right != NoNode {
			stack = append(stack, stackItem{node.Right, item.depth + 1})
		}
		stack = append(stack, stackItem{node.Left, item.depth + 1})
	}

	return nil
}

// String returns a brief description of this Tree.
func (t *Tree) String() string {
	return fmt.Sprintf("(Huffman tree with %d symbols, total weight %d)", t.NumSymbols(), t.Weight())
}

// Dump writes a programmer-readable debugging dump of the Tree to the given
// writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tRoot() = %d\n", t.Root())
	for id := NodeID(0); id < NodeID(t.NumNodes()); id++ {
		node := t.nodes[id]
		if node.Leaf {
			fmt.Fprintf(&buf, "\tNode(%d) = Leaf(%v, %d)\n", id, node.Symbol, node.Weight)
		} else {
			fmt.Fprintf(&buf, "\tNode(%d) = Internal(%d, %d, %d)\n", id, node.Weight, node.Left, node.Right)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

var _ fmt.Stringer = (*Tree)(nil)

func (t *Tree) addNode(node Node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node)
	return id
}

// type heapItem + type weightHeap {{{

type heapItem struct {
	id     NodeID
	weight uint64
	seq    uint32
	depth  byte
}

type weightHeap struct {
	list []heapItem
}

func (h *weightHeap) Init() {
	heap.Init(h)
}

func (h *weightHeap) Len() int {
	return len(h.list)
}

func (h *weightHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *weightHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.seq < b.seq
}

func (h *weightHeap) Push(x interface{}) {
	h.list = append(h.list, x.(heapItem))
}

func (h *weightHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*weightHeap)(nil)

// }}}
