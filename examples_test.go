package huffcode

import (
	"fmt"
)

func Example() {
	input := []byte("aaabbc")

	bs, tree, err := Encode(input)
	if err != nil {
		panic(err)
	}
	fmt.Println(bs)

	output, err := Decode(bs, tree)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(output))
	// Output:
	// 000111110
	// aaabbc
}

func ExampleTreeFromSizes() {
	input := []byte("aaabbc")

	tree, err := BuildTree(Count(input))
	if err != nil {
		panic(err)
	}
	ct := BuildCodeTable(tree).Canonical()
	bs, err := ct.Encode(input)
	if err != nil {
		panic(err)
	}

	// Only the code lengths need to travel with the bitstream.
	sizes := ct.SizeBySymbol()
	fmt.Println(sizes['a'], sizes['b'], sizes['c'])

	decoder, err := TreeFromSizes(sizes)
	if err != nil {
		panic(err)
	}
	output, err := Decode(bs, decoder)
	if err != nil {
		panic(err)
	}
	fmt.Println(bs)
	fmt.Println(string(output))
	// Output:
	// 1 2 2
	// 000101011
	// aaabbc
}

func ExampleTree_MarshalBinary() {
	_, tree, err := Encode([]byte("aaabbc"))
	if err != nil {
		panic(err)
	}
	raw, err := tree.MarshalBinary()
	if err != nil {
		panic(err)
	}
	fmt.Printf("%x\n", raw)
	// Output:
	// 5840d6301b1010
}
