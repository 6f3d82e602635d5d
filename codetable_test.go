package huffcode

import (
	"bytes"
	"math/big"
	"strings"
	"testing"
)

func codeTableDump(ct CodeTable) string {
	var buf strings.Builder
	_, _ = ct.Dump(&buf)
	return buf.String()
}

func makeTestFrequencies() FrequencyTable {
	return FrequencyTable{0: 5, 1: 9, 2: 12, 3: 13, 4: 16, 5: 45}
}

func TestBuildCodeTable(t *testing.T) {
	ct := BuildCodeTable(mustBuildTree(t, makeTestFrequencies()))

	expectDump := strings.Join([]string{
		"CodeTable{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tEncode(0x00) = \"1100\"\n",
		"\tEncode(0x01) = \"1101\"\n",
		"\tEncode(0x02) = \"100\"\n",
		"\tEncode(0x03) = \"101\"\n",
		"\tEncode(0x04) = \"111\"\n",
		"\tEncode(0x05) = \"0\"\n",
		"}\n",
	}, "")
	actualDump := codeTableDump(ct)
	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	actualSizes := ct.SizeBySymbol()
	expectSizes := []byte{4, 4, 3, 3, 3, 1}
	if !bytes.Equal(expectSizes, actualSizes) {
		t.Errorf("wrong sizes:\n\texpect: %#v\n\tactual: %#v", expectSizes, actualSizes)
	}

	expectString := "(Huffman code table with 6 symbols, with coded lengths of 1 .. 4 bits)"
	actualString := ct.String()
	if expectString != actualString {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectString, actualString)
	}
}

func TestBuildCodeTable_aaabbc(t *testing.T) {
	ct := BuildCodeTable(mustBuildTree(t, Count([]byte("aaabbc"))))

	expectDump := strings.Join([]string{
		"CodeTable{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 2\n",
		"\tEncode('a') = \"0\"\n",
		"\tEncode('b') = \"11\"\n",
		"\tEncode('c') = \"10\"\n",
		"}\n",
	}, "")
	actualDump := codeTableDump(ct)
	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}

	a, _ := ct.Lookup('a')
	b, _ := ct.Lookup('b')
	c, _ := ct.Lookup('c')
	if !(a.Size <= b.Size && b.Size <= c.Size) {
		t.Errorf("expected len(a) <= len(b) <= len(c), got %s %s %s", a, b, c)
	}

	if _, found := ct.Lookup('d'); found {
		t.Errorf("expected no code for 'd'")
	}
}

func TestBuildCodeTable_SingleSymbol(t *testing.T) {
	ct := BuildCodeTable(mustBuildTree(t, Count([]byte("zzz"))))

	hc, found := ct.Lookup('z')
	if !found {
		t.Fatalf("expected a code for 'z'")
	}
	if expect := MakeCode(1, 0); hc != expect {
		t.Errorf("expected %s, got %s", expect, hc)
	}
	if ct.Len() != 1 {
		t.Errorf("expected 1 code, got %d", ct.Len())
	}
}

func TestBuildCodeTable_Empty(t *testing.T) {
	ct := BuildCodeTable(nil)
	if ct.Len() != 0 {
		t.Errorf("expected no codes, got %d", ct.Len())
	}
	if sizes := ct.SizeBySymbol(); len(sizes) != 0 {
		t.Errorf("expected no sizes, got %#v", sizes)
	}
	if canon := ct.Canonical(); canon.Len() != 0 {
		t.Errorf("expected no canonical codes, got %d", canon.Len())
	}
}

func TestBuildCodeTable_PrefixFree(t *testing.T) {
	for _, input := range testInputs() {
		if len(input) == 0 {
			continue
		}
		t.Run(testName(input), func(t *testing.T) {
			ct := BuildCodeTable(mustBuildTree(t, Count(input)))
			checkPrefixFree(t, ct)
			checkComplete(t, ct)
			checkCanonical(t, ct.Canonical())
		})
	}
}

func TestBuildCodeTable_LengthMonotone(t *testing.T) {
	for _, input := range testInputs() {
		if len(input) == 0 {
			continue
		}
		t.Run(testName(input), func(t *testing.T) {
			freq := Count(input)
			ct := BuildCodeTable(mustBuildTree(t, freq))
			for _, x := range freq.Symbols() {
				for _, y := range freq.Symbols() {
					if freq[x] <= freq[y] {
						continue
					}
					hx, _ := ct.Lookup(x)
					hy, _ := ct.Lookup(y)
					if hx.Size > hy.Size {
						t.Errorf("%v (count %d) has code %s, longer than %v (count %d) with code %s", x, freq[x], hx, y, freq[y], hy)
					}
				}
			}
		})
	}
}

func TestCodeTable_Canonical(t *testing.T) {
	ct := BuildCodeTable(mustBuildTree(t, makeTestFrequencies())).Canonical()

	expectDump := strings.Join([]string{
		"CodeTable{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tEncode(0x00) = \"1110\"\n",
		"\tEncode(0x01) = \"1111\"\n",
		"\tEncode(0x02) = \"100\"\n",
		"\tEncode(0x03) = \"101\"\n",
		"\tEncode(0x04) = \"110\"\n",
		"\tEncode(0x05) = \"0\"\n",
		"}\n",
	}, "")
	actualDump := codeTableDump(ct)
	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func checkPrefixFree(t *testing.T, ct CodeTable) {
	t.Helper()
	symbols := ct.Symbols()
	for _, x := range symbols {
		hx, _ := ct.Lookup(x)
		if hx.Size == 0 {
			t.Errorf("symbol %v has an empty code", x)
		}
		for _, y := range symbols {
			if x == y {
				continue
			}
			hy, _ := ct.Lookup(y)
			if hy.HasPrefix(hx) {
				t.Errorf("code %s for %v is a prefix of code %s for %v", hx, x, hy, y)
			}
		}
	}
}

// checkComplete verifies the Kraft sum of a multi-symbol table is exactly 1.
func checkComplete(t *testing.T, ct CodeTable) {
	t.Helper()
	if ct.Len() < 2 {
		return
	}
	sum := new(big.Int)
	want := new(big.Int).Lsh(big.NewInt(1), uint(ct.MaxSize()))
	for _, symbol := range ct.Symbols() {
		hc, _ := ct.Lookup(symbol)
		sum.Add(sum, new(big.Int).Lsh(big.NewInt(1), uint(ct.MaxSize()-hc.Size)))
	}
	if sum.Cmp(want) != 0 {
		t.Errorf("incomplete code: Kraft sum %v/%v", sum, want)
	}
}

// checkCanonical verifies that the first code is all zeroes and that each
// following code, in (length, Symbol) order, is one more than the last code
// shifted to the new length.
func checkCanonical(t *testing.T, ct CodeTable) {
	t.Helper()
	checkPrefixFree(t, ct)
	var last Code
	for i, symbol := range sortedBySize(ct) {
		hc, _ := ct.Lookup(symbol)
		var expect uint64
		if i != 0 {
			expect = (last.Bits + 1) << (hc.Size - last.Size)
		}
		if hc.Bits != expect {
			t.Errorf("code %s for %v, expected %s", hc, symbol, MakeCode(hc.Size, expect))
		}
		last = hc
	}
}

func sortedBySize(ct CodeTable) []Symbol {
	list := make(bySize, 0, ct.Len())
	for _, symbol := range ct.Symbols() {
		hc, _ := ct.Lookup(symbol)
		list = append(list, symbolAndSize{symbol, hc.Size})
	}
	list.Sort()
	out := make([]Symbol, len(list))
	for i, item := range list {
		out[i] = item.symbol
	}
	return out
}
