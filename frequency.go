package huffcode

import (
	"fmt"
	"sort"
)

// FrequencyTable maps each Symbol to the number of times it occurs.  Symbols
// that never occur are absent.  Iteration order is not defined; use Symbols
// when a stable order is needed.
type FrequencyTable map[Symbol]uint64

// Count scans the input and returns its FrequencyTable.  Empty input yields
// an empty table.
func Count(input []byte) FrequencyTable {
	var counts [NumSymbols]uint64
	for _, b := range input {
		counts[b]++
	}

	freq := make(FrequencyTable)
	for symbol, count := range counts {
		if count != 0 {
			freq[Symbol(symbol)] = count
		}
	}
	return freq
}

// Symbols returns the symbols with a non-zero count, in ascending order.
func (freq FrequencyTable) Symbols() []Symbol {
	out := make(bySymbol, 0, len(freq))
	for symbol, count := range freq {
		if count != 0 {
			out = append(out, symbol)
		}
	}
	out.Sort()
	return out
}

// Total returns the sum of all counts, which for a table produced by Count is
// the length of the input.
func (freq FrequencyTable) Total() (uint64, error) {
	var total uint64
	for symbol, count := range freq {
		sum := total + count
		if sum < total {
			return 0, fmt.Errorf("%w: adding count %d for symbol %v", ErrWeightOverflow, count, symbol)
		}
		total = sum
	}
	return total, nil
}

// type bySymbol {{{

type bySymbol []Symbol

func (list bySymbol) Sort() {
	sort.Sort(list)
}

func (list bySymbol) Len() int {
	return len(list)
}

func (list bySymbol) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySymbol) Less(i, j int) bool {
	return list[i] < list[j]
}

var _ sort.Interface = bySymbol(nil)

// }}}
