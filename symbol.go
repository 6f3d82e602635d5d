package huffcode

import (
	"fmt"
	"strconv"
)

// Symbol represents a symbol in the byte alphabet.
type Symbol byte

// NumSymbols is the size of the alphabet.
const NumSymbols = 256

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(NumSymbols - 1)

// String returns the string representation of this Symbol.  Printable ASCII
// symbols are quoted, everything else is shown in hex.
func (sym Symbol) String() string {
	if sym >= 0x20 && sym < 0x7f {
		return strconv.QuoteRune(rune(sym))
	}
	return fmt.Sprintf("0x%02x", byte(sym))
}

var _ fmt.Stringer = Symbol(0)
