package huffman

// FrequencyTable counts occurrences of every byte value in a payload.
// The terminator is always present with a count of 1.
type FrequencyTable struct {
	counts [numSymbols]int
}

// NewFrequencyTable counts the bytes of src.
func NewFrequencyTable(src []byte) *FrequencyTable {
	ft := &FrequencyTable{}
	for _, b := range src {
		ft.counts[b]++
	}
	ft.counts[Terminator] = 1
	return ft
}

// Count returns the occurrence count of s, or 0 if s never occurs.
func (ft *FrequencyTable) Count(s Symbol) int {
	if int(s) >= numSymbols {
		return 0
	}
	return ft.counts[s]
}

// Symbols returns the symbols with a positive count in ascending byte order,
// terminator last.
func (ft *FrequencyTable) Symbols() []Symbol {
	syms := make([]Symbol, 0, 16)
	for s := range Symbol(numSymbols) {
		if ft.counts[s] > 0 {
			syms = append(syms, s)
		}
	}
	return syms
}

// Len returns the number of distinct symbols, terminator included.
func (ft *FrequencyTable) Len() int {
	n := 0
	for _, c := range ft.counts {
		if c > 0 {
			n++
		}
	}
	return n
}
