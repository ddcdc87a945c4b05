package huffman

// Entry pairs a symbol with its code.
type Entry struct {
	Symbol Symbol
	Code   Code
}

// CodeTable maps symbols to codes. Entries keep the order in which they were
// added: tree-traversal order for derived tables, header order for parsed ones.
type CodeTable struct {
	entries []Entry
	index   [numSymbols]int // position+1 in entries, 0 if absent
}

// BuildCodeTable counts src, builds its Huffman tree and derives the codes.
func BuildCodeTable(src []byte) *CodeTable {
	return deriveCodeTable(buildTree(NewFrequencyTable(src)))
}

// deriveCodeTable walks the tree depth-first, left before right.
func deriveCodeTable(root *node) *CodeTable {
	ct := &CodeTable{}
	ct.walk(root, nil)
	return ct
}

func (ct *CodeTable) walk(n *node, history Code) {
	if n.isLeaf() {
		ct.add(n.symbol, history)
		return
	}
	if n.left != nil {
		ct.walk(n.left, history.appendBit(0))
	}
	if n.right != nil {
		ct.walk(n.right, history.appendBit(1))
	}
}

func (ct *CodeTable) add(s Symbol, c Code) {
	ct.entries = append(ct.entries, Entry{Symbol: s, Code: c})
	ct.index[s] = len(ct.entries)
}

// Lookup returns a copy of the code for s.
func (ct *CodeTable) Lookup(s Symbol) (Code, bool) {
	if int(s) >= numSymbols || ct.index[s] == 0 {
		return nil, false
	}
	return append(Code(nil), ct.entries[ct.index[s]-1].Code...), true
}

// Len returns the number of entries, terminator included.
func (ct *CodeTable) Len() int { return len(ct.entries) }

// Entries returns a deep copy of the entries in table order.
func (ct *CodeTable) Entries() []Entry {
	out := make([]Entry, len(ct.entries))
	for i, e := range ct.entries {
		out[i] = Entry{Symbol: e.Symbol, Code: append(Code(nil), e.Code...)}
	}
	return out
}

// codes returns a dense symbol-indexed view used by the encode loop.
func (ct *CodeTable) codes() *[numSymbols]Code {
	var dense [numSymbols]Code
	for _, e := range ct.entries {
		dense[e.Symbol] = e.Code
	}
	return &dense
}
