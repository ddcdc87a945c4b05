package huffman

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
)

func TestFrequencyTable(t *testing.T) {
	ft := NewFrequencyTable([]byte("abracadabra"))

	want := map[Symbol]int{'a': 5, 'b': 2, 'r': 2, 'c': 1, 'd': 1, Terminator: 1}
	for s, n := range want {
		if got := ft.Count(s); got != n {
			t.Fatalf("symbol %s: expected %d, got %d", s, n, got)
		}
	}
	if ft.Len() != len(want) {
		t.Fatalf("expected %d symbols, got %d", len(want), ft.Len())
	}

	syms := ft.Symbols()
	if syms[len(syms)-1] != Terminator {
		t.Fatalf("expected terminator last, got %v", syms)
	}
	for i := 1; i < len(syms); i++ {
		if syms[i-1] >= syms[i] {
			t.Fatalf("expected ascending symbols, got %v", syms)
		}
	}
}

func TestFrequencyTableEmpty(t *testing.T) {
	ft := NewFrequencyTable(nil)
	if ft.Len() != 1 || ft.Count(Terminator) != 1 {
		t.Fatalf("expected only the terminator, got %v", ft.Symbols())
	}
}

func TestFrequencyTableTerminatorAlwaysOne(t *testing.T) {
	ft := NewFrequencyTable([]byte{0x00, 0x00, 0x00})
	if ft.Count(Terminator) != 1 {
		t.Fatalf("expected terminator count 1, got %d", ft.Count(Terminator))
	}
	if ft.Count(0x00) != 3 {
		t.Fatalf("expected 3 zero bytes, got %d", ft.Count(0x00))
	}
}

func TestBuildTreeOnlyTerminator(t *testing.T) {
	root := buildTree(NewFrequencyTable(nil))
	if root.isLeaf() {
		t.Fatal("expected an internal root")
	}
	if root.left == nil || !root.left.isLeaf() || root.left.symbol != Terminator {
		t.Fatal("expected the terminator as left child")
	}
	if root.right != nil {
		t.Fatal("expected no right child")
	}
}

func TestBuildTreeWeights(t *testing.T) {
	src := []byte("aaaaaaaabbbbccd")
	root := buildTree(NewFrequencyTable(src))
	if root.weight != len(src)+1 {
		t.Fatalf("expected root weight %d, got %d", len(src)+1, root.weight)
	}
	checkFull(t, root)
}

func checkFull(t *testing.T, n *node) {
	t.Helper()
	if n.isLeaf() {
		return
	}
	if n.left == nil || n.right == nil {
		t.Fatal("expected every internal node to have two children")
	}
	if n.weight != n.left.weight+n.right.weight {
		t.Fatalf("expected weight %d, got %d", n.left.weight+n.right.weight, n.weight)
	}
	checkFull(t, n.left)
	checkFull(t, n.right)
}

func TestCodeTablePrefixFree(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for round := 0; round < 20; round++ {
		src := make([]byte, rng.Intn(5000))
		alphabet := 1 + rng.Intn(256)
		for i := range src {
			src[i] = byte(rng.Intn(alphabet))
		}

		ct := BuildCodeTable(src)
		entries := ct.Entries()
		for i := range entries {
			if len(entries[i].Code) == 0 {
				t.Fatalf("symbol %s has an empty code", entries[i].Symbol)
			}
			for j := range entries {
				if i != j && entries[j].Code.HasPrefix(entries[i].Code) {
					t.Fatalf("code %s of %s is a prefix of %s of %s",
						entries[i].Code, entries[i].Symbol, entries[j].Code, entries[j].Symbol)
				}
			}
		}
	}
}

func TestCodeTableOneEntryPerSymbol(t *testing.T) {
	src := []byte("mississippi river")
	ft := NewFrequencyTable(src)
	ct := BuildCodeTable(src)
	if ct.Len() != ft.Len() {
		t.Fatalf("expected %d entries, got %d", ft.Len(), ct.Len())
	}
	for _, s := range ft.Symbols() {
		if _, ok := ct.Lookup(s); !ok {
			t.Fatalf("missing code for %s", s)
		}
	}
	if _, ok := ct.Lookup('z'); ok {
		t.Fatal("expected no code for an absent byte")
	}
}

func TestCodeTableTerminatorPresent(t *testing.T) {
	for _, src := range [][]byte{nil, {0x00}, []byte("hello"), make([]byte, 300)} {
		if _, ok := BuildCodeTable(src).Lookup(Terminator); !ok {
			t.Fatalf("%q: expected terminator entry", src)
		}
	}
}

func TestRebuildTreeFromCodeTable(t *testing.T) {
	src := []byte("a tree rebuilt from its own codes yields the same codes")
	ct := BuildCodeTable(src)

	root, err := buildTreeFromCodeTable(ct)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	rebuilt := deriveCodeTable(root)
	if rebuilt.Len() != ct.Len() {
		t.Fatalf("expected %d entries, got %d", ct.Len(), rebuilt.Len())
	}
	for _, e := range ct.Entries() {
		got, ok := rebuilt.Lookup(e.Symbol)
		if !ok || got.String() != e.Code.String() {
			t.Fatalf("symbol %s: expected %s, got %s", e.Symbol, e.Code, got)
		}
	}
}

func TestAttachErrors(t *testing.T) {
	root := &node{}
	if err := attach(root, 'a', nil); !errors.Is(err, ErrEmptyCodePath) {
		t.Fatalf("expected ErrEmptyCodePath, got %v", err)
	}
	if err := attach(root, 'a', Code{1, 0}); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := attach(root, 'b', Code{1, 0}); !errors.Is(err, ErrCodeConflict) {
		t.Fatalf("expected ErrCodeConflict on same path, got %v", err)
	}
	if err := attach(root, 'c', Code{1, 0, 1}); !errors.Is(err, ErrCodeConflict) {
		t.Fatalf("expected ErrCodeConflict through leaf, got %v", err)
	}
	if err := attach(root, 'd', Code{1}); !errors.Is(err, ErrCodeConflict) {
		t.Fatalf("expected ErrCodeConflict on internal node, got %v", err)
	}
}

func TestCodeString(t *testing.T) {
	if got := (Code{1, 0, 1, 1}).String(); got != "1011" {
		t.Fatalf("expected 1011, got %s", got)
	}
	if Terminator.String() != "EOM" || Symbol('A').String() != "0x41" {
		t.Fatalf("unexpected symbol names %s %s", Terminator, Symbol('A'))
	}
}

func TestHeaderSizeMatchesEncoding(t *testing.T) {
	for _, src := range [][]byte{nil, []byte("x"), []byte("header size check")} {
		ct := BuildCodeTable(src)
		hdr := appendHeader(nil, ct)
		if len(hdr) != headerSize(ct) {
			t.Fatalf("expected header size %d, got %d", headerSize(ct), len(hdr))
		}
		h, err := parseHeader(hdr)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if h.Size != len(hdr) || h.Table.Len() != ct.Len() {
			t.Fatalf("expected size %d with %d entries, got %d with %d", len(hdr), ct.Len(), h.Size, h.Table.Len())
		}
		last := h.Table.Entries()[h.Table.Len()-1]
		if !last.Symbol.IsTerminator() {
			t.Fatalf("expected terminator last, got %s", last.Symbol)
		}
	}
}

func TestCodeTableEntriesAreCopies(t *testing.T) {
	ct := BuildCodeTable([]byte("AABA"))
	before := appendHeader(nil, ct)

	for _, e := range ct.Entries() {
		for i := range e.Code {
			e.Code[i] ^= 1
		}
	}
	if code, ok := ct.Lookup(SymbolOf('A')); ok {
		code[0] ^= 1
	}

	if after := appendHeader(nil, ct); !bytes.Equal(before, after) {
		t.Fatalf("table changed through returned codes: % x -> % x", before, after)
	}
}

func TestDecodeBitsUnalignedTerminator(t *testing.T) {
	ct := BuildCodeTable([]byte("AABA"))
	root, err := buildTreeFromCodeTable(ct)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	// 1 1 00 1 01, terminator ends on the seventh bit of the only byte.
	got, err := decodeBits(root, []byte{0xCA})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(got) != "AABA" {
		t.Fatalf("expected AABA, got %q", got)
	}

	// Same bits without the terminator run out mid-byte.
	if _, err := decodeBits(root, []byte{0xC8}); !errors.Is(err, ErrPrematureEnd) {
		t.Fatalf("expected ErrPrematureEnd, got %v", err)
	}
}
