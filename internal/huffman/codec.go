package huffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/32bitkid/bitreader"
)

var (
	// ErrMalformedHeader indicates the embedded code table could not be parsed,
	// most often because the header end marker is missing.
	ErrMalformedHeader = errors.New("malformed huffman header")
	// ErrEmptyCodePath indicates a code table entry with a zero-length code.
	ErrEmptyCodePath = errors.New("empty code path")
	// ErrCodeConflict indicates a code table that is not prefix-free.
	ErrCodeConflict = errors.New("conflicting code paths")
	// ErrInvalidBitstream indicates bits that do not follow any path in the tree.
	ErrInvalidBitstream = errors.New("invalid huffman bitstream")
	// ErrPrematureEnd indicates the bitstream ended before the terminator code.
	ErrPrematureEnd = errors.New("bitstream ended before terminator")
)

// Encode compresses src. The output carries its own code table and decodes
// without knowing the original length.
func Encode(src []byte) []byte {
	ct := BuildCodeTable(src)
	codes := ct.codes()

	nbits := len(codes[Terminator])
	for _, b := range src {
		nbits += len(codes[b])
	}

	hdr := headerSize(ct)
	out := make([]byte, hdr+(nbits+7)/8)
	appendHeader(out[:0], ct)

	w := bitWriter{buf: out[hdr:]}
	for _, b := range src {
		w.writeCode(codes[b])
	}
	w.writeCode(codes[Terminator])

	return out
}

// Decode reverses Encode. Bytes after the terminator code are ignored.
func Decode(src []byte) ([]byte, error) {
	h, err := parseHeader(src)
	if err != nil {
		return nil, err
	}
	root, err := buildTreeFromCodeTable(h.Table)
	if err != nil {
		return nil, fmt.Errorf("rebuild tree: %w", err)
	}
	return decodeBits(root, src[h.Size:])
}

func decodeBits(root *node, packed []byte) ([]byte, error) {
	out := make([]byte, 0, len(packed))
	br := bitreader.NewReader(bytes.NewReader(packed))
	cur := root
	for pos := 0; ; pos++ {
		bit, err := br.Read1()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: %d bytes decoded from %d packed bytes", ErrPrematureEnd, len(out), len(packed))
			}
			return nil, fmt.Errorf("read bit %d: %w", pos, err)
		}
		if bit {
			cur = cur.right
		} else {
			cur = cur.left
		}
		if cur == nil {
			return nil, fmt.Errorf("%w: no node at bit %d after %d bytes decoded",
				ErrInvalidBitstream, pos, len(out))
		}
		if !cur.isLeaf() {
			continue
		}
		if cur.symbol.IsTerminator() {
			return out, nil
		}
		out = append(out, cur.symbol.Byte())
		cur = root
	}
}

// bitWriter ORs bits into a zeroed buffer, MSB first.
type bitWriter struct {
	buf []byte
	pos int
}

func (w *bitWriter) writeCode(c Code) {
	for _, bit := range c {
		w.buf[w.pos>>3] |= bit << (7 - uint(w.pos&7))
		w.pos++
	}
}
