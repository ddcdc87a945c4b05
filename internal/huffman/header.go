package huffman

import "fmt"

// Control markers. Each appears as a pair of identical bytes.
const (
	markerHeaderEnd  byte = 0x78
	markerEntryEnd   byte = 0x79
	markerTerminator byte = 0x7A
)

// Header is the code table embedded at the start of an encoded stream.
type Header struct {
	// Table holds the entries in header order, terminator last.
	Table *CodeTable
	// Size is the header length in bytes including the end marker, which is
	// also the offset of the packed bitstream.
	Size int
}

// headerSize returns the serialized size of ct.
func headerSize(ct *CodeTable) int {
	n := 2 // header end
	for _, e := range ct.entries {
		if e.Symbol.IsTerminator() {
			n += 2 + len(e.Code) + 2
			continue
		}
		n += 1 + len(e.Code) + 2
	}
	return n
}

// appendHeader serializes ct onto dst. Byte entries keep table order; the
// terminator entry is always written last.
func appendHeader(dst []byte, ct *CodeTable) []byte {
	for _, e := range ct.entries {
		if e.Symbol.IsTerminator() {
			continue
		}
		dst = append(dst, e.Symbol.Byte())
		dst = append(dst, e.Code...)
		dst = append(dst, markerEntryEnd, markerEntryEnd)
	}

	term, _ := ct.Lookup(Terminator)
	dst = append(dst, markerTerminator, markerTerminator)
	dst = append(dst, term...)
	dst = append(dst, markerEntryEnd, markerEntryEnd)

	return append(dst, markerHeaderEnd, markerHeaderEnd)
}

// parseHeader scans src for entries until the header end marker.
//
// Markers are only recognised where a symbol or a code byte may start. A
// symbol byte is always followed by at least one code byte (0 or 1), so a
// payload byte equal to a marker value never pairs up into a marker.
func parseHeader(src []byte) (*Header, error) {
	ct := &CodeTable{}
	var (
		inEntry  bool
		sym      Symbol
		code     Code
		haveTerm bool
	)

	for i := 0; i+1 < len(src); {
		a, b := src[i], src[i+1]
		pair := a == b

		if inEntry {
			if pair && a == markerEntryEnd {
				ct.add(sym, code)
				inEntry, code = false, nil
				i += 2
				continue
			}
			if a > 1 {
				return nil, fmt.Errorf("%w: code byte 0x%02x at offset %d", ErrMalformedHeader, a, i)
			}
			code = append(code, a)
			i++
			continue
		}

		switch {
		case pair && a == markerHeaderEnd:
			if !haveTerm {
				return nil, fmt.Errorf("%w: no terminator entry before offset %d", ErrMalformedHeader, i)
			}
			return &Header{Table: ct, Size: i + 2}, nil
		case haveTerm:
			return nil, fmt.Errorf("%w: entry after terminator at offset %d", ErrMalformedHeader, i)
		case pair && a == markerTerminator:
			sym, haveTerm = Terminator, true
			i += 2
		case pair && a == markerEntryEnd:
			return nil, fmt.Errorf("%w: entry end without symbol at offset %d", ErrMalformedHeader, i)
		default:
			sym = SymbolOf(a)
			if _, dup := ct.Lookup(sym); dup {
				return nil, fmt.Errorf("%w: duplicate symbol %s at offset %d", ErrMalformedHeader, sym, i)
			}
			i++
		}
		inEntry = true
	}

	return nil, fmt.Errorf("%w: header end marker not found in %d bytes", ErrMalformedHeader, len(src))
}

// Inspect parses the header of an encoded stream without decoding the payload.
func Inspect(src []byte) (*Header, error) {
	return parseHeader(src)
}
