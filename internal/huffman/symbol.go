// Package huffman implements a static Huffman byte codec whose output embeds
// its own code table.
//
// Encoded layout:
//
//	[entry]* [terminator entry] [0x78 0x78] [packed bitstream]
//
// entry:            <symbol> <bit>* 0x79 0x79
// terminator entry: 0x7A 0x7A <bit>* 0x79 0x79
//
// Each <bit> is a whole byte holding 0 or 1. The bitstream is packed
// MSB-first and ends with the terminator's code; trailing pad bits are unused.
package huffman

import "fmt"

// Symbol is a byte value (0-255) or the Terminator.
type Symbol uint16

// Terminator marks the logical end of an encoded payload. It has no byte value.
const Terminator Symbol = 256

// numSymbols is the size of the alphabet including the terminator.
const numSymbols = 257

// SymbolOf returns the symbol for a byte value.
func SymbolOf(b byte) Symbol { return Symbol(b) }

// IsTerminator reports whether s is the terminator symbol.
func (s Symbol) IsTerminator() bool { return s == Terminator }

// Byte returns the byte value of s. It is meaningless for the terminator.
func (s Symbol) Byte() byte { return byte(s) }

func (s Symbol) String() string {
	if s.IsTerminator() {
		return "EOM"
	}
	return fmt.Sprintf("0x%02x", byte(s))
}

// Code is a root-to-leaf path in a Huffman tree, one element per bit.
// Each element is 0 (left) or 1 (right).
type Code []byte

func (c Code) String() string {
	buf := make([]byte, len(c))
	for i, bit := range c {
		buf[i] = '0' + bit
	}
	return string(buf)
}

// HasPrefix reports whether p is a prefix of c.
func (c Code) HasPrefix(p Code) bool {
	if len(p) > len(c) {
		return false
	}
	for i := range p {
		if c[i] != p[i] {
			return false
		}
	}
	return true
}

// appendBit returns a new code with bit appended; c is never aliased.
func (c Code) appendBit(bit byte) Code {
	next := make(Code, len(c)+1)
	copy(next, c)
	next[len(c)] = bit
	return next
}
