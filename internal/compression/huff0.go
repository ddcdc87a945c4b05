package compression

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/huff0"
)

// Huff0Codec compresses with the huff0 entropy coder, splitting input into
// chunks of at most huff0.BlockSizeMax bytes.
//
// Chunk layout: [kind (1)] [payload length (uvarint)] [payload]
//
// raw payload is the chunk itself; rle payload is [count (uvarint)] [byte];
// huff payload is a huff0 1X stream with its table.
type Huff0Codec struct{}

const (
	huff0ChunkRaw byte = iota
	huff0ChunkHuff
	huff0ChunkRLE
)

func (c *Huff0Codec) MethodByte() byte { return MethodHuff0 }

func (c *Huff0Codec) Name() string { return "huff0" }

func (c *Huff0Codec) Compress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return []byte{}, nil
	}

	out := make([]byte, 0, len(src)/2)
	compressed := false
	for start := 0; start < len(src); start += huff0.BlockSizeMax {
		chunk := src[start:min(start+huff0.BlockSizeMax, len(src))]

		s := &huff0.Scratch{Reuse: huff0.ReusePolicyNone}
		payload, _, err := huff0.Compress1X(chunk, s)
		switch {
		case err == nil:
			out = appendChunk(out, huff0ChunkHuff, payload)
			compressed = true
		case errors.Is(err, huff0.ErrUseRLE):
			rle := binary.AppendUvarint(nil, uint64(len(chunk)))
			out = appendChunk(out, huff0ChunkRLE, append(rle, chunk[0]))
			compressed = true
		case errors.Is(err, huff0.ErrIncompressible):
			out = appendChunk(out, huff0ChunkRaw, chunk)
		default:
			return nil, fmt.Errorf("huff0 compress: %w", err)
		}
	}

	if !compressed || len(out) >= len(src) {
		return nil, fmt.Errorf("huff0 compress: %w", ErrIncompressible)
	}
	return out, nil
}

func appendChunk(dst []byte, kind byte, payload []byte) []byte {
	dst = append(dst, kind)
	dst = binary.AppendUvarint(dst, uint64(len(payload)))
	return append(dst, payload...)
}

func (c *Huff0Codec) Decompress(src []byte, decompressedSize int) ([]byte, error) {
	dst := make([]byte, 0, preallocSize(decompressedSize))
	for len(src) > 0 {
		kind := src[0]
		n, w := binary.Uvarint(src[1:])
		if w <= 0 || uint64(len(src)-1-w) < n {
			return nil, fmt.Errorf("huff0 decompress: %w: truncated chunk", ErrShortBlock)
		}
		payload := src[1+w : 1+w+int(n)]
		src = src[1+w+int(n):]

		switch kind {
		case huff0ChunkRaw:
			if len(dst)+len(payload) > decompressedSize {
				return nil, fmt.Errorf("huff0 decompress: %w: raw chunk overruns %d bytes", ErrSizeMismatch, decompressedSize)
			}
			dst = append(dst, payload...)
		case huff0ChunkRLE:
			count, cw := binary.Uvarint(payload)
			if cw <= 0 || len(payload) != cw+1 {
				return nil, fmt.Errorf("huff0 decompress: invalid rle chunk")
			}
			if remaining := decompressedSize - len(dst); remaining < 0 || count > uint64(remaining) {
				return nil, fmt.Errorf("huff0 decompress: %w: rle chunk of %d overruns %d bytes", ErrSizeMismatch, count, decompressedSize)
			}
			for range count {
				dst = append(dst, payload[cw])
			}
		case huff0ChunkHuff:
			s := &huff0.Scratch{MaxDecodedSize: huff0.BlockSizeMax}
			s, remain, err := huff0.ReadTable(payload, s)
			if err != nil {
				return nil, fmt.Errorf("huff0 read table: %w", err)
			}
			out, err := s.Decompress1X(remain)
			if err != nil {
				return nil, fmt.Errorf("huff0 decompress: %w", err)
			}
			if len(dst)+len(out) > decompressedSize {
				return nil, fmt.Errorf("huff0 decompress: %w: huff chunk overruns %d bytes", ErrSizeMismatch, decompressedSize)
			}
			dst = append(dst, out...)
		default:
			return nil, fmt.Errorf("huff0 decompress: unknown chunk kind 0x%02x", kind)
		}
	}

	if len(dst) != decompressedSize {
		return nil, fmt.Errorf("huff0 decompress: %w: expected %d bytes, got %d", ErrSizeMismatch, decompressedSize, len(dst))
	}
	return dst, nil
}
