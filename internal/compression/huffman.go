package compression

import (
	"fmt"

	"github.com/harshithgowdakt/huffpack/internal/huffman"
)

// HuffmanCodec stores a block in the self-describing Huffman format. The
// block header's uncompressed size is only used to check the result.
type HuffmanCodec struct{}

func (c *HuffmanCodec) MethodByte() byte { return MethodHuffman }

func (c *HuffmanCodec) Name() string { return "huffman" }

func (c *HuffmanCodec) Compress(src []byte) ([]byte, error) {
	return huffman.Encode(src), nil
}

func (c *HuffmanCodec) Decompress(src []byte, decompressedSize int) ([]byte, error) {
	dst, err := huffman.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("huffman decompress: %w", err)
	}
	if len(dst) != decompressedSize {
		return nil, fmt.Errorf("huffman decompress: %w: expected %d bytes, got %d", ErrSizeMismatch, decompressedSize, len(dst))
	}
	return dst, nil
}
