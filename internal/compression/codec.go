package compression

import (
	"errors"
	"fmt"
	"strings"
)

// Codec compresses and decompresses data blocks.
type Codec interface {
	// MethodByte returns the single-byte codec identifier.
	MethodByte() byte
	// Name returns the identifier used on the command line.
	Name() string
	Compress(src []byte) ([]byte, error)
	Decompress(src []byte, decompressedSize int) ([]byte, error)
}

// Method byte constants. None and LZ4 keep the ClickHouse values.
const (
	MethodNone    byte = 0x02
	MethodLZ4     byte = 0x82
	MethodZstd    byte = 0x90
	MethodHuff0   byte = 0x91
	MethodHuffman byte = 0x92
)

var (
	// ErrIncompressible is returned by Compress when the codec cannot shrink
	// the input. CompressBlock stores such blocks with MethodNone.
	ErrIncompressible = errors.New("data is incompressible")
	// ErrUnknownMethod indicates an unregistered method byte or codec name.
	ErrUnknownMethod = errors.New("unknown compression method")
	// ErrShortBlock indicates a block shorter than its header claims.
	ErrShortBlock = errors.New("compressed block too small")
	// ErrSizeMismatch indicates decompressed data of unexpected length.
	ErrSizeMismatch = errors.New("decompressed size mismatch")
)

// maxPrealloc caps buffers sized from a block's declared uncompressed size;
// larger outputs grow by append.
const maxPrealloc = 1 << 20

func preallocSize(decompressedSize int) int {
	return min(max(decompressedSize, 0), maxPrealloc)
}

// registry in display order; huffman first as the default.
var registry = []Codec{
	&HuffmanCodec{},
	&Huff0Codec{},
	&LZ4Codec{},
	&ZstdCodec{},
	&NoneCodec{},
}

// Codecs returns every registered codec.
func Codecs() []Codec {
	out := make([]Codec, len(registry))
	copy(out, registry)
	return out
}

// Names returns the names of every registered codec.
func Names() []string {
	names := make([]string, len(registry))
	for i, c := range registry {
		names[i] = c.Name()
	}
	return names
}

// CodecByName looks a codec up by its command-line name.
func CodecByName(name string) (Codec, error) {
	for _, c := range registry {
		if c.Name() == strings.ToLower(name) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownMethod, name, strings.Join(Names(), ", "))
}

// CodecByMethod looks a codec up by its method byte.
func CodecByMethod(method byte) (Codec, error) {
	for _, c := range registry {
		if c.MethodByte() == method {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownMethod, method)
}
