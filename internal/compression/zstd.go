package compression

import (
	"fmt"
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ZstdCodec implements zstd frame compression with pooled single-threaded
// encoders and decoders.
type ZstdCodec struct{}

var zstdEncPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(
			nil,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
			zstd.WithLowerEncoderMem(true),
		)
		if err != nil {
			panic(err)
		}
		return enc
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(
			nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true),
			zstd.WithDecoderMaxMemory(math.MaxUint32),
		)
		if err != nil {
			panic(err)
		}
		return dec
	},
}

func (c *ZstdCodec) MethodByte() byte { return MethodZstd }

func (c *ZstdCodec) Name() string { return "zstd" }

func (c *ZstdCodec) Compress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return []byte{}, nil
	}
	enc := zstdEncPool.Get().(*zstd.Encoder)
	out := enc.EncodeAll(src, nil)
	zstdEncPool.Put(enc)

	if len(out) >= len(src) {
		return nil, fmt.Errorf("zstd compress: %w", ErrIncompressible)
	}
	return out, nil
}

func (c *ZstdCodec) Decompress(src []byte, decompressedSize int) ([]byte, error) {
	if decompressedSize == 0 {
		return []byte{}, nil
	}
	if len(src) == 0 {
		return nil, fmt.Errorf("zstd decompress: %w: empty frame for %d bytes", ErrSizeMismatch, decompressedSize)
	}
	dec := zstdDecPool.Get().(*zstd.Decoder)
	out, err := dec.DecodeAll(src, make([]byte, 0, preallocSize(decompressedSize)))
	zstdDecPool.Put(dec)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(out) != decompressedSize {
		return nil, fmt.Errorf("zstd decompress: %w: expected %d bytes, got %d", ErrSizeMismatch, decompressedSize, len(out))
	}
	return out, nil
}
