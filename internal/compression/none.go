package compression

import "fmt"

// NoneCodec stores data as-is.
type NoneCodec struct{}

func (c *NoneCodec) MethodByte() byte { return MethodNone }

func (c *NoneCodec) Name() string { return "none" }

func (c *NoneCodec) Compress(src []byte) ([]byte, error) {
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst, nil
}

func (c *NoneCodec) Decompress(src []byte, decompressedSize int) ([]byte, error) {
	if len(src) != decompressedSize {
		return nil, fmt.Errorf("none: %w: expected %d bytes, got %d", ErrSizeMismatch, decompressedSize, len(src))
	}
	dst := make([]byte, decompressedSize)
	copy(dst, src)
	return dst, nil
}
