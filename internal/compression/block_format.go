package compression

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Compressed block format (ClickHouse layout, minus the 16-byte CityHash checksum):
//   [method_byte (1)] [compressed_size_with_header (4 LE)] [uncompressed_size (4 LE)] [payload...]
//
// compressed_size_with_header includes the 9-byte header itself.

const HeaderSize = 9

// BlockHeader is the decoded 9-byte block header.
type BlockHeader struct {
	Method           byte
	CompressedSize   uint32 // including the header
	UncompressedSize uint32
}

// CompressBlock compresses data and returns the full block (header + compressed payload).
// Data the codec reports as incompressible is stored with MethodNone.
func CompressBlock(codec Codec, data []byte) ([]byte, error) {
	if uint64(len(data)) > math.MaxUint32-HeaderSize {
		return nil, fmt.Errorf("block of %d bytes exceeds the 4-byte size field", len(data))
	}

	compressed, err := codec.Compress(data)
	if errors.Is(err, ErrIncompressible) {
		codec = &NoneCodec{}
		compressed, err = codec.Compress(data)
	}
	if err != nil {
		return nil, err
	}
	if uint64(len(compressed)) > math.MaxUint32-HeaderSize {
		return nil, fmt.Errorf("compressed block of %d bytes exceeds the 4-byte size field", len(compressed))
	}

	totalSize := HeaderSize + len(compressed)
	block := make([]byte, totalSize)

	// Write header
	block[0] = codec.MethodByte()
	binary.LittleEndian.PutUint32(block[1:5], uint32(totalSize))
	binary.LittleEndian.PutUint32(block[5:9], uint32(len(data)))

	// Write compressed payload
	copy(block[HeaderSize:], compressed)

	return block, nil
}

// DecompressBlock reads a compressed block, validates header, and decompresses.
func DecompressBlock(data []byte) ([]byte, error) {
	hdr, payload, err := BlockPayload(data)
	if err != nil {
		return nil, err
	}

	codec, err := CodecByMethod(hdr.Method)
	if err != nil {
		return nil, err
	}
	return codec.Decompress(payload, int(hdr.UncompressedSize))
}

// ReadBlockHeader reads the header from a compressed block.
func ReadBlockHeader(data []byte) (BlockHeader, error) {
	if len(data) < HeaderSize {
		return BlockHeader{}, fmt.Errorf("%w: %d bytes", ErrShortBlock, len(data))
	}
	return BlockHeader{
		Method:           data[0],
		CompressedSize:   binary.LittleEndian.Uint32(data[1:5]),
		UncompressedSize: binary.LittleEndian.Uint32(data[5:9]),
	}, nil
}

// BlockPayload returns the codec payload of a block without decompressing it.
func BlockPayload(data []byte) (BlockHeader, []byte, error) {
	hdr, err := ReadBlockHeader(data)
	if err != nil {
		return hdr, nil, err
	}
	if hdr.CompressedSize < HeaderSize || int64(hdr.CompressedSize) > int64(len(data)) {
		return hdr, nil, fmt.Errorf("%w: header says %d, have %d", ErrShortBlock, hdr.CompressedSize, len(data))
	}
	return hdr, data[HeaderSize:hdr.CompressedSize], nil
}
