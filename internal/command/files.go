package command

import (
	"os"

	"github.com/harshithgowdakt/huffpack/internal/compression"
	"github.com/harshithgowdakt/huffpack/internal/huffman"

	"github.com/nuclio/errors"
)

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read %s", path)
	}
	return data, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "Failed to write %s", path)
	}
	return nil
}

// pack compresses data either as a bare Huffman stream or as a framed block.
func (rc *RootCommandeer) pack(data []byte) ([]byte, error) {
	if rc.raw {
		return huffman.Encode(data), nil
	}

	codec, err := rc.codec()
	if err != nil {
		return nil, err
	}

	block, err := compression.CompressBlock(codec, data)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to compress with %s", codec.Name())
	}
	return block, nil
}

// unpack reverses pack.
func (rc *RootCommandeer) unpack(data []byte) ([]byte, error) {
	if rc.raw {
		decoded, err := huffman.Decode(data)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to decode Huffman stream")
		}
		return decoded, nil
	}

	decoded, err := compression.DecompressBlock(data)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to decompress block")
	}
	return decoded, nil
}

func ratio(original, compressed int) float64 {
	if compressed == 0 {
		return 0
	}
	return float64(original) / float64(compressed)
}
