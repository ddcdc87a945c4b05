package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/harshithgowdakt/huffpack/internal/compression"
	"github.com/harshithgowdakt/huffpack/internal/huffman"
)

type codeJSON struct {
	Symbol string `json:"symbol"`
	Code   string `json:"code"`
}

type huffmanJSON struct {
	HeaderSize    int        `json:"header_size"`
	BitstreamSize int        `json:"bitstream_size"`
	Codes         []codeJSON `json:"codes"`
}

type blockJSON struct {
	File             string       `json:"file"`
	FileSize         int          `json:"file_size"`
	MethodByte       uint8        `json:"method_byte"`
	Method           string       `json:"method"`
	CompressedBytes  uint32       `json:"compressed_bytes_with_header"`
	UncompressedSize uint32       `json:"uncompressed_bytes"`
	Huffman          *huffmanJSON `json:"huffman,omitempty"`
	Error            string       `json:"error,omitempty"`
}

func main() {
	file := flag.String("file", "", "Block file to dump")
	dir := flag.String("dir", "", "Dump every file in this directory")
	raw := flag.Bool("raw", false, "Input is a bare Huffman stream, not a block")
	flag.Parse()

	var paths []string
	switch {
	case *file != "":
		paths = append(paths, *file)
	case *dir != "":
		entries, err := os.ReadDir(*dir)
		if err != nil {
			fatalf("read dir: %v", err)
		}
		for _, ent := range entries {
			if !ent.IsDir() {
				paths = append(paths, filepath.Join(*dir, ent.Name()))
			}
		}
		sort.Strings(paths)
	default:
		fatalf("missing required -file or -dir")
	}

	out := make([]blockJSON, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		out = append(out, dumpFile(path, data, *raw))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fatalf("encode json: %v", err)
	}
}

func dumpFile(path string, data []byte, raw bool) blockJSON {
	bj := blockJSON{File: path, FileSize: len(data)}

	stream := data
	if raw {
		bj.Method = "huffman (raw)"
	} else {
		hdr, payload, err := compression.BlockPayload(data)
		if err != nil {
			bj.Error = err.Error()
			return bj
		}
		bj.MethodByte = hdr.Method
		bj.CompressedBytes = hdr.CompressedSize
		bj.UncompressedSize = hdr.UncompressedSize
		if codec, err := compression.CodecByMethod(hdr.Method); err == nil {
			bj.Method = codec.Name()
		}
		if hdr.Method != compression.MethodHuffman {
			return bj
		}
		stream = payload
	}

	h, err := huffman.Inspect(stream)
	if err != nil {
		bj.Error = err.Error()
		return bj
	}

	hj := &huffmanJSON{
		HeaderSize:    h.Size,
		BitstreamSize: len(stream) - h.Size,
		Codes:         make([]codeJSON, 0, h.Table.Len()),
	}
	for _, e := range h.Table.Entries() {
		hj.Codes = append(hj.Codes, codeJSON{Symbol: e.Symbol.String(), Code: e.Code.String()})
	}
	bj.Huffman = hj
	return bj
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
