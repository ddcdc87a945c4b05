package command

import (
	"github.com/harshithgowdakt/huffpack/internal/compression"
	"github.com/harshithgowdakt/huffpack/internal/huffman"

	"github.com/nuclio/errors"
	"github.com/spf13/cobra"
)

type codeEntry struct {
	Symbol string `json:"symbol"`
	Code   string `json:"code"`
	Bits   int    `json:"bits"`
}

type inspectResult struct {
	File          string      `json:"file"`
	HeaderSize    int         `json:"headerSize"`
	BitstreamSize int         `json:"bitstreamSize"`
	Symbols       int         `json:"symbols"`
	Terminator    string      `json:"terminator"`
	Codes         []codeEntry `json:"codes"`
}

type inspectCommandeer struct {
	cmd            *cobra.Command
	rootCommandeer *RootCommandeer
}

func newInspectCommandeer(rootCommandeer *RootCommandeer) *inspectCommandeer {
	commandeer := &inspectCommandeer{
		rootCommandeer: rootCommandeer,
	}

	cmd := &cobra.Command{
		Use:   "inspect file",
		Short: "Print the code table embedded in a Huffman-encoded file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootCommandeer.initialize(); err != nil {
				return errors.Wrap(err, "Failed to initialize root")
			}

			result, err := commandeer.inspect(args[0])
			if err != nil {
				return err
			}

			return commandeer.render(cmd, result)
		},
	}

	commandeer.cmd = cmd

	return commandeer
}

func (ic *inspectCommandeer) inspect(path string) (*inspectResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	stream := data
	if !ic.rootCommandeer.raw {
		hdr, payload, err := compression.BlockPayload(data)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to read block")
		}
		if hdr.Method != compression.MethodHuffman {
			return nil, errors.Errorf("Block method is 0x%02x, not huffman", hdr.Method)
		}
		stream = payload
	}

	header, err := huffman.Inspect(stream)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to parse Huffman header")
	}

	result := &inspectResult{
		File:          path,
		HeaderSize:    header.Size,
		BitstreamSize: len(stream) - header.Size,
		Symbols:       header.Table.Len(),
	}

	for _, entry := range header.Table.Entries() {
		if entry.Symbol.IsTerminator() {
			result.Terminator = entry.Code.String()
		}
		result.Codes = append(result.Codes, codeEntry{
			Symbol: entry.Symbol.String(),
			Code:   entry.Code.String(),
			Bits:   len(entry.Code),
		})
	}

	ic.rootCommandeer.loggerInstance.DebugWith("Inspected file",
		"file", path,
		"headerSize", result.HeaderSize,
		"symbols", result.Symbols)

	return result, nil
}

func (ic *inspectCommandeer) render(cmd *cobra.Command, result *inspectResult) error {
	records := make([][]interface{}, 0, len(result.Codes))
	for _, entry := range result.Codes {
		records = append(records, []interface{}{entry.Symbol, entry.Bits, entry.Code})
	}

	return newRenderer(cmd.OutOrStdout()).render(ic.rootCommandeer.output,
		result,
		[]interface{}{"Symbol", "Bits", "Code"},
		records)
}
