package command

import (
	"time"

	"github.com/nuclio/errors"
	"github.com/spf13/cobra"
)

type decodeCommandeer struct {
	cmd            *cobra.Command
	rootCommandeer *RootCommandeer
}

func newDecodeCommandeer(rootCommandeer *RootCommandeer) *decodeCommandeer {
	commandeer := &decodeCommandeer{
		rootCommandeer: rootCommandeer,
	}

	cmd := &cobra.Command{
		Use:     "decode input output",
		Aliases: []string{"dec"},
		Short:   "Decompress a file produced by encode",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootCommandeer.initialize(); err != nil {
				return errors.Wrap(err, "Failed to initialize root")
			}

			return commandeer.decode(args[0], args[1])
		},
	}

	commandeer.cmd = cmd

	return commandeer
}

func (dc *decodeCommandeer) decode(inputPath string, outputPath string) error {
	data, err := readFile(inputPath)
	if err != nil {
		return err
	}

	start := time.Now()
	decoded, err := dc.rootCommandeer.unpack(data)
	if err != nil {
		return errors.Wrapf(err, "Failed to decode %s", inputPath)
	}

	if err := writeFile(outputPath, decoded); err != nil {
		return err
	}

	dc.rootCommandeer.loggerInstance.InfoWith("Decoded file",
		"input", inputPath,
		"output", outputPath,
		"compressedSize", len(data),
		"decodedSize", len(decoded),
		"elapsed", time.Since(start).String())

	return nil
}
