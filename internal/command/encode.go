package command

import (
	"time"

	"github.com/nuclio/errors"
	"github.com/spf13/cobra"
)

type encodeCommandeer struct {
	cmd            *cobra.Command
	rootCommandeer *RootCommandeer
}

func newEncodeCommandeer(rootCommandeer *RootCommandeer) *encodeCommandeer {
	commandeer := &encodeCommandeer{
		rootCommandeer: rootCommandeer,
	}

	cmd := &cobra.Command{
		Use:     "encode input output",
		Aliases: []string{"enc"},
		Short:   "Compress a file",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootCommandeer.initialize(); err != nil {
				return errors.Wrap(err, "Failed to initialize root")
			}

			return commandeer.encode(args[0], args[1])
		},
	}

	commandeer.cmd = cmd

	return commandeer
}

func (ec *encodeCommandeer) encode(inputPath string, outputPath string) error {
	data, err := readFile(inputPath)
	if err != nil {
		return err
	}

	start := time.Now()
	packed, err := ec.rootCommandeer.pack(data)
	if err != nil {
		return err
	}

	if err := writeFile(outputPath, packed); err != nil {
		return err
	}

	ec.rootCommandeer.loggerInstance.InfoWith("Encoded file",
		"input", inputPath,
		"output", outputPath,
		"raw", ec.rootCommandeer.raw,
		"originalSize", len(data),
		"compressedSize", len(packed),
		"ratio", ratio(len(data), len(packed)),
		"elapsed", time.Since(start).String())

	return nil
}
