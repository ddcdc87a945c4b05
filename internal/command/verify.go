package command

import (
	"bytes"
	"fmt"

	"github.com/nuclio/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type verifyResult struct {
	File           string  `json:"file"`
	OriginalSize   int     `json:"originalSize"`
	CompressedSize int     `json:"compressedSize"`
	Ratio          float64 `json:"ratio"`
	Equal          bool    `json:"equal"`
	Error          string  `json:"error,omitempty"`
}

type verifyCommandeer struct {
	cmd            *cobra.Command
	rootCommandeer *RootCommandeer
}

func newVerifyCommandeer(rootCommandeer *RootCommandeer) *verifyCommandeer {
	commandeer := &verifyCommandeer{
		rootCommandeer: rootCommandeer,
	}

	cmd := &cobra.Command{
		Use:   "verify file [file ...]",
		Short: "Round-trip files through the codec and compare the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootCommandeer.initialize(); err != nil {
				return errors.Wrap(err, "Failed to initialize root")
			}

			results, err := commandeer.verify(args)
			if err != nil {
				return err
			}

			if err := commandeer.render(cmd, results); err != nil {
				return err
			}

			failed := 0
			for _, result := range results {
				if !result.Equal {
					failed++
				}
			}
			if failed > 0 {
				return errors.Errorf("Round trip failed for %d of %d file(s)", failed, len(results))
			}

			return nil
		},
	}

	commandeer.cmd = cmd

	return commandeer
}

func (vc *verifyCommandeer) verify(paths []string) ([]verifyResult, error) {
	results := make([]verifyResult, len(paths))

	var errGroup errgroup.Group
	errGroup.SetLimit(max(vc.rootCommandeer.jobs, 1))

	for pathIdx, path := range paths {
		errGroup.Go(func() error {
			data, err := readFile(path)
			if err != nil {
				return err
			}

			results[pathIdx] = vc.roundTrip(path, data)
			return nil
		})
	}

	if err := errGroup.Wait(); err != nil {
		return nil, errors.Wrap(err, "Failed to verify files")
	}

	return results, nil
}

func (vc *verifyCommandeer) roundTrip(path string, data []byte) verifyResult {
	result := verifyResult{
		File:         path,
		OriginalSize: len(data),
	}

	packed, err := vc.rootCommandeer.pack(data)
	if err != nil {
		result.Error = errors.RootCause(err).Error()
		return result
	}
	result.CompressedSize = len(packed)
	result.Ratio = ratio(len(data), len(packed))

	decoded, err := vc.rootCommandeer.unpack(packed)
	if err != nil {
		result.Error = errors.RootCause(err).Error()
	} else {
		result.Equal = bytes.Equal(decoded, data)
	}

	vc.rootCommandeer.loggerInstance.DebugWith("Verified file",
		"file", path,
		"originalSize", result.OriginalSize,
		"compressedSize", result.CompressedSize,
		"equal", result.Equal)

	return result
}

func (vc *verifyCommandeer) render(cmd *cobra.Command, results []verifyResult) error {
	records := make([][]interface{}, 0, len(results))
	for _, result := range results {
		equal := "Yes"
		if !result.Equal {
			equal = "No"
			if result.Error != "" {
				equal = "No (" + result.Error + ")"
			}
		}
		records = append(records, []interface{}{
			result.File,
			result.OriginalSize,
			result.CompressedSize,
			fmt.Sprintf("%.3f", result.Ratio),
			equal,
		})
	}

	return newRenderer(cmd.OutOrStdout()).render(vc.rootCommandeer.output,
		results,
		[]interface{}{"File", "Original", "Compressed", "Ratio", "Equal"},
		records)
}
