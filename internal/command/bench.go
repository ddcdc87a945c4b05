package command

import (
	"bytes"
	"fmt"
	"time"

	"github.com/harshithgowdakt/huffpack/internal/compression"

	"github.com/nuclio/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type benchResult struct {
	File             string  `json:"file"`
	Codec            string  `json:"codec"`
	StoredAs         string  `json:"storedAs"`
	OriginalSize     int     `json:"originalSize"`
	CompressedSize   int     `json:"compressedSize"`
	Ratio            float64 `json:"ratio"`
	CompressMillis   float64 `json:"compressMillis"`
	DecompressMillis float64 `json:"decompressMillis"`
}

type benchCommandeer struct {
	cmd            *cobra.Command
	rootCommandeer *RootCommandeer
	rounds         int
}

func newBenchCommandeer(rootCommandeer *RootCommandeer) *benchCommandeer {
	commandeer := &benchCommandeer{
		rootCommandeer: rootCommandeer,
	}

	cmd := &cobra.Command{
		Use:   "bench file [file ...]",
		Short: "Compare every codec on the given files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootCommandeer.initialize(); err != nil {
				return errors.Wrap(err, "Failed to initialize root")
			}

			if commandeer.rounds < 1 {
				return errors.New("Rounds must be at least 1")
			}

			results, err := commandeer.bench(args)
			if err != nil {
				return err
			}

			return commandeer.render(cmd, results)
		},
	}

	cmd.Flags().IntVarP(&commandeer.rounds, "rounds", "r", 3, "Timed rounds per codec; the fastest is reported")

	commandeer.cmd = cmd

	return commandeer
}

func (bc *benchCommandeer) bench(paths []string) ([]benchResult, error) {
	codecs := compression.Codecs()
	results := make([]benchResult, len(paths)*len(codecs))

	var errGroup errgroup.Group
	errGroup.SetLimit(max(bc.rootCommandeer.jobs, 1))

	for pathIdx, path := range paths {
		errGroup.Go(func() error {
			data, err := readFile(path)
			if err != nil {
				return err
			}

			for codecIdx, codec := range codecs {
				result, err := bc.benchCodec(path, data, codec)
				if err != nil {
					return errors.Wrapf(err, "Failed to bench %s on %s", codec.Name(), path)
				}
				results[pathIdx*len(codecs)+codecIdx] = result
			}
			return nil
		})
	}

	if err := errGroup.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (bc *benchCommandeer) benchCodec(path string, data []byte, codec compression.Codec) (benchResult, error) {
	var (
		block                 []byte
		decoded               []byte
		compressBest, decBest time.Duration
		err                   error
	)

	for round := 0; round < bc.rounds; round++ {
		start := time.Now()
		block, err = compression.CompressBlock(codec, data)
		if err != nil {
			return benchResult{}, err
		}
		if elapsed := time.Since(start); round == 0 || elapsed < compressBest {
			compressBest = elapsed
		}

		start = time.Now()
		decoded, err = compression.DecompressBlock(block)
		if err != nil {
			return benchResult{}, err
		}
		if elapsed := time.Since(start); round == 0 || elapsed < decBest {
			decBest = elapsed
		}
	}

	if !bytes.Equal(decoded, data) {
		return benchResult{}, errors.New("Decoded data differs from input")
	}

	storedAs, err := compression.CodecByMethod(block[0])
	if err != nil {
		return benchResult{}, err
	}

	result := benchResult{
		File:             path,
		Codec:            codec.Name(),
		StoredAs:         storedAs.Name(),
		OriginalSize:     len(data),
		CompressedSize:   len(block),
		Ratio:            ratio(len(data), len(block)),
		CompressMillis:   float64(compressBest.Microseconds()) / 1000,
		DecompressMillis: float64(decBest.Microseconds()) / 1000,
	}

	bc.rootCommandeer.loggerInstance.DebugWith("Benchmarked codec",
		"file", path,
		"codec", result.Codec,
		"compressedSize", result.CompressedSize,
		"ratio", result.Ratio)

	return result, nil
}

func (bc *benchCommandeer) render(cmd *cobra.Command, results []benchResult) error {
	records := make([][]interface{}, 0, len(results))
	for _, result := range results {
		records = append(records, []interface{}{
			result.File,
			result.Codec,
			result.StoredAs,
			result.OriginalSize,
			result.CompressedSize,
			fmt.Sprintf("%.3f", result.Ratio),
			fmt.Sprintf("%.3f", result.CompressMillis),
			fmt.Sprintf("%.3f", result.DecompressMillis),
		})
	}

	return newRenderer(cmd.OutOrStdout()).render(bc.rootCommandeer.output,
		results,
		[]interface{}{"File", "Codec", "Stored As", "Original", "Compressed", "Ratio", "Compress (ms)", "Decompress (ms)"},
		records)
}
