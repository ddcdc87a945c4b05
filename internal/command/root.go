package command

import (
	"os"
	"runtime"
	"strconv"

	"github.com/harshithgowdakt/huffpack/internal/compression"

	"github.com/nuclio/errors"
	"github.com/nuclio/logger"
	nucliozap "github.com/nuclio/zap"
	"github.com/spf13/cobra"
)

type RootCommandeer struct {
	loggerInstance logger.Logger
	cmd            *cobra.Command
	verbose        bool
	codecName      string
	raw            bool
	jobs           int
	output         string
}

func NewRootCommandeer() *RootCommandeer {
	commandeer := &RootCommandeer{}

	cmd := &cobra.Command{
		Use:           "huffpack [command]",
		Short:         "Huffman file compressor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultCodec := os.Getenv("HUFFPACK_CODEC")
	if defaultCodec == "" {
		defaultCodec = "huffman"
	}

	defaultJobs := runtime.NumCPU()
	if jobs, err := strconv.Atoi(os.Getenv("HUFFPACK_JOBS")); err == nil && jobs > 0 {
		defaultJobs = jobs
	}

	cmd.PersistentFlags().BoolVarP(&commandeer.verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().StringVarP(&commandeer.codecName, "codec", "c", defaultCodec, "Block codec - one of huffman, huff0, lz4, zstd, none")
	cmd.PersistentFlags().BoolVarP(&commandeer.raw, "raw", "", false, "Read/write the bare Huffman stream instead of a framed block")
	cmd.PersistentFlags().IntVarP(&commandeer.jobs, "jobs", "j", defaultJobs, "Files processed concurrently")
	cmd.PersistentFlags().StringVarP(&commandeer.output, "output", "o", outputTable, "Output format - \"table\", \"json\" or \"yaml\"")

	cmd.AddCommand(
		newEncodeCommandeer(commandeer).cmd,
		newDecodeCommandeer(commandeer).cmd,
		newVerifyCommandeer(commandeer).cmd,
		newBenchCommandeer(commandeer).cmd,
		newInspectCommandeer(commandeer).cmd,
	)

	commandeer.cmd = cmd

	return commandeer
}

// Execute uses os.Args to execute the command
func (rc *RootCommandeer) Execute() error {
	return rc.cmd.Execute()
}

// GetCmd returns the underlying cobra command
func (rc *RootCommandeer) GetCmd() *cobra.Command {
	return rc.cmd
}

func (rc *RootCommandeer) initialize() error {
	if rc.loggerInstance != nil {
		return nil
	}

	var err error
	rc.loggerInstance, err = rc.createLogger()
	if err != nil {
		return errors.Wrap(err, "Failed to create logger")
	}

	rc.loggerInstance.DebugWith("Initialized", "codec", rc.codecName, "raw", rc.raw, "jobs", rc.jobs)

	return nil
}

func (rc *RootCommandeer) createLogger() (logger.Logger, error) {
	var loggerLevel nucliozap.Level

	if rc.verbose {
		loggerLevel = nucliozap.DebugLevel
	} else {
		loggerLevel = nucliozap.InfoLevel
	}

	loggerInstance, err := nucliozap.NewNuclioZapCmd("huffpack", loggerLevel)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create logger")
	}

	return loggerInstance, nil
}

func (rc *RootCommandeer) codec() (compression.Codec, error) {
	codec, err := compression.CodecByName(rc.codecName)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to resolve codec")
	}
	return codec, nil
}
