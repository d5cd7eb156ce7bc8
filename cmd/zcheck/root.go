package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/zcurve/internal/hash"
	zaplog "github.com/arloliu/zcurve/log/zap"
	"github.com/arloliu/zcurve/metrics/prometheus"
	"github.com/arloliu/zcurve/morton"
	"github.com/arloliu/zcurve/report"
	"github.com/arloliu/zcurve/verify"
)

var errVerificationFailed = errors.New("verification failed")

type rootOptions struct {
	depth   int
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "zcheck",
		Short:         "Morton (Z-order) key codec and bijectivity checker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().IntVarP(&opts.depth, "depth", "d", morton.DefaultDepth, "bits per coordinate (1-32)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")

	cmd.AddCommand(
		newEncodeCmd(opts),
		newDecodeCmd(opts),
		newVerifyCmd(opts),
		newGridCmd(opts),
		newPackCmd(opts),
		newInspectCmd(),
		newEstimateCmd(),
	)

	return cmd
}

func (o *rootOptions) codec() (morton.Codec, error) {
	return morton.NewCodec(o.depth)
}

func (o *rootOptions) logger() (*zap.Logger, error) {
	if !o.verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}

	return cfg.Build()
}

func newEncodeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "encode X Y",
		Short: "Print the key of (X, Y)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.codec()
			if err != nil {
				return err
			}
			x, err := strconv.ParseUint(args[0], 0, 64)
			if err != nil {
				return fmt.Errorf("x: %w", err)
			}
			y, err := strconv.ParseUint(args[1], 0, 64)
			if err != nil {
				return fmt.Errorf("y: %w", err)
			}

			z, err := c.Encode(x, y)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), z)

			return nil
		},
	}
}

func newDecodeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode Z",
		Short: "Print the coordinates of key Z",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := root.codec()
			if err != nil {
				return err
			}
			z, err := strconv.ParseUint(args[0], 0, 64)
			if err != nil {
				return fmt.Errorf("z: %w", err)
			}

			x, y, err := c.Decode(z)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), x, y)

			return nil
		},
	}
}

type verifyOptions struct {
	mode        string
	samples     uint64
	seed        string
	workers     int
	batchSize   int
	maxFailures int
	collisions  bool
	format      string
	output      string
	metricsFile string
}

func newVerifyCmd(root *rootOptions) *cobra.Command {
	opts := &verifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that encode and decode are inverse bijections",
		Long: "Round-trips coordinates through the codec and reports the first failing sample.\n" +
			"Exits with status 1 when any sample fails.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.mode, "mode", "m", "sampled", "sampled or exhaustive")
	f.Uint64VarP(&opts.samples, "samples", "n", verify.DefaultSampleCount, "samples to draw in sampled mode")
	f.StringVarP(&opts.seed, "seed", "s", "0", "seed: an integer, or any string hashed to one")
	f.IntVar(&opts.workers, "workers", 0, "concurrent batches (0 = GOMAXPROCS)")
	f.IntVar(&opts.batchSize, "batch", verify.DefaultBatchSize, "samples per batch")
	f.IntVar(&opts.maxFailures, "max-failures", verify.DefaultMaxFailures, "failure records to keep")
	f.BoolVar(&opts.collisions, "collisions", false, "also check that keys are unique")
	f.StringVarP(&opts.format, "format", "f", "text", "report format: text, json, cbor or msgpack")
	f.StringVarP(&opts.output, "output", "o", "", "write the report to a file instead of stdout")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics of the run to a textfile-collector file")

	return cmd
}

// parseSeed accepts decimal or 0x-prefixed integers; anything else is hashed.
func parseSeed(s string) uint64 {
	if v, err := strconv.ParseUint(s, 0, 64); err == nil {
		return v
	}

	return hash.ID(s)
}

func runVerify(cmd *cobra.Command, root *rootOptions, opts *verifyOptions) error {
	codec, err := root.codec()
	if err != nil {
		return err
	}
	mode, err := verify.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	if opts.format != "text" {
		if _, err := report.ByName(opts.format); err != nil {
			return err
		}
	}

	zl, err := root.logger()
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	vopts := []verify.Option{
		verify.WithMode(mode),
		verify.WithSampleCount(opts.samples),
		verify.WithSeed(parseSeed(opts.seed)),
		verify.WithBatchSize(opts.batchSize),
		verify.WithMaxFailures(opts.maxFailures),
		verify.WithCollisionCheck(opts.collisions),
		verify.WithLogger(zaplog.New(zl)),
	}
	if opts.workers > 0 {
		vopts = append(vopts, verify.WithWorkers(opts.workers))
	}

	var reg *promclient.Registry
	if opts.metricsFile != "" {
		reg = promclient.NewRegistry()
		collector, err := prometheus.NewCollector(reg)
		if err != nil {
			return err
		}
		vopts = append(vopts, verify.WithMetrics(collector))
	}

	v, err := verify.New(vopts...)
	if err != nil {
		return err
	}
	run, err := v.RunContext(cmd.Context(), codec)
	if err != nil {
		return err
	}

	if reg != nil {
		if err := promclient.WriteToTextfile(opts.metricsFile, reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	if opts.output != "" {
		file, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		if err := writeReportFile(file, opts.format, run); err != nil {
			return err
		}
	} else if err := writeReport(cmd.OutOrStdout(), opts.format, run); err != nil {
		return err
	}
	if !run.Passed() {
		return errVerificationFailed
	}

	return nil
}

// writeReportFile writes the report and closes f, reporting a failed close.
func writeReportFile(f io.WriteCloser, format string, run *verify.Run) error {
	if err := writeReport(f, format, run); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}

	return nil
}

func writeReport(w io.Writer, format string, run *verify.Run) error {
	if format == "text" {
		return report.WriteText(w, run)
	}

	codec, err := report.ByName(format)
	if err != nil {
		return err
	}
	data, err := codec.Encode(run)
	if err != nil {
		return err
	}
	_, err = w.Write(data)

	return err
}

func newGridCmd(root *rootOptions) *cobra.Command {
	var width, height uint32

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the key matrix Z[y][x] of a small rectangle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := root.codec()
			if err != nil {
				return err
			}
			grid, err := c.Grid(width, height)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			cell := len(strconv.FormatUint(c.MaxKey(), 10))
			if len(grid) > 0 && len(grid[0]) > 0 {
				cell = len(strconv.FormatUint(grid[len(grid)-1][len(grid[0])-1], 10))
			}
			for _, row := range grid {
				for x, z := range row {
					if x > 0 {
						fmt.Fprint(out, " ")
					}
					fmt.Fprintf(out, "%*d", cell, z)
				}
				fmt.Fprintln(out)
			}

			return nil
		},
	}
	cmd.Flags().Uint32Var(&width, "width", 16, "columns")
	cmd.Flags().Uint32Var(&height, "height", 16, "rows")

	return cmd
}
