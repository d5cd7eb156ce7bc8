package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/zcurve/blob"
	"github.com/arloliu/zcurve/format"
	"github.com/arloliu/zcurve/regression"
)

func newPackCmd(root *rootOptions) *cobra.Command {
	var (
		input       string
		output      string
		encoding    string
		compression string
		bigEndian   bool
	)

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack \"x y\" lines into a key blob",
		Long:  "Reads one whitespace-separated coordinate pair per line; blank lines and lines starting with # are skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc, ok := format.ParseEncodingType(encoding)
			if !ok {
				return fmt.Errorf("unknown encoding %q", encoding)
			}
			comp, ok := format.ParseCompressionType(compression)
			if !ok {
				return fmt.Errorf("unknown compression %q", compression)
			}

			opts := []blob.KeyEncoderOption{blob.WithKeyEncoding(enc), blob.WithKeyCompression(comp)}
			if bigEndian {
				opts = append(opts, blob.WithBigEndian())
			}
			encoder, err := blob.NewKeyEncoder(root.depth, opts...)
			if err != nil {
				return err
			}

			in, closeIn, err := openInput(cmd, input)
			if err != nil {
				return err
			}
			defer closeIn()

			if err := readPoints(in, encoder.AddPoint); err != nil {
				return err
			}
			data, err := encoder.Finish()
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			return os.WriteFile(output, data, 0o644) //nolint:gosec
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "-", "coordinate file, - for stdin")
	f.StringVarP(&output, "output", "o", "", "blob file (default stdout)")
	f.StringVar(&encoding, "encoding", "delta", "key encoding: raw or delta")
	f.StringVar(&compression, "compression", "zstd", "payload compression: none, zstd, s2 or lz4")
	f.BoolVar(&bigEndian, "big-endian", false, "write raw keys big-endian")

	return cmd
}

func newInspectCmd() *cobra.Command {
	var points bool

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Describe a key blob and optionally list its points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			dec, err := blob.NewKeyDecoder(data)
			if err != nil {
				return err
			}
			kb, err := dec.Decode()
			if err != nil {
				return err
			}

			h := dec.Header()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "depth:       %d\n", h.Depth)
			fmt.Fprintf(out, "keys:        %d\n", h.Count)
			fmt.Fprintf(out, "encoding:    %s\n", h.Flag.EncodingType)
			fmt.Fprintf(out, "compression: %s\n", h.Flag.CompressionType)
			fmt.Fprintf(out, "sorted:      %v\n", h.Flag.IsSorted())
			fmt.Fprintf(out, "payload:     %d bytes (%d raw)\n", h.PayloadSize, h.RawSize)
			fmt.Fprintf(out, "checksum:    %016x\n", h.Checksum)

			if points {
				for t := range kb.Points() {
					fmt.Fprintf(out, "%d %d %d\n", t.X, t.Y, t.Z)
				}
			}

			return nil
		},
	}
	cmd.Flags().BoolVarP(&points, "points", "p", false, "print every point as \"x y z\"")

	return cmd
}

func newEstimateCmd() *cobra.Command {
	var (
		compression string
		keys        []int
	)

	cmd := &cobra.Command{
		Use:   "estimate FILE...",
		Short: "Fit a blob size model to the keys of existing blobs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, ok := format.ParseCompressionType(compression)
			if !ok {
				return fmt.Errorf("unknown compression %q", compression)
			}

			blobs := make([]blob.KeyBlob, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				kb, err := blob.DecodeKeyBlob(data)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				blobs = append(blobs, kb)
			}

			res, err := regression.Analyze(blobs, regression.WithCompression(comp))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "best fit: %s (R²=%.4f)\n", res.BestFit.Formula, res.BestFit.RSquared)
			for _, n := range keys {
				fmt.Fprintf(out, "  %8d keys: ~%d bytes\n", n, regression.EstimateBlobSize(res.BestFit.Estimator, n))
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&compression, "compression", "zstd", "compression to measure with")
	cmd.Flags().IntSliceVar(&keys, "keys", []int{100, 1000, 10000}, "blob sizes to predict")

	return cmd
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	return f, func() { _ = f.Close() }, nil
}

func readPoints(r io.Reader, add func(x, y uint64) error) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return fmt.Errorf("line %d: want \"x y\", got %q", line, text)
		}
		x, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		y, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := add(x, y); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}

	return sc.Err()
}
