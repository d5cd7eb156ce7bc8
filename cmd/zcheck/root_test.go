package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zcurve/errs"
	"github.com/arloliu/zcurve/morton"
	"github.com/arloliu/zcurve/report"
	"github.com/arloliu/zcurve/verify"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestEncodeDecode(t *testing.T) {
	out, err := execute(t, "encode", "--depth", "4", "5", "10")
	require.NoError(t, err)
	require.Equal(t, "153\n", out)

	out, err = execute(t, "decode", "-d", "4", "206")
	require.NoError(t, err)
	require.Equal(t, "10 11\n", out)

	out, err = execute(t, "encode", "0xFFFFFFFF", "0")
	require.NoError(t, err)
	require.Equal(t, "6148914691236517205\n", out)
}

func TestEncodeDecode_Errors(t *testing.T) {
	_, err := execute(t, "encode", "-d", "4", "16", "0")
	require.ErrorIs(t, err, errs.ErrOutOfDomain)

	_, err = execute(t, "decode", "-d", "4", "256")
	require.ErrorIs(t, err, errs.ErrOutOfDomain)

	_, err = execute(t, "encode", "-d", "0", "1", "1")
	require.ErrorIs(t, err, errs.ErrInvalidDepth)

	_, err = execute(t, "encode", "one", "1")
	require.Error(t, err)

	_, err = execute(t, "decode")
	require.Error(t, err)
}

func TestVerify_TextReport(t *testing.T) {
	out, err := execute(t, "verify", "-d", "6", "-m", "exhaustive", "--collisions")
	require.NoError(t, err)
	require.Contains(t, out, "verification PASSED")
	require.Contains(t, out, "mode:        exhaustive")
	require.Contains(t, out, "total:       4096")
	require.Contains(t, out, "collisions:  checked")
}

func TestVerify_StructuredFormats(t *testing.T) {
	for _, format := range []string{"json", "cbor", "msgpack"} {
		t.Run(format, func(t *testing.T) {
			out, err := execute(t, "verify", "-d", "16", "-n", "5000", "-s", "7", "-f", format, "--workers", "3")
			require.NoError(t, err)

			codec, err := report.ByName(format)
			require.NoError(t, err)
			run, err := codec.Decode([]byte(out))
			require.NoError(t, err)
			require.True(t, run.Passed())
			require.Equal(t, verify.ModeSampled, run.Mode)
			require.Equal(t, uint64(7), run.Seed)
			require.Equal(t, uint64(5000), run.Total)
		})
	}
}

func TestVerify_SeedStringIsStable(t *testing.T) {
	first, err := execute(t, "verify", "-d", "20", "-n", "2000", "-s", "nightly", "-f", "json")
	require.NoError(t, err)
	second, err := execute(t, "verify", "-d", "20", "-n", "2000", "-s", "nightly", "-f", "json", "--workers", "1")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestParseSeed(t *testing.T) {
	require.Equal(t, uint64(42), parseSeed("42"))
	require.Equal(t, uint64(255), parseSeed("0xff"))
	require.Equal(t, parseSeed("abc"), parseSeed("abc"))
	require.NotEqual(t, parseSeed("abc"), parseSeed("abd"))
}

func TestVerify_Errors(t *testing.T) {
	_, err := execute(t, "verify", "-m", "random")
	require.ErrorIs(t, err, errs.ErrInvalidMode)

	_, err = execute(t, "verify", "-d", "20", "-m", "exhaustive")
	require.ErrorIs(t, err, errs.ErrExhaustiveTooLarge)

	_, err = execute(t, "verify", "-d", "8", "-n", "10", "-f", "yaml")
	require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)

	_, err = execute(t, "verify", "--batch", "0")
	require.ErrorIs(t, err, errs.ErrInvalidOption)

	_, err = execute(t, "verify", "-d", "16", "-n", "18446744073709551615")
	require.ErrorIs(t, err, errs.ErrInvalidOption)

	_, err = execute(t, "verify", "-d", "16", "-n", "1048577", "--batch", "1")
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}

// closeErrWriter buffers writes and fails on Close.
type closeErrWriter struct {
	bytes.Buffer
	closed bool
}

func (w *closeErrWriter) Close() error {
	w.closed = true
	return errors.New("disk full")
}

func TestWriteReportFile_CloseError(t *testing.T) {
	run, err := verify.Verify(morton.MustNewCodec(4), verify.WithSampleCount(10))
	require.NoError(t, err)

	w := &closeErrWriter{}
	err = writeReportFile(w, "json", run)
	require.ErrorContains(t, err, "close report: disk full")
	require.True(t, w.closed)
	require.NotEmpty(t, w.String())

	w = &closeErrWriter{}
	err = writeReportFile(w, "yaml", run)
	require.ErrorIs(t, err, errs.ErrUnsupportedEncoding)
	require.True(t, w.closed)
}

func TestVerify_OutputAndMetricsFiles(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "run.json")
	metricsPath := filepath.Join(dir, "zcheck.prom")

	out, err := execute(t, "verify", "-d", "4", "-m", "all",
		"-f", "json", "-o", reportPath, "--metrics-file", metricsPath)
	require.NoError(t, err)
	require.Empty(t, out)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	run, err := report.JSON{}.Decode(data)
	require.NoError(t, err)
	require.Equal(t, uint64(256), run.Total)

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	require.Contains(t, string(metrics), `zcurve_verification_runs_total{mode="exhaustive",status="passed"} 1`)
}

func TestGrid(t *testing.T) {
	out, err := execute(t, "grid", "-d", "2", "--width", "4", "--height", "4")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Equal(t, []string{
		" 0  1  4  5",
		" 2  3  6  7",
		" 8  9 12 13",
		"10 11 14 15",
	}, lines)

	_, err = execute(t, "grid", "-d", "2", "--width", "5")
	require.ErrorIs(t, err, errs.ErrInvalidGridSize)
}

func TestGrid_EdgeSizes(t *testing.T) {
	for _, args := range [][]string{
		{"--width", "0", "--height", "4"},
		{"--width", "4", "--height", "0"},
		{"--width", "0", "--height", "0"},
	} {
		var out string
		var err error
		require.NotPanics(t, func() {
			out, err = execute(t, append([]string{"grid", "-d", "4"}, args...)...)
		})
		require.NoError(t, err)
		require.Empty(t, out)
	}

	_, err := execute(t, "grid", "-d", "32", "--width", "4294967295", "--height", "4294967295")
	require.ErrorIs(t, err, errs.ErrInvalidGridSize)
}
