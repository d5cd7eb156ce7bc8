package report

import (
	"fmt"
	"io"

	"github.com/arloliu/zcurve/verify"
)

// WriteText prints a human-readable summary of run.
func WriteText(w io.Writer, run *verify.Run) error {
	verdict := "PASSED"
	if !run.Passed() {
		verdict = "FAILED"
	}

	p := &printer{w: w}
	p.printf("verification %s\n", verdict)
	p.printf("  mode:        %s\n", run.Mode)
	p.printf("  depth:       %d\n", run.Depth)
	if run.Mode == verify.ModeSampled {
		p.printf("  seed:        %d\n", run.Seed)
	}
	p.printf("  total:       %d\n", run.Total)
	p.printf("  failures:    %d\n", run.Failures)
	p.printf("  collisions:  %s\n", onOff(run.CollisionCheck))
	p.printf("  fingerprint: %016x\n", run.Fingerprint)

	if run.FirstFailure != nil {
		p.printf("first failure: %s\n", run.FirstFailure)
	}
	if len(run.FailureRecords) > 1 {
		p.printf("failure records (%d of %d):\n", len(run.FailureRecords), run.Failures)
		for _, r := range run.FailureRecords {
			p.printf("  %s\n", r)
		}
	}

	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func onOff(b bool) string {
	if b {
		return "checked"
	}

	return "off"
}
