// Package verify checks that a Morton codec is a bijection.
//
// A Verifier round-trips coordinates through Encode and Decode and reports the
// outcome as a Run: totals, the first failing record and, optionally, every
// record. Failures are data; Run returns an error only when the verifier or
// the codec is misconfigured.
//
// Two modes are supported:
//   - ModeExhaustive visits every coordinate in row-major order
//     (index = y<<depth | x). It is limited to small depths.
//   - ModeSampled draws coordinates from a counter-based xxHash64 stream:
//     sample i depends only on (seed, i). Equal seeds give identical runs, and
//     raising the sample count only appends samples.
//
// Samples are checked in contiguous batches on a bounded errgroup and merged
// in index order, so the Run does not depend on the number of workers or the
// batch size.
//
//	run, err := verify.Verify(morton.MustNewCodec(16),
//		verify.WithSampleCount(100_000),
//		verify.WithSeed(42),
//	)
//	if err != nil {
//		return err
//	}
//	if !run.Passed() {
//		fmt.Println(run.FirstFailure)
//	}
package verify
