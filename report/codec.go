// Package report serializes and prints verification runs.
//
// CBOR output uses core deterministic encoding: two runs that compare equal
// encode to identical bytes, which makes the CBOR form suitable for golden
// files and for comparing runs across machines.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/arloliu/zcurve/errs"
	"github.com/arloliu/zcurve/verify"
)

// Codec encodes a verification run to bytes and back.
type Codec interface {
	Name() string
	Encode(run *verify.Run) ([]byte, error)
	Decode(data []byte) (*verify.Run, error)
}

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	var err error
	if cborEncMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(fmt.Sprintf("report: cbor encode mode: %v", err))
	}
	if cborDecMode, err = (cbor.DecOptions{}).DecMode(); err != nil {
		panic(fmt.Sprintf("report: cbor decode mode: %v", err))
	}
}

// CBOR encodes runs as deterministic CBOR.
type CBOR struct{}

func (CBOR) Name() string { return "cbor" }

func (CBOR) Encode(run *verify.Run) ([]byte, error) {
	return cborEncMode.Marshal(run)
}

func (CBOR) Decode(data []byte) (*verify.Run, error) {
	var run verify.Run
	if err := cborDecMode.Unmarshal(data, &run); err != nil {
		return nil, err
	}

	return &run, nil
}

// Msgpack encodes runs as MessagePack.
type Msgpack struct{}

func (Msgpack) Name() string { return "msgpack" }

func (Msgpack) Encode(run *verify.Run) ([]byte, error) {
	return msgpack.Marshal(run)
}

func (Msgpack) Decode(data []byte) (*verify.Run, error) {
	var run verify.Run
	if err := msgpack.Unmarshal(data, &run); err != nil {
		return nil, err
	}

	return &run, nil
}

// JSON encodes runs as indented JSON.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Encode(run *verify.Run) ([]byte, error) {
	return json.MarshalIndent(run, "", "  ")
}

func (JSON) Decode(data []byte) (*verify.Run, error) {
	var run verify.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, err
	}

	return &run, nil
}

// ByName returns the codec named "cbor", "msgpack" or "json".
func ByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "cbor":
		return CBOR{}, nil
	case "msgpack", "msgp":
		return Msgpack{}, nil
	case "json":
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown report format %q", errs.ErrUnsupportedEncoding, name)
	}
}
