// Package slog adapts a *slog.Logger to verify.Logger.
package slog

import (
	"context"
	stdslog "log/slog"
	"maps"
	"slices"

	"github.com/arloliu/zcurve/verify"
)

var _ verify.Logger = Logger{}

type Logger struct{ L *stdslog.Logger }

// New wraps l; nil uses slog.Default().
func New(l *stdslog.Logger) Logger {
	if l == nil {
		l = stdslog.Default()
	}

	return Logger{L: l}
}

func (s Logger) Debug(msg string, f verify.Fields) {
	s.L.LogAttrs(context.Background(), stdslog.LevelDebug, msg, attrs(f)...)
}
func (s Logger) Info(msg string, f verify.Fields) {
	s.L.LogAttrs(context.Background(), stdslog.LevelInfo, msg, attrs(f)...)
}
func (s Logger) Warn(msg string, f verify.Fields) {
	s.L.LogAttrs(context.Background(), stdslog.LevelWarn, msg, attrs(f)...)
}
func (s Logger) Error(msg string, f verify.Fields) {
	s.L.LogAttrs(context.Background(), stdslog.LevelError, msg, attrs(f)...)
}

func attrs(f verify.Fields) []stdslog.Attr {
	if len(f) == 0 {
		return nil
	}
	out := make([]stdslog.Attr, 0, len(f))
	for _, k := range slices.Sorted(maps.Keys(f)) {
		out = append(out, stdslog.Any(k, f[k]))
	}

	return out
}
