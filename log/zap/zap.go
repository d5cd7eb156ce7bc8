// Package zap adapts a *zap.Logger to verify.Logger.
package zap

import (
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/arloliu/zcurve/verify"
)

var _ verify.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

// New wraps l. A nil l logs nothing.
func New(l *zap.Logger) ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}

	return ZapLogger{L: l}
}

func (z ZapLogger) Debug(msg string, f verify.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f verify.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f verify.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f verify.Fields) { z.L.Error(msg, zf(f)...) }

// zf converts fields in key order so log lines are stable.
func zf(f verify.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for _, k := range slices.Sorted(maps.Keys(f)) {
		out = append(out, zap.Any(k, f[k]))
	}

	return out
}
