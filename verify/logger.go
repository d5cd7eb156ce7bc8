package verify

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Logger is a small leveled logger. Adapters for zap, logrus and slog live in
// the log/ packages.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

// NopLogger discards everything. It is the default.
type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}
