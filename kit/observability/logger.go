package observability

import (
	"go.uber.org/zap"
)

// Logger is a key/value logger backed by zap.
type Logger struct {
	base *zap.Logger
	s    *zap.SugaredLogger
}

func NewLogger() *Logger {
	z, err := zap.NewProduction()
	if err != nil {
		z = zap.NewNop()
	}
	return NewLoggerFrom(z)
}

func NewLoggerFrom(z *zap.Logger) *Logger {
	return &Logger{base: z, s: z.Sugar()}
}

func NewNopLogger() *Logger {
	return NewLoggerFrom(zap.NewNop())
}

func (lg *Logger) Info(msg string, kv ...any) {
	lg.s.Infow(msg, kv...)
}

func (lg *Logger) Error(msg string, kv ...any) {
	lg.s.Errorw(msg, kv...)
}

// RedirectStdLog sends the standard library logger output to lg at info
// level. The returned func restores the previous output.
func (lg *Logger) RedirectStdLog() func() {
	return zap.RedirectStdLog(lg.base)
}

func (lg *Logger) Sync() error {
	return lg.base.Sync()
}
