// Package logging builds the diagnostic logger. Diagnostics go to stderr
// only — stdout belongs to the verdict protocol — and stay silent unless
// HOOKGATE_DEBUG is set, since hosts run the binary on every tool call.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns the process logger: a nop logger by default, a development
// console logger on stderr when HOOKGATE_DEBUG=1.
func New() *zap.Logger {
	if os.Getenv("HOOKGATE_DEBUG") != "1" {
		return zap.NewNop()
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}
