package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultOutput = "stderr"

// Options configures the process logger.
type Options struct {
	JSON  bool
	Debug bool
	// Output is a zap sink: stderr, stdout or a file path. Logs go to stderr by default
	// so that diffs and suggestions printed on stdout stay clean.
	Output string
}

// New builds the process logger. Caller locations are only reported in debug mode.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"
	output := defaultOutput

	if opts.JSON {
		encoding = "json"
	}
	if opts.Debug {
		level = zapcore.DebugLevel
	}
	if opts.Output != "" {
		output = opts.Output
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey: "step",

		LevelKey:    "level",
		EncodeLevel: zapcore.LowercaseLevelEncoder,

		TimeKey:    "time",
		EncodeTime: zapcore.RFC3339TimeEncoder,

		EncodeDuration: zapcore.StringDurationEncoder,
	}
	if opts.Debug {
		encoderConfig.CallerKey = "caller"
		encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}
	if !opts.JSON {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	}

	cfg := zap.Config{
		Encoding:          encoding,
		Level:             zap.NewAtomicLevelAt(level),
		DisableStacktrace: !opts.Debug,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{defaultOutput},
		EncoderConfig:     encoderConfig,
	}

	return cfg.Build()
}
