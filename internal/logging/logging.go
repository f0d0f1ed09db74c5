// Package logging builds the zap loggers used by the venndy command.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options control logger construction.
type Options struct {
	// Level is a zap level name such as "debug" or "info".
	Level string

	// Format is EncoderName for colored terminal output or "json".
	Format string

	// Writer receives log entries. It takes precedence over OutputPaths.
	Writer io.Writer

	// OutputPaths are zap sink URLs or file paths. Without a Writer or
	// OutputPaths logs go to stderr.
	OutputPaths []string
}

// New returns a logger configured by opts.
func New(opts Options) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	format := opts.Format
	switch format {
	case "":
		format = EncoderName
	case EncoderName, "json":
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if opts.Writer != nil {
		var enc zapcore.Encoder
		if format == EncoderName {
			enc = NewCLIEncoder(encoderConfig)
		} else {
			enc = zapcore.NewJSONEncoder(encoderConfig)
		}

		return zap.New(zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(opts.Writer)), level)), nil
	}

	Register()

	outputs := opts.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	cfg := zap.Config{
		Level:             level,
		Development:       false,
		DisableCaller:     format == EncoderName,
		DisableStacktrace: true,
		Encoding:          format,
		EncoderConfig:     encoderConfig,
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
	}

	return cfg.Build()
}
