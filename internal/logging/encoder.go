package logging

import (
	"bytes"
	"sync"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// EncoderName is the name the colored encoder is registered under with zap.
const EncoderName = "cli"

const timeFormat = "2006-01-02 15:04:05 MST"

var (
	bufPool    = buffer.NewPool()
	levelColor = map[zapcore.Level]color.Attribute{
		zapcore.DebugLevel:  color.FgBlue,
		zapcore.InfoLevel:   color.FgGreen,
		zapcore.WarnLevel:   color.FgYellow,
		zapcore.ErrorLevel:  color.FgRed,
		zapcore.DPanicLevel: color.FgRed,
		zapcore.PanicLevel:  color.FgRed,
		zapcore.FatalLevel:  color.FgRed,
	}
	registerOnce sync.Once
)

// Register makes the colored encoder available to zap.Config under
// EncoderName. It is safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		// RegisterEncoder only fails on duplicate names, which the Once
		// rules out.
		_ = zap.RegisterEncoder(EncoderName, func(cfg zapcore.EncoderConfig) (zapcore.Encoder, error) {
			return NewCLIEncoder(cfg), nil
		})
	})
}

// cliEncoder prints a colored, human readable header for every entry and
// hands context fields to an embedded JSON encoder, which renders them as a
// single object after the message.
type cliEncoder struct {
	zapcore.Encoder

	cfg *zapcore.EncoderConfig
}

// NewCLIEncoder returns an encoder for terminals. The time, level, name,
// caller and message keys of cfg only decide whether that part of the entry
// is printed.
func NewCLIEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	if cfg.SkipLineEnding {
		cfg.LineEnding = ""
	} else if cfg.LineEnding == "" {
		cfg.LineEnding = zapcore.DefaultLineEnding
	}

	fields := cfg
	fields.TimeKey = ""
	fields.LevelKey = ""
	fields.NameKey = ""
	fields.CallerKey = ""
	fields.FunctionKey = ""
	fields.MessageKey = ""
	fields.StacktraceKey = ""
	fields.SkipLineEnding = true

	return &cliEncoder{
		Encoder: zapcore.NewJSONEncoder(fields),
		cfg:     &cfg,
	}
}

func (enc *cliEncoder) Clone() zapcore.Encoder {
	return &cliEncoder{
		Encoder: enc.Encoder.Clone(),
		cfg:     enc.cfg,
	}
}

func (enc *cliEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line := bufPool.Get()

	if enc.cfg.TimeKey != "" {
		encodeTimestamp(line, entry.Time)
	}

	if enc.cfg.LevelKey != "" && enc.cfg.EncodeLevel != nil {
		encodeLevel(line, entry.Level)
	}

	if entry.LoggerName != "" && enc.cfg.NameKey != "" {
		line.AppendString(color.New(color.FgHiBlack).Sprint(entry.LoggerName))
		line.AppendByte(' ')
	}

	if entry.Caller.Defined && enc.cfg.CallerKey != "" {
		line.AppendString(color.New(color.FgHiBlack).Sprintf("(%s)", entry.Caller.TrimmedPath()))
		line.AppendByte(' ')
	}

	if enc.cfg.MessageKey != "" {
		line.AppendString(color.New(color.FgHiWhite).Sprint(entry.Message))
		line.AppendByte(' ')
	}

	obj, err := enc.Encoder.EncodeEntry(zapcore.Entry{}, fields)
	if err != nil {
		line.Free()
		return nil, err
	}

	if b := bytes.TrimSpace(obj.Bytes()); len(b) > 0 && !bytes.Equal(b, []byte("{}")) {
		line.AppendString(color.New(color.FgHiBlack).Sprint(string(b)))
	}
	obj.Free()

	if entry.Stack != "" && enc.cfg.StacktraceKey != "" {
		line.AppendString(zapcore.DefaultLineEnding)
		line.AppendString(color.New(color.FgRed).Sprint(entry.Stack))
	}

	line.AppendString(enc.cfg.LineEnding)

	return line, nil
}

func encodeTimestamp(buf *buffer.Buffer, t time.Time) {
	buf.AppendString(color.New(color.FgWhite).Sprintf("[%s]", t.Format(timeFormat)))
	buf.AppendByte(' ')
}

func encodeLevel(buf *buffer.Buffer, level zapcore.Level) {
	// INFO is padded to line up with DEBUG and ERROR.
	if level == zapcore.InfoLevel {
		buf.AppendString(color.New(levelColor[level]).Sprint(level.CapitalString() + " "))
	} else {
		buf.AppendString(color.New(levelColor[level]).Sprint(level.CapitalString()))
	}
	buf.AppendByte(' ')
}
