package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	scierrors "github.com/YuminosukeSato/scibma/pkg/errors"
)

// SetupLogger installs a JSON slog handler on stdout as slog's default and
// resets the package default Logger to it.
func SetupLogger(loglevel string) error {
	return SetupLoggerTo(os.Stdout, loglevel)
}

// SetupLoggerTo is SetupLogger with an explicit destination.
func SetupLoggerTo(w io.Writer, loglevel string) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     level,
		// Replace attributes to convert to CloudLogging format.
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr.Key = "severity"
			case slog.MessageKey:
				attr.Key = "message"
			case slog.SourceKey:
				attr.Key = "logging.googleapis.com/sourceLocation"
			}
			return attr
		},
	}
	handler := slog.NewJSONHandler(w, &ops)
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))
	SetLogger(nil)
	scierrors.SetZerologWarnFunc(nil)
	return nil
}

// ToLogLevel parses "debug", "info", "warn" or "error".
func ToLogLevel(level string) (slog.Level, error) {
	switch level {
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %q", level)
	}
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger adapts an *slog.Logger to Logger. A nil logger means
// slog.Default() at the time of each call.
func NewSlogLogger(l *slog.Logger) Logger {
	return &slogLogger{l: l}
}

func (s *slogLogger) logger() *slog.Logger {
	if s.l == nil {
		return slog.Default()
	}
	return s.l
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.logger().Debug(msg, fields...) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.logger().Info(msg, fields...) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.logger().Warn(msg, leadingErr(fields)...) }

func (s *slogLogger) Error(msg string, fields ...any) {
	s.logger().Error(msg, leadingErr(fields)...)
}

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.logger().With(fields...)}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.logger().Enabled(ctx, slog.Level(level))
}

// leadingErr turns an error passed as the first field into ErrAttr so that
// ErrFmtHandler can attach its stack trace.
func leadingErr(fields []any) []any {
	if len(fields) == 0 {
		return fields
	}
	if err, ok := fields[0].(error); ok {
		out := make([]any, 0, len(fields))
		out = append(out, ErrAttr(err))
		return append(out, fields[1:]...)
	}
	return fields
}
