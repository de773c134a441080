package options

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

type loggerKey struct{}

type strictKey struct{}

var discard = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}()

// WithLogger stores the logger used by the decode pipeline.
func WithLogger(ctx context.Context, log logrus.FieldLogger) context.Context {
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, log)
}

// Logger retrieves the logger from context, or one that discards
// everything.
func Logger(ctx context.Context) logrus.FieldLogger {
	if v := ctx.Value(loggerKey{}); v != nil {
		if log, ok := v.(logrus.FieldLogger); ok {
			return log
		}
	}
	return discard
}

// WithStrictReserved makes the scanner reject frames whose reserved length
// bits are set.
func WithStrictReserved(ctx context.Context, strict bool) context.Context {
	return context.WithValue(ctx, strictKey{}, strict)
}

// StrictReserved reports whether strict reserved-bit checking is enabled.
func StrictReserved(ctx context.Context) bool {
	strict, _ := ctx.Value(strictKey{}).(bool)
	return strict
}
