package rtcm3

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/matthewhilton/rtk/internal/options"
)

// AnalyzeOptions configures scanning and decoding.
type AnalyzeOptions struct {
	// StrictReserved rejects frames whose reserved length bits are set.
	StrictReserved bool
	// Logger receives debug entries for rejected frames and scan totals.
	Logger logrus.FieldLogger
}

func (opts AnalyzeOptions) toInternal(ctx context.Context) context.Context {
	ctx = options.WithLogger(ctx, opts.Logger)
	if opts.StrictReserved {
		ctx = options.WithStrictReserved(ctx, true)
	}
	return ctx
}
