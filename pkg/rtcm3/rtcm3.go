package rtcm3

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/matthewhilton/rtk/internal/driver"
	_ "github.com/matthewhilton/rtk/internal/driver/msm"     // register driver
	_ "github.com/matthewhilton/rtk/internal/driver/station" // register driver
	"github.com/matthewhilton/rtk/internal/frame"
	"github.com/matthewhilton/rtk/internal/message"
	"github.com/matthewhilton/rtk/internal/options"
)

// Result is one verified frame with its classification and decoded content.
type Result struct {
	Offset int
	Length int
	Type   message.Type
	// Info is the decoded content, driver.Unparsed when the kind has no
	// decoder, or nil when Err is set.
	Info driver.Info
	Err  error
}

// Analysis is the outcome of scanning one buffer.
type Analysis struct {
	Results []Result
	Stats   frame.Stats
}

// Parsed reports whether a decoder extracted the message content.
func (r Result) Parsed() bool {
	if r.Err != nil || r.Info == nil {
		return false
	}
	_, unparsed := r.Info.(driver.Unparsed)
	return !unparsed
}

// Fields returns the decoded fields, or nil when decoding failed.
func (r Result) Fields() map[string]any {
	if r.Info == nil {
		return nil
	}
	return r.Info.Fields()
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	summary := map[string]any{
		"offset":         r.Offset,
		"payload_length": r.Length,
		"message_number": int(r.Type.Number),
		"type":           r.Type.String(),
	}
	if r.Err != nil {
		summary["error"] = r.Err.Error()
	}
	if fields := r.Fields(); len(fields) > 0 {
		summary["fields"] = fields
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Sprintf("type: %s offset:%d length:%d (marshal error: %v)", r.Type, r.Offset, r.Length, err)
	}
	return string(data)
}

// Analyze scans data for RTCM3 frames and decodes each one.
func Analyze(ctx context.Context, data []byte) (Analysis, error) {
	return AnalyzeWithOptions(ctx, data, AnalyzeOptions{})
}

// AnalyzeWithOptions scans data with custom options. A frame that fails to
// classify or decode carries its error in Result.Err and the scan goes on.
// Results found before ctx is cancelled are returned with ctx.Err().
func AnalyzeWithOptions(ctx context.Context, data []byte, opts AnalyzeOptions) (Analysis, error) {
	ctx = opts.toInternal(ctx)
	log := options.Logger(ctx)
	scanner := frame.NewScanner(data, frame.Options{StrictReserved: options.StrictReserved(ctx)})

	var analysis Analysis
	for scanner.Next() {
		if err := ctx.Err(); err != nil {
			analysis.Stats = scanner.Stats()
			return analysis, err
		}
		analysis.Results = append(analysis.Results, decodeFrame(scanner.Frame(), log))
	}
	analysis.Stats = scanner.Stats()
	log.WithFields(logrus.Fields{
		"bytes":        len(data),
		"frames":       analysis.Stats.Frames,
		"skipped":      analysis.Stats.Skipped,
		"truncated":    analysis.Stats.Truncated,
		"bad_checksum": analysis.Stats.BadChecksum,
		"reserved_set": analysis.Stats.ReservedSet,
	}).Debug("scan complete")
	return analysis, nil
}

// AnalyzeHex decodes a hex string and analyzes the resulting bytes.
func AnalyzeHex(ctx context.Context, raw string) (Analysis, error) {
	return AnalyzeHexWithOptions(ctx, raw, AnalyzeOptions{})
}

// AnalyzeHexWithOptions decodes a hex string and analyzes it with options.
func AnalyzeHexWithOptions(ctx context.Context, raw string, opts AnalyzeOptions) (Analysis, error) {
	data, err := decodeHex(raw)
	if err != nil {
		return Analysis{}, err
	}
	return AnalyzeWithOptions(ctx, data, opts)
}

func decodeFrame(f frame.Frame, log logrus.FieldLogger) Result {
	result := Result{Offset: f.Offset, Length: f.Length}
	entry := log.WithField("offset", f.Offset)
	typ, err := message.Classify(f.Payload)
	if err != nil {
		entry.WithError(err).Debug("cannot classify frame")
		result.Err = fmt.Errorf("classify frame at %d: %w", f.Offset, err)
		return result
	}
	result.Type = typ
	info, err := driver.Decode(typ, f.Payload)
	if err != nil {
		entry.WithError(err).WithField("type", typ.String()).Debug("cannot decode frame")
		result.Err = fmt.Errorf("decode %s at %d: %w", typ, f.Offset, err)
		return result
	}
	result.Info = info
	return result
}

// hexSeparators may appear between digits of hex input.
const hexSeparators = "|_:-"

func decodeHex(input string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune(hexSeparators, r) {
			return -1
		}
		return r
	}, input)
	if len(clean) > 1 && clean[0] == '0' && (clean[1] == 'x' || clean[1] == 'X') {
		clean = clean[2:]
	}
	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("decode hex input: %w", err)
	}
	return data, nil
}
