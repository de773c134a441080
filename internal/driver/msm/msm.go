// Package msm decodes the header of RTCM3 multiple signal messages (MSM1-7)
// for every constellation.
package msm

import (
	"errors"
	"fmt"

	"github.com/matthewhilton/rtk/internal/bits"
	"github.com/matthewhilton/rtk/internal/driver"
	"github.com/matthewhilton/rtk/internal/message"
)

const (
	// CoreHeaderBits covers message number, station id and epoch time.
	CoreHeaderBits = 12 + 12 + 30
	// HeaderBits is the fixed part of the full header, before the cell mask.
	HeaderBits = 169

	maxCells      = 64
	glonassMsBits = 27
)

// ErrTooManyCells is returned when the satellite and signal masks describe
// more than 64 cells.
var ErrTooManyCells = errors.New("msm: satellite x signal count exceeds 64")

func init() {
	var kinds []message.Kind
	for k := message.KindGPSMSM1; k <= message.KindBeiDouMSM7; k++ {
		kinds = append(kinds, k)
	}
	driver.Register(Driver{}, kinds...)
}

// Header is the decoded MSM header. Fields after EpochTime are only set
// when Full is true.
type Header struct {
	MessageNumber uint16
	StationID     uint16
	// EpochTime is the raw 30-bit epoch field. For GLONASS it packs a 3-bit
	// day of week and 27 bits of milliseconds of day.
	EpochTime uint32
	System    message.System
	Level     int

	Full              bool
	MultipleMessage   bool
	IODS              uint8
	ClockSteering     uint8
	ExternalClock     uint8
	Smoothing         bool
	SmoothingInterval uint8
	Satellites        []int
	Signals           []int
	// Cells holds one flag per satellite/signal pair, satellite major.
	Cells []bool
}

// GLONASSEpoch splits a GLONASS epoch time into day of week and
// milliseconds of day.
func (h Header) GLONASSEpoch() (day uint8, millis uint32) {
	return uint8(h.EpochTime >> glonassMsBits), h.EpochTime & (1<<glonassMsBits - 1)
}

// CellCount returns the number of populated cells.
func (h Header) CellCount() int {
	n := 0
	for _, c := range h.Cells {
		if c {
			n++
		}
	}
	return n
}

// Fields implements driver.Info.
func (h Header) Fields() map[string]any {
	fields := map[string]any{
		"message_number":       int(h.MessageNumber),
		"reference_station_id": int(h.StationID),
		"epoch_time":           int(h.EpochTime),
		"system":               h.System.String(),
		"msm":                  h.Level,
	}
	if h.System == message.SystemGLONASS {
		day, ms := h.GLONASSEpoch()
		fields["glonass_day"] = int(day)
		fields["glonass_ms"] = int(ms)
	}
	if !h.Full {
		return fields
	}
	fields["multiple_message"] = h.MultipleMessage
	fields["iods"] = int(h.IODS)
	fields["clock_steering"] = int(h.ClockSteering)
	fields["external_clock"] = int(h.ExternalClock)
	fields["smoothing"] = h.Smoothing
	fields["smoothing_interval"] = int(h.SmoothingInterval)
	fields["satellites"] = h.Satellites
	fields["signals"] = h.Signals
	fields["cells"] = h.CellCount()
	return fields
}

// Driver decodes MSM headers.
type Driver struct{}

// Name returns the canonical driver name.
func (Driver) Name() string { return "msm" }

// Decode implements driver.Decoder.
func (Driver) Decode(typ message.Type, payload []byte) (driver.Info, error) {
	h, err := DecodeHeader(typ, payload)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// DecodeHeader reads the header at the start of an MSM payload. Payloads
// shorter than the full header yield only the core fields.
func DecodeHeader(typ message.Type, payload []byte) (Header, error) {
	r := bits.NewReader(payload, 0)
	h := Header{
		MessageNumber: uint16(r.Uint(12)),
		StationID:     uint16(r.Uint(12)),
		EpochTime:     uint32(r.Uint(30)),
		System:        typ.Kind.System(),
		Level:         typ.Kind.MSM(),
	}
	if err := r.Err(); err != nil {
		return Header{}, fmt.Errorf("msm header: %w", err)
	}
	if r.Remaining() < HeaderBits-CoreHeaderBits {
		return h, nil
	}
	h.Full = true
	h.MultipleMessage = r.Bool()
	h.IODS = uint8(r.Uint(3))
	r.Skip(7)
	h.ClockSteering = uint8(r.Uint(2))
	h.ExternalClock = uint8(r.Uint(2))
	h.Smoothing = r.Bool()
	h.SmoothingInterval = uint8(r.Uint(3))
	for id := 1; id <= 64; id++ {
		if r.Bool() {
			h.Satellites = append(h.Satellites, id)
		}
	}
	for id := 1; id <= 32; id++ {
		if r.Bool() {
			h.Signals = append(h.Signals, id)
		}
	}
	ncell := len(h.Satellites) * len(h.Signals)
	if ncell > maxCells {
		return Header{}, fmt.Errorf("%w: nsat=%d nsig=%d", ErrTooManyCells, len(h.Satellites), len(h.Signals))
	}
	h.Cells = make([]bool, ncell)
	for i := range h.Cells {
		h.Cells[i] = r.Bool()
	}
	if err := r.Err(); err != nil {
		return Header{}, fmt.Errorf("msm cell mask: %w", err)
	}
	return h, nil
}
