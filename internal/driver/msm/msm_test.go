package msm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matthewhilton/rtk/internal/bits"
	"github.com/matthewhilton/rtk/internal/driver"
	"github.com/matthewhilton/rtk/internal/message"
	"github.com/matthewhilton/rtk/internal/testutil"
)

type F = testutil.Field

func mask(width int, ids ...int) F {
	var v uint64
	for _, id := range ids {
		v |= 1 << uint(width-id)
	}
	return F{Width: width, Value: v}
}

func fullHeader(number uint16, epoch uint64, sats, sigs []int, cells uint64, ncell int) []byte {
	return testutil.Pack(
		F{Width: 12, Value: uint64(number)},
		F{Width: 12, Value: 4001},
		F{Width: 30, Value: epoch},
		F{Width: 1, Value: 1},
		F{Width: 3, Value: 5},
		F{Width: 7, Value: 0},
		F{Width: 2, Value: 2},
		F{Width: 2, Value: 1},
		F{Width: 1, Value: 1},
		F{Width: 3, Value: 6},
		mask(64, sats...),
		mask(32, sigs...),
		F{Width: ncell, Value: cells},
		F{Width: 16, Value: 0xBEEF},
	)
}

func TestDecodeCoreHeader(t *testing.T) {
	payload := testutil.Pack(F{Width: 12, Value: 1077}, F{Width: 12, Value: 5}, F{Width: 30, Value: 123456})
	h, err := DecodeHeader(message.Lookup(1077), payload)
	require.NoError(t, err)
	require.Equal(t, uint16(1077), h.MessageNumber)
	require.Equal(t, uint16(5), h.StationID)
	require.Equal(t, uint32(123456), h.EpochTime)
	require.Equal(t, message.SystemGPS, h.System)
	require.Equal(t, 7, h.Level)
	require.False(t, h.Full)
	require.Nil(t, h.Satellites)
}

func TestDecodeFullHeader(t *testing.T) {
	payload := fullHeader(1074, 345600000, []int{2, 5, 31}, []int{2, 15}, 0b101101, 6)
	h, err := DecodeHeader(message.Lookup(1074), payload)
	require.NoError(t, err)
	require.True(t, h.Full)
	require.Equal(t, uint16(4001), h.StationID)
	require.Equal(t, uint32(345600000), h.EpochTime)
	require.True(t, h.MultipleMessage)
	require.Equal(t, uint8(5), h.IODS)
	require.Equal(t, uint8(2), h.ClockSteering)
	require.Equal(t, uint8(1), h.ExternalClock)
	require.True(t, h.Smoothing)
	require.Equal(t, uint8(6), h.SmoothingInterval)
	require.Equal(t, []int{2, 5, 31}, h.Satellites)
	require.Equal(t, []int{2, 15}, h.Signals)
	require.Equal(t, []bool{true, false, true, true, false, true}, h.Cells)
	require.Equal(t, 4, h.CellCount())

	fields := h.Fields()
	require.Equal(t, 4, fields["msm"])
	require.Equal(t, 4, fields["cells"])
	require.Equal(t, "GPS", fields["system"])
}

func TestDecodeGLONASSEpoch(t *testing.T) {
	epoch := uint64(3)<<27 | 43200000
	payload := testutil.Pack(F{Width: 12, Value: 1087}, F{Width: 12, Value: 1}, F{Width: 30, Value: epoch})
	h, err := DecodeHeader(message.Lookup(1087), payload)
	require.NoError(t, err)
	day, ms := h.GLONASSEpoch()
	require.Equal(t, uint8(3), day)
	require.Equal(t, uint32(43200000), ms)
	require.Equal(t, 3, h.Fields()["glonass_day"])
}

func TestDecodeTooManyCells(t *testing.T) {
	sats := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	sigs := []int{1, 2, 3, 4, 5, 6, 7, 8}
	payload := fullHeader(1077, 0, sats, sigs, 0, 64)
	_, err := DecodeHeader(message.Lookup(1077), payload)
	require.ErrorIs(t, err, ErrTooManyCells)
}

func TestDecodeTruncatedCellMask(t *testing.T) {
	payload := fullHeader(1077, 0, []int{1, 2, 3, 4, 5, 6, 7, 8}, []int{1, 2, 3, 4, 5, 6, 7, 8}, 0, 0)
	_, err := DecodeHeader(message.Lookup(1077), payload[:22])
	require.ErrorIs(t, err, bits.ErrOutOfRange)
}

func TestDecodeShortPayload(t *testing.T) {
	_, err := DecodeHeader(message.Lookup(1077), []byte{0x43, 0x50, 0x05, 0x00})
	require.ErrorIs(t, err, bits.ErrOutOfRange)
}

func TestRegistered(t *testing.T) {
	for _, number := range []uint16{1071, 1077, 1087, 1097, 1107, 1117, 1127} {
		drv, err := driver.Lookup(message.Lookup(number).Kind)
		require.NoError(t, err, "number %d", number)
		require.Equal(t, "msm", drv.Name())
	}
}
