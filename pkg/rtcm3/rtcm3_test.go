package rtcm3

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/matthewhilton/rtk/internal/bits"
	"github.com/matthewhilton/rtk/internal/driver"
	"github.com/matthewhilton/rtk/internal/message"
	"github.com/matthewhilton/rtk/internal/testutil"
)

type F = testutil.Field

func TestDecodeHex(t *testing.T) {
	raw := " |D300_133E D7D3| "
	data, err := decodeHex(raw)
	require.NoError(t, err)
	require.Len(t, data, 6)

	data, err = decodeHex("0xd3")
	require.NoError(t, err)
	require.Equal(t, []byte{0xD3}, data)

	data, err = decodeHex("d3:00-13\n3e")
	require.NoError(t, err)
	require.Equal(t, []byte{0xD3, 0x00, 0x13, 0x3E}, data)
}

func TestDecodeHexOddLength(t *testing.T) {
	_, err := decodeHex("ABC")
	require.Error(t, err)
	_, err = decodeHex("ZZ")
	require.Error(t, err)
}

func TestAnalyzeTwoFrames(t *testing.T) {
	unknown := testutil.Frame(testutil.Pack(F{Width: 12, Value: 1807}, F{Width: 20, Value: 0xFFFFF}))
	msm7 := testutil.Frame(testutil.Pack(F{Width: 12, Value: 1077}, F{Width: 12, Value: 5}, F{Width: 30, Value: 123456}))
	buf := append(append([]byte(nil), unknown...), msm7...)

	analysis, err := Analyze(context.Background(), buf)
	require.NoError(t, err)
	require.Len(t, analysis.Results, 2)

	first := analysis.Results[0]
	require.NoError(t, first.Err)
	require.Equal(t, message.Type{Kind: message.KindUnknown, Number: 1807}, first.Type)
	require.IsType(t, driver.Unparsed{}, first.Info)
	require.False(t, first.Parsed())

	second := analysis.Results[1]
	require.NoError(t, second.Err)
	require.Equal(t, message.KindGPSMSM7, second.Type.Kind)
	require.Equal(t, len(unknown), second.Offset)
	require.True(t, second.Parsed())
	fs := second.FieldSet()
	number, err := fs.Int("message_number")
	require.NoError(t, err)
	require.Equal(t, 1077, number)
	station, err := fs.Int("reference_station_id")
	require.NoError(t, err)
	require.Equal(t, 5, station)
	epoch, err := fs.Int("epoch_time")
	require.NoError(t, err)
	require.Equal(t, 123456, epoch)
	require.Contains(t, second.String(), `"type": "GPSMSM7"`)
}

func TestAnalyzeDecodeErrorDoesNotStopScan(t *testing.T) {
	short := testutil.Frame([]byte{0x43})
	truncatedMSM := testutil.Frame([]byte{0x43, 0x50, 0x05})
	station := testutil.LoadHexBytes(t, "msg1005.hex")
	buf := append(append(append([]byte(nil), short...), truncatedMSM...), station...)

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	analysis, err := AnalyzeWithOptions(context.Background(), buf, AnalyzeOptions{Logger: log})
	require.NoError(t, err)
	require.Len(t, analysis.Results, 3)
	require.ErrorIs(t, analysis.Results[0].Err, bits.ErrOutOfRange)
	require.ErrorIs(t, analysis.Results[1].Err, bits.ErrOutOfRange)
	require.Equal(t, message.KindGPSMSM7, analysis.Results[1].Type.Kind)
	require.Nil(t, analysis.Results[1].Fields())
	require.NoError(t, analysis.Results[2].Err)
	require.True(t, analysis.Results[2].Parsed())
	require.Contains(t, analysis.Results[0].String(), "error")

	require.Len(t, hook.Entries, 3)
	require.Equal(t, "scan complete", hook.LastEntry().Message)
	require.Equal(t, 3, hook.LastEntry().Data["frames"])
}

func TestAnalyzeStrictReserved(t *testing.T) {
	payload := testutil.Pack(F{Width: 12, Value: 1077}, F{Width: 12, Value: 5}, F{Width: 30, Value: 1})
	raw := testutil.FrameWithHeader(0x0400|uint16(len(payload)), payload)

	analysis, err := Analyze(context.Background(), raw)
	require.NoError(t, err)
	require.Len(t, analysis.Results, 1)

	analysis, err = AnalyzeWithOptions(context.Background(), raw, AnalyzeOptions{StrictReserved: true})
	require.NoError(t, err)
	require.Empty(t, analysis.Results)
	require.Equal(t, 1, analysis.Stats.ReservedSet)
}

func TestAnalyzeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Analyze(ctx, testutil.LoadHexBytes(t, "msg1005.hex"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeHexNoFrames(t *testing.T) {
	analysis, err := AnalyzeHex(context.Background(), "00112233")
	require.NoError(t, err)
	require.Empty(t, analysis.Results)
	require.Equal(t, 4, analysis.Stats.Skipped)
}
