package capture

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/matthewhilton/rtk/internal/config"
)

func TestReadUntilEOF(t *testing.T) {
	src := bytes.Repeat([]byte{0xD3, 0x00}, 5000)
	got, err := Read(context.Background(), bytes.NewReader(src), 1<<20, time.Second)
	require.NoError(t, err)
	require.Equal(t, src, got)
}

func TestReadLimit(t *testing.T) {
	src := bytes.Repeat([]byte{0x01}, 10000)
	got, err := Read(context.Background(), bytes.NewReader(src), 5000, time.Second)
	require.NoError(t, err)
	require.Len(t, got, 5000)
}

func TestReadTimeout(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	go func() {
		_, _ = pw.Write([]byte{0xD3, 0x00, 0x00})
	}()
	got, err := Read(context.Background(), pr, 1024, 100*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, []byte{0xD3, 0x00, 0x00}, got)
}

func TestReadError(t *testing.T) {
	boom := errors.New("line noise")
	r := io.MultiReader(bytes.NewReader([]byte{0x01, 0x02}), errReader{boom})
	got, err := Read(context.Background(), r, 1024, time.Second)
	require.ErrorIs(t, err, boom)
	require.Equal(t, []byte{0x01, 0x02}, got)
}

func TestOpenSerialNoDevice(t *testing.T) {
	_, err := OpenSerial(config.Serial{Baud: 9600})
	require.Error(t, err)
}

func TestReadIdleSourceBacksOff(t *testing.T) {
	var idle idleReader
	start := time.Now()
	got, err := Read(context.Background(), &idle, 1024, 100*time.Millisecond)
	require.NoError(t, err)
	require.Empty(t, got)
	require.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	require.Less(t, idle.calls.Load(), int64(50))
}

type errReader struct{ err error }

// idleReader behaves like a port with nothing to deliver.
type idleReader struct{ calls atomic.Int64 }

func (r *idleReader) Read([]byte) (int, error) {
	r.calls.Add(1)
	return 0, nil
}

func (e errReader) Read([]byte) (int, error) { return 0, e.err }
