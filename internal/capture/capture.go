// Package capture fills a buffer from a live source so it can be scanned.
package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	serial "github.com/tarm/goserial"

	"github.com/matthewhilton/rtk/internal/config"
)

const (
	chunkSize = 4096
	// idleBackoff is the pause after a read that returned no data.
	idleBackoff = 10 * time.Millisecond
)

// OpenSerial opens the receiver port described by cfg.
func OpenSerial(cfg config.Serial) (io.ReadCloser, error) {
	if cfg.Device == "" {
		return nil, errors.New("serial device not set")
	}
	port, err := serial.OpenPort(&serial.Config{Name: cfg.Device, Baud: cfg.Baud})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Device, err)
	}
	return port, nil
}

// Read collects up to limit bytes from r. It stops early at EOF, when
// timeout elapses or when ctx is done, returning whatever was read. Only
// read errors other than EOF are reported.
func Read(ctx context.Context, r io.Reader, limit int, timeout time.Duration) ([]byte, error) {
	type chunk struct {
		data []byte
		err  error
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chunks := make(chan chunk)
	go func() {
		defer close(chunks)
		remaining := limit
		for remaining > 0 {
			buf := make([]byte, min(chunkSize, remaining))
			n, err := r.Read(buf)
			if n == 0 && err == nil {
				select {
				case <-time.After(idleBackoff):
					continue
				case <-ctx.Done():
					return
				}
			}
			remaining -= n
			select {
			case chunks <- chunk{data: buf[:n], err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	out := make([]byte, 0, min(limit, 64*1024))
	for {
		select {
		case c, ok := <-chunks:
			if !ok {
				return out, nil
			}
			out = append(out, c.data...)
			if c.err != nil {
				if errors.Is(c.err, io.EOF) {
					return out, nil
				}
				return out, fmt.Errorf("read capture: %w", c.err)
			}
		case <-ctx.Done():
			return out, nil
		}
	}
}
