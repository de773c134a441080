package driver

import (
	"errors"
	"fmt"
	"sync"

	"github.com/matthewhilton/rtk/internal/message"
)

// ErrNoDecoder is returned by Lookup when no decoder handles a kind.
var ErrNoDecoder = errors.New("no decoder registered")

// Info is the structured content of one decoded message.
type Info interface {
	Fields() map[string]any
}

// Decoder extracts the fields of the message kinds it is registered for.
type Decoder interface {
	Name() string
	Decode(typ message.Type, payload []byte) (Info, error)
}

// Unparsed marks a message whose envelope was valid but whose content has
// no decoder. It is a normal outcome, not an error.
type Unparsed struct {
	Number  uint16
	Payload []byte
}

// Fields implements Info.
func (u Unparsed) Fields() map[string]any {
	return map[string]any{
		"message_number": int(u.Number),
		"payload_bytes":  len(u.Payload),
		"unparsed":       true,
	}
}

var (
	regMu    sync.RWMutex
	registry = map[message.Kind]Decoder{}
)

// Register stores the decoder for each of the given kinds.
func Register(drv Decoder, kinds ...message.Kind) {
	regMu.Lock()
	defer regMu.Unlock()
	for _, k := range kinds {
		registry[k] = drv
	}
}

// Lookup returns the decoder registered for kind.
func Lookup(kind message.Kind) (Decoder, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	if drv, ok := registry[kind]; ok {
		return drv, nil
	}
	return nil, fmt.Errorf("%w for %s", ErrNoDecoder, kind)
}

// Decode runs the registered decoder for typ, or returns Unparsed when the
// kind has none.
func Decode(typ message.Type, payload []byte) (Info, error) {
	drv, err := Lookup(typ.Kind)
	if err != nil {
		return Unparsed{Number: typ.Number, Payload: append([]byte(nil), payload...)}, nil
	}
	info, err := drv.Decode(typ, payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", drv.Name(), err)
	}
	return info, nil
}
