package message

import (
	"sync"

	"github.com/matthewhilton/rtk/internal/bits"
)

// NumberBits is the width of the message number at the start of a payload.
const NumberBits = 12

var (
	catMu   sync.RWMutex
	catalog = map[uint16]Kind{
		1001: KindGPSL1RTK,
		1002: KindGPSExtendedL1RTK,
		1003: KindGPSL1L2RTK,
		1004: KindGPSExtendedL1L2RTK,
		1005: KindStationaryRTKReferenceARP,
		1006: KindStationaryRTKReferenceARPWithHeight,
		1007: KindAntennaDescriptor,
		1008: KindAntennaDescriptorAndSerialNumber,
		1009: KindGLONASSL1RTK,
		1010: KindGLONASSExtendedL1RTK,
		1011: KindGLONASSL1L2RTK,
		1012: KindGLONASSExtendedL1L2RTK,
		1013: KindSystemParameters,
		1019: KindGPSEphemeris,
		1020: KindGLONASSEphemeris,
		1029: KindUnicodeText,
		1033: KindReceiverAndAntennaDescriptors,
		1042: KindBeiDouEphemeris,
		1044: KindQZSSEphemeris,
		1045: KindGalileoFNAVEphemeris,
		1046: KindGalileoINAVEphemeris,
		1230: KindGLONASSCodePhaseBiases,
		4072: KindUbloxProprietary,
	}
)

func init() {
	base := []struct {
		number uint16
		first  Kind
	}{
		{1071, KindGPSMSM1},
		{1081, KindGLONASSMSM1},
		{1091, KindGalileoMSM1},
		{1101, KindSBASMSM1},
		{1111, KindQZSSMSM1},
		{1121, KindBeiDouMSM1},
	}
	for _, b := range base {
		for i := 0; i < 7; i++ {
			catalog[b.number+uint16(i)] = b.first + Kind(i)
		}
	}
}

// Register adds or replaces the kind a message number maps to.
func Register(number uint16, kind Kind) {
	catMu.Lock()
	defer catMu.Unlock()
	catalog[number] = kind
}

// Lookup maps a message number to its type. Numbers missing from the
// catalog yield KindUnknown and keep the number.
func Lookup(number uint16) Type {
	catMu.RLock()
	defer catMu.RUnlock()
	kind, ok := catalog[number]
	if !ok {
		kind = KindUnknown
	}
	return Type{Kind: kind, Number: number}
}

// Number extracts the message number from a payload.
func Number(payload []byte) (uint16, error) {
	v, err := bits.Uint(payload, 0, NumberBits)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

// Classify extracts the message number from a payload and maps it through
// the catalog.
func Classify(payload []byte) (Type, error) {
	number, err := Number(payload)
	if err != nil {
		return Type{}, err
	}
	return Lookup(number), nil
}
