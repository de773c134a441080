package message

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matthewhilton/rtk/internal/bits"
	"github.com/matthewhilton/rtk/internal/testutil"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		number uint16
		kind   Kind
		name   string
	}{
		{1077, KindGPSMSM7, "GPSMSM7"},
		{1087, KindGLONASSMSM7, "GLONASSMSM7"},
		{1097, KindGalileoMSM7, "GalileoMSM7"},
		{1117, KindQZSSMSM7, "QZSSMSM7"},
		{1127, KindBeiDouMSM7, "BeiDouMSM7"},
		{1074, KindGPSMSM4, "GPSMSM4"},
		{1101, KindSBASMSM1, "SBASMSM1"},
		{1004, KindGPSExtendedL1L2RTK, "GPSExtendedL1AndL2RTKObservables"},
		{1005, KindStationaryRTKReferenceARP, "StationaryRTKReferenceStationARP"},
		{1006, KindStationaryRTKReferenceARPWithHeight, "StationaryRTKReferenceStationARPWithAntennaHeight"},
		{1008, KindAntennaDescriptorAndSerialNumber, "AntennaDescriptorAndSerialNumber"},
		{1033, KindReceiverAndAntennaDescriptors, "ReceiverWithAntennaDescriptors"},
		{1042, KindBeiDouEphemeris, "BeiDouEphemeris"},
		{1046, KindGalileoINAVEphemeris, "GalileoEphemeris"},
		{1230, KindGLONASSCodePhaseBiases, "GLONASSL1AndL2CodePhaseBiases"},
	}
	for _, tc := range cases {
		payload := testutil.Pack(testutil.Field{Width: 12, Value: uint64(tc.number)}, testutil.Field{Width: 4, Value: 0xF})
		typ, err := Classify(payload)
		require.NoError(t, err)
		require.Equal(t, tc.kind, typ.Kind, "number %d", tc.number)
		require.Equal(t, tc.number, typ.Number)
		require.Equal(t, tc.name, typ.String())
		require.True(t, typ.Known())
	}
}

func TestClassifyUnknown(t *testing.T) {
	payload := testutil.Pack(testutil.Field{Width: 12, Value: 9999 & 0xFFF})
	typ, err := Classify(payload)
	require.NoError(t, err)
	require.Equal(t, Type{Kind: KindUnknown, Number: 9999 & 0xFFF}, typ)
	require.False(t, typ.Known())

	require.Equal(t, "Unknown<value: 9999>", Lookup(9999).String())
	require.Equal(t, KindUnknown, Lookup(9999).Kind)
	require.Equal(t, uint16(9999), Lookup(9999).Number)
}

func TestClassifyShortPayload(t *testing.T) {
	_, err := Classify(nil)
	require.ErrorIs(t, err, bits.ErrOutOfRange)
	_, err = Classify([]byte{0x43})
	require.ErrorIs(t, err, bits.ErrOutOfRange)
	typ, err := Classify([]byte{0x43, 0x50})
	require.NoError(t, err)
	require.Equal(t, KindGPSMSM7, typ.Kind)
}

func TestKindAttributes(t *testing.T) {
	require.Equal(t, SystemGLONASS, KindGLONASSMSM4.System())
	require.Equal(t, 4, KindGLONASSMSM4.MSM())
	require.Equal(t, SystemBeiDou, Lookup(1123).Kind.System())
	require.Equal(t, 3, Lookup(1123).Kind.MSM())
	require.Equal(t, 0, KindGPSEphemeris.MSM())
	require.Equal(t, SystemNone, KindUnicodeText.System())
	require.Equal(t, "Galileo", SystemGalileo.String())
}

func TestRegister(t *testing.T) {
	const number = 4095
	require.False(t, Lookup(number).Known())
	Register(number, KindUbloxProprietary)
	t.Cleanup(func() {
		catMu.Lock()
		delete(catalog, number)
		catMu.Unlock()
	})
	require.Equal(t, KindUbloxProprietary, Lookup(number).Kind)
}
