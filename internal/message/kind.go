package message

import "fmt"

// Kind is a semantic RTCM3 message classification.
type Kind int

const (
	KindUnknown Kind = iota

	KindGPSL1RTK
	KindGPSExtendedL1RTK
	KindGPSL1L2RTK
	KindGPSExtendedL1L2RTK
	KindGLONASSL1RTK
	KindGLONASSExtendedL1RTK
	KindGLONASSL1L2RTK
	KindGLONASSExtendedL1L2RTK

	KindStationaryRTKReferenceARP
	KindStationaryRTKReferenceARPWithHeight
	KindAntennaDescriptor
	KindAntennaDescriptorAndSerialNumber
	KindSystemParameters
	KindReceiverAndAntennaDescriptors
	KindUnicodeText

	KindGPSEphemeris
	KindGLONASSEphemeris
	KindBeiDouEphemeris
	KindQZSSEphemeris
	KindGalileoFNAVEphemeris
	KindGalileoINAVEphemeris

	KindGPSMSM1
	KindGPSMSM2
	KindGPSMSM3
	KindGPSMSM4
	KindGPSMSM5
	KindGPSMSM6
	KindGPSMSM7
	KindGLONASSMSM1
	KindGLONASSMSM2
	KindGLONASSMSM3
	KindGLONASSMSM4
	KindGLONASSMSM5
	KindGLONASSMSM6
	KindGLONASSMSM7
	KindGalileoMSM1
	KindGalileoMSM2
	KindGalileoMSM3
	KindGalileoMSM4
	KindGalileoMSM5
	KindGalileoMSM6
	KindGalileoMSM7
	KindSBASMSM1
	KindSBASMSM2
	KindSBASMSM3
	KindSBASMSM4
	KindSBASMSM5
	KindSBASMSM6
	KindSBASMSM7
	KindQZSSMSM1
	KindQZSSMSM2
	KindQZSSMSM3
	KindQZSSMSM4
	KindQZSSMSM5
	KindQZSSMSM6
	KindQZSSMSM7
	KindBeiDouMSM1
	KindBeiDouMSM2
	KindBeiDouMSM3
	KindBeiDouMSM4
	KindBeiDouMSM5
	KindBeiDouMSM6
	KindBeiDouMSM7

	KindGLONASSCodePhaseBiases
	KindUbloxProprietary
)

// System identifies a satellite constellation.
type System int

const (
	SystemNone System = iota
	SystemGPS
	SystemGLONASS
	SystemGalileo
	SystemSBAS
	SystemQZSS
	SystemBeiDou
)

var systemNames = map[System]string{
	SystemNone:    "none",
	SystemGPS:     "GPS",
	SystemGLONASS: "GLONASS",
	SystemGalileo: "Galileo",
	SystemSBAS:    "SBAS",
	SystemQZSS:    "QZSS",
	SystemBeiDou:  "BeiDou",
}

func (s System) String() string {
	if name, ok := systemNames[s]; ok {
		return name
	}
	return fmt.Sprintf("System(%d)", int(s))
}

type kindInfo struct {
	name   string
	system System
	msm    int
}

var kinds = map[Kind]kindInfo{
	KindUnknown: {name: "Unknown"},

	KindGPSL1RTK:               {"GPSL1RTKObservables", SystemGPS, 0},
	KindGPSExtendedL1RTK:       {"GPSExtendedL1RTKObservables", SystemGPS, 0},
	KindGPSL1L2RTK:             {"GPSL1AndL2RTKObservables", SystemGPS, 0},
	KindGPSExtendedL1L2RTK:     {"GPSExtendedL1AndL2RTKObservables", SystemGPS, 0},
	KindGLONASSL1RTK:           {"GLONASSL1RTKObservables", SystemGLONASS, 0},
	KindGLONASSExtendedL1RTK:   {"GLONASSExtendedL1RTKObservables", SystemGLONASS, 0},
	KindGLONASSL1L2RTK:         {"GLONASSL1AndL2RTKObservables", SystemGLONASS, 0},
	KindGLONASSExtendedL1L2RTK: {"GLONASSExtendedL1AndL2RTKObservables", SystemGLONASS, 0},

	KindStationaryRTKReferenceARP:           {name: "StationaryRTKReferenceStationARP"},
	KindStationaryRTKReferenceARPWithHeight: {name: "StationaryRTKReferenceStationARPWithAntennaHeight"},
	KindAntennaDescriptor:                   {name: "AntennaDescriptor"},
	KindAntennaDescriptorAndSerialNumber:    {name: "AntennaDescriptorAndSerialNumber"},
	KindSystemParameters:                    {name: "SystemParameters"},
	KindReceiverAndAntennaDescriptors:       {name: "ReceiverWithAntennaDescriptors"},
	KindUnicodeText:                         {name: "UnicodeTextString"},

	KindGPSEphemeris:         {"GPSEphemeris", SystemGPS, 0},
	KindGLONASSEphemeris:     {"GLONASSEphemeris", SystemGLONASS, 0},
	KindBeiDouEphemeris:      {"BeiDouEphemeris", SystemBeiDou, 0},
	KindQZSSEphemeris:        {"QZSSEphemeris", SystemQZSS, 0},
	KindGalileoFNAVEphemeris: {"GalileoFNAVEphemeris", SystemGalileo, 0},
	KindGalileoINAVEphemeris: {"GalileoEphemeris", SystemGalileo, 0},

	KindGLONASSCodePhaseBiases: {"GLONASSL1AndL2CodePhaseBiases", SystemGLONASS, 0},
	KindUbloxProprietary:       {name: "UbloxProprietary"},
}

func init() {
	msm := []struct {
		first  Kind
		system System
	}{
		{KindGPSMSM1, SystemGPS},
		{KindGLONASSMSM1, SystemGLONASS},
		{KindGalileoMSM1, SystemGalileo},
		{KindSBASMSM1, SystemSBAS},
		{KindQZSSMSM1, SystemQZSS},
		{KindBeiDouMSM1, SystemBeiDou},
	}
	for _, m := range msm {
		for level := 1; level <= 7; level++ {
			kinds[m.first+Kind(level-1)] = kindInfo{
				name:   fmt.Sprintf("%sMSM%d", m.system, level),
				system: m.system,
				msm:    level,
			}
		}
	}
}

// String returns the stable name of the kind.
func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// System returns the constellation the kind carries data for.
func (k Kind) System() System { return kinds[k].system }

// MSM returns the multiple signal message level 1-7, or 0 when k is not an
// MSM kind.
func (k Kind) MSM() int { return kinds[k].msm }

// Type is a classified message: the kind plus the raw message number.
type Type struct {
	Kind   Kind
	Number uint16
}

// Known reports whether the message number is in the catalog.
func (t Type) Known() bool { return t.Kind != KindUnknown }

func (t Type) String() string {
	if t.Kind == KindUnknown {
		return fmt.Sprintf("Unknown<value: %d>", t.Number)
	}
	return t.Kind.String()
}
