package shearwater

import "encoding/binary"

// Dive layout constants.
const (
	BlockSize   = 0x80
	SampleSize  = 0x10
	MinDiveSize = 2 * BlockSize
	GasMixCount = 5

	unitsMetric   = 0
	unitsImperial = 1

	// feet converts feet to meters.
	feet = 0.3048

	headerMarker = 0xFFFF
	footerMarker = 0xFFFD
)

// Header offsets.
const (
	offUnits       = 8
	offTicks       = 12
	offOxygen      = 20
	offHelium      = 30
	offAtmospheric = 47
	offDensity     = 83
)

// Footer offsets, relative to the start of the last block.
const (
	offMaxDepth = 4
	offDiveTime = 6
)

// Record offsets.
const (
	offDepth       = 0
	offDecoStop    = 2
	offGasOxygen   = 7
	offGasHelium   = 8
	offStopTime    = 9
	offTemperature = 13
)

func be16(b []byte, off int) uint16 {
	return binary.BigEndian.Uint16(b[off:])
}

func be32(b []byte, off int) uint32 {
	return binary.BigEndian.Uint32(b[off:])
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// footer returns the last block of a dive.
func footer(data []byte) []byte {
	return data[len(data)-BlockSize:]
}
