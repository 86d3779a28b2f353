package bsp

import (
	"encoding/binary"
	"math"
)

// Byte-wise little-endian readers. BSP buffers come out of pak files at
// arbitrary offsets, so nothing here may assume alignment. Callers are
// responsible for bounds checks.

func readU16(b []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(b[off:])
}

func readI16(b []byte, off int) int16 {
	return int16(binary.LittleEndian.Uint16(b[off:]))
}

func readU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off:])
}

func readI32(b []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(b[off:]))
}

func readF32(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}
