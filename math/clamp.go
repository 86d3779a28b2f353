// SPDX-License-Identifier: GPL-2.0-or-later

package math

type Number interface {
	int64 | float64 | float32 | int
}

func Clamp[K Number](min, val, max K) K {
	if min > val {
		return min
	} else if max < val {
		return max
	}
	return val
}

// ClampByte rounds val to the nearest byte value, saturating at 0 and 255.
func ClampByte(val float32) byte {
	return byte(Clamp(0, val, 255) + 0.5)
}
