// SPDX-License-Identifier: GPL-2.0-or-later
package palette

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"neoquake/filesystem"
)

// A Quake palette is 256 colors of 3 bytes RGB, 768 bytes total. All
// functions taking a palette treat any other length as "no palette" and
// leave state untouched.
const Size = 256 * 3

// Valid reports whether rgb is a usable palette buffer.
func Valid(rgb []byte) bool {
	return len(rgb) == Size
}

// Load reads a palette.lmp through the filesystem search path. Files
// shorter than 768 bytes are rejected; longer files are cut to the first
// 768 bytes.
func Load(name string) ([]byte, error) {
	b, err := filesystem.GetFileContents(name)
	if err != nil {
		return nil, err
	}
	if len(b) < Size {
		return nil, fmt.Errorf("palette %s has wrong size: %d", name, len(b))
	}
	return append([]byte(nil), b[:Size]...), nil
}

// Save writes a palette as .lmp. Malformed input is refused, use
// SaveRelaxed for auto-normalization.
func Save(name string, rgb []byte) error {
	if !Valid(rgb) {
		return fmt.Errorf("palette has wrong size: %d", len(rgb))
	}
	return os.WriteFile(name, rgb, 0o644)
}

// SaveRelaxed writes a palette as .lmp, truncating or zero-padding to 768
// bytes first.
func SaveRelaxed(name string, rgb []byte) error {
	fixed := make([]byte, Size)
	copy(fixed, rgb)
	return os.WriteFile(name, fixed, 0o644)
}

// Color returns entry idx as r,g,b. Out of range indices come back black.
func Color(rgb []byte, idx int) [3]byte {
	if !Valid(rgb) || idx < 0 || idx > 255 {
		return [3]byte{}
	}
	return [3]byte{rgb[idx*3], rgb[idx*3+1], rgb[idx*3+2]}
}

// LoadJASC reads the text JASC-PAL format, convenient for round-tripping
// through 2D paint tools:
//
//	JASC-PAL
//	0100
//	256
//	r g b
//	...
func LoadJASC(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	line := func() (string, error) {
		if !sc.Scan() {
			return "", fmt.Errorf("palette %s: unexpected end of file", name)
		}
		return strings.TrimSpace(sc.Text()), nil
	}

	if l, err := line(); err != nil || l != "JASC-PAL" {
		return nil, fmt.Errorf("palette %s: not a JASC-PAL file", name)
	}
	if l, err := line(); err != nil || l != "0100" {
		return nil, fmt.Errorf("palette %s: unsupported JASC-PAL version", name)
	}
	if l, err := line(); err != nil || l != "256" {
		return nil, fmt.Errorf("palette %s: expected 256 entries", name)
	}

	rgb := make([]byte, 0, Size)
	for i := 0; i < 256; i++ {
		l, err := line()
		if err != nil {
			return nil, err
		}
		var r, g, b int
		if _, err := fmt.Sscanf(l, "%d %d %d", &r, &g, &b); err != nil {
			return nil, fmt.Errorf("palette %s entry %d: %w", name, i, err)
		}
		rgb = append(rgb, clampInt(r), clampInt(g), clampInt(b))
	}
	return rgb, nil
}

// SaveJASC writes the palette in the text JASC-PAL format.
func SaveJASC(name string, rgb []byte) error {
	if !Valid(rgb) {
		return fmt.Errorf("palette has wrong size: %d", len(rgb))
	}
	var sb strings.Builder
	sb.WriteString("JASC-PAL\n0100\n256\n")
	for i := 0; i < 256; i++ {
		fmt.Fprintf(&sb, "%d %d %d\n", rgb[i*3], rgb[i*3+1], rgb[i*3+2])
	}
	return os.WriteFile(name, []byte(sb.String()), 0o644)
}

func clampInt(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
