// SPDX-License-Identifier: GPL-2.0-or-later
package palette

import (
	"os"
	"path/filepath"
	"testing"
)

// ramp returns a full palette where entry i is (i, i, i).
func ramp() []byte {
	rgb := make([]byte, Size)
	for i := 0; i < 256; i++ {
		rgb[i*3] = byte(i)
		rgb[i*3+1] = byte(i)
		rgb[i*3+2] = byte(i)
	}
	return rgb
}

func TestColor(t *testing.T) {
	rgb := ramp()
	if c := Color(rgb, 7); c != [3]byte{7, 7, 7} {
		t.Errorf("Color(7) = %v", c)
	}
	if c := Color(rgb, -1); c != [3]byte{} {
		t.Errorf("Color(-1) = %v", c)
	}
	if c := Color(rgb[:10], 0); c != [3]byte{} {
		t.Errorf("short palette Color = %v", c)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "palette.lmp")
	rgb := ramp()
	if err := Save(name, rgb); err != nil {
		t.Fatal(err)
	}
	got, err := Load(name)
	if err != nil {
		t.Fatal(err)
	}
	for i := range rgb {
		if got[i] != rgb[i] {
			t.Fatalf("byte %d = %d want %d", i, got[i], rgb[i])
		}
	}
}

func TestLoadShort(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "short.lmp")
	if err := os.WriteFile(name, make([]byte, Size-1), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(name); err == nil {
		t.Error("short palette must be rejected")
	}
}

func TestLoadOversized(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "big.lmp")
	big := append(ramp(), 1, 2, 3, 4)
	if err := os.WriteFile(name, big, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(name)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != Size {
		t.Errorf("len = %d want %d", len(got), Size)
	}
}

func TestSaveRelaxed(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "pad.lmp")
	if err := SaveRelaxed(name, []byte{9, 9, 9}); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != Size || got[0] != 9 || got[3] != 0 {
		t.Errorf("padded palette = len %d first bytes %v", len(got), got[:6])
	}
}

func TestJASCRoundTrip(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "ramp.pal")
	rgb := ramp()
	if err := SaveJASC(name, rgb); err != nil {
		t.Fatal(err)
	}
	got, err := LoadJASC(name)
	if err != nil {
		t.Fatal(err)
	}
	if !Valid(got) {
		t.Fatalf("len = %d", len(got))
	}
	for i := range rgb {
		if got[i] != rgb[i] {
			t.Fatalf("byte %d = %d want %d", i, got[i], rgb[i])
		}
	}
}

func TestLoadJASCBadHeader(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "bad.pal")
	if err := os.WriteFile(name, []byte("RIFF-PAL\n0100\n256\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadJASC(name); err == nil {
		t.Error("non-JASC header must be rejected")
	}
}
