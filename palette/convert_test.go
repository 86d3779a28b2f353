// SPDX-License-Identifier: GPL-2.0-or-later
package palette

import "testing"

func TestIndexedToRGBA(t *testing.T) {
	rgb := ramp()
	out := IndexedToRGBA([]byte{0, 128, 255}, rgb)
	if len(out) != 12 {
		t.Fatalf("len = %d", len(out))
	}
	if out[0] != 0 || out[3] != 255 {
		t.Errorf("pixel 0 = %v", out[:4])
	}
	if out[4] != 128 || out[7] != 255 {
		t.Errorf("pixel 1 = %v", out[4:8])
	}
	// slot 255 keeps its color but loses alpha
	if out[8] != 255 || out[11] != 0 {
		t.Errorf("pixel 2 = %v", out[8:])
	}
}

func TestIndexedToRGBAGrayscaleFallback(t *testing.T) {
	out := IndexedToRGBA([]byte{0, 128}, nil)
	if out[0] != 0 || out[1] != 0 || out[2] != 0 {
		t.Errorf("pixel 0 = %v", out[:4])
	}
	if out[4] != 128 || out[5] != 128 || out[6] != 128 {
		t.Errorf("pixel 1 = %v", out[4:8])
	}
}

func TestIndexedToRGBAOpts(t *testing.T) {
	rgb := ramp()
	out := IndexedToRGBAOpts([]byte{255}, rgb, Options{
		TransparentIndex: 255,
		Premultiply:      true,
		Gamma:            1,
	})
	if out[0] != 0 || out[1] != 0 || out[2] != 0 || out[3] != 0 {
		t.Errorf("premultiplied transparent pixel = %v", out)
	}

	// no transparent slot at all
	out = IndexedToRGBAOpts([]byte{255}, rgb, Options{TransparentIndex: -1, Gamma: 1})
	if out[3] != 255 {
		t.Errorf("alpha = %d want opaque", out[3])
	}

	if out := IndexedToRGBAOpts(nil, rgb, Options{}); out != nil {
		t.Errorf("empty input = %v", out)
	}
}

func TestChecker(t *testing.T) {
	out := Checker(4, 4, 2)
	if len(out) != 4*4*4 {
		t.Fatalf("len = %d", len(out))
	}
	// opposite corners of a 2-cell board share a color
	if out[0] != out[(3*4+3)*4] {
		t.Error("corners differ")
	}
	if out[0] == out[3*4] {
		t.Error("adjacent cells match")
	}
}
