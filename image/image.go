// SPDX-License-Identifier: GPL-2.0-or-later

package image

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"
)

// Thin wrappers for getting RGBA byte buffers (textures, lightmap atlases)
// onto disk in whatever format a pipeline wants.

func wrap(data []byte, width, height int) (*image.NRGBA, error) {
	if len(data) < width*height*4 {
		return nil, fmt.Errorf("image %dx%d needs %d bytes, have %d",
			width, height, width*height*4, len(data))
	}
	return &image.NRGBA{
		Pix:    data,
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// Write expects RGBA 8bit data and writes a PNG.
func Write(name string, data []byte, width, height int) error {
	img, err := wrap(data, width, height)
	if err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		log.Println(err)
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Println(err)
		return err
	}
	return nil
}

// WriteTGA writes RGBA 8bit data as an uncompressed TGA.
func WriteTGA(name string, data []byte, width, height int) error {
	img, err := wrap(data, width, height)
	if err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return tga.Encode(f, img)
}

// WriteWebP writes RGBA 8bit data as a lossless WebP.
func WriteWebP(name string, data []byte, width, height int) error {
	img, err := wrap(data, width, height)
	if err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return nativewebp.Encode(f, img, nil)
}

// Mipmaps builds a pyramid from an RGBA buffer down to 1x1. Level 0 is the
// input itself.
func Mipmaps(data []byte, width, height int) ([][]byte, error) {
	src, err := wrap(data, width, height)
	if err != nil {
		return nil, err
	}
	levels := [][]byte{data}
	for width > 1 || height > 1 {
		width = max(1, width/2)
		height = max(1, height/2)
		dst := image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		levels = append(levels, dst.Pix)
		src = dst
	}
	return levels, nil
}
