// SPDX-License-Identifier: GPL-2.0-or-later

// bspdump decodes a Quake 1 BSP and exports its textures and lightmap
// atlas as png, tga or webp images.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"neoquake/bsp"
	"neoquake/filesystem"
	"neoquake/image"
	"neoquake/palette"
	"neoquake/wad"
)

// Config is the one explicit knob structure of the tool. It is filled from
// the YAML config file and then overridden by flags; nothing below main
// reads the environment.
type Config struct {
	BSP      string   `yaml:"bsp"`
	Palette  string   `yaml:"palette"`
	GameDir  string   `yaml:"gamedir"`
	Wads     []string `yaml:"wads"`
	OutDir   string   `yaml:"outdir"`
	Format   string   `yaml:"format"` // png, tga or webp
	Atlas    bool     `yaml:"atlas"`
	Textures bool     `yaml:"textures"`
	Gamma    float32  `yaml:"gamma"`
}

func defaultConfig() Config {
	return Config{
		OutDir:   ".",
		Format:   "png",
		Atlas:    true,
		Textures: true,
		Gamma:    1,
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func writeImage(cfg *Config, name string, data []byte, w, h int) error {
	out := filepath.Join(cfg.OutDir, name+"."+cfg.Format)
	switch cfg.Format {
	case "png":
		return image.Write(out, data, w, h)
	case "tga":
		return image.WriteTGA(out, data, w, h)
	case "webp":
		return image.WriteWebP(out, data, w, h)
	}
	return fmt.Errorf("unknown format %q", cfg.Format)
}

func safeName(i int, name string) string {
	if name == "" {
		return fmt.Sprintf("texture_%d", i)
	}
	r := strings.NewReplacer("*", "star_", "+", "plus_", "{", "fence_", "/", "_")
	return fmt.Sprintf("texture_%d_%s", i, r.Replace(name))
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	bspPath := flag.String("bsp", "", "map to decode")
	palPath := flag.String("pal", "", "palette.lmp for texture colors")
	outDir := flag.String("out", "", "output directory")
	format := flag.String("format", "", "png, tga or webp")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *bspPath != "" {
		cfg.BSP = *bspPath
	}
	if *palPath != "" {
		cfg.Palette = *palPath
	}
	if *outDir != "" {
		cfg.OutDir = *outDir
	}
	if *format != "" {
		cfg.Format = *format
	}
	if cfg.BSP == "" {
		fmt.Fprintf(os.Stderr, "usage: bspdump -bsp map.bsp [-pal palette.lmp] [-config dump.yaml]\n")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if cfg.GameDir != "" {
		filesystem.AddGameDir(cfg.GameDir)
	}
	opts := []bsp.Option{}
	if cfg.Palette != "" {
		opts = append(opts, bsp.WithPalette(cfg.Palette))
	}
	for _, w := range cfg.Wads {
		a, err := wad.Open(w)
		if err != nil {
			log.Printf("skipping wad %s: %v", w, err)
			continue
		}
		opts = append(opts, bsp.WithWad(a))
	}

	m, err := bsp.LoadFile(cfg.BSP, opts...)
	if err != nil {
		log.Fatal(err)
	}
	m.BuildLightmaps()

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		log.Fatal(err)
	}

	if cfg.Textures {
		pal := m.Palette
		for i, t := range m.Textures {
			rgba := t.RGBA(pal)
			w, h := t.Width, t.Height
			if len(rgba) == 0 {
				// Externally stored texture, give the viewer something.
				w, h = 64, 64
				rgba = palette.Checker(w, h, 8)
			}
			if cfg.Gamma != 0 && cfg.Gamma != 1 {
				rgba = palette.IndexedToRGBAOpts(t.Indices, pal, palette.Options{
					TransparentIndex: palette.TransparentIndex,
					Gamma:            cfg.Gamma,
				})
				if len(rgba) == 0 {
					rgba = palette.Checker(w, h, 8)
				}
			}
			if err := writeImage(&cfg, safeName(i, t.Name()), rgba, w, h); err != nil {
				log.Printf("texture %d (%s): %v", i, t.Name(), err)
			}
		}
	}

	if cfg.Atlas && m.Atlas != nil {
		if err := writeImage(&cfg, "lightmap_atlas", m.Atlas.Pix, m.Atlas.Width, m.Atlas.Height); err != nil {
			log.Printf("atlas: %v", err)
		}
	}
}
