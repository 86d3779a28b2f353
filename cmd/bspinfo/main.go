// SPDX-License-Identifier: GPL-2.0-or-later

// bspinfo prints the structure of a Quake 1 BSP: lump statistics, embedded
// textures and entity classnames.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"neoquake/bsp"
	"neoquake/crc"
	"neoquake/filesystem"
)

var (
	gameDir  = flag.String("game", "", "game directory to add to the search path (with its pak files)")
	entities = flag.Bool("ents", false, "dump all entity properties instead of a classname summary")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: bspinfo [flags] map.bsp\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *gameDir != "" {
		filesystem.AddGameDir(*gameDir)
	}

	data, err := filesystem.GetFileContents(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	m, err := bsp.Load(data)
	if err != nil {
		log.Fatal(err)
	}
	m.BuildLightmaps()

	fmt.Printf("version   %d\n", m.Version)
	// same 16 bit checksum servers use to verify the client's map
	fmt.Printf("crc       0x%04x\n", crc.Update(data))
	fmt.Printf("vertices  %d\n", len(m.Vertices))
	fmt.Printf("edges     %d\n", len(m.Edges))
	fmt.Printf("surfedges %d\n", len(m.SurfEdges))
	fmt.Printf("faces     %d\n", len(m.Faces))
	fmt.Printf("texinfos  %d\n", len(m.TexInfos))
	fmt.Printf("models    %d\n", len(m.Models))
	fmt.Printf("lighting  %d bytes\n", len(m.Lighting))
	if m.Atlas != nil {
		fmt.Printf("lightmap  %dx%d atlas\n", m.Atlas.Width, m.Atlas.Height)
	} else {
		fmt.Printf("lightmap  none (fullbright)\n")
	}

	fmt.Printf("textures  %d\n", len(m.Textures))
	for i, t := range m.Textures {
		mark := ""
		if t.External() {
			mark = " (external)"
		}
		fmt.Printf("  %3d %-16s %4dx%-4d%s\n", i, t.Name(), t.Width, t.Height, mark)
	}

	if *entities {
		for i, e := range m.Entities {
			fmt.Printf("entity %d\n", i)
			for _, p := range e.Properties() {
				fmt.Printf("  %q %q\n", p.Key, p.Value)
			}
		}
		return
	}
	counts := make(map[string]int)
	for _, e := range m.Entities {
		counts[e.Classname()]++
	}
	fmt.Printf("entities  %d\n", len(m.Entities))
	for name, n := range counts {
		fmt.Printf("  %4d %s\n", n, name)
	}
}
