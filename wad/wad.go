// SPDX-License-Identifier: GPL-2.0-or-later

package wad

import (
	"bytes"
	"encoding/binary"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"neoquake/filesystem"
)

// WAD2 texture archive. BSP maps commonly leave texture pixels out of the
// file and expect them in the wads named by the worldspawn "wad" key; this
// package resolves those by name.

const (
	TypePalette    = 0x40
	TypeQPic       = 0x42
	TypeMipTex     = 0x44
	TypeConsolePic = 0x45
)

type lump struct {
	Offset      int32
	DiskSize    int32
	Size        int32
	Typ         byte
	Compression byte
	Dummy       int16
	Name        [16]byte
}

type entry struct {
	off  int64
	size int64
	typ  byte
}

type Archive struct {
	name  string
	data  []byte
	lumps map[string]entry
}

// Open reads a WAD2 file through the filesystem search path.
func Open(name string) (*Archive, error) {
	b, err := filesystem.GetFileContents(name)
	if err != nil {
		return nil, err
	}
	a, err := FromBytes(b)
	if err != nil {
		return nil, errors.Wrapf(err, "wad %s", name)
	}
	a.name = name
	return a, nil
}

// FromBytes parses an in-memory WAD2 archive. The buffer is retained.
func FromBytes(data []byte) (*Archive, error) {
	r := bytes.NewReader(data)
	var hdr struct {
		Magic      [4]byte
		EntryCount uint32
		DirOffset  uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	if hdr.Magic != [4]byte{'W', 'A', 'D', '2'} {
		return nil, errors.New("missing WAD2 id")
	}
	if _, err := r.Seek(int64(hdr.DirOffset), 0); err != nil {
		return nil, err
	}
	lumps := make([]lump, hdr.EntryCount)
	if err := binary.Read(r, binary.LittleEndian, &lumps); err != nil {
		return nil, errors.Wrap(err, "directory")
	}

	a := &Archive{data: data, lumps: make(map[string]entry, len(lumps))}
	for _, l := range lumps {
		name := l.Name[:]
		if i := bytes.IndexByte(name, 0); i >= 0 {
			name = name[:i]
		}
		off, size := int64(l.Offset), int64(l.Size)
		if off < 0 || size < 0 || off+size > int64(len(data)) {
			continue // skip damaged entries, keep the rest usable
		}
		a.lumps[strings.ToLower(string(name))] = entry{off: off, size: size, typ: l.Typ}
	}
	return a, nil
}

func (a *Archive) String() string {
	return a.name
}

// Names lists the archive's lump names, sorted.
func (a *Archive) Names() []string {
	ns := make([]string, 0, len(a.lumps))
	for n := range a.lumps {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

// Lump returns the raw bytes of the named lump.
func (a *Archive) Lump(name string) ([]byte, bool) {
	e, ok := a.lumps[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return a.data[e.off : e.off+e.size], true
}

// MipTex returns the raw miptex record of the named texture, or false when
// the archive has no such texture lump.
func (a *Archive) MipTex(name string) ([]byte, bool) {
	e, ok := a.lumps[strings.ToLower(name)]
	if !ok || e.typ != TypeMipTex {
		return nil, false
	}
	return a.data[e.off : e.off+e.size], true
}
