// SPDX-License-Identifier: GPL-2.0-or-later

package pack

import (
	"bytes"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// Quake PAK archive: a 12 byte header pointing at a directory of 64 byte
// entries, each a null padded name plus offset and size of the stored file.

const (
	headerSize = 12
	entrySize  = 64
	nameSize   = 56
)

type qfile struct {
	offset int64
	size   int64
}

type Pack struct {
	f     *os.File
	files map[string]qfile
	name  string
}

func (p *Pack) String() string {
	return p.name
}

func (p *Pack) Close() error {
	return p.f.Close()
}

// Open returns a reader over the named entry or os.ErrNotExist.
func (p *Pack) Open(name string) (*io.SectionReader, error) {
	q, ok := p.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NewSectionReader(p.f, q.offset, q.size), nil
}

// Names lists all entries in the archive, sorted.
func (p *Pack) Names() []string {
	ns := make([]string, 0, len(p.files))
	for n := range p.files {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

// NewPackReader opens a PAK file and reads its directory. The file stays
// open; entries are read on demand through Open.
func NewPackReader(name string) (*Pack, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	p := &Pack{f: f, name: name}
	if err := p.readDirectory(); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "pak %s", name)
	}
	return p, nil
}

func (p *Pack) readDirectory() error {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(p.f, hdr[:]); err != nil {
		return err
	}
	if !bytes.Equal(hdr[:4], []byte("PACK")) {
		return errors.New("not a pak file")
	}
	dirOfs := int64(int32(le32(hdr[4:])))
	dirSize := int64(int32(le32(hdr[8:])))
	if dirOfs < 0 || dirSize < 0 || dirSize%entrySize != 0 {
		return errors.New("malformed directory")
	}

	dir := make([]byte, dirSize)
	if _, err := p.f.ReadAt(dir, dirOfs); err != nil {
		return errors.Wrap(err, "read directory")
	}
	p.files = make(map[string]qfile, dirSize/entrySize)
	for off := int64(0); off < dirSize; off += entrySize {
		e := dir[off : off+entrySize]
		name := e[:nameSize]
		if i := bytes.IndexByte(name, 0); i >= 0 {
			name = name[:i]
		}
		if _, dup := p.files[string(name)]; dup {
			return errors.Errorf("duplicate entry %q", name)
		}
		p.files[string(name)] = qfile{
			offset: int64(int32(le32(e[nameSize:]))),
			size:   int64(int32(le32(e[nameSize+4:]))),
		}
	}
	return nil
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
