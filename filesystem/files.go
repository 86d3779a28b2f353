// SPDX-License-Identifier: GPL-2.0-or-later

package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"neoquake/pack"
)

// Search path in the Quake tradition: game directories and the pak files
// inside them, later additions shadowing earlier ones. Plain paths outside
// any game directory still resolve, so tools can point at loose files.

type File interface {
	io.ReadSeekCloser
	io.ReaderAt
}

type source interface {
	open(name string) (File, error)
	String() string
}

var (
	mutex   sync.RWMutex
	sources []source // searched front to back
)

type dirSource struct {
	dir string
}

func (d dirSource) open(name string) (File, error) {
	return os.Open(filepath.Join(d.dir, name))
}

func (d dirSource) String() string { return d.dir }

type pakSource struct {
	p *pack.Pack
}

type nopCloser struct {
	*io.SectionReader
}

func (nopCloser) Close() error { return nil }

func (s pakSource) open(name string) (File, error) {
	f, err := s.p.Open(filepath.ToSlash(name))
	if err != nil {
		return nil, err
	}
	return nopCloser{f}, nil
}

func (s pakSource) String() string { return s.p.String() }

// AddGameDir puts dir in front of the search path, together with its
// pak0.pak..pakN.pak in descending priority.
func AddGameDir(dir string) {
	mutex.Lock()
	defer mutex.Unlock()

	var add []source
	for i := 0; ; i++ {
		p, err := pack.NewPackReader(filepath.Join(dir, fmt.Sprintf("pak%d.pak", i)))
		if err != nil {
			break
		}
		add = append([]source{pakSource{p}}, add...)
	}
	add = append(add, dirSource{dir})
	sources = append(add, sources...)
}

// Reset drops the search path. Paks are left to the finalizer, tools are
// short-lived.
func Reset() {
	mutex.Lock()
	defer mutex.Unlock()
	sources = nil
}

// GetFile opens name from the search path, falling back to the plain OS
// path so absolute paths keep working.
func GetFile(name string) (File, error) {
	mutex.RLock()
	defer mutex.RUnlock()

	for _, s := range sources {
		if f, err := s.open(name); err == nil {
			return f, nil
		}
	}
	if f, err := os.Open(name); err == nil {
		return f, nil
	}
	return nil, errors.Errorf("file %s not found", name)
}

// GetFileContents reads the whole of name from the search path.
func GetFileContents(name string) ([]byte, error) {
	f, err := GetFile(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	return b, nil
}
