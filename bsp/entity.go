// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

// The entities lump is text of the form
//
//	{
//	  "classname" "worldspawn"
//	  "wad" "gfx/base.wad"
//	}
//	{ ... }
//
// Key order inside a block is preserved, lookups go through a map.

type Property struct {
	Key   string
	Value string
}

type Entity struct {
	pairs []Property
	index map[string]string
}

func (e *Entity) Property(name string) (string, bool) {
	v, ok := e.index[name]
	return v, ok
}

// Classname returns the "classname" value or the empty string.
func (e *Entity) Classname() string {
	return e.index["classname"]
}

// Properties returns the key/value pairs in file order.
func (e *Entity) Properties() []Property {
	return e.pairs
}

func (e *Entity) add(key, value string) {
	e.pairs = append(e.pairs, Property{Key: key, Value: value})
	if e.index == nil {
		e.index = make(map[string]string)
	}
	if _, ok := e.index[key]; !ok {
		e.index[key] = value
	}
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

// ParseEntities scans the entities lump. Malformed trailing input ends the
// scan, everything parsed up to that point is kept.
func ParseEntities(data []byte) []*Entity {
	var es []*Entity
	i := 0
	skipWS := func() {
		for i < len(data) && isSpace(data[i]) {
			i++
		}
	}
	quoted := func() (string, bool) {
		if i >= len(data) || data[i] != '"' {
			return "", false
		}
		i++
		start := i
		for i < len(data) && data[i] != '"' {
			i++
		}
		if i >= len(data) {
			return "", false
		}
		v := string(data[start:i])
		i++ // closing quote
		return v, true
	}

	for {
		skipWS()
		if i >= len(data) || data[i] != '{' {
			break
		}
		i++
		e := &Entity{}
		for {
			skipWS()
			if i < len(data) && data[i] == '}' {
				i++
				break
			}
			key, ok := quoted()
			if !ok {
				break
			}
			skipWS()
			value, ok := quoted()
			if !ok {
				break
			}
			e.add(key, value)
		}
		if len(e.pairs) != 0 {
			es = append(es, e)
		}
	}
	return es
}
