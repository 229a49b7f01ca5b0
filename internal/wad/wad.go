// Package wad reads the little-endian lump archive format described in
// spec §6.1. WAD authoring and PWAD merge-order semantics are out of
// scope; this package only produces the lump iterator the map and
// picture loaders consume.
package wad

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Lump is one named byte range inside a WAD file.
type Lump struct {
	Name   string
	Offset int32
	Size   int32
}

type header struct {
	Magic    [4]byte
	NumLumps int32
	DirOfs   int32
}

// File is a read directory over an io.ReaderAt, the Go equivalent of
// the Rust lump iterator in original_source/wad/src/iterators.rs.
type File struct {
	r       io.ReaderAt
	lumps   []Lump
	byName  map[string]int // last index wins, matching WAD override semantics
	IsPWAD  bool
}

// Open parses the 12-byte header and directory of r.
func Open(r io.ReaderAt) (*File, error) {
	var hdr [12]byte
	if _, err := r.ReadAt(hdr[:], 0); err != nil {
		return nil, fmt.Errorf("wad: read header: %w", err)
	}
	magic := string(hdr[0:4])
	if magic != "IWAD" && magic != "PWAD" {
		return nil, fmt.Errorf("wad: bad magic %q", magic)
	}
	numLumps := int32(binary.LittleEndian.Uint32(hdr[4:8]))
	dirOfs := int32(binary.LittleEndian.Uint32(hdr[8:12]))

	f := &File{r: r, IsPWAD: magic == "PWAD", byName: make(map[string]int, numLumps)}
	entry := make([]byte, 16)
	for i := int32(0); i < numLumps; i++ {
		if _, err := r.ReadAt(entry, int64(dirOfs)+int64(i)*16); err != nil {
			return nil, fmt.Errorf("wad: read directory entry %d: %w", i, err)
		}
		name := trimName(entry[8:16])
		lump := Lump{
			Name:   name,
			Offset: int32(binary.LittleEndian.Uint32(entry[0:4])),
			Size:   int32(binary.LittleEndian.Uint32(entry[4:8])),
		}
		f.byName[name] = len(f.lumps)
		f.lumps = append(f.lumps, lump)
	}
	return f, nil
}

func trimName(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

// Lumps returns the full ordered directory.
func (f *File) Lumps() []Lump { return f.lumps }

// Index returns the directory index of name, or -1.
func (f *File) Index(name string) int {
	if i, ok := f.byName[name]; ok {
		return i
	}
	return -1
}

// Read returns the raw bytes of lump i.
func (f *File) Read(i int) ([]byte, error) {
	if i < 0 || i >= len(f.lumps) {
		return nil, fmt.Errorf("wad: lump index %d out of range", i)
	}
	l := f.lumps[i]
	buf := make([]byte, l.Size)
	if l.Size > 0 {
		if _, err := f.r.ReadAt(buf, int64(l.Offset)); err != nil {
			return nil, fmt.Errorf("wad: read lump %q: %w", l.Name, err)
		}
	}
	return buf, nil
}

// ReadByName looks up and reads a uniquely named lump (PLAYPAL, COLORMAP, ...).
func (f *File) ReadByName(name string) ([]byte, error) {
	i := f.Index(name)
	if i < 0 {
		return nil, fmt.Errorf("wad: missing lump %q", name)
	}
	return f.Read(i)
}

// Range returns the lump indices strictly between a "X_START" and
// "X_END" marker pair (used for S_START/S_END, F_START/F_END, ...).
func (f *File) Range(startMarker, endMarker string) ([]int, error) {
	start := f.Index(startMarker)
	end := f.Index(endMarker)
	if start < 0 || end < 0 || end < start {
		return nil, fmt.Errorf("wad: missing or malformed marker range %s/%s", startMarker, endMarker)
	}
	out := make([]int, 0, end-start-1)
	for i := start + 1; i < end; i++ {
		out = append(out, i)
	}
	return out, nil
}

// MapLumps returns the fixed-order per-map lump indices following a
// "ExMy"/"MAPxx" marker lump, per §6.1.
func (f *File) MapLumps(mapName string) (map[string]int, error) {
	base := f.Index(mapName)
	if base < 0 {
		return nil, fmt.Errorf("wad: missing map marker %q", mapName)
	}
	names := []string{"THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SEGS", "SSECTORS", "NODES", "SECTORS"}
	out := make(map[string]int, len(names))
	for i, n := range names {
		idx := base + 1 + i
		if idx >= len(f.lumps) || f.lumps[idx].Name != n {
			return nil, fmt.Errorf("wad: expected lump %q after %q at position %d", n, mapName, idx)
		}
		out[n] = idx
	}
	return out, nil
}
