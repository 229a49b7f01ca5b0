package pic

import (
	"encoding/binary"
	"fmt"

	"github.com/doomcore/engine/internal/wad"
)

// texturePatch is one placement of a named patch on a texture canvas.
type texturePatch struct {
	OriginX, OriginY int
	PatchIndex       int
}

func (d *Data) loadTextures(f *wad.File, lumpName string) error {
	raw, err := f.ReadByName(lumpName)
	if err != nil {
		return err
	}
	if len(raw) < 4 {
		return fmt.Errorf("pic: %s truncated", lumpName)
	}
	numTex := int(int32(binary.LittleEndian.Uint32(raw[0:4])))
	for t := 0; t < numTex; t++ {
		ofsPos := 4 + t*4
		if ofsPos+4 > len(raw) {
			return fmt.Errorf("pic: %s offset table truncated", lumpName)
		}
		ofs := int32(binary.LittleEndian.Uint32(raw[ofsPos : ofsPos+4]))
		tex, patches, err := decodeMaptexture(raw, int(ofs))
		if err != nil {
			return err
		}
		if err := d.compositeTexture(tex, patches, f); err != nil {
			return err
		}
		d.texByName[tex.Name] = len(d.textures)
		d.textures = append(d.textures, tex)
	}
	return nil
}

func decodeMaptexture(raw []byte, ofs int) (*Texture, []texturePatch, error) {
	if ofs+22 > len(raw) {
		return nil, nil, fmt.Errorf("pic: maptexture header out of range")
	}
	name := trimName(raw[ofs : ofs+8])
	width := int(int16(binary.LittleEndian.Uint16(raw[ofs+12 : ofs+14])))
	height := int(int16(binary.LittleEndian.Uint16(raw[ofs+14 : ofs+16])))
	patchCount := int(int16(binary.LittleEndian.Uint16(raw[ofs+20 : ofs+22])))

	tex := &Texture{Name: name, Width: width, Height: height}
	patches := make([]texturePatch, patchCount)
	base := ofs + 22
	for i := 0; i < patchCount; i++ {
		o := base + i*10
		if o+10 > len(raw) {
			return nil, nil, fmt.Errorf("pic: maptexture patch list truncated")
		}
		patches[i] = texturePatch{
			OriginX:    int(int16(binary.LittleEndian.Uint16(raw[o : o+2]))),
			OriginY:    int(int16(binary.LittleEndian.Uint16(raw[o+2 : o+4]))),
			PatchIndex: int(int16(binary.LittleEndian.Uint16(raw[o+4 : o+6]))),
		}
	}
	return tex, patches, nil
}

func (d *Data) compositeTexture(tex *Texture, placements []texturePatch, f *wad.File) error {
	tex.columns = make([][]uint8, tex.Width)
	tex.mask = make([][]bool, tex.Width)
	for x := range tex.columns {
		tex.columns[x] = make([]uint8, tex.Height)
		tex.mask[x] = make([]bool, tex.Height)
	}
	for _, pl := range placements {
		if pl.PatchIndex < 0 || pl.PatchIndex >= len(d.patchNames) {
			return fmt.Errorf("pic: texture %q references out-of-range patch %d", tex.Name, pl.PatchIndex)
		}
		pname := d.patchNames[pl.PatchIndex]
		raw, err := f.ReadByName(pname)
		if err != nil {
			return fmt.Errorf("pic: texture %q: %w", tex.Name, err)
		}
		patch, err := decodePatch(raw)
		if err != nil {
			return fmt.Errorf("pic: texture %q patch %q: %w", tex.Name, pname, err)
		}
		for px := 0; px < patch.Width; px++ {
			dx := pl.OriginX + px
			if dx < 0 || dx >= tex.Width {
				continue
			}
			col := patch.ExpandColumn(px)
			for py, v := range col {
				if v < 0 {
					continue
				}
				dy := pl.OriginY + py
				if dy < 0 || dy >= tex.Height {
					continue
				}
				tex.columns[dx][dy] = uint8(v)
				tex.mask[dx][dy] = true
			}
		}
	}
	return nil
}

// decodePatch parses the native DOOM "picture" format: a header with
// per-column offsets, each pointing to a run of posts terminated by
// 0xFF.
func decodePatch(raw []byte) (*Patch, error) {
	if len(raw) < 8 {
		return nil, fmt.Errorf("patch header truncated")
	}
	width := int(binary.LittleEndian.Uint16(raw[0:2]))
	height := int(binary.LittleEndian.Uint16(raw[2:4]))
	leftOfs := int(int16(binary.LittleEndian.Uint16(raw[4:6])))
	topOfs := int(int16(binary.LittleEndian.Uint16(raw[6:8])))

	p := &Patch{Width: width, Height: height, LeftOffset: leftOfs, TopOffset: topOfs}
	p.Columns = make([][]Post, width)

	colOfsBase := 8
	for x := 0; x < width; x++ {
		o := colOfsBase + x*4
		if o+4 > len(raw) {
			return nil, fmt.Errorf("patch column offset table truncated")
		}
		colOfs := int(binary.LittleEndian.Uint32(raw[o : o+4]))
		posts, err := decodePosts(raw, colOfs)
		if err != nil {
			return nil, err
		}
		p.Columns[x] = posts
	}
	return p, nil
}

func decodePosts(raw []byte, ofs int) ([]Post, error) {
	var posts []Post
	for {
		if ofs >= len(raw) {
			return nil, fmt.Errorf("patch post stream ran past end of lump")
		}
		topDelta := raw[ofs]
		if topDelta == 0xFF {
			break
		}
		ofs++
		if ofs >= len(raw) {
			return nil, fmt.Errorf("patch post truncated")
		}
		length := int(raw[ofs])
		ofs++
		ofs++ // unused padding byte
		if ofs+length+1 > len(raw) {
			return nil, fmt.Errorf("patch post pixel data truncated")
		}
		pixels := make([]uint8, length)
		copy(pixels, raw[ofs:ofs+length])
		posts = append(posts, Post{TopDelta: int(topDelta), Pixels: pixels})
		ofs += length
		ofs++ // trailing padding byte
	}
	return posts, nil
}

func (d *Data) loadFlats(f *wad.File) error {
	indices, err := f.Range("F_START", "F_END")
	if err != nil {
		return err
	}
	for _, i := range indices {
		l := f.Lumps()[i]
		if l.Size == 0 {
			continue // sub-marker (F1_START etc.)
		}
		raw, err := f.Read(i)
		if err != nil {
			return err
		}
		size := 64
		switch len(raw) {
		case 64 * 64:
			size = 64
		case 128 * 128:
			size = 128
		}
		flat := &Flat{Name: l.Name, Size: size, Data: raw}
		d.flatByName[l.Name] = len(d.flats)
		d.flats = append(d.flats, flat)
	}
	return nil
}

func (d *Data) loadSprites(f *wad.File) error {
	indices, err := f.Range("S_START", "S_END")
	if err != nil {
		return err
	}
	for _, i := range indices {
		l := f.Lumps()[i]
		if l.Size == 0 {
			continue
		}
		raw, err := f.Read(i)
		if err != nil {
			return err
		}
		patch, err := decodePatch(raw)
		if err != nil {
			return fmt.Errorf("pic: sprite %q: %w", l.Name, err)
		}
		d.sprites[l.Name] = patch
	}
	return nil
}
