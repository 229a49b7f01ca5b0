package mapdata

import (
	"encoding/binary"
	"math"

	"github.com/doomcore/engine/internal/wad"
)

// Load parses the fixed-layout lumps for mapName (§6.1) into a Map.
func Load(f *wad.File, mapName string) (*Map, error) {
	lumps, err := f.MapLumps(mapName)
	if err != nil {
		return nil, err
	}
	m := &Map{}

	if err := m.loadVertexes(f, lumps["VERTEXES"]); err != nil {
		return nil, err
	}
	if err := m.loadSidedefs(f, lumps["SIDEDEFS"]); err != nil {
		return nil, err
	}
	if err := m.loadLinedefs(f, lumps["LINEDEFS"]); err != nil {
		return nil, err
	}
	if err := m.loadSectors(f, lumps["SECTORS"]); err != nil {
		return nil, err
	}
	if err := m.loadSegs(f, lumps["SEGS"]); err != nil {
		return nil, err
	}
	if err := m.loadSubsectors(f, lumps["SSECTORS"]); err != nil {
		return nil, err
	}
	if err := m.loadNodes(f, lumps["NODES"]); err != nil {
		return nil, err
	}
	if len(m.Nodes) > 0 {
		m.StartNode = len(m.Nodes) - 1 // DOOM convention: last node is the root
	} else if len(m.SubSectors) > 0 {
		m.StartNode = 0 | LeafBit
	}
	return m, nil
}

func (m *Map) loadVertexes(f *wad.File, idx int) error {
	raw, err := f.Read(idx)
	if err != nil {
		return err
	}
	const rec = 4
	n := len(raw) / rec
	m.Vertexes = make([]Vertex, n)
	for i := 0; i < n; i++ {
		o := i * rec
		m.Vertexes[i] = Vertex{
			X: float64(int16(binary.LittleEndian.Uint16(raw[o : o+2]))),
			Y: float64(int16(binary.LittleEndian.Uint16(raw[o+2 : o+4]))),
		}
	}
	return nil
}

func (m *Map) loadSidedefs(f *wad.File, idx int) error {
	raw, err := f.Read(idx)
	if err != nil {
		return err
	}
	const rec = 30
	n := len(raw) / rec
	m.Sidedefs = make([]Sidedef, n)
	for i := 0; i < n; i++ {
		o := i * rec
		m.Sidedefs[i] = Sidedef{
			RowOffset:     float64(int16(binary.LittleEndian.Uint16(raw[o : o+2]))),
			ColOffset:     float64(int16(binary.LittleEndian.Uint16(raw[o+2 : o+4]))),
			TopTexture:    trimName(raw[o+4 : o+12]),
			BottomTexture: trimName(raw[o+12 : o+20]),
			MidTexture:    trimName(raw[o+20 : o+28]),
			Sector:        int(int16(binary.LittleEndian.Uint16(raw[o+28 : o+30]))),
		}
	}
	return nil
}

func (m *Map) loadLinedefs(f *wad.File, idx int) error {
	raw, err := f.Read(idx)
	if err != nil {
		return err
	}
	const rec = 14
	n := len(raw) / rec
	m.Linedefs = make([]Linedef, n)
	for i := 0; i < n; i++ {
		o := i * rec
		back := int(int16(binary.LittleEndian.Uint16(raw[o+12 : o+14])))
		flags := uint32(binary.LittleEndian.Uint16(raw[o+4 : o+6]))
		if back != -1 {
			flags |= LineTwoSided
		}
		m.Linedefs[i] = Linedef{
			V1:        int(int16(binary.LittleEndian.Uint16(raw[o : o+2]))),
			V2:        int(int16(binary.LittleEndian.Uint16(raw[o+2 : o+4]))),
			Flags:     flags,
			Special:   int(int16(binary.LittleEndian.Uint16(raw[o+6 : o+8]))),
			Tag:       int(int16(binary.LittleEndian.Uint16(raw[o+8 : o+10]))),
			FrontSide: int(int16(binary.LittleEndian.Uint16(raw[o+10 : o+12]))),
			BackSide:  back,
		}
	}
	return nil
}

func (m *Map) loadSectors(f *wad.File, idx int) error {
	raw, err := f.Read(idx)
	if err != nil {
		return err
	}
	const rec = 26
	n := len(raw) / rec
	m.Sectors = make([]Sector, n)
	for i := 0; i < n; i++ {
		o := i * rec
		m.Sectors[i] = Sector{
			FloorHeight:   float64(int16(binary.LittleEndian.Uint16(raw[o : o+2]))),
			CeilingHeight: float64(int16(binary.LittleEndian.Uint16(raw[o+2 : o+4]))),
			FloorFlat:     trimName(raw[o+4 : o+12]),
			CeilingFlat:   trimName(raw[o+12 : o+20]),
			LightLevel:    int(int16(binary.LittleEndian.Uint16(raw[o+20 : o+22]))),
			Special:       int(int16(binary.LittleEndian.Uint16(raw[o+22 : o+24]))),
			Tag:           int(int16(binary.LittleEndian.Uint16(raw[o+24 : o+26]))),
			ThingListHead: -1,
			SoundTarget:   -1,
			SpecialData:   -1,
		}
	}
	return nil
}

func (m *Map) loadSegs(f *wad.File, idx int) error {
	raw, err := f.Read(idx)
	if err != nil {
		return err
	}
	const rec = 12
	n := len(raw) / rec
	m.Segs = make([]Segment, n)
	for i := 0; i < n; i++ {
		o := i * rec
		v1 := int(int16(binary.LittleEndian.Uint16(raw[o : o+2])))
		v2 := int(int16(binary.LittleEndian.Uint16(raw[o+2 : o+4])))
		angleRaw := int16(binary.LittleEndian.Uint16(raw[o+4 : o+6]))
		lineIdx := int(int16(binary.LittleEndian.Uint16(raw[o+6 : o+8])))
		side := int(int16(binary.LittleEndian.Uint16(raw[o+8 : o+10])))
		offset := float64(int16(binary.LittleEndian.Uint16(raw[o+10 : o+12])))

		line := &m.Linedefs[lineIdx]
		var frontSideIdx, backSideIdx int
		if side == 0 {
			frontSideIdx, backSideIdx = line.FrontSide, line.BackSide
		} else {
			frontSideIdx, backSideIdx = line.BackSide, line.FrontSide
		}
		frontSector := m.Sidedefs[frontSideIdx].Sector
		backSector := -1
		if backSideIdx >= 0 {
			backSector = m.Sidedefs[backSideIdx].Sector
		}

		m.Segs[i] = Segment{
			V1:          v1,
			V2:          v2,
			Angle:       float64(angleRaw) * (math.Pi / 32768.0),
			Offset:      offset,
			Sidedef:     frontSideIdx,
			Linedef:     lineIdx,
			FrontSector: frontSector,
			BackSector:  backSector,
		}
	}
	return nil
}

func (m *Map) loadSubsectors(f *wad.File, idx int) error {
	raw, err := f.Read(idx)
	if err != nil {
		return err
	}
	const rec = 4
	n := len(raw) / rec
	m.SubSectors = make([]SubSector, n)
	for i := 0; i < n; i++ {
		o := i * rec
		count := int(int16(binary.LittleEndian.Uint16(raw[o : o+2])))
		first := int(int16(binary.LittleEndian.Uint16(raw[o+2 : o+4])))
		sector := -1
		if count > 0 {
			sector = m.Segs[first].FrontSector
		}
		m.SubSectors[i] = SubSector{StartSeg: first, SegCount: count, Sector: sector}
	}
	return nil
}

func (m *Map) loadNodes(f *wad.File, idx int) error {
	raw, err := f.Read(idx)
	if err != nil {
		return err
	}
	const rec = 28
	n := len(raw) / rec
	m.Nodes = make([]Node, n)
	for i := 0; i < n; i++ {
		o := i * rec
		nd := Node{
			X:  float64(int16(binary.LittleEndian.Uint16(raw[o : o+2]))),
			Y:  float64(int16(binary.LittleEndian.Uint16(raw[o+2 : o+4]))),
			DX: float64(int16(binary.LittleEndian.Uint16(raw[o+4 : o+6]))),
			DY: float64(int16(binary.LittleEndian.Uint16(raw[o+6 : o+8]))),
		}
		bo := o + 8
		for side := 0; side < 2; side++ {
			for k := 0; k < 4; k++ {
				v := float64(int16(binary.LittleEndian.Uint16(raw[bo : bo+2])))
				nd.BBox[side][k] = v
				bo += 2
			}
		}
		nd.Children[0] = int32(int16(binary.LittleEndian.Uint16(raw[bo : bo+2])))
		nd.Children[1] = int32(int16(binary.LittleEndian.Uint16(raw[bo+2 : bo+4])))
		// The on-disk encoding reserves the top bit of the 16-bit short
		// as the leaf marker; normalise it into our 32-bit LeafBit.
		for side := 0; side < 2; side++ {
			raw16 := binary.LittleEndian.Uint16(raw[bo+int(side)*2 : bo+int(side)*2+2])
			if raw16&0x8000 != 0 {
				nd.Children[side] = int32(raw16&0x7FFF) | LeafBit
			} else {
				nd.Children[side] = int32(int16(raw16))
			}
		}
		m.Nodes[i] = nd
	}
	return nil
}

func trimName(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

// ResetThingLists empties every sector's thing-list head; the level
// loader calls it before any MapObject is spawned. mapdata itself does
// not own the thing-list storage (it is intrusive through internal/mobj,
// spec §3 Sector).
func (m *Map) ResetThingLists() {
	for i := range m.Sectors {
		m.Sectors[i].ThingListHead = -1
	}
}
