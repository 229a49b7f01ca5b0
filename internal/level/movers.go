package level

import "github.com/doomcore/engine/internal/think"

// Sector movers (spec §4.4): each stores direction/target/speed and a
// back-reference to its sector, advances height once per tic clamping
// at the target, and unlinks itself when the motion completes. Only
// one mover may be attached to a sector at a time — enforced at spawn
// via Sector.SpecialData (spec §3), not here.

type doorState int

const (
	doorRaising doorState = iota
	doorWaitingOpen
	doorLowering
)

const (
	doorSpeed   = 2.0
	doorWaitTics = 150
)

// VerticalDoor raises a sector's ceiling to let things pass, waits,
// then lowers it again (spec §8 scenario 2: speed 2.0/tic, 150 tic
// wait, target = lowest adjacent ceiling minus 4).
type VerticalDoor struct {
	Sector       int
	X, Y         float64
	TopHeight    float64
	BottomHeight float64
	State        doorState
	Wait         int
	handle       think.Handle
}

func (d *VerticalDoor) SetHandle(h think.Handle) { d.handle = h }

// Reverse flips an in-progress door's direction (spec §8 scenario 2:
// "a second use during 'open' state reverses direction").
func (d *VerticalDoor) Reverse() {
	switch d.State {
	case doorRaising:
		d.State = doorLowering
	case doorLowering:
		d.State = doorRaising
	case doorWaitingOpen:
		d.State = doorLowering
	}
}

func (d *VerticalDoor) Think(ctx any) think.Outcome {
	lv, _ := ctx.(*Level)
	if lv == nil {
		return think.Continue
	}
	sec := &lv.MapData.Sectors[d.Sector]
	switch d.State {
	case doorRaising:
		sec.CeilingHeight += doorSpeed
		if sec.CeilingHeight >= d.TopHeight {
			sec.CeilingHeight = d.TopHeight
			d.State = doorWaitingOpen
			d.Wait = doorWaitTics
			lv.PlaySound("dorcls", d.X, d.Y)
		}
	case doorWaitingOpen:
		d.Wait--
		if d.Wait <= 0 {
			d.State = doorLowering
			lv.PlaySound("dorcls", d.X, d.Y)
		}
	case doorLowering:
		sec.CeilingHeight -= doorSpeed
		if sec.CeilingHeight <= d.BottomHeight {
			sec.CeilingHeight = d.BottomHeight
			sec.SpecialData = -1
			return think.Remove
		}
	}
	return think.Continue
}

type platformState int

const (
	platLowering platformState = iota
	platWaitingDown
	platRaising
)

const (
	platSpeed    = 4.0
	platWaitTics = 105
)

// Platform is a lift: lowers to the sector's lowest neighboring floor,
// waits, then raises back to its starting height.
type Platform struct {
	Sector  int
	X, Y    float64
	Low     float64
	High    float64
	State   platformState
	Wait    int
	handle  think.Handle
}

func (p *Platform) SetHandle(h think.Handle) { p.handle = h }

func (p *Platform) Think(ctx any) think.Outcome {
	lv, _ := ctx.(*Level)
	if lv == nil {
		return think.Continue
	}
	sec := &lv.MapData.Sectors[p.Sector]
	switch p.State {
	case platLowering:
		sec.FloorHeight -= platSpeed
		if sec.FloorHeight <= p.Low {
			sec.FloorHeight = p.Low
			p.State = platWaitingDown
			p.Wait = platWaitTics
			lv.PlaySound("pstart", p.X, p.Y)
		}
	case platWaitingDown:
		p.Wait--
		if p.Wait <= 0 {
			p.State = platRaising
			lv.PlaySound("pstart", p.X, p.Y)
		}
	case platRaising:
		sec.FloorHeight += platSpeed
		if sec.FloorHeight >= p.High {
			sec.FloorHeight = p.High
			sec.SpecialData = -1
			return think.Remove
		}
	}
	return think.Continue
}

// FloorMove is a one-shot floor raise/lower to a target height.
type FloorMove struct {
	Sector    int
	Target    float64
	Speed     float64
	Direction float64 // +1 raising, -1 lowering
	handle    think.Handle
}

func (f *FloorMove) SetHandle(h think.Handle) { f.handle = h }

func (f *FloorMove) Think(ctx any) think.Outcome {
	lv, _ := ctx.(*Level)
	if lv == nil {
		return think.Continue
	}
	sec := &lv.MapData.Sectors[f.Sector]
	sec.FloorHeight += f.Speed * f.Direction
	done := (f.Direction > 0 && sec.FloorHeight >= f.Target) || (f.Direction < 0 && sec.FloorHeight <= f.Target)
	if done {
		sec.FloorHeight = f.Target
		sec.SpecialData = -1
		return think.Remove
	}
	return think.Continue
}

// CeilingMove is a one-shot ceiling raise/lower to a target height.
type CeilingMove struct {
	Sector    int
	Target    float64
	Speed     float64
	Direction float64
	handle    think.Handle
}

func (c *CeilingMove) SetHandle(h think.Handle) { c.handle = h }

func (c *CeilingMove) Think(ctx any) think.Outcome {
	lv, _ := ctx.(*Level)
	if lv == nil {
		return think.Continue
	}
	sec := &lv.MapData.Sectors[c.Sector]
	sec.CeilingHeight += c.Speed * c.Direction
	done := (c.Direction > 0 && sec.CeilingHeight >= c.Target) || (c.Direction < 0 && sec.CeilingHeight <= c.Target)
	if done {
		sec.CeilingHeight = c.Target
		sec.SpecialData = -1
		return think.Remove
	}
	return think.Continue
}
