package opl

import "testing"

// TestRegisterWriteIdempotent exercises spec §8's OPL round-trip
// property: writing a register twice with the same value is a no-op
// after the first — no envelope retrigger unless the key-on bit makes
// a 0->1 transition.
func TestRegisterWriteIdempotent(t *testing.T) {
	c := NewChip(49716)

	// Set up channel 0's frequency and a non-zero attack rate, then
	// key it on.
	c.HandleRegisterWrite(0xA0, 0x50)        // F-Number low byte
	c.HandleRegisterWrite(0x60, 0xA5)        // attack=10, decay=5
	c.HandleRegisterWrite(0xB0, 0x20|0x01|(0x01<<2))
	if c.channels[0].ops[0].state != envAttack {
		t.Fatalf("key-on did not start the attack stage, state=%v", c.channels[0].ops[0].state)
	}

	// Advance a handful of samples so the envelope progresses away from
	// the attack-stage reset point.
	for i := 0; i < 50; i++ {
		c.GenerateSample()
	}
	stateAfterAttack := c.channels[0].ops[0].state
	levelAfterAttack := c.channels[0].ops[0].level
	phaseAfterAttack := c.channels[0].ops[0].phase

	// Re-writing the identical key-on register value must not restart
	// the envelope (phase would reset to 0, state back to envAttack).
	c.HandleRegisterWrite(0xB0, 0x20|0x01|(0x01<<2))

	if c.channels[0].ops[0].state != stateAfterAttack {
		t.Fatalf("redundant key-on write changed envelope state: %v -> %v", stateAfterAttack, c.channels[0].ops[0].state)
	}
	if c.channels[0].ops[0].level != levelAfterAttack {
		t.Fatalf("redundant key-on write changed envelope level: %v -> %v", levelAfterAttack, c.channels[0].ops[0].level)
	}
	if c.channels[0].ops[0].phase != phaseAfterAttack {
		t.Fatalf("redundant key-on write reset phase: %v -> %v", phaseAfterAttack, c.channels[0].ops[0].phase)
	}
}

// TestKeyOnTransitionRetriggers is the flip side: an actual 0->1
// key-on transition must restart the envelope from the attack stage.
func TestKeyOnTransitionRetriggers(t *testing.T) {
	c := NewChip(49716)
	c.HandleRegisterWrite(0xA0, 0x50)
	c.HandleRegisterWrite(0x60, 0xA5)
	c.HandleRegisterWrite(0xB0, 0x20|0x01|(0x01<<2))
	for i := 0; i < 50; i++ {
		c.GenerateSample()
	}

	// Key off, then on again: this must reset phase and re-enter the
	// attack stage.
	c.HandleRegisterWrite(0xB0, 0x01|(0x01<<2))
	if c.channels[0].ops[0].state != envRelease {
		t.Fatalf("key-off did not enter release, state=%v", c.channels[0].ops[0].state)
	}
	c.HandleRegisterWrite(0xB0, 0x20|0x01|(0x01<<2))
	if c.channels[0].ops[0].state != envAttack {
		t.Fatalf("0->1 key-on transition did not restart attack, state=%v", c.channels[0].ops[0].state)
	}
	if c.channels[0].ops[0].phase != 0 {
		t.Fatalf("0->1 key-on transition did not reset phase, phase=%v", c.channels[0].ops[0].phase)
	}
}
