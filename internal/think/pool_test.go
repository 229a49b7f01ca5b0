package think

import "testing"

type stub struct {
	handle    Handle
	removeAt  int
	tick      int
	ran       int
	removeSelf Handle
	pool      *Pool
}

func (s *stub) SetHandle(h Handle) { s.handle = h }

func (s *stub) Think(ctx any) Outcome {
	s.ran++
	s.tick++
	if s.removeAt > 0 && s.tick >= s.removeAt {
		return Remove
	}
	return Continue
}

func TestPushLinksAndResolves(t *testing.T) {
	p := New(4)
	s := &stub{}
	h, ok := p.Push(VariantMapObject, s)
	if !ok {
		t.Fatal("push failed on empty pool")
	}
	if p.Resolve(h) != s {
		t.Fatal("resolve did not return pushed payload")
	}
	if p.Len() != 1 {
		t.Fatalf("len = %d, want 1", p.Len())
	}
}

func TestFullPoolPushFails(t *testing.T) {
	p := New(2)
	p.Push(VariantMapObject, &stub{})
	p.Push(VariantMapObject, &stub{})
	if _, ok := p.Push(VariantMapObject, &stub{}); ok {
		t.Fatal("push on full pool should fail")
	}
}

func TestStaleHandleAfterRemove(t *testing.T) {
	p := New(4)
	s := &stub{}
	h, _ := p.Push(VariantMapObject, s)
	p.Remove(h)
	if p.Resolve(h) != nil {
		t.Fatal("resolve should fail for a removed handle")
	}
	// Next push reuses the freed slot with a bumped generation.
	h2, _ := p.Push(VariantMapObject, &stub{})
	if h2.Index != h.Index {
		t.Fatalf("expected slot reuse at index %d, got %d", h.Index, h2.Index)
	}
	if h2.Generation == h.Generation {
		t.Fatal("generation should change on slot reuse")
	}
	if p.Resolve(h) != nil {
		t.Fatal("old handle must not resolve to the new occupant")
	}
}

// TestRemovalDuringIteration exercises spec §8 scenario 6: a thinker
// that removes itself this tic must not be dereferenced afterward,
// and iteration must continue to the correctly-captured next node.
func TestRemovalDuringIteration(t *testing.T) {
	p := New(8)
	a := &stub{removeAt: 1}
	b := &stub{}
	c := &stub{}
	p.Push(VariantMapObject, a)
	p.Push(VariantMapObject, b)
	p.Push(VariantMapObject, c)

	p.Run(nil)

	if p.Len() != 2 {
		t.Fatalf("len after removal = %d, want 2", p.Len())
	}
	if b.ran != 1 || c.ran != 1 {
		t.Fatalf("expected b and c to run exactly once, got b=%d c=%d", b.ran, c.ran)
	}
	if p.Resolve(a.handle) != nil {
		t.Fatal("removed thinker's handle must not resolve")
	}

	// A second run must still visit the survivors exactly once each,
	// proving the circular list healed correctly.
	p.Run(nil)
	if b.ran != 2 || c.ran != 2 {
		t.Fatalf("expected second run to visit survivors once each, got b=%d c=%d", b.ran, c.ran)
	}
}

func TestMarkRemoveDeferredToEndOfTic(t *testing.T) {
	p := New(4)
	a := &stub{}
	h, _ := p.Push(VariantMapObject, a)
	p.MarkRemove(h)
	if p.Resolve(h) == nil {
		t.Fatal("MarkRemove must not unlink immediately")
	}
	p.Run(nil)
	if p.Resolve(h) != nil {
		t.Fatal("pending removal should be applied by the next Run")
	}
}

func TestFindLinearScan(t *testing.T) {
	p := New(4)
	a := &stub{}
	b := &stub{}
	p.Push(VariantMapObject, a)
	hb, _ := p.Push(VariantVerticalDoor, b)

	found := p.Find(func(v Variant, payload Thinker) bool { return v == VariantVerticalDoor })
	if found != hb {
		t.Fatalf("find returned %+v, want %+v", found, hb)
	}
}
