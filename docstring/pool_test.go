package docstring

import "testing"

func TestPool_ReusesConverter(t *testing.T) {
	p := NewPool(4)
	a, err := p.Get(DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Get(DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("same options returned distinct converters")
	}
	if p.Len() != 1 {
		t.Errorf("pool size = %d, want 1", p.Len())
	}
}

func TestPool_NormalizedOptionsShareEntry(t *testing.T) {
	p := NewPool(4)
	a, err := p.Get(Options{TabSize: DefaultTabSize, InBullets: DefaultInBullets})
	if err != nil {
		t.Fatal(err)
	}
	// Zero values normalize to the same configuration.
	b, err := p.Get(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("equivalent options created a second converter")
	}
}

func TestPool_EvictsLeastRecentlyUsed(t *testing.T) {
	p := NewPool(2)
	optsAt := func(tabSize int) Options {
		o := DefaultOptions()
		o.TabSize = tabSize
		return o
	}

	first, err := p.Get(optsAt(2))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Get(optsAt(3)); err != nil {
		t.Fatal(err)
	}
	// Touch the first entry so the second becomes the eviction victim.
	if _, err := p.Get(optsAt(2)); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Get(optsAt(5)); err != nil {
		t.Fatal(err)
	}

	if p.Len() != 2 {
		t.Fatalf("pool size = %d, want capacity 2", p.Len())
	}
	again, err := p.Get(optsAt(2))
	if err != nil {
		t.Fatal(err)
	}
	if again != first {
		t.Error("recently used entry was evicted")
	}
}

func TestPool_InvalidOptions(t *testing.T) {
	p := NewPool(0)
	if _, err := p.Get(Options{TabSize: -1}); err == nil {
		t.Error("expected configuration error")
	}
	if p.Len() != 0 {
		t.Errorf("pool cached an invalid configuration, size = %d", p.Len())
	}
}
