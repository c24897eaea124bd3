package docstring

import (
	"container/list"
	"sync"
)

// DefaultPoolSize is the default converter pool capacity.
const DefaultPoolSize = 127

// Pool is a fixed-capacity, least-recently-used cache of converters keyed by
// their normalized options. Converters are stateless, so pooling is purely a
// construction-cost optimization; a Pool is never required for correctness.
// Safe for concurrent use.
type Pool struct {
	mu       sync.Mutex
	capacity int
	entries  map[Options]*list.Element
	order    *list.List // front = most recently used
}

type poolEntry struct {
	opts Options
	conv *Converter
}

// NewPool creates a pool holding at most capacity converters. A
// non-positive capacity selects DefaultPoolSize.
func NewPool(capacity int) *Pool {
	if capacity <= 0 {
		capacity = DefaultPoolSize
	}
	return &Pool{
		capacity: capacity,
		entries:  make(map[Options]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the cached converter for the given options, building and
// caching one if needed. Two option sets normalizing to the same
// configuration share one converter. The least recently used entry is
// evicted when the pool is full.
func (p *Pool) Get(opts Options) (*Converter, error) {
	norm, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if el, ok := p.entries[norm]; ok {
		p.order.MoveToFront(el)
		return el.Value.(*poolEntry).conv, nil
	}

	conv := newConverter(norm)
	p.entries[norm] = p.order.PushFront(&poolEntry{opts: norm, conv: conv})

	for p.order.Len() > p.capacity {
		oldest := p.order.Back()
		p.order.Remove(oldest)
		delete(p.entries, oldest.Value.(*poolEntry).opts)
	}
	return conv, nil
}

// Len reports the number of cached converters.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.order.Len()
}
