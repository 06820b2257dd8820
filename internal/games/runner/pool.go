package runner

// Handle identifies a slot in a Pool. Handles stay valid for the lifetime of
// the pool because slots are never freed.
type Handle int

type slot[K comparable, T any] struct {
	kind   K
	active bool
	item   T
}

// Pool is an arena of reusable entities with one free-slot stack per kind.
// Acquire and Release are O(1); the arena only grows, and only when a kind
// has no inactive slot left.
type Pool[K comparable, T any] struct {
	slots     []slot[K, T]
	free      map[K][]Handle
	construct func(K) T
	active    int
}

// NewPool creates a pool that builds new entities with construct.
func NewPool[K comparable, T any](construct func(K) T) *Pool[K, T] {
	return &Pool[K, T]{
		free:      make(map[K][]Handle),
		construct: construct,
	}
}

// Prewarm constructs n inactive entities of kind so the first spawns of a
// run do not allocate.
func (p *Pool[K, T]) Prewarm(kind K, n int) {
	for range n {
		h := Handle(len(p.slots))
		p.slots = append(p.slots, slot[K, T]{kind: kind, item: p.construct(kind)})
		p.free[kind] = append(p.free[kind], h)
	}
}

// Acquire returns an active entity of kind, reusing an inactive one when
// available and constructing a new one otherwise.
func (p *Pool[K, T]) Acquire(kind K) (Handle, *T) {
	var h Handle
	if stack := p.free[kind]; len(stack) > 0 {
		h = stack[len(stack)-1]
		p.free[kind] = stack[:len(stack)-1]
	} else {
		h = Handle(len(p.slots))
		p.slots = append(p.slots, slot[K, T]{kind: kind, item: p.construct(kind)})
	}
	s := &p.slots[h]
	s.active = true
	p.active++
	return h, &s.item
}

// Release deactivates the entity and makes it eligible for reuse.
// Releasing an inactive handle is a no-op.
func (p *Pool[K, T]) Release(h Handle) {
	s := &p.slots[h]
	if !s.active {
		return
	}
	s.active = false
	p.active--
	p.free[s.kind] = append(p.free[s.kind], h)
}

// ReleaseAll deactivates every entity.
func (p *Pool[K, T]) ReleaseAll() {
	for h := range p.slots {
		p.Release(Handle(h))
	}
}

// Get returns the entity in slot h. The pointer is only valid until the
// next Acquire, which may grow the arena.
func (p *Pool[K, T]) Get(h Handle) *T {
	return &p.slots[h].item
}

// Kind returns the kind the slot was constructed for.
func (p *Pool[K, T]) Kind(h Handle) K {
	return p.slots[h].kind
}

// IsActive reports whether slot h is currently in use.
func (p *Pool[K, T]) IsActive(h Handle) bool {
	return p.slots[h].active
}

// Size returns the number of constructed entities.
func (p *Pool[K, T]) Size() int {
	return len(p.slots)
}

// Active returns the number of entities currently in use.
func (p *Pool[K, T]) Active() int {
	return p.active
}
