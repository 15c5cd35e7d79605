package model

// Ring is a bounded buffer that overwrites its oldest element once full.
// It is used as a stack (Push/Pop newest) and read oldest-first via
// Snapshot. Not safe for concurrent use.
type Ring[T any] struct {
	buf     []T
	cap     int
	start   int
	size    int
	dropped uint64
}

func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{cap: capacity, buf: make([]T, capacity)}
}

func (r *Ring[T]) Push(v T) {
	if r.size < r.cap {
		r.buf[(r.start+r.size)%r.cap] = v
		r.size++
		return
	}
	// overwrite oldest
	r.buf[r.start] = v
	r.start = (r.start + 1) % r.cap
	r.dropped++
}

// Pop removes and returns the newest element.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	idx := (r.start + r.size - 1) % r.cap
	v := r.buf[idx]
	r.buf[idx] = zero
	r.size--
	return v, true
}

// Peek returns the newest element without removing it.
func (r *Ring[T]) Peek() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	return r.buf[(r.start+r.size-1)%r.cap], true
}

// Snapshot returns the elements oldest first.
func (r *Ring[T]) Snapshot() []T {
	out := make([]T, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.start+i)%r.cap]
	}
	return out
}

func (r *Ring[T]) Len() int        { return r.size }
func (r *Ring[T]) Cap() int        { return r.cap }
func (r *Ring[T]) Dropped() uint64 { return r.dropped }

func (r *Ring[T]) Clear() {
	var zero T
	for i := range r.buf {
		r.buf[i] = zero
	}
	r.size = 0
	r.start = 0
}

// Resize changes the capacity, keeping the newest elements that fit.
func (r *Ring[T]) Resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	items := r.Snapshot()
	if len(items) > capacity {
		r.dropped += uint64(len(items) - capacity)
		items = items[len(items)-capacity:]
	}
	r.buf = make([]T, capacity)
	copy(r.buf, items)
	r.cap = capacity
	r.start = 0
	r.size = len(items)
}
