package telemetry

// DefaultHistorySize is how many recent samples a History keeps by default.
const DefaultHistorySize = 50

// History is a bounded buffer of the most recent samples, oldest first.
type History[T any] struct {
	buf   []T
	start int
	n     int
}

// NewHistory creates a history holding at most size samples.
func NewHistory[T any](size int) *History[T] {
	if size < 1 {
		size = DefaultHistorySize
	}
	return &History[T]{buf: make([]T, size)}
}

// Push appends v, evicting the oldest sample when full.
func (h *History[T]) Push(v T) {
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = v
		h.n++
		return
	}
	h.buf[h.start] = v
	h.start = (h.start + 1) % len(h.buf)
}

// Len returns the number of stored samples.
func (h *History[T]) Len() int { return h.n }

// Cap returns the maximum number of samples.
func (h *History[T]) Cap() int { return len(h.buf) }

// At returns the i-th oldest sample.
func (h *History[T]) At(i int) T {
	return h.buf[(h.start+i)%len(h.buf)]
}

// Last returns the newest sample, or the zero value when empty.
func (h *History[T]) Last() (T, bool) {
	var zero T
	if h.n == 0 {
		return zero, false
	}
	return h.At(h.n - 1), true
}

// Items copies the samples out, oldest first.
func (h *History[T]) Items() []T {
	out := make([]T, h.n)
	for i := range out {
		out[i] = h.At(i)
	}
	return out
}

// Clear drops every sample.
func (h *History[T]) Clear() {
	h.start, h.n = 0, 0
}
