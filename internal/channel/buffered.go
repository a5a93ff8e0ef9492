package channel

// Buffered is the production mailbox: posting does not block the caller
// until the buffer is full.
type Buffered[T any] struct {
	ch chan T
}

// NewBuffered creates a mailbox holding up to size pending values.
func NewBuffered[T any](size int) *Buffered[T] {
	return &Buffered[T]{ch: make(chan T, size)}
}

// Send enqueues v, blocking only when the buffer is full.
func (b *Buffered[T]) Send(v T) {
	b.ch <- v
}

// Receive exposes the mailbox for draining, usually with range.
func (b *Buffered[T]) Receive() <-chan T {
	return b.ch
}

// Len reports how many values are waiting.
func (b *Buffered[T]) Len() int {
	return len(b.ch)
}

// Close ends the mailbox. Receive's channel drains, then closes.
func (b *Buffered[T]) Close() {
	close(b.ch)
}
