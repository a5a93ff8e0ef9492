package channel

// Unbuffered is the debug mailbox: every Send rendezvouses with the
// consumer, so a stalled event loop shows up immediately as a blocked
// poster instead of a silently growing buffer.
type Unbuffered[T any] struct {
	ch chan T
}

// NewUnbuffered creates a rendezvous mailbox.
func NewUnbuffered[T any]() *Unbuffered[T] {
	return &Unbuffered[T]{ch: make(chan T)}
}

// Send hands v to the consumer, blocking until it is taken.
func (u *Unbuffered[T]) Send(v T) {
	u.ch <- v
}

// Receive exposes the mailbox for draining, usually with range.
func (u *Unbuffered[T]) Receive() <-chan T {
	return u.ch
}

// Len is always 0: a rendezvous mailbox never holds a value.
func (u *Unbuffered[T]) Len() int {
	return 0
}

// Close ends the mailbox.
func (u *Unbuffered[T]) Close() {
	close(u.ch)
}
