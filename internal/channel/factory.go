//go:build !debug

package channel

// New builds the mailbox the event loop runs on. Production builds get a
// buffered mailbox so gesture handlers and remote completions never wait
// on the loop.
func New[T any](size int) Channel[T] {
	return NewBuffered[T](size)
}
