//go:build debug

package channel

// New builds the mailbox the event loop runs on. Debug builds get a
// rendezvous mailbox, ignoring size, so loop stalls surface at the
// posting site.
func New[T any](size int) Channel[T] {
	return NewUnbuffered[T]()
}
