// Package channel provides the generic mailbox the event loop consumes
// tasks from. The buffered form serves production, the unbuffered form
// debug builds; the loop only sees the interfaces.
package channel

// Receiver is the consuming side of a mailbox.
type Receiver[T any] interface {
	Receive() <-chan T
	Len() int
}

// Sender is the posting side of a mailbox.
type Sender[T any] interface {
	Send(T)
}

// Channel is a mailbox the owner can also close.
type Channel[T any] interface {
	Receiver[T]
	Sender[T]
	Close()
}
