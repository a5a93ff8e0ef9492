// Package notify implements the transient notification bar: one visible
// message at a time, auto-dismissed after a fixed duration.
package notify

import (
	"sync"
	"time"
)

// Style selects the visual treatment of a message.
type Style string

const (
	StyleInfo  Style = "info"
	StyleError Style = "error"
)

// DefaultDismiss is how long a message stays visible.
const DefaultDismiss = 4 * time.Second

// Sink receives bar updates. Show is called for each new message, Clear
// when the dismiss timer fires.
type Sink interface {
	Show(message string, style Style)
	Clear()
}

// Bar is the shared notification area. Showing a new message while a
// previous dismiss timer is pending cancels the old timer and restarts the
// countdown.
type Bar struct {
	mu      sync.Mutex
	sink    Sink
	dismiss time.Duration
	timer   *time.Timer

	message string
	style   Style
	visible bool
	gen     uint64
}

// NewBar creates a bar delivering updates to sink. A non-positive dismiss
// duration falls back to DefaultDismiss.
func NewBar(sink Sink, dismiss time.Duration) *Bar {
	if dismiss <= 0 {
		dismiss = DefaultDismiss
	}
	return &Bar{sink: sink, dismiss: dismiss}
}

// Show displays a message, replacing any current one and its pending timer.
func (b *Bar) Show(message string, style Style) {
	b.mu.Lock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.message = message
	b.style = style
	b.visible = true
	b.gen++
	gen := b.gen
	b.timer = time.AfterFunc(b.dismiss, func() { b.clear(gen) })
	sink := b.sink
	b.mu.Unlock()

	if sink != nil {
		sink.Show(message, style)
	}
}

// clear dismisses the message that armed the timer. A timer that fires
// after its message was replaced must not wipe the replacement, so each
// Show stamps a generation and a stale clear is a no-op.
func (b *Bar) clear(gen uint64) {
	b.mu.Lock()
	if gen != b.gen {
		b.mu.Unlock()
		return
	}
	b.message = ""
	b.visible = false
	sink := b.sink
	b.mu.Unlock()

	if sink != nil {
		sink.Clear()
	}
}

// Current returns the visible message, if any.
func (b *Bar) Current() (message string, style Style, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.message, b.style, b.visible
}
