// Package flash bridges server-supplied flash messages to a toast sink,
// deduplicating repeats across re-renders. Seen messages are tracked in a
// bounded set keyed category:message with oldest-first eviction, so a
// long-lived session cannot grow it without limit.
package flash

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultCapacity bounds the seen-message set when no capacity is given.
const DefaultCapacity = 128

// Message is one flash entry.
type Message struct {
	Category string
	Body     string
}

// Option customises a Bridge.
type Option func(*Bridge)

// WithCapacity bounds the dedupe set.
func WithCapacity(n int) Option {
	return func(b *Bridge) {
		if n > 0 {
			b.capacity = n
		}
	}
}

// Bridge forwards unseen messages to a sink. Bodies are sanitised before
// display; markup is stripped to plain text.
type Bridge struct {
	sink     func(Message)
	capacity int

	seen  map[string]struct{}
	order []string
}

// New constructs a bridge delivering to sink.
func New(sink func(Message), options ...Option) *Bridge {
	b := &Bridge{
		sink:     sink,
		capacity: DefaultCapacity,
		seen:     make(map[string]struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Publish delivers the message unless an identical category:message pair was
// already shown. Empty bodies (before or after sanitisation) are dropped.
// Reports whether the message reached the sink.
func (b *Bridge) Publish(category, body string) bool {
	clean := Sanitize(body)
	if clean == "" {
		return false
	}

	key := category + ":" + clean
	if _, dup := b.seen[key]; dup {
		return false
	}
	b.remember(key)

	if b.sink != nil {
		b.sink(Message{Category: category, Body: clean})
	}
	return true
}

// Len returns the current size of the seen set.
func (b *Bridge) Len() int {
	return len(b.seen)
}

func (b *Bridge) remember(key string) {
	for len(b.order) >= b.capacity {
		oldest := b.order[0]
		b.order = b.order[1:]
		delete(b.seen, oldest)
	}
	b.seen[key] = struct{}{}
	b.order = append(b.order, key)
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Sanitize strips markup from a server-supplied message body, leaving plain
// text suitable for a toast.
func Sanitize(body string) string {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return ""
	}
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(policy.Sanitize(trimmed))
}
