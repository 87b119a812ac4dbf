package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a short, non-blocking message for the user.
type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Variant     Variant   `json:"variant"`
	Time        time.Time `json:"time"`
}

type Notifier interface {
	Notify(n Notification)
}

const defaultFeedSize = 50

// Feed keeps the most recent notifications in memory and logs each one.
type Feed struct {
	mu     sync.Mutex
	items  []Notification
	size   int
	logger *zap.Logger
	now    func() time.Time
}

func NewFeed(size int, logger *zap.Logger) *Feed {
	if size <= 0 {
		size = defaultFeedSize
	}
	return &Feed{size: size, logger: logger, now: time.Now}
}

func (f *Feed) Notify(n Notification) {
	if n.Variant == "" {
		n.Variant = VariantDefault
	}
	if n.Time.IsZero() {
		n.Time = f.now()
	}

	fields := []zap.Field{zap.String("title", n.Title), zap.String("description", n.Description)}
	if n.Variant == VariantDestructive {
		f.logger.Warn("user notification", fields...)
	} else {
		f.logger.Info("user notification", fields...)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, n)
	if len(f.items) > f.size {
		f.items = f.items[len(f.items)-f.size:]
	}
}

// Recent returns notifications newest first.
func (f *Feed) Recent() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Notification, len(f.items))
	for i, n := range f.items {
		out[len(f.items)-1-i] = n
	}
	return out
}

func (f *Feed) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = nil
}
