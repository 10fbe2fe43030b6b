package progrock

import (
	"io"
	"sync"

	"github.com/vito/progrock"
	"google.golang.org/protobuf/proto"
)

// Feed is a progrock.Writer that hands status updates to a single reader.
// Writes never block, so recording stays cheap even when no renderer is
// consuming the feed.
type Feed struct {
	mu      sync.Mutex
	backlog []*progrock.StatusUpdate
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// NewFeed creates a new empty Feed.
func NewFeed() *Feed {
	return &Feed{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// WriteStatus queues an update for the reader. The recorder mutates vertex
// messages in place after writing, so the queued update is a deep copy.
// Updates written after Close are dropped.
func (f *Feed) WriteStatus(update *progrock.StatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}

	snapshot, _ := proto.Clone(update).(*progrock.StatusUpdate)
	f.backlog = append(f.backlog, snapshot)
	select {
	case f.wake <- struct{}{}:
	default:
	}
	return nil
}

// Read returns the next queued update. It blocks until one is available
// and returns io.EOF once the feed is closed and drained.
func (f *Feed) Read() (*progrock.StatusUpdate, error) {
	for {
		f.mu.Lock()
		if len(f.backlog) > 0 {
			update := f.backlog[0]
			f.backlog = f.backlog[1:]
			f.mu.Unlock()
			return update, nil
		}
		closed := f.closed
		f.mu.Unlock()

		if closed {
			return nil, io.EOF
		}

		select {
		case <-f.wake:
		case <-f.done:
		}
	}
}

// Close marks the feed as finished. The reader drains the remaining
// backlog and then sees io.EOF. Close is idempotent.
func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.closed {
		f.closed = true
		close(f.done)
	}
	return nil
}
