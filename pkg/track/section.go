package track

import (
	"context"
	"sync"
	"time"
)

// SectionWatcher is a one-shot subscription to a section's visibility: the
// first true it receives records a sectionView (subject to the daily dedupe
// flag) and the subscription ends. Close releases it early and is
// idempotent.
type SectionWatcher struct {
	done      chan struct{}
	closeOnce sync.Once
}

// WatchSection subscribes to a visibility signal for the named section.
// Callers feed visibility transitions on the channel; closing the channel
// releases the watcher without firing.
func (c *Client) WatchSection(section string, visibility <-chan bool) *SectionWatcher {
	w := &SectionWatcher{done: make(chan struct{})}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-w.done:
				return
			case <-c.stop:
				return
			case visible, ok := <-visibility:
				if !ok {
					return
				}
				if !visible {
					continue
				}
				if c.markOnce(SectionView, section) {
					c.send(SectionView, section)
				}
				return
			}
		}
	}()

	return w
}

// Close releases the watcher.
func (w *SectionWatcher) Close() {
	w.closeOnce.Do(func() { close(w.done) })
}

// PollVisibility adapts a polled predicate to a visibility channel for
// WatchSection, for sections that may not exist yet when tracking is wired
// up. It polls until the predicate first reports true, then closes the
// channel.
func PollVisibility(ctx context.Context, visible func() bool, interval time.Duration) <-chan bool {
	ch := make(chan bool, 1)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			if visible() {
				ch <- true
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return ch
}
