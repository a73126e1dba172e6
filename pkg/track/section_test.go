package track

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchSectionFiresOnce(t *testing.T) {
	c, col := newTestClient(t, fixedNow("2025-08-31"))

	visibility := make(chan bool)
	c.WatchSection("about", visibility)

	visibility <- false
	visibility <- true

	// The watcher has already returned; further sends would block forever,
	// so probe with a non-blocking send.
	select {
	case visibility <- true:
		t.Fatal("watcher still consuming after first visible")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, c.Close())

	events := col.all()
	require.Len(t, events, 1)
	require.Equal(t, SectionView, events[0].Type)
	require.Equal(t, "about", events[0].Target)
}

func TestWatchSectionClosedChannelDoesNotFire(t *testing.T) {
	c, col := newTestClient(t, fixedNow("2025-08-31"))

	visibility := make(chan bool)
	c.WatchSection("projects", visibility)
	close(visibility)

	require.NoError(t, c.Close())
	require.Empty(t, col.all())
}

func TestWatchSectionDedupesAcrossWatchers(t *testing.T) {
	c, col := newTestClient(t, fixedNow("2025-08-31"))

	first := make(chan bool, 1)
	first <- true
	c.WatchSection("skills", first)

	// Give the first watcher time to claim the dedupe flag.
	time.Sleep(50 * time.Millisecond)

	second := make(chan bool, 1)
	second <- true
	c.WatchSection("skills", second)

	require.NoError(t, c.Close())
	require.Len(t, col.all(), 1)
}

func TestSectionWatcherCloseIsIdempotent(t *testing.T) {
	c, col := newTestClient(t, fixedNow("2025-08-31"))

	w := c.WatchSection("contact", make(chan bool))
	w.Close()
	w.Close()

	require.NoError(t, c.Close())
	require.Empty(t, col.all())
}

func TestPollVisibilityDeliversTrue(t *testing.T) {
	var calls atomic.Int32
	ch := PollVisibility(context.Background(), func() bool {
		return calls.Add(1) >= 3
	}, time.Millisecond)

	visible, ok := <-ch
	require.True(t, ok)
	require.True(t, visible)

	// The channel closes after the single delivery.
	_, ok = <-ch
	require.False(t, ok)
}

func TestPollVisibilityStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := PollVisibility(ctx, func() bool { return false }, time.Millisecond)
	cancel()

	select {
	case _, ok := <-ch:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel never closed after cancel")
	}
}

func TestPollVisibilityFeedsWatchSection(t *testing.T) {
	c, col := newTestClient(t, fixedNow("2025-08-31"))

	var visible atomic.Bool
	c.WatchSection("experience", PollVisibility(context.Background(), visible.Load, time.Millisecond))

	visible.Store(true)

	require.Eventually(t, func() bool {
		return len(col.all()) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, c.Close())
	require.Equal(t, "experience", col.all()[0].Target)
}
