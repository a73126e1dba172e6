// Package track is the analytics tracking client for the portfolio backend.
// It emits at most one event per (type, target, calendar day) using a
// persistent dedupe-flag store, without asking the server about prior state.
// All sends are fire-and-forget: failures are logged and dropped.
package track

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// EventType enumerates the collector's accepted event kinds.
type EventType string

const (
	PageView    EventType = "pageView"
	SectionView EventType = "sectionView"
	Click       EventType = "click"
)

// Dedupe flags expire after a week; the daily housekeeping pass deletes
// them by embedded date as well.
const dedupeTTL = 7 * 24 * time.Hour

var (
	eventsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "track",
			Name:      "events_sent_total",
			Help:      "Tracking events posted to the collector.",
		},
		[]string{"type"},
	)
	eventsSuppressedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "track",
			Name:      "events_suppressed_total",
			Help:      "Tracking events suppressed by the daily dedupe flags.",
		},
		[]string{"type"},
	)
)

type trackEvent struct {
	Type      EventType `json:"type"`
	Target    string    `json:"target"`
	SessionID string    `json:"sessionId"`
	Timestamp int64     `json:"timestamp"`
}

// Options configures a Client. Endpoint is the collector URL
// (…/api/analytics/track). A nil Store falls back to an in-memory store,
// which dedupes only within the process lifetime.
type Options struct {
	Endpoint   string
	Store      DedupeStore
	Logger     zerolog.Logger
	HTTPClient *http.Client
	Now        func() time.Time
}

// Client posts analytics events. A session id is generated once per client
// and attached to every event as metadata; it plays no part in dedupe.
type Client struct {
	endpoint  string
	store     DedupeStore
	sessionID string
	httpc     *http.Client
	log       zerolog.Logger
	now       func() time.Time

	wg   sync.WaitGroup
	stop chan struct{}
}

// New builds a Client and starts its daily housekeeping pass.
func New(opts Options) *Client {
	c := &Client{
		endpoint:  opts.Endpoint,
		store:     opts.Store,
		sessionID: uuid.NewString(),
		httpc:     opts.HTTPClient,
		log:       opts.Logger,
		now:       opts.Now,
		stop:      make(chan struct{}),
	}
	if c.store == nil {
		c.store = NewMemoryStore()
	}
	if c.httpc == nil {
		c.httpc = &http.Client{Timeout: 2 * time.Second}
	}
	if c.now == nil {
		c.now = time.Now
	}

	c.wg.Add(1)
	go c.housekeeping()

	return c
}

// SessionID returns the client's session identifier.
func (c *Client) SessionID() string {
	return c.sessionID
}

// TrackPageView records a page view at most once per page per calendar day.
func (c *Client) TrackPageView(page string) {
	if !c.markOnce(PageView, page) {
		return
	}
	c.send(PageView, page)
}

// TrackClick records a click. With deduplicatePerDay the click is counted
// at most once per target per calendar day; otherwise every call sends.
func (c *Client) TrackClick(target string, deduplicatePerDay bool) {
	if deduplicatePerDay && !c.markOnce(Click, target) {
		return
	}
	c.send(Click, target)
}

// Close is the client's flush point: it stops housekeeping, waits for
// in-flight sends and closes the dedupe store.
func (c *Client) Close() error {
	close(c.stop)
	c.wg.Wait()
	return c.store.Close()
}

// dayKey is the client-local calendar date. The server buckets by its own
// UTC day, so the two can disagree around midnight; that mismatch is
// inherited behavior and deliberately not resolved here.
func (c *Client) dayKey() string {
	return c.now().Format("2006-01-02")
}

func (c *Client) dedupeKey(t EventType, target string) string {
	return "analytics:" + string(t) + ":" + target + ":" + c.dayKey()
}

// markOnce reports whether the event should be sent. Store failures fail
// open: a duplicate sent beats an event lost.
func (c *Client) markOnce(t EventType, target string) bool {
	marked, err := c.store.MarkOnce(c.dedupeKey(t, target), dedupeTTL)
	if err != nil {
		c.log.Error().Err(err).Str("type", string(t)).Str("target", target).Msg("dedupe store failure")
		return true
	}
	if !marked {
		eventsSuppressedTotal.WithLabelValues(string(t)).Inc()
	}
	return marked
}

// send posts the event in a goroutine; callers never wait on the result.
func (c *Client) send(t EventType, target string) {
	ev := trackEvent{
		Type:      t,
		Target:    target,
		SessionID: c.sessionID,
		Timestamp: c.now().UnixMilli(),
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		body, err := json.Marshal(ev)
		if err != nil {
			c.log.Error().Err(err).Msg("failed to encode tracking event")
			return
		}
		resp, err := c.httpc.Post(c.endpoint, "application/json", bytes.NewReader(body))
		if err != nil {
			c.log.Error().Err(err).Str("type", string(t)).Str("target", target).Msg("tracking post failed")
			return
		}
		resp.Body.Close()
		eventsSentTotal.WithLabelValues(string(t)).Inc()
	}()
}

// housekeeping deletes dedupe flags older than seven days, once at startup
// and then daily.
func (c *Client) housekeeping() {
	defer c.wg.Done()

	c.cleanupOnce()

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupOnce()
		case <-c.stop:
			return
		}
	}
}

func (c *Client) cleanupOnce() {
	cutoff := c.now().AddDate(0, 0, -7).Format("2006-01-02")
	n, err := c.store.DeleteOlderThan(cutoff)
	if err != nil {
		c.log.Error().Err(err).Msg("dedupe cleanup failed")
		return
	}
	if n > 0 {
		c.log.Debug().Int("deleted", n).Msg("dedupe cleanup completed")
	}
}
