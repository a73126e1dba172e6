package handlers

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "portfolio/internal/db"
)

// TrackEvent payload. SessionID and Timestamp are client metadata and are
// not used for deduplication or bucketing; the server's own UTC wall clock
// picks the counter row.
type trackRequest struct {
	Type      string `json:"type"`
	Target    string `json:"target"`
	SessionID string `json:"sessionId,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

const (
	eventPageView    = "pageView"
	eventSectionView = "sectionView"
	eventClick       = "click"
)

// TrackEvent handles POST /api/analytics/track: validates the event and
// applies a single atomic increment to today's counter row. Invalid events
// touch no counter.
func TrackEvent(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var req trackRequest
		if !decodeBody(ctx, &req) {
			return
		}
		if req.Type == "" || req.Target == "" {
			eventsRejectedTotal.Inc()
			errResponse(ctx, fasthttp.StatusBadRequest, "missing required fields")
			return
		}

		today := dbpkg.DayKey(time.Now())

		var err error
		switch req.Type {
		case eventPageView:
			err = dbpkg.IncrementViews(db, today)
		case eventSectionView:
			err = dbpkg.IncrementSectionView(db, today, req.Target)
		case eventClick:
			err = dbpkg.IncrementClick(db, today, req.Target)
		default:
			eventsRejectedTotal.Inc()
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid tracking type")
			return
		}

		if err != nil {
			// Telemetry is best-effort: the event is dropped, not queued.
			log.Error().Err(err).Str("type", req.Type).Str("target", req.Target).Msg("failed to track event")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to track event")
			return
		}

		eventsTotal.WithLabelValues(req.Type, req.Target).Inc()
		jsonResponse(ctx, fasthttp.StatusOK, map[string]any{"success": true})
	}
}

// AnalyticsSummary handles GET /api/analytics: fetches the last 30 days of
// counters newest-first and reduces them into totals plus the daily series.
func AnalyticsSummary(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := dbpkg.WindowStart(time.Now(), 30)

		counters, err := dbpkg.CountersSince(db, start)
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch analytics")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to fetch analytics")
			return
		}

		jsonResponse(ctx, fasthttp.StatusOK, dbpkg.Summarize(counters))
	}
}

// RecordPageView handles POST /api/analytics, the legacy page-view endpoint
// the public homepage calls on load. It increments today's views and echoes
// the day's counter row.
func RecordPageView(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		today := dbpkg.DayKey(time.Now())

		if err := dbpkg.IncrementViews(db, today); err != nil {
			log.Error().Err(err).Msg("failed to track view")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to track view")
			return
		}
		eventsTotal.WithLabelValues(eventPageView, "home").Inc()

		counter, err := dbpkg.CounterByDate(db, today)
		if err != nil {
			log.Error().Err(err).Msg("failed to load daily counter")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to track view")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, counter)
	}
}
