package db

import "encoding/json"

// DailyStat is one day of the summary series with the jsonb maps flattened
// to plain string->int64 form for transport.
type DailyStat struct {
	Date         string           `json:"date"`
	Views        int64            `json:"views"`
	SectionViews map[string]int64 `json:"sectionViews"`
	Clicks       map[string]int64 `json:"clicks"`
}

// Summary is the aggregate returned by GET /api/analytics: totals across
// the fetched window plus the raw per-day series.
type Summary struct {
	TotalViews   int64            `json:"totalViews"`
	SectionViews map[string]int64 `json:"sectionViews"`
	Clicks       map[string]int64 `json:"clicks"`
	DailyStats   []DailyStat      `json:"dailyStats"`
}

// Summarize reduces counter rows into a Summary. Row order is preserved in
// DailyStats, so callers passing newest-first rows get a newest-first series.
func Summarize(counters []DailyCounter) Summary {
	s := Summary{
		SectionViews: make(map[string]int64),
		Clicks:       make(map[string]int64),
		DailyStats:   make([]DailyStat, 0, len(counters)),
	}

	for _, c := range counters {
		s.TotalViews += c.Views

		sections := flattenCounts(c.SectionViews)
		clicks := flattenCounts(c.Clicks)
		for k, v := range sections {
			s.SectionViews[k] += v
		}
		for k, v := range clicks {
			s.Clicks[k] += v
		}

		s.DailyStats = append(s.DailyStats, DailyStat{
			Date:         c.Date,
			Views:        c.Views,
			SectionViews: sections,
			Clicks:       clicks,
		})
	}

	return s
}

// flattenCounts converts a scanned jsonb map to string->int64. Values come
// back from the driver as float64 or json.Number depending on the decode
// path; anything non-numeric counts as zero.
func flattenCounts(m map[string]any) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = counterValue(v)
	}
	return out
}

func counterValue(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
	}
	return 0
}
