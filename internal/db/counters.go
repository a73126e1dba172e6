package db

import (
	"time"

	"gorm.io/gorm"
)

// DayKey formats t as the UTC calendar date used to key daily counters.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WindowStart returns the date key opening an n-day lookback window ending
// at t. The analytics summary uses n=30.
func WindowStart(t time.Time, days int) string {
	return t.UTC().AddDate(0, 0, -days).Format("2006-01-02")
}

// The increment statements below are single upserts so that concurrent
// events for the same date never race: the row is created with the
// triggering counter at 1, or the existing counter is bumped in place.
// GORM's builder cannot express jsonb_set, hence raw SQL.

const incrementViewsSQL = `
INSERT INTO daily_counters (created_at, updated_at, date, views, section_views, clicks)
VALUES (NOW(), NOW(), ?, 1, '{}'::jsonb, '{}'::jsonb)
ON CONFLICT (date) DO UPDATE SET
    views = daily_counters.views + 1,
    updated_at = NOW()`

const incrementSectionViewSQL = `
INSERT INTO daily_counters (created_at, updated_at, date, views, section_views, clicks)
VALUES (NOW(), NOW(), ?, 0, jsonb_build_object(?::text, 1), '{}'::jsonb)
ON CONFLICT (date) DO UPDATE SET
    section_views = jsonb_set(
        COALESCE(daily_counters.section_views, '{}'::jsonb),
        ARRAY[?::text],
        to_jsonb(COALESCE((daily_counters.section_views ->> ?)::bigint, 0) + 1)
    ),
    updated_at = NOW()`

const incrementClickSQL = `
INSERT INTO daily_counters (created_at, updated_at, date, views, section_views, clicks)
VALUES (NOW(), NOW(), ?, 0, '{}'::jsonb, jsonb_build_object(?::text, 1))
ON CONFLICT (date) DO UPDATE SET
    clicks = jsonb_set(
        COALESCE(daily_counters.clicks, '{}'::jsonb),
        ARRAY[?::text],
        to_jsonb(COALESCE((daily_counters.clicks ->> ?)::bigint, 0) + 1)
    ),
    updated_at = NOW()`

// IncrementViews bumps the page-view total for date.
func IncrementViews(db *gorm.DB, date string) error {
	return db.Exec(incrementViewsSQL, date).Error
}

// IncrementSectionView bumps the per-section counter for date, creating the
// section key on its first view.
func IncrementSectionView(db *gorm.DB, date, section string) error {
	return db.Exec(incrementSectionViewSQL, date, section, section, section).Error
}

// IncrementClick bumps the per-target click counter for date, creating the
// target key on its first click.
func IncrementClick(db *gorm.DB, date, target string) error {
	return db.Exec(incrementClickSQL, date, target, target, target).Error
}

// CounterByDate fetches the counter row for a single date.
func CounterByDate(db *gorm.DB, date string) (*DailyCounter, error) {
	var counter DailyCounter
	if err := db.Where("date = ?", date).First(&counter).Error; err != nil {
		return nil, err
	}
	return &counter, nil
}

// CountersSince fetches all counter rows with date >= start, newest first.
// Date keys compare lexicographically, so string comparison is date order.
func CountersSince(db *gorm.DB, start string) ([]DailyCounter, error) {
	var counters []DailyCounter
	if err := db.Where("date >= ?", start).Order("date DESC").Find(&counters).Error; err != nil {
		return nil, err
	}
	return counters, nil
}
