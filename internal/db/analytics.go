package db

import (
	"context"
	"fmt"
	"math"
)

// PageViewStats summarizes traffic over a window.
type PageViewStats struct {
	TotalViews     int             `json:"total_views"`
	UniqueVisitors int             `json:"unique_visitors"`
	ViewsByDay     []DayCount      `json:"views_by_day"`
	TopReferrers   []ReferrerCount `json:"top_referrers"`
}

// DayCount is a per-day tally.
type DayCount struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// ReferrerCount is a per-referrer tally.
type ReferrerCount struct {
	Referrer string `json:"referrer"`
	Count    int    `json:"count"`
}

// EventStats summarizes usage events over a window.
type EventStats struct {
	EventCounts map[string]int  `json:"event_counts"`
	EventsByDay []EventDayCount `json:"events_by_day"`
}

// EventDayCount is a per-day, per-event tally.
type EventDayCount struct {
	Date  string `json:"date"`
	Event string `json:"event"`
	Count int    `json:"count"`
}

// UserStats summarizes the user base for the dashboard.
type UserStats struct {
	Total           int     `json:"total"`
	Paid            int     `json:"paid"`
	FreeUsedNotPaid int     `json:"free_used_not_paid"`
	ConversionRate  float64 `json:"conversion_rate"`
}

// RevenueStats summarizes completed payments.
type RevenueStats struct {
	Total          float64 `json:"total"`
	PaymentsCount  int     `json:"payments_count"`
	AveragePayment float64 `json:"average_payment"`
}

// LogPageView records a page view. The IP is already hashed by the caller.
func (db *DB) LogPageView(ctx context.Context, path, ipHash, userAgent, referrer string) error {
	if path == "" {
		path = "/"
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO page_views (path, ip_hash, user_agent, referrer)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''))`,
		path, ipHash, userAgent, referrer,
	)
	if err != nil {
		return fmt.Errorf("failed to log page view: %w", err)
	}
	return nil
}

// LogUsageEvent records a usage event with optional JSON metadata.
func (db *DB) LogUsageEvent(ctx context.Context, eventType, userEmail, metadata string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO usage_events (event_type, user_email, event_metadata)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))`,
		eventType, userEmail, metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to log usage event: %w", err)
	}
	return nil
}

// GetPageViewStats returns traffic stats for the last N days.
func (db *DB) GetPageViewStats(ctx context.Context, days int) (*PageViewStats, error) {
	stats := &PageViewStats{
		ViewsByDay:   []DayCount{},
		TopReferrers: []ReferrerCount{},
	}

	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT ip_hash)
		 FROM page_views
		 WHERE created_at >= NOW() - make_interval(days => $1)`,
		days,
	).Scan(&stats.TotalViews, &stats.UniqueVisitors)
	if err != nil {
		return nil, fmt.Errorf("failed to count page views: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT created_at::date::text, COUNT(*)
		 FROM page_views
		 WHERE created_at >= NOW() - make_interval(days => $1)
		 GROUP BY created_at::date
		 ORDER BY created_at::date`,
		days,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query views by day: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Date, &dc.Views); err != nil {
			return nil, fmt.Errorf("failed to scan day count: %w", err)
		}
		stats.ViewsByDay = append(stats.ViewsByDay, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refRows, err := db.pool.Query(ctx,
		`SELECT referrer, COUNT(*)
		 FROM page_views
		 WHERE created_at >= NOW() - make_interval(days => $1)
		   AND referrer IS NOT NULL AND referrer <> ''
		 GROUP BY referrer
		 ORDER BY COUNT(*) DESC
		 LIMIT 10`,
		days,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query referrers: %w", err)
	}
	defer refRows.Close()
	for refRows.Next() {
		var rc ReferrerCount
		if err := refRows.Scan(&rc.Referrer, &rc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan referrer count: %w", err)
		}
		stats.TopReferrers = append(stats.TopReferrers, rc)
	}
	return stats, refRows.Err()
}

// GetUserStats returns user base totals and the free-to-paid conversion rate.
func (db *DB) GetUserStats(ctx context.Context) (*UserStats, error) {
	var stats UserStats
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE is_paid),
		        COUNT(*) FILTER (WHERE NOT is_paid AND free_generations_used > 0)
		 FROM users`,
	).Scan(&stats.Total, &stats.Paid, &stats.FreeUsedNotPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.Total > 0 {
		stats.ConversionRate = roundCents(float64(stats.Paid) / float64(stats.Total) * 100)
	}
	return &stats, nil
}

// GetRevenueStats returns totals over completed payments.
func (db *DB) GetRevenueStats(ctx context.Context) (*RevenueStats, error) {
	var stats RevenueStats
	err := db.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0), COUNT(*)
		 FROM payments WHERE status = $1`,
		PaymentCompleted,
	).Scan(&stats.Total, &stats.PaymentsCount)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}
	if stats.PaymentsCount > 0 {
		stats.AveragePayment = roundCents(stats.Total / float64(stats.PaymentsCount))
	}
	return &stats, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// GetEventStats returns usage event stats for the last N days.
func (db *DB) GetEventStats(ctx context.Context, days int) (*EventStats, error) {
	stats := &EventStats{
		EventCounts: map[string]int{},
		EventsByDay: []EventDayCount{},
	}

	rows, err := db.pool.Query(ctx,
		`SELECT event_type, COUNT(*)
		 FROM usage_events
		 WHERE created_at >= NOW() - make_interval(days => $1)
		 GROUP BY event_type`,
		days,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query event counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var event string
		var count int
		if err := rows.Scan(&event, &count); err != nil {
			return nil, fmt.Errorf("failed to scan event count: %w", err)
		}
		stats.EventCounts[event] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	dayRows, err := db.pool.Query(ctx,
		`SELECT created_at::date::text, event_type, COUNT(*)
		 FROM usage_events
		 WHERE created_at >= NOW() - make_interval(days => $1)
		 GROUP BY created_at::date, event_type
		 ORDER BY created_at::date`,
		days,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query events by day: %w", err)
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var edc EventDayCount
		if err := dayRows.Scan(&edc.Date, &edc.Event, &edc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan event day count: %w", err)
		}
		stats.EventsByDay = append(stats.EventsByDay, edc)
	}
	return stats, dayRows.Err()
}
