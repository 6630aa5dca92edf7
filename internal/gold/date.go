//-------------------------------------------------------------------------
//
// goldflow Retail Lakehouse Pipeline
//
// Copyright (c) 2025 - 2026, RetailPulse Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package gold builds the Gold-layer star schema from the cleaned Silver
// sales table: the four dimension tables (date, product, store, and the
// SCD Type 2 customer dimension) and the fact table that joins them.
package gold

import (
	"time"

	"github.com/retailpulse/goldflow/internal/model"
)

// DateOf normalizes a timestamp to its calendar day at UTC midnight.
// All interval comparisons and date-spine lookups operate on these
// normalized values.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// festiveMonths marks the retail high season: the Oct-Dec festive run
// plus January new-year sales.
func festiveMonth(m time.Month) bool {
	return m == time.October || m == time.November || m == time.December || m == time.January
}

// BuildDimDate generates the complete daily calendar spanning minDate to
// maxDate inclusive. The spine is generated independently of the fact
// data, so days without sales still get a row and time-series rollups
// never silently drop them. Keys are a dense 1..N sequence in date order.
// The result is empty when minDate is after maxDate.
func BuildDimDate(minDate, maxDate time.Time) []model.DimDate {
	start := DateOf(minDate)
	end := DateOf(maxDate)
	if start.After(end) {
		return nil
	}

	days := int(end.Sub(start).Hours()/24) + 1
	rows := make([]model.DimDate, 0, days)

	key := int32(1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		_, isoWeek := d.ISOWeek()
		dow := (int32(d.Weekday()) + 6) % 7 // Monday = 0

		rows = append(rows, model.DimDate{
			DateKey:         key,
			FullDate:        d,
			Year:            int32(d.Year()),
			Quarter:         (int32(d.Month())-1)/3 + 1,
			Month:           int32(d.Month()),
			MonthName:       d.Month().String(),
			WeekOfYear:      int32(isoWeek),
			DayOfMonth:      int32(d.Day()),
			DayOfWeek:       dow,
			DayName:         d.Weekday().String(),
			IsWeekend:       dow >= 5,
			IsFestiveSeason: festiveMonth(d.Month()),
			YearMonth:       d.Format("2006-01"),
		})
		key++
	}
	return rows
}
