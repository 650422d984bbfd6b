package timeline

import (
	"fmt"

	"SaaSTracker/internal/model"
)

const (
	DaysPerWeek   = 7
	WeeksPerMonth = 4
	DaysPerMonth  = DaysPerWeek * WeeksPerMonth
)

// Mode selects how sampled snapshots are grouped. Both modes produce the same
// columns for the same sampled input.
type Mode int

const (
	// Slice cuts whole months, then whole weeks, from the front of the timeline.
	Slice Mode = iota
	// Incremental streams days into weeks and weeks into months.
	Incremental
)

// Options controls sampling and grouping.
type Options struct {
	Anchor        string
	Stride        int
	IncludeAnchor bool
	Mode          Mode
}

// Daily samples every snapshot from the anchor onwards.
func Daily(anchor string) Options {
	return Options{Anchor: anchor, Stride: 1, IncludeAnchor: true, Mode: Slice}
}

// EveryOtherDay samples every second calendar day after the anchor.
func EveryOtherDay(anchor string) Options {
	return Options{Anchor: anchor, Stride: 2, IncludeAnchor: false, Mode: Incremental}
}

// Sample returns the date-sorted snapshots selected by opts.
func Sample(snaps []model.Snapshot, opts Options) []model.Snapshot {
	anchor, err := ParseDate(opts.Anchor)
	if err != nil {
		anchor, _ = ParseDate(DefaultAnchor)
	}
	stride := opts.Stride
	if stride < 1 {
		stride = 1
	}

	var out []model.Snapshot
	for _, s := range SortByDate(snaps) {
		d, err := ParseDate(s.Date)
		if err != nil {
			continue
		}
		since := DaysBetween(anchor, d)
		if since < 0 || since%stride != 0 {
			continue
		}
		if since == 0 && !opts.IncludeAnchor {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Consolidate groups snapshots into month, week and day columns, in that order.
// Trailing partial blocks stay daily.
func Consolidate(snaps []model.Snapshot, opts Options) []model.Column {
	sampled := Sample(snaps, opts)
	if len(sampled) == 0 {
		return nil
	}
	if opts.Mode == Incremental {
		return consolidateIncremental(sampled)
	}
	return consolidateSlices(sampled)
}

func consolidateSlices(timeline []model.Snapshot) []model.Column {
	var cols []model.Column

	months := len(timeline) / DaysPerMonth
	for m := 0; m < months; m++ {
		cols = append(cols, monthColumn(m+1, timeline[m*DaysPerMonth:(m+1)*DaysPerMonth]))
	}

	rest := timeline[months*DaysPerMonth:]
	weeks := len(rest) / DaysPerWeek
	for w := 0; w < weeks; w++ {
		n := months*WeeksPerMonth + w + 1
		cols = append(cols, weekColumn(n, rest[w*DaysPerWeek:(w+1)*DaysPerWeek]))
	}

	for _, s := range rest[weeks*DaysPerWeek:] {
		cols = append(cols, dayColumn(s))
	}
	return cols
}

func consolidateIncremental(timeline []model.Snapshot) []model.Column {
	var (
		cols       []model.Column
		dayBuf     []model.Snapshot
		weekBuf    []model.Column
		weekCount  int
		monthCount int
	)

	for _, s := range timeline {
		dayBuf = append(dayBuf, s)
		if len(dayBuf) < DaysPerWeek {
			continue
		}
		weekCount++
		weekBuf = append(weekBuf, weekColumn(weekCount, dayBuf))
		dayBuf = nil

		if len(weekBuf) == WeeksPerMonth {
			monthCount++
			var days []model.Snapshot
			for _, w := range weekBuf {
				days = append(days, w.Snapshots...)
			}
			cols = append(cols, monthColumn(monthCount, days))
			weekBuf = nil
		}
	}

	cols = append(cols, weekBuf...)
	for _, s := range dayBuf {
		cols = append(cols, dayColumn(s))
	}
	return cols
}

func monthColumn(n int, days []model.Snapshot) model.Column {
	return model.Column{
		ID:        fmt.Sprintf("mo-%d", n),
		Label:     fmt.Sprintf("Mo %d", n),
		Sublabel:  rangeLabel(days),
		Type:      model.ColumnMonth,
		Snapshots: append([]model.Snapshot(nil), days...),
	}
}

func weekColumn(n int, days []model.Snapshot) model.Column {
	return model.Column{
		ID:        fmt.Sprintf("wk-%d", n),
		Label:     fmt.Sprintf("Wk %d", n),
		Sublabel:  rangeLabel(days),
		Type:      model.ColumnWeek,
		Snapshots: append([]model.Snapshot(nil), days...),
	}
}

func dayColumn(s model.Snapshot) model.Column {
	id := "day-" + s.Date
	sub := ShortDate(s.Date)
	if s.TimeLabel != "" {
		id += "-" + s.TimeLabel
		sub += " " + s.TimeLabel
	}
	return model.Column{
		ID:        id,
		Label:     weekday(s.Date),
		Sublabel:  sub,
		Type:      model.ColumnDay,
		Snapshots: []model.Snapshot{s},
	}
}

func rangeLabel(days []model.Snapshot) string {
	return ShortDate(days[0].Date) + "–" + ShortDate(days[len(days)-1].Date)
}

// Count tallies columns by type.
func Count(cols []model.Column) model.ColumnCounts {
	var c model.ColumnCounts
	for _, col := range cols {
		switch col.Type {
		case model.ColumnDay:
			c.Days++
		case model.ColumnWeek:
			c.Weeks++
		case model.ColumnMonth:
			c.Months++
		}
	}
	return c
}
