// Package recorder persists committed dashboards for later analysis.
package recorder

import (
	"context"

	"SaaSTracker/internal/tracker"
)

// HistoryEntry is one line of the reload history: the terminal value of
// every sector at the time of the reload.
type HistoryEntry struct {
	RecordedAt string             `json:"recorded_at"`
	LoadID     string             `json:"load_id"`
	Status     tracker.Status     `json:"status"`
	LastColumn string             `json:"last_column,omitempty"`
	Totals     map[string]float64 `json:"totals"`
}

// Recorder persists dashboards. It satisfies tracker.Sink.
type Recorder interface {
	Record(ctx context.Context, d tracker.Dashboard) error
	Close() error
}

// historyEntry summarises d. Sectors without a terminal value are left out.
func historyEntry(d tracker.Dashboard, recordedAt string) HistoryEntry {
	e := HistoryEntry{
		RecordedAt: recordedAt,
		LoadID:     d.LoadID,
		Status:     d.Status,
		Totals:     make(map[string]float64, len(d.Tracker.Sectors)),
	}
	if n := len(d.Tracker.Columns); n > 0 {
		e.LastColumn = d.Tracker.Columns[n-1].ID
	}
	for _, r := range d.Tracker.Sectors {
		if r.Total.Valid {
			e.Totals[r.ID] = r.Total.Value
		}
	}
	return e
}
