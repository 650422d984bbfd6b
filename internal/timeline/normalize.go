package timeline

import (
	"sort"

	"SaaSTracker/internal/model"
)

// Normalize collapses snapshots to one per date and sorts them ascending.
// Records without a date are dropped.
func Normalize(snaps []model.Snapshot) []model.Snapshot {
	index := make(map[string]int, len(snaps))
	out := make([]model.Snapshot, 0, len(snaps))
	for _, s := range snaps {
		if s.Date == "" {
			continue
		}
		i, ok := index[s.Date]
		if !ok {
			index[s.Date] = len(out)
			out = append(out, s)
			continue
		}
		out[i] = preferred(out[i], s)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date < out[b].Date })
	return out
}

// preferred picks between two snapshots for the same date. The end-of-day
// close beats an intraday capture; otherwise the later fetch wins, and when
// fetch times cannot be compared the incoming record wins.
func preferred(existing, incoming model.Snapshot) model.Snapshot {
	existingClose := existing.TimeLabel == ""
	incomingClose := incoming.TimeLabel == ""
	if incomingClose && !existingClose {
		return incoming
	}
	if existingClose && !incomingClose {
		return existing
	}

	et, eok := ParseInstant(existing.FetchedAt)
	it, iok := ParseInstant(incoming.FetchedAt)
	if eok && iok {
		if it.After(et) {
			return incoming
		}
		return existing
	}
	return incoming
}

// SortByDate returns a copy of snaps in ascending date order, keeping
// duplicates in their original relative order.
func SortByDate(snaps []model.Snapshot) []model.Snapshot {
	out := append([]model.Snapshot(nil), snaps...)
	sort.SliceStable(out, func(a, b int) bool { return out[a].Date < out[b].Date })
	return out
}
