package calculator

import (
	"sort"

	"SaaSTracker/internal/model"
	"SaaSTracker/internal/timeline"
)

const (
	zeroLabel = "Feb 3 (zero)"
	highLabel = "LTM High"
	// highSortKey places the LTM high marker before the anchor on the x axis.
	highSortKey = "2026-02-01"
)

// Rebase expresses a cumulative percentage on a 100 base where the LTM high is 100.
func Rebase(raw, high model.Pct) model.Pct {
	if !raw.Valid || !high.Valid {
		return model.NoData
	}
	denom := 1 + high.Value/100
	if denom <= 0 {
		return model.NoData
	}
	return model.Some(Round2(100 * (1 + raw.Value/100) / denom))
}

// ChartInput gathers what BuildChart needs.
type ChartInput struct {
	Sectors      []string
	Columns      []model.Column
	Cumulative   map[string][]model.Pct
	Anchor       string
	BaselineDate string
	LTM          *model.LTMHighFile
}

// BuildChart assembles the sector chart: zero and baseline anchors, one point
// per column, and the LTM high marker, ordered by sort key and rebased.
func BuildChart(in ChartInput) model.Chart {
	anchor := in.Anchor
	if anchor == "" {
		anchor = timeline.DefaultAnchor
	}

	var points []model.ChartPoint
	zeros := func() map[string]model.Pct {
		m := make(map[string]model.Pct, len(in.Sectors))
		for _, id := range in.Sectors {
			m[id] = model.Some(0)
		}
		return m
	}
	points = append(points, model.ChartPoint{Label: zeroLabel, SortKey: anchor, Values: zeros()})
	if in.BaselineDate != "" && in.BaselineDate != anchor {
		points = append(points, model.ChartPoint{
			Label:   timeline.ShortDate(in.BaselineDate) + " (base)",
			SortKey: in.BaselineDate,
			Values:  zeros(),
		})
	}

	observed := make(map[string][]float64, len(in.Sectors))
	for i, col := range in.Columns {
		key := col.Sublabel
		if last := col.Last(); last != nil && last.Date != "" {
			key = last.Date
		}
		p := model.ChartPoint{Label: col.Sublabel, SortKey: key, Values: map[string]model.Pct{}}
		for _, id := range in.Sectors {
			v := model.NoData
			if row := in.Cumulative[id]; i < len(row) {
				v = row[i]
			}
			p.Values[id] = v
			if v.Valid {
				observed[id] = append(observed[id], v.Value)
			}
		}
		points = append(points, p)
	}

	highs := make(map[string]model.HighMark, len(in.Sectors))
	highPoint := model.ChartPoint{Label: highLabel, SortKey: highSortKey, Values: map[string]model.Pct{}}
	for _, id := range in.Sectors {
		var mark model.HighMark
		if sh := in.LTM.Sector(id); sh != nil && sh.LTMHighPct != nil {
			mark.Value = model.Some(*sh.LTMHighPct)
			if sh.HighDate != "" {
				mark.Date = timeline.MonthYear(sh.HighDate)
			}
		} else {
			mark.Value = model.Some(Round2(MaxFloor(0, observed[id])))
			mark.Observed = true
		}
		highs[id] = mark
		highPoint.Values[id] = mark.Value
	}
	points = append(points, highPoint)

	sort.SliceStable(points, func(a, b int) bool { return points[a].SortKey < points[b].SortKey })

	for i := range points {
		points[i].Rebased = make(map[string]model.Pct, len(in.Sectors))
		for _, id := range in.Sectors {
			points[i].Rebased[id] = Rebase(points[i].Values[id], highs[id].Value)
		}
	}

	return model.Chart{
		Sectors: append([]string(nil), in.Sectors...),
		Points:  points,
		Highs:   highs,
	}
}
