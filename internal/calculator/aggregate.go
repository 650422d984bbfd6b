package calculator

import "SaaSTracker/internal/model"

// Series is a per-column percentage row. Period compares each column's close
// with the previous column's close (the baseline for the first column);
// Cumulative compares it with the baseline.
type Series struct {
	Period      []model.Pct
	Cumulative  []model.Pct
	Variability model.Pct
}

// Total is the cumulative value at the final column.
func (s Series) Total() model.Pct {
	if len(s.Cumulative) == 0 {
		return model.NoData
	}
	return s.Cumulative[len(s.Cumulative)-1]
}

// AggregateSector averages the sector's tickers at each column's last
// snapshot. Tickers without a positive baseline or a close are skipped for
// that column only. Variability is measured at the final column.
func AggregateSector(tickers []string, cols []model.Column, base map[string]float64) Series {
	s := Series{
		Period:     make([]model.Pct, len(cols)),
		Cumulative: make([]model.Pct, len(cols)),
	}

	for i := range cols {
		last := cols[i].Last()
		if last == nil || last.Tickers == nil {
			continue
		}
		var prev *model.Snapshot
		if i > 0 {
			prev = cols[i-1].Last()
		}

		var cums, periods []float64
		for _, t := range tickers {
			b, ok := base[t]
			if !ok {
				continue
			}
			closePx, ok := last.Close(t)
			if !ok {
				continue
			}
			cum, err := PercentChange(b, closePx)
			if err != nil {
				continue
			}
			cums = append(cums, cum)

			prevClose := b
			if pc, ok := prev.Close(t); ok {
				prevClose = pc
			}
			if p, err := PercentChange(prevClose, closePx); err == nil {
				periods = append(periods, p)
			}
		}
		if len(cums) == 0 {
			continue
		}

		if avg, err := Mean(periods); err == nil {
			s.Period[i] = model.Some(Round2(avg))
		}
		avg, _ := Mean(cums)
		s.Cumulative[i] = model.Some(Round2(avg))

		if i == len(cols)-1 {
			if sd, err := PopStdDev(cums); err == nil {
				s.Variability = model.Some(Round2(sd))
			}
		}
	}
	return s
}

// CompanySeries computes a single ticker's row. Variability is always absent.
func CompanySeries(ticker string, cols []model.Column, base map[string]float64) Series {
	s := Series{
		Period:     make([]model.Pct, len(cols)),
		Cumulative: make([]model.Pct, len(cols)),
	}
	b, ok := base[ticker]
	if !ok || b <= 0 {
		return s
	}

	for i := range cols {
		closePx, ok := cols[i].Last().Close(ticker)
		if !ok {
			continue
		}
		prevClose := b
		if i > 0 {
			if pc, ok := cols[i-1].Last().Close(ticker); ok {
				prevClose = pc
			}
		}
		if p, err := PercentChange(prevClose, closePx); err == nil {
			s.Period[i] = model.Some(Round2(p))
		}
		cum, _ := PercentChange(b, closePx)
		s.Cumulative[i] = model.Some(Round2(cum))
	}
	return s
}

// RawCumulative is the unrounded cumulative change of ticker at snap, used
// for ordering companies.
func RawCumulative(ticker string, snap *model.Snapshot, base map[string]float64) model.Pct {
	b, ok := base[ticker]
	if !ok {
		return model.NoData
	}
	closePx, ok := snap.Close(ticker)
	if !ok {
		return model.NoData
	}
	v, err := PercentChange(b, closePx)
	if err != nil {
		return model.NoData
	}
	return model.Some(v)
}
