package timeline

import "SaaSTracker/internal/model"

// Baseline is the resolved per-ticker reference price set.
type Baseline struct {
	Date     string
	Prices   map[string]float64
	Explicit bool
}

// Price returns the ticker's baseline price when present.
func (b Baseline) Price(ticker string) (float64, bool) {
	p, ok := b.Prices[ticker]
	return p, ok
}

// ResolveBaseline picks the reference prices. An explicit baseline file with
// at least one priced ticker is used exclusively. Otherwise the earliest
// snapshot supplies prev_close, falling back to close. first may be nil.
func ResolveBaseline(file *model.BaselineFile, first *model.Snapshot) Baseline {
	b := Baseline{Prices: map[string]float64{}}

	if file != nil {
		for t, p := range file.Tickers {
			if p.Price != nil {
				b.Prices[t] = *p.Price
			}
		}
		if len(b.Prices) > 0 {
			b.Explicit = true
		}
	}

	if !b.Explicit && first != nil {
		for t, q := range first.Tickers {
			switch {
			case q.PrevClose != nil:
				b.Prices[t] = *q.PrevClose
			case q.Close != nil:
				b.Prices[t] = *q.Close
			}
		}
	}

	switch {
	case file != nil && file.Date != "":
		b.Date = file.Date
	case first != nil && first.Date != "":
		b.Date = ShiftDate(first.Date, -1)
	}
	return b
}
