package calculator

import (
	"math"

	"SaaSTracker/internal/model"
)

// DeltaFromHigh compares the current index level with the LTM-high level,
// both expressed on a 100 base, to one decimal.
func DeltaFromHigh(cumulative, ltmHigh model.Pct) model.Pct {
	if !cumulative.Valid || !ltmHigh.Valid {
		return model.NoData
	}
	current := 100 * (1 + cumulative.Value/100)
	high := 100 * (1 + ltmHigh.Value/100)
	if high <= 0 {
		return model.NoData
	}
	return model.Some(math.Round((current-high)/high*1000) / 10)
}

// DropFromHigh is the whole-percent fall from the LTM high price to the baseline price.
func DropFromHigh(highPrice, zeroPrice *float64) model.Pct {
	if highPrice == nil || zeroPrice == nil {
		return model.NoData
	}
	v, err := PercentChange(*highPrice, *zeroPrice)
	if err != nil {
		return model.NoData
	}
	return model.Some(math.Round(v))
}

// DropFromBaseline is the whole-percent move from the baseline price to the current price.
func DropFromBaseline(currentPrice, baselinePrice *float64) model.Pct {
	if currentPrice == nil || baselinePrice == nil {
		return model.NoData
	}
	v, err := PercentChange(*baselinePrice, *currentPrice)
	if err != nil {
		return model.NoData
	}
	return model.Some(math.Round(v))
}

// Classify buckets a percentage for cell colouring.
func Classify(p model.Pct) model.CellClass {
	if !p.Valid {
		return model.CellNone
	}
	switch v := p.Value; {
	case v <= -3:
		return model.CellSevere
	case v <= -1:
		return model.CellModerate
	case v < 1:
		return model.CellNeutral
	case v < 3:
		return model.CellPositive
	default:
		return model.CellStrongPositive
	}
}

// SummarizeSector merges live prices into a sector card. zero prices come
// from the baseline file, falling back to the LTM file's zero_price. When
// either reference file is missing the registry's static figures are used.
func SummarizeSector(s model.Sector, baseline *model.BaselineFile, ltm *model.LTMHighFile, latest *model.Snapshot) model.SectorSummary {
	out := model.SectorSummary{
		ID:       s.ID,
		Name:     s.Name,
		Icon:     s.Icon,
		Color:    s.Color,
		Severity: s.Severity,
		AvgDrop:  model.Some(s.AvgDrop),
	}
	live := baseline != nil && ltm != nil

	var ltmDrops, baseDrops []float64
	for _, c := range s.Companies {
		cs := model.CompanySummary{Name: c.Name, Ticker: c.Ticker, Status: c.Status}
		if c.Drop != nil {
			cs.Drop = model.Some(*c.Drop)
		}
		if live && c.IsPublic() {
			var zero, high, current *float64
			if bp, ok := baseline.Tickers[c.Ticker]; ok {
				zero = bp.Price
			}
			if th := ltm.Ticker(c.Ticker); th != nil {
				if zero == nil {
					zero = th.ZeroPrice
				}
				high = th.HighPrice
			}
			if px, ok := latest.Close(c.Ticker); ok {
				current = &px
			}

			if d := DropFromHigh(high, zero); d.Valid {
				cs.Drop = d
				ltmDrops = append(ltmDrops, d.Value)
			}
			if d := DropFromBaseline(current, zero); d.Valid {
				cs.BaselineDrop = d
				baseDrops = append(baseDrops, d.Value)
			}
		}
		out.Companies = append(out.Companies, cs)
	}

	if avg, err := Mean(ltmDrops); err == nil {
		out.AvgDrop = model.Some(math.Round(avg))
	}
	if avg, err := Mean(baseDrops); err == nil {
		out.AvgBaselineDrop = model.Some(math.Round(avg))
	}
	return out
}
