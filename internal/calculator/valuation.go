package calculator

import "SaaSTracker/internal/model"

// EstimateMultiple estimates EV / TTM revenue had the stock traded at price,
// holding net debt constant. Returns NoData when any input is missing or the
// implied enterprise value is not positive.
func EstimateMultiple(price *float64, f *model.Fundamental) model.Pct {
	if f == nil || price == nil || *price <= 0 {
		return model.NoData
	}
	if f.EnterpriseValue == nil || f.MarketCap == nil || f.TTMRevenue == nil || f.CurrentPrice == nil {
		return model.NoData
	}
	if *f.TTMRevenue <= 0 || *f.CurrentPrice <= 0 {
		return model.NoData
	}
	netDebt := *f.EnterpriseValue - *f.MarketCap
	histMC := *f.MarketCap * (*price / *f.CurrentPrice)
	histEV := histMC + netDebt
	if histEV <= 0 {
		return model.NoData
	}
	return model.Some(Round1(histEV / *f.TTMRevenue))
}

// MultipleBand grades an EV/revenue multiple.
func MultipleBand(p model.Pct) string {
	switch {
	case !p.Valid:
		return "none"
	case p.Value <= 5:
		return "cheap"
	case p.Value <= 10:
		return "fair"
	case p.Value <= 20:
		return "rich"
	default:
		return "extreme"
	}
}

// RuleOf40Band grades a Rule of 40 score.
func RuleOf40Band(p model.Pct) string {
	switch {
	case !p.Valid:
		return "none"
	case p.Value >= 40:
		return "healthy"
	case p.Value >= 25:
		return "borderline"
	default:
		return "weak"
	}
}

func mean1(xs []float64) model.Pct {
	avg, err := Mean(xs)
	if err != nil {
		return model.NoData
	}
	return model.Some(Round1(avg))
}

func optional(v *float64) model.Pct {
	if v == nil {
		return model.NoData
	}
	return model.Some(*v)
}

// SectorMultiples computes EV/revenue multiples at the LTM high, the baseline
// and each column's close, for the sector average and every ticker that has
// fundamentals.
func SectorMultiples(tickers []string, cols []model.Column, base map[string]float64, ltm *model.LTMHighFile, funds *model.FundamentalsFile) (model.Multiples, []model.TickerMultiples) {
	if funds == nil {
		return model.Multiples{Columns: make([]model.Pct, len(cols))}, nil
	}
	var ltmVals, baseVals []float64
	var rows []model.TickerMultiples
	colVals := make([][]float64, len(cols))
	collect := func(dst *[]float64, p model.Pct) {
		if p.Valid {
			*dst = append(*dst, p.Value)
		}
	}

	for _, t := range tickers {
		f, ok := funds.Tickers[t]
		if !ok {
			continue
		}
		row := model.TickerMultiples{Ticker: t, Multiples: model.Multiples{Columns: make([]model.Pct, len(cols))}}

		var highPrice *float64
		if th := ltm.Ticker(t); th != nil {
			highPrice = th.HighPrice
		}
		row.LTM = EstimateMultiple(highPrice, &f)
		collect(&ltmVals, row.LTM)

		var basePrice *float64
		if b, ok := base[t]; ok {
			basePrice = &b
		}
		row.Base = EstimateMultiple(basePrice, &f)
		collect(&baseVals, row.Base)

		for i := range cols {
			var px *float64
			if c, ok := cols[i].Last().Close(t); ok {
				px = &c
			}
			row.Columns[i] = EstimateMultiple(px, &f)
			collect(&colVals[i], row.Columns[i])
		}
		rows = append(rows, row)
	}

	avg := model.Multiples{LTM: mean1(ltmVals), Base: mean1(baseVals), Columns: make([]model.Pct, len(cols))}
	for i, vals := range colVals {
		avg.Columns[i] = mean1(vals)
	}
	return avg, rows
}

// SectorRuleOf40 averages the tickers' Rule of 40 scores and lists each
// ticker's growth and margin components.
func SectorRuleOf40(tickers []string, funds *model.FundamentalsFile) (model.Pct, []model.TickerRuleOf40) {
	if funds == nil {
		return model.NoData, nil
	}
	var (
		vals []float64
		rows []model.TickerRuleOf40
	)
	for _, t := range tickers {
		f, ok := funds.Tickers[t]
		if !ok {
			continue
		}
		if f.RuleOf40 != nil {
			vals = append(vals, *f.RuleOf40)
		}
		rows = append(rows, model.TickerRuleOf40{
			Ticker: t,
			Value:  optional(f.RuleOf40),
			Growth: optional(f.RevenueGrowthPct),
			Margin: optional(f.EBITDAMarginPct),
		})
	}
	return mean1(vals), rows
}
