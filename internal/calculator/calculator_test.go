package calculator

import (
	"testing"

	"SaaSTracker/internal/model"
	"SaaSTracker/internal/timeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(date string, closes map[string]float64) model.Snapshot {
	s := model.Snapshot{Date: date, Tickers: map[string]model.Quote{}}
	for t, c := range closes {
		s.Tickers[t] = model.Quote{Close: model.F(c)}
	}
	return s
}

func cols(snaps ...model.Snapshot) []model.Column {
	return timeline.Consolidate(snaps, timeline.Daily(timeline.DefaultAnchor))
}

func TestPercentChange_InvalidBase(t *testing.T) {
	_, err := PercentChange(0, 10)
	assert.ErrorIs(t, err, ErrInvalidBase)
	_, err = PercentChange(-1, 10)
	assert.ErrorIs(t, err, ErrInvalidBase)
}

func TestRounding_HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, -0.13, Round2(-0.125))
	assert.Equal(t, 2.3, Round1(2.25))
}

func TestMeanAndStdDev(t *testing.T) {
	_, err := Mean(nil)
	assert.ErrorIs(t, err, ErrNoValues)

	_, err = PopStdDev([]float64{1})
	assert.ErrorIs(t, err, ErrTooFewValues)

	sd, err := PopStdDev([]float64{-10, -20})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, sd, 1e-9)
}

func TestAggregateSector_CumulativeExact(t *testing.T) {
	c := cols(day("2026-02-04", map[string]float64{"A": 90}))
	s := AggregateSector([]string{"A"}, c, map[string]float64{"A": 100})
	require.Len(t, s.Cumulative, 1)
	assert.Equal(t, model.Some(-10), s.Cumulative[0])
	assert.Equal(t, model.Some(-10), s.Period[0])
}

func TestAggregateSector_PartialData(t *testing.T) {
	c := cols(
		day("2026-02-04", map[string]float64{"A": 90, "B": 50}),
		day("2026-02-05", map[string]float64{"B": 55}),
		day("2026-02-06", map[string]float64{}),
	)
	// C has a close but no baseline; B lacks a baseline entirely.
	s := AggregateSector([]string{"A", "B", "C"}, c, map[string]float64{"A": 100})

	assert.Equal(t, model.Some(-10), s.Cumulative[0])
	assert.False(t, s.Cumulative[1].Valid, "no ticker with baseline has a close")
	assert.False(t, s.Cumulative[2].Valid)
	assert.False(t, s.Period[2].Valid)
}

func TestAggregateSector_SkipsNonPositiveBaseline(t *testing.T) {
	c := cols(day("2026-02-04", map[string]float64{"A": 90, "B": 10}))
	s := AggregateSector([]string{"A", "B"}, c, map[string]float64{"A": 100, "B": 0})
	assert.Equal(t, model.Some(-10), s.Cumulative[0])
	assert.False(t, s.Variability.Valid)
}

func TestAggregateSector_Variability(t *testing.T) {
	c := cols(day("2026-02-04", map[string]float64{"A": 90, "B": 80}))

	s := AggregateSector([]string{"A", "B"}, c, map[string]float64{"A": 100, "B": 100})
	assert.Equal(t, model.Some(-15), s.Cumulative[0])
	assert.Equal(t, model.Some(5), s.Variability)

	single := AggregateSector([]string{"A"}, c, map[string]float64{"A": 100})
	assert.False(t, single.Variability.Valid)
}

func TestAggregateSector_PeriodUsesPreviousColumn(t *testing.T) {
	c := cols(
		day("2026-02-04", map[string]float64{"A": 90}),
		day("2026-02-05", map[string]float64{"A": 99}),
	)
	s := AggregateSector([]string{"A"}, c, map[string]float64{"A": 100})
	assert.Equal(t, model.Some(-10), s.Period[0])
	assert.Equal(t, model.Some(10), s.Period[1])
	assert.Equal(t, model.Some(-1), s.Total())
}

func TestAggregateSector_EndToEndScenario(t *testing.T) {
	c := cols(
		day("2026-02-04", map[string]float64{"HUBS": 95}),
		day("2026-02-05", map[string]float64{"HUBS": 90}),
		day("2026-02-06", map[string]float64{"HUBS": 85}),
	)
	require.Len(t, c, 3)
	for _, col := range c {
		assert.Equal(t, model.ColumnDay, col.Type)
	}

	s := AggregateSector([]string{"HUBS", "MNDY", "CRM", "FRSH"}, c, map[string]float64{"HUBS": 100})
	assert.Equal(t, []model.Pct{model.Some(-5), model.Some(-10), model.Some(-15)}, s.Cumulative)
	assert.False(t, s.Variability.Valid)
}

func TestAggregateSector_Deterministic(t *testing.T) {
	c := cols(
		day("2026-02-04", map[string]float64{"A": 91.37, "B": 47.11}),
		day("2026-02-05", map[string]float64{"A": 88.02, "B": 49.93}),
	)
	base := map[string]float64{"A": 100.5, "B": 50.25}
	assert.Equal(t, AggregateSector([]string{"A", "B"}, c, base), AggregateSector([]string{"A", "B"}, c, base))
}

func TestCompanySeries(t *testing.T) {
	c := cols(
		day("2026-02-04", map[string]float64{"A": 90}),
		day("2026-02-05", map[string]float64{}),
		day("2026-02-06", map[string]float64{"A": 81}),
	)
	s := CompanySeries("A", c, map[string]float64{"A": 100})
	assert.Equal(t, []model.Pct{model.Some(-10), model.NoData, model.Some(-19)}, s.Cumulative)
	// No close in the middle column, so the last column compares with the baseline.
	assert.Equal(t, []model.Pct{model.Some(-10), model.NoData, model.Some(-19)}, s.Period)
	assert.Equal(t, model.Some(-19), s.Total())
	assert.False(t, s.Variability.Valid)

	none := CompanySeries("Z", c, map[string]float64{"A": 100})
	assert.Equal(t, model.NoData, none.Total())
}

func TestDeltaFromHigh(t *testing.T) {
	assert.Equal(t, model.Some(-36), DeltaFromHigh(model.Some(-20), model.Some(25)))
	assert.Equal(t, model.Some(0), DeltaFromHigh(model.Some(10), model.Some(10)))
	assert.False(t, DeltaFromHigh(model.NoData, model.Some(25)).Valid)
	assert.False(t, DeltaFromHigh(model.Some(-20), model.NoData).Valid)
	assert.False(t, DeltaFromHigh(model.Some(-20), model.Some(-100)).Valid)
}

func TestDrops(t *testing.T) {
	assert.Equal(t, model.Some(-50), DropFromHigh(model.F(200), model.F(100)))
	assert.False(t, DropFromHigh(model.F(0), model.F(100)).Valid)
	assert.False(t, DropFromHigh(nil, model.F(100)).Valid)
	assert.Equal(t, model.Some(-10), DropFromBaseline(model.F(90), model.F(100)))
	assert.False(t, DropFromBaseline(model.F(90), nil).Valid)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in   model.Pct
		want model.CellClass
	}{
		{model.NoData, model.CellNone},
		{model.Some(-3), model.CellSevere},
		{model.Some(-2.99), model.CellModerate},
		{model.Some(-1), model.CellModerate},
		{model.Some(-0.5), model.CellNeutral},
		{model.Some(0.99), model.CellNeutral},
		{model.Some(1), model.CellPositive},
		{model.Some(2.99), model.CellPositive},
		{model.Some(3), model.CellStrongPositive},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.in), "%v", tt.in)
	}
}

func TestRebase(t *testing.T) {
	assert.Equal(t, model.Some(72), Rebase(model.Some(-10), model.Some(25)))
	assert.Equal(t, model.Some(100), Rebase(model.Some(0), model.Some(0)))
	assert.False(t, Rebase(model.NoData, model.Some(0)).Valid)
	assert.False(t, Rebase(model.Some(5), model.NoData).Valid)
	assert.False(t, Rebase(model.Some(5), model.Some(-100)).Valid)
}

func TestBuildChart_ObservedPeakRebasesTo100(t *testing.T) {
	c := cols(
		day("2026-02-04", nil),
		day("2026-02-05", nil),
		day("2026-02-06", nil),
	)
	chart := BuildChart(ChartInput{
		Sectors:      []string{"crm"},
		Columns:      c,
		Cumulative:   map[string][]model.Pct{"crm": {model.Some(3.17), model.Some(7.43), model.NoData}},
		Anchor:       timeline.DefaultAnchor,
		BaselineDate: "2026-02-02",
	})

	high := chart.Highs["crm"]
	assert.True(t, high.Observed)
	assert.Equal(t, model.Some(7.43), high.Value)

	var labels []string
	for _, p := range chart.Points {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{"LTM High", "Feb 2 (base)", "Feb 3 (zero)", "Feb 4", "Feb 5", "Feb 6"}, labels)

	peak := chart.Points[4]
	assert.Equal(t, model.Some(100), peak.Rebased["crm"])
	assert.False(t, chart.Points[5].Rebased["crm"].Valid)
	assert.Equal(t, model.Some(100), chart.Points[0].Rebased["crm"])
}

func TestBuildChart_ReferenceHighAndFloor(t *testing.T) {
	c := cols(day("2026-02-04", nil))
	ltm := &model.LTMHighFile{Sectors: map[string]model.SectorHigh{
		"crm": {LTMHighPct: model.F(80), HighDate: "2025-03-14"},
	}}
	chart := BuildChart(ChartInput{
		Sectors:      []string{"crm", "pos"},
		Columns:      c,
		Cumulative:   map[string][]model.Pct{"crm": {model.Some(-10)}, "pos": {model.Some(-4)}},
		BaselineDate: timeline.DefaultAnchor,
		LTM:          ltm,
	})

	assert.Equal(t, model.HighMark{Value: model.Some(80), Date: "Mar 2025"}, chart.Highs["crm"])
	assert.Equal(t, model.HighMark{Value: model.Some(0), Observed: true}, chart.Highs["pos"])
	// Baseline equal to the anchor adds no extra point.
	assert.Len(t, chart.Points, 3)
	assert.Equal(t, model.Some(50), chart.Points[2].Rebased["crm"])
}

func TestEstimateMultiple(t *testing.T) {
	f := &model.Fundamental{
		EnterpriseValue: model.F(1100),
		MarketCap:       model.F(1000),
		TTMRevenue:      model.F(100),
		CurrentPrice:    model.F(50),
	}
	assert.Equal(t, model.Some(6), EstimateMultiple(model.F(25), f))
	assert.Equal(t, model.Some(11), EstimateMultiple(model.F(50), f))
	assert.False(t, EstimateMultiple(nil, f).Valid)
	assert.False(t, EstimateMultiple(model.F(0), f).Valid)
	assert.False(t, EstimateMultiple(model.F(25), nil).Valid)

	indebted := &model.Fundamental{
		EnterpriseValue: model.F(100),
		MarketCap:       model.F(1000),
		TTMRevenue:      model.F(100),
		CurrentPrice:    model.F(50),
	}
	assert.False(t, EstimateMultiple(model.F(5), indebted).Valid)
}

func TestSectorMultiplesAndRuleOf40(t *testing.T) {
	c := cols(day("2026-02-04", map[string]float64{"A": 25}))
	funds := &model.FundamentalsFile{Tickers: map[string]model.Fundamental{
		"A": {EnterpriseValue: model.F(1100), MarketCap: model.F(1000), TTMRevenue: model.F(100), CurrentPrice: model.F(50),
			RuleOf40: model.F(45), RevenueGrowthPct: model.F(30), EBITDAMarginPct: model.F(15)},
		"B": {RuleOf40: model.F(20)},
	}}
	ltm := &model.LTMHighFile{Tickers: map[string]model.TickerHigh{"A": {HighPrice: model.F(100)}}}

	avg, rows := SectorMultiples([]string{"A", "B", "C"}, c, map[string]float64{"A": 50}, ltm, funds)
	assert.Equal(t, model.Some(21), avg.LTM)
	assert.Equal(t, model.Some(11), avg.Base)
	assert.Equal(t, []model.Pct{model.Some(6)}, avg.Columns)
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[1].Ticker)
	assert.False(t, rows[1].LTM.Valid)

	ro40, tickers := SectorRuleOf40([]string{"A", "B", "C"}, funds)
	assert.Equal(t, model.Some(32.5), ro40)
	require.Len(t, tickers, 2)
	assert.Equal(t, model.Some(30), tickers[0].Growth)
	assert.False(t, tickers[1].Margin.Valid)

	empty, none := SectorMultiples([]string{"A"}, c, nil, nil, nil)
	assert.False(t, empty.LTM.Valid)
	assert.Nil(t, none)
}

func TestSummarizeSector(t *testing.T) {
	sector := model.Sector{ID: "document", AvgDrop: -38, Companies: []model.Company{
		{Name: "DocuSign", Ticker: "DOCU", Status: "public", Drop: model.F(-52)},
		{Name: "PandaDoc", Ticker: "private", Status: "private"},
		{Name: "Dropbox Sign", Ticker: "DBX", Status: "public", Drop: model.F(-25)},
	}}
	baseline := &model.BaselineFile{Tickers: map[string]model.BaselinePrice{"DOCU": {Price: model.F(100)}}}
	ltm := &model.LTMHighFile{Tickers: map[string]model.TickerHigh{
		"DOCU": {HighPrice: model.F(200), ZeroPrice: model.F(90)},
		"DBX":  {HighPrice: model.F(50), ZeroPrice: model.F(40)},
	}}
	latest := &model.Snapshot{Date: "2026-02-10", Tickers: map[string]model.Quote{"DOCU": {Close: model.F(80)}}}

	s := SummarizeSector(sector, baseline, ltm, latest)
	require.Len(t, s.Companies, 3)
	assert.Equal(t, model.Some(-50), s.Companies[0].Drop)
	assert.Equal(t, model.Some(-20), s.Companies[0].BaselineDrop)
	assert.False(t, s.Companies[1].Drop.Valid)
	assert.Equal(t, model.Some(-20), s.Companies[2].Drop)
	assert.False(t, s.Companies[2].BaselineDrop.Valid)
	assert.Equal(t, model.Some(-35), s.AvgDrop)
	assert.Equal(t, model.Some(-20), s.AvgBaselineDrop)

	static := SummarizeSector(sector, baseline, nil, latest)
	assert.Equal(t, model.Some(-38), static.AvgDrop)
	assert.Equal(t, model.Some(-52), static.Companies[0].Drop)
	assert.False(t, static.AvgBaselineDrop.Valid)
}
