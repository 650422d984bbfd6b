package tracker

import (
	"sort"
	"time"

	"SaaSTracker/internal/calculator"
	"SaaSTracker/internal/model"
	"SaaSTracker/internal/sectors"
	"SaaSTracker/internal/timeline"
	"SaaSTracker/internal/viewstate"
)

// Status describes whether a dashboard carries data.
type Status string

const (
	StatusOK    Status = "ok"
	StatusEmpty Status = "empty"
	StatusError Status = "error"
)

const (
	emptyHint = "No snapshots found in the data store. Run the backfill to fetch daily prices, then reload."
	errorHint = "The data store could not be reached. Check that the data API is running and data.dir or data.source_url is correct."
)

// Options configures a build.
type Options struct {
	// Tracker is the consolidation cadence of the tracker table and chart.
	Tracker timeline.Options
}

// Table is the tracker tab: columns plus one row per visible sector.
type Table struct {
	Columns      []model.Column     `json:"columns"`
	Counts       model.ColumnCounts `json:"counts"`
	BaselineDate string             `json:"baseline_date,omitempty"`
	Explicit     bool               `json:"explicit_baseline"`
	Sectors      []model.SectorRow  `json:"sectors"`
}

// Dashboard is the complete view model derived from one dataset and one view state.
type Dashboard struct {
	LoadID  string            `json:"load_id,omitempty"`
	BuiltAt time.Time         `json:"built_at"`
	Status  Status            `json:"status"`
	Hint    string            `json:"hint,omitempty"`
	Error   string            `json:"error,omitempty"`
	View    viewstate.State   `json:"view"`
	Tracker Table             `json:"tracker"`
	Chart   model.Chart       `json:"chart"`
	Indexes model.IndexesView `json:"indexes"`
	Summary model.Summary     `json:"summary"`
}

// Build derives the dashboard. It is a pure function of its inputs apart
// from the BuiltAt stamp.
func Build(ds *model.Dataset, reg *sectors.Registry, view viewstate.State, opts Options) Dashboard {
	d := Dashboard{BuiltAt: time.Now(), View: view, Status: StatusOK}
	if ds == nil {
		ds = &model.Dataset{}
	}
	d.LoadID = ds.LoadID

	snaps := timeline.Normalize(ds.Snapshots)
	var latest *model.Snapshot
	if len(snaps) > 0 {
		latest = &snaps[len(snaps)-1]
	}
	d.Summary = summarize(reg, ds, latest)

	if len(snaps) == 0 {
		d.Status = StatusEmpty
		d.Hint = emptyHint
		return d
	}

	base := timeline.ResolveBaseline(ds.Baseline, &snaps[0])
	cols := timeline.Consolidate(snaps, opts.Tracker)

	rows := sectorRows(reg, cols, base, ds.LTMHigh)
	var visible []model.SectorRow
	for _, r := range rows {
		if !view.Shows(r.ID) {
			continue
		}
		if r.ID == view.Expanded {
			r.Expanded = true
			s, _ := reg.Get(r.ID)
			r.Companies = companyRows(s, cols, base, ds.LTMHigh)
		}
		visible = append(visible, r)
	}

	d.Tracker = Table{
		Columns:      cols,
		Counts:       timeline.Count(cols),
		BaselineDate: base.Date,
		Explicit:     base.Explicit,
		Sectors:      visible,
	}

	ids := make([]string, len(visible))
	cum := make(map[string][]model.Pct, len(visible))
	for i, r := range visible {
		ids[i] = r.ID
		cum[r.ID] = r.Cumulative
	}
	d.Chart = calculator.BuildChart(calculator.ChartInput{
		Sectors:      ids,
		Columns:      cols,
		Cumulative:   cum,
		Anchor:       opts.Tracker.Anchor,
		BaselineDate: base.Date,
		LTM:          ds.LTMHigh,
	})

	d.Indexes = indexes(reg, snaps, base, ds, opts.Tracker.Anchor)
	return d
}

// Failed is the dashboard shown when the store could not be loaded.
func Failed(err error, reg *sectors.Registry, view viewstate.State) Dashboard {
	d := Dashboard{
		BuiltAt: time.Now(),
		Status:  StatusError,
		Hint:    errorHint,
		View:    view,
		Summary: summarize(reg, &model.Dataset{}, nil),
	}
	if err != nil {
		d.Error = err.Error()
	}
	return d
}

// sectorRows computes every tracker sector, ordered by the magnitude of its
// terminal cumulative change. Sectors without data sort as 0 and ties keep
// registry order.
func sectorRows(reg *sectors.Registry, cols []model.Column, base timeline.Baseline, ltm *model.LTMHighFile) []model.SectorRow {
	all := reg.Tracker()
	rows := make([]model.SectorRow, 0, len(all))
	for _, s := range all {
		series := calculator.AggregateSector(s.Tickers, cols, base.Prices)
		row := model.SectorRow{
			ID:          s.ID,
			Name:        s.Name,
			Icon:        s.Icon,
			Color:       s.Color,
			Period:      series.Period,
			Cumulative:  series.Cumulative,
			Total:       series.Total(),
			Variability: series.Variability,
		}
		if sh := ltm.Sector(s.ID); sh != nil && sh.LTMHighPct != nil {
			row.DeltaLTM = calculator.DeltaFromHigh(row.Total, model.Some(*sh.LTMHighPct))
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].Total.Abs() > rows[b].Total.Abs() })
	return rows
}

func companyRows(s model.Sector, cols []model.Column, base timeline.Baseline, ltm *model.LTMHighFile) []model.CompanyRow {
	var last *model.Snapshot
	if len(cols) > 0 {
		last = cols[len(cols)-1].Last()
	}

	public := s.PublicCompanies()
	sort.SliceStable(public, func(a, b int) bool {
		return calculator.RawCumulative(public[a].Ticker, last, base.Prices).Abs() >
			calculator.RawCumulative(public[b].Ticker, last, base.Prices).Abs()
	})

	rows := make([]model.CompanyRow, 0, len(public))
	for _, c := range public {
		series := calculator.CompanySeries(c.Ticker, cols, base.Prices)
		row := model.CompanyRow{
			Name:       c.Name,
			Ticker:     c.Ticker,
			Period:     series.Period,
			Cumulative: series.Cumulative,
			Total:      series.Total(),
		}
		if th := ltm.Ticker(c.Ticker); th != nil && th.LTMHighPct != nil {
			row.DeltaLTM = calculator.DeltaFromHigh(row.Total, model.Some(*th.LTMHighPct))
		}
		rows = append(rows, row)
	}
	return rows
}

// indexes builds the valuation tab on the daily cadence. It is unavailable
// without fundamentals.
func indexes(reg *sectors.Registry, snaps []model.Snapshot, base timeline.Baseline, ds *model.Dataset, anchor string) model.IndexesView {
	if ds.Fundamentals == nil || len(ds.Fundamentals.Tickers) == 0 {
		return model.IndexesView{}
	}
	cols := timeline.Consolidate(snaps, timeline.Daily(anchor))
	v := model.IndexesView{Available: true, Columns: cols}
	for _, s := range reg.Indexes() {
		avg, tickers := calculator.SectorMultiples(s.Tickers, cols, base.Prices, ds.LTMHigh, ds.Fundamentals)
		ro40, ro40Tickers := calculator.SectorRuleOf40(s.Tickers, ds.Fundamentals)
		v.Sectors = append(v.Sectors, model.IndexSector{
			ID:              s.ID,
			Name:            s.Name,
			Icon:            s.Icon,
			Multiples:       avg,
			Tickers:         tickers,
			RuleOf40:        ro40,
			RuleOf40Tickers: ro40Tickers,
		})
	}
	return v
}

// summarize builds the sector overview cards. The as-of stamp prefers the
// latest snapshot's fetch time, then the reference files'.
func summarize(reg *sectors.Registry, ds *model.Dataset, latest *model.Snapshot) model.Summary {
	sum := model.Summary{Live: ds.Baseline != nil && ds.LTMHigh != nil}
	switch {
	case latest != nil && latest.FetchedAt != "":
		sum.AsOf = latest.FetchedAt
	case ds.LTMHigh != nil && ds.LTMHigh.FetchedAt != "":
		sum.AsOf = ds.LTMHigh.FetchedAt
	case ds.Baseline != nil && ds.Baseline.FetchedAt != "":
		sum.AsOf = ds.Baseline.FetchedAt
	}
	for _, s := range reg.Tracker() {
		sum.Sectors = append(sum.Sectors, calculator.SummarizeSector(s, ds.Baseline, ds.LTMHigh, latest))
	}
	return sum
}
