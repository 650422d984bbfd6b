package model

// CellClass buckets a percentage for display.
type CellClass string

const (
	CellNone           CellClass = "none"
	CellSevere         CellClass = "severe"
	CellModerate       CellClass = "moderate"
	CellNeutral        CellClass = "neutral"
	CellPositive       CellClass = "positive"
	CellStrongPositive CellClass = "strong_positive"
)

// SectorRow is one sector line of the tracker table.
type SectorRow struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Icon        string       `json:"icon"`
	Color       string       `json:"color"`
	Period      []Pct        `json:"period"`
	Cumulative  []Pct        `json:"cumulative"`
	Total       Pct          `json:"total"`
	DeltaLTM    Pct          `json:"delta_ltm"`
	Variability Pct          `json:"variability"`
	Expanded    bool         `json:"expanded"`
	Companies   []CompanyRow `json:"companies,omitempty"`
}

// CompanyRow is one listed company inside an expanded sector.
type CompanyRow struct {
	Name        string `json:"name"`
	Ticker      string `json:"ticker"`
	Period      []Pct  `json:"period"`
	Cumulative  []Pct  `json:"cumulative"`
	Total       Pct    `json:"total"`
	DeltaLTM    Pct    `json:"delta_ltm"`
	Variability Pct    `json:"variability"`
}

// ColumnCounts tallies columns per granularity.
type ColumnCounts struct {
	Days   int `json:"days"`
	Weeks  int `json:"weeks"`
	Months int `json:"months"`
}

// ChartPoint is one x-axis position of the sector chart.
type ChartPoint struct {
	Label   string         `json:"label"`
	SortKey string         `json:"sort_key"`
	Values  map[string]Pct `json:"values"`
	Rebased map[string]Pct `json:"rebased"`
}

// HighMark is the LTM high used to rebase a sector series.
type HighMark struct {
	Value    Pct    `json:"value"`
	Date     string `json:"date,omitempty"`
	Observed bool   `json:"observed"`
}

// Chart is the cumulative series for the visible sectors, raw and rebased.
type Chart struct {
	Sectors []string            `json:"sectors"`
	Points  []ChartPoint        `json:"points"`
	Highs   map[string]HighMark `json:"highs"`
}

// Multiples holds EV/revenue estimates at the LTM high, the baseline and each column.
type Multiples struct {
	LTM     Pct   `json:"ltm"`
	Base    Pct   `json:"base"`
	Columns []Pct `json:"columns"`
}

// TickerMultiples is Multiples for a single ticker.
type TickerMultiples struct {
	Ticker string `json:"ticker"`
	Multiples
}

// TickerRuleOf40 is the growth plus margin breakdown for a single ticker.
type TickerRuleOf40 struct {
	Ticker string `json:"ticker"`
	Value  Pct    `json:"value"`
	Growth Pct    `json:"growth"`
	Margin Pct    `json:"margin"`
}

// IndexSector is one sector of the valuation view.
type IndexSector struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Icon            string            `json:"icon"`
	Multiples       Multiples         `json:"multiples"`
	Tickers         []TickerMultiples `json:"tickers"`
	RuleOf40        Pct               `json:"rule_of_40"`
	RuleOf40Tickers []TickerRuleOf40  `json:"rule_of_40_tickers"`
}

// IndexesView is the valuation tab: multiples on the daily cadence plus Rule of 40.
type IndexesView struct {
	Available bool          `json:"available"`
	Columns   []Column      `json:"columns"`
	Sectors   []IndexSector `json:"sectors"`
}

// CompanySummary is a company with its live drop figures.
type CompanySummary struct {
	Name         string `json:"name"`
	Ticker       string `json:"ticker"`
	Status       string `json:"status"`
	Drop         Pct    `json:"drop"`
	BaselineDrop Pct    `json:"baseline_drop"`
}

// SectorSummary is a sector card with averages over its listed companies.
type SectorSummary struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Icon            string           `json:"icon"`
	Color           string           `json:"color"`
	Severity        Severity         `json:"severity"`
	AvgDrop         Pct              `json:"avg_drop"`
	AvgBaselineDrop Pct              `json:"avg_baseline_drop"`
	Companies       []CompanySummary `json:"companies"`
}

// Summary is the sector overview. Live is false when reference files were
// missing and the registry's static figures were used instead.
type Summary struct {
	AsOf    string          `json:"as_of,omitempty"`
	Live    bool            `json:"live"`
	Sectors []SectorSummary `json:"sectors"`
}
