package model

import "time"

// Quote is one ticker's prices inside a daily snapshot.
type Quote struct {
	Close     *float64 `json:"close"`
	PrevClose *float64 `json:"prev_close,omitempty"`
}

// Snapshot is one daily price file as written by the price fetcher.
// Intraday captures carry a TimeLabel; the end-of-day close does not.
type Snapshot struct {
	Date      string           `json:"date"`
	TimeLabel string           `json:"time_label,omitempty"`
	FetchedAt string           `json:"fetched_at,omitempty"`
	Tickers   map[string]Quote `json:"tickers"`
}

// Close returns the ticker's close, or false when the ticker or price is missing.
func (s *Snapshot) Close(ticker string) (float64, bool) {
	if s == nil || s.Tickers == nil {
		return 0, false
	}
	q, ok := s.Tickers[ticker]
	if !ok || q.Close == nil {
		return 0, false
	}
	return *q.Close, true
}

// BaselinePrice is a single ticker's reference price in baseline.json.
type BaselinePrice struct {
	Price *float64 `json:"price"`
}

// BaselineFile is the explicit baseline reference (baseline.json).
type BaselineFile struct {
	Date      string                   `json:"date,omitempty"`
	FetchedAt string                   `json:"fetched_at,omitempty"`
	Tickers   map[string]BaselinePrice `json:"tickers"`
}

// TickerHigh is a ticker's trailing-twelve-month high reference.
type TickerHigh struct {
	HighPrice  *float64 `json:"high_price"`
	ZeroPrice  *float64 `json:"zero_price"`
	LTMHighPct *float64 `json:"ltm_high_pct,omitempty"`
	HighDate   string   `json:"high_date,omitempty"`
}

// SectorHigh is a sector's pre-computed trailing-twelve-month high.
type SectorHigh struct {
	LTMHighPct *float64 `json:"ltm_high_pct"`
	HighDate   string   `json:"high_date,omitempty"`
}

// LTMHighFile is ltm_high.json.
type LTMHighFile struct {
	FetchedAt string                `json:"fetched_at,omitempty"`
	Tickers   map[string]TickerHigh `json:"tickers"`
	Sectors   map[string]SectorHigh `json:"sectors,omitempty"`
}

// Ticker returns the ticker entry, or nil.
func (l *LTMHighFile) Ticker(t string) *TickerHigh {
	if l == nil || l.Tickers == nil {
		return nil
	}
	h, ok := l.Tickers[t]
	if !ok {
		return nil
	}
	return &h
}

// Sector returns the sector entry, or nil.
func (l *LTMHighFile) Sector(id string) *SectorHigh {
	if l == nil || l.Sectors == nil {
		return nil
	}
	h, ok := l.Sectors[id]
	if !ok {
		return nil
	}
	return &h
}

// Fundamental holds the valuation inputs for one ticker.
type Fundamental struct {
	EnterpriseValue  *float64 `json:"enterprise_value"`
	MarketCap        *float64 `json:"market_cap"`
	TTMRevenue       *float64 `json:"ttm_revenue"`
	CurrentPrice     *float64 `json:"current_price"`
	RuleOf40         *float64 `json:"rule_of_40,omitempty"`
	RevenueGrowthPct *float64 `json:"revenue_growth_pct,omitempty"`
	EBITDAMarginPct  *float64 `json:"ebitda_margin_pct,omitempty"`
}

// FundamentalsFile is fundamentals.json.
type FundamentalsFile struct {
	FetchedAt string                 `json:"fetched_at,omitempty"`
	Tickers   map[string]Fundamental `json:"tickers"`
}

// Dataset is everything one load of the snapshot store produced.
// Baseline, LTMHigh and Fundamentals are nil when the file was absent.
type Dataset struct {
	LoadID       string
	LoadedAt     time.Time
	Files        []string
	Snapshots    []Snapshot
	Baseline     *BaselineFile
	LTMHigh      *LTMHighFile
	Fundamentals *FundamentalsFile
}

// F is a convenience for building optional prices in fixtures and fetchers.
func F(v float64) *float64 { return &v }
