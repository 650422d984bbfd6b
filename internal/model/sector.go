package model

// Severity is the editorial disruption rating attached to a sector.
type Severity string

const (
	SeverityCatastrophic Severity = "catastrophic"
	SeveritySevere       Severity = "severe"
	SeverityModerate     Severity = "moderate"
	SeverityLow          Severity = "low"
)

// Company is a registry entry. Private companies have no ticker.
type Company struct {
	Name   string   `yaml:"name" json:"name"`
	Ticker string   `yaml:"ticker" json:"ticker"`
	Status string   `yaml:"status" json:"status"`
	Drop   *float64 `yaml:"drop" json:"drop"`
	Note   string   `yaml:"note" json:"note,omitempty"`
}

// IsPublic reports whether the company trades under a real ticker.
func (c Company) IsPublic() bool {
	return c.Status == "public" && c.Ticker != "" && c.Ticker != "private"
}

// Sector is a named group of companies plus the curated tickers whose
// prices feed the sector aggregates.
type Sector struct {
	ID        string    `yaml:"id" json:"id"`
	Name      string    `yaml:"name" json:"name"`
	Icon      string    `yaml:"icon" json:"icon"`
	Color     string    `yaml:"color" json:"color"`
	Severity  Severity  `yaml:"severity" json:"severity"`
	AvgDrop   float64   `yaml:"avg_drop" json:"avg_drop"`
	Tickers   []string  `yaml:"tickers" json:"tickers"`
	Companies []Company `yaml:"companies" json:"companies"`

	// IndexesOnly sectors appear in the valuation tab but not in the
	// tracker table or the sector summary.
	IndexesOnly bool `yaml:"indexes_only" json:"indexes_only,omitempty"`
}

// PublicCompanies returns the sector's listed companies in registry order.
func (s Sector) PublicCompanies() []Company {
	var out []Company
	for _, c := range s.Companies {
		if c.IsPublic() {
			out = append(out, c)
		}
	}
	return out
}
