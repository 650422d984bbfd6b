package model

import "encoding/json"

// ColumnType is the granularity of a timeline column.
type ColumnType string

const (
	ColumnDay   ColumnType = "day"
	ColumnWeek  ColumnType = "week"
	ColumnMonth ColumnType = "month"
)

// Column is one display period of the consolidated timeline.
type Column struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Sublabel  string     `json:"sublabel"`
	Type      ColumnType `json:"type"`
	Snapshots []Snapshot `json:"-"`
}

// Last returns the column's final snapshot, which represents the whole period.
func (c *Column) Last() *Snapshot {
	if c == nil || len(c.Snapshots) == 0 {
		return nil
	}
	return &c.Snapshots[len(c.Snapshots)-1]
}

// Dates lists the dates covered by the column in order.
func (c *Column) Dates() []string {
	out := make([]string, len(c.Snapshots))
	for i, s := range c.Snapshots {
		out[i] = s.Date
	}
	return out
}

func (c Column) MarshalJSON() ([]byte, error) {
	type plain Column
	return json.Marshal(struct {
		plain
		Dates []string `json:"dates"`
	}{plain(c), c.Dates()})
}
