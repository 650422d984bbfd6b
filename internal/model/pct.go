package model

import (
	"encoding/json"
	"math"
	"strconv"
)

// Pct is a derived percentage that may be absent. A zero Pct means "no data",
// which is never the same thing as a measured 0%.
type Pct struct {
	Value float64
	Valid bool
}

// NoData is the absent percentage.
var NoData = Pct{}

// Some wraps v as a present value. Non-finite inputs collapse to NoData so a
// division by a vanishing base never leaks NaN or Inf into a view model.
func Some(v float64) Pct {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NoData
	}
	return Pct{Value: v, Valid: true}
}

// Or returns the value, or def when absent.
func (p Pct) Or(def float64) float64 {
	if !p.Valid {
		return def
	}
	return p.Value
}

// Abs returns |value|, treating absence as 0 for ordering purposes.
func (p Pct) Abs() float64 {
	return math.Abs(p.Or(0))
}

func (p Pct) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(p.Value, 'f', -1, 64)), nil
}

func (p *Pct) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = NoData
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Some(v)
	return nil
}

func (p Pct) String() string {
	return p.Format(2)
}

// Format renders the value with an explicit sign and prec decimals.
func (p Pct) Format(prec int) string {
	if !p.Valid {
		return "—"
	}
	s := strconv.FormatFloat(p.Value, 'f', prec, 64)
	if p.Value > 0 {
		s = "+" + s
	}
	return s + "%"
}
