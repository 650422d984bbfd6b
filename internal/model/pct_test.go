package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPct_JSONNullForNoData(t *testing.T) {
	out, err := json.Marshal(struct {
		A Pct `json:"a"`
		B Pct `json:"b"`
		C Pct `json:"c"`
	}{A: NoData, B: Some(0), C: Some(-10)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":null,"b":0,"c":-10}`, string(out))
}

func TestPct_UnmarshalRoundTrip(t *testing.T) {
	var v struct {
		A Pct `json:"a"`
		B Pct `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":null,"b":12.5}`), &v))
	assert.False(t, v.A.Valid)
	assert.True(t, v.B.Valid)
	assert.Equal(t, 12.5, v.B.Value)
}

func TestSome_RejectsNonFinite(t *testing.T) {
	assert.False(t, Some(math.NaN()).Valid)
	assert.False(t, Some(math.Inf(1)).Valid)
	assert.False(t, Some(math.Inf(-1)).Valid)
	assert.True(t, Some(0).Valid)
}

func TestPct_Format(t *testing.T) {
	tests := []struct {
		p    Pct
		prec int
		want string
	}{
		{NoData, 2, "—"},
		{Some(0), 2, "0.00%"},
		{Some(3.456), 1, "+3.5%"},
		{Some(-10), 2, "-10.00%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.p.Format(tt.prec))
	}
}

func TestPct_AbsTreatsNoDataAsZero(t *testing.T) {
	assert.Equal(t, 0.0, NoData.Abs())
	assert.Equal(t, 7.5, Some(-7.5).Abs())
}

func TestColumn_MarshalIncludesDates(t *testing.T) {
	col := Column{ID: "wk-1", Label: "Wk 1", Sublabel: "Feb 4–Feb 10", Type: ColumnWeek,
		Snapshots: []Snapshot{{Date: "2026-02-04"}, {Date: "2026-02-10"}}}
	out, err := json.Marshal(col)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"wk-1","label":"Wk 1","sublabel":"Feb 4–Feb 10","type":"week","dates":["2026-02-04","2026-02-10"]}`, string(out))
}
