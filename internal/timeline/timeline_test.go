package timeline

import (
	"testing"

	"SaaSTracker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(date string) model.Snapshot {
	return model.Snapshot{Date: date, Tickers: map[string]model.Quote{}}
}

// consecutive returns n snapshots on consecutive calendar days starting at start.
func consecutive(start string, n, step int) []model.Snapshot {
	out := make([]model.Snapshot, n)
	for i := range out {
		out[i] = snap(ShiftDate(start, i*step))
	}
	return out
}

func TestNormalize_PrefersCloseOverIntraday(t *testing.T) {
	intraday := model.Snapshot{Date: "2026-02-05", TimeLabel: "10:30", FetchedAt: "2026-02-05T15:30:00Z"}
	eod := model.Snapshot{Date: "2026-02-05", FetchedAt: "2026-02-05T10:00:00Z"}

	got := Normalize([]model.Snapshot{intraday, eod})
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].TimeLabel)

	got = Normalize([]model.Snapshot{eod, intraday})
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].TimeLabel)
}

func TestNormalize_LaterFetchWins(t *testing.T) {
	a := model.Snapshot{Date: "2026-02-05", TimeLabel: "10:30", FetchedAt: "2026-02-05T15:30:00"}
	b := model.Snapshot{Date: "2026-02-05", TimeLabel: "12:00", FetchedAt: "2026-02-05T17:00:00+00:00"}

	assert.Equal(t, "12:00", Normalize([]model.Snapshot{a, b})[0].TimeLabel)
	assert.Equal(t, "12:00", Normalize([]model.Snapshot{b, a})[0].TimeLabel)
}

func TestNormalize_UnparseableFetchLastWins(t *testing.T) {
	a := model.Snapshot{Date: "2026-02-05", FetchedAt: "garbage", TimeLabel: "x"}
	b := model.Snapshot{Date: "2026-02-05", TimeLabel: "y"}
	assert.Equal(t, "y", Normalize([]model.Snapshot{a, b})[0].TimeLabel)
	assert.Equal(t, "x", Normalize([]model.Snapshot{b, a})[0].TimeLabel)
}

func TestNormalize_OneMissingFetchTimeLastWins(t *testing.T) {
	stamped := model.Snapshot{Date: "2026-02-05", FetchedAt: "2026-02-05T21:00:00Z", TimeLabel: "stamped"}
	bare := model.Snapshot{Date: "2026-02-05", TimeLabel: "bare"}

	assert.Equal(t, "bare", Normalize([]model.Snapshot{stamped, bare})[0].TimeLabel)
	assert.Equal(t, "stamped", Normalize([]model.Snapshot{bare, stamped})[0].TimeLabel)
}

func TestNormalize_SortsAndDropsUndated(t *testing.T) {
	got := Normalize([]model.Snapshot{snap("2026-02-06"), {}, snap("2026-02-04"), snap("2026-02-05")})
	require.Len(t, got, 3)
	assert.Equal(t, "2026-02-04", got[0].Date)
	assert.Equal(t, "2026-02-06", got[2].Date)
}

func TestNormalize_Idempotent(t *testing.T) {
	in := []model.Snapshot{
		{Date: "2026-02-05", TimeLabel: "10:30", FetchedAt: "2026-02-05T15:30:00Z"},
		snap("2026-02-04"),
		{Date: "2026-02-05", FetchedAt: "2026-02-05T21:00:00Z"},
	}
	once := Normalize(in)
	assert.Equal(t, once, Normalize(once))
}

func TestResolveBaseline_ExplicitWins(t *testing.T) {
	file := &model.BaselineFile{Date: "2026-02-02", Tickers: map[string]model.BaselinePrice{
		"HUBS": {Price: model.F(100)},
		"MNDY": {Price: nil},
	}}
	first := &model.Snapshot{Date: "2026-02-03", Tickers: map[string]model.Quote{
		"CRM": {Close: model.F(200)},
	}}
	b := ResolveBaseline(file, first)
	assert.True(t, b.Explicit)
	assert.Equal(t, map[string]float64{"HUBS": 100}, b.Prices)
	assert.Equal(t, "2026-02-02", b.Date)
}

func TestResolveBaseline_DerivedFromFirstSnapshot(t *testing.T) {
	first := &model.Snapshot{Date: "2026-03-01", Tickers: map[string]model.Quote{
		"HUBS": {Close: model.F(90), PrevClose: model.F(95)},
		"CRM":  {Close: model.F(200)},
		"DOCU": {},
	}}
	b := ResolveBaseline(&model.BaselineFile{Tickers: map[string]model.BaselinePrice{"X": {}}}, first)
	assert.False(t, b.Explicit)
	assert.Equal(t, map[string]float64{"HUBS": 95, "CRM": 200}, b.Prices)
	assert.Equal(t, "2026-02-28", b.Date)
}

func TestResolveBaseline_Empty(t *testing.T) {
	b := ResolveBaseline(nil, nil)
	assert.Empty(t, b.Prices)
	assert.Equal(t, "", b.Date)
}

func TestSample_EveryOtherDayExcludesAnchor(t *testing.T) {
	in := consecutive(DefaultAnchor, 7, 1)
	got := Sample(in, EveryOtherDay(DefaultAnchor))
	var dates []string
	for _, s := range got {
		dates = append(dates, s.Date)
	}
	assert.Equal(t, []string{"2026-02-05", "2026-02-07", "2026-02-09"}, dates)
}

func TestSample_DailyIncludesAnchorDropsEarlier(t *testing.T) {
	in := consecutive("2026-02-01", 4, 1)
	got := Sample(in, Daily(DefaultAnchor))
	require.Len(t, got, 2)
	assert.Equal(t, DefaultAnchor, got[0].Date)
}

func TestConsolidate_BlockCounts(t *testing.T) {
	tests := []struct {
		n                   int
		months, weeks, days int
	}{
		{0, 0, 0, 0},
		{1, 0, 0, 1},
		{6, 0, 0, 6},
		{7, 0, 1, 0},
		{13, 0, 1, 6},
		{27, 0, 3, 6},
		{28, 1, 0, 0},
		{35, 1, 1, 0},
		{75, 2, 2, 5},
	}
	for _, mode := range []Mode{Slice, Incremental} {
		for _, tt := range tests {
			opts := Options{Anchor: DefaultAnchor, Stride: 1, IncludeAnchor: true, Mode: mode}
			cols := Consolidate(consecutive(DefaultAnchor, tt.n, 1), opts)
			c := Count(cols)
			assert.Equal(t, model.ColumnCounts{Days: tt.days, Weeks: tt.weeks, Months: tt.months}, c, "mode=%d n=%d", mode, tt.n)

			covered := 0
			for _, col := range cols {
				covered += len(col.Snapshots)
			}
			assert.Equal(t, tt.n, covered, "every sampled snapshot lands in exactly one column")
		}
	}
}

func TestConsolidate_ModesAgree(t *testing.T) {
	in := consecutive(DefaultAnchor, 75, 1)
	slice := Consolidate(in, Options{Anchor: DefaultAnchor, Stride: 1, IncludeAnchor: true, Mode: Slice})
	inc := Consolidate(in, Options{Anchor: DefaultAnchor, Stride: 1, IncludeAnchor: true, Mode: Incremental})
	assert.Equal(t, slice, inc)

	var ids []string
	for _, c := range slice {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"mo-1", "mo-2", "wk-9", "wk-10",
		"day-2026-04-14", "day-2026-04-15", "day-2026-04-16", "day-2026-04-17", "day-2026-04-18"}, ids)
}

func TestConsolidate_OrderMonthsWeeksDays(t *testing.T) {
	cols := Consolidate(consecutive(DefaultAnchor, 40, 1), Daily(DefaultAnchor))
	rank := map[model.ColumnType]int{model.ColumnMonth: 0, model.ColumnWeek: 1, model.ColumnDay: 2}
	for i := 1; i < len(cols); i++ {
		assert.LessOrEqual(t, rank[cols[i-1].Type], rank[cols[i].Type])
	}
}

func TestConsolidate_Labels(t *testing.T) {
	cols := Consolidate(consecutive("2026-02-04", 9, 1), Options{Anchor: DefaultAnchor, Stride: 1, Mode: Slice})
	require.Len(t, cols, 3)

	assert.Equal(t, "wk-1", cols[0].ID)
	assert.Equal(t, "Wk 1", cols[0].Label)
	assert.Equal(t, "Feb 4–Feb 10", cols[0].Sublabel)

	assert.Equal(t, "day-2026-02-11", cols[1].ID)
	assert.Equal(t, "Wed", cols[1].Label)
	assert.Equal(t, "Feb 11", cols[1].Sublabel)
}

func TestConsolidate_MonthSublabel(t *testing.T) {
	cols := Consolidate(consecutive("2026-02-04", 28, 1), Options{Anchor: DefaultAnchor, Stride: 1, Mode: Incremental})
	require.Len(t, cols, 1)
	assert.Equal(t, "Mo 1", cols[0].Label)
	assert.Equal(t, "Feb 4–Mar 3", cols[0].Sublabel)
}

func TestConsolidate_DayTimeLabel(t *testing.T) {
	s := model.Snapshot{Date: "2026-02-09", TimeLabel: "10:30"}
	cols := Consolidate([]model.Snapshot{s}, Daily(DefaultAnchor))
	require.Len(t, cols, 1)
	assert.Equal(t, "day-2026-02-09-10:30", cols[0].ID)
	assert.Equal(t, "Mon", cols[0].Label)
	assert.Equal(t, "Feb 9 10:30", cols[0].Sublabel)
}

func TestConsolidate_Deterministic(t *testing.T) {
	in := consecutive(DefaultAnchor, 50, 2)
	assert.Equal(t, Consolidate(in, EveryOtherDay(DefaultAnchor)), Consolidate(in, EveryOtherDay(DefaultAnchor)))
}

func TestDateFormatting(t *testing.T) {
	assert.Equal(t, "Feb 2, 2026", LongDate("2026-02-02"))
	assert.Equal(t, "Jan 2025", MonthYear("2025-01-22"))
	assert.Equal(t, "2026-02-28", ShiftDate("2026-03-01", -1))
	assert.Equal(t, "", LongDate(""))
}
