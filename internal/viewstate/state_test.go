package viewstate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustReduce(t *testing.T, s State, a Action) State {
	t.Helper()
	next, err := Reduce(s, a)
	require.NoError(t, err)
	return next
}

func TestReduce_ToggleSector(t *testing.T) {
	s := Default()
	assert.True(t, s.Shows("crm"))

	s = mustReduce(t, s, Action{Type: ToggleSector, Value: "pos"})
	s = mustReduce(t, s, Action{Type: ToggleSector, Value: "crm"})
	assert.Equal(t, []string{"crm", "pos"}, s.Sectors)
	assert.True(t, s.Shows("crm"))
	assert.False(t, s.Shows("hotel"))

	s = mustReduce(t, s, Action{Type: ToggleSector, Value: "crm"})
	assert.Equal(t, []string{"pos"}, s.Sectors)

	s = mustReduce(t, s, Action{Type: ToggleSector, Value: ""})
	assert.Empty(t, s.Sectors)
	assert.True(t, s.Shows("hotel"))
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := mustReduce(t, Default(), Action{Type: ToggleSector, Value: "crm"})
	before := append([]string(nil), s.Sectors...)

	_ = mustReduce(t, s, Action{Type: ToggleSector, Value: "accounting"})
	_ = mustReduce(t, s, Action{Type: ToggleSector, Value: "crm"})
	assert.Equal(t, before, s.Sectors)
}

func TestReduce_ToggleExpanded(t *testing.T) {
	s := mustReduce(t, Default(), Action{Type: ToggleExpanded, Value: "crm"})
	assert.Equal(t, "crm", s.Expanded)
	s = mustReduce(t, s, Action{Type: ToggleExpanded, Value: "pos"})
	assert.Equal(t, "pos", s.Expanded)
	s = mustReduce(t, s, Action{Type: ToggleExpanded, Value: "pos"})
	assert.Equal(t, "", s.Expanded)
}

func TestReduce_TabAndMetric(t *testing.T) {
	s := mustReduce(t, Default(), Action{Type: SelectTab, Value: "indexes"})
	assert.Equal(t, TabIndexes, s.Tab)
	s = mustReduce(t, s, Action{Type: SelectMetric, Value: "ro40"})
	assert.Equal(t, MetricRuleOf40, s.Metric)

	_, err := Reduce(s, Action{Type: SelectTab, Value: "charts"})
	assert.Error(t, err)
	_, err = Reduce(s, Action{Type: SelectMetric, Value: "pe"})
	assert.Error(t, err)
	_, err = Reduce(s, Action{Type: "bogus"})
	assert.Error(t, err)
}

func TestStore_PersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "view.json")

	st, err := NewStore(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Default(), st.Get())

	_, err = st.Dispatch(Action{Type: ToggleSector, Value: "crm"})
	require.NoError(t, err)
	_, err = st.Dispatch(Action{Type: SelectTab, Value: "indexes"})
	require.NoError(t, err)

	reopened, err := NewStore(path, zerolog.Nop())
	require.NoError(t, err)
	got := reopened.Get()
	assert.Equal(t, []string{"crm"}, got.Sectors)
	assert.Equal(t, TabIndexes, got.Tab)
	assert.Equal(t, MetricARR, got.Metric)
}

func TestStore_RejectedActionKeepsState(t *testing.T) {
	st, err := NewStore("", zerolog.Nop())
	require.NoError(t, err)
	_, err = st.Dispatch(Action{Type: SelectMetric, Value: "nope"})
	assert.Error(t, err)
	assert.Equal(t, Default(), st.Get())
}

func TestLoad_UnsortedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sectors":["pos","crm","","pos"],"tab":"tracker","metric":"arr"}`), 0644))

	st, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"crm", "pos"}, st.Sectors)
	assert.True(t, st.Shows("crm"))
	assert.True(t, st.Shows("pos"))
	assert.False(t, st.Shows("hotel"))

	st = mustReduce(t, st, Action{Type: ToggleSector, Value: "pos"})
	assert.Equal(t, []string{"crm"}, st.Sectors)
}

func TestLoad_OnlyEmptySectorsShowsAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sectors":[""]}`), 0644))

	st, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, st.Sectors)
	assert.True(t, st.Shows("hotel"))
}
