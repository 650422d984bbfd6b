package viewstate

import (
	"fmt"
	"sort"
)

// Tab selects the dashboard page.
type Tab string

const (
	TabTracker Tab = "tracker"
	TabIndexes Tab = "indexes"
)

// Metric selects the valuation measure on the indexes tab.
type Metric string

const (
	MetricARR      Metric = "arr"
	MetricRuleOf40 Metric = "ro40"
)

// State is the presentation state. It is treated as a value: Reduce always
// returns a fresh copy and never mutates its input.
type State struct {
	// Sectors is the category filter as a sorted set; empty shows all sectors.
	Sectors  []string `json:"sectors"`
	Expanded string   `json:"expanded,omitempty"`
	Tab      Tab      `json:"tab"`
	Metric   Metric   `json:"metric"`
}

// Default is the state a new session starts in.
func Default() State {
	return State{Tab: TabTracker, Metric: MetricARR}
}

// Shows reports whether a sector passes the category filter.
func (s State) Shows(id string) bool {
	if len(s.Sectors) == 0 {
		return true
	}
	i := sort.SearchStrings(s.Sectors, id)
	return i < len(s.Sectors) && s.Sectors[i] == id
}

// ActionType names a state transition.
type ActionType string

const (
	ToggleSector   ActionType = "toggle_sector"
	ToggleExpanded ActionType = "toggle_expanded"
	SelectTab      ActionType = "select_tab"
	SelectMetric   ActionType = "select_metric"
)

// Action is a user intent. For ToggleSector an empty Value clears the filter.
type Action struct {
	Type  ActionType `json:"type"`
	Value string     `json:"value"`
}

// Reduce applies a to s.
func Reduce(s State, a Action) (State, error) {
	next := s
	next.Sectors = append([]string(nil), s.Sectors...)

	switch a.Type {
	case ToggleSector:
		if a.Value == "" {
			next.Sectors = nil
			break
		}
		i := sort.SearchStrings(next.Sectors, a.Value)
		if i < len(next.Sectors) && next.Sectors[i] == a.Value {
			next.Sectors = append(next.Sectors[:i], next.Sectors[i+1:]...)
		} else {
			next.Sectors = append(next.Sectors, "")
			copy(next.Sectors[i+1:], next.Sectors[i:])
			next.Sectors[i] = a.Value
		}
		if len(next.Sectors) == 0 {
			next.Sectors = nil
		}
	case ToggleExpanded:
		if next.Expanded == a.Value {
			next.Expanded = ""
		} else {
			next.Expanded = a.Value
		}
	case SelectTab:
		switch Tab(a.Value) {
		case TabTracker, TabIndexes:
			next.Tab = Tab(a.Value)
		default:
			return s, fmt.Errorf("unknown tab %q", a.Value)
		}
	case SelectMetric:
		switch Metric(a.Value) {
		case MetricARR, MetricRuleOf40:
			next.Metric = Metric(a.Value)
		default:
			return s, fmt.Errorf("unknown metric %q", a.Value)
		}
	default:
		return s, fmt.Errorf("unknown action %q", a.Type)
	}
	return next, nil
}
