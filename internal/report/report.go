// Package report formats dashboards as markdown for the terminal.
package report

import (
	"fmt"
	"strings"

	"SaaSTracker/internal/calculator"
	"SaaSTracker/internal/model"
	"SaaSTracker/internal/timeline"
	"SaaSTracker/internal/tracker"
	"SaaSTracker/internal/viewstate"
)

// Series selects which tracker values are printed.
type Series string

const (
	Cumulative Series = "cumulative"
	Period     Series = "period"
)

// Dashboard formats the tab selected in the dashboard's view state.
func Dashboard(d tracker.Dashboard, series Series) string {
	var b strings.Builder
	b.WriteString(Header(d))
	switch {
	case d.Status != tracker.StatusOK:
	case d.View.Tab == viewstate.TabIndexes:
		b.WriteString(Indexes(d.Indexes, d.View.Metric))
	default:
		b.WriteString(Tracker(d.Tracker, series))
		b.WriteString("\n")
		b.WriteString(Chart(d.Chart))
	}
	b.WriteString("\n")
	b.WriteString(Summary(d.Summary))
	return b.String()
}

// Header is the title line plus any status hint.
func Header(d tracker.Dashboard) string {
	var b strings.Builder
	b.WriteString("# SaaS Sector Tracker\n\n")
	if d.Tracker.BaselineDate != "" {
		b.WriteString(fmt.Sprintf("Baseline: %s", timeline.LongDate(d.Tracker.BaselineDate)))
		if !d.Tracker.Explicit {
			b.WriteString(" (first snapshot)")
		}
		b.WriteString("\n\n")
	}
	switch d.Status {
	case tracker.StatusEmpty:
		b.WriteString("> **No data.** " + d.Hint + "\n\n")
	case tracker.StatusError:
		b.WriteString("> **Load failed:** " + d.Error + "\n>\n> " + d.Hint + "\n\n")
	}
	return b.String()
}

// Tracker formats the sector table, with company rows under an expanded sector.
func Tracker(t tracker.Table, series Series) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("## Tracker (%d days, %d weeks, %d months)\n\n",
		t.Counts.Days, t.Counts.Weeks, t.Counts.Months))

	b.WriteString("| Sector |")
	for _, c := range t.Columns {
		b.WriteString(" " + c.Label + " " + c.Sublabel + " |")
	}
	b.WriteString(" Total | Δ LTM | σ |\n|---|")
	for range t.Columns {
		b.WriteString("---:|")
	}
	b.WriteString("---:|---:|---:|\n")

	for _, r := range t.Sectors {
		marker := "▶"
		if r.Expanded {
			marker = "▼"
		}
		b.WriteString(fmt.Sprintf("| %s %s %s |", r.Icon, r.Name, marker))
		writeCells(&b, pick(series, r.Period, r.Cumulative))
		b.WriteString(fmt.Sprintf(" **%s** | %s | %s |\n", r.Total, r.DeltaLTM.Format(1), r.Variability))

		for _, c := range r.Companies {
			b.WriteString(fmt.Sprintf("| ↳ %s (%s) |", c.Name, c.Ticker))
			writeCells(&b, pick(series, c.Period, c.Cumulative))
			b.WriteString(fmt.Sprintf(" %s | %s | %s |\n", c.Total, c.DeltaLTM.Format(1), c.Variability))
		}
	}
	return b.String()
}

func pick(series Series, period, cumulative []model.Pct) []model.Pct {
	if series == Period {
		return period
	}
	return cumulative
}

func writeCells(b *strings.Builder, vals []model.Pct) {
	for _, v := range vals {
		b.WriteString(" " + v.String() + " |")
	}
}

// Chart lists the rebased index (LTM high = 100) per chart point.
func Chart(c model.Chart) string {
	if len(c.Sectors) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Index (LTM high = 100)\n\n| Point |")
	for _, id := range c.Sectors {
		b.WriteString(" " + id + " |")
	}
	b.WriteString("\n|---|")
	for range c.Sectors {
		b.WriteString("---:|")
	}
	b.WriteString("\n")

	for _, p := range c.Points {
		b.WriteString("| " + p.Label + " |")
		for _, id := range c.Sectors {
			v := p.Rebased[id]
			if !v.Valid {
				b.WriteString(" — |")
				continue
			}
			b.WriteString(fmt.Sprintf(" %.2f |", v.Value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, id := range c.Sectors {
		h := c.Highs[id]
		src := "reported"
		if h.Observed {
			src = "observed"
		}
		if h.Date != "" {
			src += ", " + h.Date
		}
		b.WriteString(fmt.Sprintf("- %s high: %s (%s)\n", id, h.Value, src))
	}
	return b.String()
}

// Indexes formats the valuation tab for the selected metric.
func Indexes(v model.IndexesView, metric viewstate.Metric) string {
	var b strings.Builder
	if !v.Available {
		b.WriteString("## Indexes\n\nNo fundamentals data. Fetch fundamentals to see EV / Revenue and Rule of 40.\n")
		return b.String()
	}

	if metric == viewstate.MetricRuleOf40 {
		b.WriteString("## Rule of 40\n\n| Sector | Rule of 40 | Band |\n|---|---:|---|\n")
		for _, s := range v.Sectors {
			b.WriteString(fmt.Sprintf("| %s %s | %s | %s |\n", s.Icon, s.Name, s.RuleOf40.Format(1), calculator.RuleOf40Band(s.RuleOf40)))
			for _, t := range s.RuleOf40Tickers {
				b.WriteString(fmt.Sprintf("| ↳ %s (growth %s, margin %s) | %s | %s |\n",
					t.Ticker, t.Growth.Format(1), t.Margin.Format(1), t.Value.Format(1), calculator.RuleOf40Band(t.Value)))
			}
		}
		return b.String()
	}

	b.WriteString("## EV / Revenue\n\n| Sector | LTM high | Baseline |")
	for _, c := range v.Columns {
		b.WriteString(" " + c.Sublabel + " |")
	}
	b.WriteString("\n|---|---:|---:|")
	for range v.Columns {
		b.WriteString("---:|")
	}
	b.WriteString("\n")
	for _, s := range v.Sectors {
		writeMultiples(&b, s.Icon+" "+s.Name, s.Multiples)
		for _, t := range s.Tickers {
			writeMultiples(&b, "↳ "+t.Ticker, t.Multiples)
		}
	}
	return b.String()
}

func writeMultiples(b *strings.Builder, label string, m model.Multiples) {
	b.WriteString(fmt.Sprintf("| %s | %s | %s |", label, multiple(m.LTM), multiple(m.Base)))
	for _, c := range m.Columns {
		b.WriteString(" " + multiple(c) + " |")
	}
	b.WriteString("\n")
}

func multiple(p model.Pct) string {
	if !p.Valid {
		return "—"
	}
	return fmt.Sprintf("%.1fx", p.Value)
}

// Summary formats the sector overview cards.
func Summary(s model.Summary) string {
	var b strings.Builder
	b.WriteString("## Sectors")
	if s.Live {
		b.WriteString(" (live)")
	}
	if s.AsOf != "" {
		b.WriteString(" as of " + s.AsOf)
	}
	b.WriteString("\n\n| Sector | Severity | Drop from LTM high | Since baseline |\n|---|---|---:|---:|\n")
	for _, sec := range s.Sectors {
		b.WriteString(fmt.Sprintf("| %s %s | %s | %s | %s |\n",
			sec.Icon, sec.Name, sec.Severity, sec.AvgDrop.Format(0), sec.AvgBaselineDrop.Format(0)))
	}
	return b.String()
}
