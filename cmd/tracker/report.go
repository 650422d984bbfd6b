package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"SaaSTracker/internal/report"
	"SaaSTracker/internal/viewstate"

	"github.com/google/subcommands"
)

type reportCmd struct {
	sectors string
	expand  string
	tab     string
	metric  string
	period  bool
	raw     bool
	width   int
	style   string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the dashboard to the terminal" }
func (*reportCmd) Usage() string {
	return `report [-sectors crm,pos] [-expand crm] [-tab tracker|indexes] [-metric arr|ro40] [-period] [-raw]

  Loads the data store once and prints the selected dashboard tab.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sectors, "sectors", "", "Comma separated sector ids to show. Empty shows all sectors.")
	f.StringVar(&c.expand, "expand", "", "Sector id whose companies are listed.")
	f.StringVar(&c.tab, "tab", string(viewstate.TabTracker), "Tab to print: tracker or indexes.")
	f.StringVar(&c.metric, "metric", string(viewstate.MetricARR), "Indexes metric: arr (EV / Revenue) or ro40 (Rule of 40).")
	f.BoolVar(&c.period, "period", false, "Print period-over-period changes instead of cumulative ones.")
	f.BoolVar(&c.raw, "raw", false, "Print markdown without terminal styling.")
	f.IntVar(&c.width, "width", 120, "Wrap width for styled output.")
	f.StringVar(&c.style, "style", "", "glamour style (dark, light, notty). Empty detects the terminal.")
}

// actions turns the flags into view actions.
func (c *reportCmd) actions() []viewstate.Action {
	var out []viewstate.Action
	for _, id := range strings.Split(c.sectors, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, viewstate.Action{Type: viewstate.ToggleSector, Value: id})
		}
	}
	if c.expand != "" {
		out = append(out, viewstate.Action{Type: viewstate.ToggleExpanded, Value: c.expand})
	}
	out = append(out,
		viewstate.Action{Type: viewstate.SelectTab, Value: c.tab},
		viewstate.Action{Type: viewstate.SelectMetric, Value: c.metric},
	)
	return out
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	svc, err := a.service("", nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	if _, err := svc.Reload(ctx); err != nil {
		status = subcommands.ExitFailure
	}
	for _, act := range c.actions() {
		if _, err := svc.Dispatch(act); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	series := report.Cumulative
	if c.period {
		series = report.Period
	}
	md := report.Dashboard(svc.Current(), series)
	if c.raw {
		fmt.Print(md)
		return status
	}

	out, err := report.Render(md, report.RenderOptions{Width: c.width, Style: c.style})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering report: %v\n", err)
		fmt.Print(md)
		return subcommands.ExitFailure
	}
	fmt.Print(out)
	return status
}
