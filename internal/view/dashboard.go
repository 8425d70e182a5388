package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/equitydash/equitydash/internal/models"
	"github.com/equitydash/equitydash/internal/stock"
)

// Tab is one dashboard panel
type Tab int

const (
	TabBalances Tab = iota
	TabVesting
	TabHistory
)

// Tabs lists the panels in display order
var Tabs = []Tab{TabBalances, TabVesting, TabHistory}

func (t Tab) String() string {
	switch t {
	case TabBalances:
		return "Balances"
	case TabVesting:
		return "Vesting"
	case TabHistory:
		return "History"
	}
	return "Unknown"
}

// ParseTab parses a tab name, case-insensitively
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tab '%s', must be one of: balances, vesting, history", s)
}

// RenderWaiting prints the neutral waiting indicator
func RenderWaiting(w io.Writer) {
	fmt.Fprintln(w, "Loading...")
}

// RenderWelcome prints the dashboard heading
func RenderWelcome(w io.Writer, user models.User, hasUser bool) {
	if hasUser && user.Name != "" {
		fmt.Fprintf(w, "\nWelcome, %s\n", user.Name)
		return
	}
	fmt.Fprintln(w, "\nWelcome")
}

// RenderTabBar prints the tab strip with the active tab bracketed
func RenderTabBar(w io.Writer, active Tab) {
	labels := make([]string, len(Tabs))
	for i, t := range Tabs {
		if t == active {
			labels[i] = "[" + t.String() + "]"
		} else {
			labels[i] = " " + t.String() + " "
		}
	}
	fmt.Fprintf(w, "%s\n\n", strings.Join(labels, " | "))
}

// RenderTab prints the panel for tab. A nil dashboard renders as empty.
func RenderTab(w io.Writer, d *stock.Dashboard, tab Tab) {
	if d == nil {
		d = &stock.Dashboard{}
	}
	switch tab {
	case TabBalances:
		RenderBalances(w, d.Balances)
	case TabVesting:
		RenderVesting(w, d.VestingSchedules)
	case TabHistory:
		RenderHistory(w, d.Transactions)
	}
}

// RenderBalances prints the balances panel
func RenderBalances(w io.Writer, balances []models.StockBalance) {
	if len(balances) == 0 {
		fmt.Fprintln(w, "No stock balances available")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tQUANTITY\tVALUE")
	fmt.Fprintln(tw, "────\t────────\t─────")
	for _, b := range balances {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			b.Type,
			FormatQuantity(b.Quantity),
			FormatCurrency(b.CurrentValue, b.CurrencyCode),
		)
	}
	tw.Flush()
}

// RenderVesting prints the vesting panel
func RenderVesting(w io.Writer, schedules []models.VestingSchedule) {
	if len(schedules) == 0 {
		fmt.Fprintln(w, "No vesting schedules available")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSTATUS\tQUANTITY\tEST. VALUE")
	fmt.Fprintln(tw, "────\t──────\t────────\t──────────")
	for _, s := range schedules {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			FormatDate(s.VestingDate),
			s.Status.Title(),
			FormatQuantity(s.Quantity),
			FormatCurrency(s.EstimatedValue, s.CurrencyCode),
		)
	}
	tw.Flush()
}

// RenderHistory prints the transaction history panel
func RenderHistory(w io.Writer, transactions []models.Transaction) {
	if len(transactions) == 0 {
		fmt.Fprintln(w, "No transaction history available")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTYPE\tQUANTITY\tVALUE")
	fmt.Fprintln(tw, "────\t────\t────────\t─────")
	for _, t := range transactions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			FormatDate(t.Date),
			t.Type.Title(),
			FormatQuantity(t.Quantity),
			FormatCurrency(t.Value, t.CurrencyCode),
		)
	}
	tw.Flush()
}
