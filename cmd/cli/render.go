package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/usecase"
)

// formatMoney renders amount in the currency's display format, e.g. R$1.234,56.
func formatMoney(amount decimal.Decimal, code string) string {
	cur := money.New(0, code).Currency()
	return cur.Formatter().Format(amount.Shift(int32(cur.Fraction)).IntPart())
}

func monthTitle(year, month int) string {
	return fmt.Sprintf("%s %d", time.Month(month+1), year)
}

func summaryMarkdown(s usecase.MonthSummary, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", monthTitle(s.Year, s.Month))
	b.WriteString("| | Projected | Realized |\n|---|---:|---:|\n")
	fmt.Fprintf(&b, "| Income | %s | %s |\n", formatMoney(s.Income, currency), formatMoney(s.RealizedIncome, currency))
	fmt.Fprintf(&b, "| Expense | %s | %s |\n", formatMoney(s.Expense, currency), formatMoney(s.RealizedExpense, currency))
	fmt.Fprintf(&b, "| **Balance** | **%s** | **%s** |\n\n", formatMoney(s.Projected, currency), formatMoney(s.Realized, currency))

	if s.Appointments > 0 {
		fmt.Fprintf(&b, "%d appointment(s) this month.\n\n", s.Appointments)
	}

	if len(s.Days) > 0 {
		b.WriteString("## Daily balance\n\n| Day | Income | Expense | Balance |\n|---:|---:|---:|---:|\n")
		for _, d := range s.Days {
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n",
				d.Day,
				formatMoney(d.Income, currency),
				formatMoney(d.Expense, currency),
				formatMoney(d.Balance, currency))
		}
	}

	return b.String()
}

func entriesMarkdown(resp dto.ListEntriesResponse, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Entries for %s\n\n", monthTitle(resp.Year, resp.Month))
	if len(resp.Entries) == 0 {
		b.WriteString("No entries.\n")
		return b.String()
	}

	b.WriteString("| Day | Description | Kind | Amount | Done | ID |\n|---:|---|---|---:|:---:|---|\n")
	for _, e := range resp.Entries {
		done := " "
		if e.Completed {
			done = "x"
		}
		desc := e.Description
		if e.TotalInstallments > 0 {
			desc = fmt.Sprintf("%s (%d/%d)", desc, e.InstallmentNumber, e.TotalInstallments)
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | `%s` |\n",
			e.Day, escapeCell(desc), e.Kind, formatMoney(e.Amount, currency), done, e.ID)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// renderMarkdown renders md for a plain terminal.
func renderMarkdown(md string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
