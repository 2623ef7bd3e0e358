// Package renderer renders ledger state to markdown for the CLI.
package renderer

import (
	"fmt"
	"strings"

	"github.com/finbook/finbook"
)

// UnknownAccount is displayed for transactions whose account has been
// deleted: the dangling id is kept in the ledger, only display degrades.
const UnknownAccount = "unknown account"

// accountName resolves an account id for display.
func accountName(l *finbook.Ledger, id string) string {
	if id == "" {
		return "-"
	}
	if a, ok := l.Accounts().Get(id); ok {
		return a.Name
	}
	return UnknownAccount
}

// Transaction renders a transaction to a one-line string.
func Transaction(l *finbook.Ledger, t finbook.Transaction) string {
	switch t.Type {
	case finbook.Income:
		return fmt.Sprintf("Received %s (%s) into %s", t.Amount, t.Category, accountName(l, t.SourceID))
	case finbook.Expense:
		return fmt.Sprintf("Spent %s (%s) from %s", t.Amount, t.Category, accountName(l, t.SourceID))
	case finbook.Transfer:
		return fmt.Sprintf("Transferred %s from %s to %s", t.Amount, accountName(l, t.SourceID), accountName(l, t.DestinationID))
	default:
		return string(t.Type)
	}
}

// Transactions renders a transaction list as a markdown table, in the order
// given.
func Transactions(l *finbook.Ledger, txs []finbook.Transaction) string {
	var b strings.Builder
	b.WriteString("# Transactions\n\n")
	if len(txs) == 0 {
		b.WriteString("No transactions.\n")
		return b.String()
	}
	b.WriteString("| Date | Type | Amount | Category | Account | Note | ID |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, t := range txs {
		account := accountName(l, t.SourceID)
		if t.Type == finbook.Transfer {
			account = account + " → " + accountName(l, t.DestinationID)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			t.Date, t.Type, t.Amount, t.Category, account, t.Note, t.ID)
	}
	return b.String()
}

// Accounts renders the account store as two markdown sections, assets then
// liabilities.
func Accounts(l *finbook.Ledger) string {
	var b strings.Builder
	b.WriteString("# Accounts\n")
	writeKind := func(title string, kind finbook.AccountKind) {
		fmt.Fprintf(&b, "\n## %s\n\n", title)
		accounts := l.Accounts().ByKind(kind)
		if len(accounts) == 0 {
			b.WriteString("None.\n")
			return
		}
		b.WriteString("| Name | Balance | ID |\n")
		b.WriteString("|---|---|---|\n")
		for _, a := range accounts {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", a.Name, a.Balance, a.ID)
		}
		fmt.Fprintf(&b, "\nTotal: %s\n", l.Accounts().Total(kind))
	}
	writeKind("Assets", finbook.Asset)
	writeKind("Liabilities", finbook.Liability)
	return b.String()
}

// Summary renders the summary snapshot as markdown.
func Summary(s finbook.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Summary on %s\n\n", s.Date)
	fmt.Fprintf(&b, "- Net worth: %s\n", s.NetWorth)
	fmt.Fprintf(&b, "- Total assets: %s\n", s.TotalAssets)
	fmt.Fprintf(&b, "- Total liabilities: %s\n", s.TotalLiabilities)
	fmt.Fprintf(&b, "- Income this month: %s\n", s.MonthIncome)
	fmt.Fprintf(&b, "- Expenses this month: %s\n", s.MonthExpense)
	if len(s.ExpenseByCategory) > 0 {
		b.WriteString("\n## Expenses by category\n\n")
		b.WriteString("| Category | Total |\n")
		b.WriteString("|---|---|\n")
		for _, c := range s.ExpenseByCategory {
			fmt.Fprintf(&b, "| %s | %s |\n", c.Category, c.Total)
		}
	}
	return b.String()
}

// Rules renders the recurring rule catalog as a markdown table.
func Rules(l *finbook.Ledger) string {
	var b strings.Builder
	b.WriteString("# Recurring rules\n\n")
	rules := l.Rules()
	if len(rules) == 0 {
		b.WriteString("No recurring rules.\n")
		return b.String()
	}
	b.WriteString("| Name | Amount | Type | Day | Next due | Remaining | Active | ID |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, r := range rules {
		remaining := "∞"
		if r.Remaining != nil {
			remaining = fmt.Sprint(*r.Remaining)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %s | %t | %s |\n",
			r.Name, r.Amount, r.Type, r.DayOfMonth, r.NextDue, remaining, r.Active, r.ID)
	}
	return b.String()
}

// Snapshot renders the advisor's grounding context: the summary followed by
// the most recent transactions.
func Snapshot(l *finbook.Ledger, on finbook.Date, recent int) string {
	var b strings.Builder
	b.WriteString(Summary(l.Summarize(on)))
	b.WriteString("\n")
	b.WriteString(Transactions(l, l.Recent(recent)))
	return b.String()
}
