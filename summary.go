package finbook

import (
	"sort"
)

// CategoryTotal is the spend accumulated in one category.
type CategoryTotal struct {
	Category string
	Total    Money
}

// Summary provides an at-a-glance snapshot of the tracked finances on a given
// date: net position and the current month's flows. It feeds both the summary
// command and the advisor prompt.
type Summary struct {
	Date             Date
	Currency         string
	TotalAssets      Money
	TotalLiabilities Money
	NetWorth         Money
	MonthIncome      Money
	MonthExpense     Money
	// ExpenseByCategory breaks down the month's expenses, largest first.
	ExpenseByCategory []CategoryTotal
}

// Summarize computes the summary snapshot for the given date. Flows cover the
// calendar month of 'on', up to and including 'on'.
func (l *Ledger) Summarize(on Date) Summary {
	// anchor every amount on the ledger currency, so an empty ledger still
	// formats its zeroes.
	zero := M(0, l.currency)
	s := Summary{
		Date:             on,
		Currency:         l.currency,
		TotalAssets:      zero.Add(l.accounts.Total(Asset)),
		TotalLiabilities: zero.Add(l.accounts.Total(Liability)),
		MonthIncome:      zero,
		MonthExpense:     zero,
	}
	s.NetWorth = s.TotalAssets.Sub(s.TotalLiabilities)

	monthStart := NewDate(on.Year(), on.Month(), 1)
	byCategory := make(map[string]Money)
	for _, t := range l.transactions {
		if t.Date.Before(monthStart) || t.Date.After(on) {
			continue
		}
		switch t.Type {
		case Income:
			s.MonthIncome = s.MonthIncome.Add(t.Amount)
		case Expense:
			s.MonthExpense = s.MonthExpense.Add(t.Amount)
			byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
		}
	}
	for category, total := range byCategory {
		s.ExpenseByCategory = append(s.ExpenseByCategory, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(s.ExpenseByCategory, func(i, j int) bool {
		a, b := s.ExpenseByCategory[i], s.ExpenseByCategory[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Category < b.Category
	})
	return s
}

// Recent returns the n most recent transactions, newest first. Ties on the
// same day keep the insertion order.
func (l *Ledger) Recent(n int) []Transaction {
	txs := l.Transactions()
	sort.SliceStable(txs, func(i, j int) bool { return txs[j].Date.Before(txs[i].Date) })
	if n > 0 && len(txs) > n {
		txs = txs[:n]
	}
	return txs
}
