// Package analytics computes dashboard aggregates as pure functions of a
// transaction set. Nothing here is cached or incremental: every view render
// recomputes from the full slice, which is plenty at single-user scale.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"fintrack/internal/core"
)

// Summary holds the headline totals for a transaction set. Income and
// expense are summed by the type label, never by amount sign.
type Summary struct {
	TotalIncome  core.Money
	TotalExpense core.Money
	Net          core.Money
	Count        int
}

// CategoryTotal is an amount aggregated by category name.
type CategoryTotal struct {
	Category string
	Total    core.Money
	Count    int
}

// MonthTotal is an amount aggregated by calendar month.
type MonthTotal struct {
	Year  int
	Month int // 1-12
	Total core.Money
	Count int
}

// Label formats the month as YYYY-MM for tables and chart axes.
func (m MonthTotal) Label() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// MonthDelta compares one month's expense total against the previous month.
type MonthDelta struct {
	Current     core.Money
	Previous    core.Money
	PercentUp   float64 // positive = spending up vs previous month
	HasPrevious bool
}

// Summarize computes income, expense and net totals for the set.
func Summarize(txs []core.Transaction) Summary {
	var s Summary
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
		case core.Expense:
			s.TotalExpense = s.TotalExpense.Add(tx.Amount)
		}
		s.Count++
	}
	s.Net = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// ByCategory aggregates the set per category, descending by total.
// The per-category totals always sum to the overall total of the input.
func ByCategory(txs []core.Transaction) []CategoryTotal {
	idx := make(map[string]int)
	var out []CategoryTotal
	for _, tx := range txs {
		i, ok := idx[tx.Category]
		if !ok {
			i = len(out)
			idx[tx.Category] = i
			out = append(out, CategoryTotal{Category: tx.Category})
		}
		out[i].Total = out[i].Total.Add(tx.Amount)
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Cents > out[j].Total.Cents
	})
	return out
}

// ByMonth aggregates the set per calendar month, in chronological order.
func ByMonth(txs []core.Transaction) []MonthTotal {
	idx := make(map[int]int)
	var out []MonthTotal
	for _, tx := range txs {
		key := tx.Date.Year()*12 + tx.Date.Month()
		i, ok := idx[key]
		if !ok {
			i = len(out)
			idx[key] = i
			out = append(out, MonthTotal{Year: tx.Date.Year(), Month: tx.Date.Month()})
		}
		out[i].Total = out[i].Total.Add(tx.Amount)
		out[i].Count++
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Year*12+out[i].Month < out[j].Year*12+out[j].Month
	})
	return out
}

// Expenses filters the set down to expense-typed transactions.
func Expenses(txs []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Type == core.Expense {
			out = append(out, tx)
		}
	}
	return out
}

// PredictNextMonth estimates next month's spending as the arithmetic mean
// of the monthly expense totals observed so far. Returns zero with no data.
func PredictNextMonth(txs []core.Transaction) core.Money {
	months := ByMonth(Expenses(txs))
	if len(months) == 0 {
		return core.Money{}
	}
	var sum int64
	for _, m := range months {
		sum += m.Total.Cents
	}
	return core.Money{Cents: sum / int64(len(months))}
}

// MonthOverMonth compares expense totals of (year, month) with the month
// before it. PercentUp is meaningless when HasPrevious is false or the
// previous total is zero.
func MonthOverMonth(txs []core.Transaction, year, month int) MonthDelta {
	var d MonthDelta
	prevYear, prevMonth := year, month-1
	if prevMonth == 0 {
		prevYear, prevMonth = year-1, 12
	}
	for _, m := range ByMonth(Expenses(txs)) {
		switch {
		case m.Year == year && m.Month == month:
			d.Current = m.Total
		case m.Year == prevYear && m.Month == prevMonth:
			d.Previous = m.Total
			d.HasPrevious = true
		}
	}
	if d.HasPrevious && d.Previous.Cents != 0 {
		d.PercentUp = float64(d.Current.Cents-d.Previous.Cents) / float64(d.Previous.Cents) * 100
	}
	return d
}

// AverageDaily spreads the expense total over the inclusive day span.
func AverageDaily(txs []core.Transaction, from, to core.Date) core.Money {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return core.Money{}
	}
	days := int64(to.Sub(from.Time)/(24*time.Hour)) + 1
	total := Summarize(txs).TotalExpense
	return core.Money{Cents: total.Cents / days}
}
