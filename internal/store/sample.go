package store

import "fintrack/internal/core"

// SampleTransactions returns the built-in demo dataset. It is loaded when
// the store starts empty and after a whole-database reset, giving the
// dashboard several months of history to aggregate.
func SampleTransactions() []core.Transaction {
	rows := []struct {
		desc  string
		cents int64
		date  string
		typ   core.TxType
		cat   string
	}{
		{"Coffee at Starbucks", 450, "2025-01-05", core.Expense, "Food"},
		{"Bus ticket", 275, "2025-01-10", core.Expense, "Transport"},
		{"Movie tickets", 2800, "2025-01-15", core.Expense, "Entertainment"},
		{"Book purchase", 1599, "2025-01-20", core.Expense, "Education"},
		{"Doctor visit", 15000, "2025-01-25", core.Expense, "Healthcare"},
		{"Salary deposit", 250000, "2025-01-31", core.Income, "Other"},
		{"Groceries", 12000, "2025-02-05", core.Expense, "Food"},
		{"Uber ride", 1200, "2025-02-10", core.Expense, "Transport"},
		{"Spotify subscription", 999, "2025-02-15", core.Expense, "Entertainment"},
		{"Online course", 4999, "2025-02-20", core.Expense, "Education"},
		{"Pharmacy", 2500, "2025-02-25", core.Expense, "Healthcare"},
		{"Salary deposit", 250000, "2025-02-28", core.Income, "Other"},
		{"Rent payment", 120000, "2025-03-01", core.Expense, "Bills"},
		{"Grocery shopping", 9550, "2025-03-05", core.Expense, "Food"},
		{"Train ticket", 1500, "2025-03-10", core.Expense, "Transport"},
		{"Concert tickets", 8500, "2025-03-15", core.Expense, "Entertainment"},
		{"Clothes from H&M", 6000, "2025-03-20", core.Expense, "Shopping"},
		{"Freelance payment", 50000, "2025-03-25", core.Income, "Other"},
		{"Water bill", 3500, "2025-04-01", core.Expense, "Bills"},
		{"Restaurant dinner", 7500, "2025-04-05", core.Expense, "Food"},
		{"Gas for car", 5000, "2025-04-10", core.Expense, "Transport"},
		{"Netflix subscription", 1599, "2025-04-15", core.Expense, "Entertainment"},
		{"Online shopping", 4500, "2025-04-20", core.Expense, "Shopping"},
		{"Dividend income", 20000, "2025-04-25", core.Income, "Other"},
		{"Internet bill", 6000, "2025-05-01", core.Expense, "Bills"},
		{"Cafe lunch", 1250, "2025-05-05", core.Expense, "Food"},
		{"Taxi ride", 2000, "2025-05-10", core.Expense, "Transport"},
		{"Video game", 5999, "2025-05-15", core.Expense, "Entertainment"},
		{"Gift for friend", 3000, "2025-05-20", core.Expense, "Miscellaneous"},
		{"Salary deposit", 250000, "2025-05-30", core.Income, "Other"},
		{"Electricity bill", 9000, "2025-06-01", core.Expense, "Bills"},
		{"Supermarket", 11000, "2025-06-05", core.Expense, "Food"},
		{"Fuel", 5500, "2025-06-10", core.Expense, "Transport"},
		{"Movie rental", 599, "2025-06-15", core.Expense, "Entertainment"},
		{"Books for study", 4000, "2025-06-20", core.Expense, "Education"},
		{"Medical checkup", 10000, "2025-06-25", core.Expense, "Healthcare"},
		{"Side hustle", 30000, "2025-07-05", core.Income, "Other"},
		{"Groceries", 8000, "2025-07-10", core.Expense, "Food"},
		{"Bus pass", 2500, "2025-07-15", core.Expense, "Transport"},
		{"Concert", 12000, "2025-07-20", core.Expense, "Entertainment"},
		{"Shopping mall", 15000, "2025-07-25", core.Expense, "Shopping"},
		{"Rent payment", 120000, "2025-08-01", core.Expense, "Bills"},
		{"Dinner at restaurant", 6525, "2025-08-05", core.Expense, "Food"},
		{"Uber ride to airport", 4500, "2025-08-10", core.Expense, "Transport"},
		{"Streaming service", 1299, "2025-08-15", core.Expense, "Entertainment"},
		{"Tuition fee", 50000, "2025-08-20", core.Expense, "Education"},
		{"Dentist", 20000, "2025-08-25", core.Expense, "Healthcare"},
		{"Bonus payment", 100000, "2025-08-29", core.Income, "Other"},
	}

	out := make([]core.Transaction, 0, len(rows))
	for _, r := range rows {
		d, err := core.ParseDate(r.date)
		if err != nil {
			continue
		}
		out = append(out, core.Transaction{
			Description: r.desc,
			Amount:      core.Money{Cents: r.cents},
			Category:    r.cat,
			Date:        d,
			Type:        r.typ,
		})
	}
	return out
}
