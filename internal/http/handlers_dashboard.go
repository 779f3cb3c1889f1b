package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

type categoryRow struct {
	Name   string
	Amount string
	Count  int
	Width  int
}

type transactionRow struct {
	ID       int64
	Date     string
	Desc     string
	Category string
	Type     string
	Amount   string
	Receipt  template.URL
}

type insightCard struct {
	Title string
	Body  string
	Kind  string // info, warning
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "path", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Today      string
		Categories []string
	}{
		Today:      time.Now().Format("2006-01-02"),
		Categories: s.classifier.Categories(),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleDashboard renders the dashboard partial: headline totals, category
// bars, insight cards, and the most recent transactions.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if errResp := RequireGET(r); errResp != nil {
		errResp.Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	filter := parseFilter(r)
	txs, err := s.store.List(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard list error", "error", err)
		InternalServerError("Failed loading dashboard").Write(w)
		return
	}

	summary := analytics.Summarize(txs)
	expenses := analytics.Expenses(txs)
	byCategory := analytics.ByCategory(expenses)

	var maxCents int64
	for _, ct := range byCategory {
		if ct.Total.Cents > maxCents {
			maxCents = ct.Total.Cents
		}
	}

	data := struct {
		TotalSpent  string
		TotalIncome string
		Net         string
		AvgDaily    string
		Count       int
		Rows        []categoryRow
		Recent      []transactionRow
		Categories  []string
		Filter      struct {
			From, To, Category, Type string
		}
		Insights []insightCard
	}{
		TotalSpent:  formatDollars(summary.TotalExpense.Cents),
		TotalIncome: formatDollars(summary.TotalIncome.Cents),
		Net:         formatDollars(summary.Net.Cents),
		AvgDaily:    formatDollars(averageDailySpend(expenses).Cents),
		Count:       summary.Count,
		Categories:  s.classifier.Categories(),
		Insights:    buildInsights(txs),
	}
	data.Filter.From = r.URL.Query().Get("from")
	data.Filter.To = r.URL.Query().Get("to")
	data.Filter.Category = r.URL.Query().Get("category")
	data.Filter.Type = r.URL.Query().Get("type")

	for _, ct := range byCategory {
		width := 0
		if maxCents > 0 && ct.Total.Cents > 0 {
			width = int((ct.Total.Cents*100 + maxCents/2) / maxCents) // rounded percent
			if width > 0 && width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		data.Rows = append(data.Rows, categoryRow{
			Name:   ct.Category,
			Amount: formatDollars(ct.Total.Cents),
			Count:  ct.Count,
			Width:  width,
		})
	}

	const recentLimit = 10
	for i, tx := range txs {
		if i >= recentLimit {
			break
		}
		data.Recent = append(data.Recent, toRow(tx))
	}

	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "dashboard.html")
		_, _ = w.Write([]byte(`<section id="dashboard"><div class="placeholder">Failed rendering dashboard</div></section>`))
	}
}

func toRow(tx core.Transaction) transactionRow {
	return transactionRow{
		ID:       tx.ID,
		Date:     tx.Date.String(),
		Desc:     template.HTMLEscapeString(tx.Description),
		Category: tx.Category,
		Type:     string(tx.Type),
		Amount:   formatDollars(tx.Amount.Cents),
		// data: URIs need the URL type or html/template refuses them
		Receipt: template.URL(tx.Receipt),
	}
}

// averageDailySpend computes the daily expense average across the span of
// the given expenses.
func averageDailySpend(expenses []core.Transaction) core.Money {
	if len(expenses) == 0 {
		return core.Money{}
	}
	from, to := expenses[0].Date, expenses[0].Date
	for _, tx := range expenses[1:] {
		if tx.Date.Before(from) {
			from = tx.Date
		}
		if tx.Date.After(to) {
			to = tx.Date
		}
	}
	return analytics.AverageDaily(expenses, from, to)
}

// buildInsights derives dashboard insight cards from the transaction set.
func buildInsights(txs []core.Transaction) []insightCard {
	expenses := analytics.Expenses(txs)
	if len(expenses) == 0 {
		return nil
	}

	var insights []insightCard

	byCategory := analytics.ByCategory(expenses)
	if len(byCategory) > 0 {
		top := byCategory[0]
		insights = append(insights, insightCard{
			Title: "Top spending category",
			Body:  top.Category + " at " + formatDollars(top.Total.Cents),
			Kind:  "info",
		})
	}

	months := analytics.ByMonth(expenses)
	if len(months) > 0 {
		avg := analytics.PredictNextMonth(expenses)
		insights = append(insights, insightCard{
			Title: "Average monthly spending",
			Body:  formatDollars(avg.Cents) + " across " + formatMonthCount(len(months)),
			Kind:  "info",
		})

		latest := months[len(months)-1]
		delta := analytics.MonthOverMonth(txs, latest.Year, latest.Month)
		if delta.HasPrevious && delta.PercentUp > 20 {
			insights = append(insights, insightCard{
				Title: "High spending alert",
				Body:  latest.Label() + " is up " + formatPercent(delta.PercentUp) + " over the previous month",
				Kind:  "warning",
			})
		}
	}

	return insights
}
