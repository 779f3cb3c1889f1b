package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fintrack/internal/analytics"
	"fintrack/internal/charts"
)

// handleAnalytics renders the advanced analytics partial: monthly trend
// table, month-over-month comparison, and the next-month prediction.
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if errResp := RequireGET(r); errResp != nil {
		errResp.Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	filter := parseFilter(r)
	txs, err := s.store.List(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "Analytics list error", "error", err)
		InternalServerError("Failed loading analytics").Write(w)
		return
	}

	expenses := analytics.Expenses(txs)
	months := analytics.ByMonth(expenses)

	type monthRow struct {
		Label  string
		Amount string
		Count  int
	}
	data := struct {
		HasData    bool
		Months     []monthRow
		Prediction string
		Current    string
		Previous   string
		Change     string
		SpendingUp bool
		HasDelta   bool
	}{
		HasData:    len(months) > 0,
		Prediction: formatDollars(analytics.PredictNextMonth(expenses).Cents),
	}

	for _, mt := range months {
		data.Months = append(data.Months, monthRow{
			Label:  mt.Label(),
			Amount: formatDollars(mt.Total.Cents),
			Count:  mt.Count,
		})
	}

	if len(months) > 0 {
		latest := months[len(months)-1]
		delta := analytics.MonthOverMonth(txs, latest.Year, latest.Month)
		data.Current = formatDollars(delta.Current.Cents)
		data.Previous = formatDollars(delta.Previous.Cents)
		data.Change = formatPercent(delta.PercentUp)
		data.SpendingUp = delta.PercentUp > 0
		data.HasDelta = delta.HasPrevious
	}

	if err := s.templates.ExecuteTemplate(w, "analytics.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "analytics.html")
		_, _ = w.Write([]byte(`<section id="analytics"><div class="placeholder">Failed rendering analytics</div></section>`))
	}
}

// handleCategoryChart serves the spending-by-category pie as PNG.
func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)
	txs, err := s.store.List(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "Category chart list error", "error", err)
		http.Error(w, "failed loading data", http.StatusInternalServerError)
		return
	}

	totals := analytics.ByCategory(analytics.Expenses(txs))

	w.Header().Set("Content-Type", "image/png")
	if err := charts.RenderCategoryPie(w, totals); err != nil {
		if errors.Is(err, charts.ErrNoData) {
			http.Error(w, "no data", http.StatusNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "Category chart render error", "error", err)
	}
}

// handleTrendChart serves the monthly spending trend bar chart as PNG.
func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)
	txs, err := s.store.List(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "Trend chart list error", "error", err)
		http.Error(w, "failed loading data", http.StatusInternalServerError)
		return
	}

	months := analytics.ByMonth(analytics.Expenses(txs))

	w.Header().Set("Content-Type", "image/png")
	if err := charts.RenderMonthlyTrend(w, months); err != nil {
		if errors.Is(err, charts.ErrNoData) {
			http.Error(w, "no data", http.StatusNotFound)
			return
		}
		slog.ErrorContext(r.Context(), "Trend chart render error", "error", err)
	}
}
