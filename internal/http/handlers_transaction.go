package http

import (
	"html/template"
	"log/slog"
	"net/http"
)

// handleCreateTransaction persists a single form submission. The category
// is optional: blank submissions go through the keyword classifier.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if errResp := RequirePOST(r); errResp != nil {
		errResp.Write(w)
		return
	}

	tx, errResp := parseTransactionForm(r, s.maxReceiptBytes)
	if errResp != nil {
		errResp.Write(w)
		return
	}

	id, err := s.svc.Create(r.Context(), tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction append error",
			"error", err,
			"tx_description", tx.Description,
			"amount_cents", tx.Amount.Cents)
		InternalServerError("Failed to save transaction").Write(w)
		return
	}

	slog.InfoContext(r.Context(), "Transaction created",
		"tx_id", id,
		"tx_description", tx.Description,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category,
		"tx_type", string(tx.Type))

	NewHTMXResponse().
		TriggerTransactionCreated(id).
		TriggerFormReset().
		TriggerSuccessNotification("Transaction recorded").
		BodyHTML(`<div class="success">Recorded: ` +
			template.HTMLEscapeString(tx.Description) +
			` ` + formatDollars(tx.Amount.Cents) +
			` (` + template.HTMLEscapeString(tx.Category) + `)</div>`).
		Write(w)
}

// handleTransactionList renders the filtered transaction table partial.
func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	if errResp := RequireGET(r); errResp != nil {
		errResp.Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	filter := parseFilter(r)
	txs, err := s.store.List(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list error", "error", err)
		InternalServerError("Failed loading transactions").Write(w)
		return
	}

	data := struct {
		Rows       []transactionRow
		Categories []string
		Filter     struct {
			From, To, Category, Type string
		}
	}{
		Categories: s.classifier.Categories(),
	}
	data.Filter.From = r.URL.Query().Get("from")
	data.Filter.To = r.URL.Query().Get("to")
	data.Filter.Category = r.URL.Query().Get("category")
	data.Filter.Type = r.URL.Query().Get("type")

	for _, tx := range txs {
		data.Rows = append(data.Rows, toRow(tx))
	}

	if err := s.templates.ExecuteTemplate(w, "transactions.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "transactions.html")
		_, _ = w.Write([]byte(`<section id="transactions"><div class="placeholder">Failed rendering transactions</div></section>`))
	}
}
