package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"fintrack/internal/csvio"
)

// maxImportBytes caps the size of an uploaded CSV file.
const maxImportBytes = 10 << 20 // 10 MiB

// handleImport accepts a multipart CSV upload and renders an import
// summary partial. Bad rows are skipped, never fatal.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if errResp := RequirePOST(r); errResp != nil {
		errResp.Write(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		BadRequestError("Invalid upload, expected a multipart CSV file").Write(w)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		BadRequestError("Missing file field").Write(w)
		return
	}
	defer file.Close()

	result, err := s.importer.Import(r.Context(), file)
	if err != nil {
		slog.WarnContext(r.Context(), "CSV import rejected",
			"error", err,
			"filename", header.Filename)
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	slog.InfoContext(r.Context(), "CSV import completed",
		"filename", header.Filename,
		"imported", result.Imported,
		"skipped", result.Skipped)

	data := struct {
		Filename string
		Imported int
		Skipped  int
		Errors   []csvio.RowError
	}{
		Filename: header.Filename,
		Imported: result.Imported,
		Skipped:  result.Skipped,
		Errors:   truncateErrors(result.Errors, 10),
	}

	builder := NewHTMXResponse().
		TriggerImportFinished(result.Imported, result.Skipped)
	if result.Imported > 0 {
		builder.TriggerSuccessNotification(fmt.Sprintf("Imported %d transactions", result.Imported))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	builder.Write(w)
	if err := s.templates.ExecuteTemplate(w, "import_result.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "import_result.html")
	}
}

func truncateErrors(errs []csvio.RowError, limit int) []csvio.RowError {
	if len(errs) <= limit {
		return errs
	}
	return errs[:limit]
}

// handleExport streams the filtered transaction set as CSV or JSON.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if errResp := RequireGET(r); errResp != nil {
		errResp.Write(w)
		return
	}

	filter := parseFilter(r)
	txs, err := s.store.List(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "Export list error", "error", err)
		http.Error(w, "failed loading transactions", http.StatusInternalServerError)
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.json"`)
		err = csvio.WriteJSON(w, txs)
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
		err = csvio.WriteCSV(w, txs)
	default:
		http.Error(w, "unsupported format: "+format, http.StatusBadRequest)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Export write error", "error", err, "format", format)
	}
}
