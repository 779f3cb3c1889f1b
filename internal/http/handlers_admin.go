package http

import (
	"fmt"
	"log/slog"
	"net/http"
)

// handleReset wipes every record and reloads the sample dataset. This is
// the only delete path in the application.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if errResp := RequirePOST(r); errResp != nil {
		errResp.Write(w)
		return
	}

	if err := s.store.Reset(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Reset failed", "error", err)
		InternalServerError("Failed to reset data").Write(w)
		return
	}

	seeded := 0
	if s.sampleLoader != nil {
		n, err := s.svc.Seed(r.Context(), s.sampleLoader())
		if err != nil {
			slog.ErrorContext(r.Context(), "Sample reload failed", "error", err, "seeded", n)
			InternalServerError("Reset succeeded but sample reload failed").Write(w)
			return
		}
		seeded = n
	}

	slog.InfoContext(r.Context(), "Data reset completed", "sample_records", seeded)

	NewHTMXResponse().
		TriggerDataReset().
		TriggerSuccessNotification("All data reset").
		BodyHTML(fmt.Sprintf(`<div class="success">Data reset, %d sample records loaded</div>`, seeded)).
		Write(w)
}
