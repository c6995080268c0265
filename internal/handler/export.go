// internal/handler/export.go
package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"

	"github.com/learnfield/campus/internal/export"
)

type ExportHandler struct {
	reader Snapshotter
}

func NewExportHandler(reader Snapshotter) *ExportHandler {
	return &ExportHandler{reader: reader}
}

// Download streams one entity collection as a CSV or XLSX attachment. The
// record field names and order are stable per entity so downstream tooling
// can rely on them.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	encoder := export.EncoderFor(format)
	if encoder == nil {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported export format %q", format))
		return
	}

	snap, err := h.reader.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Loading export snapshot", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Failed to load data")
		return
	}

	var table export.Table
	entity := chi.URLParam(r, "entity")
	switch entity {
	case "organizations":
		table = export.Organizations(snap, snap.Organizations)
	case "users":
		table = export.Users(snap, snap.Users)
	case "courses":
		table = export.Courses(snap, snap.Courses)
	case "enrollments":
		table = export.Enrollments(snap, snap.Enrollments)
	default:
		respondWithError(w, http.StatusNotFound, fmt.Sprintf("Unknown export entity %q", entity))
		return
	}

	w.Header().Set("Content-Type", encoder.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", entity, encoder.Extension()))
	if err := encoder.Encode(w, table); err != nil {
		slog.ErrorContext(r.Context(), "Encoding export", "error", err, "entity", entity, "format", format)
	}
}
