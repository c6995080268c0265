// internal/handler/stats.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	chmw "github.com/go-chi/chi/v5/middleware"

	"github.com/learnfield/campus/internal/model"
	"github.com/learnfield/campus/internal/query"
)

// topN is the default length of the dashboard ranking lists.
const topN = 5

type StatsHandler struct {
	reader Snapshotter
}

func NewStatsHandler(reader Snapshotter) *StatsHandler {
	return &StatsHandler{reader: reader}
}

type DashboardResponse struct {
	Stats               query.Stats             `json:"stats"`
	RecentOrganizations []*model.Organization   `json:"recentOrganizations"`
	TopCourses          []query.CoursePopularity `json:"topCourses"`
}

func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.reader.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Loading dashboard", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	n := topN
	if raw := r.URL.Query().Get("top"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			n = parsed
		}
	}

	respondWithJSON(w, http.StatusOK, DashboardResponse{
		Stats:               query.Dashboard(snap),
		RecentOrganizations: query.RecentOrganizations(snap, n),
		TopCourses:          query.TopCourses(snap, n),
	})
}
