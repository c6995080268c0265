// internal/handler/organization.go
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"

	"github.com/learnfield/campus/internal/model"
	"github.com/learnfield/campus/internal/query"
	"github.com/learnfield/campus/internal/service"
	"github.com/learnfield/campus/internal/store"
)

// Snapshotter is the read side handlers use for derived views.
type Snapshotter interface {
	Snapshot(ctx context.Context) (*store.Snapshot, error)
}

type OrganizationHandler struct {
	service *service.OrganizationService
	reader  Snapshotter
}

func NewOrganizationHandler(svc *service.OrganizationService, reader Snapshotter) *OrganizationHandler {
	return &OrganizationHandler{service: svc, reader: reader}
}

func (h *OrganizationHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.reader.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Listing organizations", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch organizations")
		return
	}

	q := r.URL.Query()
	orgs := query.Organizations(snap, query.OrganizationFilter{
		Search: q.Get("search"),
		Status: model.OrgStatus(q.Get("status")),
		SortBy: q.Get("sort"),
	})
	respondWithJSON(w, http.StatusOK, orgs)
}

func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	org, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, org)
}

func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	org, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
