// internal/handler/enrollment.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"

	"github.com/learnfield/campus/internal/model"
	"github.com/learnfield/campus/internal/query"
	"github.com/learnfield/campus/internal/service"
)

type EnrollmentHandler struct {
	service *service.EnrollmentService
	reader  Snapshotter
}

func NewEnrollmentHandler(svc *service.EnrollmentService, reader Snapshotter) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc, reader: reader}
}

func (h *EnrollmentHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.reader.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Listing enrollments", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch enrollments")
		return
	}

	q := r.URL.Query()
	enrollments := query.Enrollments(snap, query.EnrollmentFilter{
		Search:    q.Get("search"),
		CourseID:  q.Get("courseId"),
		StudentID: q.Get("studentId"),
		Status:    model.EnrollmentStatus(q.Get("status")),
	})
	respondWithJSON(w, http.StatusOK, enrollments)
}

func (h *EnrollmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateEnrollmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	enrollment, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, enrollment)
}

func (h *EnrollmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	enrollment, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateEnrollmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	enrollment, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
