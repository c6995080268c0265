// internal/handler/course.go
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

type CourseHandler struct {
	service *service.CourseService
	reader  Snapshotter
}

func NewCourseHandler(svc *service.CourseService, reader Snapshotter) *CourseHandler {
	return &CourseHandler{service: svc, reader: reader}
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.reader.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Listing courses", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch courses")
		return
	}

	q := r.URL.Query()
	courses := query.Courses(snap, query.CourseFilter{
		Search:         q.Get("search"),
		OrganizationID: q.Get("organizationId"),
		Status:         model.CourseStatus(q.Get("status")),
		SortBy:         q.Get("sort"),
	})
	respondWithJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateCourseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	course, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, course)
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	course, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateCourseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	course, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
