package controller

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"frame-storefront/models"
	"frame-storefront/repository"
)

// FrameTypeController handles HTTP requests for frame types
type FrameTypeController struct {
	repository repository.FrameTypeRepositoryInterface
}

// NewFrameTypeController creates a new FrameTypeController
func NewFrameTypeController(repo repository.FrameTypeRepositoryInterface) *FrameTypeController {
	return &FrameTypeController{repository: repo}
}

// Create handles POST /admin/frame-types
func (c *FrameTypeController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateFrameType: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateFrameTypeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Price.IsNegative() {
		respondError(w, http.StatusBadRequest, "price cannot be negative")
		return
	}

	ft, err := c.repository.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, "CreateFrameType", "creating frame type", err)
		return
	}
	respondJSON(w, http.StatusCreated, ft)
}

// List handles GET /frame-types
func (c *FrameTypeController) List(w http.ResponseWriter, r *http.Request) {
	types, err := c.repository.List(r.Context())
	if err != nil {
		respondServiceError(w, "ListFrameTypes", "listing frame types", err)
		return
	}
	respondJSON(w, http.StatusOK, types)
}

// Get handles GET /frame-types/{id}
func (c *FrameTypeController) Get(w http.ResponseWriter, r *http.Request) {
	ft, err := c.repository.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, "GetFrameType", "loading frame type", err)
		return
	}
	respondJSON(w, http.StatusOK, ft)
}

// Update handles PATCH /admin/frame-types/{id}
func (c *FrameTypeController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	log.Printf("📥 UpdateFrameType: Received %s request for id=%s", r.Method, id)

	var req models.UpdateFrameTypeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Price != nil && req.Price.IsNegative() {
		respondError(w, http.StatusBadRequest, "price cannot be negative")
		return
	}

	ft, err := c.repository.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, "UpdateFrameType", "updating frame type", err)
		return
	}
	respondJSON(w, http.StatusOK, ft)
}

// Delete handles DELETE /admin/frame-types/{id}
// Sizes and sub-frame types of the frame type are removed with it.
func (c *FrameTypeController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := c.repository.Delete(r.Context(), id); err != nil {
		respondServiceError(w, "DeleteFrameType", "deleting frame type", err)
		return
	}
	log.Printf("🗑️  DeleteFrameType: frame type id=%s deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
