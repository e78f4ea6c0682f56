package controller

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"frame-storefront/models"
	"frame-storefront/repository"
)

// FrameSizeController handles HTTP requests for frame sizes
type FrameSizeController struct {
	repository repository.FrameSizeRepositoryInterface
}

// NewFrameSizeController creates a new FrameSizeController
func NewFrameSizeController(repo repository.FrameSizeRepositoryInterface) *FrameSizeController {
	return &FrameSizeController{repository: repo}
}

// Create handles POST /admin/frame-sizes
// Responds 409 when the frame type already has a size with the same name.
func (c *FrameSizeController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateFrameSize: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateFrameSizeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Price.IsNegative() {
		respondError(w, http.StatusBadRequest, "price cannot be negative")
		return
	}

	fs, err := c.repository.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, "CreateFrameSize", "creating frame size", err)
		return
	}
	respondJSON(w, http.StatusCreated, fs)
}

// List handles GET /frame-sizes?frameType={id}
func (c *FrameSizeController) List(w http.ResponseWriter, r *http.Request) {
	frameTypeID := r.URL.Query().Get("frameType")
	if frameTypeID == "" {
		respondError(w, http.StatusBadRequest, "frameType query parameter is required")
		return
	}

	sizes, err := c.repository.ListByFrameType(r.Context(), frameTypeID)
	if err != nil {
		respondServiceError(w, "ListFrameSizes", "listing frame sizes", err)
		return
	}
	respondJSON(w, http.StatusOK, sizes)
}

// Get handles GET /frame-sizes/{id}
func (c *FrameSizeController) Get(w http.ResponseWriter, r *http.Request) {
	fs, err := c.repository.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, "GetFrameSize", "loading frame size", err)
		return
	}
	respondJSON(w, http.StatusOK, fs)
}

// Update handles PATCH /admin/frame-sizes/{id}
func (c *FrameSizeController) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateFrameSizeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Price != nil && req.Price.IsNegative() {
		respondError(w, http.StatusBadRequest, "price cannot be negative")
		return
	}

	fs, err := c.repository.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, "UpdateFrameSize", "updating frame size", err)
		return
	}
	respondJSON(w, http.StatusOK, fs)
}

// Delete handles DELETE /admin/frame-sizes/{id}
func (c *FrameSizeController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := c.repository.Delete(r.Context(), id); err != nil {
		respondServiceError(w, "DeleteFrameSize", "deleting frame size", err)
		return
	}
	log.Printf("🗑️  DeleteFrameSize: frame size id=%s deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
