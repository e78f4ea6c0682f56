package controller

import (
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"frame-storefront/models"
	"frame-storefront/repository"
	"frame-storefront/service"
)

// maxImageUploadSize caps a single multipart image upload
const maxImageUploadSize = 10 << 20

// SubFrameTypeController handles HTTP requests for sub-frame types
type SubFrameTypeController struct {
	repository repository.SubFrameTypeRepositoryInterface
	images     service.FrameImageServiceInterface
}

// NewSubFrameTypeController creates a new SubFrameTypeController
func NewSubFrameTypeController(repo repository.SubFrameTypeRepositoryInterface, images service.FrameImageServiceInterface) *SubFrameTypeController {
	return &SubFrameTypeController{repository: repo, images: images}
}

// Create handles POST /admin/sub-frame-types
// Responds 404 when the owning frame type does not exist.
func (c *SubFrameTypeController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateSubFrameType: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateSubFrameTypeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Price.IsNegative() {
		respondError(w, http.StatusBadRequest, "price cannot be negative")
		return
	}

	sft, err := c.repository.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, "CreateSubFrameType", "creating sub-frame type", err)
		return
	}
	respondJSON(w, http.StatusCreated, sft)
}

// List handles GET /sub-frame-types?frameType={id}
func (c *SubFrameTypeController) List(w http.ResponseWriter, r *http.Request) {
	var frameTypeID *string
	if v := r.URL.Query().Get("frameType"); v != "" {
		frameTypeID = &v
	}

	items, err := c.repository.List(r.Context(), frameTypeID)
	if err != nil {
		respondServiceError(w, "ListSubFrameTypes", "listing sub-frame types", err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Get handles GET /sub-frame-types/{id}
func (c *SubFrameTypeController) Get(w http.ResponseWriter, r *http.Request) {
	sft, err := c.repository.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, "GetSubFrameType", "loading sub-frame type", err)
		return
	}
	respondJSON(w, http.StatusOK, sft)
}

// Update handles PATCH /admin/sub-frame-types/{id}
func (c *SubFrameTypeController) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSubFrameTypeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Price != nil && req.Price.IsNegative() {
		respondError(w, http.StatusBadRequest, "price cannot be negative")
		return
	}

	sft, err := c.repository.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, "UpdateSubFrameType", "updating sub-frame type", err)
		return
	}
	respondJSON(w, http.StatusOK, sft)
}

// Delete handles DELETE /admin/sub-frame-types/{id}
func (c *SubFrameTypeController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := c.repository.Delete(r.Context(), id); err != nil {
		respondServiceError(w, "DeleteSubFrameType", "deleting sub-frame type", err)
		return
	}
	log.Printf("🗑️  DeleteSubFrameType: sub-frame type id=%s deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// AttachImage handles POST /admin/sub-frame-types/{id}/images
// Expects a multipart form with the file in the "image" field.
func (c *SubFrameTypeController) AttachImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	log.Printf("📥 AttachImage: Received %s request for sub-frame type id=%s", r.Method, id)

	data, ok := readMultipartFile(w, r, "image", maxImageUploadSize)
	if !ok {
		return
	}

	sft, err := c.images.AttachImage(r.Context(), id, data)
	if err != nil {
		respondServiceError(w, "AttachImage", "attaching image", err)
		return
	}
	respondJSON(w, http.StatusOK, sft)
}

// readMultipartFile reads one file field of a multipart form or writes 400
func readMultipartFile(w http.ResponseWriter, r *http.Request, field string, limit int64) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, limit+(1<<20))
	if err := r.ParseMultipartForm(limit); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return nil, false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing form file "+field)
		return nil, false
	}
	defer file.Close()

	if header.Size > limit {
		respondError(w, http.StatusRequestEntityTooLarge, "file is too large")
		return nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read uploaded file")
		return nil, false
	}
	return data, true
}
