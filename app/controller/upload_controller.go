package controller

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"frame-storefront/models"
	"frame-storefront/service"
)

// UploadController handles chunked image uploads
type UploadController struct {
	uploads service.UploadServiceInterface
}

// NewUploadController creates a new UploadController
func NewUploadController(uploads service.UploadServiceInterface) *UploadController {
	return &UploadController{uploads: uploads}
}

// Start handles POST /uploads
func (c *UploadController) Start(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.StartUploadRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := c.uploads.Start(r.Context(), claims.UserID, &req)
	if err != nil {
		respondServiceError(w, "StartUpload", "starting upload", err)
		return
	}
	respondJSON(w, http.StatusCreated, session)
}

// PutChunk handles PUT /uploads/{id}/chunks/{index}
// The request body is the raw chunk.
func (c *UploadController) PutChunk(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "chunk index must be a number")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, service.MaxChunkSize+1))
	if err != nil {
		log.Printf("❌ PutChunk: Error reading body: %v", err)
		respondError(w, http.StatusBadRequest, "failed to read chunk")
		return
	}

	session, err := c.uploads.PutChunk(r.Context(), claims.UserID, chi.URLParam(r, "id"), index, data)
	if err != nil {
		respondServiceError(w, "PutChunk", "storing chunk", err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// Complete handles POST /uploads/{id}/complete
func (c *UploadController) Complete(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	img, err := c.uploads.Complete(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, "CompleteUpload", "completing upload", err)
		return
	}
	respondJSON(w, http.StatusCreated, img)
}

// Abort handles DELETE /uploads/{id}
func (c *UploadController) Abort(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := c.uploads.Abort(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, "AbortUpload", "aborting upload", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListImages handles GET /uploads/images
func (c *UploadController) ListImages(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	images, err := c.uploads.ListImages(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, "ListImages", "listing images", err)
		return
	}
	respondJSON(w, http.StatusOK, images)
}
