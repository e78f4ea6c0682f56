package controller

import (
	"bytes"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"frame-storefront/models"
	"frame-storefront/service"
)

// maxImportSize caps an uploaded product workbook
const maxImportSize = 20 << 20

// ProductController handles HTTP requests for products
type ProductController struct {
	products service.ProductServiceInterface
	importer service.ProductImportServiceInterface
}

// NewProductController creates a new ProductController
func NewProductController(products service.ProductServiceInterface, importer service.ProductImportServiceInterface) *ProductController {
	return &ProductController{products: products, importer: importer}
}

// List handles GET /products?category={category}
// Only active products are listed on the storefront.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	filters := models.ProductFilterParams{ActiveOnly: true}
	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		filters.Category = &category
	}

	products, err := c.products.List(r.Context(), filters)
	if err != nil {
		respondServiceError(w, "ListProducts", "listing products", err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// Get handles GET /products/{id}
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	p, err := c.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, "GetProduct", "loading product", err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// Sizes handles GET /products/{id}/sizes
func (c *ProductController) Sizes(w http.ResponseWriter, r *http.Request) {
	sizes, err := c.products.Sizes(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, "ProductSizes", "loading product sizes", err)
		return
	}
	respondJSON(w, http.StatusOK, sizes)
}

// Create handles POST /admin/products
// Any sizes sent by the client are ignored; they are derived from the frame types.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateProduct: Received %s request to %s", r.Method, r.URL.Path)

	var req models.ProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Price.IsNegative() {
		respondError(w, http.StatusBadRequest, "price cannot be negative")
		return
	}

	p, err := c.products.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, "CreateProduct", "creating product", err)
		return
	}
	log.Printf("✅ CreateProduct: product id=%s created with %d sizes", p.ID, len(p.SizeIDs))
	respondJSON(w, http.StatusCreated, p)
}

// Update handles PUT /admin/products/{id}
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var req models.ProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Price.IsNegative() {
		respondError(w, http.StatusBadRequest, "price cannot be negative")
		return
	}

	p, err := c.products.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, "UpdateProduct", "updating product", err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /admin/products/{id}
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := c.products.Delete(r.Context(), id); err != nil {
		respondServiceError(w, "DeleteProduct", "deleting product", err)
		return
	}
	log.Printf("🗑️  DeleteProduct: product id=%s deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// Import handles POST /admin/products/import
// Expects a multipart form with an .xlsx workbook in the "file" field.
func (c *ProductController) Import(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ImportProducts: Received %s request to %s", r.Method, r.URL.Path)

	data, ok := readMultipartFile(w, r, "file", maxImportSize)
	if !ok {
		return
	}

	result, err := c.importer.Import(r.Context(), bytes.NewReader(data))
	if err != nil {
		log.Printf("❌ ImportProducts: %v", err)
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}
