package controller

import (
	"log"
	"net/http"

	"frame-storefront/service"
)

// ReportController serves admin reports
type ReportController struct {
	reports service.ReportServiceInterface
}

// NewReportController creates a new ReportController
func NewReportController(reports service.ReportServiceInterface) *ReportController {
	return &ReportController{reports: reports}
}

// FrameCatalog handles GET /admin/reports/frame-catalog?format=json|html|pdf
func (c *ReportController) FrameCatalog(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	log.Printf("📥 FrameCatalog: Received %s request, format=%s", r.Method, format)

	switch format {
	case "json":
		entries, err := c.reports.FrameCatalog(r.Context())
		if err != nil {
			respondServiceError(w, "FrameCatalog", "building report", err)
			return
		}
		respondJSON(w, http.StatusOK, entries)

	case "html":
		html, err := c.reports.RenderHTML(r.Context())
		if err != nil {
			respondServiceError(w, "FrameCatalog", "rendering report", err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(html))

	case "pdf":
		pdf, err := c.reports.GeneratePDF(r.Context())
		if err != nil {
			respondServiceError(w, "FrameCatalog", "generating PDF", err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="frame-catalog.pdf"`)
		w.WriteHeader(http.StatusOK)
		w.Write(pdf)

	default:
		respondError(w, http.StatusBadRequest, "format must be one of json, html, pdf")
	}
}
