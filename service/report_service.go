package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"frame-storefront/models"
	"frame-storefront/repository"
	"frame-storefront/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var reportTemplate = template.Must(
	template.New("frame_catalog.html").
		Funcs(template.FuncMap{"money": utils.FormatMoney}).
		ParseFS(templateFS, "templates/frame_catalog.html"),
)

// ReportService builds the admin frame catalog report
type ReportService struct {
	catalog    repository.CatalogRepositoryInterface
	chromePath string
	now        func() time.Time
}

// NewReportService creates a new ReportService. chromePath may be empty.
func NewReportService(catalog repository.CatalogRepositoryInterface, chromePath string) *ReportService {
	return &ReportService{catalog: catalog, chromePath: chromePath, now: time.Now}
}

// detectChromePath returns the configured Chrome/Chromium executable if it exists,
// then falls back to common installation paths
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FrameCatalog returns every frame type with its sizes, sorted by name
func (s *ReportService) FrameCatalog(ctx context.Context) ([]models.FrameCatalogEntry, error) {
	idx, err := s.catalog.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load frame catalog: %w", err)
	}

	entries := make([]models.FrameCatalogEntry, 0, len(idx))
	for _, ft := range idx {
		entry := models.FrameCatalogEntry{
			ID:    ft.ID,
			Name:  ft.Name,
			Price: ft.Price,
			Sizes: make([]models.FrameCatalogSize, 0, len(ft.Sizes)),
		}
		for _, size := range ft.Sizes {
			entry.Sizes = append(entry.Sizes, models.FrameCatalogSize{ID: size.ID, Name: size.Name, Price: size.Price})
		}
		sort.Slice(entry.Sizes, func(i, j int) bool {
			return strings.ToLower(entry.Sizes[i].Name) < strings.ToLower(entry.Sizes[j].Name)
		})
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	log.Printf("📐 FrameCatalog: %d frame types", len(entries))
	return entries, nil
}

// RenderHTML renders the frame catalog report as a standalone HTML page
func (s *ReportService) RenderHTML(ctx context.Context) (string, error) {
	entries, err := s.FrameCatalog(ctx)
	if err != nil {
		return "", err
	}

	data := struct {
		GeneratedAt time.Time
		Entries     []models.FrameCatalogEntry
	}{
		GeneratedAt: s.now(),
		Entries:     entries,
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// GeneratePDF renders the report in headless Chrome and prints it to PDF
func (s *ReportService) GeneratePDF(ctx context.Context) ([]byte, error) {
	html, err := s.RenderHTML(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 in inches
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✅ GeneratePDF: frame catalog rendered (%d bytes)", len(pdfBuf))
	return pdfBuf, nil
}
