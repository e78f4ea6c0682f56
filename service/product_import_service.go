package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"frame-storefront/models"
)

// Import column headers
const (
	colName          = "name"
	colDescription   = "description"
	colPrice         = "price"
	colCategory      = "category"
	colImageURL      = "image_url"
	colFrameTypes    = "frame_types"
	colSubFrameTypes = "sub_frame_types"
)

// NameLookup maps entity names to ids, keyed by lower-cased name
type NameLookup interface {
	IDsByName(ctx context.Context, names []string) (map[string]string, error)
}

// ProductCreator creates a product with derived sizes
type ProductCreator interface {
	Create(ctx context.Context, req *models.ProductRequest) (*models.Product, error)
}

// ProductImportService creates products from the first sheet of an .xlsx workbook.
// Frame type columns hold comma-separated names.
type ProductImportService struct {
	products      ProductCreator
	frameTypes    NameLookup
	subFrameTypes NameLookup
}

// NewProductImportService creates a new ProductImportService
func NewProductImportService(products ProductCreator, frameTypes, subFrameTypes NameLookup) *ProductImportService {
	return &ProductImportService{products: products, frameTypes: frameTypes, subFrameTypes: subFrameTypes}
}

type importRow struct {
	number int
	cells  []string
}

// Import reads the workbook and creates one product per non-empty row.
// Rows that fail are reported in the result and do not stop the import.
func (s *ProductImportService) Import(ctx context.Context, r io.Reader) (*models.ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	columns := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{colName, colPrice, colFrameTypes} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	cell := func(row importRow, col string) string {
		i, ok := columns[col]
		if !ok || i >= len(row.cells) {
			return ""
		}
		return strings.TrimSpace(row.cells[i])
	}

	var data []importRow
	var frameNames, subFrameNames []string
	for i, cells := range rows[1:] {
		row := importRow{number: i + 2, cells: cells}
		if isBlankRow(cells) {
			continue
		}
		data = append(data, row)
		frameNames = append(frameNames, splitNames(cell(row, colFrameTypes))...)
		subFrameNames = append(subFrameNames, splitNames(cell(row, colSubFrameTypes))...)
	}

	frameIDs, err := s.frameTypes.IDsByName(ctx, frameNames)
	if err != nil {
		return nil, err
	}
	subFrameIDs, err := s.subFrameTypes.IDsByName(ctx, subFrameNames)
	if err != nil {
		return nil, err
	}

	result := &models.ImportResult{
		Total:    len(data),
		Products: []models.Product{},
		Errors:   []models.ImportRowError{},
	}
	fail := func(row importRow, format string, args ...any) {
		result.Failed++
		result.Errors = append(result.Errors, models.ImportRowError{Row: row.number, Error: fmt.Sprintf(format, args...)})
	}

	for _, row := range data {
		name := cell(row, colName)
		if name == "" {
			fail(row, "name is required")
			continue
		}

		price, err := decimal.NewFromString(cell(row, colPrice))
		if err != nil || price.IsNegative() {
			fail(row, "invalid price %q", cell(row, colPrice))
			continue
		}

		frameTypeIDs, missing := lookupNames(splitNames(cell(row, colFrameTypes)), frameIDs)
		if len(missing) > 0 {
			fail(row, "unknown frame types: %s", strings.Join(missing, ", "))
			continue
		}
		if len(frameTypeIDs) == 0 {
			fail(row, "at least one frame type is required")
			continue
		}
		subFrameTypeIDs, missing := lookupNames(splitNames(cell(row, colSubFrameTypes)), subFrameIDs)
		if len(missing) > 0 {
			fail(row, "unknown sub-frame types: %s", strings.Join(missing, ", "))
			continue
		}

		product, err := s.products.Create(ctx, &models.ProductRequest{
			Name:            name,
			Description:     cell(row, colDescription),
			Price:           price,
			Category:        cell(row, colCategory),
			ImageURL:        cell(row, colImageURL),
			FrameTypeIDs:    frameTypeIDs,
			SubFrameTypeIDs: subFrameTypeIDs,
		})
		if err != nil {
			fail(row, "%v", err)
			continue
		}
		result.Imported++
		result.Products = append(result.Products, *product)
	}

	log.Printf("📥 Import: %d rows, %d imported, %d failed", result.Total, result.Imported, result.Failed)
	return result, nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func splitNames(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// lookupNames returns the ids for names and the names that had no match
func lookupNames(names []string, ids map[string]string) ([]string, []string) {
	found := []string{}
	var missing []string
	for _, n := range names {
		id, ok := ids[strings.ToLower(n)]
		if !ok {
			missing = append(missing, n)
			continue
		}
		found = append(found, id)
	}
	return found, missing
}
