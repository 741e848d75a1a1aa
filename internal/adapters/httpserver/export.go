package httpserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/tomasrv/modastore/internal/domain"
)

// handleExportXLSX streams the whole catalog as a spreadsheet for the
// back office.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}

	products, _, err := s.catalog.List(r.Context(), domain.ProductFilter{PageSize: 10000})
	if err != nil {
		writeJSON(w, 500, map[string]any{"error": "list"})
		return
	}

	f := excelize.NewFile()
	sheet := "Products"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		writeJSON(w, 500, map[string]any{"error": "sheet"})
		return
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Name", "Category", "Price", "DiscountPrice", "InStock", "Sizes", "Colors", "Featured", "BestSeller"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, p := range products {
		sizes := make([]string, 0, len(p.Sizes))
		for _, so := range p.Sizes {
			sizes = append(sizes, so.Size)
		}
		colors := make([]string, 0, len(p.Color))
		for _, co := range p.Color {
			colors = append(colors, co.Color)
		}
		values := []any{p.ID, p.Name, p.Category, p.Price, p.DiscountPrice, p.InStock,
			strings.Join(sizes, ","), strings.Join(colors, ","), p.Featured, p.BestSeller}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=catalog-%s.xlsx", time.Now().Format("2006-01-02")))
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("xlsx export")
	}
}
