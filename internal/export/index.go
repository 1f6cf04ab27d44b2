package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/ProxySheet/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// CardEntry holds the data printed on, and encoded into, one index cell.
// Page, Row and Col are 1-based as printed; row 1 is the bottom row.
type CardEntry struct {
	File     string  `json:"file"`
	Page     int     `json:"page"`
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`
}

// Index sheet layout: 3 columns x 9 rows on A4 portrait.
const (
	indexMarginTop  = 13.5 // mm
	indexMarginLeft = 7.2  // mm
	indexCellWidth  = 63.5 // mm per cell
	indexCellHeight = 29.6 // mm per cell
	indexCols       = 3
	indexRows       = 9
	entriesPerPage  = indexCols * indexRows
	qrSize          = 24.0 // mm
	indexPadding    = 2.0  // mm
)

// CollectEntries converts placements to index entries in placement order.
func CollectEntries(placements []model.Placement) []CardEntry {
	entries := make([]CardEntry, 0, len(placements))
	for _, p := range placements {
		entries = append(entries, CardEntry{
			File:     p.Image.Name,
			Page:     p.Page + 1,
			Row:      p.Row + 1,
			Col:      p.Col + 1,
			WidthMM:  model.PtToMM(p.Width),
			HeightMM: model.PtToMM(p.Height),
		})
	}
	return entries
}

// ExportIndex writes a PDF index sheet listing where every card landed.
// Each cell shows the file name and slot, with a QR code of the entry as JSON.
func ExportIndex(w io.Writer, placements []model.Placement) error {
	entries := CollectEntries(placements)
	if len(entries) == 0 {
		return fmt.Errorf("no placements to index")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("ProxySheet index", true)

	for i, entry := range entries {
		if i%entriesPerPage == 0 {
			pdf.AddPage()
		}

		pos := i % entriesPerPage
		col := pos % indexCols
		row := pos / indexCols

		x := indexMarginLeft + float64(col)*indexCellWidth
		y := indexMarginTop + float64(row)*indexCellHeight

		if err := renderEntry(pdf, i, x, y, entry); err != nil {
			return fmt.Errorf("failed to render index entry for %q: %w", entry.File, err)
		}
	}

	return pdf.Output(w)
}

// renderEntry draws a single index cell at the given position.
func renderEntry(pdf *fpdf.Fpdf, i int, x, y float64, entry CardEntry) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, indexCellWidth, indexCellHeight, "D")

	qrData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal index entry: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", i)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + indexCellWidth - qrSize - indexPadding
	qrY := y + (indexCellHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + indexPadding
	textW := indexCellWidth - qrSize - 3*indexPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+indexPadding)

	name := filepath.Base(entry.File)
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 4.5, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+indexPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Page %d", entry.Page), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+indexPadding+9)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Row %d, Col %d", entry.Row, entry.Col), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+indexPadding+13)
	pdf.CellFormat(textW, 3, fmt.Sprintf("%.1f x %.1f mm", entry.WidthMM, entry.HeightMM), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return pdf.Error()
}
