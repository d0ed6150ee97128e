package iconset

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// proofImage is a written PNG to place on the contact sheet.
type proofImage struct {
	Entry
	Path string
}

// proof sheet geometry, in millimeters
const (
	pageMargin   = 10.0
	pageWidth    = 210.0
	largestSide  = 60.0 // a 512px icon is drawn this wide
	smallestSide = 6.0
	cellGap      = 6.0
	labelHeight  = 5.0
)

// writeProof lays out every PNG at a size proportional to its pixel size,
// with its file name underneath, on A4 pages.
func writeProof(path string, images []proofImage) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Video Downloader Pro icon set", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Video Downloader Pro - icon set", "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 8)

	_, pageHeight := pdf.GetPageSize()
	x, y := pageMargin, pdf.GetY()
	rowHeight := 0.0

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	for _, img := range images {
		side := float64(img.Size) / 512 * largestSide
		if side < smallestSide {
			side = smallestSide
		}
		label := fmt.Sprintf("%s (%dpx)", img.Name, img.Size)
		cellWidth := side
		if labelWidth := pdf.GetStringWidth(label); labelWidth > cellWidth {
			cellWidth = labelWidth
		}

		if x+cellWidth > pageWidth-pageMargin {
			x = pageMargin
			y += rowHeight + cellGap
			rowHeight = 0
		}
		if y+side+labelHeight > pageHeight-pageMargin {
			pdf.AddPage()
			x, y, rowHeight = pageMargin, pageMargin, 0
		}

		pdf.ImageOptions(img.Path, x, y, side, side, false, opts, 0, "")
		pdf.SetXY(x, y+side+1)
		pdf.CellFormat(cellWidth, labelHeight-1, label, "", 0, "L", false, 0, "")

		if h := side + labelHeight; h > rowHeight {
			rowHeight = h
		}
		x += cellWidth + cellGap
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
