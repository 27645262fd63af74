// Package render draws card sets as printable PDFs.
//
// One Letter portrait page per card: an optional title and subtitle shared by
// every page, a per-card "Bingo Card #n" line, and a 4x4 grid of equal cells
// holding the wrapped track labels. The renderer is a pure consumer of the
// card set; page order is card order.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/wjsmc123/music-bingo-generator-spotify/internal/bingo"
)

// Options carries the text shared by every page of the document.
type Options struct {
	Title    string
	Subtitle string
}

// Page geometry in millimeters (Letter portrait is 215.9 x 279.4).
const (
	marginX    = 15.0
	gridTop    = 48.0
	gridBottom = 264.0
	cellPad    = 2.0
)

// WritePDF renders the card set to a PDF file at path.
//
// Parent directories are created as needed. Any drawing or I/O failure is
// returned as-is; there is no partial output to clean up beyond the target
// file itself.
func WritePDF(set bingo.CardSet, opts Options, path string) error {
	if len(set) == 0 {
		return fmt.Errorf("no cards to render")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, card := range set {
		pdf.AddPage()
		drawHeader(pdf, tr, opts, card.Number)
		drawGrid(pdf, tr, card)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render cards: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	return nil
}

// drawHeader renders the shared title block and the per-card number line.
func drawHeader(pdf *fpdf.Fpdf, tr func(string) string, opts Options, number int) {
	pageW, _ := pdf.GetPageSize()
	y := 18.0

	if opts.Title != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetXY(marginX, y)
		pdf.CellFormat(pageW-2*marginX, 8, tr(opts.Title), "", 0, "C", false, 0, "")
		y += 9
	}

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetXY(marginX, y)
	pdf.CellFormat(pageW-2*marginX, 7, fmt.Sprintf("Bingo Card #%d", number), "", 0, "C", false, 0, "")
	y += 8

	if opts.Subtitle != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.SetXY(marginX, y)
		pdf.CellFormat(pageW-2*marginX, 6, tr(opts.Subtitle), "", 0, "C", false, 0, "")
	}
}

// drawGrid renders the 4x4 cell grid with centered, wrapped labels.
func drawGrid(pdf *fpdf.Fpdf, tr func(string) string, card bingo.Card) {
	pageW, _ := pdf.GetPageSize()

	gridW := pageW - 2*marginX
	cellW := gridW / bingo.GridSize
	cellH := (gridBottom - gridTop) / bingo.GridSize

	pdf.SetLineWidth(0.4)
	pdf.SetFont("Helvetica", "", 9)

	labels := card.Labels()
	for row := 0; row < bingo.GridSize; row++ {
		for col := 0; col < bingo.GridSize; col++ {
			x := marginX + float64(col)*cellW
			y := gridTop + float64(row)*cellH
			pdf.Rect(x, y, cellW, cellH, "D")

			label := tr(labels[row*bingo.GridSize+col])
			drawCellText(pdf, label, x, y, cellW, cellH)
		}
	}
}

// drawCellText centers a wrapped label inside one cell. The label must
// already be translated to the core-font encoding.
func drawCellText(pdf *fpdf.Fpdf, label string, x, y, w, h float64) {
	const lineH = 4.5

	lines := wrapText(pdf, label, w-2*cellPad)
	if len(lines) == 0 {
		return
	}

	// Cap the line count to what fits the cell rather than overflowing into
	// the neighbor below.
	maxLines := int((h - 2*cellPad) / lineH)
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}

	textH := float64(len(lines)) * lineH
	startY := y + (h-textH)/2

	for i, line := range lines {
		pdf.SetXY(x+cellPad, startY+float64(i)*lineH)
		pdf.CellFormat(w-2*cellPad, lineH, line, "", 0, "C", false, 0, "")
	}
}

// wrapText breaks text into lines no wider than maxW using the current font.
// Widths are measured with GetStringWidth, which handles the single-byte
// core-font encoding the translator produces. Words wider than a full line
// are hard-broken.
func wrapText(pdf *fpdf.Fpdf, text string, maxW float64) []string {
	var lines []string
	line := ""

	for _, word := range strings.Fields(text) {
		for pdf.GetStringWidth(word) > maxW {
			cut := len(word) - 1
			for cut > 1 && pdf.GetStringWidth(word[:cut]) > maxW {
				cut--
			}
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			lines = append(lines, word[:cut])
			word = word[cut:]
		}

		switch {
		case line == "":
			line = word
		case pdf.GetStringWidth(line+" "+word) <= maxW:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}

	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
