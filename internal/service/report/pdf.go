package report

import (
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/goregular"

	"storecounter/internal/model"
)

const (
	fontFamily  = "ReportSans"
	reportTitle = "Отчет по подсчету посетителей"
)

// writePDF renders records onto Letter pages and returns the number of pages written.
// Layout coordinates are measured from the bottom edge and flipped for fpdf.
func writePDF(path string, records []model.HistoryRecord, generatedAt time.Time, fontPath string) (int, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	fontBytes := goregular.TTF
	if fontPath != "" {
		data, err := os.ReadFile(fontPath)
		if err != nil {
			return 0, fmt.Errorf("failed to read report font: %w", err)
		}
		fontBytes = data
	}
	pdf.AddUTF8FontFromBytes(fontFamily, "", fontBytes)
	pdf.SetFont(fontFamily, "", fontSize)

	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = recordLine(rec)
	}

	for i, page := range Paginate(lines) {
		pdf.AddPage()
		if i == 0 {
			pdf.Text(leftMargin, flip(titleY), reportTitle)
			pdf.Text(leftMargin, flip(generatedY), "Сгенерирован: "+generatedAt.Format(TimestampLayout))
			pdf.Line(leftMargin, flip(separatorY), separatorRight, flip(separatorY))
		}
		for _, line := range page.Lines {
			pdf.Text(leftMargin, flip(line.Y), line.Text)
		}
	}

	pages := pdf.PageCount()
	if err := pdf.OutputFileAndClose(path); err != nil {
		return 0, fmt.Errorf("failed to write pdf: %w", err)
	}
	return pages, nil
}

// flip converts a bottom-up y coordinate to fpdf's top-down one.
func flip(y float64) float64 {
	return pageHeight - y
}
