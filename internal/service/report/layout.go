package report

// Page geometry of the paginated report, in PDF points measured from the
// bottom edge of a Letter page. The pitch and the page boundary are fixed and
// never derived from the content.
const (
	pageHeight     = 792.0
	leftMargin     = 100.0
	titleY         = 750.0
	generatedY     = 730.0
	separatorY     = 725.0
	separatorRight = 500.0
	firstRecordY   = 700.0
	topRecordY     = 750.0
	lineHeight     = 20.0
	bottomMargin   = 50.0
	fontSize       = 12.0
)

// PlacedLine is one record line and its baseline height on a page.
type PlacedLine struct {
	Y    float64
	Text string
}

// Page holds the record lines of one page. The header lines only appear on the first page.
type Page struct {
	Lines []PlacedLine
}

// Paginate places lines top to bottom at a fixed pitch. When the cursor drops
// below the bottom margin the next line starts a new page at the top; a page
// is only opened when a line actually lands on it.
func Paginate(lines []string) []Page {
	pages := []Page{{}}
	y := firstRecordY
	pending := false

	for _, text := range lines {
		if pending {
			pages = append(pages, Page{})
			pending = false
		}

		current := &pages[len(pages)-1]
		current.Lines = append(current.Lines, PlacedLine{Y: y, Text: text})

		y -= lineHeight
		if y < bottomMargin {
			pending = true
			y = topRecordY
		}
	}

	return pages
}
