package report

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"storecounter/internal/apperror"
	"storecounter/internal/logger"
	"storecounter/internal/model"
	"storecounter/internal/repository"
	"storecounter/internal/service/metrics"
)

// Encoding selects the report format.
type Encoding int

const (
	// Tabular is a spreadsheet with a Timestamp/Filename/Count header.
	Tabular Encoding = iota + 1
	// Paginated is a text document laid out on fixed-pitch pages.
	Paginated
)

// TimestampLayout formats record and generation timestamps in both encodings.
const TimestampLayout = model.TimestampLayout

// ParseEncoding maps the public report type names ("excel", "pdf") to an Encoding.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "excel":
		return Tabular, nil
	case "pdf":
		return Paginated, nil
	default:
		return 0, fmt.Errorf("%w: %q", apperror.ErrUnsupportedReportType, name)
	}
}

// String returns the public name of the encoding.
func (e Encoding) String() string {
	switch e {
	case Tabular:
		return "excel"
	case Paginated:
		return "pdf"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// Extension returns the file extension written for the encoding.
func (e Encoding) Extension() string {
	switch e {
	case Tabular:
		return "xlsx"
	case Paginated:
		return "pdf"
	default:
		return ""
	}
}

// ContentType returns the MIME type of the encoding.
func (e Encoding) ContentType() string {
	switch e {
	case Tabular:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case Paginated:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Reserver hands out a fresh report path for an extension.
type Reserver interface {
	ReserveReport(ext string) (string, error)
}

// Generator renders history records into report files.
type Generator struct {
	files    Reserver
	fontPath string
	logger   *logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewGenerator creates a report generator. fontPath may be empty to use the
// embedded Go font; metrics may be nil.
func NewGenerator(files Reserver, fontPath string, logger *logger.Logger, metrics *metrics.Metrics) *Generator {
	return &Generator{
		files:    files,
		fontPath: fontPath,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Generate writes records, in the given order, to a new report file and returns its path.
func (g *Generator) Generate(ctx context.Context, encoding Encoding, records []model.HistoryRecord) (string, error) {
	path, err := g.generate(ctx, encoding, records)
	g.metrics.RecordReport(encoding.String(), apperror.Code(err))
	if err != nil {
		g.logger.Error("Report generation (%s) failed: %v", encoding, err)
		return "", err
	}

	g.logger.Info("Generated %s report with %d records: %s", encoding, len(records), path)
	return path, nil
}

// GenerateFromStore reads every record from history and renders them.
func (g *Generator) GenerateFromStore(ctx context.Context, encoding Encoding, history repository.HistoryRepository) (string, error) {
	if encoding.Extension() == "" {
		return g.Generate(ctx, encoding, nil)
	}

	records, err := history.ListAll(ctx)
	if err != nil {
		g.metrics.RecordReport(encoding.String(), apperror.Code(err))
		g.logger.Error("Report generation (%s) failed to read history: %v", encoding, err)
		return "", err
	}

	return g.Generate(ctx, encoding, records)
}

func (g *Generator) generate(ctx context.Context, encoding Encoding, records []model.HistoryRecord) (string, error) {
	ext := encoding.Extension()
	if ext == "" {
		return "", fmt.Errorf("%w: %s", apperror.ErrUnsupportedReportType, encoding)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := g.files.ReserveReport(ext)
	if err != nil {
		return "", fmt.Errorf("failed to reserve report path: %w", err)
	}

	switch encoding {
	case Tabular:
		err = writeExcel(path, records)
	case Paginated:
		_, err = writePDF(path, records, g.now(), g.fontPath)
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}

// recordLine formats one record for the paginated report.
func recordLine(rec model.HistoryRecord) string {
	return fmt.Sprintf("%s | %s | Посетителей: %d", rec.Timestamp.Format(TimestampLayout), rec.SourceFilename, rec.Count)
}
