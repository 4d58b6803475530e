package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"storecounter/internal/config"
)

const (
	// UploadTimestampLayout prefixes stored uploads so that repeated names stay apart.
	UploadTimestampLayout = "20060102150405"
	// ReportTimestampLayout names generated reports.
	ReportTimestampLayout = "20060102150405"
	// maxReserveAttempts bounds the numeric suffix search for a free name.
	maxReserveAttempts = 1000
)

// FileStore owns the upload, result and report directories and hands out
// collision-free paths inside them.
type FileStore struct {
	uploadDir string
	resultDir string
	reportDir string
	now       func() time.Time
}

// NewFileStore creates a FileStore and ensures its directories exist.
func NewFileStore(config *config.Config) (*FileStore, error) {
	fs := &FileStore{
		uploadDir: config.UploadDirectory,
		resultDir: config.ResultDirectory,
		reportDir: config.ReportDirectory,
		now:       time.Now,
	}

	for _, dir := range []string{fs.uploadDir, fs.resultDir, fs.reportDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return fs, nil
}

// UploadDir returns the uploads directory.
func (fs *FileStore) UploadDir() string { return fs.uploadDir }

// ResultDir returns the annotated results directory.
func (fs *FileStore) ResultDir() string { return fs.resultDir }

// ReportDir returns the reports directory.
func (fs *FileStore) ReportDir() string { return fs.reportDir }

// SaveUpload stores an uploaded stream as <timestamp>_<name> in the uploads
// directory and returns the full path and the stored name.
func (fs *FileStore) SaveUpload(originalName string, r io.Reader) (string, string, error) {
	name := SanitizeFilename(originalName)
	if name == "" {
		return "", "", fmt.Errorf("invalid upload filename %q", originalName)
	}

	storedName := fmt.Sprintf("%s_%s", fs.now().Format(UploadTimestampLayout), name)
	path, file, err := createUnique(fs.uploadDir, storedName)
	if err != nil {
		return "", "", err
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		os.Remove(path)
		return "", "", fmt.Errorf("failed to write upload %s: %w", storedName, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("failed to close upload %s: %w", storedName, err)
	}

	return path, filepath.Base(path), nil
}

// ReserveFrame reserves frame_<stem>.jpg in the uploads directory.
func (fs *FileStore) ReserveFrame(videoFilename string) (string, error) {
	return reserve(fs.uploadDir, FrameName(videoFilename))
}

// ReserveResult reserves result_<filename> in the results directory.
func (fs *FileStore) ReserveResult(filename string) (string, error) {
	return reserve(fs.resultDir, ResultName(filename))
}

// ReserveReport reserves report_<timestamp>.<ext> in the reports directory.
func (fs *FileStore) ReserveReport(ext string) (string, error) {
	name := fmt.Sprintf("report_%s.%s", fs.now().Format(ReportTimestampLayout), strings.TrimPrefix(ext, "."))
	return reserve(fs.reportDir, name)
}

// ResultURL maps a file inside the results directory to its public URL.
func ResultURL(path string) string {
	return "/static/results/" + filepath.Base(path)
}

// FrameName derives the still-image name for a video: frame_<name without extension>.jpg.
func FrameName(videoFilename string) string {
	base := filepath.Base(videoFilename)
	return "frame_" + strings.TrimSuffix(base, filepath.Ext(base)) + ".jpg"
}

// ResultName derives the annotated-image name: result_<filename>.
func ResultName(filename string) string {
	return "result_" + filepath.Base(filename)
}

// SanitizeFilename strips directories and characters that are unsafe in a stored name.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == "/" || name == ".." {
		return ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r == 0, r == '/', r < 0x20:
			continue
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// reserve creates an empty file with a name derived from name that did not
// exist before and returns its path.
func reserve(dir, name string) (string, error) {
	path, file, err := createUnique(dir, name)
	if err != nil {
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close reserved file %s: %w", path, err)
	}
	return path, nil
}

// createUnique opens dir/name exclusively, falling back to name_1, name_2, ...
func createUnique(dir, name string) (string, *os.File, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; i < maxReserveAttempts; i++ {
		candidate := name
		if i > 0 {
			candidate = stem + "_" + strconv.Itoa(i) + ext
		}
		path := filepath.Join(dir, candidate)

		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			return path, file, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", nil, fmt.Errorf("failed to create %s: %w", path, err)
		}
	}

	return "", nil, fmt.Errorf("no free name for %s in %s", name, dir)
}
