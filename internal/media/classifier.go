package media

import (
	"path/filepath"
	"strings"

	"storecounter/internal/apperror"
	"storecounter/internal/model"
)

var (
	imageExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}
	videoExtensions = map[string]bool{".mp4": true, ".avi": true, ".mov": true}
)

// Classify selects the ingestion strategy for filename by its suffix, ignoring case.
func Classify(filename string) (model.Kind, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case imageExtensions[ext]:
		return model.KindImage, nil
	case videoExtensions[ext]:
		return model.KindVideo, nil
	default:
		return 0, &apperror.UnsupportedFormatError{Filename: filename}
	}
}
