// Package apperror holds the request-scoped error taxonomy shared by the
// pipeline, the report generator and the HTTP layer.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnsupportedFormat is returned for files whose suffix is neither a known image nor video type.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrUnreadableMedia is returned when a file exists but cannot be decoded.
	ErrUnreadableMedia = errors.New("unreadable media")

	// ErrDetectionFailed is returned when the detector raised or returned an invalid result.
	ErrDetectionFailed = errors.New("detection failed")

	// ErrUnsupportedReportType is returned for unknown report encodings.
	ErrUnsupportedReportType = errors.New("unsupported report type")

	// ErrStoreUnavailable is returned when the history store cannot be reached or is corrupt.
	ErrStoreUnavailable = errors.New("history store unavailable")
)

// UnsupportedFormatError carries the offending filename.
type UnsupportedFormatError struct {
	Filename string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedFormat, e.Filename)
}

// Is lets errors.Is(err, ErrUnsupportedFormat) match.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// Code returns a stable machine-readable name for err, used in error payloads and metric labels.
func Code(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, ErrUnreadableMedia):
		return "unreadable_media"
	case errors.Is(err, ErrDetectionFailed):
		return "detection_failed"
	case errors.Is(err, ErrUnsupportedReportType):
		return "unsupported_report_type"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal_error"
	}
}

// HTTPStatus maps an error from the core to the status code the HTTP layer answers with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedFormat), errors.Is(err, ErrUnsupportedReportType):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnreadableMedia):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
