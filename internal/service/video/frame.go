package video

import (
	"context"
	"fmt"
	"os"

	"gocv.io/x/gocv"

	"storecounter/internal/apperror"
)

// Extractor decodes the first frame of a video file with OpenCV.
type Extractor struct{}

// NewExtractor returns a frame extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFirstFrame writes the first decodable frame of videoPath to outputPath
// as a still image and returns outputPath. It never reads past the first frame.
func (e *Extractor) ExtractFirstFrame(ctx context.Context, videoPath, outputPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := os.Stat(videoPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperror.ErrUnreadableMedia, err)
	}
	if info.Size() == 0 {
		return "", fmt.Errorf("%w: %s is empty", apperror.ErrUnreadableMedia, videoPath)
	}

	capture, err := gocv.VideoCaptureFile(videoPath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open video: %v", apperror.ErrUnreadableMedia, err)
	}
	defer capture.Close()

	if !capture.IsOpened() {
		return "", fmt.Errorf("%w: failed to open video %s", apperror.ErrUnreadableMedia, videoPath)
	}

	frame := gocv.NewMat()
	defer frame.Close()

	if ok := capture.Read(&frame); !ok || frame.Empty() {
		return "", fmt.Errorf("%w: failed to read video %s", apperror.ErrUnreadableMedia, videoPath)
	}

	if ok := gocv.IMWrite(outputPath, frame); !ok {
		return "", fmt.Errorf("%w: failed to write frame to %s", apperror.ErrUnreadableMedia, outputPath)
	}

	return outputPath, nil
}
