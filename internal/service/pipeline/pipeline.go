package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"storecounter/internal/apperror"
	"storecounter/internal/logger"
	"storecounter/internal/media"
	"storecounter/internal/model"
	"storecounter/internal/repository"
	"storecounter/internal/service/metrics"
)

// Detector finds objects in a decoded image. Implementations must be safe for
// concurrent use; the same image must yield the same detections.
type Detector interface {
	Detect(ctx context.Context, img image.Image) ([]model.Detection, error)
}

// FrameExtractor writes the first decodable frame of a video to outputPath.
type FrameExtractor interface {
	ExtractFirstFrame(ctx context.Context, videoPath, outputPath string) (string, error)
}

// Annotator draws detections onto img and writes the result to outputPath.
type Annotator interface {
	Annotate(ctx context.Context, img image.Image, detections []model.Detection, target, outputPath string) error
}

// Artifacts hands out collision-free paths for derived files.
type Artifacts interface {
	ReserveFrame(videoFilename string) (string, error)
	ReserveResult(filename string) (string, error)
}

// Pipeline turns one uploaded file into one HistoryRecord:
// classify, extract a frame for videos, decode, detect, count, annotate, persist.
type Pipeline struct {
	detector  Detector
	extractor FrameExtractor
	annotator Annotator
	artifacts Artifacts
	history   repository.HistoryRepository
	target    string
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

// NewPipeline wires a pipeline. metrics may be nil.
func NewPipeline(detector Detector, extractor FrameExtractor, annotator Annotator, artifacts Artifacts,
	history repository.HistoryRepository, target string, logger *logger.Logger, metrics *metrics.Metrics) *Pipeline {
	return &Pipeline{
		detector:  detector,
		extractor: extractor,
		annotator: annotator,
		artifacts: artifacts,
		history:   history,
		target:    target,
		logger:    logger,
		metrics:   metrics,
	}
}

// Target returns the label that is counted.
func (p *Pipeline) Target() string {
	return p.target
}

// run tracks files created during one Process call so they can be removed on failure.
type run struct {
	id      string
	kind    string
	created []string
}

func (r *run) track(path string) {
	r.created = append(r.created, path)
}

func (r *run) rollback() {
	for _, path := range r.created {
		os.Remove(path)
	}
}

// Process counts the target class in the file at assetPath. declaredFilename
// decides the media kind and names the derived artifacts.
func (p *Pipeline) Process(ctx context.Context, assetPath, declaredFilename string) (*model.HistoryRecord, error) {
	start := time.Now()
	r := &run{id: uuid.NewString()[:8], kind: "unknown"}

	rec, err := p.process(ctx, r, assetPath, declaredFilename)
	if err != nil {
		r.rollback()
		p.metrics.RecordProcess(r.kind, apperror.Code(err), 0, time.Since(start))
		p.logger.Error("[%s] Processing %s failed: %v", r.id, declaredFilename, err)
		return nil, err
	}

	p.metrics.RecordProcess(r.kind, apperror.Code(nil), rec.Count, time.Since(start))
	p.logger.Info("[%s] %s: %d %s detected (record #%d, %s)", r.id, rec.SourceFilename, rec.Count, p.target, rec.ID, time.Since(start).Round(time.Millisecond))
	return rec, nil
}

func (p *Pipeline) process(ctx context.Context, r *run, assetPath, declaredFilename string) (*model.HistoryRecord, error) {
	// Step 1: classify
	kind, err := media.Classify(declaredFilename)
	if err != nil {
		return nil, err
	}
	r.kind = kind.String()

	workingPath := assetPath
	workingName := filepath.Base(declaredFilename)

	// Step 2: videos are analyzed through their first frame
	if kind == model.KindVideo {
		framePath, err := p.artifacts.ReserveFrame(workingName)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve frame path: %w", err)
		}
		r.track(framePath)

		if _, err := p.extractor.ExtractFirstFrame(ctx, assetPath, framePath); err != nil {
			if !errors.Is(err, apperror.ErrUnreadableMedia) {
				err = fmt.Errorf("%w: %s: %v", apperror.ErrUnreadableMedia, workingName, err)
			}
			return nil, err
		}

		p.logger.Info("[%s] Extracted first frame of %s to %s", r.id, workingName, framePath)
		workingPath = framePath
		workingName = filepath.Base(framePath)
	}

	// Step 3: decode
	img, err := imaging.Open(workingPath, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperror.ErrUnreadableMedia, workingName, err)
	}

	// Step 4: detect
	detections, err := p.detect(ctx, img)
	if err != nil {
		return nil, err
	}

	// Step 5: count
	count := CountTarget(detections, p.target)

	// Step 6: annotate
	resultPath, err := p.artifacts.ReserveResult(workingName)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve result path: %w", err)
	}
	r.track(resultPath)

	if err := p.annotator.Annotate(ctx, img, detections, p.target, resultPath); err != nil {
		return nil, fmt.Errorf("failed to annotate %s: %w", workingName, err)
	}

	// Step 7: persist
	rec, err := p.history.Append(ctx, workingName, count, resultPath)
	if err != nil {
		p.logger.Alert("[%s] Result for %s (count=%d) could not be stored: %v", r.id, workingName, count, err)
		if !errors.Is(err, apperror.ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %v", apperror.ErrStoreUnavailable, err)
		}
		return nil, err
	}

	return rec, nil
}

// detect invokes the detector, turning errors, panics and malformed output into ErrDetectionFailed.
func (p *Pipeline) detect(ctx context.Context, img image.Image) (detections []model.Detection, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			detections = nil
			err = fmt.Errorf("%w: detector panicked: %v", apperror.ErrDetectionFailed, rec)
		}
	}()

	detections, err = p.detector.Detect(ctx, img)
	if err != nil {
		if errors.Is(err, apperror.ErrDetectionFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrDetectionFailed, err)
	}

	for i, det := range detections {
		if math.IsNaN(det.Confidence) || det.Confidence < 0 || det.Confidence > 1 {
			return nil, fmt.Errorf("%w: detection %d has confidence %v", apperror.ErrDetectionFailed, i, det.Confidence)
		}
	}

	return detections, nil
}
