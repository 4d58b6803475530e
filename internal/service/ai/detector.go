package ai

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync"

	"storecounter/internal/apperror"
	"storecounter/internal/config"
	"storecounter/internal/logger"
	"storecounter/internal/model"

	"gocv.io/x/gocv"
)

// DetectorService runs the SSD MobileNet COCO network on decoded images.
// The network is loaded once and shared; gocv.Net is not reentrant, so
// inference calls are serialized.
type DetectorService struct {
	net        gocv.Net
	ready      bool
	threshold  float64
	modelPath  string
	configPath string
	logger     *logger.Logger
	mu         sync.Mutex
}

// NewDetectorService creates a detector with model/config paths and a logger.
// It fails if the underlying DNN network cannot be initialized.
func NewDetectorService(config *config.Config, logger *logger.Logger) (*DetectorService, error) {
	service := &DetectorService{
		threshold:  config.DetectionThreshold,
		modelPath:  config.ModelPath,
		configPath: config.ConfigPath,
		logger:     logger,
	}

	if err := service.initializeNet(); err != nil {
		return nil, err
	}

	return service, nil
}

// initializeNet loads the DNN network and sets backend/target preferences.
func (s *DetectorService) initializeNet() error {
	if _, err := os.Stat(s.modelPath); os.IsNotExist(err) {
		return fmt.Errorf("model file not found: %s", s.modelPath)
	}

	if _, err := os.Stat(s.configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", s.configPath)
	}

	net := gocv.ReadNet(s.modelPath, s.configPath)

	if net.Empty() {
		return fmt.Errorf("failed to load network")
	}
	errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
	errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)

	if errBackend != nil || errTarget != nil {
		net.Close()
		return fmt.Errorf("failed to set preferable backend or target")
	}

	s.net = net
	s.ready = true
	s.logger.Info("Detection network initialized successfully")
	return nil
}

// Detect runs the DNN on img and returns detections above the confidence threshold.
func (s *DetectorService) Detect(ctx context.Context, img image.Image) ([]model.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to convert image: %v", apperror.ErrDetectionFailed, err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("%w: converted image is empty", apperror.ErrDetectionFailed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return nil, fmt.Errorf("%w: detection network not initialized", apperror.ErrDetectionFailed)
	}

	// ImageToMatRGB yields BGR order, so swapRB converts to the RGB the model expects
	blob := gocv.BlobFromImage(mat, 1.0/127.5, image.Pt(300, 300), gocv.NewScalar(127.5, 127.5, 127.5, 0), true, false)
	defer blob.Close()

	s.net.SetInput(blob, "")

	output := s.net.Forward("")
	defer output.Close()

	// Output rows: [ batch_id, class_id, confidence, x1, y1, x2, y2 ]
	rows := output.Reshape(1, output.Total()/7)
	defer rows.Close()

	results := []model.Detection{}
	cols := float32(mat.Cols())
	height := float32(mat.Rows())
	for i := 0; i < rows.Rows(); i++ {
		confidence := rows.GetFloatAt(i, 2)
		if float64(confidence) < s.threshold {
			continue
		}

		classID := int(rows.GetFloatAt(i, 1))
		x := int(rows.GetFloatAt(i, 3) * cols)
		y := int(rows.GetFloatAt(i, 4) * height)
		w := int(rows.GetFloatAt(i, 5)*cols) - x
		h := int(rows.GetFloatAt(i, 6)*height) - y

		results = append(results, model.Detection{
			Label:      ClassLabel(classID),
			Confidence: float64(confidence),
			X:          x,
			Y:          y,
			Width:      w,
			Height:     h,
		})
	}

	s.logger.Info("Detected %d objects", len(results))
	return results, nil
}

// Close releases the network.
func (s *DetectorService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return nil
	}
	s.ready = false
	return s.net.Close()
}
