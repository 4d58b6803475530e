package ai

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"storecounter/internal/config"
	"storecounter/internal/logger"
)

func TestNewDetectorService_MissingModel(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		ModelPath:          filepath.Join(dir, "missing.pb"),
		ConfigPath:         filepath.Join(dir, "missing.pbtxt"),
		DetectionThreshold: 0.5,
	}

	ds, err := NewDetectorService(cfg, logger.NewNop())
	assert.Nil(t, ds)
	assert.ErrorContains(t, err, "model file not found")
}
