package ai

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storecounter/internal/model"
)

func nrgba(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func TestAnnotate_DrawsBoxesWithoutTouchingSource(t *testing.T) {
	gray := color.NRGBA{R: 50, G: 50, B: 50, A: 255}
	src := imaging.New(100, 100, gray)
	out := filepath.Join(t.TempDir(), "result.png")

	detections := []model.Detection{
		{Label: "person", Confidence: 0.91, X: 10, Y: 40, Width: 30, Height: 40},
		{Label: "car", Confidence: 0.66, X: 60, Y: 50, Width: 30, Height: 30},
	}

	require.NoError(t, NewAnnotator().Annotate(context.Background(), src, detections, "person", out))

	img, err := imaging.Open(out)
	require.NoError(t, err)
	result := imaging.Clone(img)

	assert.Equal(t, src.Bounds(), result.Bounds())
	assert.Equal(t, nrgba(targetColor), result.NRGBAAt(10, 60), "left edge of the person box")
	assert.Equal(t, nrgba(otherColor), result.NRGBAAt(89, 70), "right edge of the car box")
	assert.Equal(t, gray, result.NRGBAAt(25, 60), "inside of the box stays untouched")
	assert.Equal(t, gray, src.NRGBAAt(10, 60), "source image is not modified")
}

func TestAnnotate_ClipsBoxesOutsideImage(t *testing.T) {
	src := imaging.New(40, 40, color.White)
	out := filepath.Join(t.TempDir(), "result.png")

	detections := []model.Detection{
		{Label: "person", Confidence: 0.8, X: -10, Y: -10, Width: 30, Height: 30},
		{Label: "person", Confidence: 0.8, X: 100, Y: 100, Width: 10, Height: 10},
	}

	require.NoError(t, NewAnnotator().Annotate(context.Background(), src, detections, "person", out))

	img, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 40), img.Bounds())
	assert.Equal(t, nrgba(targetColor), imaging.Clone(img).NRGBAAt(0, 15))
}

func TestAnnotate_NoDetectionsKeepsPixels(t *testing.T) {
	black := color.NRGBA{A: 255}
	src := imaging.New(8, 8, black)
	out := filepath.Join(t.TempDir(), "result.png")

	require.NoError(t, NewAnnotator().Annotate(context.Background(), src, nil, "person", out))

	img, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, imaging.Clone(img).Pix)
}

func TestAnnotate_UnwritablePath(t *testing.T) {
	src := imaging.New(8, 8, color.White)
	out := filepath.Join(t.TempDir(), "missing-dir", "result.png")

	assert.Error(t, NewAnnotator().Annotate(context.Background(), src, nil, "person", out))
}

func TestLabelPoint(t *testing.T) {
	assert.Equal(t, image.Pt(20, 45), labelPoint("person (0.90)", image.Rect(20, 50, 60, 90)))

	top := labelPoint("person (0.90)", image.Rect(20, 2, 60, 40))
	assert.Greater(t, top.Y, 2, "label moves inside a box touching the top edge")
	assert.Equal(t, 22, top.X)
}
