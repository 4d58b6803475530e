package ai

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"storecounter/internal/model"
)

const (
	boxThickness = 2
	labelScale   = 0.5
	labelOffset  = 5
)

var (
	targetColor = color.RGBA{R: 0, G: 200, B: 0, A: 255}
	otherColor  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// Annotator draws detection boxes and labels and writes the result image.
type Annotator struct{}

func NewAnnotator() *Annotator {
	return &Annotator{}
}

// Annotate draws every detection on a copy of img and writes it to outputPath.
// Boxes of the target class are green, everything else red.
func (a *Annotator) Annotate(ctx context.Context, img image.Image, detections []model.Detection, target, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return fmt.Errorf("failed to convert image: %v", err)
	}
	defer mat.Close()

	bounds := image.Rect(0, 0, mat.Cols(), mat.Rows())
	for _, detection := range detections {
		rect := detection.Rect().Intersect(bounds)
		if rect.Empty() {
			continue
		}

		c := otherColor
		if detection.Label == target {
			c = targetColor
		}

		if err := gocv.Rectangle(&mat, rect, c, boxThickness); err != nil {
			return fmt.Errorf("failed to draw rectangle: %v", err)
		}

		label := fmt.Sprintf("%s (%.2f)", detection.Label, detection.Confidence)
		if err := gocv.PutText(&mat, label, labelPoint(label, rect), gocv.FontHersheySimplex, labelScale, c, 1); err != nil {
			return fmt.Errorf("failed to draw text: %v", err)
		}
	}

	if ok := gocv.IMWrite(outputPath, mat); !ok {
		return fmt.Errorf("failed to write annotated image %s", outputPath)
	}
	return nil
}

// labelPoint puts the label baseline above the box, or just inside its top
// edge when the box touches the top of the image.
func labelPoint(label string, rect image.Rectangle) image.Point {
	size := gocv.GetTextSize(label, gocv.FontHersheySimplex, labelScale, 1)
	if rect.Min.Y-labelOffset < size.Y {
		return image.Pt(rect.Min.X+boxThickness, rect.Min.Y+size.Y+boxThickness)
	}
	return image.Pt(rect.Min.X, rect.Min.Y-labelOffset)
}
