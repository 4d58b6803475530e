package pipeline

import "storecounter/internal/model"

// CountTarget returns how many detections carry the target label.
func CountTarget(detections []model.Detection, target string) int {
	count := 0
	for _, det := range detections {
		if det.Label == target {
			count++
		}
	}
	return count
}
