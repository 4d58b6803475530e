package ai

import "fmt"

// cocoLabels maps SSD MobileNet COCO class IDs to labels.
var cocoLabels = map[int]string{
	1:  "person",
	2:  "bicycle",
	3:  "car",
	4:  "motorcycle",
	5:  "airplane",
	6:  "bus",
	7:  "train",
	8:  "truck",
	16: "bird",
	17: "cat",
	18: "dog",
	27: "backpack",
	28: "umbrella",
	31: "handbag",
	33: "suitcase",
}

// ClassLabel maps model class IDs to human-readable labels.
func ClassLabel(classID int) string {
	if label, exists := cocoLabels[classID]; exists {
		return label
	}
	return fmt.Sprintf("unknown%d", classID)
}
