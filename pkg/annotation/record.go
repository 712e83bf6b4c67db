package annotation

import (
	"github.com/cyclopcam/boxcompare/pkg/geom"
)

// UnknownLabel is given to a predicted box that has no corresponding entry in the predicted label list
const UnknownLabel = "?"

// IndexedBox is a decoded box, along with its position in the encoded box list.
// Labels are aligned by Index, so tokens that failed to decode still use up a label position.
type IndexedBox struct {
	Index int      `json:"index"`
	Box   geom.Box `json:"box"`
}

// AnnotationRecord is the ground truth and model prediction for a single image
type AnnotationRecord struct {
	Row                int          `json:"row"`      // 1-based data row in the source CSV (header excluded)
	Filename           string       `json:"filename"` // Passed through untouched, for the renderer to resolve
	GroundTruthBoxes   []IndexedBox `json:"groundTruthBoxes"`
	GroundTruthLabels  []string     `json:"groundTruthLabels"`
	PredictedBoxes     []IndexedBox `json:"predictedBoxes"`
	PredictedLabels    []string     `json:"predictedLabels"`
	RawTrueLabels      string       `json:"rawTrueLabels"`      // true_labels exactly as it appeared in the CSV
	RawPredictedLabels string       `json:"rawPredictedLabels"` // predicted_labels exactly as it appeared in the CSV
}

// WrapIndex maps i onto [0, n) by wrapping around.
// Ground truth files often list a label once for several boxes of the same class,
// so the label list is cycled when it is shorter than the box list.
// Returns -1 if n is zero.
func WrapIndex(i, n int) int {
	if n <= 0 {
		return -1
	}
	return ((i % n) + n) % n
}

// GroundTruthLabel returns the label of the ground truth box at position i in the encoded box list.
// If there are no ground truth labels at all, the label is empty.
func (r *AnnotationRecord) GroundTruthLabel(i int) string {
	j := WrapIndex(i, len(r.GroundTruthLabels))
	if j < 0 {
		return ""
	}
	return r.GroundTruthLabels[j]
}

// PredictedLabel returns the label of the predicted box at position i in the encoded box list,
// or UnknownLabel if the predicted label list is too short.
func (r *AnnotationRecord) PredictedLabel(i int) string {
	if i >= 0 && i < len(r.PredictedLabels) {
		return r.PredictedLabels[i]
	}
	return UnknownLabel
}
