package scene

import (
	"slices"

	"github.com/cyclopcam/boxcompare/pkg/annotation"
	"github.com/cyclopcam/boxcompare/pkg/geom"
)

// SceneBox is one box, ready to be drawn
type SceneBox struct {
	Index       int             `json:"index"` // Position in the encoded box list of the record
	Source      geom.Box        `json:"source"`
	Display     geom.DisplayBox `json:"display"`
	Label       string          `json:"label"`
	LabelAnchor geom.Vec2       `json:"labelAnchor"` // Display position that the label sits above
	Style       Style           `json:"style"`

	// Only populated for predicted boxes
	IsMatch bool     `json:"isMatch,omitempty"`
	Overlap *Overlap `json:"overlap,omitempty"`
}

// RecordScene is everything the renderer needs to draw the boxes of one image
type RecordScene struct {
	Row                int        `json:"row"`
	Filename           string     `json:"filename"`
	RawTrueLabels      string     `json:"rawTrueLabels"`
	RawPredictedLabels string     `json:"rawPredictedLabels"`
	GroundTruth        []SceneBox `json:"groundTruth"`
	Predicted          []SceneBox `json:"predicted"`
}

// IsMatch is true if label is one of the ground truth labels.
// The comparison is exact and case sensitive. The position of the boxes plays no part.
func IsMatch(label string, groundTruthLabels []string) bool {
	return slices.Contains(groundTruthLabels, label)
}

// BuildScene projects the boxes of rec into display space, and classifies the predictions.
// origin is the display position of the top-left corner of the image, and scale is the
// display size of one image pixel.
// Degenerate boxes are left out.
func BuildScene(rec *annotation.AnnotationRecord, origin geom.Vec2, scale float64) *RecordScene {
	s := &RecordScene{
		Row:                rec.Row,
		Filename:           rec.Filename,
		RawTrueLabels:      rec.RawTrueLabels,
		RawPredictedLabels: rec.RawPredictedLabels,
		GroundTruth:        []SceneBox{},
		Predicted:          []SceneBox{},
	}

	truthBoxes := []geom.Box{}
	for _, b := range rec.GroundTruthBoxes {
		display, ok := geom.Project(b.Box, origin, scale)
		if !ok {
			continue
		}
		truthBoxes = append(truthBoxes, b.Box)
		s.GroundTruth = append(s.GroundTruth, SceneBox{
			Index:       b.Index,
			Source:      b.Box,
			Display:     display,
			Label:       rec.GroundTruthLabel(b.Index),
			LabelAnchor: display.TopLeft(),
			Style:       StyleGroundTruth,
		})
	}

	predBoxes := []geom.Box{}
	for _, b := range rec.PredictedBoxes {
		display, ok := geom.Project(b.Box, origin, scale)
		if !ok {
			continue
		}
		label := rec.PredictedLabel(b.Index)
		isMatch := IsMatch(label, rec.GroundTruthLabels)
		predBoxes = append(predBoxes, b.Box)
		s.Predicted = append(s.Predicted, SceneBox{
			Index:       b.Index,
			Source:      b.Box,
			Display:     display,
			Label:       label,
			LabelAnchor: display.TopLeft(),
			Style:       matchStyle(isMatch),
			IsMatch:     isMatch,
		})
	}

	for i, overlap := range findOverlaps(truthBoxes, predBoxes) {
		if overlap != nil {
			overlap.GroundTruthIndex = s.GroundTruth[overlap.GroundTruthIndex].Index
		}
		s.Predicted[i].Overlap = overlap
	}

	return s
}

// NumMatches returns the number of predicted boxes that match, and the total number of predicted boxes
func (s *RecordScene) NumMatches() (matches, total int) {
	for _, p := range s.Predicted {
		if p.IsMatch {
			matches++
		}
	}
	return matches, len(s.Predicted)
}
