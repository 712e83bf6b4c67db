package scene

import (
	"math"

	flatbush "github.com/bmharper/flatbush-go"
	"github.com/cyclopcam/boxcompare/pkg/geom"
)

// Overlap describes the ground truth box that lies closest to a predicted box.
// It is purely informational: whether a prediction is a match is decided by label alone.
type Overlap struct {
	GroundTruthIndex int     `json:"groundTruthIndex"` // Position of the ground truth box in its encoded list
	IOU              float32 `json:"iou"`              // Zero if the boxes don't overlap
	CenterDistance   float32 `json:"centerDistance"`   // Distance between box centers, in image pixels
}

// The flatbush index works on int32, so boxes beyond that range must be scanned linearly
func fitsInt32(boxes []geom.Box) bool {
	for _, b := range boxes {
		for _, v := range [4]int{b.X1, b.Y1, b.X2, b.Y2} {
			if v < math.MinInt32 || v > math.MaxInt32 {
				return false
			}
		}
	}
	return true
}

// For each of 'predicted', find the box in 'truth' with the highest IoU.
// If nothing overlaps, fall back to the truth box with the nearest center.
// The returned GroundTruthIndex is an index into 'truth'.
// If 'truth' is empty, every element of the result is nil.
func findOverlaps(truth, predicted []geom.Box) []*Overlap {
	result := make([]*Overlap, len(predicted))
	if len(truth) == 0 {
		return result
	}

	// Candidate truth boxes for a prediction
	candidates := func(p geom.Box) []int {
		all := make([]int, len(truth))
		for j := range truth {
			all[j] = j
		}
		return all
	}

	if fitsInt32(truth) && fitsInt32(predicted) {
		// Create spatial index to avoid O(N^2) comparisons
		fb := flatbush.NewFlatbush[int32]()
		fb.Reserve(len(truth))
		for _, b := range truth {
			fb.Add(int32(b.X1), int32(b.Y1), int32(b.X2), int32(b.Y2))
		}
		fb.Finish()
		candidates = func(p geom.Box) []int {
			return fb.Search(int32(p.X1), int32(p.Y1), int32(p.X2), int32(p.Y2))
		}
	}

	for i, p := range predicted {
		bestJ := -1
		bestIOU := float32(0)
		for _, j := range candidates(p) {
			iou := p.IOU(truth[j])
			if iou > bestIOU {
				bestIOU = iou
				bestJ = j
			}
		}
		center := p.Center()
		if bestJ == -1 {
			bestJ = 0
			bestDistance := center.Distance(truth[0].Center())
			for j := 1; j < len(truth); j++ {
				distance := center.Distance(truth[j].Center())
				if distance < bestDistance {
					bestDistance = distance
					bestJ = j
				}
			}
		}
		result[i] = &Overlap{
			GroundTruthIndex: bestJ,
			IOU:              bestIOU,
			CenterDistance:   center.Distance(truth[bestJ].Center()),
		}
	}
	return result
}
