package scene

import (
	"testing"

	"github.com/cyclopcam/boxcompare/pkg/annotation"
	"github.com/cyclopcam/boxcompare/pkg/geom"
	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, row annotation.Row) *annotation.AnnotationRecord {
	return row.Decode(logs.NewTestingLog(t), 1)
}

func TestBuildSceneGeometry(t *testing.T) {
	rec := decode(t, annotation.Row{
		Filename:   "a.jpg",
		TrueBoxes:  "10,20,110,220;5,5,15,15",
		TrueLabels: "cat|dog",
	})
	s := BuildScene(rec, geom.Vec2{}, 1)
	require.Equal(t, "a.jpg", s.Filename)
	require.Equal(t, 2, len(s.GroundTruth))
	require.Empty(t, s.Predicted)

	require.Equal(t, geom.DisplayBox{CenterX: 60, CenterY: -120, Width: 100, Height: 200}, s.GroundTruth[0].Display)
	require.Equal(t, geom.DisplayBox{CenterX: 10, CenterY: -10, Width: 10, Height: 10}, s.GroundTruth[1].Display)
	require.Equal(t, "cat", s.GroundTruth[0].Label)
	require.Equal(t, "dog", s.GroundTruth[1].Label)
	// Labels sit above the top-left corner of the box
	require.Equal(t, geom.Vec2{X: 10, Y: -20}, s.GroundTruth[0].LabelAnchor)
	require.Equal(t, geom.Vec2{X: 5, Y: -5}, s.GroundTruth[1].LabelAnchor)
	for _, b := range s.GroundTruth {
		require.Equal(t, StyleGroundTruth, b.Style)
		require.Nil(t, b.Overlap)
	}
}

func TestBuildSceneMalformedAndDegenerate(t *testing.T) {
	rec := decode(t, annotation.Row{
		TrueBoxes:  "10,20,30;40,50,60,70;9,9,9,20;30,30,10,40",
		TrueLabels: "a|b",
	})
	s := BuildScene(rec, geom.Vec2{}, 1)
	require.Equal(t, 1, len(s.GroundTruth))
	require.Equal(t, geom.Box{X1: 40, Y1: 50, X2: 60, Y2: 70}, s.GroundTruth[0].Source)
	require.Equal(t, 1, s.GroundTruth[0].Index)
	require.Equal(t, "b", s.GroundTruth[0].Label)

	// Idempotent
	require.Equal(t, s, BuildScene(rec, geom.Vec2{}, 1))
}

func TestBuildSceneLabelWrap(t *testing.T) {
	rec := decode(t, annotation.Row{
		TrueBoxes:  "0,0,1,1;0,0,2,2;0,0,3,3",
		TrueLabels: "car|bus",
	})
	s := BuildScene(rec, geom.Vec2{}, 1)
	require.Equal(t, []string{"car", "bus", "car"}, labels(s.GroundTruth))

	// No labels at all
	rec = decode(t, annotation.Row{TrueBoxes: "0,0,1,1;0,0,2,2", TrueLabels: "none"})
	s = BuildScene(rec, geom.Vec2{}, 1)
	require.Equal(t, []string{"", ""}, labels(s.GroundTruth))
}

func TestMatch(t *testing.T) {
	require.True(t, IsMatch("cat", []string{"cat", "dog"}))
	require.False(t, IsMatch("bird", []string{"cat", "dog"}))
	require.False(t, IsMatch("Cat", []string{"cat", "dog"}))
	require.False(t, IsMatch(annotation.UnknownLabel, []string{"cat", "dog"}))
	require.True(t, IsMatch(annotation.UnknownLabel, []string{"cat", "?"}))
	require.False(t, IsMatch("cat", nil))

	rec := decode(t, annotation.Row{
		TrueBoxes:       "0,0,10,10",
		TrueLabels:      "cat|dog",
		PredBoxes:       "0,0,10,10;500,500,510,510;20,20,30,30",
		PredictedLabels: "bird|cat",
	})
	s := BuildScene(rec, geom.Vec2{}, 1)
	require.Equal(t, 3, len(s.Predicted))
	require.Equal(t, []string{"bird", "cat", "?"}, labels(s.Predicted))
	require.Equal(t, geom.Vec2{X: 500, Y: -500}, s.Predicted[1].LabelAnchor)

	require.False(t, s.Predicted[0].IsMatch)
	require.Equal(t, StyleMismatch, s.Predicted[0].Style)
	// Label match, even though the boxes are nowhere near each other
	require.True(t, s.Predicted[1].IsMatch)
	require.Equal(t, StyleMatch, s.Predicted[1].Style)
	require.False(t, s.Predicted[2].IsMatch)
	require.Equal(t, StyleMismatch, s.Predicted[2].Style)

	matches, total := s.NumMatches()
	require.Equal(t, 1, matches)
	require.Equal(t, 3, total)
}

func TestOverlap(t *testing.T) {
	rec := decode(t, annotation.Row{
		TrueBoxes:       "0,0,0,0;0,0,10,10;100,100,120,120",
		TrueLabels:      "x|cat|dog",
		PredBoxes:       "5,5,15,15;200,200,210,210;100,100,120,120",
		PredictedLabels: "cat|cat|cat",
	})
	s := BuildScene(rec, geom.Vec2{}, 1)
	require.Equal(t, 2, len(s.GroundTruth))
	require.Equal(t, 3, len(s.Predicted))

	o := s.Predicted[0].Overlap
	require.NotNil(t, o)
	require.Equal(t, 1, o.GroundTruthIndex)
	require.Equal(t, float32(25)/float32(175), o.IOU)
	require.InDelta(t, 7.0711, o.CenterDistance, 0.001)

	// No overlap, so we fall back to the nearest center
	o = s.Predicted[1].Overlap
	require.Equal(t, 2, o.GroundTruthIndex)
	require.Equal(t, float32(0), o.IOU)
	require.InDelta(t, 95.0*1.41421356, o.CenterDistance, 0.01)

	o = s.Predicted[2].Overlap
	require.Equal(t, 2, o.GroundTruthIndex)
	require.Equal(t, float32(1), o.IOU)
	require.Equal(t, float32(0), o.CenterDistance)

	// IoU never affects matching
	require.True(t, s.Predicted[1].IsMatch)
}

func TestEmptyFields(t *testing.T) {
	rec := decode(t, annotation.Row{Filename: "b.jpg", TrueBoxes: "none", PredBoxes: ""})
	s := BuildScene(rec, geom.Vec2{X: 1, Y: 2}, 0.65)
	require.Empty(t, s.GroundTruth)
	require.Empty(t, s.Predicted)
	matches, total := s.NumMatches()
	require.Equal(t, 0, matches)
	require.Equal(t, 0, total)
}

func labels(boxes []SceneBox) []string {
	r := []string{}
	for _, b := range boxes {
		r = append(r, b.Label)
	}
	return r
}

func TestOverlapHugeCoordinates(t *testing.T) {
	// Center distance would overflow if computed with int squares
	rec := decode(t, annotation.Row{
		TrueBoxes:       "3037000500,0,3037000504,2",
		TrueLabels:      "cat",
		PredBoxes:       "0,0,2,2",
		PredictedLabels: "cat",
	})
	var s *RecordScene
	require.NotPanics(t, func() { s = BuildScene(rec, geom.Vec2{}, 1) })
	o := s.Predicted[0].Overlap
	require.NotNil(t, o)
	require.Equal(t, 0, o.GroundTruthIndex)
	require.Equal(t, float32(0), o.IOU)
	require.InDelta(t, 3037000501.0, float64(o.CenterDistance), 1000)
	require.True(t, s.Predicted[0].IsMatch)

	// Beyond int32, so the spatial index can't be used
	rec = decode(t, annotation.Row{
		TrueBoxes:       "0,0,10,10;2147483600,0,2147483700,10",
		TrueLabels:      "a|b",
		PredBoxes:       "2147483600,0,2147483700,10",
		PredictedLabels: "b",
	})
	s = BuildScene(rec, geom.Vec2{}, 1)
	o = s.Predicted[0].Overlap
	require.Equal(t, 1, o.GroundTruthIndex)
	require.Equal(t, float32(1), o.IOU)
	require.Equal(t, float32(0), o.CenterDistance)

	require.False(t, fitsInt32([]geom.Box{{X1: 0, Y1: 0, X2: 2147483648, Y2: 1}}))
	require.False(t, fitsInt32([]geom.Box{{X1: -2147483649, Y1: 0, X2: 1, Y2: 1}}))
	require.True(t, fitsInt32([]geom.Box{{X1: -2147483648, Y1: 0, X2: 2147483647, Y2: 1}}))
}
