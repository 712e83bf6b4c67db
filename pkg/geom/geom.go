package geom

import (
	"github.com/chewxy/math32"
)

// Point is a location in source image pixels
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Coordinates are converted to float before subtracting, so that huge coordinates can't overflow.
func (p Point) Distance(b Point) float32 {
	dx := float32(float64(p.X) - float64(b.X))
	dy := float32(float64(p.Y) - float64(b.Y))
	return math32.Sqrt(dx*dx + dy*dy)
}

// Box is an axis-aligned rectangle in source image pixels, defined by two opposite corners.
// Nothing forces X1 < X2 or Y1 < Y2, so check IsDegenerate before using a box.
type Box struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

func (b Box) Width() int {
	return b.X2 - b.X1
}

func (b Box) Height() int {
	return b.Y2 - b.Y1
}

// A degenerate box has zero or negative width or height
func (b Box) IsDegenerate() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Returns zero for degenerate boxes
func (b Box) Area() int {
	if b.IsDegenerate() {
		return 0
	}
	return b.Width() * b.Height()
}

func (b Box) Intersection(o Box) Box {
	x1 := max(b.X1, o.X1)
	y1 := max(b.Y1, o.Y1)
	x2 := min(b.X2, o.X2)
	y2 := min(b.Y2, o.Y2)
	return Box{
		X1: x1,
		Y1: y1,
		X2: max(x1, x2),
		Y2: max(y1, y2),
	}
}

// Area in floating point, which can't overflow
func (b Box) areaF() float64 {
	if b.IsDegenerate() {
		return 0
	}
	return float64(b.Width()) * float64(b.Height())
}

// Intersection over Union
func (b Box) IOU(o Box) float32 {
	intersection := b.Intersection(o).areaF()
	union := b.areaF() + o.areaF() - intersection
	if union <= 0 {
		return 0
	}
	return float32(intersection) / float32(union)
}

// Center rounded down to the nearest pixel
func (b Box) Center() Point {
	return Point{
		X: b.X1 + b.Width()/2,
		Y: b.Y1 + b.Height()/2,
	}
}

// Exact center, without rounding
func (b Box) CenterF() (float64, float64) {
	return float64(b.X1) + float64(b.Width())/2, float64(b.Y1) + float64(b.Height())/2
}
