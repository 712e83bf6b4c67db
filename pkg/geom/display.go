package geom

import "fmt"

// Vec2 is a position in display space. Y increases upwards.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DisplayBox is a Box that has been scaled and placed relative to the top-left corner
// of a rendered image.
type DisplayBox struct {
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

func (d DisplayBox) Center() Vec2 {
	return Vec2{d.CenterX, d.CenterY}
}

// Top-left corner in display space. Labels are anchored here.
func (d DisplayBox) TopLeft() Vec2 {
	return Vec2{d.CenterX - d.Width/2, d.CenterY + d.Height/2}
}

// Project maps a box from source pixels into display space.
// origin is the display position of the image's top-left corner, and scale is the
// display size of one source pixel. Pixel Y grows downward and display Y grows upward,
// so the vertical offset is subtracted from the origin.
// Degenerate boxes are not projected, and ok is false.
func Project(b Box, origin Vec2, scale float64) (d DisplayBox, ok bool) {
	if scale <= 0 {
		panic(fmt.Sprintf("Invalid display scale %v", scale))
	}
	if b.IsDegenerate() {
		return DisplayBox{}, false
	}
	cx, cy := b.CenterF()
	return DisplayBox{
		CenterX: origin.X + cx*scale,
		CenterY: origin.Y - cy*scale,
		Width:   float64(b.Width()) * scale,
		Height:  float64(b.Height()) * scale,
	}, true
}
