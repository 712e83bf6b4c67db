package scene

// Style tells the renderer how to draw a box
type Style string

const (
	StyleGroundTruth Style = "ground_truth"
	StyleMatch       Style = "match"
	StyleMismatch    Style = "mismatch"
)

// DefaultColors are the hex colors of each style
var DefaultColors = map[Style]string{
	StyleGroundTruth: "#89CFF0",
	StyleMatch:       "#00FF00",
	StyleMismatch:    "#FF0000",
}

func matchStyle(isMatch bool) Style {
	if isMatch {
		return StyleMatch
	}
	return StyleMismatch
}
