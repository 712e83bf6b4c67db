package preview

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cyclopcam/boxcompare/pkg/scene"
	"github.com/fogleman/gg"
)

const DefaultLineWidth = 3

// Approximate height of gg's default font, used to keep labels inside the image
const labelHeight = 13

// Renderer draws the boxes of a scene onto its source image, and saves the result as a PNG.
// This is a still image for checking the data, with boxes drawn in image pixel space.
type Renderer struct {
	ImageDir  string                 // Directory that holds the images named in the CSV
	Colors    map[scene.Style]string // Hex color of each style. Missing styles use scene.DefaultColors.
	LineWidth float64                // Zero means DefaultLineWidth
}

func NewRenderer(imageDir string, colors map[scene.Style]string) *Renderer {
	return &Renderer{
		ImageDir: imageDir,
		Colors:   colors,
	}
}

func (r *Renderer) color(style scene.Style) string {
	if c, ok := r.Colors[style]; ok {
		return c
	}
	return scene.DefaultColors[style]
}

// Render draws s onto its image and writes a PNG to outFilename
func (r *Renderer) Render(s *scene.RecordScene, outFilename string) error {
	imgPath := filepath.Join(r.ImageDir, s.Filename)
	img, err := gg.LoadImage(imgPath)
	if err != nil {
		return fmt.Errorf("Error loading image %v: %w", imgPath, err)
	}
	dc := gg.NewContextForImage(img)
	lineWidth := r.LineWidth
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	dc.SetLineWidth(lineWidth)

	// Ground truth first, so that predictions are drawn on top
	for _, group := range [][]scene.SceneBox{s.GroundTruth, s.Predicted} {
		for _, b := range group {
			dc.SetHexColor(r.color(b.Style))
			x, y := float64(b.Source.X1), float64(b.Source.Y1)
			dc.DrawRectangle(x, y, float64(b.Source.Width()), float64(b.Source.Height()))
			dc.Stroke()
			// Label sits just above the top-left corner, unless that would put it off the image
			labelY := y - lineWidth
			if labelY < labelHeight {
				labelY = y + labelHeight + lineWidth
			}
			dc.DrawString(b.Label, x, labelY)
		}
	}

	return dc.SavePNG(outFilename)
}

// OutputFilename is the name of the PNG that we write for the given source image
func OutputFilename(dir, imageFilename string) string {
	base := filepath.Base(imageFilename)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+"-boxes.png")
}
