package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/boxcompare/pkg/annotation"
	"github.com/cyclopcam/boxcompare/pkg/config"
	"github.com/cyclopcam/boxcompare/pkg/geom"
	"github.com/cyclopcam/boxcompare/pkg/preview"
	"github.com/cyclopcam/boxcompare/pkg/scene"
	"github.com/cyclopcam/logs"
)

// Output is the JSON document that we hand over to the presentation renderer
type Output struct {
	Scale   float64                `json:"scale"`
	Origin  geom.Vec2              `json:"origin"`
	Styles  map[scene.Style]string `json:"styles"`
	Records []*scene.RecordScene   `json:"records"`
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	parser := argparse.NewParser("boxcompare", "Compare ground truth and predicted bounding boxes, and emit display-space boxes for rendering")
	input := parser.String("i", "input", &argparse.Options{Help: "Input CSV file", Required: true})
	configFile := parser.String("c", "config", &argparse.Options{Help: "JSON config file", Required: false, Default: ""})
	output := parser.File("o", "output", os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0664, &argparse.Options{Help: "Output JSON file", Required: true})
	limit := parser.Int("n", "limit", &argparse.Options{Help: "Maximum number of records (overrides config, 0 = all)", Required: false, Default: -1})
	previewDir := parser.String("p", "preview", &argparse.Options{Help: "Write a PNG of each image with its boxes into this directory", Required: false, Default: ""})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, err := logs.NewLog()
	check(err)

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	if *limit >= 0 {
		cfg.Limit = *limit
	}

	records, err := annotation.LoadFile(logger, *input, cfg.Limit)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	result := Output{
		Scale:   cfg.Scale,
		Origin:  cfg.Origin(),
		Styles:  cfg.Styles,
		Records: make([]*scene.RecordScene, 0, len(records)),
	}
	for _, rec := range records {
		s := scene.BuildScene(rec, cfg.Origin(), cfg.Scale)
		matches, total := s.NumMatches()
		logger.Infof("%v: %v ground truth boxes, %v/%v predictions match", rec.Filename, len(s.GroundTruth), matches, total)
		result.Records = append(result.Records, s)
	}

	if *previewDir != "" {
		check(os.MkdirAll(*previewDir, 0755))
		renderer := preview.NewRenderer(cfg.ImageDir, cfg.Styles)
		renderer.LineWidth = cfg.LineWidth
		for _, s := range result.Records {
			out := preview.OutputFilename(*previewDir, s.Filename)
			if err := renderer.Render(s, out); err != nil {
				logger.Warnf("Preview of %v failed: %v", s.Filename, err)
			}
		}
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	check(encoder.Encode(result))
}
