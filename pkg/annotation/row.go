package annotation

import (
	"github.com/cyclopcam/logs"
)

// CSV column names
const (
	ColumnFilename        = "filename"
	ColumnTrueBoxes       = "true_boxes"
	ColumnTrueLabels      = "true_labels"
	ColumnPredBoxes       = "pred_boxes"
	ColumnPredictedLabels = "predicted_labels"
)

// RequiredColumns must all be present in the CSV header
var RequiredColumns = []string{
	ColumnFilename,
	ColumnTrueBoxes,
	ColumnTrueLabels,
	ColumnPredBoxes,
	ColumnPredictedLabels,
}

// Row holds the raw, undecoded fields of one image.
// A field that is missing from the source is the empty string.
type Row struct {
	Filename        string
	TrueBoxes       string
	TrueLabels      string
	PredBoxes       string
	PredictedLabels string
}

// Decode turns the row into an AnnotationRecord.
// Malformed boxes are reported to log and skipped. Nothing else can fail.
func (r Row) Decode(log logs.Log, rowNumber int) *AnnotationRecord {
	rec := &AnnotationRecord{
		Row:                rowNumber,
		Filename:           r.Filename,
		GroundTruthLabels:  DecodeLabels(r.TrueLabels),
		PredictedLabels:    DecodeLabels(r.PredictedLabels),
		RawTrueLabels:      r.TrueLabels,
		RawPredictedLabels: r.PredictedLabels,
	}
	var malformed []string
	rec.GroundTruthBoxes, malformed = DecodeBoxes(r.TrueBoxes)
	for _, token := range malformed {
		log.Warnf("Could not parse %v coordinates '%v' for image '%v' (row %v)", ColumnTrueBoxes, token, r.Filename, rowNumber)
	}
	rec.PredictedBoxes, malformed = DecodeBoxes(r.PredBoxes)
	for _, token := range malformed {
		log.Warnf("Could not parse %v coordinates '%v' for image '%v' (row %v)", ColumnPredBoxes, token, r.Filename, rowNumber)
	}
	return rec
}
