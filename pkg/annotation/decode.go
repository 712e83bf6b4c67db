package annotation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cyclopcam/boxcompare/pkg/geom"
)

const (
	boxSeparator   = ";"
	coordSeparator = ","
	labelSeparator = "|"
)

var ErrMalformedBox = errors.New("Malformed box")

// A field is absent if it's empty, whitespace, or the literal "none" (any case)
func isAbsent(field string) bool {
	f := strings.TrimSpace(field)
	return f == "" || strings.EqualFold(f, "none")
}

// ParseBox parses "x1,y1,x2,y2"
func ParseBox(token string) (geom.Box, error) {
	parts := strings.Split(token, coordSeparator)
	if len(parts) != 4 {
		return geom.Box{}, fmt.Errorf("%w '%v': expected 4 values, but found %v", ErrMalformedBox, token, len(parts))
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return geom.Box{}, fmt.Errorf("%w '%v': %v is not an integer", ErrMalformedBox, token, strconv.Quote(p))
		}
		v[i] = n
	}
	return geom.Box{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}, nil
}

// DecodeBoxes decodes a list of boxes such as "10,20,110,220;5,5,15,15".
// Blank tokens are skipped. Tokens that can't be parsed are skipped, and returned in 'malformed',
// so that the caller can report them. The rest of the list is still decoded.
func DecodeBoxes(field string) (boxes []IndexedBox, malformed []string) {
	boxes = []IndexedBox{}
	if isAbsent(field) {
		return
	}
	for i, token := range strings.Split(field, boxSeparator) {
		if strings.TrimSpace(token) == "" {
			continue
		}
		box, err := ParseBox(token)
		if err != nil {
			malformed = append(malformed, token)
			continue
		}
		boxes = append(boxes, IndexedBox{Index: i, Box: box})
	}
	return
}

// DecodeLabels decodes a list of labels such as "cat|dog"
func DecodeLabels(field string) []string {
	if isAbsent(field) {
		return []string{}
	}
	return strings.Split(field, labelSeparator)
}
