package ingest

import (
	"fmt"

	"github.com/google/uuid"
)

// Detection is one detector response in one frame.
type Detection struct {
	ID    uuid.UUID
	Frame int
	BBox  Rectangle
	Score float64
}

// NewDetection creates a detection with a fresh identifier.
func NewDetection(frame int, bbox Rectangle, score float64) Detection {
	return Detection{
		ID:    uuid.New(),
		Frame: frame,
		BBox:  bbox,
		Score: score,
	}
}

// Center returns the center of the detection's bounding box.
func (d Detection) Center() Point {
	return d.BBox.Center()
}

func (d Detection) String() string {
	return fmt.Sprintf("detection %s in frame %d", d.ID, d.Frame)
}
