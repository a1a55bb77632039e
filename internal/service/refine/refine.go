// Package refine asks an LLM provider for a cleaned-up replacement of a
// transcript's segment collection.
package refine

import (
	"context"
	"fmt"
	"strings"

	"github.com/etrmlabs/scriba/internal/model"
)

// Refiner defines operations for LLM transcript cleanup. The returned
// collection replaces the input wholesale; it may have a different length.
type Refiner interface {
	Refine(ctx context.Context, segments []model.Segment) ([]model.Segment, error)
}

// Flatten renders segments into the textual form the refinement prompt
// consumes: one "start - end ?speaker: text" line per segment.
func Flatten(segments []model.Segment) string {
	var b strings.Builder
	for _, segment := range segments {
		speaker := ""
		if segment.Speaker != "" {
			speaker = "?" + segment.Speaker
		}
		fmt.Fprintf(&b, "%g - %g %s: %s\n", segment.Start, segment.End, speaker, segment.Text)
	}
	return b.String()
}
