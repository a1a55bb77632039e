package transcript

import (
	"fmt"

	"github.com/etrmlabs/scriba/internal/model"
)

// formatTimestamp renders seconds as mm:ss or h:mm:ss
func formatTimestamp(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// formatSegmentLine renders a segment as "Speaker: text", omitting the
// speaker prefix when attribution is missing
func formatSegmentLine(segment model.Segment) string {
	if segment.Speaker == "" {
		return segment.Text
	}
	return segment.Speaker + ": " + segment.Text
}

// formatFileInfo summarizes the audio attachment of a transcript
func formatFileInfo(meta *model.TranscriptMeta) string {
	if meta.FileID == model.NoFile || meta.FileType == model.FileTypeNone {
		return "(none)"
	}
	if meta.FileURL != "" {
		return meta.FileURL
	}
	return meta.FileID
}

// truncateString shortens a string to maxLen runes with an ellipsis
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
