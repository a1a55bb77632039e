// Package export renders transcripts into Word-compatible documents.
package export

import (
	"bytes"
	"context"
	"sort"

	docx "github.com/fumiama/go-docx"

	"github.com/etrmlabs/scriba/internal/errors"
	"github.com/etrmlabs/scriba/internal/model"
)

// boldSpeaker marks the interviewer's paragraphs bold in the output document
const boldSpeaker = "ETRM"

// Exporter defines operations for document export
type Exporter interface {
	ExportTranscript(ctx context.Context, meta *model.TranscriptMeta, data *model.TranscriptData) ([]byte, error)
}

// wordExporter implements Exporter producing .docx bytes
type wordExporter struct{}

// NewWordExporter creates a Word document Exporter
func NewWordExporter() Exporter {
	return &wordExporter{}
}

// speakerBlock is a run of consecutive segments attributed to one speaker
type speakerBlock struct {
	speaker string
	text    string
}

// flattenSegments joins consecutive segments sharing a speaker into one
// paragraph-sized block, in start-time order
func flattenSegments(segments []model.Segment) []speakerBlock {
	ordered := make([]model.Segment, len(segments))
	copy(ordered, segments)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	var blocks []speakerBlock
	for _, segment := range ordered {
		speaker := segment.Speaker
		if speaker == "" {
			speaker = "Unknown"
		}
		if len(blocks) > 0 && blocks[len(blocks)-1].speaker == speaker {
			blocks[len(blocks)-1].text += " " + segment.Text
			continue
		}
		blocks = append(blocks, speakerBlock{speaker: speaker, text: segment.Text})
	}
	return blocks
}

// ExportTranscript renders the transcript as a Word document: a bold title,
// a subtitle placeholder, then one paragraph per speaker block
func (e *wordExporter) ExportTranscript(_ context.Context, meta *model.TranscriptMeta, data *model.TranscriptData) ([]byte, error) {
	if meta == nil || data == nil {
		return nil, errors.New(errors.CodeInvalidArg, "transcript meta and data are required")
	}

	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph()
	title.AddText("ETRM Interview Series - " + meta.Title).Bold()
	doc.AddParagraph()

	subtitle := doc.AddParagraph()
	subtitle.AddText("Insert subtitle and speaker description here").Italic()
	doc.AddParagraph()

	blocks := flattenSegments(data.Segments)
	for i, block := range blocks {
		paragraph := doc.AddParagraph()
		run := paragraph.AddText(block.speaker + ": " + block.text)
		if block.speaker == boldSpeaker {
			run.Bold()
		}
		if i < len(blocks)-1 {
			doc.AddParagraph()
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to write word document")
	}
	return buf.Bytes(), nil
}
