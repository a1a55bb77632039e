// Package editor implements the segment/audio synchronization and edit-state
// reconciliation engine for one open transcript: the canonical segment store,
// playback position tracking, per-segment edit capture, debounced autosave and
// the session orchestrator tying them together.
package editor

import (
	"github.com/etrmlabs/scriba/internal/model"
)

// Store holds the canonical segment collection for the open transcript and
// answers which segment contains a playback time. It also tracks the sticky
// active-segment pointer: when playback sits in a gap between segments the
// previously active identity is retained rather than cleared, so dependent UI
// does not flicker through silent stretches.
type Store struct {
	segments  []model.Segment
	active    float64
	hasActive bool
}

// NewStore creates an empty segment store
func NewStore() *Store {
	return &Store{}
}

// ReplaceAll swaps in a whole new segment collection. Replacement is always
// total, never incremental. The active pointer resets to the segment
// containing time zero, or to none.
func (s *Store) ReplaceAll(segments []model.Segment) {
	s.segments = make([]model.Segment, len(segments))
	copy(s.segments, segments)

	s.hasActive = false
	for _, segment := range s.segments {
		if segment.Start <= 0 && 0 < segment.End {
			s.active = segment.Start
			s.hasActive = true
			break
		}
	}
}

// Commit swaps in merged segment text without disturbing the active pointer.
// Used after save actions, where the on-screen widgets stay mounted and only
// the canonical text catches up with the user's edits.
func (s *Store) Commit(segments []model.Segment) {
	s.segments = make([]model.Segment, len(segments))
	copy(s.segments, segments)
}

// Segments returns a copy of the current segment collection
func (s *Store) Segments() []model.Segment {
	out := make([]model.Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// Len returns the number of segments
func (s *Store) Len() int {
	return len(s.segments)
}

// Segment returns the segment with the given identity
func (s *Store) Segment(id float64) (model.Segment, bool) {
	for _, segment := range s.segments {
		if segment.Start == id {
			return segment, true
		}
	}
	return model.Segment{}, false
}

// FindContaining resolves the segment whose [start, end) range contains t and
// updates the active pointer. If no segment contains t the previous active
// identity is retained. ok is false only when no segment has ever matched,
// e.g. on an empty collection.
func (s *Store) FindContaining(t float64) (float64, bool) {
	for _, segment := range s.segments {
		if segment.Start <= t && t < segment.End {
			s.active = segment.Start
			s.hasActive = true
			break
		}
	}
	return s.active, s.hasActive
}

// Active returns the current active-segment identity, if any
func (s *Store) Active() (float64, bool) {
	return s.active, s.hasActive
}

// MergeEdited produces a new segment collection where each segment's text is
// replaced by the registry entry for its identity, if present. Order and all
// non-text fields are preserved. Pure: the store itself is not modified, and
// an empty registry yields an equal copy of the current collection.
func (s *Store) MergeEdited(edits map[float64]string) []model.Segment {
	merged := make([]model.Segment, len(s.segments))
	copy(merged, s.segments)
	for i := range merged {
		if text, ok := edits[merged[i].Start]; ok {
			merged[i].Text = text
		}
	}
	return merged
}

// WordCount recomputes the word count from the canonical segment text
func (s *Store) WordCount() int {
	return model.CountWords(s.segments)
}
