package editor

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/etrmlabs/scriba/internal/config"
	apperrors "github.com/etrmlabs/scriba/internal/errors"
	"github.com/etrmlabs/scriba/internal/model"
)

// TranscriptStore is the persistence collaborator a session depends on.
// SaveTranscriptEdits appends a new data version server-side and repoints the
// transcript at it; the return value is the new canonical transcript.
type TranscriptStore interface {
	GetTranscript(ctx context.Context, id string) (*model.Transcript, error)
	SaveTranscriptEdits(ctx context.Context, id string, segments []model.Segment) (*model.Transcript, error)
}

// Refiner is the LLM cleanup collaborator; it returns a replacement segment
// collection for the given one.
type Refiner interface {
	Refine(ctx context.Context, segments []model.Segment) ([]model.Segment, error)
}

// Exporter renders a transcript to a Word-compatible document
type Exporter interface {
	ExportTranscript(ctx context.Context, meta *model.TranscriptMeta, data *model.TranscriptData) ([]byte, error)
}

// SessionParams carries the collaborators and callbacks a session is built
// from. All dependencies are injected explicitly so tests can substitute
// doubles without ambient lookup.
type SessionParams struct {
	Store    TranscriptStore
	Refiner  Refiner
	Exporter Exporter
	Audio    AudioSource

	Scheduler     Scheduler
	AutosaveDelay int // milliseconds; 0 uses config.DefaultAutosaveDelayMS

	// ScrollTo fires when the active segment changes (never on every tick)
	ScrollTo func(id float64)
	// Notify surfaces action failures to the user without ending the session
	Notify func(err error)

	Logger logrus.FieldLogger
}

// Session is the page-level orchestrator for one open transcript. It owns the
// segment store, capture registry, autosave scheduler and playback tracker
// exclusively; no state is shared across transcripts.
type Session struct {
	mu sync.Mutex

	db       TranscriptStore
	refiner  Refiner
	exporter Exporter

	store    *Store
	capture  *CaptureRegistry
	autosave *Autosave
	tracker  *Tracker

	scrollTo func(id float64)
	notify   func(err error)
	log      logrus.FieldLogger

	transcript *model.Transcript
	lastActive float64
	hasActive  bool
	wordCount  int
	closed     bool
}

// NewSession wires a session from its collaborators. Load must be called
// before the event handlers are useful.
func NewSession(p SessionParams) *Session {
	if p.Logger == nil {
		p.Logger = logrus.StandardLogger()
	}
	if p.Scheduler == nil {
		p.Scheduler = NewTimerScheduler()
	}
	if p.ScrollTo == nil {
		p.ScrollTo = func(float64) {}
	}
	if p.Notify == nil {
		p.Notify = func(error) {}
	}
	delay := p.AutosaveDelay
	if delay <= 0 {
		delay = config.DefaultAutosaveDelayMS
	}

	s := &Session{
		db:       p.Store,
		refiner:  p.Refiner,
		exporter: p.Exporter,
		store:    NewStore(),
		capture:  NewCaptureRegistry(),
		scrollTo: p.ScrollTo,
		notify:   p.Notify,
		log:      p.Logger,
	}
	s.autosave = NewAutosave(p.Scheduler, msToDuration(delay), s.flushAutosave, p.Logger)
	s.tracker = NewTracker(p.Audio, s.OnTimeUpdate, p.Logger)
	return s
}

// Tracker returns the playback position tracker for this session
func (s *Session) Tracker() *Tracker {
	return s.tracker
}

// Capture returns the edit capture registry for this session
func (s *Session) Capture() *CaptureRegistry {
	return s.capture
}

// Autosave returns the autosave scheduler for this session
func (s *Session) Autosave() *Autosave {
	return s.autosave
}

// Transcript returns the canonical transcript, or nil before Load
func (s *Session) Transcript() *model.Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcript
}

// Segments returns a copy of the canonical segment collection
func (s *Session) Segments() []model.Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Segments()
}

// WordCount returns the word count as of the last completed action
func (s *Session) WordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wordCount
}

// Load fetches the transcript and replaces the segment collection wholesale
func (s *Session) Load(ctx context.Context, id string) error {
	transcript, err := s.db.GetTranscript(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeOf(err), "failed to load transcript")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.replaceLocked(transcript)
	return nil
}

// OnTimeUpdate maps a playback time to the active segment and fires the
// scroll callback only when the active segment actually changes.
func (s *Session) OnTimeUpdate(seconds float64) {
	s.mu.Lock()
	id, ok := s.store.FindContaining(seconds)
	changed := ok && (!s.hasActive || id != s.lastActive)
	if changed {
		s.lastActive = id
		s.hasActive = true
	}
	s.mu.Unlock()

	if changed {
		s.scrollTo(id)
	}
}

// OnSegmentClick seeks playback to the clicked segment's start. Clicking the
// segment that is already active is a no-op so in-progress playback within
// its range is not disrupted.
func (s *Session) OnSegmentClick(id float64) {
	s.mu.Lock()
	if s.hasActive && id == s.lastActive {
		s.mu.Unlock()
		return
	}
	segment, ok := s.store.Segment(id)
	s.mu.Unlock()
	if !ok {
		return
	}
	s.tracker.ImperativeSeek(segment.Start)
}

// OnSegmentTextChange notes a keystroke in some segment's editing widget
func (s *Session) OnSegmentTextChange() {
	s.autosave.MarkDirty()
}

// ActiveSegment returns the identity of the active segment, if any
func (s *Session) ActiveSegment() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive, s.hasActive
}

// Save cancels any pending autosave, merges captured edits into the canonical
// collection and persists a new version. The word count is recomputed from
// the saved segments.
func (s *Session) Save(ctx context.Context) error {
	s.autosave.Cancel()
	_, err := s.saveEdits(ctx, true)
	if err != nil && !apperrors.IsCanceled(err) {
		s.notify(err)
	}
	return err
}

// Refine saves the latest edits so the server holds current text, asks the
// refinement collaborator for a cleaned-up segment collection, persists it,
// and replaces the segment store wholesale with the result.
func (s *Session) Refine(ctx context.Context) error {
	s.autosave.Cancel()

	saved, err := s.saveEdits(ctx, true)
	if err != nil {
		if !apperrors.IsCanceled(err) {
			s.notify(err)
		}
		return err
	}

	refined, err := s.refiner.Refine(ctx, saved.Segments)
	if err != nil {
		err = apperrors.Wrap(err, apperrors.CodeExternal, "refinement failed")
		if !apperrors.IsCanceled(err) {
			s.notify(err)
		}
		return err
	}

	transcript, err := s.db.SaveTranscriptEdits(ctx, saved.ID, refined)
	if err != nil {
		err = apperrors.Wrap(err, apperrors.CodeOf(err), "failed to save refined transcript")
		if !apperrors.IsCanceled(err) {
			s.notify(err)
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.replaceLocked(transcript)
	return nil
}

// Export saves current state and renders the transcript to Word document
// bytes for the caller to download or write out.
func (s *Session) Export(ctx context.Context) ([]byte, error) {
	s.autosave.Cancel()

	saved, err := s.saveEdits(ctx, true)
	if err != nil {
		if !apperrors.IsCanceled(err) {
			s.notify(err)
		}
		return nil, err
	}

	meta, data := saved.Split()
	doc, err := s.exporter.ExportTranscript(ctx, meta, data)
	if err != nil {
		err = apperrors.Wrap(err, apperrors.CodeExternal, "export failed")
		if !apperrors.IsCanceled(err) {
			s.notify(err)
		}
		return nil, err
	}
	return doc, nil
}

// Close tears the session down. Responses from calls still in flight become
// no-ops; the session never crashes on a late completion.
func (s *Session) Close() {
	s.autosave.Cancel()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// saveEdits collects captured text, merges it into the canonical segments and
// persists a new version. On success the merged text is committed and the
// word count updated; on failure editing state is untouched so nothing is
// lost. resetAutosave additionally clears the dirty flag, which explicit
// actions want but the autosave flush path must not do (it would wipe a
// re-arm queued behind the in-flight flush).
func (s *Session) saveEdits(ctx context.Context, resetAutosave bool) (*model.Transcript, error) {
	s.mu.Lock()
	if s.transcript == nil {
		s.mu.Unlock()
		return nil, apperrors.New(apperrors.CodeInvalidArg, "transcript not loaded")
	}
	id := s.transcript.ID
	merged := s.store.MergeEdited(s.capture.Collect())
	s.mu.Unlock()

	transcript, err := s.db.SaveTranscriptEdits(ctx, id, merged)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeOf(err), "failed to save transcript edits")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return transcript, nil
	}
	s.transcript = transcript
	s.store.Commit(transcript.Segments)
	s.wordCount = model.CountWords(transcript.Segments)
	if resetAutosave {
		s.autosave.Reset()
	}
	return transcript, nil
}

// flushAutosave is the debounced persistence path. Failures keep the dirty
// flag set (handled by Autosave) and are surfaced without interrupting
// editing or playback.
func (s *Session) flushAutosave() error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil
	}

	_, err := s.saveEdits(context.Background(), false)
	if err != nil {
		if apperrors.IsCanceled(err) {
			return nil
		}
		s.notify(err)
		return err
	}
	return nil
}

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// replaceLocked installs a fresh transcript: wholesale segment replacement,
// capture handles for the old identities invalidated, word count recomputed.
// Caller holds s.mu.
func (s *Session) replaceLocked(transcript *model.Transcript) {
	s.transcript = transcript
	s.store.ReplaceAll(transcript.Segments)
	s.capture.Reset()
	s.lastActive, s.hasActive = s.store.Active()
	s.wordCount = model.CountWords(transcript.Segments)
}
