package editor

import (
	"github.com/sirupsen/logrus"
)

// AudioSource is the exclusively-owned audio element a Tracker drives.
// Ready reports whether metadata has loaded; Play may be rejected before then.
type AudioSource interface {
	Play() error
	Pause()
	Ready() bool
	Duration() float64
	Position() float64
	SetPosition(seconds float64)
}

// Tracker bridges continuous audio-clock updates and discrete seek commands,
// exposing one normalized time signal to the rest of the session. Two states:
// paused and playing. Time notifications are non-decreasing during normal
// playback; a seek produces a single out-of-order jump, which consumers must
// treat as expected rather than an error.
type Tracker struct {
	src    AudioSource
	onTime func(seconds float64)
	log    logrus.FieldLogger

	playing         bool
	resumeAfterSeek bool
}

// NewTracker creates a tracker over the given audio source. onTime receives
// every normalized time update, including those synthesized by seeks.
func NewTracker(src AudioSource, onTime func(seconds float64), log logrus.FieldLogger) *Tracker {
	if onTime == nil {
		onTime = func(float64) {}
	}
	return &Tracker{src: src, onTime: onTime, log: log}
}

// Playing reports whether the tracker is in the playing state
func (t *Tracker) Playing() bool {
	return t.playing
}

// Tick forwards a continuous time update from the audio source
func (t *Tracker) Tick(seconds float64) {
	t.onTime(seconds)
}

// TogglePlayPause requests a play/pause transition. The request is rejected
// with a warning, not an error, when the source has no metadata yet.
func (t *Tracker) TogglePlayPause() {
	if t.playing {
		t.src.Pause()
		t.playing = false
		return
	}

	if !t.src.Ready() {
		t.log.Warn("audio not ready, cannot play yet")
		return
	}
	if err := t.src.Play(); err != nil {
		t.log.WithError(err).Warn("failed to start playback")
		return
	}
	t.playing = true
}

// SeekStart marks the beginning of a scrub drag. Playback pauses so the user
// does not hear glitching while dragging; whether to resume is remembered for
// SeekCommit. No-op if already paused.
func (t *Tracker) SeekStart() {
	if !t.playing {
		return
	}
	t.src.Pause()
	t.playing = false
	t.resumeAfterSeek = true
}

// SeekPreview updates the reported time without moving the audio position,
// keeping dependent UI live while the user drags.
func (t *Tracker) SeekPreview(seconds float64) {
	t.onTime(seconds)
}

// SeekCommit finalizes a drag: the audio position moves to seconds, a final
// time update fires, and playback resumes only if it was playing when the
// drag began.
func (t *Tracker) SeekCommit(seconds float64) {
	t.src.SetPosition(seconds)
	t.onTime(seconds)

	if t.resumeAfterSeek {
		t.resumeAfterSeek = false
		if err := t.src.Play(); err != nil {
			t.log.WithError(err).Warn("failed to resume playback after seek")
			return
		}
		t.playing = true
	}
}

// ImperativeSeek jumps to seconds, clamped to [0, duration], without altering
// the play/pause state. Used when a segment is clicked rather than dragged.
func (t *Tracker) ImperativeSeek(seconds float64) {
	clamped := seconds
	if clamped < 0 {
		clamped = 0
	}
	if d := t.src.Duration(); d > 0 && clamped > d {
		clamped = d
	}
	t.src.SetPosition(clamped)
	t.onTime(clamped)
}
