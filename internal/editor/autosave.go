package editor

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Scheduler arms a single delayed callback. Arming replaces any callback
// already pending, and Cancel prevents a not-yet-fired callback from running.
// Kept as an interface so tests can drive the timer with a logical clock.
type Scheduler interface {
	Arm(delay time.Duration, fire func())
	Cancel()
}

// TimerScheduler implements Scheduler on real wall-clock timers
type TimerScheduler struct {
	mu    sync.Mutex
	timer *time.Timer
}

// NewTimerScheduler creates a wall-clock scheduler
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

// Arm schedules fire after delay, replacing any pending callback
func (s *TimerScheduler) Arm(delay time.Duration, fire func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, fire)
}

// Cancel stops the pending callback, if any
func (s *TimerScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Autosave coalesces rapid edits into a single persistence call. Each edit
// restarts the debounce window; when the window elapses with the session
// still dirty, the flush callback runs once with whatever text is current at
// that moment (last write wins).
//
// Overlap policy: at most one flush is in flight per transcript. An edit that
// arrives while a flush is running does not start a second call; it records a
// re-arm request, and the window is re-armed when the in-flight flush
// returns. A failed flush leaves the dirty flag set so the next edit or
// explicit save retries.
type Autosave struct {
	mu        sync.Mutex
	scheduler Scheduler
	delay     time.Duration
	flush     func() error
	log       logrus.FieldLogger

	dirty    bool
	inFlight bool
	rearm    bool
}

// NewAutosave creates an autosave with the given debounce window and flush callback
func NewAutosave(scheduler Scheduler, delay time.Duration, flush func() error, log logrus.FieldLogger) *Autosave {
	return &Autosave{
		scheduler: scheduler,
		delay:     delay,
		flush:     flush,
		log:       log,
	}
}

// MarkDirty notes an edit and restarts the debounce window
func (a *Autosave) MarkDirty() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.dirty = true
	if a.inFlight {
		a.rearm = true
		return
	}
	a.scheduler.Cancel()
	a.scheduler.Arm(a.delay, a.fire)
}

// Cancel clears any pending timer without firing it. Explicit save, refine
// and export actions call this first so autosave cannot race with them.
func (a *Autosave) Cancel() {
	a.scheduler.Cancel()
}

// Reset cancels the timer and clears the dirty flag; used after an explicit
// action has already persisted everything the registry held.
func (a *Autosave) Reset() {
	a.scheduler.Cancel()
	a.mu.Lock()
	a.dirty = false
	a.rearm = false
	a.mu.Unlock()
}

// Dirty reports whether unsaved edits exist
func (a *Autosave) Dirty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dirty
}

func (a *Autosave) fire() {
	a.mu.Lock()
	if !a.dirty || a.inFlight {
		a.mu.Unlock()
		return
	}
	a.dirty = false
	a.inFlight = true
	a.mu.Unlock()

	err := a.flush()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.inFlight = false
	if err != nil {
		// Keep the edits marked unsaved; the next edit or explicit save retries.
		a.dirty = true
		a.log.WithError(err).Warn("autosave failed")
	}
	if a.rearm {
		a.rearm = false
		if a.dirty {
			a.scheduler.Arm(a.delay, a.fire)
		}
	}
}
