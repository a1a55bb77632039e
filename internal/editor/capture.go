package editor

import "sync"

// TextSource yields the live text of one segment's editing widget.
// ok must be false once the widget has been torn down; a dead source is
// skipped during collection instead of contributing a stale value.
type TextSource interface {
	Value() (text string, ok bool)
}

// CaptureRegistry records the latest text source per segment identity.
// Reads happen only when an action collects edits (save, refine, export,
// autosave firing), never per keystroke, so typing does not fan out through
// the whole segment list. Collection is idempotent: the registry always
// represents "the latest text for segments the user has touched".
type CaptureRegistry struct {
	mu      sync.Mutex
	handles map[float64]TextSource
}

// NewCaptureRegistry creates an empty registry
func NewCaptureRegistry() *CaptureRegistry {
	return &CaptureRegistry{handles: make(map[float64]TextSource)}
}

// Register ties a text source to a segment identity. Called once per segment
// when its editing widget mounts; a later registration for the same identity
// supersedes the earlier one.
func (r *CaptureRegistry) Register(id float64, src TextSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles[id] = src
}

// Deregister removes the text source for a segment identity
func (r *CaptureRegistry) Deregister(id float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handles, id)
}

// Reset drops every registered handle. Must be called whenever the segment
// collection is replaced wholesale, so handles keyed by the old identities
// can never be read again.
func (r *CaptureRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles = make(map[float64]TextSource)
}

// Collect reads the current live value from every registered handle.
// Sources that report not-ok are omitted from the result.
func (r *CaptureRegistry) Collect() map[float64]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	edits := make(map[float64]string, len(r.handles))
	for id, src := range r.handles {
		if text, ok := src.Value(); ok {
			edits[id] = text
		}
	}
	return edits
}

// Len returns the number of registered handles
func (r *CaptureRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}
