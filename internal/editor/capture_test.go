package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeTextSource is a controllable TextSource for tests
type fakeTextSource struct {
	text string
	ok   bool
}

func (f *fakeTextSource) Value() (string, bool) {
	return f.text, f.ok
}

func TestCaptureRegistry_Collect(t *testing.T) {
	registry := NewCaptureRegistry()
	registry.Register(0, &fakeTextSource{text: "first", ok: true})
	registry.Register(10, &fakeTextSource{text: "second", ok: true})

	edits := registry.Collect()

	assert.Equal(t, map[float64]string{0: "first", 10: "second"}, edits)
}

func TestCaptureRegistry_Collect_SkipsDeadSources(t *testing.T) {
	registry := NewCaptureRegistry()
	registry.Register(0, &fakeTextSource{text: "alive", ok: true})
	registry.Register(10, &fakeTextSource{text: "stale", ok: false})

	edits := registry.Collect()

	assert.Equal(t, map[float64]string{0: "alive"}, edits)
	assert.Equal(t, 2, registry.Len())
}

func TestCaptureRegistry_Register_Supersedes(t *testing.T) {
	registry := NewCaptureRegistry()
	registry.Register(0, &fakeTextSource{text: "old widget", ok: true})
	registry.Register(0, &fakeTextSource{text: "new widget", ok: true})

	edits := registry.Collect()

	assert.Equal(t, map[float64]string{0: "new widget"}, edits)
	assert.Equal(t, 1, registry.Len())
}

func TestCaptureRegistry_Deregister(t *testing.T) {
	registry := NewCaptureRegistry()
	registry.Register(0, &fakeTextSource{text: "first", ok: true})
	registry.Deregister(0)

	assert.Empty(t, registry.Collect())
	assert.Equal(t, 0, registry.Len())
}

func TestCaptureRegistry_Reset(t *testing.T) {
	registry := NewCaptureRegistry()
	registry.Register(0, &fakeTextSource{text: "first", ok: true})
	registry.Register(10, &fakeTextSource{text: "second", ok: true})

	registry.Reset()

	assert.Empty(t, registry.Collect())
	assert.Equal(t, 0, registry.Len())
}
