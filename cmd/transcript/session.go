package transcript

import (
	"context"
	"fmt"

	"github.com/etrmlabs/scriba/internal/editor"
)

// noAudio satisfies the session's audio collaborator for command-line use,
// where transcripts are edited without playback.
type noAudio struct{}

func (noAudio) Play() error { return nil }

func (noAudio) Pause() {}

func (noAudio) Ready() bool { return false }

func (noAudio) Duration() float64 { return 0 }

func (noAudio) Position() float64 { return 0 }

func (noAudio) SetPosition(float64) {}

// staticText adapts a fixed string to the capture registry's text source
// contract; unlike an editing widget it never goes dead.
type staticText string

func (s staticText) Value() (string, bool) { return string(s), true }

// openSession loads the transcript into an editing session over the command's
// services, so save, refine and export run through the same merge-and-replace
// engine interactive editing uses. The caller must Close it.
func openSession(ctx context.Context, svc *Services, id string) (*editor.Session, error) {
	session := editor.NewSession(editor.SessionParams{
		Store:    svc.Store,
		Refiner:  svc.Refiner,
		Exporter: svc.Exporter,
		Audio:    noAudio{},
	})
	if err := session.Load(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	return session, nil
}
