package session

import (
	"context"
	"strings"
	"time"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// VoiceInput parameterizes a spoken question
type VoiceInput struct {
	Duration time.Duration
}

// Voice records speech for a bounded duration, transcribes it, and then
// behaves exactly like Ask with the transcribed text. Recording or
// transcription failure surfaces before anything touches the store.
func (uc *UseCase) Voice(ctx context.Context, input VoiceInput) (*Outcome, error) {
	if uc.recorder == nil {
		return nil, goerr.Wrap(model.ErrVoiceCapture, "no voice recorder configured")
	}

	text, err := uc.recorder.Record(ctx, input.Duration)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, goerr.Wrap(model.ErrVoiceCapture, "no speech detected")
	}

	return uc.Ask(ctx, AskInput{
		Title: "Voice: " + truncateTitle(text, 30),
		Text:  text,
	})
}

// VoiceFollowup records speech and appends the exchange to an existing
// session, used by the /v chat-loop command.
func (uc *UseCase) VoiceFollowup(ctx context.Context, sessionID model.SessionID, duration time.Duration) (*Outcome, error) {
	if uc.recorder == nil {
		return nil, goerr.Wrap(model.ErrVoiceCapture, "no voice recorder configured")
	}

	text, err := uc.recorder.Record(ctx, duration)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, goerr.Wrap(model.ErrVoiceCapture, "no speech detected")
	}

	return uc.Followup(ctx, sessionID, text)
}
