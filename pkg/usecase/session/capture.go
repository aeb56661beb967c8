package session

import (
	"context"
	"errors"
	"strings"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/Mide6x/OpenSS/pkg/usecase/capture"
	"github.com/Mide6x/OpenSS/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// CaptureInput parameterizes one capture action
type CaptureInput struct {
	Title      string // session title; auto-generated when empty
	TargetHint string // optional capture target, e.g. "chrome"
}

// Capture resolves a capture target, grabs and masks the pixels, extracts
// text, asks the model, and persists the new session with the first
// user/assistant exchange. A failed completion persists nothing.
func (uc *UseCase) Capture(ctx context.Context, input CaptureInput) (*Outcome, error) {
	defer uc.setState(ctx, StateReady)

	uc.setState(ctx, StateCapturing)
	artifact, err := uc.captureArtifact(ctx, input.TargetHint)
	if err != nil {
		return nil, err
	}

	uc.setState(ctx, StateExtracting)
	text, lowConfidence, err := uc.extract(ctx, artifact)
	if err != nil {
		return nil, err
	}

	uc.setState(ctx, StateComposing)
	prompt := renderPrompt(uc.cfg.PromptMain, map[string]string{"text": text})

	uc.setState(ctx, StateAwaitingModel)
	answer, err := uc.complete(ctx, uc.cfg.Model, []model.Message{{Role: model.RoleUser, Text: prompt}})
	if err != nil {
		return nil, err
	}

	now := uc.now()
	session := model.NewSession(input.Title, uc.cfg.Model, now)
	userTurn := model.NewTurn(session.ID, model.RoleUser, text, now)
	userTurn.ImagePath = artifact
	assistantTurn := model.NewTurn(session.ID, model.RoleAssistant, answer, now)

	if err := uc.persist(ctx, session, userTurn, assistantTurn); err != nil {
		return nil, err
	}

	return &Outcome{
		Session:       session,
		Answer:        answer,
		ArtifactPath:  artifact,
		OCRText:       text,
		LowConfidence: lowConfidence,
	}, nil
}

// captureArtifact resolves the target and writes the masked capture to a
// fresh artifact path.
func (uc *UseCase) captureArtifact(ctx context.Context, hint string) (string, error) {
	windows, err := uc.windows.ListWindows(ctx)
	if err != nil {
		return "", err
	}
	displays, err := uc.windows.ListDisplays(ctx)
	if err != nil {
		return "", err
	}

	region, err := capture.Resolve(capture.Input{
		Hint:     hint,
		Windows:  windows,
		Displays: displays,
	})
	if err != nil {
		return "", err
	}

	logging.From(ctx).Debug("resolved capture target",
		"target", region.Target, "window_id", region.WindowID, "masked", region.Mask != nil)

	artifact := model.NewArtifactPath(uc.workDir, uc.now())
	if err := uc.screen.Capture(ctx, region, artifact); err != nil {
		return "", goerr.Wrap(err, "pixel capture failed")
	}
	return artifact, nil
}

// extract runs OCR with a bounded timeout. A timeout earns one retry at
// the fast recognition level; empty text is the low-confidence condition
// and the multimodal fallback takes over when configured.
func (uc *UseCase) extract(ctx context.Context, artifact string) (text string, lowConfidence bool, err error) {
	text, err = uc.extractor.Extract(ctx, artifact, uc.cfg.OCRRecognitionLevel)
	if errors.Is(err, model.ErrExtractionTimeout) {
		logging.From(ctx).Warn("extraction timed out, retrying with fast recognition")
		text, err = uc.extractor.Extract(ctx, artifact, model.RecognitionFast)
	}
	if err != nil {
		return "", false, err
	}

	if uc.cfg.DebugOCR {
		logging.From(ctx).Debug("ocr result", "chars", len(text),
			logging.TextPreview("preview", text, uc.cfg.MaxOCRPreview))
	}

	if strings.TrimSpace(text) != "" {
		return text, false, nil
	}

	if uc.fallback != nil {
		logging.From(ctx).Info("empty ocr result, falling back to multimodal extraction")
		text, err = uc.fallback.Extract(ctx, artifact, uc.cfg.OCRRecognitionLevel)
		if err != nil {
			return "", false, err
		}
		if strings.TrimSpace(text) != "" {
			return text, false, nil
		}
	}

	// Recoverable: proceed with empty text and let the model respond
	logging.From(ctx).Warn("no text extracted from capture",
		"artifact", artifact, "error", model.ErrLowConfidence)
	return "", true, nil
}
