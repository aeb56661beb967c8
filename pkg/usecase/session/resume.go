package session

import (
	"context"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// Resume loads a session and its transcript for the chat loop. An empty id
// selects the most recent session. No capture is required.
func (uc *UseCase) Resume(ctx context.Context, id model.SessionID) (*model.Session, []*model.Turn, error) {
	defer uc.setState(ctx, StateReady)

	if id == "" {
		latest, ok, err := uc.repo.LatestSessionID(ctx)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, goerr.Wrap(model.ErrSessionNotFound, "no sessions yet")
		}
		id = latest
	}

	session, err := uc.repo.GetSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	turns, err := uc.repo.GetTurns(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return session, turns, nil
}

// SwitchModel changes only the session's model; no turn is appended.
// Rejected while a completion call is in flight.
func (uc *UseCase) SwitchModel(ctx context.Context, id model.SessionID, modelID model.ModelID) error {
	if uc.State() == StateAwaitingModel {
		return goerr.New("cannot switch model while a completion is in flight")
	}

	if err := modelID.Validate(); err != nil {
		return err
	}
	return uc.repo.SetSessionModel(ctx, id, modelID)
}

// History lists recent sessions, newest first. Store failures here degrade
// to an error the caller can report without affecting other actions.
func (uc *UseCase) History(ctx context.Context, limit int) ([]*model.Session, error) {
	return uc.repo.ListSessions(ctx, limit)
}
