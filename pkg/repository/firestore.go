package repository

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionSessions = "sessions"
	collectionTurns    = "turns"
)

// Firestore implements Repository on a Firestore database. Sessions live in
// the "sessions" collection; each session's turns live in a "turns"
// subcollection keyed by turn id.
type Firestore struct {
	client *firestore.Client
}

// New creates a Firestore-backed repository
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project", projectID), goerr.V("database", databaseID))
	}

	return &Firestore{client: client}, nil
}

func (r *Firestore) Close() error {
	return r.client.Close()
}

func (r *Firestore) sessionDoc(id model.SessionID) *firestore.DocumentRef {
	return r.client.Collection(collectionSessions).Doc(string(id))
}

func (r *Firestore) CreateSession(ctx context.Context, session *model.Session) error {
	if _, err := r.sessionDoc(session.ID).Create(ctx, session); err != nil {
		return goerr.Wrap(model.ErrPersistence, "failed to create session",
			goerr.V("session_id", session.ID), goerr.V("cause", err.Error()))
	}
	return nil
}

func (r *Firestore) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	doc, err := r.sessionDoc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, goerr.Wrap(model.ErrSessionNotFound, "no such session", goerr.V("session_id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(model.ErrPersistence, "failed to get session",
			goerr.V("session_id", id), goerr.V("cause", err.Error()))
	}

	var session model.Session
	if err := doc.DataTo(&session); err != nil {
		return nil, goerr.Wrap(model.ErrPersistence, "failed to decode session", goerr.V("session_id", id))
	}
	return &session, nil
}

func (r *Firestore) AppendTurns(ctx context.Context, id model.SessionID, turns ...*model.Turn) error {
	if len(turns) == 0 {
		return nil
	}

	sessionRef := r.sessionDoc(id)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(sessionRef); status.Code(err) == codes.NotFound {
			return goerr.Wrap(model.ErrSessionNotFound, "no such session", goerr.V("session_id", id))
		} else if err != nil {
			return err
		}

		for _, turn := range turns {
			ref := sessionRef.Collection(collectionTurns).Doc(string(turn.ID))
			if err := tx.Create(ref, turn); err != nil {
				return err
			}
		}

		return tx.Update(sessionRef, []firestore.Update{
			{Path: "LastActive", Value: time.Now()},
		})
	})
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return err
		}
		return goerr.Wrap(model.ErrPersistence, "failed to append turns",
			goerr.V("session_id", id), goerr.V("cause", err.Error()))
	}
	return nil
}

func (r *Firestore) GetTurns(ctx context.Context, id model.SessionID) ([]*model.Turn, error) {
	// Turn ids are ULIDs, so ordering by id is append order even when two
	// turns share a CreatedAt millisecond.
	iter := r.sessionDoc(id).Collection(collectionTurns).
		OrderBy("ID", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var turns []*model.Turn
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(model.ErrPersistence, "failed to iterate turns",
				goerr.V("session_id", id), goerr.V("cause", err.Error()))
		}

		var turn model.Turn
		if err := doc.DataTo(&turn); err != nil {
			return nil, goerr.Wrap(model.ErrPersistence, "failed to decode turn", goerr.V("session_id", id))
		}
		turns = append(turns, &turn)
	}

	return turns, nil
}

func (r *Firestore) LatestSessionID(ctx context.Context) (model.SessionID, bool, error) {
	sessions, err := r.ListSessions(ctx, 1)
	if err != nil {
		return "", false, err
	}
	if len(sessions) == 0 {
		return "", false, nil
	}
	return sessions[0].ID, true, nil
}

func (r *Firestore) ListSessions(ctx context.Context, limit int) ([]*model.Session, error) {
	if limit <= 0 {
		limit = 10
	}

	iter := r.client.Collection(collectionSessions).
		OrderBy("CreatedAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var sessions []*model.Session
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(model.ErrPersistence, "failed to list sessions", goerr.V("cause", err.Error()))
		}

		var session model.Session
		if err := doc.DataTo(&session); err != nil {
			return nil, goerr.Wrap(model.ErrPersistence, "failed to decode session")
		}
		sessions = append(sessions, &session)
	}

	return sessions, nil
}

func (r *Firestore) SetSessionModel(ctx context.Context, id model.SessionID, modelID model.ModelID) error {
	_, err := r.sessionDoc(id).Update(ctx, []firestore.Update{
		{Path: "Model", Value: string(modelID)},
	})
	if status.Code(err) == codes.NotFound {
		return goerr.Wrap(model.ErrSessionNotFound, "no such session", goerr.V("session_id", id))
	}
	if err != nil {
		return goerr.Wrap(model.ErrPersistence, "failed to update session model",
			goerr.V("session_id", id), goerr.V("cause", err.Error()))
	}
	return nil
}
