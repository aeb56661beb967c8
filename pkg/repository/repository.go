package repository

import (
	"context"

	"github.com/Mide6x/OpenSS/pkg/model"
)

// Repository is the conversation store: a durable mapping from session id
// to session metadata and an append-only transcript of turns.
//
// AppendTurns is safe to call concurrently for different session ids; only
// one in-flight append per id is assumed (the session usecase processes one
// foreground action at a time).
type Repository interface {
	// CreateSession stores a new session document
	CreateSession(ctx context.Context, session *model.Session) error

	// GetSession retrieves a session by id, or model.ErrSessionNotFound
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)

	// AppendTurns atomically appends turns to a session's transcript and
	// bumps the session's LastActive. Either every turn lands or none does.
	AppendTurns(ctx context.Context, id model.SessionID, turns ...*model.Turn) error

	// GetTurns returns a session's turns in append order
	GetTurns(ctx context.Context, id model.SessionID) ([]*model.Turn, error)

	// LatestSessionID returns the most recently created session id.
	// ok is false when the store is empty.
	LatestSessionID(ctx context.Context) (id model.SessionID, ok bool, err error)

	// ListSessions returns at most limit sessions, newest first by CreatedAt
	ListSessions(ctx context.Context, limit int) ([]*model.Session, error)

	// SetSessionModel updates only the session's model field
	SetSessionModel(ctx context.Context, id model.SessionID, modelID model.ModelID) error

	// Close releases the underlying client
	Close() error
}
