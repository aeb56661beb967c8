package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// Memory implements Repository in process memory. Used by tests and by
// --store memory runs where durability is not wanted.
type Memory struct {
	mu       sync.Mutex
	sessions map[model.SessionID]*model.Session
	turns    map[model.SessionID][]*model.Turn
}

func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[model.SessionID]*model.Session),
		turns:    make(map[model.SessionID][]*model.Turn),
	}
}

func (r *Memory) Close() error { return nil }

func (r *Memory) CreateSession(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; ok {
		return goerr.Wrap(model.ErrPersistence, "session already exists", goerr.V("session_id", session.ID))
	}
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *Memory) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrSessionNotFound, "no such session", goerr.V("session_id", id))
	}
	copied := *session
	return &copied, nil
}

func (r *Memory) AppendTurns(ctx context.Context, id model.SessionID, turns ...*model.Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return goerr.Wrap(model.ErrSessionNotFound, "no such session", goerr.V("session_id", id))
	}

	for _, turn := range turns {
		copied := *turn
		r.turns[id] = append(r.turns[id], &copied)
	}
	session.LastActive = time.Now()
	return nil
}

func (r *Memory) GetTurns(ctx context.Context, id model.SessionID) ([]*model.Turn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	turns := make([]*model.Turn, 0, len(r.turns[id]))
	for _, turn := range r.turns[id] {
		copied := *turn
		turns = append(turns, &copied)
	}
	return turns, nil
}

func (r *Memory) LatestSessionID(ctx context.Context) (model.SessionID, bool, error) {
	sessions, err := r.ListSessions(ctx, 1)
	if err != nil {
		return "", false, err
	}
	if len(sessions) == 0 {
		return "", false, nil
	}
	return sessions[0].ID, true, nil
}

func (r *Memory) ListSessions(ctx context.Context, limit int) ([]*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = 10
	}

	sessions := make([]*model.Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		copied := *session
		sessions = append(sessions, &copied)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
		}
		// ULIDs embed creation time, so id order breaks exact-timestamp ties
		return sessions[i].ID > sessions[j].ID
	})

	if len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func (r *Memory) SetSessionModel(ctx context.Context, id model.SessionID, modelID model.ModelID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return goerr.Wrap(model.ErrSessionNotFound, "no such session", goerr.V("session_id", id))
	}
	session.Model = modelID
	return nil
}
