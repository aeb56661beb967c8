package model

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

type SessionID string

// NewSessionID generates a new unique SessionID. ULIDs embed the creation
// time at millisecond granularity, so identifiers sort by recency.
func NewSessionID() SessionID {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return SessionID(ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String())
}

type TurnID string

// NewTurnID generates a new unique TurnID
func NewTurnID() TurnID {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return TurnID(ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String())
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Session represents a persisted, resumable conversation
type Session struct {
	ID         SessionID
	Title      string
	Model      ModelID
	CreatedAt  time.Time
	LastActive time.Time
}

// NewSession creates a session with an auto-generated title when none is given
func NewSession(title string, modelID ModelID, now time.Time) *Session {
	if title == "" {
		title = "Screenshot session " + now.Format("2006-01-02 15:04:05")
	}
	return &Session{
		ID:         NewSessionID(),
		Title:      title,
		Model:      modelID,
		CreatedAt:  now,
		LastActive: now,
	}
}

// Turn is one message within a session's transcript. The turn sequence is
// append-only; ImagePath is a weak reference to a capture artifact and the
// text remains valid after the artifact is swept.
type Turn struct {
	ID        TurnID
	SessionID SessionID
	Role      Role
	Text      string
	ImagePath string
	CreatedAt time.Time
}

func NewTurn(sessionID SessionID, role Role, text string, now time.Time) *Turn {
	return &Turn{
		ID:        NewTurnID(),
		SessionID: sessionID,
		Role:      role,
		Text:      text,
		CreatedAt: now,
	}
}

// Message is a role+text pair sent to a completion provider
type Message struct {
	Role Role
	Text string
}
