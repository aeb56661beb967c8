package session

import (
	"context"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// AskInput parameterizes a direct question with no capture
type AskInput struct {
	Title string
	Text  string
}

// Ask sends literal text to the model and persists a new session holding
// the exchange. The capture and extraction phases are skipped.
func (uc *UseCase) Ask(ctx context.Context, input AskInput) (*Outcome, error) {
	defer uc.setState(ctx, StateReady)

	if input.Text == "" {
		return nil, goerr.New("no question provided")
	}

	title := input.Title
	if title == "" {
		title = "Ask: " + truncateTitle(input.Text, 30)
	}

	uc.setState(ctx, StateComposing)
	prompt := renderPrompt(uc.cfg.PromptGeneral, map[string]string{"question": input.Text})

	uc.setState(ctx, StateAwaitingModel)
	answer, err := uc.complete(ctx, uc.cfg.Model, []model.Message{{Role: model.RoleUser, Text: prompt}})
	if err != nil {
		return nil, err
	}

	now := uc.now()
	session := model.NewSession(title, uc.cfg.Model, now)
	userTurn := model.NewTurn(session.ID, model.RoleUser, input.Text, now)
	assistantTurn := model.NewTurn(session.ID, model.RoleAssistant, answer, now)

	if err := uc.persist(ctx, session, userTurn, assistantTurn); err != nil {
		return nil, err
	}

	return &Outcome{Session: session, Question: input.Text, Answer: answer}, nil
}

// Followup extends an existing session by one user/assistant exchange.
// The prompt carries the transcript tail bounded by max_context_chars.
// Completion failure appends nothing.
func (uc *UseCase) Followup(ctx context.Context, sessionID model.SessionID, question string) (*Outcome, error) {
	defer uc.setState(ctx, StateReady)

	if question == "" {
		return nil, goerr.New("no question provided")
	}

	session, err := uc.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	turns, err := uc.repo.GetTurns(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	uc.setState(ctx, StateComposing)
	prompt := renderPrompt(uc.cfg.PromptFollowup, map[string]string{
		"context":  transcript(turns, uc.cfg.MaxContextChars),
		"question": question,
	})

	uc.setState(ctx, StateAwaitingModel)
	answer, err := uc.complete(ctx, session.Model, []model.Message{{Role: model.RoleUser, Text: prompt}})
	if err != nil {
		return nil, err
	}

	uc.setState(ctx, StatePersisting)
	now := uc.now()
	userTurn := model.NewTurn(session.ID, model.RoleUser, question, now)
	assistantTurn := model.NewTurn(session.ID, model.RoleAssistant, answer, now)
	if err := uc.repo.AppendTurns(ctx, session.ID, userTurn, assistantTurn); err != nil {
		return nil, err
	}

	return &Outcome{Session: session, Question: question, Answer: answer}, nil
}
