package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/Mide6x/OpenSS/pkg/adapter"
	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/Mide6x/OpenSS/pkg/repository"
	"github.com/Mide6x/OpenSS/pkg/utils/logging"
)

// State names the current phase of the session state machine. One
// foreground action runs at a time; states exist for observability and to
// reject model switches while a completion call is in flight.
type State string

const (
	StateIdle          State = "idle"
	StateCapturing     State = "capturing"
	StateExtracting    State = "extracting"
	StateComposing     State = "composing"
	StateAwaitingModel State = "awaiting_model"
	StatePersisting    State = "persisting"
	StateReady         State = "ready"
)

// UseCase drives the capture-to-conversation pipeline: it accepts user
// actions, coordinates the capture/extraction/completion collaborators,
// and appends turns to the conversation store.
//
// The active session is always passed explicitly; there is no ambient
// current-session pointer.
type UseCase struct {
	repo       repository.Repository
	completers *adapter.Completers
	extractor  adapter.Extractor
	fallback   adapter.Extractor // optional multimodal fallback for empty OCR
	windows    adapter.WindowLister
	screen     adapter.ScreenCapturer
	recorder   adapter.VoiceRecorder
	cfg        *model.Config
	workDir    string
	now        func() time.Time

	mu    sync.Mutex
	state State
}

// NewInput contains the collaborators for a UseCase. Repo, Completers and
// Config are required; capture and voice collaborators may be nil when the
// corresponding actions are not used (e.g. ask-only invocations).
type NewInput struct {
	Repo       repository.Repository
	Completers *adapter.Completers
	Extractor  adapter.Extractor
	Fallback   adapter.Extractor
	Windows    adapter.WindowLister
	Screen     adapter.ScreenCapturer
	Recorder   adapter.VoiceRecorder
	Config     *model.Config
	WorkDir    string
	Now        func() time.Time
}

func New(input NewInput) *UseCase {
	now := input.Now
	if now == nil {
		now = time.Now
	}
	return &UseCase{
		repo:       input.Repo,
		completers: input.Completers,
		extractor:  input.Extractor,
		fallback:   input.Fallback,
		windows:    input.Windows,
		screen:     input.Screen,
		recorder:   input.Recorder,
		cfg:        input.Config,
		workDir:    input.WorkDir,
		now:        now,
		state:      StateIdle,
	}
}

// Outcome is the result of one completed action
type Outcome struct {
	Session       *model.Session
	Question      string
	Answer        string
	ArtifactPath  string
	OCRText       string
	LowConfidence bool
}

func (uc *UseCase) setState(ctx context.Context, state State) {
	uc.mu.Lock()
	uc.state = state
	uc.mu.Unlock()
	logging.From(ctx).Debug("session state", "state", state)
}

// State returns the machine's current state
func (uc *UseCase) State() State {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state
}

// complete invokes the completion collaborator with one automatic retry on
// transient failure. Nothing is persisted until it succeeds, so a failure
// here leaves the session's turn count untouched.
func (uc *UseCase) complete(ctx context.Context, modelID model.ModelID, messages []model.Message) (string, error) {
	answer, err := uc.completers.Complete(ctx, modelID, messages)
	if err != nil && errors.Is(err, model.ErrProviderTransient) {
		logging.From(ctx).Warn("transient provider failure, retrying once", "model", modelID, "error", err)
		answer, err = uc.completers.Complete(ctx, modelID, messages)
	}
	return answer, err
}

// persist creates the session and appends both turns of the exchange.
// Called only after the completion succeeded.
func (uc *UseCase) persist(ctx context.Context, session *model.Session, turns ...*model.Turn) error {
	uc.setState(ctx, StatePersisting)
	if err := uc.repo.CreateSession(ctx, session); err != nil {
		return err
	}
	return uc.repo.AppendTurns(ctx, session.ID, turns...)
}

// transcript renders prior turns as a context block bounded by
// max_context_chars, keeping the most recent tail.
func transcript(turns []*model.Turn, maxChars int) string {
	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		label := "User"
		if turn.Role == model.RoleAssistant {
			label = "Assistant"
		}
		lines = append(lines, label+": "+turn.Text)
	}

	out := strings.Join(lines, "\n")
	if maxChars > 0 && len(out) > maxChars {
		// Keep the tail, advancing past any partial rune at the cut point
		cut := len(out) - maxChars
		for cut < len(out) && !utf8.RuneStart(out[cut]) {
			cut++
		}
		out = out[cut:]
	}
	return out
}

func renderPrompt(template string, vars map[string]string) string {
	out := template
	for key, value := range vars {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}

func truncateTitle(text string, limit int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
