package adapter

import (
	"context"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// Completer is a single completion provider: it turns an ordered message
// transcript into one assistant reply using a provider-native model name.
// Failures wrap model.ErrProviderTransient or model.ErrProviderPermanent.
type Completer interface {
	Complete(ctx context.Context, modelName string, messages []model.Message) (string, error)
}

// Completers dispatches by the provider tag of a ModelID. Callers never
// branch on provider identity themselves.
type Completers struct {
	providers map[model.Provider]Completer
}

func NewCompleters() *Completers {
	return &Completers{providers: make(map[model.Provider]Completer)}
}

// Register binds a provider tag to its client
func (c *Completers) Register(provider model.Provider, completer Completer) {
	c.providers[provider] = completer
}

// Complete resolves the provider from the model id and delegates
func (c *Completers) Complete(ctx context.Context, id model.ModelID, messages []model.Message) (string, error) {
	provider, name, err := id.Parse()
	if err != nil {
		return "", goerr.Wrap(model.ErrProviderPermanent, "invalid model id", goerr.V("model", id))
	}

	completer, ok := c.providers[provider]
	if !ok {
		return "", goerr.Wrap(model.ErrProviderPermanent, "provider not configured",
			goerr.V("provider", provider))
	}

	return completer.Complete(ctx, name, messages)
}
