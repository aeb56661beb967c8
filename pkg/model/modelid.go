package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// ModelID identifies a completion model as "provider/model",
// e.g. "openai/gpt-4o-mini" or "gemini/gemini-2.5-flash".
type ModelID string

const DefaultModelID ModelID = "openai/gpt-4o-mini"

// Parse splits a ModelID into provider tag and provider-native model name
func (m ModelID) Parse() (Provider, string, error) {
	provider, name, ok := strings.Cut(string(m), "/")
	if !ok || provider == "" || name == "" {
		return "", "", goerr.New("invalid model id, expected provider/model", goerr.V("model", m))
	}
	return Provider(provider), name, nil
}

func (m ModelID) Validate() error {
	provider, _, err := m.Parse()
	if err != nil {
		return err
	}
	switch provider {
	case ProviderOpenAI, ProviderGemini:
		return nil
	default:
		return goerr.New("unknown provider", goerr.V("provider", provider))
	}
}

// ModelEntry is one selectable model in the switch-model catalog
type ModelEntry struct {
	ID          ModelID
	Name        string
	Description string
}

// Catalog lists the models offered by the /model command. Any valid
// provider/model id is accepted; this is only the menu.
func Catalog() []ModelEntry {
	return []ModelEntry{
		{ID: "openai/gpt-4o-mini", Name: "GPT-4o mini", Description: "Fast, smart, and extremely cheap (best for most tasks)"},
		{ID: "openai/gpt-4o", Name: "GPT-4o", Description: "Flagship model, high performance, standard cost"},
		{ID: "openai/o3-mini", Name: "o3-mini", Description: "Reasoning model, fast and very smart"},
		{ID: "gemini/gemini-2.5-flash", Name: "Gemini 2.5 Flash", Description: "Low latency, strong multimodal understanding"},
		{ID: "gemini/gemini-2.5-pro", Name: "Gemini 2.5 Pro", Description: "Strongest Gemini model for hard questions"},
	}
}
