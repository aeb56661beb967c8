package adapter

import (
	"context"
	"errors"
	"strings"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"
)

// GeminiClient implements Completer on the Gemini API. It also serves as
// the multimodal fallback: when OCR yields nothing, the raw capture can be
// handed to a vision model instead of text.
type GeminiClient struct {
	client      *genai.Client
	visionModel string
}

type GeminiOption func(*GeminiClient)

// WithVisionModel sets the model used for image analysis
func WithVisionModel(modelName string) GeminiOption {
	return func(g *GeminiClient) {
		g.visionModel = modelName
	}
}

func NewGemini(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create genai client")
	}

	g := &GeminiClient{
		client:      client,
		visionModel: "gemini-2.5-flash",
	}

	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *GeminiClient) Complete(ctx context.Context, modelName string, messages []model.Message) (string, error) {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		role := genai.RoleUser
		if msg.Role == model.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Text, genai.Role(role)))
	}

	resp, err := g.client.Models.GenerateContent(ctx, modelName, contents, nil)
	if err != nil {
		return "", classifyGeminiError(err, modelName)
	}

	text := responseText(resp)
	if text == "" {
		return "", goerr.Wrap(model.ErrProviderPermanent, "empty completion response",
			goerr.V("model", modelName))
	}
	return text, nil
}

// AnalyzeImage sends a captured image to the vision model together with an
// instruction prompt and returns the model's answer.
func (g *GeminiClient) AnalyzeImage(ctx context.Context, imageData []byte, prompt string) (string, error) {
	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(imageData, "image/png"),
		genai.NewPartFromText(prompt),
	}, genai.RoleUser)

	resp, err := g.client.Models.GenerateContent(ctx, g.visionModel, []*genai.Content{content}, nil)
	if err != nil {
		return "", classifyGeminiError(err, g.visionModel)
	}

	return responseText(resp), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			parts = append(parts, part.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func classifyGeminiError(err error, modelName string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return goerr.Wrap(model.ErrProviderTransient, "completion call timed out",
			goerr.V("model", modelName))
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503:
			return goerr.Wrap(model.ErrProviderTransient, "provider unavailable",
				goerr.V("model", modelName), goerr.V("status", apiErr.Code))
		}
		return goerr.Wrap(model.ErrProviderPermanent, "provider rejected request",
			goerr.V("model", modelName), goerr.V("status", apiErr.Code))
	}

	return goerr.Wrap(model.ErrProviderTransient, "completion call failed",
		goerr.V("model", modelName), goerr.V("cause", err.Error()))
}
