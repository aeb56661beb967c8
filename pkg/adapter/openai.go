package adapter

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient implements Completer and Transcriber on the OpenAI API
type OpenAIClient struct {
	client openai.Client
}

type OpenAIOption func(*[]option.RequestOption)

// WithBaseURL points the client at an OpenAI-compatible endpoint
func WithBaseURL(baseURL string) OpenAIOption {
	return func(opts *[]option.RequestOption) {
		*opts = append(*opts, option.WithBaseURL(baseURL))
	}
}

func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAIClient {
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	for _, opt := range opts {
		opt(&reqOpts)
	}

	return &OpenAIClient{client: openai.NewClient(reqOpts...)}
}

func (c *OpenAIClient) Complete(ctx context.Context, modelName string, messages []model.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(modelName),
		Messages: toOpenAIMessages(messages),
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classifyOpenAIError(err, modelName)
	}

	if len(resp.Choices) == 0 {
		return "", goerr.Wrap(model.ErrProviderPermanent, "empty completion response",
			goerr.V("model", modelName))
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcribe converts a recorded audio file to text with Whisper
func (c *OpenAIClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", goerr.Wrap(model.ErrVoiceCapture, "failed to open recording",
			goerr.V("path", audioPath))
	}
	defer f.Close()

	resp, err := c.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModelWhisper1,
		File:  openai.File(f, filepath.Base(audioPath), "audio/wav"),
	})
	if err != nil {
		return "", goerr.Wrap(model.ErrVoiceCapture, "transcription failed",
			goerr.V("cause", err.Error()))
	}
	return resp.Text, nil
}

func toOpenAIMessages(messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case model.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Text))
		default:
			out = append(out, openai.UserMessage(msg.Text))
		}
	}
	return out
}

// classifyOpenAIError maps API failures onto the transient/permanent
// taxonomy. Rate limits, server errors, and deadline hits are worth one
// retry; everything else is surfaced immediately.
func classifyOpenAIError(err error, modelName string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return goerr.Wrap(model.ErrProviderTransient, "completion call timed out",
			goerr.V("model", modelName))
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable:
			return goerr.Wrap(model.ErrProviderTransient, "provider unavailable",
				goerr.V("model", modelName), goerr.V("status", apiErr.StatusCode))
		}
		return goerr.Wrap(model.ErrProviderPermanent, "provider rejected request",
			goerr.V("model", modelName), goerr.V("status", apiErr.StatusCode))
	}

	// Network-level failures are usually transient
	return goerr.Wrap(model.ErrProviderTransient, "completion call failed",
		goerr.V("model", modelName), goerr.V("cause", err.Error()))
}
