package adapter

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// Extractor turns a capture artifact into text. Empty text is a valid
// result; classifying it as low confidence is the caller's decision.
// Implementations must honor the context deadline and report overruns as
// model.ErrExtractionTimeout.
type Extractor interface {
	Extract(ctx context.Context, path string, level model.RecognitionLevel) (string, error)
}

// CommandOCR shells out to an OCR command that prints recognized text to
// stdout, e.g. the bundled recognizer helper or tesseract. The command
// receives "--level <accurate|fast>", one "--lang <tag>" per configured
// language, then the image path.
type CommandOCR struct {
	command   string
	languages []string
	timeout   time.Duration
}

type CommandOCROption func(*CommandOCR)

func WithOCRLanguages(languages []string) CommandOCROption {
	return func(o *CommandOCR) {
		o.languages = languages
	}
}

func WithOCRTimeout(timeout time.Duration) CommandOCROption {
	return func(o *CommandOCR) {
		o.timeout = timeout
	}
}

func NewCommandOCR(command string, opts ...CommandOCROption) *CommandOCR {
	o := &CommandOCR{
		command: command,
		timeout: 20 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *CommandOCR) Extract(ctx context.Context, path string, level model.RecognitionLevel) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	args := []string{"--level", string(level)}
	for _, lang := range o.languages {
		args = append(args, "--lang", lang)
	}
	args = append(args, path)

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, o.command, args...)
	cmd.Stdout = &stdout

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", goerr.Wrap(model.ErrExtractionTimeout, "ocr command timed out",
			goerr.V("command", o.command), goerr.V("path", path))
	}
	if err != nil {
		return "", goerr.Wrap(err, "ocr command failed", goerr.V("command", o.command))
	}

	return strings.TrimSpace(stdout.String()), nil
}

const transcribePrompt = "Transcribe all readable text in this screenshot. " +
	"Output the text content only, preserving line structure. " +
	"If there is no readable text, output nothing."

// GeminiExtractor extracts text by handing the raw image to a vision
// model. Used when no OCR command is available, and as the multimodal
// fallback for low-confidence OCR results.
type GeminiExtractor struct {
	gemini  *GeminiClient
	timeout time.Duration
}

func NewGeminiExtractor(gemini *GeminiClient, timeout time.Duration) *GeminiExtractor {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &GeminiExtractor{gemini: gemini, timeout: timeout}
}

func (e *GeminiExtractor) Extract(ctx context.Context, path string, _ model.RecognitionLevel) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read artifact", goerr.V("path", path))
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	text, err := e.gemini.AnalyzeImage(ctx, data, transcribePrompt)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", goerr.Wrap(model.ErrExtractionTimeout, "vision extraction timed out", goerr.V("path", path))
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}
