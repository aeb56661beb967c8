package cli

import (
	"bytes"
	"testing"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/Mide6x/OpenSS/pkg/usecase/session"
	"github.com/m-mizutani/gt"
)

func TestExtractCodeBlock(t *testing.T) {
	answer := "Here you go:\n```python\nprint(\"hi\")\n```\nDone."
	gt.Equal(t, extractCodeBlock(answer), "print(\"hi\")")
}

func TestExtractCodeBlockNoLanguageTag(t *testing.T) {
	answer := "```\nSELECT 1;\n```"
	gt.Equal(t, extractCodeBlock(answer), "SELECT 1;")
}

func TestExtractCodeBlockFirstOfMany(t *testing.T) {
	answer := "```go\nfirst\n```\ntext\n```go\nsecond\n```"
	gt.Equal(t, extractCodeBlock(answer), "first")
}

func TestExtractCodeBlockAbsent(t *testing.T) {
	gt.Equal(t, extractCodeBlock("plain answer, no code"), "")
}

func TestPrintOutcomeWithCapture(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Autocopy = false

	var buf bytes.Buffer
	printOutcome(&buf, cfg, &session.Outcome{
		Answer:       "1. 4",
		ArtifactPath: "/tmp/ss_x.png",
		OCRText:      "What is 2+2?",
	})

	gt.S(t, buf.String()).Contains("What is 2+2?")
	gt.S(t, buf.String()).Contains("1. 4")
}

func TestPrintOutcomeTruncatesPreview(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Autocopy = false
	cfg.MaxOCRPreview = 10

	long := "0123456789ABCDEF"
	var buf bytes.Buffer
	printOutcome(&buf, cfg, &session.Outcome{
		Answer:       "done",
		ArtifactPath: "/tmp/ss_x.png",
		OCRText:      long,
	})

	gt.S(t, buf.String()).Contains("0123456789...")
	gt.S(t, buf.String()).NotContains("ABCDEF")
}

func TestPrintOutcomeLowConfidence(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Autocopy = false

	var buf bytes.Buffer
	printOutcome(&buf, cfg, &session.Outcome{
		Answer:        "I cannot read the screen",
		ArtifactPath:  "/tmp/ss_x.png",
		LowConfidence: true,
	})

	gt.S(t, buf.String()).Contains("no text recognized")
}
