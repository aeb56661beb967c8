package cli

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/Mide6x/OpenSS/pkg/usecase/session"
	"github.com/atotto/clipboard"
	"github.com/briandowns/spinner"
)

var codeBlockRe = regexp.MustCompile("(?s)```[a-zA-Z0-9+_.-]*\n?(.*?)```")

// extractCodeBlock returns the contents of the first fenced code block, or
// "" when the answer has none.
func extractCodeBlock(text string) string {
	m := codeBlockRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// autocopy places the answer (or its first code block) on the clipboard
// according to the configured mode. Clipboard failures are reported but
// never fail the command.
func autocopy(w io.Writer, cfg *model.Config, answer string) {
	if !cfg.Autocopy {
		return
	}

	text := answer
	if cfg.AutocopyMode == "code" {
		if code := extractCodeBlock(answer); code != "" {
			text = code
		}
	}

	if err := clipboard.WriteAll(text); err != nil {
		fmt.Fprintf(w, "(clipboard copy failed: %v)\n", err)
		return
	}
	fmt.Fprintf(w, "(copied to clipboard)\n")
}

// printOutcome renders one completed exchange: the OCR preview when a
// capture happened, then the answer.
func printOutcome(w io.Writer, cfg *model.Config, out *session.Outcome) {
	if out.ArtifactPath != "" {
		preview := out.OCRText
		if cfg.MaxOCRPreview > 0 && len(preview) > cfg.MaxOCRPreview {
			preview = preview[:cfg.MaxOCRPreview] + "..."
		}
		if out.LowConfidence {
			fmt.Fprintf(w, "[no text recognized in capture]\n")
		} else {
			fmt.Fprintf(w, "--- extracted text ---\n%s\n", preview)
		}
		fmt.Fprintf(w, "--- answer ---\n")
	}

	fmt.Fprintf(w, "%s\n", out.Answer)
	autocopy(w, cfg, out.Answer)
}

// working shows a spinner while a long operation runs, returning a stop
// function. Output goes to stderr so answers stay clean on stdout.
func working(message string) func() {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}
