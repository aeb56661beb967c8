package adapter

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// Transcriber converts a recorded audio file to text
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// VoiceRecorder captures speech for a bounded duration and returns the
// transcribed text. Failures wrap model.ErrVoiceCapture and never leave
// partial state behind.
type VoiceRecorder interface {
	Record(ctx context.Context, duration time.Duration) (string, error)
}

// MicRecorder records from the default input device with ffmpeg and hands
// the WAV to a Transcriber.
type MicRecorder struct {
	transcriber Transcriber
	command     string
}

func NewMicRecorder(transcriber Transcriber) *MicRecorder {
	return &MicRecorder{
		transcriber: transcriber,
		command:     "ffmpeg",
	}
}

func (r *MicRecorder) Record(ctx context.Context, duration time.Duration) (string, error) {
	if duration <= 0 {
		duration = 5 * time.Second
	}

	tmp := filepath.Join(os.TempDir(), "openss_voice.wav")
	defer os.Remove(tmp)

	// A grace period on top of the recording duration so a hung device
	// open cannot wedge the process.
	recordCtx, cancel := context.WithTimeout(ctx, duration+10*time.Second)
	defer cancel()

	args := recordArgs(duration, tmp)
	if err := exec.CommandContext(recordCtx, r.command, args...).Run(); err != nil {
		if errors.Is(recordCtx.Err(), context.DeadlineExceeded) {
			return "", goerr.Wrap(model.ErrVoiceCapture, "recording timed out")
		}
		return "", goerr.Wrap(model.ErrVoiceCapture, "recording failed", goerr.V("cause", err.Error()))
	}

	text, err := r.transcriber.Transcribe(ctx, tmp)
	if err != nil {
		if errors.Is(err, model.ErrVoiceCapture) {
			return "", err
		}
		return "", goerr.Wrap(model.ErrVoiceCapture, "transcription failed", goerr.V("cause", err.Error()))
	}
	return text, nil
}

func recordArgs(duration time.Duration, outPath string) []string {
	seconds := strconv.Itoa(int(duration.Round(time.Second) / time.Second))

	var input []string
	switch runtime.GOOS {
	case "darwin":
		input = []string{"-f", "avfoundation", "-i", ":0"}
	default:
		input = []string{"-f", "alsa", "-i", "default"}
	}

	args := []string{"-hide_banner", "-loglevel", "error", "-y"}
	args = append(args, input...)
	return append(args, "-t", seconds, "-ac", "1", "-ar", "16000", outPath)
}
