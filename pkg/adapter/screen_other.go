//go:build !darwin

package adapter

import (
	"context"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// Screen is a placeholder on non-macOS platforms; window enumeration and
// pixel capture are only wired for darwin.
type Screen struct{}

func NewScreen() *Screen {
	return &Screen{}
}

func (s *Screen) ListWindows(ctx context.Context) ([]model.Window, error) {
	return nil, goerr.Wrap(model.ErrNoCaptureTarget, "screen capture is not supported on this platform")
}

func (s *Screen) ListDisplays(ctx context.Context) ([]model.Display, error) {
	return nil, goerr.Wrap(model.ErrNoCaptureTarget, "screen capture is not supported on this platform")
}

func (s *Screen) Capture(ctx context.Context, region *model.CaptureRegion, outPath string) error {
	return goerr.Wrap(model.ErrNoCaptureTarget, "screen capture is not supported on this platform")
}
