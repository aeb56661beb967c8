//go:build darwin

package adapter

import (
	"testing"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/gt"
)

func TestCaptureArgsTargetsWindowByID(t *testing.T) {
	region := &model.CaptureRegion{
		Target:   model.TargetChrome,
		WindowID: 101,
		Region:   model.Rect{X: 100, Y: 50, Width: 1200, Height: 800},
	}

	args := captureArgs(region, "/tmp/out.png")
	gt.Equal(t, args, []string{"-x", "-l", "101", "/tmp/out.png"})
}

func TestCaptureArgsDisplayFallbackUsesRect(t *testing.T) {
	mask := model.Rect{X: 400, Y: 300, Width: 900, Height: 600}
	region := &model.CaptureRegion{
		Target:    model.TargetTerminalFallback,
		DisplayID: 1,
		Region:    model.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
		Mask:      &mask,
	}

	args := captureArgs(region, "/tmp/out.png")
	gt.Equal(t, args, []string{"-x", "-R0,0,1920,1080", "/tmp/out.png"})
}
