package capture_test

import (
	"errors"
	"testing"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/Mide6x/OpenSS/pkg/usecase/capture"
	"github.com/m-mizutani/gt"
)

var testDisplays = []model.Display{
	{ID: 1, Bounds: model.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}},
	{ID: 2, Bounds: model.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}},
}

func chromeWindow() model.Window {
	return model.Window{
		ID: 101, Owner: "Google Chrome", Layer: 0, Alpha: 1,
		Bounds: model.Rect{X: 100, Y: 50, Width: 1200, Height: 800},
	}
}

func terminalWindow() model.Window {
	return model.Window{
		ID: 202, Owner: "iTerm2", Layer: 0, Alpha: 1,
		Bounds: model.Rect{X: 400, Y: 300, Width: 900, Height: 600},
	}
}

func TestResolveChromeInFront(t *testing.T) {
	region, err := capture.Resolve(capture.Input{
		Windows:  []model.Window{chromeWindow(), terminalWindow()},
		Displays: testDisplays,
	})
	gt.NoError(t, err)

	gt.Equal(t, region.Target, model.TargetChrome)
	gt.Equal(t, region.WindowID, int64(101))
	gt.Equal(t, region.Region, model.Rect{X: 100, Y: 50, Width: 1200, Height: 800})
	gt.True(t, region.Mask == nil)
}

func TestResolveFrontmostWinsAmongSupported(t *testing.T) {
	// The window list arrives front-to-back, so the first supported
	// window wins even when another supported app is also on screen.
	word := model.Window{
		ID: 303, Owner: "Microsoft Word", Layer: 0, Alpha: 1,
		Bounds: model.Rect{X: 0, Y: 0, Width: 800, Height: 600},
	}

	region, err := capture.Resolve(capture.Input{
		Windows:  []model.Window{word, chromeWindow(), terminalWindow()},
		Displays: testDisplays,
	})
	gt.NoError(t, err)

	gt.Equal(t, region.Target, model.TargetWord)
	gt.Equal(t, region.WindowID, int64(303))
}

func TestResolveTerminalFallback(t *testing.T) {
	region, err := capture.Resolve(capture.Input{
		Windows:  []model.Window{terminalWindow()},
		Displays: testDisplays,
	})
	gt.NoError(t, err)

	gt.Equal(t, region.Target, model.TargetTerminalFallback)
	gt.Equal(t, region.DisplayID, int64(1))
	gt.Equal(t, region.Region, testDisplays[0].Bounds)

	gt.V(t, region.Mask).NotNil()
	gt.Equal(t, *region.Mask, model.Rect{X: 400, Y: 300, Width: 900, Height: 600})
}

func TestResolveTerminalOnSecondDisplay(t *testing.T) {
	term := terminalWindow()
	term.Bounds = model.Rect{X: 2100, Y: 200, Width: 900, Height: 600}

	region, err := capture.Resolve(capture.Input{
		Windows:  []model.Window{term},
		Displays: testDisplays,
	})
	gt.NoError(t, err)

	gt.Equal(t, region.DisplayID, int64(2))
	gt.Equal(t, region.Region, testDisplays[1].Bounds)
}

func TestResolveHintSelectsBackgroundWindow(t *testing.T) {
	// An explicit hint picks chrome even when the terminal is in front
	region, err := capture.Resolve(capture.Input{
		Hint:     "chrome",
		Windows:  []model.Window{terminalWindow(), chromeWindow()},
		Displays: testDisplays,
	})
	gt.NoError(t, err)

	gt.Equal(t, region.Target, model.TargetChrome)
	gt.Equal(t, region.WindowID, int64(101))
}

func TestResolveHintNotVisibleFallsBack(t *testing.T) {
	region, err := capture.Resolve(capture.Input{
		Hint:     "powerpoint",
		Windows:  []model.Window{terminalWindow()},
		Displays: testDisplays,
	})
	gt.NoError(t, err)

	gt.Equal(t, region.Target, model.TargetTerminalFallback)
}

func TestResolveTerminalHint(t *testing.T) {
	// Asking for the terminal explicitly captures its display with the
	// terminal rectangle masked, even when a supported window is in front
	for _, hint := range []string{"terminal", "terminal-fallback"} {
		region, err := capture.Resolve(capture.Input{
			Hint:     hint,
			Windows:  []model.Window{chromeWindow(), terminalWindow()},
			Displays: testDisplays,
		})
		gt.NoError(t, err)

		gt.Equal(t, region.Target, model.TargetTerminalFallback)
		gt.Equal(t, region.DisplayID, int64(1))
		gt.V(t, region.Mask).NotNil()
		gt.Equal(t, *region.Mask, model.Rect{X: 400, Y: 300, Width: 900, Height: 600})
	}
}

func TestResolveTerminalHintWithoutTerminal(t *testing.T) {
	_, err := capture.Resolve(capture.Input{
		Hint:     "terminal",
		Windows:  []model.Window{chromeWindow()},
		Displays: testDisplays,
	})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrNoCaptureTarget))
}

func TestResolveUnknownHint(t *testing.T) {
	_, err := capture.Resolve(capture.Input{
		Hint:     "safari",
		Windows:  []model.Window{chromeWindow()},
		Displays: testDisplays,
	})
	gt.Error(t, err)
}

func TestResolveNoWindows(t *testing.T) {
	_, err := capture.Resolve(capture.Input{Displays: testDisplays})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrNoCaptureTarget))
}

func TestResolveNoSupportedWindowNoTerminal(t *testing.T) {
	finder := model.Window{
		ID: 404, Owner: "Finder", Layer: 0, Alpha: 1,
		Bounds: model.Rect{X: 0, Y: 0, Width: 500, Height: 400},
	}

	_, err := capture.Resolve(capture.Input{
		Windows:  []model.Window{finder},
		Displays: testDisplays,
	})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrNoCaptureTarget))
}

func TestResolveIgnoresInvisibleWindows(t *testing.T) {
	hidden := chromeWindow()
	hidden.Alpha = 0
	overlay := model.Window{
		ID: 505, Owner: "Google Chrome", Layer: 25, Alpha: 1,
		Bounds: model.Rect{X: 0, Y: 0, Width: 300, Height: 40},
	}

	_, err := capture.Resolve(capture.Input{
		Windows:  []model.Window{hidden, overlay},
		Displays: testDisplays,
	})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrNoCaptureTarget))
}
