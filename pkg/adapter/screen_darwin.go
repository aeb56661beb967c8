//go:build darwin

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// listScript dumps on-screen windows (front-to-back, as CGWindowList
// reports them) and display frames as JSON via the JavaScript OSA bridge.
const listScript = `
ObjC.import('CoreGraphics');
ObjC.import('AppKit');

const out = { windows: [], displays: [] };

const wins = $.CFBridgingRelease($.CGWindowListCopyWindowInfo(
    $.kCGWindowListOptionOnScreenOnly, $.kCGNullWindowID));
for (let i = 0; i < wins.count; i++) {
    const w = wins.objectAtIndex(i);
    const bounds = w.objectForKey('kCGWindowBounds');
    const alpha = w.objectForKey('kCGWindowAlpha');
    out.windows.push({
        id: w.objectForKey('kCGWindowNumber').integerValue,
        owner: String(w.objectForKey('kCGWindowOwnerName') || ''),
        layer: w.objectForKey('kCGWindowLayer').integerValue,
        alpha: alpha ? alpha.doubleValue : 1,
        x: bounds.objectForKey('X').doubleValue,
        y: bounds.objectForKey('Y').doubleValue,
        w: bounds.objectForKey('Width').doubleValue,
        h: bounds.objectForKey('Height').doubleValue,
    });
}

const screens = $.NSScreen.screens;
for (let i = 0; i < screens.count; i++) {
    const f = screens.objectAtIndex(i).frame;
    out.displays.push({
        id: i + 1,
        x: f.origin.x, y: f.origin.y,
        w: f.size.width, h: f.size.height,
    });
}

JSON.stringify(out);
`

// Screen implements WindowLister and ScreenCapturer on macOS via osascript
// and the screencapture binary.
type Screen struct{}

func NewScreen() *Screen {
	return &Screen{}
}

type windowListOutput struct {
	Windows []struct {
		ID    int64   `json:"id"`
		Owner string  `json:"owner"`
		Layer int     `json:"layer"`
		Alpha float64 `json:"alpha"`
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		W     float64 `json:"w"`
		H     float64 `json:"h"`
	} `json:"windows"`
	Displays []struct {
		ID int64   `json:"id"`
		X  float64 `json:"x"`
		Y  float64 `json:"y"`
		W  float64 `json:"w"`
		H  float64 `json:"h"`
	} `json:"displays"`
}

func (s *Screen) list(ctx context.Context) (*windowListOutput, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-l", "JavaScript", "-e", listScript)
	raw, err := cmd.Output()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to enumerate windows")
	}

	var out windowListOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, goerr.Wrap(err, "failed to parse window list")
	}
	return &out, nil
}

func (s *Screen) ListWindows(ctx context.Context) ([]model.Window, error) {
	out, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	windows := make([]model.Window, 0, len(out.Windows))
	for _, w := range out.Windows {
		windows = append(windows, model.Window{
			ID:     w.ID,
			Owner:  w.Owner,
			Layer:  w.Layer,
			Alpha:  w.Alpha,
			Bounds: model.Rect{X: w.X, Y: w.Y, Width: w.W, Height: w.H},
		})
	}
	return windows, nil
}

func (s *Screen) ListDisplays(ctx context.Context) ([]model.Display, error) {
	out, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	displays := make([]model.Display, 0, len(out.Displays))
	for _, d := range out.Displays {
		displays = append(displays, model.Display{
			ID:     d.ID,
			Bounds: model.Rect{X: d.X, Y: d.Y, Width: d.W, Height: d.H},
		})
	}
	return displays, nil
}

// captureArgs targets the window directly when one was resolved, so
// occluding windows never leak into the artifact. Display fallbacks have
// no window id and use the rectangle form.
func captureArgs(region *model.CaptureRegion, outPath string) []string {
	args := []string{"-x"}
	if region.WindowID != 0 {
		args = append(args, "-l", strconv.FormatInt(region.WindowID, 10))
	} else {
		args = append(args, fmt.Sprintf("-R%.0f,%.0f,%.0f,%.0f",
			region.Region.X, region.Region.Y, region.Region.Width, region.Region.Height))
	}
	return append(args, outPath)
}

func (s *Screen) Capture(ctx context.Context, region *model.CaptureRegion, outPath string) error {
	cmd := exec.CommandContext(ctx, "screencapture", captureArgs(region, outPath)...)
	if err := cmd.Run(); err != nil {
		return goerr.Wrap(err, "screencapture failed",
			goerr.V("window_id", region.WindowID), goerr.V("display_id", region.DisplayID))
	}

	if region.Mask != nil {
		if err := maskFile(outPath, region.Region, *region.Mask); err != nil {
			return err
		}
	}
	return nil
}
