package capture

import (
	"strings"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// targetOwners maps each supported capture target to the window owner
// names it matches, lowercased.
var targetOwners = map[model.CaptureTarget][]string{
	model.TargetChrome:     {"google chrome", "chrome"},
	model.TargetPowerPoint: {"microsoft powerpoint", "powerpoint"},
	model.TargetWord:       {"microsoft word", "word"},
}

// terminalOwners are the owners treated as the invoking terminal for the
// masked-display fallback.
var terminalOwners = []string{"terminal", "iterm2", "iterm"}

// Input is the live window metadata the resolver decides over
type Input struct {
	Hint     string // optional capture target name, e.g. "chrome"
	Windows  []model.Window
	Displays []model.Display
}

// Resolve picks what to capture and what to redact.
//
// A hint naming a visible supported window wins. Without a hint, the first
// supported window in the list wins; the platform window list arrives
// front-to-back, which is the documented tie-break when several supported
// windows are visible at once. Otherwise the display holding the terminal
// is captured with the terminal's own rectangle masked, so the tool never
// transmits its own terminal content unmasked.
func Resolve(in Input) (*model.CaptureRegion, error) {
	visible := visibleWindows(in.Windows)
	if len(visible) == 0 {
		return nil, goerr.Wrap(model.ErrNoCaptureTarget, "no windows on screen")
	}

	if in.Hint != "" {
		hint := model.CaptureTarget(in.Hint)
		if hint == "terminal" || hint == model.TargetTerminalFallback {
			return terminalFallback(visible, in.Displays)
		}
		owners, ok := targetOwners[hint]
		if !ok {
			return nil, goerr.New("unsupported capture target", goerr.V("target", in.Hint))
		}
		if w := findWindow(visible, owners); w != nil {
			return windowRegion(hint, w, in.Displays), nil
		}
		// Hinted target not on screen: fall back to the masked terminal display
	} else {
		for _, w := range visible {
			for target, owners := range targetOwners {
				if matchOwner(w.Owner, owners) {
					return windowRegion(target, &w, in.Displays), nil
				}
			}
		}
	}

	return terminalFallback(visible, in.Displays)
}

func visibleWindows(windows []model.Window) []model.Window {
	var out []model.Window
	for _, w := range windows {
		if w.Layer != 0 || w.Alpha == 0 || w.Bounds.Empty() {
			continue
		}
		out = append(out, w)
	}
	return out
}

func matchOwner(owner string, owners []string) bool {
	lowered := strings.ToLower(owner)
	for _, name := range owners {
		if lowered == name {
			return true
		}
	}
	return false
}

func findWindow(windows []model.Window, owners []string) *model.Window {
	for _, w := range windows {
		if matchOwner(w.Owner, owners) {
			return &w
		}
	}
	return nil
}

func windowRegion(target model.CaptureTarget, w *model.Window, displays []model.Display) *model.CaptureRegion {
	region := &model.CaptureRegion{
		Target:   target,
		WindowID: w.ID,
		Region:   w.Bounds,
	}
	if d := displayFor(w.Bounds, displays); d != nil {
		region.DisplayID = d.ID
	}
	return region
}

// displayFor returns the display with the largest overlap, covering
// windows that span multiple displays.
func displayFor(bounds model.Rect, displays []model.Display) *model.Display {
	var best *model.Display
	var bestArea float64
	for i := range displays {
		area := displays[i].Bounds.Intersect(bounds).Area()
		if best == nil || area > bestArea {
			best = &displays[i]
			bestArea = area
		}
	}
	return best
}

func terminalFallback(windows []model.Window, displays []model.Display) (*model.CaptureRegion, error) {
	term := findWindow(windows, terminalOwners)
	if term == nil {
		return nil, goerr.Wrap(model.ErrNoCaptureTarget, "no supported window and no terminal to fall back to")
	}

	display := displayFor(term.Bounds, displays)
	if display == nil {
		return nil, goerr.Wrap(model.ErrNoCaptureTarget, "no display found for terminal window")
	}

	mask := term.Bounds.Intersect(display.Bounds)
	return &model.CaptureRegion{
		Target:    model.TargetTerminalFallback,
		DisplayID: display.ID,
		Region:    display.Bounds,
		Mask:      &mask,
	}, nil
}
