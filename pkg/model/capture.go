package model

// Rect is a screen rectangle in global display coordinates
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersect returns the intersection of two rectangles. The result is the
// zero Rect when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.Width, o.X+o.Width)
	y2 := min(r.Y+r.Height, o.Y+o.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Area returns the rectangle area, zero for empty rectangles
func (r Rect) Area() float64 {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Window is one on-screen window as reported by the platform window list.
// The list arrives front-to-back.
type Window struct {
	ID     int64
	Owner  string
	Bounds Rect
	Layer  int
	Alpha  float64
}

// Display is one attached display
type Display struct {
	ID     int64
	Bounds Rect
}

// CaptureTarget names an application whose window can be captured directly
type CaptureTarget string

const (
	TargetChrome     CaptureTarget = "chrome"
	TargetPowerPoint CaptureTarget = "powerpoint"
	TargetWord       CaptureTarget = "word"

	// TargetTerminalFallback captures the display holding the terminal and
	// masks the terminal's own rectangle.
	TargetTerminalFallback CaptureTarget = "terminal-fallback"
)

// CaptureRegion is the resolver's decision: what to capture and what to
// redact. Mask is nil when nothing needs redaction.
type CaptureRegion struct {
	Target    CaptureTarget
	WindowID  int64 // set when capturing a single window
	DisplayID int64 // set when capturing a whole display
	Region    Rect
	Mask      *Rect
}
