package adapter

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// WindowLister reads platform window metadata. It performs no pixel
// capture itself.
type WindowLister interface {
	// ListWindows returns on-screen windows, frontmost first
	ListWindows(ctx context.Context) ([]model.Window, error)
	// ListDisplays returns attached displays
	ListDisplays(ctx context.Context) ([]model.Display, error)
}

// ScreenCapturer captures the resolved region to a PNG on disk, applying
// the privacy mask before anything downstream sees the image.
type ScreenCapturer interface {
	Capture(ctx context.Context, region *model.CaptureRegion, outPath string) error
}

// maskImage paints the mask rectangle black. Mask and region are in global
// display points; the image may be at a higher pixel density, so the mask
// is scaled by the actual pixel width.
func maskImage(data []byte, region model.Rect, mask model.Rect) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode capture")
	}

	bounds := src.Bounds()
	scale := 1.0
	if region.Width > 0 {
		scale = float64(bounds.Dx()) / region.Width
	}

	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)

	maskRect := image.Rect(
		bounds.Min.X+int((mask.X-region.X)*scale),
		bounds.Min.Y+int((mask.Y-region.Y)*scale),
		bounds.Min.X+int((mask.X-region.X+mask.Width)*scale),
		bounds.Min.Y+int((mask.Y-region.Y+mask.Height)*scale),
	).Intersect(bounds)
	draw.Draw(dst, maskRect, &image.Uniform{C: color.Black}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, goerr.Wrap(err, "failed to encode masked capture")
	}
	return buf.Bytes(), nil
}

// maskFile applies maskImage in place on a captured artifact
func maskFile(path string, region model.Rect, mask model.Rect) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "failed to read capture", goerr.V("path", path))
	}

	masked, err := maskImage(data, region, mask)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, masked, 0o600); err != nil {
		return goerr.Wrap(err, "failed to write masked capture", goerr.V("path", path))
	}
	return nil
}
