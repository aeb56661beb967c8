package adapter

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/Mide6x/OpenSS/pkg/model"
	"github.com/m-mizutani/gt"
)

func encodeSolid(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	gt.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	gt.NoError(t, err)
	return img
}

func isBlack(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0 && g == 0 && b == 0
}

func TestMaskImagePaintsRegionBlack(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	data := encodeSolid(t, 100, 100, white)

	region := model.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	mask := model.Rect{X: 20, Y: 30, Width: 40, Height: 20}

	masked, err := maskImage(data, region, mask)
	gt.NoError(t, err)

	img := decode(t, masked)
	gt.True(t, isBlack(img.At(25, 35)))
	gt.True(t, isBlack(img.At(59, 49)))
	gt.True(t, !isBlack(img.At(10, 10)))
	gt.True(t, !isBlack(img.At(70, 60)))
}

func TestMaskImageScalesForRetina(t *testing.T) {
	// 100x100 points captured at 2x produces a 200x200 pixel image
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	data := encodeSolid(t, 200, 200, white)

	region := model.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	mask := model.Rect{X: 50, Y: 50, Width: 50, Height: 50}

	masked, err := maskImage(data, region, mask)
	gt.NoError(t, err)

	img := decode(t, masked)
	gt.True(t, isBlack(img.At(150, 150)))
	gt.True(t, !isBlack(img.At(50, 50)))
}

func TestMaskImageOffsetRegion(t *testing.T) {
	// Display at x=1920: mask coordinates are global, image is local
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	data := encodeSolid(t, 100, 100, white)

	region := model.Rect{X: 1920, Y: 0, Width: 100, Height: 100}
	mask := model.Rect{X: 1930, Y: 10, Width: 20, Height: 20}

	masked, err := maskImage(data, region, mask)
	gt.NoError(t, err)

	img := decode(t, masked)
	gt.True(t, isBlack(img.At(15, 15)))
	gt.True(t, !isBlack(img.At(50, 50)))
}

func TestMaskImageRejectsGarbage(t *testing.T) {
	_, err := maskImage([]byte("not a png"), model.Rect{Width: 1, Height: 1}, model.Rect{})
	gt.Error(t, err)
}
