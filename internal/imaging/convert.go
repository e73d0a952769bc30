package imaging

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pixelsum-mcp/internal/pixelsum"
)

// GrayMode selects how a multi-channel buffer is reduced to the single 8-bit
// channel a region index is built from.
type GrayMode string

const (
	// GrayLuma uses ITU-R BT.601 luma weights (0.299*R + 0.587*G + 0.114*B).
	GrayLuma GrayMode = "luma"

	// GrayLightness uses CIE L* scaled to 0-255, which tracks perceived
	// brightness more closely than luma.
	GrayLightness GrayMode = "lightness"

	// GrayThreshold produces a binary mask: 255 where the pixel's luminance is
	// at or above the threshold level, 0 elsewhere. Non-zero queries on such
	// an index count "bright" pixels. Alpha is ignored, so a semi-transparent
	// pixel is judged on the same non-premultiplied colour luma sees.
	GrayThreshold GrayMode = "threshold"
)

// ErrUnsupportedChannels is returned for channel counts other than 1 and 4.
var ErrUnsupportedChannels = errors.New("unsupported channel count")

// ParseGrayMode converts a tool argument into a GrayMode. The empty string
// selects GrayLuma.
func ParseGrayMode(s string) (GrayMode, error) {
	switch GrayMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", GrayLuma:
		return GrayLuma, nil
	case GrayLightness:
		return GrayLightness, nil
	case GrayThreshold:
		return GrayThreshold, nil
	default:
		return "", fmt.Errorf("unknown gray mode: %s (want luma, lightness or threshold)", s)
	}
}

// ToGray reduces a raw, row-major pixel buffer to one byte per pixel.
//
// The buffer carries no file format: it is exactly width*height*channels
// bytes of pixel data (extra trailing bytes are ignored).
//
// Parameters:
//   - raw: pixel bytes. With channels=4 each pixel is non-premultiplied R,G,B,A.
//   - width, height: grid dimensions in pixels, both positive.
//   - channels: 1 (already gray) or 4 (RGBA).
//   - mode: reduction applied to RGBA input. Gray input passes through unchanged
//     unless mode is GrayThreshold.
//   - threshold: cut-off level for GrayThreshold, ignored otherwise.
//
// Returns:
//   - []byte: width*height gray values, row-major.
//   - error: pixelsum.ErrInvalidDimensions or pixelsum.ErrDimensionsTooLarge for
//     dimensions an index cannot hold, otherwise non-nil for unsupported
//     channels, short buffers or an unknown mode.
func ToGray(raw []byte, width, height, channels int, mode GrayMode, threshold uint8) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", pixelsum.ErrInvalidDimensions, width, height)
	}
	if width >= pixelsum.MaxWidth || height >= pixelsum.MaxHeight {
		return nil, fmt.Errorf("%w: got %dx%d, limit %dx%d",
			pixelsum.ErrDimensionsTooLarge, width, height, pixelsum.MaxWidth-1, pixelsum.MaxHeight-1)
	}
	if channels != 1 && channels != 4 {
		return nil, fmt.Errorf("%w: %d (want 1 or 4)", ErrUnsupportedChannels, channels)
	}
	need := width * height * channels
	if len(raw) < need {
		return nil, fmt.Errorf("pixel buffer too short: got %d bytes, need %d for %dx%dx%d",
			len(raw), need, width, height, channels)
	}

	rect := image.Rect(0, 0, width, height)
	var img image.Image
	if channels == 1 {
		if mode != GrayThreshold {
			return raw[:need], nil
		}
		img = &image.Gray{Pix: raw[:need], Stride: width, Rect: rect}
	} else {
		img = &image.NRGBA{Pix: raw[:need], Stride: 4 * width, Rect: rect}
	}

	switch mode {
	case GrayLuma, "":
		return lumaChannel(img), nil
	case GrayLightness:
		return lightnessChannel(img.(*image.NRGBA)), nil
	case GrayThreshold:
		if rgba, ok := img.(*image.NRGBA); ok {
			img = opaque(rgba)
		}
		return grayPix(segment.Threshold(img, threshold)), nil
	default:
		return nil, fmt.Errorf("unknown gray mode: %s", mode)
	}
}

// lumaChannel converts through imaging.Grayscale, which writes the luma into
// each of R, G and B; the R byte is taken.
func lumaChannel(img image.Image) []byte {
	g := imaging.Grayscale(img)
	b := g.Bounds()
	out := make([]byte, b.Dx()*b.Dy())
	for i := range out {
		out[i] = g.Pix[i*4]
	}
	return out
}

func lightnessChannel(img *image.NRGBA) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, ok := colorful.MakeColor(img.NRGBAAt(x, y))
			if !ok {
				// Fully transparent.
				continue
			}
			l, _, _ := c.Lab()
			out[x+y*w] = uint8(math.Round(math.Max(0, math.Min(1, l)) * 255))
		}
	}
	return out
}

// opaque returns a copy of img with every alpha set to 255. segment.Threshold
// premultiplies before ranking, which would darken translucent pixels.
func opaque(img *image.NRGBA) *image.NRGBA {
	out := &image.NRGBA{
		Pix:    make([]byte, len(img.Pix)),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
	copy(out.Pix, img.Pix)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

func grayPix(g *image.Gray) []byte {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	if g.Stride == w {
		return g.Pix[:w*h]
	}
	out := make([]byte, w*h)
	for y := 0; y < h; y++ {
		copy(out[y*w:(y+1)*w], g.Pix[y*g.Stride:y*g.Stride+w])
	}
	return out
}
