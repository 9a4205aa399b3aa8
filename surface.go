package render

import (
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Surface is a rectangular host-side pixel buffer with packed 32-bit color
// cells (RGBA order, 4 bytes per pixel). It is the destination the GPU
// renderer reads frames back into; ownership stays with the caller.
type Surface struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewSurface creates a new surface with the given dimensions.
func NewSurface(width, height int) *Surface {
	if width <= 0 || height <= 0 {
		return nil
	}
	return &Surface{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the surface in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the height of the surface in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Data returns the raw pixel data (RGBA format). The slice aliases the
// surface's backing store; writes to it are writes to the surface.
func (s *Surface) Data() []uint8 {
	return s.data
}

// SetPixel sets the color of a single pixel. Out-of-bounds coordinates
// are ignored.
func (s *Surface) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	i := (y*s.width + x) * 4
	s.data[i+0] = c.R
	s.data[i+1] = c.G
	s.data[i+2] = c.B
	s.data[i+3] = c.A
}

// GetPixel returns the color of a single pixel. Out-of-bounds coordinates
// return transparent black.
func (s *Surface) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return color.RGBA{}
	}
	i := (y*s.width + x) * 4
	return color.RGBA{R: s.data[i+0], G: s.data[i+1], B: s.data[i+2], A: s.data[i+3]}
}

// Clear fills the entire surface with a color.
func (s *Surface) Clear(c color.RGBA) {
	for i := 0; i < len(s.data); i += 4 {
		s.data[i+0] = c.R
		s.data[i+1] = c.G
		s.data[i+2] = c.B
		s.data[i+3] = c.A
	}
}

// ScaleTo resamples the surface into dst using nearest-neighbour filtering.
// This is the presentation path for the engine: frames are rendered at a low
// internal resolution and upscaled to the window size. The aspect ratio is
// not preserved; dst defines the output dimensions.
func (s *Surface) ScaleTo(dst *Surface) {
	if dst == nil || dst == s {
		return
	}
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), s, s.Bounds(), xdraw.Src, nil)
}

// ToImage converts the surface to an image.RGBA.
func (s *Surface) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, s.data)
	return img
}

// FromImage creates a surface from an image.
func FromImage(img image.Image) *Surface {
	bounds := img.Bounds()
	sf := NewSurface(bounds.Dx(), bounds.Dy())
	if sf == nil {
		return nil
	}
	for y := 0; y < sf.height; y++ {
		for x := 0; x < sf.width; x++ {
			sf.Set(x, y, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return sf
}

// SavePNG saves the surface to a PNG file.
func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, s.ToImage())
}

// At implements the image.Image interface.
func (s *Surface) At(x, y int) color.Color {
	return s.GetPixel(x, y)
}

// Set implements the draw.Image interface.
func (s *Surface) Set(x, y int, c color.Color) {
	s.SetPixel(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

// Bounds implements the image.Image interface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// ColorModel implements the image.Image interface.
func (s *Surface) ColorModel() color.Model {
	return color.RGBAModel
}
