package pixelpipe

import (
	"fmt"
	"image"
	"image/color"
)

const (
	// Width is the fixed raster width in pixels.
	Width = 320
	// Height is the fixed raster height in pixels.
	Height = 240
	// FrameSize is the number of addresses in a frame.
	FrameSize = Width * Height
)

// Source is an address indexed pixel store the scan controller reads from.
type Source interface {
	PixelAt(addr int) Pixel
}

// Frame is a row-major raster of packed pixels, address = y*Width + x.
type Frame [FrameSize]Pixel

// Addr returns the frame address of the (x, y) coordinate.
func Addr(x, y int) int { return y*Width + x }

// Coord returns the (x, y) coordinate of a frame address.
func Coord(addr int) (x, y int) { return addr % Width, addr / Width }

// Fill returns a frame holding the same pixel value at every address.
func Fill(v Pixel) *Frame {
	f := new(Frame)
	for i := range f {
		f[i] = v
	}
	return f
}

// PixelAt implements the Source interface.
func (f *Frame) PixelAt(addr int) Pixel { return f[addr] }

// ColorModel implements the image.Image interface.
func (f *Frame) ColorModel() color.Model { return RGB565Model }

// Bounds implements the image.Image interface.
func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, Width, Height) }

// At implements the image.Image interface.
func (f *Frame) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= Width || y >= Height {
		return Pixel(0)
	}
	return f[Addr(x, y)]
}

// Set implements the draw.Image interface, packing c into RGB565.
func (f *Frame) Set(x, y int, c color.Color) {
	if x < 0 || y < 0 || x >= Width || y >= Height {
		return
	}
	f[Addr(x, y)] = RGB565Model.Convert(c).(Pixel)
}

// NRGBA expands the frame into an 8-bit per channel opaque image.
func (f *Frame) NRGBA() *image.NRGBA {
	dst := image.NewNRGBA(f.Bounds())
	for i, p := range f {
		r, g, b := p.RGB888()
		dst.Pix[i*4+0] = r
		dst.Pix[i*4+1] = g
		dst.Pix[i*4+2] = b
		dst.Pix[i*4+3] = 0xff
	}
	return dst
}

// FrameFromImage packs an image of exactly Width x Height pixels.
// Use Resize first for any other size.
func FrameFromImage(img image.Image) (*Frame, error) {
	b := img.Bounds()
	if b.Dx() != Width || b.Dy() != Height {
		return nil, fmt.Errorf("frame requires %dx%d pixels, got %dx%d", Width, Height, b.Dx(), b.Dy())
	}
	if src, ok := img.(*Frame); ok {
		f := *src
		return &f, nil
	}
	src := ImgToNRGBA(img)
	f := new(Frame)
	for i := range f {
		f[i] = FromRGB888(src.Pix[i*4+0], src.Pix[i*4+1], src.Pix[i*4+2])
	}
	return f, nil
}
