package pixelpipe

import "image/color"

// Pixel is a packed RGB565 sample: R in bits 15..11, G in bits 10..5, B in bits 4..0.
type Pixel uint16

const (
	rMask = 0x1f
	gMask = 0x3f
	bMask = 0x1f
)

// Pack concatenates the 5-bit red, 6-bit green and 5-bit blue fields.
// Bits above each field width are discarded.
func Pack(r5, g6, b5 uint8) Pixel {
	return Pixel(uint16(r5&rMask)<<11 | uint16(g6&gMask)<<5 | uint16(b5&bMask))
}

// R returns the 5-bit red field.
func (p Pixel) R() uint8 { return uint8(p>>11) & rMask }

// G returns the 6-bit green field.
func (p Pixel) G() uint8 { return uint8(p>>5) & gMask }

// B returns the 5-bit blue field.
func (p Pixel) B() uint8 { return uint8(p) & bMask }

// FromRGB888 truncates 8-bit channels to the packed representation.
func FromRGB888(r, g, b uint8) Pixel {
	return Pack(r>>3, g>>2, b>>3)
}

// RGB888 expands the packed fields back to 8 bits per channel.
// The expansion truncates, so white maps to 255 and black to 0.
func (p Pixel) RGB888() (r, g, b uint8) {
	r = uint8(uint16(p.R()) * 255 / 31)
	g = uint8(uint16(p.G()) * 255 / 63)
	b = uint8(uint16(p.B()) * 255 / 31)
	return
}

// RGBA implements the color.Color interface. Packed pixels are always opaque.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := p.RGB888()
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	a = 0xffff
	return
}

// RGB565Model converts any color into a packed Pixel.
var RGB565Model color.Model = color.ModelFunc(rgb565Model)

func rgb565Model(c color.Color) color.Color {
	if p, ok := c.(Pixel); ok {
		return p
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return FromRGB888(n.R, n.G, n.B)
}
