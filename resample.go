package pixelpipe

import (
	"fmt"
	"image"
	"log/slog"
	"strings"

	"golang.org/x/image/draw"
)

// Interpolation selects the resampling kernel used by Resize.
type Interpolation int

const (
	// InterpLegacy is a corner aligned bilinear filter computed in float32.
	// It is the default used by bmp2hex.
	InterpLegacy Interpolation = iota
	InterpBiLinear
	InterpApproxBiLinear
	InterpCatmullRom
	InterpNearest
)

var interpNames = map[Interpolation]string{
	InterpLegacy:         "legacy",
	InterpBiLinear:       "bilinear",
	InterpApproxBiLinear: "approx",
	InterpCatmullRom:     "catmullrom",
	InterpNearest:        "nearest",
}

func (i Interpolation) String() string {
	if s, ok := interpNames[i]; ok {
		return s
	}
	return fmt.Sprintf("Interpolation(%d)", int(i))
}

// ParseInterpolation maps a kernel name to its Interpolation value.
func ParseInterpolation(name string) (Interpolation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return InterpLegacy, nil
	}
	for k, v := range interpNames {
		if v == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown interpolation %q", name)
}

func (i Interpolation) scaler() draw.Scaler {
	switch i {
	case InterpBiLinear:
		return draw.BiLinear
	case InterpApproxBiLinear:
		return draw.ApproxBiLinear
	case InterpCatmullRom:
		return draw.CatmullRom
	case InterpNearest:
		return draw.NearestNeighbor
	}
	return nil
}

// Resize scales src to w x h pixels. When src already has the requested size
// it is returned unchanged.
func Resize(src image.Image, w, h int, interp Interpolation) *image.NRGBA {
	img := ImgToNRGBA(src)
	sw, sh := img.Bounds().Dx(), img.Bounds().Dy()
	if sw == w && sh == h {
		Logger().Info("image already at target size, skipping resize", slog.Int("width", w), slog.Int("height", h))
		return img
	}
	Logger().Info("resizing",
		slog.Int("srcWidth", sw), slog.Int("srcHeight", sh),
		slog.Int("width", w), slog.Int("height", h),
		slog.String("interpolation", interp.String()),
	)

	if s := interp.scaler(); s != nil {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		s.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		return dst
	}
	return resizeBilinear(img, w, h)
}

// resizeBilinear samples the source at dst*scale, where scale is the ratio of
// the source and destination sizes, blending the four surrounding pixels.
// Neighbours past the right or bottom edge are clamped to the edge pixel.
func resizeBilinear(src *image.NRGBA, w, h int) *image.NRGBA {
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	xScale := float32(sw) / float32(w)
	yScale := float32(sh) / float32(h)

	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			sx := float32(dx) * xScale
			sy := float32(dy) * yScale

			x0, y0 := int(sx), int(sy)
			x1 := clamp(x0+1, 0, sw-1)
			y1 := clamp(y0+1, 0, sh-1)
			fx := sx - float32(x0)
			fy := sy - float32(y0)

			p00 := src.PixOffset(x0, y0)
			p10 := src.PixOffset(x1, y0)
			p01 := src.PixOffset(x0, y1)
			p11 := src.PixOffset(x1, y1)

			di := dst.PixOffset(dx, dy)
			for c := 0; c < 3; c++ {
				v := float32(src.Pix[p00+c])*(1-fx)*(1-fy) +
					float32(src.Pix[p10+c])*fx*(1-fy) +
					float32(src.Pix[p01+c])*(1-fx)*fy +
					float32(src.Pix[p11+c])*fx*fy
				dst.Pix[di+c] = uint8(clamp(v, 0, 255))
			}
			dst.Pix[di+3] = 0xff
		}
	}
	return dst
}
