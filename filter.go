package pixelpipe

import (
	"context"
	"image"
	"image/draw"
)

// Filter is an image operation that can be chained with other filters.
type Filter interface {
	Draw(dst draw.Image, src image.Image) error
	// Bounds calculates the appropriate bounds of an image after applying the filter.
	Bounds(srcBounds image.Rectangle) (dstBounds image.Rectangle)
}

// Chain applies a list of filters in order.
type Chain struct {
	Filters []Filter
}

// NewChain creates a filter chain from the given list of filters.
func NewChain(filters ...Filter) *Chain {
	return &Chain{
		Filters: filters,
	}
}

// Draw applies all the filters to the src image and outputs the result to the dst image.
func (c *Chain) Draw(dst draw.Image, src image.Image) error {
	if len(c.Filters) == 0 {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return nil
	}
	first, last := 0, len(c.Filters)-1
	var tmpIn image.Image
	var tmpOut draw.Image

	for i, f := range c.Filters {
		if i == first {
			tmpIn = src
		} else {
			tmpIn = tmpOut
		}

		if i == last {
			tmpOut = dst
		} else {
			tmpOut = createTempImage(f.Bounds(tmpIn.Bounds()))
		}

		if err := f.Draw(tmpOut, tmpIn); err != nil {
			return err
		}
	}
	return nil
}

// create default temp image
func createTempImage(r image.Rectangle) draw.Image {
	return image.NewNRGBA(r)
}

// ResizeFilter scales its input to the fixed frame size.
type ResizeFilter struct {
	Interpolation Interpolation
}

// Bounds implements the Filter interface.
func (r *ResizeFilter) Bounds(image.Rectangle) image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

// Draw implements the Filter interface.
func (r *ResizeFilter) Draw(dst draw.Image, src image.Image) error {
	img := Resize(src, Width, Height, r.Interpolation)
	if f, ok := dst.(*Frame); ok {
		packed, err := FrameFromImage(img)
		if err != nil {
			return err
		}
		*f = *packed
		return nil
	}
	draw.Draw(dst, dst.Bounds(), img, image.Point{}, draw.Src)
	return nil
}

// GaussianFilter runs the clocked blur pipeline over a frame sized image.
type GaussianFilter struct {
	// Passes is the number of consecutive pipeline runs. Zero means one.
	Passes int

	cycles uint64
}

// Bounds implements the Filter interface.
func (g *GaussianFilter) Bounds(srcBounds image.Rectangle) image.Rectangle {
	return srcBounds
}

// Cycles returns the clock edges consumed by the last Draw call.
func (g *GaussianFilter) Cycles() uint64 { return g.cycles }

// Draw implements the Filter interface. The source must be exactly Width x Height.
func (g *GaussianFilter) Draw(dst draw.Image, src image.Image) error {
	frame, err := FrameFromImage(src)
	if err != nil {
		return err
	}
	out, cycles, err := blurPasses(context.Background(), frame, g.Passes)
	if err != nil {
		return err
	}
	g.cycles = cycles

	if f, ok := dst.(*Frame); ok {
		*f = *out
		return nil
	}
	draw.Draw(dst, dst.Bounds(), out, image.Point{}, draw.Src)
	return nil
}

// blurPasses feeds each pass output back as the next pass source.
func blurPasses(ctx context.Context, src *Frame, passes int) (*Frame, uint64, error) {
	passes = Max(passes, 1)

	var total uint64
	p := NewPipeline(src)
	out := src
	for i := 0; i < passes; i++ {
		p.Load(out)
		res, err := p.Run(ctx)
		if err != nil {
			return nil, total, err
		}
		total += p.Cycles()
		out = res
	}
	return out, total, nil
}
