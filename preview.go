package pixelpipe

import (
	"image"

	"github.com/fogleman/gg"
)

const previewCaption = 24

// Preview renders the source and the processed frame side by side with a
// caption strip under each, for visual inspection of the boundary policy.
func Preview(before, after image.Image) image.Image {
	bw, bh := before.Bounds().Dx(), before.Bounds().Dy()
	aw, ah := after.Bounds().Dx(), after.Bounds().Dy()
	width := bw + aw
	height := Max(bh, ah) + previewCaption

	ctx := gg.NewContext(width, height)
	ctx.DrawRectangle(0, 0, float64(width), float64(height))
	ctx.SetRGB(1, 1, 1)
	ctx.Fill()

	ctx.DrawImage(before, 0, 0)
	ctx.DrawImage(after, bw, 0)

	ctx.SetRGB(0, 0, 0)
	ctx.SetLineWidth(1)
	ctx.DrawLine(float64(bw)+0.5, 0, float64(bw)+0.5, float64(height))
	ctx.Stroke()

	captionY := float64(height) - previewCaption/2
	ctx.DrawStringAnchored("original", float64(bw)/2, captionY, 0.5, 0.5)
	ctx.DrawStringAnchored("blurred", float64(bw)+float64(aw)/2, captionY, 0.5, 0.5)

	return ctx.Image()
}

// SavePreview writes the side by side preview as a PNG file.
func SavePreview(path string, before, after image.Image) error {
	ctx := gg.NewContextForImage(Preview(before, after))
	return ctx.SavePNG(path)
}
