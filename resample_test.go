package pixelpipe

import (
	"image"
	"image/color"
	"testing"
)

func uniformImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestResize_IdentityAtTargetSize(t *testing.T) {
	src := randomFrame(40).NRGBA()
	for _, interp := range []Interpolation{InterpLegacy, InterpBiLinear, InterpCatmullRom} {
		got := Resize(src, Width, Height, interp)
		if got != src {
			t.Fatalf("%s: expected the source image to be returned unchanged", interp)
		}
	}
}

func TestResize_IdentityOnOffsetBounds(t *testing.T) {
	full := randomFrame(41).NRGBA()
	// A sub image keeps its original coordinates.
	big := image.NewNRGBA(image.Rect(0, 0, Width+10, Height+10))
	for y := 0; y < Height; y++ {
		copy(big.Pix[big.PixOffset(10, 10+y):], full.Pix[full.PixOffset(0, y):full.PixOffset(0, y)+Width*4])
	}
	sub := big.SubImage(image.Rect(10, 10, Width+10, Height+10))

	got := Resize(sub, Width, Height, InterpLegacy)
	for i := range full.Pix {
		if got.Pix[i] != full.Pix[i] {
			t.Fatalf("byte %d = %d, want %d", i, got.Pix[i], full.Pix[i])
		}
	}
}

func TestResize_LegacyBilinear(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 10, B: 100, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 30, B: 100, A: 255})

	got := Resize(src, 4, 1, InterpLegacy)
	// Sample positions are 0, 0.5, 1 and 1.5; the last clamps to the edge.
	want := []color.NRGBA{
		{R: 0, G: 10, B: 100, A: 255},
		{R: 100, G: 20, B: 100, A: 255},
		{R: 200, G: 30, B: 100, A: 255},
		{R: 200, G: 30, B: 100, A: 255},
	}
	for x, w := range want {
		if c := got.NRGBAAt(x, 0); c != w {
			t.Errorf("pixel %d = %v, want %v", x, c, w)
		}
	}
}

func TestResize_UniformStaysUniform(t *testing.T) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	tests := []struct {
		name   string
		w, h   int
		interp Interpolation
	}{
		{"legacy upscale", 2, 2, InterpLegacy},
		{"legacy downscale", 640, 480, InterpLegacy},
		{"legacy odd", 123, 77, InterpLegacy},
		{"bilinear", 17, 9, InterpBiLinear},
		{"approx", 17, 9, InterpApproxBiLinear},
		{"catmullrom", 400, 300, InterpCatmullRom},
		{"nearest", 3, 3, InterpNearest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			img := Resize(uniformImage(tc.w, tc.h, white), Width, Height, tc.interp)
			f, err := FrameFromImage(img)
			if err != nil {
				t.Fatal(err)
			}
			for a, p := range f {
				if p != 0xFFFF {
					x, y := Coord(a)
					t.Fatalf("pixel (%d,%d) = %04X, want FFFF", x, y, p)
				}
			}
		})
	}
}

func TestParseInterpolation(t *testing.T) {
	tests := []struct {
		in      string
		want    Interpolation
		wantErr bool
	}{
		{"", InterpLegacy, false},
		{"legacy", InterpLegacy, false},
		{"BiLinear", InterpBiLinear, false},
		{" approx ", InterpApproxBiLinear, false},
		{"catmullrom", InterpCatmullRom, false},
		{"nearest", InterpNearest, false},
		{"lanczos", 0, true},
	}
	for _, tc := range tests {
		got, err := ParseInterpolation(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseInterpolation(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseInterpolation(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
	if s := Interpolation(42).String(); s != "Interpolation(42)" {
		t.Errorf("unexpected name %q", s)
	}
}
