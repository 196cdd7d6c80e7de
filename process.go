package pixelpipe

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrUnsupportedOutput is returned for output paths with an unknown extension.
var ErrUnsupportedOutput = errors.New("unsupported output format")

// Processor : type with processing options
type Processor struct {
	// Interpolation selects the resampling kernel for images that are not 320x240.
	Interpolation Interpolation
	// Passes is the number of consecutive blur runs. Zero means one.
	Passes int
	// Preview is an optional PNG path receiving a side by side comparison.
	Preview string
}

// Result describes a completed Process call.
type Result struct {
	Source  *Frame
	Blurred *Frame
	Cycles  uint64
	Elapsed time.Duration
	// Hex is set when the input was a text pixel stream.
	Hex *HexStats
}

// Process loads the input, runs the blur pipeline and writes the result to output.
// The input format is chosen from name, the output format from the output extension.
func (p *Processor) Process(ctx context.Context, in io.Reader, name, output string) (*Result, error) {
	start := time.Now()

	src, stats, err := LoadFrame(in, name, p.Interpolation)
	if err != nil {
		return nil, err
	}
	blurred, cycles, err := blurPasses(ctx, src, p.Passes)
	if err != nil {
		return nil, err
	}
	if err := SaveFrame(output, blurred); err != nil {
		return nil, err
	}
	if p.Preview != "" {
		if err := SavePreview(p.Preview, src, blurred); err != nil {
			return nil, fmt.Errorf("writing preview: %w", err)
		}
	}

	res := &Result{
		Source:  src,
		Blurred: blurred,
		Cycles:  cycles,
		Elapsed: time.Since(start),
		Hex:     stats,
	}
	Logger().Info("processed frame",
		slog.String("input", name),
		slog.String("output", output),
		slog.Uint64("cycles", cycles),
		slog.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// LoadFrame reads a frame from r. Text pixel streams (.hex, .mem, .txt), frame
// archives (.cbor, .zst) and pixmaps (.ppm) are read as is; bitmaps and any
// other decodable image are resized to 320x240 and packed.
func LoadFrame(r io.Reader, name string, interp Interpolation) (*Frame, *HexStats, error) {
	switch ext(name) {
	case ".hex", ".mem", ".txt":
		f, stats, err := ReadHex(r)
		if err != nil {
			return nil, nil, err
		}
		return f, &stats, nil
	case ".cbor", ".zst":
		f, err := ReadArchive(r)
		return f, nil, err
	case ".ppm":
		f, err := ReadPPM(r)
		return f, nil, err
	}

	var (
		img image.Image
		err error
	)
	if ext(name) == ".bmp" {
		img, err = DecodeBMP(r)
	} else {
		img, _, err = image.Decode(r)
	}
	if err != nil {
		return nil, nil, err
	}

	f := new(Frame)
	if err := NewChain(&ResizeFilter{Interpolation: interp}).Draw(f, img); err != nil {
		return nil, nil, err
	}
	return f, nil, nil
}

// SaveFrame writes the frame to path in the format given by its extension:
// .hex, .ppm, .png, .bmp, .cbor or .zst (zstd compressed archive).
func SaveFrame(path string, f *Frame) error {
	var encode func(io.Writer) error

	switch ext(path) {
	case ".hex", ".mem", ".txt":
		encode = func(w io.Writer) error { return WriteHex(w, f) }
	case ".ppm":
		encode = func(w io.Writer) error { return WritePPM(w, f) }
	case ".png":
		encode = func(w io.Writer) error { return png.Encode(w, f.NRGBA()) }
	case ".bmp":
		encode = func(w io.Writer) error { return EncodeBMP(w, f) }
	case ".cbor":
		encode = func(w io.Writer) error { return WriteArchive(w, f, false) }
	case ".zst":
		encode = func(w io.Writer) error { return WriteArchive(w, f, true) }
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedOutput, filepath.Base(path))
	}

	fq, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(fq); err != nil {
		fq.Close()
		return err
	}
	return fq.Close()
}

func ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
