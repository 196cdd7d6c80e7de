// Command bmp2hex converts a 24-bit bitmap of any size into a 320x240 RGB565
// text pixel stream, one four digit hex token per line.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/esimov/pixelpipe"
)

var interp = flag.String("interp", "legacy", "Resampling kernel: legacy, bilinear, approx, catmullrom, nearest")

func main() {
	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-interp name] input.bmp output.hex\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "  input.bmp  : any 24-bit BMP (any resolution)")
		fmt.Fprintln(os.Stderr, "  output.hex : RGB565 text pixel stream")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}
	in, out := flag.Arg(0), flag.Arg(1)

	kernel, err := pixelpipe.ParseInterpolation(*interp)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	file, err := os.Open(in)
	if err != nil {
		log.Fatalf("Cannot open input BMP: %v", err)
	}
	defer file.Close()

	img, err := pixelpipe.DecodeBMP(file)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	b := img.Bounds()
	fmt.Printf("Input image: %dx%d pixels (24-bit BMP)\n", b.Dx(), b.Dy())

	if b.Dx() == pixelpipe.Width && b.Dy() == pixelpipe.Height {
		fmt.Printf("Image already %dx%d, skipping resize.\n", pixelpipe.Width, pixelpipe.Height)
	} else {
		fmt.Printf("Resizing to %dx%d using %s interpolation...\n", pixelpipe.Width, pixelpipe.Height, kernel)
	}

	frame := new(pixelpipe.Frame)
	if err := pixelpipe.NewChain(&pixelpipe.ResizeFilter{Interpolation: kernel}).Draw(frame, img); err != nil {
		log.Fatalf("Resize failed: %v", err)
	}

	fq, err := os.Create(out)
	if err != nil {
		log.Fatalf("Cannot open output file: %v", err)
	}
	if err := pixelpipe.WriteHex(fq, frame); err != nil {
		fq.Close()
		log.Fatalf("Cannot write output file: %v", err)
	}
	if err := fq.Close(); err != nil {
		log.Fatalf("Cannot write output file: %v", err)
	}

	fmt.Printf("Done. Wrote %d pixels to %s\n", pixelpipe.FrameSize, out)
}
