/*
Package pixelpipe is a cycle level model of a streaming 3x3 Gaussian blur unit
working on a fixed 320x240 raster of RGB565 pixels.

The pipeline reads one pixel per clock, keeps the two previous scanlines in a
line history, assembles a 3x3 window and writes the weighted average

	1 2 1
	2 4 2
	1 2 1  / 16

one clock later. The first two rows and the first two columns of every row are
passed through unmodified, every other pixel at (x, y) receives the blur of the
neighborhood centered at (x-1, y-1).

The package also carries the conversion tools around the core: a strict 24-bit
BMP decoder, bilinear resampling, a lenient hex text stream reader and writer,
PPM, PNG, BMP and CBOR frame outputs.

The command line tools are installed with:

	$ go install github.com/esimov/pixelpipe/cmd/...

Example to blur an image through the clocked pipeline:

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/esimov/pixelpipe"
	)

	func main() {
		f, err := os.Open("input.bmp")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		p := &pixelpipe.Processor{
			Passes:  1,
			Preview: "preview.png",
		}
		if _, err := p.Process(context.Background(), f, f.Name(), "output.ppm"); err != nil {
			log.Fatalf("Error processing image: %v", err)
		}
	}

Example to drive the pipeline clock by clock:

	p := pixelpipe.NewPipeline(frame)
	p.Tick(pixelpipe.Signals{Reset: true})
	p.Tick(pixelpipe.Signals{Start: true})
	for !p.Tick(pixelpipe.Signals{}) {
	}
	out := p.Output()
*/
package pixelpipe
