// Command hex2ppm converts an RGB565 text pixel stream into a binary PPM image.
// Malformed lines are skipped and a short stream is padded with its last pixel.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/esimov/pixelpipe"
)

var (
	source      = flag.String("in", "blurred.hex", "Source pixel stream")
	destination = flag.String("out", "output.ppm", "Destination PPM image")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	hexFile, err := os.Open(*source)
	if err != nil {
		log.Fatal(err)
	}
	defer hexFile.Close()

	frame, stats, err := pixelpipe.ReadHex(hexFile)
	if err != nil {
		log.Fatal(err)
	}

	ppmFile, err := os.Create(*destination)
	if err != nil {
		log.Fatal(err)
	}
	if err := pixelpipe.WritePPM(ppmFile, frame); err != nil {
		ppmFile.Close()
		log.Fatal(err)
	}
	if err := ppmFile.Close(); err != nil {
		log.Fatal(err)
	}

	if stats.Padded > 0 {
		fmt.Printf("Stream ended after %d pixels, padded %d\n", stats.Parsed, stats.Padded)
	}
	fmt.Printf("Wrote %s (%d pixels)\n", *destination, pixelpipe.FrameSize)
}
