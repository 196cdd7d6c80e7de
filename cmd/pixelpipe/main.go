package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/esimov/pixelpipe"
	"github.com/esimov/pixelpipe/utils"
	"golang.org/x/sync/errgroup"
)

var (
	// Flags
	source      = flag.String("in", "", "Source image, pixel stream, archive, directory or URL")
	destination = flag.String("out", "", "Destination file or directory")
	interp      = flag.String("interp", "legacy", "Resampling kernel: legacy, bilinear, approx, catmullrom, nearest")
	passes      = flag.Int("passes", 1, "Number of consecutive blur passes")
	preview     = flag.String("preview", "", "Write a side by side PNG preview")
	format      = flag.String("format", ".ppm", "Output extension used when the destination is a directory")
	workers     = flag.Int("workers", runtime.NumCPU(), "Number of frames processed concurrently")
	verbose     = flag.Bool("v", false, "Verbose logging")
)

// Supported input files when the source is a directory.
var extensions = []string{".bmp", ".png", ".jpg", ".jpeg", ".hex", ".mem", ".txt", ".cbor", ".zst", ".ppm"}

func main() {
	flag.Parse()

	if len(*source) == 0 || len(*destination) == 0 {
		log.Fatal("Usage: pixelpipe -in input.bmp -out output.ppm")
	}
	if *verbose {
		pixelpipe.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	kernel, err := pixelpipe.ParseInterpolation(*interp)
	if err != nil {
		log.Fatal(err)
	}
	p := &pixelpipe.Processor{
		Interpolation: kernel,
		Passes:        *passes,
		Preview:       *preview,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if utils.IsURL(*source) {
		file, err := utils.DownloadImage(*source)
		if err != nil {
			log.Fatalf("Unable to download source: %v", err)
		}
		defer os.Remove(file.Name())
		defer file.Close()

		if err := processFile(ctx, p, file, file.Name(), *destination); err != nil {
			log.Fatalf("Error processing %s: %v", *source, err)
		}
		return
	}

	fs, err := os.Stat(*source)
	if err != nil {
		log.Fatalf("Unable to open source: %v", err)
	}

	switch mode := fs.Mode(); {
	case mode.IsDir():
		if p.Preview != "" {
			log.Fatal("The preview option is not supported for directories")
		}
		// Read destination file or directory.
		dst, err := os.Stat(*destination)
		if err != nil {
			log.Fatalf("Unable to get dir stats: %v", err)
		}
		if !dst.IsDir() {
			log.Fatal("Please specify a directory as destination!")
		}
		if err := processDir(ctx, p, *source, *destination); err != nil {
			log.Fatal(err)
		}
	case mode.IsRegular():
		file, err := os.Open(*source)
		if err != nil {
			log.Fatalf("Unable to open source file: %v", err)
		}
		defer file.Close()

		if err := processFile(ctx, p, file, *source, *destination); err != nil {
			log.Fatalf("Error processing %s: %v", *source, err)
		}
	}
}

// processFile runs a single frame with the spinner attached.
func processFile(ctx context.Context, p *pixelpipe.Processor, in io.Reader, name, out string) error {
	s := utils.NewSpinner()
	s.Start("Running blur pipeline...")
	res, err := p.Process(ctx, in, name, out)
	s.Stop()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Generated in: %s\n", utils.Decorate(utils.FormatTime(res.Elapsed), utils.SuccessColor))
	fmt.Fprintf(os.Stderr, "Clock cycles: %s\n", utils.Decorate(fmt.Sprint(res.Cycles), utils.SuccessColor))
	if res.Hex != nil && (res.Hex.Skipped > 0 || res.Hex.Padded > 0) {
		fmt.Fprintf(os.Stderr, "Pixel stream: %d parsed, %d skipped, %d padded\n",
			res.Hex.Parsed, res.Hex.Skipped, res.Hex.Padded)
	}
	fmt.Fprintf(os.Stderr, "Saved as: %s %s\n\n", filepath.Base(out), utils.Decorate("✓", utils.SuccessColor))
	return nil
}

// processDir blurs every supported file of the source directory. Each frame
// gets its own pipeline, so frames run concurrently up to the worker limit.
func processDir(ctx context.Context, p *pixelpipe.Processor, src, dst string) error {
	files, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("unable to read dir: %w", err)
	}

	var names []string
	for _, f := range files {
		if !f.IsDir() {
			names = append(names, f.Name())
		}
	}
	toProcess, err := outputPaths(names, src, dst, *format)
	if err != nil {
		return err
	}

	s := utils.NewSpinner()
	s.Start(fmt.Sprintf("Processing %d frames...", len(toProcess)))
	defer s.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(pixelpipe.Max(*workers, 1))
	for in, out := range toProcess {
		g.Go(func() error {
			file, err := os.Open(in)
			if err != nil {
				return fmt.Errorf("unable to open source file: %w", err)
			}
			defer file.Close()

			if _, err := p.Process(ctx, file, in, out); err != nil {
				return fmt.Errorf("error converting image %s: %w", filepath.Base(in), err)
			}
			return nil
		})
	}
	return g.Wait()
}

// outputPaths maps every supported source file to its destination path.
// Sources sharing a stem, like a.bmp and a.png, map to the same destination
// and are reported as an error.
func outputPaths(names []string, src, dst, format string) (map[string]string, error) {
	toProcess := make(map[string]string)
	owner := make(map[string]string)
	for _, name := range names {
		if !supported(name) {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		out := filepath.Join(dst, stem+format)
		if prev, ok := owner[out]; ok {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, name, out)
		}
		owner[out] = name
		toProcess[filepath.Join(src, name)] = out
	}
	return toProcess, nil
}

func supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
