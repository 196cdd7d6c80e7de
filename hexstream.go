package pixelpipe

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// HexStats describes how a text pixel stream was interpreted.
type HexStats struct {
	Parsed  int // tokens stored into the frame
	Skipped int // lines ignored without consuming a pixel slot
	Padded  int // trailing slots filled with the last parsed pixel
}

// WriteHex writes one zero padded, upper case, four digit hex token per pixel.
func WriteHex(w io.Writer, f *Frame) error {
	bw := bufio.NewWriter(w)
	for _, p := range f {
		if _, err := fmt.Fprintf(bw, "%04X\n", uint16(p)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadHex parses a text pixel stream, one token of 1 to 4 hex digits per line.
// Blank lines, comment lines, lines holding unknown-value placeholders and any
// other malformed line, however long, are skipped. Reading stops after FrameSize
// tokens. A short stream is padded by repeating the last parsed pixel.
// The only errors returned come from the underlying reader.
func ReadHex(r io.Reader) (*Frame, HexStats, error) {
	var (
		stats HexStats
		last  Pixel
		f     = new(Frame)
	)

	br := bufio.NewReader(r)
	for stats.Parsed < FrameSize {
		line, truncated, err := readLine(br)
		if err == io.EOF {
			if truncated {
				stats.Skipped++
			}
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("reading pixel stream: %w", err)
		}
		if truncated {
			stats.Skipped++
			continue
		}
		p, ok := parseHexToken(string(line))
		if !ok {
			stats.Skipped++
			continue
		}
		f[stats.Parsed] = p
		last = p
		stats.Parsed++
	}

	for i := stats.Parsed; i < FrameSize; i++ {
		f[i] = last
		stats.Padded++
	}
	if stats.Padded > 0 {
		Logger().Warn("pixel stream truncated, padding with last pixel",
			slog.Int("parsed", stats.Parsed),
			slog.Int("padded", stats.Padded),
			slog.String("pixel", fmt.Sprintf("%04X", uint16(last))),
		)
	}
	return f, stats, nil
}

// readLine returns the next line without its terminator. A line that does not
// fit the reader buffer is consumed to its end and reported as truncated.
func readLine(br *bufio.Reader) (line []byte, truncated bool, err error) {
	line, isPrefix, err := br.ReadLine()
	for isPrefix && err == nil {
		truncated = true
		_, isPrefix, err = br.ReadLine()
	}
	return line, truncated, err
}

// parseHexToken reports whether line holds a single pixel token.
func parseHexToken(line string) (Pixel, bool) {
	tok := strings.TrimSpace(line)
	switch {
	case tok == "":
		return 0, false
	case strings.HasPrefix(tok, "//"), strings.HasPrefix(tok, "#"):
		return 0, false
	case strings.ContainsAny(tok, "xXzZ"):
		// x and z mark undefined or floating values in simulator dumps.
		return 0, false
	case len(tok) > 4:
		return 0, false
	}
	v, err := strconv.ParseUint(tok, 16, 16)
	if err != nil {
		return 0, false
	}
	return Pixel(v), true
}
