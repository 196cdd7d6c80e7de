package pixelpipe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrBadPPM is returned by ReadPPM for streams that are not a 320x240 binary PPM.
var ErrBadPPM = errors.New("invalid PPM stream")

// WritePPM encodes the frame as a binary (P6) portable pixmap with maxval 255.
func WritePPM(w io.Writer, f *Frame) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", Width, Height); err != nil {
		return err
	}
	buf := make([]byte, 3)
	for _, p := range f {
		buf[0], buf[1], buf[2] = p.RGB888()
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadPPM decodes a binary portable pixmap produced by WritePPM, packing
// every sample back into RGB565.
func ReadPPM(r io.Reader) (*Frame, error) {
	br := bufio.NewReader(r)

	var (
		magic        string
		w, h, maxval int
	)
	if _, err := fmt.Fscan(br, &magic, &w, &h, &maxval); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadPPM, err)
	}
	if magic != "P6" {
		return nil, fmt.Errorf("%w: magic %q", ErrBadPPM, magic)
	}
	if w != Width || h != Height || maxval != 255 {
		return nil, fmt.Errorf("%w: got %dx%d maxval %d", ErrBadPPM, w, h, maxval)
	}
	// A single whitespace byte separates the header from the raster.
	if _, err := br.ReadByte(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPPM, err)
	}

	f := new(Frame)
	buf := make([]byte, 3)
	for i := range f {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("%w: pixel %d: %v", ErrBadPPM, i, err)
		}
		f[i] = FromRGB888(buf[0], buf[1], buf[2])
	}
	return f, nil
}
