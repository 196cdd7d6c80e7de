package pixelpipe

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

// ErrBadArchive is returned when a frame archive does not describe a
// 320x240 RGB565 frame.
var ErrBadArchive = errors.New("invalid frame archive")

const archiveFormat = "rgb565"

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// frameRecord is the CBOR document stored in a frame archive.
type frameRecord struct {
	Width  int      `cbor:"width"`
	Height int      `cbor:"height"`
	Format string   `cbor:"format"`
	Pixels []uint16 `cbor:"pixels"`
}

// WriteArchive stores the frame as a CBOR record, optionally zstd compressed.
func WriteArchive(w io.Writer, f *Frame, compress bool) error {
	rec := frameRecord{
		Width:  Width,
		Height: Height,
		Format: archiveFormat,
		Pixels: make([]uint16, FrameSize),
	}
	for i, p := range f {
		rec.Pixels[i] = uint16(p)
	}

	if !compress {
		return cbor.NewEncoder(w).Encode(rec)
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("zstd encode: %w", err)
	}
	if err := cbor.NewEncoder(zw).Encode(rec); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// ReadArchive loads a frame written by WriteArchive. Compressed archives are
// recognised by the zstd frame magic.
func ReadArchive(r io.Reader) (*Frame, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	if magic, err := br.Peek(len(zstdMagic)); err == nil && bytes.Equal(magic, zstdMagic) {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zstd decode: %w", err)
		}
		defer zr.Close()
		src = zr
	}

	var rec frameRecord
	if err := cbor.NewDecoder(src).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadArchive, err)
	}
	if rec.Width != Width || rec.Height != Height || rec.Format != archiveFormat {
		return nil, fmt.Errorf("%w: %dx%d %q", ErrBadArchive, rec.Width, rec.Height, rec.Format)
	}
	if len(rec.Pixels) != FrameSize {
		return nil, fmt.Errorf("%w: %d pixels", ErrBadArchive, len(rec.Pixels))
	}

	f := new(Frame)
	for i, v := range rec.Pixels {
		f[i] = Pixel(v)
	}
	return f, nil
}
