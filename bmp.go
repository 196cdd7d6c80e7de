package pixelpipe

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"golang.org/x/image/bmp"
)

var (
	// ErrNotBMP is returned when the file does not start with the "BM" magic.
	ErrNotBMP = errors.New("not a valid BMP file")
	// ErrUnsupportedDepth is returned for any bit depth other than 24.
	ErrUnsupportedDepth = errors.New("only 24-bit BMP is supported")
	// ErrCompressed is returned when the compression field is not zero.
	ErrCompressed = errors.New("compressed BMP not supported")
	// ErrTooLarge is returned when the header dimensions exceed maxBMPPixels.
	ErrTooLarge = errors.New("BMP dimensions too large")
)

const (
	bmpMagic      = 0x4d42
	fileHeaderLen = 14
	infoHeaderLen = 40

	// maxBMPPixels bounds the decoded image to 256 MiB of NRGBA samples.
	maxBMPPixels = 1 << 26
)

// bitmapFileHeader is the 14 byte BITMAPFILEHEADER.
type bitmapFileHeader struct {
	Type      uint16 // must be 0x4d42 ("BM")
	Size      uint32
	Reserved1 uint16
	Reserved2 uint16
	OffBits   uint32 // offset of the pixel array from the start of the file
}

// bitmapInfoHeader is the 40 byte BITMAPINFOHEADER.
type bitmapInfoHeader struct {
	Size            uint32
	Width           int32
	Height          int32 // negative for top-down row order
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	SizeImage       uint32
	XPixelsPerM     int32
	YPixelsPerM     int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// DecodeBMP decodes an uncompressed 24-bit bitmap. Rows are stored bottom-up
// unless the header height is negative, padded to 4 bytes, in B,G,R order.
func DecodeBMP(r io.Reader) (*image.NRGBA, error) {
	br := bufio.NewReader(r)

	var fh bitmapFileHeader
	if err := binary.Read(br, binary.LittleEndian, &fh); err != nil {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if fh.Type != bmpMagic {
		return nil, ErrNotBMP
	}
	var ih bitmapInfoHeader
	if err := binary.Read(br, binary.LittleEndian, &ih); err != nil {
		return nil, fmt.Errorf("reading info header: %w", err)
	}
	if ih.BitCount != 24 {
		return nil, fmt.Errorf("%w: got %d-bit", ErrUnsupportedDepth, ih.BitCount)
	}
	if ih.Compression != 0 {
		return nil, ErrCompressed
	}

	width := int(ih.Width)
	if width < 0 {
		width = -width
	}
	height := int(ih.Height)
	topDown := height < 0
	if topDown {
		height = -height
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("invalid BMP dimensions %dx%d", width, height)
	}
	if width > maxBMPPixels || height > maxBMPPixels || width*height > maxBMPPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}

	// Skip anything between the headers and the pixel array.
	if skip := int64(fh.OffBits) - fileHeaderLen - infoHeaderLen; skip > 0 {
		if _, err := br.Discard(int(skip)); err != nil {
			return nil, fmt.Errorf("seeking to pixel data: %w", err)
		}
	}

	stride := (width*3 + 3) &^ 3
	row := make([]byte, stride)
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(br, row); err != nil {
			return nil, fmt.Errorf("reading pixel row %d: %w", y, err)
		}
		dy := height - 1 - y
		if topDown {
			dy = y
		}
		di := dst.PixOffset(0, dy)
		for x := 0; x < width; x++ {
			dst.Pix[di+0] = row[x*3+2]
			dst.Pix[di+1] = row[x*3+1]
			dst.Pix[di+2] = row[x*3+0]
			dst.Pix[di+3] = 0xff
			di += 4
		}
	}
	Logger().Debug("decoded bitmap", "width", width, "height", height, "topDown", topDown)

	return dst, nil
}

// EncodeBMP writes img as a bitmap. Opaque images are stored with 24 bits per pixel.
func EncodeBMP(w io.Writer, img image.Image) error {
	if f, ok := img.(*Frame); ok {
		img = f.NRGBA()
	}
	return bmp.Encode(w, img)
}
