package pixelpipe

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func hexLines(f *Frame, n int) []string {
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, fmt.Sprintf("%X", uint16(f[i])))
	}
	return lines
}

func TestWriteHex(t *testing.T) {
	f := new(Frame)
	f[0] = 0x001F
	f[1] = 0xABCD
	f[FrameSize-1] = 0xFFFF

	var buf bytes.Buffer
	if err := WriteHex(&buf, f); err != nil {
		t.Fatal(err)
	}

	sc := bufio.NewScanner(&buf)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if len(lines) != FrameSize {
		t.Fatalf("expected %d lines, got %d", FrameSize, len(lines))
	}
	if lines[0] != "001F" || lines[1] != "ABCD" || lines[2] != "0000" || lines[FrameSize-1] != "FFFF" {
		t.Fatalf("unexpected tokens: %q %q %q %q", lines[0], lines[1], lines[2], lines[FrameSize-1])
	}
}

func TestReadHex_RoundTrip(t *testing.T) {
	src := randomFrame(20)
	var buf bytes.Buffer
	if err := WriteHex(&buf, src); err != nil {
		t.Fatal(err)
	}
	got, stats, err := ReadHex(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *src {
		t.Fatal("round trip mismatch")
	}
	if stats.Parsed != FrameSize || stats.Skipped != 0 || stats.Padded != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestReadHex_SkipsNoise(t *testing.T) {
	src := randomFrame(21)
	clean := hexLines(src, FrameSize)

	var noisy []string
	noisy = append(noisy, "// memory dump of frame_buffer", "")
	for i, l := range clean {
		switch i {
		case 10:
			noisy = append(noisy, "xxxx")
		case 500:
			noisy = append(noisy, "   ", "# comment")
		case 1000:
			noisy = append(noisy, "12X4", "zzzz", "12345", "@0000", "GHIJ")
		}
		noisy = append(noisy, l)
	}

	want, _, err := ReadHex(strings.NewReader(strings.Join(clean, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	got, stats, err := ReadHex(strings.NewReader(strings.Join(noisy, "\r\n")))
	if err != nil {
		t.Fatal(err)
	}
	if *got != *want {
		t.Fatal("noisy stream parsed differently from the clean stream")
	}
	if stats.Parsed != FrameSize || stats.Skipped != 10 || stats.Padded != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestReadHex_ShortTokens(t *testing.T) {
	got, _, err := ReadHex(strings.NewReader("1\nab\n  7e0  \nF800\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []Pixel{0x0001, 0x00AB, 0x07E0, 0xF800}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("pixel %d = %04X, want %04X", i, got[i], w)
		}
	}
}

func TestReadHex_TruncationRecovery(t *testing.T) {
	src := randomFrame(22)
	const k = 1234
	got, stats, err := ReadHex(strings.NewReader(strings.Join(hexLines(src, k), "\n")))
	if err != nil {
		t.Fatal(err)
	}
	if stats.Parsed != k || stats.Padded != FrameSize-k {
		t.Fatalf("unexpected stats %+v", stats)
	}
	for i := 0; i < k; i++ {
		if got[i] != src[i] {
			t.Fatalf("pixel %d = %04X, want %04X", i, got[i], src[i])
		}
	}
	for i := k; i < FrameSize; i++ {
		if got[i] != src[k-1] {
			t.Fatalf("padded pixel %d = %04X, want %04X", i, got[i], src[k-1])
		}
	}
}

func TestReadHex_EmptyStream(t *testing.T) {
	got, stats, err := ReadHex(strings.NewReader("// nothing here\n\nxxxx\n"))
	if err != nil {
		t.Fatal(err)
	}
	if *got != (Frame{}) {
		t.Fatal("expected a black frame")
	}
	if stats.Parsed != 0 || stats.Skipped != 3 || stats.Padded != FrameSize {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestReadHex_IgnoresExtraTokens(t *testing.T) {
	src := Fill(0x1234)
	var buf bytes.Buffer
	if err := WriteHex(&buf, src); err != nil {
		t.Fatal(err)
	}
	buf.WriteString("FFFF\nFFFF\n")

	got, stats, err := ReadHex(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *src || stats.Parsed != FrameSize {
		t.Fatalf("expected extra tokens to be ignored, stats %+v", stats)
	}
}

func TestReadHex_SkipsOverlongLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Pixel
	}{
		{"middle", "1234\n" + strings.Repeat("A", 70000) + "\n5678\n", []Pixel{0x1234, 0x5678}},
		{"comment", "// " + strings.Repeat("#", 5000) + "\r\nABCD\n", []Pixel{0xABCD}},
		{"unterminated tail", "0001\n" + strings.Repeat("f", 9000), []Pixel{0x0001}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, stats, err := ReadHex(strings.NewReader(tc.in))
			if err != nil {
				t.Fatal(err)
			}
			if stats.Parsed != len(tc.want) || stats.Skipped != 1 {
				t.Fatalf("unexpected stats %+v", stats)
			}
			for i, w := range tc.want {
				if got[i] != w {
					t.Fatalf("pixel %d = %04X, want %04X", i, got[i], w)
				}
			}
			if last := tc.want[len(tc.want)-1]; got[FrameSize-1] != last {
				t.Fatalf("expected padding with %04X, got %04X", last, got[FrameSize-1])
			}
		})
	}
}

func TestReadHex_ReaderError(t *testing.T) {
	errDisk := errors.New("disk failure")
	r := io.MultiReader(strings.NewReader("0001\n0002\n"), iotest.ErrReader(errDisk))
	if _, _, err := ReadHex(r); !errors.Is(err, errDisk) {
		t.Fatalf("expected the reader error, got %v", err)
	}
}
