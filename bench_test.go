package pixelpipe

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

func BenchmarkPipelineRun(b *testing.B) {
	src := randomFrame(90)
	p := NewPipeline(src)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Run(context.Background()); err != nil {
			b.Fatalf("Failed running the blur pipeline: %v", err)
		}
	}
}

func BenchmarkProcess(b *testing.B) {
	var buf bytes.Buffer
	if err := EncodeBMP(&buf, randomFrame(91)); err != nil {
		b.Fatalf("Failed encoding benchmark image: %v", err)
	}
	out := filepath.Join(b.TempDir(), "out.hex")
	proc := Processor{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := proc.Process(context.Background(), bytes.NewReader(buf.Bytes()), "sample.bmp", out); err != nil {
			b.Fatalf("Failed processing benchmark image: %v", err)
		}
	}
}
