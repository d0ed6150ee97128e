package icon

import (
	"io"
	"testing"
)

// BenchmarkRender benchmarks drawing the default 1024px icon
func BenchmarkRender(b *testing.B) {
	l := DefaultLayout()
	for i := 0; i < b.N; i++ {
		if _, err := Render(l); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkEncode benchmarks PNG encoding of the default icon
func BenchmarkEncode(b *testing.B) {
	img, err := Render(DefaultLayout())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Encode(io.Discard, img); err != nil {
			b.Fatal(err)
		}
	}
}
