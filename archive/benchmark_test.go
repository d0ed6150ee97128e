package archive

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"
)

// createBenchFile creates a file of the given size with random content
func createBenchFile(b *testing.B, dir string, size int) string {
	b.Helper()

	data := make([]byte, size)
	rand.Read(data)

	path := filepath.Join(dir, "bench.bin")
	if err := os.WriteFile(path, data, 0644); err != nil {
		b.Fatalf("Failed to write bench file: %v", err)
	}
	return path
}

// BenchmarkWrite1MB benchmarks a plain deflated bundle
func BenchmarkWrite1MB(b *testing.B) {
	benchmarkWrite(b, 1024*1024, "")
}

// BenchmarkWriteEncrypted1MB benchmarks an AES-256 bundle
func BenchmarkWriteEncrypted1MB(b *testing.B) {
	benchmarkWrite(b, 1024*1024, "bench-password")
}

func benchmarkWrite(b *testing.B, size int, password string) {
	tmpDir := b.TempDir()
	src := createBenchFile(b, tmpDir, size)

	config := DefaultConfig()
	config.Password = password
	config.OutputPath = filepath.Join(tmpDir, "bench.zip")

	arch, err := New(config)
	if err != nil {
		b.Fatal(err)
	}

	b.SetBytes(int64(size))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := arch.Write([]FileEntry{{SourcePath: src}}); err != nil {
			b.Fatal(err)
		}
	}
}
