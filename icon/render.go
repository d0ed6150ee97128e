package icon

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/vector"
)

// Render draws the icon described by l onto a new transparent canvas.
func Render(l Layout) (*image.RGBA, error) {
	return RenderWithProgress(l, nil)
}

// RenderWithProgress is Render, calling onLayer after each layer is painted.
func RenderWithProgress(l Layout, onLayer func(Layer)) (*image.RGBA, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, l.Size, l.Size))
	z := vector.NewRasterizer(l.Size, l.Size)

	for _, layer := range l.Layers() {
		z.Reset(l.Size, l.Size)
		z.DrawOp = draw.Over
		layer.Shape.Path(z)
		z.Draw(canvas, canvas.Bounds(), image.NewUniform(layer.Color), image.Point{})

		if onLayer != nil {
			onLayer(layer)
		}
	}

	return canvas, nil
}

// Encode writes img as an 8-bit RGBA PNG.
func Encode(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	return enc.Encode(w, img)
}

// Save writes img as a PNG at path, replacing any existing file. The PNG is
// encoded in memory and renamed into place, so a failed save leaves the old
// file untouched.
func Save(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".app-icon-*.png")
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	tmp := f.Name()

	_, err = f.Write(buf.Bytes())
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp, 0644)
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
