// Package iconset derives the platform icon files a Tauri app bundles
// (sized PNGs, icon.ico, icon.icns) from one square source image.
package iconset

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/jackmordaunt/icns/v2"
	ico "github.com/sergeymakinen/go-ico"
	xdraw "golang.org/x/image/draw"

	"github.com/kacebover/vdpro-tools/archive"
	"github.com/kacebover/vdpro-tools/icon"
)

// Common errors
var (
	ErrNotSquare      = errors.New("source icon is not square")
	ErrSourceTooSmall = errors.New("source icon is too small")
)

const (
	icoName   = "icon.ico"
	icoSize   = 256
	icnsName  = "icon.icns"
	proofName = "icons-proof.pdf"
)

// Entry is one PNG of the icon set.
type Entry struct {
	Name string
	Size int
}

// TauriEntries returns the PNG files `tauri icon` produces.
func TauriEntries() []Entry {
	return []Entry{
		{"32x32.png", 32},
		{"128x128.png", 128},
		{"128x128@2x.png", 256},
		{"icon.png", 512},
		{"Square30x30Logo.png", 30},
		{"Square44x44Logo.png", 44},
		{"Square71x71Logo.png", 71},
		{"Square89x89Logo.png", 89},
		{"Square107x107Logo.png", 107},
		{"Square142x142Logo.png", 142},
		{"Square150x150Logo.png", 150},
		{"Square284x284Logo.png", 284},
		{"Square310x310Logo.png", 310},
		{"StoreLogo.png", 50},
	}
}

// Options control icon set generation.
type Options struct {
	// Dir receives the generated files; it is created if missing.
	Dir string

	// Proof writes a PDF contact sheet of all PNG sizes.
	Proof bool

	// BundlePath, when set, receives a zip of every generated file.
	BundlePath string

	// BundlePassword encrypts the bundle with AES-256 when set.
	BundlePassword string

	// OnFile is called with the path of each file once written.
	OnFile func(path string)
}

// Result lists what Generate wrote.
type Result struct {
	Dir       string
	Files     []string
	ProofPath string
	Bundle    *archive.Result
}

// Load decodes a PNG to use as the icon set source.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// Scale resamples src to a size×size image.
func Scale(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// Generate writes the full icon set for src into opts.Dir.
func Generate(src image.Image, opts Options) (*Result, error) {
	b := src.Bounds()
	if b.Dx() != b.Dy() {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotSquare, b.Dx(), b.Dy())
	}
	if b.Dx() < icoSize {
		return nil, fmt.Errorf("%w: need at least %dpx, got %dpx", ErrSourceTooSmall, icoSize, b.Dx())
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", opts.Dir, err)
	}

	res := &Result{Dir: opts.Dir}
	written := func(path string) {
		res.Files = append(res.Files, path)
		if opts.OnFile != nil {
			opts.OnFile(path)
		}
	}

	var pngs []proofImage
	for _, e := range TauriEntries() {
		path := filepath.Join(opts.Dir, e.Name)
		img := Scale(src, e.Size)
		if err := icon.Save(path, img); err != nil {
			return nil, err
		}
		pngs = append(pngs, proofImage{Entry: e, Path: path})
		written(path)
	}

	icoPath := filepath.Join(opts.Dir, icoName)
	if err := writeICO(icoPath, Scale(src, icoSize)); err != nil {
		return nil, err
	}
	written(icoPath)

	icnsPath := filepath.Join(opts.Dir, icnsName)
	if err := writeICNS(icnsPath, src); err != nil {
		return nil, err
	}
	written(icnsPath)

	if opts.Proof {
		proofPath := filepath.Join(opts.Dir, proofName)
		if err := writeProof(proofPath, pngs); err != nil {
			return nil, err
		}
		res.ProofPath = proofPath
		written(proofPath)
	}

	if opts.BundlePath != "" {
		bundle, err := writeBundle(opts.BundlePath, opts.BundlePassword, res.Files)
		if err != nil {
			return nil, err
		}
		res.Bundle = bundle
	}

	return res, nil
}

func writeICO(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := ico.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

func writeICNS(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := icns.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

func writeBundle(path, password string, files []string) (*archive.Result, error) {
	config := archive.DefaultConfig()
	config.OutputPath = path
	config.Password = password

	arch, err := archive.New(config)
	if err != nil {
		return nil, err
	}

	entries := make([]archive.FileEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, archive.FileEntry{SourcePath: f, ArchivePath: filepath.Join("icons", filepath.Base(f))})
	}
	return arch.Write(entries)
}
