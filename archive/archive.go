// Package archive writes zip bundles of generated assets and backups,
// optionally protected with AES-256 encryption.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexmullins/zip"
)

// Common errors
var (
	ErrNoFiles          = errors.New("no files provided for archiving")
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidOutput    = errors.New("invalid output path")
)

// ProgressCallback is called after each entry is written.
// written: entries written so far
// total: entries requested
// name: archive path of the entry just written
type ProgressCallback func(written, total int, name string)

// Config holds archive configuration
type Config struct {
	// OutputPath is the full path for the output ZIP file
	OutputPath string

	// Password enables AES-256 encryption of every entry when set
	Password string

	// Compress selects deflate; entries are stored uncompressed otherwise
	Compress bool

	// OnProgress is called to report archiving progress
	OnProgress ProgressCallback

	// BufferSize for streaming file entries (default: 32KB)
	BufferSize int
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Compress:   true,
		BufferSize: 32 * 1024,
	}
}

// FileEntry is one file to put in the archive. Data, when non-nil, is
// written instead of reading SourcePath.
type FileEntry struct {
	SourcePath  string
	ArchivePath string
	Data        []byte
}

// name returns the slash-separated path of the entry inside the archive.
func (f FileEntry) name() string {
	name := f.ArchivePath
	if name == "" {
		name = filepath.Base(f.SourcePath)
	}
	return strings.ReplaceAll(name, string(os.PathSeparator), "/")
}

// Result describes a written archive
type Result struct {
	OutputPath  string
	Files       int
	TotalSize   int64
	ArchiveSize int64
	Encrypted   bool
}

// Archiver writes zip archives
type Archiver struct {
	config Config
}

// New creates an Archiver with the given config
func New(config Config) (*Archiver, error) {
	if config.OutputPath == "" {
		return nil, ErrInvalidOutput
	}
	if config.BufferSize <= 0 {
		config.BufferSize = 32 * 1024
	}
	return &Archiver{config: config}, nil
}

// Write creates the archive with the given entries. A partially written
// archive is removed on failure.
func (a *Archiver) Write(files []FileEntry) (*Result, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	for _, f := range files {
		if f.Data != nil {
			continue
		}
		if _, err := os.Stat(f.SourcePath); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, f.SourcePath)
			}
			if os.IsPermission(err) {
				return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, f.SourcePath)
			}
			return nil, fmt.Errorf("failed to stat file %s: %w", f.SourcePath, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(a.config.OutputPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	out, err := os.Create(a.config.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	total, err := a.writeAll(out, files)
	if err == nil {
		err = out.Close()
	} else {
		out.Close()
	}
	if err != nil {
		os.Remove(a.config.OutputPath)
		return nil, err
	}

	info, err := os.Stat(a.config.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat output archive: %w", err)
	}

	return &Result{
		OutputPath:  a.config.OutputPath,
		Files:       len(files),
		TotalSize:   total,
		ArchiveSize: info.Size(),
		Encrypted:   a.config.Password != "",
	}, nil
}

func (a *Archiver) writeAll(w io.Writer, files []FileEntry) (int64, error) {
	zw := zip.NewWriter(w)

	var total int64
	for i, f := range files {
		n, err := a.addEntry(zw, f)
		if err != nil {
			zw.Close()
			return 0, err
		}
		total += n

		if a.config.OnProgress != nil {
			a.config.OnProgress(i+1, len(files), f.name())
		}
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("failed to finish archive: %w", err)
	}
	return total, nil
}

// addEntry writes a single entry and returns its uncompressed size.
func (a *Archiver) addEntry(zw *zip.Writer, f FileEntry) (int64, error) {
	name := f.name()

	var dst io.Writer
	var err error
	if a.config.Password != "" {
		// alexmullins/zip always deflates encrypted entries
		dst, err = zw.Encrypt(name, a.config.Password)
	} else {
		method := zip.Store
		if a.config.Compress {
			method = zip.Deflate
		}
		dst, err = zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create archive entry for %s: %w", name, err)
	}

	var src io.Reader
	if f.Data != nil {
		src = bytes.NewReader(f.Data)
	} else {
		file, err := os.Open(f.SourcePath)
		if err != nil {
			if os.IsPermission(err) {
				return 0, fmt.Errorf("%w: %s", ErrPermissionDenied, f.SourcePath)
			}
			return 0, fmt.Errorf("failed to open file %s: %w", f.SourcePath, err)
		}
		defer file.Close()
		src = file
	}

	n, err := io.CopyBuffer(dst, src, make([]byte, a.config.BufferSize))
	if err != nil {
		return 0, fmt.Errorf("failed to write %s to archive: %w", name, err)
	}
	return n, nil
}
