// Package patcher applies anchored, single-occurrence text edits to source
// files. A patch only touches its target when the anchor is present.
package patcher

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"

	"github.com/kacebover/vdpro-tools/archive"
)

// Common errors
var (
	ErrAnchorNotFound  = errors.New("anchor not found")
	ErrInvalidPatch    = errors.New("invalid patch")
	ErrBinaryFile      = errors.New("target is not a text file")
	ErrInvalidEncoding = errors.New("target is not valid UTF-8")
)

// sniffLen is how much of a file filetype needs to recognize it.
const sniffLen = 262

// Patch replaces the first occurrence of Anchor in the file at Path with
// Replacement.
type Patch struct {
	Path        string
	Anchor      string
	Replacement string
}

// Options control how Apply touches the file system.
type Options struct {
	// DryRun computes the result without writing anything.
	DryRun bool

	// BackupPath, when set, receives a zip of the original file before
	// the target is overwritten.
	BackupPath string
}

// Result describes an applied (or previewed) patch.
type Result struct {
	Path        string
	Offset      int // byte offset of the replaced anchor
	Line        int // 1-based line of the replaced anchor
	Occurrences int // anchor occurrences before patching
	BytesBefore int
	BytesAfter  int
	Written     bool
	BackupPath  string
}

// Validate checks that the patch is well formed.
func (p Patch) Validate() error {
	switch {
	case p.Path == "":
		return fmt.Errorf("%w: empty path", ErrInvalidPatch)
	case p.Anchor == "":
		return fmt.Errorf("%w: empty anchor", ErrInvalidPatch)
	case p.Anchor == p.Replacement:
		return fmt.Errorf("%w: replacement equals anchor", ErrInvalidPatch)
	}
	return nil
}

// ApplyText returns text with the first occurrence of the anchor replaced.
// All other bytes, line endings included, are kept as they are.
func (p Patch) ApplyText(text string) (string, Result, error) {
	res := Result{Path: p.Path, BytesBefore: len(text)}

	offset := strings.Index(text, p.Anchor)
	if offset < 0 {
		return text, res, ErrAnchorNotFound
	}

	res.Offset = offset
	res.Line = strings.Count(text[:offset], "\n") + 1
	res.Occurrences = strings.Count(text, p.Anchor)

	out := strings.Replace(text, p.Anchor, p.Replacement, 1)
	res.BytesAfter = len(out)
	return out, res, nil
}

// Apply reads the target, replaces the first anchor occurrence and writes
// the result back in place. The file is left untouched on any error.
func (p Patch) Apply(opts Options) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Stat(p.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", p.Path, err)
	}

	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p.Path, err)
	}

	if err := checkText(data); err != nil {
		return nil, fmt.Errorf("%s: %w", p.Path, err)
	}

	out, res, err := p.ApplyText(string(data))
	if err != nil {
		return nil, err
	}
	if opts.DryRun {
		return &res, nil
	}

	if opts.BackupPath != "" {
		if err := backup(p.Path, opts.BackupPath, data); err != nil {
			return nil, err
		}
		res.BackupPath = opts.BackupPath
	}

	if err := os.WriteFile(p.Path, []byte(out), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", p.Path, err)
	}
	res.Written = true
	return &res, nil
}

// checkText accepts any NUL-free UTF-8 content. For anything else filetype
// only names what the bytes look like.
func checkText(data []byte) error {
	hasNUL := bytes.IndexByte(data, 0) >= 0
	if !hasNUL && utf8.Valid(data) {
		return nil
	}

	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	if kind, _ := filetype.Match(head); kind != filetype.Unknown {
		return fmt.Errorf("%w: looks like %s", ErrBinaryFile, kind.MIME.Value)
	}
	if hasNUL {
		return fmt.Errorf("%w: contains NUL bytes", ErrBinaryFile)
	}
	return ErrInvalidEncoding
}

// backup stores the original bytes of path in a zip at dst.
func backup(path, dst string, original []byte) error {
	config := archive.DefaultConfig()
	config.OutputPath = dst

	arch, err := archive.New(config)
	if err != nil {
		return fmt.Errorf("failed to back up %s: %w", path, err)
	}
	if _, err := arch.Write([]archive.FileEntry{{
		SourcePath:  path,
		ArchivePath: filepath.Base(path),
		Data:        original,
	}}); err != nil {
		return fmt.Errorf("failed to back up %s: %w", path, err)
	}
	return nil
}

// BackupName returns the default backup archive path for a target file.
func BackupName(path string) string {
	return path + ".orig.zip"
}
