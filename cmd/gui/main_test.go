package main

import (
	"image/color"
	"strings"
	"testing"

	"github.com/kacebover/vdpro-tools/archive"
	"github.com/kacebover/vdpro-tools/icon"
	"github.com/kacebover/vdpro-tools/iconset"
	"github.com/kacebover/vdpro-tools/patcher"
)

// TestLayerDescription tests the layer list text
func TestLayerDescription(t *testing.T) {
	layers := icon.DefaultLayout().Layers()

	got := layerDescription(layers[0])
	want := "main-circle  #2196F3  865x865 at (80,80)"
	if got != want {
		t.Errorf("layerDescription = %q, want %q", got, want)
	}

	for _, l := range layers {
		if !strings.HasPrefix(layerDescription(l), l.Name+"  #") {
			t.Errorf("description of %s does not start with its name and color", l.Name)
		}
	}
}

// TestColorHex tests color formatting with and without alpha
func TestColorHex(t *testing.T) {
	tests := []struct {
		c        color.NRGBA
		expected string
	}{
		{color.NRGBA{R: 255, G: 87, B: 34, A: 255}, "#FF5722"},
		{color.NRGBA{R: 1, G: 2, B: 3, A: 128}, "#01020380"},
	}

	for _, tt := range tests {
		if got := colorHex(tt.c); got != tt.expected {
			t.Errorf("colorHex(%v) = %s, want %s", tt.c, got, tt.expected)
		}
	}
}

// TestPatchSummary tests patch status messages
func TestPatchSummary(t *testing.T) {
	preview := &patcher.Result{Path: "/app/src/components/Import/ImportView.tsx", Line: 42}
	if got := patchSummary(preview); got != "Anchor found at line 42 of ImportView.tsx" {
		t.Errorf("preview summary = %q", got)
	}

	applied := &patcher.Result{Path: "ImportView.tsx", Line: 3, BytesBefore: 100, BytesAfter: 180, Occurrences: 1, Written: true}
	got := patchSummary(applied)
	if !strings.HasPrefix(got, "Patched ImportView.tsx at line 3") {
		t.Errorf("applied summary = %q", got)
	}
	if strings.Contains(got, "untouched") {
		t.Errorf("single occurrence should not mention leftovers: %q", got)
	}

	applied.Occurrences = 3
	if got := patchSummary(applied); !strings.Contains(got, "2 more occurrence(s) left untouched") {
		t.Errorf("multi occurrence summary = %q", got)
	}
}

// TestIconSetSummary tests icon set status messages
func TestIconSetSummary(t *testing.T) {
	res := &iconset.Result{Dir: "src-tauri/icons", Files: make([]string, 16)}
	if got := iconSetSummary(res); got != "Wrote 16 files to src-tauri/icons" {
		t.Errorf("summary = %q", got)
	}

	res.Bundle = &archive.Result{OutputPath: "icons.zip", ArchiveSize: 2048}
	if got := iconSetSummary(res); !strings.HasSuffix(got, "Bundle: icons.zip (2048 bytes)") {
		t.Errorf("summary with bundle = %q", got)
	}
}

// TestParsePositive tests settings number parsing
func TestParsePositive(t *testing.T) {
	if n, err := parsePositive("Ring dots", " 12 "); err != nil || n != 12 {
		t.Errorf("parsePositive(12) = %d, %v", n, err)
	}

	for _, bad := range []string{"", "0", "-4", "abc"} {
		if _, err := parsePositive("Ring dots", bad); err == nil {
			t.Errorf("parsePositive(%q) should fail", bad)
		}
	}
}

// TestCheckerPixel tests the transparency backdrop pattern
func TestCheckerPixel(t *testing.T) {
	if checkerPixel(0, 0, 100, 100) == checkerPixel(16, 0, 100, 100) {
		t.Error("adjacent checker cells have the same color")
	}
	if checkerPixel(0, 0, 100, 100) != checkerPixel(16, 16, 100, 100) {
		t.Error("diagonal checker cells differ")
	}
}
