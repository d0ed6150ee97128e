package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexmullins/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kacebover/vdpro-tools/config"
	"github.com/kacebover/vdpro-tools/iconset"
	"github.com/kacebover/vdpro-tools/patcher"
)

// runCLI runs the CLI in-process and captures its output.
func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

// inTempDir switches the test into an empty working directory.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	return dir
}

func writeImportView(t *testing.T, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(patcher.ImportViewPath), 0755))
	require.NoError(t, os.WriteFile(patcher.ImportViewPath, []byte(content), 0644))
	return patcher.ImportViewPath
}

func TestCLI_NoArgsPrintsHelp(t *testing.T) {
	code, stdout, _ := runCLI(t)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stdout, "Commands:")
	assert.Contains(t, stdout, "iconset")
}

func TestCLI_HelpFlag(t *testing.T) {
	for _, arg := range []string{"help", "--help", "-h"} {
		code, stdout, _ := runCLI(t, arg)
		assert.Equal(t, exitOK, code, arg)
		assert.Contains(t, stdout, "Usage:", arg)
	}
}

func TestCLI_UnknownCommand(t *testing.T) {
	code, _, stderr := runCLI(t, "scan")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Unknown command: scan")
}

func TestCLI_BadFlag(t *testing.T) {
	code, _, stderr := runCLI(t, "icon", "-no-such-flag")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "no-such-flag")
}

func TestCLI_SubcommandHelp(t *testing.T) {
	code, _, stderr := runCLI(t, "patch", "-h")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "-dry-run")
}

func TestCLI_Icon(t *testing.T) {
	dir := inTempDir(t)

	code, stdout, stderr := runCLI(t, "icon")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Creating Video Downloader Pro icon...")
	assert.Contains(t, stdout, "Icon saved as app-icon.png")
	assert.Contains(t, stdout, "Size: 1024x1024 pixels")
	assert.Contains(t, stdout, "Now you can run: pnpm tauri icon")

	img, err := iconset.Load(filepath.Join(dir, "app-icon.png"))
	require.NoError(t, err)
	assert.Equal(t, 1024, img.Bounds().Dx())
}

func TestCLI_IconVerboseAndOutput(t *testing.T) {
	dir := inTempDir(t)

	code, stdout, stderr := runCLI(t, "icon", "-verbose", "-output", "custom.png")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "main-circle")
	assert.Contains(t, stdout, "ring-dot-7")
	assert.FileExists(t, filepath.Join(dir, "custom.png"))
	assert.NoFileExists(t, filepath.Join(dir, "app-icon.png"))
}

func TestCLI_IconWithConfig(t *testing.T) {
	dir := inTempDir(t)

	cfg := config.DefaultConfig()
	cfg.Icon.Size = 512
	cfg.Icon.Margin = 40
	cfg.Icon.Output = "small.png"
	require.NoError(t, config.Save("tools.toml", cfg))

	code, stdout, stderr := runCLI(t, "icon", "-config", "tools.toml")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Size: 512x512 pixels")

	img, err := iconset.Load(filepath.Join(dir, "small.png"))
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dx())
}

func TestCLI_IconBadConfig(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("tools.toml", []byte("[icon]\nsize = 0\n"), 0644))

	code, _, stderr := runCLI(t, "icon", "-config", "tools.toml")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "invalid config")

	code, _, _ = runCLI(t, "icon", "-config", "missing.toml")
	assert.Equal(t, exitFailure, code)
}

func TestCLI_IconSet(t *testing.T) {
	dir := inTempDir(t)

	code, stdout, stderr := runCLI(t, "iconset", "-dir", "icons", "-zip", "icons.zip", "-generate-password")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Icon set generated!")
	assert.Contains(t, stdout, "Generated password:")

	assert.FileExists(t, filepath.Join(dir, "app-icon.png"))
	assert.FileExists(t, filepath.Join(dir, "icons", "icon.ico"))

	reader, err := zip.OpenReader(filepath.Join(dir, "icons.zip"))
	require.NoError(t, err)
	defer reader.Close()
	require.NotEmpty(t, reader.File)
	assert.True(t, reader.File[0].IsEncrypted())
}

func TestCLI_IconSetFromExisting(t *testing.T) {
	inTempDir(t)
	code, _, stderr := runCLI(t, "icon")
	require.Equal(t, exitOK, code, stderr)

	code, stdout, stderr := runCLI(t, "iconset", "-from", "app-icon.png", "-proof")
	require.Equal(t, exitOK, code, stderr)
	assert.NotContains(t, stdout, "Creating Video Downloader Pro icon")
	assert.FileExists(t, filepath.Join("src-tauri", "icons", "icons-proof.pdf"))
}

func TestCLI_IconSetPasswordErrors(t *testing.T) {
	inTempDir(t)

	code, _, stderr := runCLI(t, "iconset", "-password", "longenough")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "-zip")

	code, _, stderr = runCLI(t, "iconset", "-zip", "a.zip", "-password", "short")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "at least 8")
	assert.NoFileExists(t, "a.zip")
}

func TestCLI_Patch(t *testing.T) {
	inTempDir(t)
	p := patcher.ImportViewPatch()
	path := writeImportView(t, "head\r\n"+p.Anchor+"tail\r\n")

	code, stdout, stderr := runCLI(t, "patch")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Patched")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "head\r\n"+p.Replacement+"tail\r\n", string(data))

	// second run has nothing to anchor to
	code, _, stderr = runCLI(t, "patch")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "anchor not found")
}

func TestCLI_PatchAnchorMissing(t *testing.T) {
	inTempDir(t)
	original := "export default function ImportView() {}\r\n"
	path := writeImportView(t, original)

	code, stdout, stderr := runCLI(t, "patch", "-backup")
	assert.Equal(t, exitFailure, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "anchor not found")
	assert.Contains(t, stderr, "left unchanged")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
	assert.NoFileExists(t, patcher.BackupName(path))
}

func TestCLI_PatchDryRunAndBackup(t *testing.T) {
	inTempDir(t)
	p := patcher.ImportViewPatch()
	require.NoError(t, os.WriteFile("view.tsx", []byte(p.Anchor), 0644))

	code, stdout, stderr := runCLI(t, "patch", "-file", "view.tsx", "-dry-run", "-backup")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "dry run")
	assert.NoFileExists(t, patcher.BackupName("view.tsx"))

	code, stdout, stderr = runCLI(t, "patch", "-file", "view.tsx", "-backup")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Backup: view.tsx.orig.zip")
	assert.FileExists(t, "view.tsx.orig.zip")
}

func TestCLI_Config(t *testing.T) {
	inTempDir(t)

	code, stdout, stderr := runCLI(t, "config", "-config", "tools.toml", "-init")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Wrote default config")
	assert.FileExists(t, "tools.toml")

	code, _, stderr = runCLI(t, "config", "-config", "tools.toml", "-init")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "already exists")

	code, stdout, stderr = runCLI(t, "config", "-config", "tools.toml")
	require.Equal(t, exitOK, code, stderr)
	assert.True(t, strings.HasPrefix(stdout, "# tools.toml\n"))
	assert.Contains(t, stdout, "[icon]")
	assert.Contains(t, stdout, "#2196F3")
}

func TestCLI_Doctor(t *testing.T) {
	code, stdout, _ := runCLI(t, "doctor")
	assert.Contains(t, []int{exitOK, exitFailure}, code)
	assert.Contains(t, stdout, "Toolchain status")
	assert.Contains(t, stdout, "pnpm")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KB", formatBytes(1536))
	assert.Equal(t, "2.0 MB", formatBytes(2*1024*1024))
}
