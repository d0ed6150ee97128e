package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/kacebover/vdpro-tools/archive"
	"github.com/kacebover/vdpro-tools/config"
	"github.com/kacebover/vdpro-tools/console"
	"github.com/kacebover/vdpro-tools/icon"
	"github.com/kacebover/vdpro-tools/iconset"
	"github.com/kacebover/vdpro-tools/patcher"
	"github.com/kacebover/vdpro-tools/toolchain"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printMainHelp(stdout)
		return exitFailure
	}

	switch args[0] {
	case "icon":
		return runIconCommand(args[1:], stdout, stderr)
	case "iconset":
		return runIconSetCommand(args[1:], stdout, stderr)
	case "patch":
		return runPatchCommand(args[1:], stdout, stderr)
	case "config":
		return runConfigCommand(args[1:], stdout, stderr)
	case "doctor":
		return runDoctorCommand(stdout)
	case "help", "--help", "-h":
		printMainHelp(stdout)
		return exitOK
	}

	console.New(stderr).Error("Unknown command: %s", args[0])
	fmt.Fprintln(stderr, "Run 'vdpro-tools help' for the list of commands.")
	return exitUsage
}

func printMainHelp(w io.Writer) {
	fmt.Fprintln(w, "🎨 Video Downloader Pro - Asset Tools")
	fmt.Fprintln(w, "======================================")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  icon       Render the 1024x1024 app icon (app-icon.png)")
	fmt.Fprintln(w, "  iconset    Generate the Tauri icon set from the app icon")
	fmt.Fprintln(w, "  patch      Apply the anchored ImportView.tsx patch")
	fmt.Fprintln(w, "  config     Print or initialize the configuration file")
	fmt.Fprintln(w, "  doctor     Check node, pnpm and cargo")
	fmt.Fprintln(w, "  help       Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  vdpro-tools icon [options]")
	fmt.Fprintln(w, "  vdpro-tools iconset [options]")
	fmt.Fprintln(w, "  vdpro-tools patch [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  vdpro-tools icon -output app-icon.png")
	fmt.Fprintln(w, "  vdpro-tools iconset -proof -zip icons.zip -generate-password")
	fmt.Fprintln(w, "  vdpro-tools patch -dry-run")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'vdpro-tools <command> -h' for command options.")
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parseFlags maps flag parsing results to an exit code; ok is false when
// the command should stop.
func parseFlags(fs *flag.FlagSet, args []string) (code int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK, false
		}
		return exitUsage, false
	}
	return exitOK, true
}

// loadConfig returns the defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// ICON
// ═══════════════════════════════════════════════════════════════════════════

func runIconCommand(args []string, stdout, stderr io.Writer) int {
	iconCmd := newFlagSet("icon", stderr)
	configPath := iconCmd.String("config", "", "TOML config file (defaults when empty)")
	output := iconCmd.String("output", "", "Output PNG path (default: "+icon.DefaultOutput+")")
	verbose := iconCmd.Bool("verbose", false, "Print each layer as it is drawn")

	if code, ok := parseFlags(iconCmd, args); !ok {
		return code
	}

	errOut := console.New(stderr)
	cfg, err := loadConfig(*configPath)
	if err != nil {
		errOut.Error("%v", err)
		return exitFailure
	}
	if *output != "" {
		cfg.Icon.Output = *output
	}

	out := console.New(stdout)
	out.SetVerbose(*verbose)

	if _, err := renderIcon(out, cfg); err != nil {
		errOut.Error("%v", err)
		return exitFailure
	}

	out.Println()
	out.Println("Now you can run: " + toolchain.NextStep)
	return exitOK
}

// renderIcon draws the configured icon, saves it and reports the result.
func renderIcon(out *console.Printer, cfg *config.Config) (*image.RGBA, error) {
	layout := cfg.Layout()

	out.Step("Creating Video Downloader Pro icon...")
	img, err := icon.RenderWithProgress(layout, func(l icon.Layer) {
		out.Detail("%-12s %s", l.Name, l.Shape.Bounds())
	})
	if err != nil {
		return nil, err
	}
	if err := icon.Save(cfg.Icon.Output, img); err != nil {
		return nil, err
	}

	out.Success("Icon saved as %s", cfg.Icon.Output)
	out.Printf("📐 Size: %dx%d pixels\n", layout.Size, layout.Size)
	out.Println("🖼️  Format: PNG with transparency")
	return img, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// ICON SET
// ═══════════════════════════════════════════════════════════════════════════

func runIconSetCommand(args []string, stdout, stderr io.Writer) int {
	iconSetCmd := newFlagSet("iconset", stderr)
	configPath := iconSetCmd.String("config", "", "TOML config file (defaults when empty)")
	from := iconSetCmd.String("from", "", "Existing source PNG (renders the icon when empty)")
	dir := iconSetCmd.String("dir", "", "Output directory (default: src-tauri/icons)")
	proof := iconSetCmd.Bool("proof", false, "Also write a PDF proof sheet")
	zipPath := iconSetCmd.String("zip", "", "Also bundle every file into this zip")
	password := iconSetCmd.String("password", "", "Encrypt the zip with this password")
	generatePwd := iconSetCmd.Bool("generate-password", false, "Encrypt the zip with a random password")
	pwdLength := iconSetCmd.Int("password-length", 16, "Length of the generated password")
	verbose := iconSetCmd.Bool("verbose", false, "List every file written")

	if code, ok := parseFlags(iconSetCmd, args); !ok {
		return code
	}

	errOut := console.New(stderr)
	cfg, err := loadConfig(*configPath)
	if err != nil {
		errOut.Error("%v", err)
		return exitFailure
	}

	out := console.New(stdout)
	out.SetVerbose(*verbose)

	opts := iconset.Options{
		Dir:        cfg.IconSet.Dir,
		Proof:      cfg.IconSet.Proof || *proof,
		BundlePath: cfg.IconSet.Bundle,
		OnFile: func(path string) {
			out.Detail("%s", path)
		},
	}
	if *dir != "" {
		opts.Dir = *dir
	}
	if *zipPath != "" {
		opts.BundlePath = *zipPath
	}

	pwd := *password
	if *generatePwd {
		pwd, err = archive.GeneratePassword(*pwdLength)
		if err != nil {
			errOut.Error("Failed to generate password: %v", err)
			return exitFailure
		}
	}
	if pwd != "" {
		if opts.BundlePath == "" {
			errOut.Error("A password needs a bundle (-zip)")
			return exitUsage
		}
		if err := archive.ValidatePassword(pwd); err != nil {
			errOut.Error("%v", err)
			return exitFailure
		}
		opts.BundlePassword = pwd
	}

	var src image.Image
	if *from != "" {
		src, err = iconset.Load(*from)
	} else {
		src, err = renderIcon(out, cfg)
	}
	if err != nil {
		errOut.Error("%v", err)
		return exitFailure
	}

	out.Step("Generating icon set in %s...", opts.Dir)
	res, err := iconset.Generate(src, opts)
	if err != nil {
		errOut.Error("%v", err)
		return exitFailure
	}

	out.Success("Icon set generated!")
	out.Rule()
	out.Printf("📁 Directory:   %s\n", res.Dir)
	out.Printf("🗂️  Files:       %d\n", len(res.Files))
	if res.ProofPath != "" {
		out.Printf("📄 Proof sheet: %s\n", res.ProofPath)
	}
	if res.Bundle != nil {
		out.Printf("📦 Bundle:      %s (%s)\n", res.Bundle.OutputPath, formatBytes(res.Bundle.ArchiveSize))
	}
	out.Rule()

	if *generatePwd {
		out.Println()
		out.Println("🔑 Generated password:")
		out.Println()
		out.Printf("   %s\n", pwd)
		out.Println()
		out.Warn("Save this password! It cannot be recovered.")
	}
	return exitOK
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), []string{"KB", "MB", "GB", "TB"}[exp])
}

// ═══════════════════════════════════════════════════════════════════════════
// PATCH
// ═══════════════════════════════════════════════════════════════════════════

func runPatchCommand(args []string, stdout, stderr io.Writer) int {
	patchCmd := newFlagSet("patch", stderr)
	configPath := patchCmd.String("config", "", "TOML config file (defaults when empty)")
	file := patchCmd.String("file", "", "File to patch (default: "+patcher.ImportViewPath+")")
	dryRun := patchCmd.Bool("dry-run", false, "Only check that the anchor is present")
	backup := patchCmd.Bool("backup", false, "Zip the original next to the file before writing")
	verbose := patchCmd.Bool("verbose", false, "Verbose output")

	if code, ok := parseFlags(patchCmd, args); !ok {
		return code
	}

	errOut := console.New(stderr)
	cfg, err := loadConfig(*configPath)
	if err != nil {
		errOut.Error("%v", err)
		return exitFailure
	}

	p := cfg.TextPatch()
	if *file != "" {
		p.Path = *file
	}

	opts := patcher.Options{DryRun: *dryRun}
	if (cfg.Patch.Backup || *backup) && !*dryRun {
		opts.BackupPath = patcher.BackupName(p.Path)
	}

	out := console.New(stdout)
	out.SetVerbose(*verbose)
	out.Detail("Target: %s", p.Path)

	res, err := p.Apply(opts)
	if err != nil {
		errOut.Error("%v", err)
		if errors.Is(err, patcher.ErrAnchorNotFound) {
			fmt.Fprintf(stderr, "   %s was left unchanged (already patched?)\n", filepath.ToSlash(p.Path))
		}
		return exitFailure
	}

	if *dryRun {
		out.Success("Anchor found at line %d of %s (dry run, nothing written)", res.Line, p.Path)
	} else {
		out.Success("Patched %s at line %d", p.Path, res.Line)
		out.Detail("%d → %d bytes", res.BytesBefore, res.BytesAfter)
		if res.BackupPath != "" {
			out.Printf("📦 Backup: %s\n", res.BackupPath)
		}
	}
	if res.Occurrences > 1 {
		out.Warn("%d more occurrence(s) of the anchor left untouched", res.Occurrences-1)
	}
	return exitOK
}

// ═══════════════════════════════════════════════════════════════════════════
// CONFIG
// ═══════════════════════════════════════════════════════════════════════════

func runConfigCommand(args []string, stdout, stderr io.Writer) int {
	configCmd := newFlagSet("config", stderr)
	configPath := configCmd.String("config", "", "Config file (default: per-user config directory)")
	initFile := configCmd.Bool("init", false, "Write the default config to the file")

	if code, ok := parseFlags(configCmd, args); !ok {
		return code
	}

	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}
	errOut := console.New(stderr)

	if *initFile {
		if _, err := os.Stat(path); err == nil {
			errOut.Error("%s already exists", path)
			return exitFailure
		}
		if err := config.Save(path, config.DefaultConfig()); err != nil {
			errOut.Error("%v", err)
			return exitFailure
		}
		console.New(stdout).Success("Wrote default config to %s", path)
		return exitOK
	}

	cfg := config.DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		if cfg, err = config.Load(path); err != nil {
			errOut.Error("%v", err)
			return exitFailure
		}
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		errOut.Error("%v", err)
		return exitFailure
	}
	fmt.Fprintf(stdout, "# %s\n", path)
	stdout.Write(data)
	if !strings.HasSuffix(string(data), "\n") {
		fmt.Fprintln(stdout)
	}
	return exitOK
}

// ═══════════════════════════════════════════════════════════════════════════
// DOCTOR
// ═══════════════════════════════════════════════════════════════════════════

func runDoctorCommand(stdout io.Writer) int {
	dc := toolchain.NewDependencyChecker()
	dc.CheckAll()
	fmt.Fprint(stdout, dc.FormatStatusReport())

	if !dc.CanRunNextStep() {
		fmt.Fprintln(stdout)
		fmt.Fprintf(stdout, "⚠️  '%s' needs pnpm\n", toolchain.NextStep)
		return exitFailure
	}
	return exitOK
}
