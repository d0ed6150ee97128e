// Package toolchain detects the external tools needed to turn the generated
// icon into a Tauri icon set (node, npm, pnpm, cargo) and suggests how to
// install the missing ones.
package toolchain

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// NextStep is the command that consumes app-icon.png.
const NextStep = "pnpm tauri icon"

// DependencyStatus represents the status of a single tool
type DependencyStatus struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Available   bool   `json:"available"`
	Version     string `json:"version,omitempty"`
	Path        string `json:"path,omitempty"`
	Description string `json:"description"`
	InstallHint string `json:"install_hint"`
}

// tool describes how to find one dependency.
type tool struct {
	key, name, binary, versionFlag, description string
	hints                                       map[string]string
}

var tools = []tool{
	{
		key: "node", name: "Node.js", binary: "node", versionFlag: "--version",
		description: "JavaScript runtime for the Tauri CLI",
		hints: map[string]string{
			"darwin":  "brew install node",
			"linux":   "sudo apt install nodejs",
			"windows": "Download: https://nodejs.org/en/download",
		},
	},
	{
		key: "npm", name: "npm", binary: "npm", versionFlag: "--version",
		description: "Installs pnpm on systems without a package for it",
		hints: map[string]string{
			"darwin":  "brew install node",
			"linux":   "sudo apt install npm",
			"windows": "Download: https://nodejs.org/en/download",
		},
	},
	{
		key: "pnpm", name: "pnpm", binary: "pnpm", versionFlag: "--version",
		description: "Package manager running `" + NextStep + "`",
		hints: map[string]string{
			"darwin":  "brew install pnpm",
			"linux":   "npm install -g pnpm",
			"windows": "npm install -g pnpm",
		},
	},
	{
		key: "cargo", name: "Rust (cargo)", binary: "cargo", versionFlag: "--version",
		description: "Builds the Tauri backend that embeds the icons",
		hints: map[string]string{
			"darwin":  "curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh",
			"linux":   "curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh",
			"windows": "Download: https://rustup.rs",
		},
	},
}

// DependencyChecker checks for the tools in a fixed order
type DependencyChecker struct {
	results []*DependencyStatus
	goos    string

	lookPath func(string) (string, error)
	version  func(path, flag string) (string, error)
}

// NewDependencyChecker creates a new dependency checker
func NewDependencyChecker() *DependencyChecker {
	return &DependencyChecker{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		version:  runVersion,
	}
}

func runVersion(path, flag string) (string, error) {
	out, err := exec.Command(path, flag).Output()
	if err != nil {
		return "", err
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(lines[0]), nil
}

// CheckAll checks all tools and returns their statuses in a stable order
func (dc *DependencyChecker) CheckAll() []*DependencyStatus {
	dc.results = dc.results[:0]
	for _, t := range tools {
		dc.results = append(dc.results, dc.check(t))
	}
	return dc.results
}

func (dc *DependencyChecker) check(t tool) *DependencyStatus {
	status := &DependencyStatus{
		Key:         t.key,
		Name:        t.name,
		Description: t.description,
		InstallHint: dc.installHint(t),
	}

	path, err := dc.lookPath(t.binary)
	if err != nil {
		return status
	}
	status.Available = true
	status.Path = path
	if v, err := dc.version(path, t.versionFlag); err == nil {
		status.Version = v
	}
	return status
}

// installHint returns platform-specific install instructions
func (dc *DependencyChecker) installHint(t tool) string {
	if hint, ok := t.hints[dc.goos]; ok {
		return hint
	}
	return "Install " + t.name + " for your system"
}

// Status returns the result for key, checking on demand.
func (dc *DependencyChecker) Status(key string) *DependencyStatus {
	for _, s := range dc.results {
		if s.Key == key {
			return s
		}
	}
	for _, t := range tools {
		if t.key == key {
			s := dc.check(t)
			dc.results = append(dc.results, s)
			return s
		}
	}
	return nil
}

// CanRunNextStep reports whether pnpm is on PATH.
func (dc *DependencyChecker) CanRunNextStep() bool {
	s := dc.Status("pnpm")
	return s != nil && s.Available
}

// GetMissingDependencies returns the tools that are not available
func (dc *DependencyChecker) GetMissingDependencies() []*DependencyStatus {
	var missing []*DependencyStatus
	for _, status := range dc.results {
		if !status.Available {
			missing = append(missing, status)
		}
	}
	return missing
}

// FormatStatusReport returns a formatted string with tool statuses
func (dc *DependencyChecker) FormatStatusReport() string {
	var sb strings.Builder
	sb.WriteString("📋 Toolchain status:\n\n")

	for _, status := range dc.results {
		if status.Available {
			sb.WriteString(fmt.Sprintf("✅ %s", status.Name))
			if status.Version != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", status.Version))
			}
			sb.WriteString("\n")
		} else {
			sb.WriteString(fmt.Sprintf("❌ %s - not installed\n", status.Name))
			sb.WriteString(fmt.Sprintf("   💡 %s\n", status.InstallHint))
		}
	}

	return sb.String()
}
