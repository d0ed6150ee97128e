// Command makeicon writes the Video Downloader Pro app icon (app-icon.png)
// into the current directory. It takes no arguments.
package main

import (
	"io"
	"os"

	"github.com/kacebover/vdpro-tools/console"
	"github.com/kacebover/vdpro-tools/icon"
	"github.com/kacebover/vdpro-tools/toolchain"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr))
}

func run(stdout, stderr io.Writer) int {
	out := console.New(stdout)
	layout := icon.DefaultLayout()

	out.Step("Creating Video Downloader Pro icon...")

	img, err := icon.Render(layout)
	if err != nil {
		console.New(stderr).Error("%v", err)
		return 1
	}
	if err := icon.Save(icon.DefaultOutput, img); err != nil {
		console.New(stderr).Error("%v", err)
		return 1
	}

	out.Success("Icon saved as %s", icon.DefaultOutput)
	out.Printf("📐 Size: %dx%d pixels\n", layout.Size, layout.Size)
	out.Println("🖼️  Format: PNG with transparency")
	out.Println()
	out.Println("Now you can run: " + toolchain.NextStep)
	return 0
}
