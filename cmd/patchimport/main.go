// Command patchimport applies the ImportView.tsx task selection patch in
// the current directory. It takes no arguments and prints nothing on
// success.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kacebover/vdpro-tools/patcher"
)

func main() {
	os.Exit(run(os.Stderr))
}

func run(stderr io.Writer) int {
	if _, err := patcher.ImportViewPatch().Apply(patcher.Options{}); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
