//go:build ignore
// +build ignore

// Generates ImportView.tsx fixtures for trying the patch commands by hand:
//
//	go run testdata/generate_test_files.go [dir]
//	cd <dir>/anchored && vdpro-tools patch -dry-run
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kacebover/vdpro-tools/patcher"
)

// crlf converts a LF-only snippet to the line endings the app sources use.
func crlf(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}

const header = `import { useState } from 'react';
import { useDownloadStore } from '../../stores/downloadStore';

export default function ImportView() {
  const [importPreview, setImportPreview] = useState(null);
  const [latestImportTaskIds, setLatestImportTaskIds] = useState<string[]>([]);

  const handleImport = async () => {
    try {
      const createdTasks = await createTasksFromPreview(importPreview);
`

const footer = `        setStatus('nothing imported');
        return;
      }
      setStatus(` + "`imported ${createdCount} of ${totalRows}`" + `);
    } catch (error) {
      setStatus(String(error));
    }
  };

  return <ImportPanel onImport={handleImport} />;
}
`

func main() {
	baseDir := filepath.Join(filepath.Dir(os.Args[0]), "importview")
	if len(os.Args) > 1 {
		baseDir = os.Args[1]
	}

	p := patcher.ImportViewPatch()
	fixtures := map[string]string{
		// anchor present once, the normal case
		"anchored": crlf(header) + p.Anchor + crlf(footer),
		// output of a successful run
		"patched": crlf(header) + p.Replacement + crlf(footer),
		// anchor present twice; only the first is replaced
		"twice": crlf(header) + p.Anchor + crlf(footer) + p.Anchor,
		// same text saved with LF endings, so the CRLF anchor does not match
		"lf-endings": header + strings.ReplaceAll(p.Anchor, "\r\n", "\n") + footer,
	}

	fmt.Println("📁 Creating ImportView fixtures...")

	for name, content := range fixtures {
		path := filepath.Join(baseDir, name, patcher.ImportViewPath)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			fmt.Printf("  ✗ %s: %v\n", name, err)
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			fmt.Printf("  ✗ %s: %v\n", name, err)
			continue
		}
		fmt.Printf("  ✓ %s\n", filepath.Join(name, patcher.ImportViewPath))
	}

	fmt.Println("✅ All fixtures created!")
}
