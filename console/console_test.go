package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Step("Creating %s icon...", "Video Downloader Pro")
	p.Success("Icon saved as %s", "app-icon.png")
	p.Error("boom")

	assert.Equal(t,
		"🎨 Creating Video Downloader Pro icon...\n"+
			"✅ Icon saved as app-icon.png\n"+
			"❌ boom\n",
		buf.String())
}

func TestPrinterDetailRequiresVerbose(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Detail("hidden")
	assert.Empty(t, buf.String())

	p.SetVerbose(true)
	assert.True(t, p.Verbose())
	p.Detail("layer %d", 3)
	assert.Equal(t, "   layer 3\n", buf.String())
}
