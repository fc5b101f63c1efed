package utils

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2/quick"
)

// RenderMarkdownPreview renders markdown content to the terminal with
// syntax highlighting.
func RenderMarkdownPreview(content string, theme string) error {
	// Use a buffer to capture the highlight output
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, content, "markdown", "terminal256", theme); err != nil {
		return err
	}
	fmt.Print(buf.String())
	fmt.Println()
	return nil
}
