package sampler

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"archdoc/gitlab/models"
)

// SummarizeTree condenses a repository tree into a one-line project
// summary for the prompt, and returns the file paths it found.
func SummarizeTree(entries []models.TreeEntry) (string, []string) {
	var files []string
	dirCount := 0
	extSet := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsFile() {
			files = append(files, entry.Path)
			if ext := strings.ToLower(path.Ext(entry.Path)); ext != "" {
				extSet[ext] = true
			}
		} else {
			dirCount++
		}
	}

	exts := make([]string, 0, len(extSet))
	for ext := range extSet {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	if len(exts) > 12 {
		exts = exts[:12]
	}

	summary := fmt.Sprintf("Found %d files and %d directories. Common extensions: %s.",
		len(files), dirCount, strings.Join(exts, ", "))

	return summary, files
}
