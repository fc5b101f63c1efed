package sampler

import (
	"path"
	"regexp"
	"strings"
)

// priorityPatterns are applied in order; earlier rules bias the sample
// toward files likely to reveal architecture (manifests, entry points,
// configuration) over incidental text files.
var priorityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(^|/)requirements\.txt$`),
	regexp.MustCompile(`(?i)(^|/)pyproject\.toml$`),
	regexp.MustCompile(`(?i)(^|/)poetry\.lock$`),
	regexp.MustCompile(`(?i)(^|/)package\.json$`),
	regexp.MustCompile(`(?i)(^|/)go\.mod$`),
	regexp.MustCompile(`(?i)(^|/)build\.gradle(\.kts)?$`),
	regexp.MustCompile(`(?i)(^|/)pom\.xml$`),
	regexp.MustCompile(`(?i)(^|/)Dockerfile$`),
	regexp.MustCompile(`(?i)(^|/)docker-compose\.ya?ml$`),
	regexp.MustCompile(`(?i)(^|/).*\.ya?ml$`),
	regexp.MustCompile(`(?i)(^|/)Makefile$`),
	regexp.MustCompile(`(?i)(^|/).*settings\.py$`),
	regexp.MustCompile(`(?i)(^|/)main\.(py|js|ts|go|java)$`),
	regexp.MustCompile(`(?i)(^|/)app\.(py|js|ts)$`),
	regexp.MustCompile(`(?i)(^|/).*init\.py$`),
	regexp.MustCompile(`(?i)(^|/).*routes?\.py$`),
	regexp.MustCompile(`(?i)(^|/).*controller.*\.(py|js|ts|go)$`),
	regexp.MustCompile(`(?i)(^|/).*service.*\.(py|js|ts|go)$`),
	regexp.MustCompile(`(?i)(^|/).*config.*\.(py|js|ts|go|yaml|yml)$`),
}

// textExtensions is the allow-list of code/markup/config extensions
// considered worth fetching for analysis.
var textExtensions = []string{
	".py", ".js", ".ts", ".java", ".go", ".rb", ".php", ".cs", ".cpp", ".c", ".h", ".hpp",
	".rs", ".kt", ".m", ".swift", ".scala", ".sql", ".yaml", ".yml", ".json", ".toml", ".ini",
	".cfg", ".md", ".txt", ".sh", ".bash", ".ps1", ".xml", ".html", ".css", ".vue", ".svelte",
	".gradle", ".properties", ".dockerfile", ".dockerignore", ".gitignore",
}

// textBasenames are conventionally-named extensionless files treated as text.
var textBasenames = []string{"dockerfile", "makefile", "procfile"}

// IsTextFile reports whether a path looks like a readable code or config
// file worth sending to the model.
func IsTextFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range textExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	base := path.Base(lower)
	for _, b := range textBasenames {
		if base == b {
			return true
		}
	}
	return false
}

// SelectForAnalysis produces a bounded, prioritized, deduplicated subset
// of files. All matches of the first priority rule come first, then the
// second, and so on; every remaining recognized text file follows in
// original tree order. First occurrence wins; the result never exceeds
// limit.
func SelectForAnalysis(files []string, limit int) []string {
	var candidates []string

	for _, pattern := range priorityPatterns {
		for _, f := range files {
			if pattern.MatchString(f) {
				candidates = append(candidates, f)
			}
		}
	}

	seenPriority := make(map[string]bool, len(candidates))
	for _, f := range candidates {
		seenPriority[f] = true
	}

	// Fill the remainder with readable text files in tree order.
	for _, f := range files {
		if !seenPriority[f] && IsTextFile(f) {
			candidates = append(candidates, f)
		}
	}

	selected := make([]string, 0, limit)
	seen := make(map[string]bool, limit)
	for _, f := range candidates {
		if seen[f] {
			continue
		}
		seen[f] = true
		selected = append(selected, f)
		if len(selected) >= limit {
			break
		}
	}

	return selected
}
