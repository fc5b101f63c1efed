package diagram

import (
	"fmt"
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a stable node identifier: lowercase,
// non-alphanumeric runs collapsed to a single underscore, leading and
// trailing underscores trimmed. An input with no alphanumeric characters
// maps to the literal fallback "node".
func Slugify(s string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(s), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		return "node"
	}
	return slug
}

// RenderMindMap emits a fenced Mermaid mind-map block. Each branch is
// declared once and linked from the root. Edge endpoints that were not
// declared as branches are declared on the fly: an unseen source hangs
// off the root, an unseen target hangs off the edge's source. Repeated
// names produce repeated declaration lines; the target renderer
// tolerates re-declaration, so no deduplication happens here.
// The Mermaid output uses the literal "root" node identifier regardless
// of the root label.
func RenderMindMap(root string, branches []string, edges [][]string) string {
	lines := []string{"```mermaid", "mindmap"}
	declared := make(map[string]string)

	for _, b := range branches {
		bid := Slugify(b)
		declared[b] = bid
		lines = append(lines, fmt.Sprintf("    %s(%s)", bid, b))
		lines = append(lines, fmt.Sprintf("  root --> %s", bid))
	}

	for _, edge := range edges {
		if len(edge) < 2 {
			continue
		}
		a, b := edge[0], edge[1]

		aid, aKnown := declared[a]
		if !aKnown {
			aid = Slugify(a)
		}
		bid, bKnown := declared[b]
		if !bKnown {
			bid = Slugify(b)
		}

		if !aKnown {
			lines = append(lines, fmt.Sprintf("    %s(%s)", aid, a))
			lines = append(lines, fmt.Sprintf("  root --> %s", aid))
			declared[a] = aid
		}
		if !bKnown {
			lines = append(lines, fmt.Sprintf("    %s(%s)", bid, b))
			lines = append(lines, fmt.Sprintf("  %s --> %s", aid, bid))
		} else {
			lines = append(lines, fmt.Sprintf("  %s --> %s", aid, bid))
		}
	}

	lines = append(lines, "```")
	return strings.Join(lines, "\n")
}
