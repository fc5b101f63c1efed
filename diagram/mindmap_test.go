package diagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify_Deterministic(t *testing.T) {
	assert.Equal(t, "web_api", Slugify("Web API"))
	assert.Equal(t, "web_api", Slugify("Web API"))
	assert.Equal(t, "orders_v2", Slugify("  Orders (v2)  "))
	assert.Equal(t, "db", Slugify("DB"))
}

func TestSlugify_FallbackForNonAlphanumericInput(t *testing.T) {
	assert.Equal(t, "node", Slugify("***"))
	assert.Equal(t, "node", Slugify("   "))
	assert.Equal(t, "node", Slugify(""))
}

func TestRenderMindMap_BranchesLinkedFromRoot(t *testing.T) {
	out := RenderMindMap("Shop", []string{"API", "Worker"}, nil)

	assert.Equal(t, strings.Join([]string{
		"```mermaid",
		"mindmap",
		"    api(API)",
		"  root --> api",
		"    worker(Worker)",
		"  root --> worker",
		"```",
	}, "\n"), out)
}

func TestRenderMindMap_RepeatedBranchDeclaredTwice(t *testing.T) {
	out := RenderMindMap("Shop", []string{"Build", "Build"}, nil)

	assert.Equal(t, 2, strings.Count(out, "    build(Build)"))
	assert.Equal(t, 2, strings.Count(out, "  root --> build"))
}

func TestRenderMindMap_EdgeBetweenDeclaredBranches(t *testing.T) {
	out := RenderMindMap("Shop", []string{"API", "DB"}, [][]string{{"API", "DB"}})

	lines := strings.Split(out, "\n")
	assert.Equal(t, "  api --> db", lines[len(lines)-2])
	// Declared endpoints are not redeclared by the edge.
	assert.Equal(t, 1, strings.Count(out, "    api(API)"))
	assert.Equal(t, 1, strings.Count(out, "    db(DB)"))
}

func TestRenderMindMap_UndeclaredSourceHangsOffRoot(t *testing.T) {
	out := RenderMindMap("Shop", []string{"API"}, [][]string{{"Cache", "API"}})

	assert.Contains(t, out, "    cache(Cache)")
	assert.Contains(t, out, "  root --> cache")
	assert.Contains(t, out, "  cache --> api")
}

func TestRenderMindMap_UndeclaredTargetHangsOffSource(t *testing.T) {
	out := RenderMindMap("Shop", []string{"API"}, [][]string{{"API", "Queue"}})

	assert.Contains(t, out, "    queue(Queue)")
	assert.Contains(t, out, "  api --> queue")
	assert.NotContains(t, out, "  root --> queue")
}

func TestRenderMindMap_RepeatedEdgesNotDeduplicated(t *testing.T) {
	out := RenderMindMap("Shop", []string{"A", "B"}, [][]string{{"A", "B"}, {"A", "B"}})

	assert.Equal(t, 2, strings.Count(out, "  a --> b"))
}

func TestRenderMindMap_ShortEdgePairsIgnored(t *testing.T) {
	out := RenderMindMap("Shop", []string{"A"}, [][]string{{"A"}, {}})

	assert.Equal(t, strings.Join([]string{
		"```mermaid",
		"mindmap",
		"    a(A)",
		"  root --> a",
		"```",
	}, "\n"), out)
}
