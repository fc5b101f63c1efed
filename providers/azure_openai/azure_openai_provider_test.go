package azure_openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"archdoc/providers/models"
	"archdoc/token_management"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysisText_ExtractsEmbeddedObject(t *testing.T) {
	out := `Here is the answer: {"c1":"A","c2":"B","c3":"C","c4":"D","mindmap":{"root":"R","branches":["X"],"edges":[]},"narrative":"N"} Thanks.`

	result := ParseAnalysisText(out)

	assert.Equal(t, "A", result.ContextNotes)
	assert.Equal(t, "B", result.ContainerNotes)
	assert.Equal(t, "C", result.ComponentNotes)
	assert.Equal(t, "D", result.CodeNotes)
	assert.Equal(t, "N", result.Narrative)
	assert.Equal(t, "R", result.MindMap.Root)
	assert.Equal(t, []string{"X"}, result.MindMap.Branches)
	assert.Empty(t, result.MindMap.Edges)
}

func TestParseAnalysisText_NoBracesDegrades(t *testing.T) {
	result := ParseAnalysisText("not json at all")

	assert.Equal(t, "not json at all", result.Narrative)
	assert.Empty(t, result.ContextNotes)
	assert.Empty(t, result.ContainerNotes)
	assert.Empty(t, result.ComponentNotes)
	assert.Empty(t, result.CodeNotes)
	assert.Equal(t, "Project", result.MindMap.Root)
	assert.Empty(t, result.MindMap.Branches)
	assert.Empty(t, result.MindMap.Edges)
}

func TestParseAnalysisText_MalformedJSONKeepsTruncatedNarrative(t *testing.T) {
	raw := "prefix {not: valid json} " + strings.Repeat("x", 5000)

	result := ParseAnalysisText(raw)

	assert.Empty(t, result.ContextNotes)
	assert.Equal(t, 4000, len([]rune(result.Narrative)))
	assert.Equal(t, string([]rune(raw)[:4000]), result.Narrative)
}

func TestBuildAnalysisInput_TruncatesPerFileSnippets(t *testing.T) {
	samples := []models.FileSample{
		{Path: "big.go", Content: strings.Repeat("a", 5000)},
	}

	input := BuildAnalysisInput("summary", samples)

	assert.Contains(t, input, "- big.go")
	assert.Contains(t, input, strings.Repeat("a", 3000))
	assert.NotContains(t, input, strings.Repeat("a", 3001))
}

func TestBuildAnalysisInput_StopsAfterBudgetCrossed(t *testing.T) {
	var samples []models.FileSample
	for i := 0; i < 6; i++ {
		samples = append(samples, models.FileSample{
			Path:    fmt.Sprintf("file_%d.go", i),
			Content: strings.Repeat("b", 3000),
		})
	}

	input := BuildAnalysisInput("summary", samples)

	// Four snippets land exactly on the cap; the fifth crosses it and is
	// still included; nothing follows it.
	for i := 0; i < 5; i++ {
		assert.Contains(t, input, fmt.Sprintf("### file_%d.go", i))
	}
	assert.NotContains(t, input, "### file_5.go")

	// The file list itself still names every sampled path.
	assert.Contains(t, input, "- file_5.go")
}

func TestAnalyze_SingleRequestRoundTrip(t *testing.T) {
	var gotPath, gotQuery, gotApiKey string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotApiKey = r.Header.Get("api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		answer := `The plan: {"c1":"ctx","c2":"","c3":"","c4":"","mindmap":{"root":"Shop","branches":["API"],"edges":[["API","DB"]]},"narrative":"overview"}`
		resp := map[string]any{
			"choices": []map[string]any{
				{"index": 0, "message": map[string]any{"role": "assistant", "content": answer}},
			},
			"usage": map[string]any{"prompt_tokens": 120, "completion_tokens": 30, "total_tokens": 150},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	tokenManagement := token_management.NewTokenManager()
	provider := NewAzureOpenAIProvider(&AzureOpenAIConfig{
		Endpoint:        server.URL,
		ApiKey:          "secret",
		Deployment:      "gpt-4o",
		ApiVersion:      "2024-07-01-preview",
		TokenManagement: tokenManagement,
	})

	result, err := provider.Analyze(context.Background(), "Branch: main.", []models.FileSample{
		{Path: "main.go", Content: "package main"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/openai/deployments/gpt-4o/chat/completions", gotPath)
	assert.Equal(t, "api-version=2024-07-01-preview", gotQuery)
	assert.Equal(t, "secret", gotApiKey)

	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
	assert.Contains(t, messages[1].(map[string]any)["content"].(string), "Branch: main.")

	assert.Equal(t, "ctx", result.ContextNotes)
	assert.Equal(t, "overview", result.Narrative)
	assert.Equal(t, "Shop", result.MindMap.Root)
	assert.Equal(t, [][]string{{"API", "DB"}}, result.MindMap.Edges)

	total, input, output := tokenManagement.GetCurrentTokenUsage()
	assert.Equal(t, 150, total)
	assert.Equal(t, 120, input)
	assert.Equal(t, 30, output)
}

func TestAnalyze_ErrorStatusPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"auth","code":"401"}}`))
	}))
	defer server.Close()

	provider := NewAzureOpenAIProvider(&AzureOpenAIConfig{
		Endpoint:   server.URL,
		ApiKey:     "bad",
		Deployment: "gpt-4o",
		ApiVersion: "2024-07-01-preview",
	})

	_, err := provider.Analyze(context.Background(), "summary", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}
