package azure_openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	azure_models "archdoc/providers/azure_openai/models"
	"archdoc/providers/contracts"
	"archdoc/providers/models"
	contracts2 "archdoc/token_management/contracts"
)

const (
	// Per-file snippet budget and overall request-body soft cap, in characters.
	snippetCharLimit = 3000
	inputCharBudget  = 12000

	// Degraded results keep at most this much raw text as narrative.
	narrativeCharLimit = 4000
)

const instructions = "You are an expert software architect. From the provided project summary and code snippets, produce:\n" +
	"1) C1 Context: external actors and systems; concise bullet list.\n" +
	"2) C2 Containers: list containers/apps/data stores, responsibilities, technologies; bullet list.\n" +
	"3) C3 Components: per container, key components and relationships; bullet list.\n" +
	"4) C4 Code-level notes: modules/classes/functions that form critical paths; bullet list.\n" +
	"5) Mind map plan: root name, main branches, and edges as pairs for a Mermaid mindmap.\n" +
	"Return strict JSON with fields: {\"c1\":..., \"c2\":..., \"c3\":..., \"c4\":..., \"mindmap\": {\"root\": str, \"branches\": [str], \"edges\": [[str,str], ...]}, \"narrative\": str}."

// AzureOpenAIConfig implements the analyzer interface against the Azure
// OpenAI chat completions endpoint.
type AzureOpenAIConfig struct {
	Endpoint        string
	ApiKey          string
	Deployment      string
	ApiVersion      string
	TokenManagement contracts2.ITokenManagement
}

// NewAzureOpenAIProvider initializes a new Azure OpenAI analyzer.
func NewAzureOpenAIProvider(config *AzureOpenAIConfig) contracts.IArchitectureAnalyzer {
	return &AzureOpenAIConfig{
		Endpoint:        strings.TrimRight(config.Endpoint, "/"),
		ApiKey:          config.ApiKey,
		Deployment:      config.Deployment,
		ApiVersion:      config.ApiVersion,
		TokenManagement: config.TokenManagement,
	}
}

// Analyze composes the analysis prompt, issues exactly one request, and
// parses the structured answer out of the response text.
func (azureProvider *AzureOpenAIConfig) Analyze(ctx context.Context, projectSummary string, sampledFiles []models.FileSample) (*models.AnalysisResult, error) {
	input := BuildAnalysisInput(projectSummary, sampledFiles)

	reqBody := azure_models.ChatCompletionRequest{
		Messages: []azure_models.Message{
			{Role: "system", Content: instructions},
			{Role: "user", Content: input},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshalling request body: %v", err)
	}

	endpoint := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		azureProvider.Endpoint, azureProvider.Deployment, azureProvider.ApiVersion)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", azureProvider.ApiKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiError azure_models.AIError
		if err := json.Unmarshal(body, &apiError); err != nil || apiError.Error.Message == "" {
			return nil, fmt.Errorf("API request failed with status code '%d'", resp.StatusCode)
		}
		return nil, fmt.Errorf("API request failed with status code '%d' - %s", resp.StatusCode, apiError.Error.Message)
	}

	var response azure_models.ChatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error unmarshalling response: %v", err)
	}

	if azureProvider.TokenManagement != nil && response.Usage.TotalTokens > 0 {
		azureProvider.TokenManagement.UsedTokens(response.Usage.PromptTokens, response.Usage.CompletionTokens)
	}

	out := ""
	if len(response.Choices) > 0 {
		out = response.Choices[0].Message.Content
	}

	result := ParseAnalysisText(out)
	result.Normalize()
	return result, nil
}

// BuildAnalysisInput composes the user entry of the request: the project
// summary, the list of included file paths, and per-file snippets. Each
// snippet is truncated to its character budget; once cumulative usage
// crosses the overall cap no further files are appended (the file whose
// addition crossed the cap is still included).
func BuildAnalysisInput(projectSummary string, sampledFiles []models.FileSample) string {
	var filesList strings.Builder
	for _, sample := range sampledFiles {
		filesList.WriteString(fmt.Sprintf("- %s\n", sample.Path))
	}

	var snippets strings.Builder
	used := 0
	for _, sample := range sampledFiles {
		if used > inputCharBudget {
			break
		}
		short := truncateRunes(sample.Content, snippetCharLimit)
		snippets.WriteString(fmt.Sprintf("\n### %s\n```\n%s\n```\n", sample.Path, short))
		used += len([]rune(short))
	}

	return fmt.Sprintf("PROJECT SUMMARY:\n%s\n\nFILES INCLUDED:\n%s\nSNIPPETS:\n%s",
		projectSummary, filesList.String(), snippets.String())
}

// ParseAnalysisText extracts the structured answer from free-form model
// output: the substring between the first '{' and the last '}' is parsed
// as JSON. Any failure yields a degraded result carrying the raw text as
// narrative, so a malformed answer never fails the run.
func ParseAnalysisText(out string) *models.AnalysisResult {
	start := strings.Index(out, "{")
	end := strings.LastIndex(out, "}")

	if start >= 0 && end > start {
		var result models.AnalysisResult
		if err := json.Unmarshal([]byte(out[start:end+1]), &result); err == nil {
			return &result
		}
	}

	return &models.AnalysisResult{
		MindMap:   models.MindMapPlan{Root: "Project", Branches: []string{}, Edges: [][]string{}},
		Narrative: truncateRunes(out, narrativeCharLimit),
	}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
