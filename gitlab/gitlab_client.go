package gitlab

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"archdoc/config"
	"archdoc/gitlab/contracts"
	"archdoc/gitlab/models"
)

const perPage = 100

// GitLabClient implements the IRepositoryClient interface against the
// GitLab REST API (v4).
type GitLabClient struct {
	baseURL  string
	token    string
	maxFiles int
	project  *models.Project
	client   *http.Client
}

// NewGitLabClient authenticates against the GitLab instance and resolves
// the configured project. An authentication or lookup failure here is
// fatal for the run.
func NewGitLabClient(ctx context.Context, cfg *config.GitLabConfig, maxFiles int) (contracts.IRepositoryClient, error) {
	gl := &GitLabClient{
		baseURL:  strings.TrimRight(cfg.URL, "/") + "/api/v4",
		token:    cfg.Token,
		maxFiles: maxFiles,
		client:   &http.Client{},
	}

	project, err := gl.getProject(ctx, cfg.Project)
	if err != nil {
		return nil, fmt.Errorf("error resolving gitlab project '%s': %v", cfg.Project, err)
	}
	gl.project = project

	return gl, nil
}

// Project returns the project resolved at construction time.
func (gl *GitLabClient) Project() *models.Project {
	return gl.project
}

// ResolveDefaultBranch returns the project's default branch, or the
// fallback if the provider reports none.
func (gl *GitLabClient) ResolveDefaultBranch(fallback string) string {
	if gl.project.DefaultBranch != "" {
		return gl.project.DefaultBranch
	}
	return fallback
}

// ListTree pages through the repository tree endpoint until an empty page
// is returned or the accumulated entry count reaches the safety cap.
func (gl *GitLabClient) ListTree(ctx context.Context, branch string) ([]models.TreeEntry, error) {
	var entries []models.TreeEntry

	for page := 1; ; page++ {
		endpoint := fmt.Sprintf("%s/projects/%s/repository/tree?ref=%s&recursive=true&per_page=%d&page=%d",
			gl.baseURL, gl.projectID(), url.QueryEscape(branch), perPage, page)

		body, err := gl.get(ctx, endpoint)
		if err != nil {
			return nil, fmt.Errorf("error listing repository tree: %v", err)
		}

		var chunk []models.TreeEntry
		if err := json.Unmarshal(body, &chunk); err != nil {
			return nil, fmt.Errorf("error unmarshalling tree page %d: %v", page, err)
		}

		if len(chunk) == 0 {
			break
		}

		entries = append(entries, chunk...)
		if len(entries) >= gl.maxFiles {
			break
		}
	}

	return entries, nil
}

// FetchFile retrieves one file's decoded text content. Any retrieval or
// decode failure excludes the file rather than failing the run.
func (gl *GitLabClient) FetchFile(ctx context.Context, path string, ref string) (string, bool) {
	endpoint := fmt.Sprintf("%s/projects/%s/repository/files/%s?ref=%s",
		gl.baseURL, gl.projectID(), url.PathEscape(path), url.QueryEscape(ref))

	body, err := gl.get(ctx, endpoint)
	if err != nil {
		return "", false
	}

	var file models.RepositoryFile
	if err := json.Unmarshal(body, &file); err != nil {
		return "", false
	}

	// GitLab wraps base64 content across lines.
	raw := strings.ReplaceAll(file.Content, "\n", "")
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", false
	}

	// Drop unrepresentable bytes rather than failing on binary-ish content.
	return strings.ToValidUTF8(string(decoded), ""), true
}

// getProject resolves a project by numeric ID or 'namespace/project' path.
func (gl *GitLabClient) getProject(ctx context.Context, project string) (*models.Project, error) {
	endpoint := fmt.Sprintf("%s/projects/%s", gl.baseURL, escapeProject(project))

	body, err := gl.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var p models.Project
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("error unmarshalling project: %v", err)
	}

	return &p, nil
}

func (gl *GitLabClient) projectID() string {
	return fmt.Sprintf("%d", gl.project.ID)
}

// get issues one authenticated GET request and returns the response body.
func (gl *GitLabClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("PRIVATE-TOKEN", gl.token)

	resp, err := gl.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status code '%d' - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

// escapeProject leaves numeric IDs untouched and URL-escapes path-style
// identifiers so 'namespace/project' becomes a single path segment.
func escapeProject(project string) string {
	if isDigits(project) {
		return project
	}
	return url.PathEscape(project)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
