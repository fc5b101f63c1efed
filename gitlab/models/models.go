package models

// Project is the subset of the GitLab project resource the tool needs.
type Project struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	PathWithNamespace string `json:"path_with_namespace"`
	DefaultBranch     string `json:"default_branch"`
}

// TreeEntry is one path record from the repository tree listing.
// Type is "blob" for files and "tree" for directories.
type TreeEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
	Mode string `json:"mode"`
}

// IsFile reports whether the entry is a regular file.
func (e TreeEntry) IsFile() bool {
	return e.Type == "blob"
}

// RepositoryFile is the file content resource returned by the files endpoint.
type RepositoryFile struct {
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
	Size     int    `json:"size"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
	Ref      string `json:"ref"`
}
