package models

// FileSample is one fetched file handed to the analyzer. Order matters:
// samples are included in the prompt in selection order.
type FileSample struct {
	Path    string
	Content string
}

// MindMapPlan describes the tree/graph the model proposes for the mind map.
type MindMapPlan struct {
	Root     string     `json:"root"`
	Branches []string   `json:"branches"`
	Edges    [][]string `json:"edges"`
}

// AnalysisResult is the structured answer parsed from the model response.
// All string fields default to the empty string, never absent, so
// downstream rendering never fails on a missing key.
type AnalysisResult struct {
	ContextNotes   string      `json:"c1"`
	ContainerNotes string      `json:"c2"`
	ComponentNotes string      `json:"c3"`
	CodeNotes      string      `json:"c4"`
	MindMap        MindMapPlan `json:"mindmap"`
	Narrative      string      `json:"narrative"`
}

// Normalize fills the mind-map root when the model omitted it.
func (r *AnalysisResult) Normalize() {
	if r.MindMap.Root == "" {
		r.MindMap.Root = "Project"
	}
}
