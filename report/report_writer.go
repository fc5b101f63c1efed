package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MindMapFileName is the fixed name of the mind-map source artifact.
const MindMapFileName = "mindmap.mmd"

// DiagramLevels orders the diagram-level keys used for file naming.
var DiagramLevels = []string{"c1", "c2", "c3", "c4"}

// Write persists all generated artifacts under outputDir, creating the
// directory (and parents) if absent and overwriting files from a prior
// run. Any individual write failure fails the whole operation.
func Write(outputDir string, projectName string, narrative string, diagrams map[string]string, mindMap string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("error creating output directory '%s': %v", outputDir, err)
	}

	for _, level := range DiagramLevels {
		name := level + ".puml"
		if err := writeFile(filepath.Join(outputDir, name), diagrams[level]); err != nil {
			return err
		}
	}

	if err := writeFile(filepath.Join(outputDir, MindMapFileName), mindMap); err != nil {
		return err
	}

	readme := composeReadme(projectName, narrative, mindMap)
	if err := writeFile(filepath.Join(outputDir, "README.md"), readme); err != nil {
		return err
	}

	return nil
}

// composeReadme builds the top-level summary document: title, executive
// summary, a pointer list naming the diagram files, and the inlined
// mind-map source.
func composeReadme(projectName string, narrative string, mindMap string) string {
	var md []string

	md = append(md, fmt.Sprintf("# %s - Architecture Report", projectName))
	md = append(md, "")
	md = append(md, "## Executive Summary")
	md = append(md, "")
	md = append(md, narrative)
	md = append(md, "")
	md = append(md, "## C4 Diagrams")
	md = append(md, "")
	md = append(md, "PlantUML sources are included for C1-C4 in this folder. Render them with PlantUML or integrate in your docs pipeline.")
	md = append(md, "")
	md = append(md, "Files:")
	md = append(md, "- C1: c1.puml")
	md = append(md, "- C2: c2.puml")
	md = append(md, "- C3: c3.puml")
	md = append(md, "- C4 (notes): c4.puml")
	md = append(md, "")
	md = append(md, "## Mind Map")
	md = append(md, "")
	md = append(md, "Mermaid mind map source:")
	md = append(md, "")
	md = append(md, mindMap)
	md = append(md, "")

	return strings.Join(md, "\n")
}

func writeFile(path string, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("error writing '%s': %v", path, err)
	}
	return nil
}
