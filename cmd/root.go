package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"archdoc/config"
	"archdoc/constants/lipgloss"
	"archdoc/diagram"
	"archdoc/gitlab"
	gitlab_contracts "archdoc/gitlab/contracts"
	"archdoc/providers/azure_openai"
	"archdoc/providers/contracts"
	provider_models "archdoc/providers/models"
	"archdoc/report"
	"archdoc/sampler"
	"archdoc/token_management"
	contracts2 "archdoc/token_management/contracts"
	"archdoc/utils"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

// RootDependencies holds the wired components of a run.
type RootDependencies struct {
	Config          *config.Config
	Repository      gitlab_contracts.IRepositoryClient
	Analyzer        contracts.IArchitectureAnalyzer
	TokenManagement contracts2.ITokenManagement
}

// rootCmd: archdoc
var rootCmd = &cobra.Command{
	Use:   "archdoc",
	Short: "Generate C4 architecture diagrams and a report for a GitLab project using AI.",
	Long: `archdoc connects to a GitLab project, samples the files most likely to reveal
its architecture (manifests, entry points, configuration), asks an Azure OpenAI
deployment for a structured analysis, and writes C4 PlantUML diagram sources, a
Mermaid mind map, and a composed markdown report to the output directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Println("archdoc " + version)
			return
		}
		handleGenerateCommand(cmd)
	},
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}

func handleGenerateCommand(cmd *cobra.Command) {
	cfg := config.LoadConfigs(cmd)

	// All required settings are checked before any network I/O.
	if missing := cfg.Validate(); len(missing) > 0 {
		fmt.Fprintln(os.Stderr, lipgloss.Red.Render(
			fmt.Sprintf("Missing required environment variables: %s", strings.Join(missing, ", "))))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithRemoveWhenDone(true)

	rootDependencies, err := wireDependencies(ctx, cfg, spinner)
	if err != nil {
		fatal(err)
	}

	if err := runGenerate(ctx, rootDependencies, spinner); err != nil {
		fatal(err)
	}
}

// wireDependencies constructs the clients for a run. Authentication
// failure against GitLab surfaces here and aborts the run.
func wireDependencies(ctx context.Context, cfg *config.Config, spinner *pterm.SpinnerPrinter) (*RootDependencies, error) {
	spinnerConnect, _ := spinner.Start("Connecting to GitLab...")
	repo, err := gitlab.NewGitLabClient(ctx, cfg.GitLab, cfg.MaxFiles)
	spinnerConnect.Stop()
	if err != nil {
		return nil, err
	}

	tokenManagement := token_management.NewTokenManager()

	analyzer := azure_openai.NewAzureOpenAIProvider(&azure_openai.AzureOpenAIConfig{
		Endpoint:        cfg.AzureOpenAI.Endpoint,
		ApiKey:          cfg.AzureOpenAI.ApiKey,
		Deployment:      cfg.AzureOpenAI.Deployment,
		ApiVersion:      cfg.AzureOpenAI.ApiVersion,
		TokenManagement: tokenManagement,
	})

	return &RootDependencies{
		Config:          cfg,
		Repository:      repo,
		Analyzer:        analyzer,
		TokenManagement: tokenManagement,
	}, nil
}

// runGenerate sequences the pipeline exactly once:
// tree walk -> selection -> fetch -> analysis -> rendering -> report.
func runGenerate(ctx context.Context, deps *RootDependencies, spinner *pterm.SpinnerPrinter) error {
	cfg := deps.Config
	branch := deps.Repository.ResolveDefaultBranch(cfg.DefaultBranch)

	spinnerTree, _ := spinner.Start(fmt.Sprintf("Listing repository tree on '%s'...", branch))
	entries, err := deps.Repository.ListTree(ctx, branch)
	spinnerTree.Stop()
	if err != nil {
		return err
	}

	projectSummary, files := sampler.SummarizeTree(entries)
	selected := sampler.SelectForAnalysis(files, cfg.SampleLimit)

	spinnerFetch, _ := spinner.Start(fmt.Sprintf("Fetching %d sampled files...", len(selected)))
	var samples []provider_models.FileSample
	for _, path := range selected {
		if !sampler.IsTextFile(path) {
			continue
		}
		content, ok := deps.Repository.FetchFile(ctx, path, branch)
		if !ok {
			continue
		}
		samples = append(samples, provider_models.FileSample{Path: path, Content: content})
	}
	spinnerFetch.Stop()

	spinnerAnalyze, _ := spinner.Start(fmt.Sprintf("Analyzing with '%s'...", cfg.AzureOpenAI.Deployment))
	analysis, err := deps.Analyzer.Analyze(ctx, fmt.Sprintf("Branch: %s. %s", branch, projectSummary), samples)
	spinnerAnalyze.Stop()
	if err != nil {
		return err
	}

	diagrams := map[string]string{
		"c1": diagram.RenderContextDiagram(analysis.ContextNotes),
		"c2": diagram.RenderContainerDiagram(analysis.ContainerNotes),
		"c3": diagram.RenderComponentDiagram(analysis.ComponentNotes),
		"c4": diagram.RenderCodeNotesDiagram(analysis.CodeNotes),
	}
	mindMap := diagram.RenderMindMap(analysis.MindMap.Root, analysis.MindMap.Branches, analysis.MindMap.Edges)

	projectName := deps.Repository.Project().PathWithNamespace
	if err := report.Write(cfg.OutputDir, projectName, analysis.Narrative, diagrams, mindMap); err != nil {
		return err
	}

	if cfg.Preview && analysis.Narrative != "" {
		fmt.Println(lipgloss.Info.Render("Executive Summary"))
		if err := utils.RenderMarkdownPreview(analysis.Narrative, "dracula"); err != nil {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Error rendering preview: %v", err)))
		}
	}

	deps.TokenManagement.DisplayTokens(cfg.AzureOpenAI.Deployment)

	outputPath := cfg.OutputDir
	if abs, err := filepath.Abs(outputPath); err == nil {
		outputPath = abs
	}
	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("Report and diagram sources written to: %s", outputPath)))

	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, lipgloss.Red.Render(fmt.Sprintf("%v", err)))
	os.Exit(1)
}
