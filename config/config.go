package config

import (
	"fmt"
	"os"

	"archdoc/constants/lipgloss"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// GitLabConfig holds the connection settings for the hosting provider.
type GitLabConfig struct {
	URL     string `mapstructure:"url"`
	Project string `mapstructure:"project"`
	Token   string `mapstructure:"token"`
}

// AzureOpenAIConfig holds the settings for the generation endpoint.
type AzureOpenAIConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	ApiKey     string `mapstructure:"api_key"`
	Deployment string `mapstructure:"deployment"`
	ApiVersion string `mapstructure:"api_version"`
}

// Config represents the full configuration of a run, constructed once
// at startup and passed into each component constructor.
type Config struct {
	GitLab        *GitLabConfig      `mapstructure:"gitlab"`
	AzureOpenAI   *AzureOpenAIConfig `mapstructure:"azure_openai"`
	OutputDir     string             `mapstructure:"output_dir"`
	DefaultBranch string             `mapstructure:"default_branch"`
	MaxFiles      int                `mapstructure:"max_files"`
	SampleLimit   int                `mapstructure:"sample_limit"`
	Preview       bool               `mapstructure:"preview"`
}

// DefaultConfig values
var DefaultConfig = Config{
	GitLab: &GitLabConfig{
		URL: "https://gitlab.com",
	},
	AzureOpenAI: &AzureOpenAIConfig{
		ApiVersion: "2024-07-01-preview",
	},
	OutputDir:     "docs",
	DefaultBranch: "main",
	MaxFiles:      400,
	SampleLimit:   40,
}

// LoadConfigs initializes the configuration from environment variables and
// flags, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// Validate returns the environment names of every required setting that
// is absent. The caller reports them all together before any I/O.
func (c *Config) Validate() []string {
	var missing []string

	if c.GitLab.Project == "" {
		missing = append(missing, "GITLAB_PROJECT_ID")
	}
	if c.GitLab.Token == "" {
		missing = append(missing, "GITLAB_TOKEN")
	}
	if c.AzureOpenAI.Endpoint == "" {
		missing = append(missing, "AZURE_OPENAI_ENDPOINT")
	}
	if c.AzureOpenAI.ApiKey == "" {
		missing = append(missing, "AZURE_OPENAI_API_KEY")
	}
	if c.AzureOpenAI.Deployment == "" {
		missing = append(missing, "AZURE_OPENAI_DEPLOYMENT")
	}

	return missing
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("gitlab.url", DefaultConfig.GitLab.URL)
	viper.SetDefault("gitlab.project", DefaultConfig.GitLab.Project)
	viper.SetDefault("gitlab.token", DefaultConfig.GitLab.Token)
	viper.SetDefault("azure_openai.endpoint", DefaultConfig.AzureOpenAI.Endpoint)
	viper.SetDefault("azure_openai.api_key", DefaultConfig.AzureOpenAI.ApiKey)
	viper.SetDefault("azure_openai.deployment", DefaultConfig.AzureOpenAI.Deployment)
	viper.SetDefault("azure_openai.api_version", DefaultConfig.AzureOpenAI.ApiVersion)
	viper.SetDefault("output_dir", DefaultConfig.OutputDir)
	viper.SetDefault("default_branch", DefaultConfig.DefaultBranch)
	viper.SetDefault("max_files", DefaultConfig.MaxFiles)
	viper.SetDefault("sample_limit", DefaultConfig.SampleLimit)
	viper.SetDefault("preview", DefaultConfig.Preview)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("gitlab.url", "GITLAB_URL")
	_ = viper.BindEnv("gitlab.project", "GITLAB_PROJECT_ID")
	_ = viper.BindEnv("gitlab.token", "GITLAB_TOKEN")
	_ = viper.BindEnv("azure_openai.endpoint", "AZURE_OPENAI_ENDPOINT")
	_ = viper.BindEnv("azure_openai.api_key", "AZURE_OPENAI_API_KEY")
	_ = viper.BindEnv("azure_openai.deployment", "AZURE_OPENAI_DEPLOYMENT")
	_ = viper.BindEnv("azure_openai.api_version", "AZURE_OPENAI_API_VERSION")
	_ = viper.BindEnv("output_dir", "OUTPUT_DIR")
	_ = viper.BindEnv("default_branch", "DEFAULT_BRANCH")
	_ = viper.BindEnv("max_files", "MAX_FILES")
	_ = viper.BindEnv("sample_limit", "SAMPLE_LIMIT")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("gitlab.url", rootCmd.PersistentFlags().Lookup("gitlab-url"))
	_ = viper.BindPFlag("gitlab.project", rootCmd.PersistentFlags().Lookup("project"))
	_ = viper.BindPFlag("gitlab.token", rootCmd.PersistentFlags().Lookup("gitlab-token"))
	_ = viper.BindPFlag("azure_openai.endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	_ = viper.BindPFlag("azure_openai.api_key", rootCmd.PersistentFlags().Lookup("api-key"))
	_ = viper.BindPFlag("azure_openai.deployment", rootCmd.PersistentFlags().Lookup("deployment"))
	_ = viper.BindPFlag("azure_openai.api_version", rootCmd.PersistentFlags().Lookup("api-version"))
	_ = viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("default_branch", rootCmd.PersistentFlags().Lookup("branch"))
	_ = viper.BindPFlag("max_files", rootCmd.PersistentFlags().Lookup("max-files"))
	_ = viper.BindPFlag("sample_limit", rootCmd.PersistentFlags().Lookup("sample-limit"))
	_ = viper.BindPFlag("preview", rootCmd.PersistentFlags().Lookup("preview"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String("gitlab-url", DefaultConfig.GitLab.URL, "The base URL of the GitLab instance.")
	rootCmd.PersistentFlags().String("project", "", "The GitLab project: a numeric ID or a 'namespace/project' path.")
	rootCmd.PersistentFlags().String("gitlab-token", "", "The personal access token used to authenticate with GitLab.")
	rootCmd.PersistentFlags().String("endpoint", "", "The base URL of the Azure OpenAI resource.")
	rootCmd.PersistentFlags().String("api-key", "", "The API key used to authenticate with Azure OpenAI.")
	rootCmd.PersistentFlags().String("deployment", "", "The Azure OpenAI deployment (model) name used for the analysis.")
	rootCmd.PersistentFlags().String("api-version", DefaultConfig.AzureOpenAI.ApiVersion, "The Azure OpenAI API version passed through to the service.")
	rootCmd.PersistentFlags().StringP("output", "o", DefaultConfig.OutputDir, "Directory where diagram sources and the report are written.")
	rootCmd.PersistentFlags().String("branch", DefaultConfig.DefaultBranch, "Fallback branch used when the project reports no default branch.")
	rootCmd.PersistentFlags().Int("max-files", DefaultConfig.MaxFiles, "Safety cap on the number of tree entries accumulated while listing.")
	rootCmd.PersistentFlags().Int("sample-limit", DefaultConfig.SampleLimit, "Maximum number of files sampled for the analysis request.")
	rootCmd.PersistentFlags().Bool("preview", false, "Render the executive summary to the terminal after generation.")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}
