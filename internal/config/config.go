// Package config provides centralized configuration management for autodocs.
// Settings come from the process environment (optionally seeded from a .env
// file) and an optional YAML file overriding the language and ignore tables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings for autodocs.
type Config struct {
	// OpenAI settings
	OpenAIAPIKey  string
	OpenAIOrgID   string
	OpenAIBaseURL string
	Model         string

	// Azure OpenAI settings. When the full triple is present the Azure
	// endpoint is used instead of the public OpenAI API.
	AzureDeployment string
	AzureEndpoint   string
	AzureAPIKey     string

	// Retry settings for the LLM call wrapper
	MaxRetries int

	// Languages maps a file extension (with leading dot) to the language
	// name used in the prompt.
	Languages map[string]string

	// DocStyles maps a language name to the documentation-comment
	// convention requested from the model.
	DocStyles map[string]string

	// Directory and file names skipped while walking a source tree.
	IgnoreDirs  []string
	IgnoreFiles []string
}

// Default values
const (
	DefaultModel      = "gpt-4"
	DefaultMaxRetries = 3

	// DefaultConfigFile is the YAML file looked up in the working
	// directory when no --config flag is given.
	DefaultConfigFile = "autodocs.yaml"
)

// fileConfig is the YAML schema of an optional autodocs.yaml.
type fileConfig struct {
	Languages   map[string]string `yaml:"languages"`
	DocStyles   map[string]string `yaml:"docstyles"`
	IgnoreDirs  []string          `yaml:"ignore_dirs"`
	IgnoreFiles []string          `yaml:"ignore_files"`
}

// New returns a configuration populated with built-in defaults only.
func New() *Config {
	return &Config{
		Model:      DefaultModel,
		MaxRetries: DefaultMaxRetries,
		Languages: map[string]string{
			".cs":   "C#",
			".py":   "Python",
			".java": "Java",
			".go":   "Go",
		},
		DocStyles: map[string]string{
			"C#":     ".NET XML",
			"Python": "google style",
			"Java":   "javadoc",
			"Go":     "godoc",
		},
		IgnoreDirs: []string{
			".git", ".venv", "bin", "build", "dist", "node_modules",
			"obj", "Debug", "tst", "tests", "IntegrationTests",
		},
		IgnoreFiles: []string{"__init__.py", "Program.cs", "AssemblyInfo.cs"},
	}
}

// Load builds the effective configuration: defaults, then the YAML file,
// then environment variables. A .env file in the working directory is
// loaded into the environment first if present.
//
// path names the YAML file to read. When empty, autodocs.yaml is read only
// if it exists; when set, a missing file is an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := New()

	explicit := path != ""
	if path == "" {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		cfg.applyFile(&fc)
	case os.IsNotExist(err) && !explicit:
		// optional file absent, keep defaults
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyFile(fc *fileConfig) {
	for ext, lang := range fc.Languages {
		c.Languages[ext] = lang
	}
	for lang, style := range fc.DocStyles {
		c.DocStyles[lang] = style
	}
	if len(fc.IgnoreDirs) > 0 {
		c.IgnoreDirs = fc.IgnoreDirs
	}
	if len(fc.IgnoreFiles) > 0 {
		c.IgnoreFiles = fc.IgnoreFiles
	}
}

func (c *Config) applyEnv() {
	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.OpenAIOrgID = getEnv("OPENAI_ORG_ID", c.OpenAIOrgID)
	c.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.Model = getEnv("OPENAI_MODEL", c.Model)

	c.AzureDeployment = getEnv("AZURE_OPENAI_DEPLOYMENT_NAME", c.AzureDeployment)
	c.AzureEndpoint = getEnv("AZURE_OPENAI_ENDPOINT", c.AzureEndpoint)
	c.AzureAPIKey = getEnv("AZURE_OPENAI_API_KEY", c.AzureAPIKey)

	c.MaxRetries = getEnvInt("AUTODOCS_MAX_RETRIES", c.MaxRetries)
}

// UsesAzure reports whether the Azure OpenAI settings are complete.
func (c *Config) UsesAzure() bool {
	return c.AzureDeployment != "" && c.AzureEndpoint != "" && c.AzureAPIKey != ""
}

// Validate checks that credentials for at least one endpoint are present.
func (c *Config) Validate() error {
	if c.UsesAzure() || c.OpenAIAPIKey != "" {
		return nil
	}
	if c.AzureDeployment != "" || c.AzureEndpoint != "" || c.AzureAPIKey != "" {
		return fmt.Errorf("incomplete Azure OpenAI configuration: set AZURE_OPENAI_DEPLOYMENT_NAME, AZURE_OPENAI_ENDPOINT and AZURE_OPENAI_API_KEY")
	}
	return fmt.Errorf("no LLM credentials: set OPENAI_API_KEY or the AZURE_OPENAI_* variables")
}

// DocStyle returns the doc-comment convention for a language, or a generic
// fallback when the language has no configured style.
func (c *Config) DocStyle(language string) string {
	if style, ok := c.DocStyles[language]; ok {
		return style
	}
	return "the language's standard documentation-comment format"
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
