package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the blog downloader
type Config struct {
	// Target blog settings
	Blog BlogConfig `yaml:"blog" json:"blog"`

	// Fetch behavior
	Fetch FetchConfig `yaml:"fetch" json:"fetch"`

	// Page/image cache settings
	Cache CacheConfig `yaml:"cache" json:"cache"`

	// Image output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// BlogConfig identifies the crawled site and its image hosting domains
type BlogConfig struct {
	// RootURL is the blog front page carrying the archive widget.
	RootURL string `yaml:"root_url" json:"root_url"`

	// ContentSources is the allow-list of hosting-domain substrings.
	// Image URLs matching none of them are skipped, not downloaded.
	ContentSources []string `yaml:"content_sources" json:"content_sources"`

	// FilterPrefixes is an optional exclusion list applied before the
	// allow-list: any image URL starting with one of these prefixes is
	// dropped outright. Empty by default.
	FilterPrefixes []string `yaml:"filter_prefixes" json:"filter_prefixes"`
}

// FetchConfig holds network retrieval settings
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	Delay     time.Duration `yaml:"delay" json:"delay"`
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
}

// CacheConfig holds the flat-file cache location
type CacheConfig struct {
	Directory string `yaml:"directory" json:"directory"`
}

// OutputConfig holds the image output location
type OutputConfig struct {
	Directory string `yaml:"directory" json:"directory"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Blog: BlogConfig{
			RootURL: "https://boli-blog.pl/",
			ContentSources: []string{
				"googleusercontent.com",
				"blogspot.com",
			},
			FilterPrefixes: nil,
		},
		Fetch: FetchConfig{
			Timeout:   10 * time.Second,
			Delay:     0,
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
		},
		Cache: CacheConfig{
			Directory: "cache",
		},
		Output: OutputConfig{
			Directory: "images",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if rootURL := os.Getenv("BLOGDL_ROOT_URL"); rootURL != "" {
		c.Blog.RootURL = rootURL
	}
	if sources := os.Getenv("BLOGDL_CONTENT_SOURCES"); sources != "" {
		c.Blog.ContentSources = splitList(sources)
	}
	if prefixes := os.Getenv("BLOGDL_FILTER_PREFIXES"); prefixes != "" {
		c.Blog.FilterPrefixes = splitList(prefixes)
	}
	if timeout := os.Getenv("BLOGDL_FETCH_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			c.Fetch.Timeout = d
		}
	}
	if delay := os.Getenv("BLOGDL_FETCH_DELAY"); delay != "" {
		if d, err := time.ParseDuration(delay); err == nil && d >= 0 {
			c.Fetch.Delay = d
		}
	}
	if userAgent := os.Getenv("BLOGDL_USER_AGENT"); userAgent != "" {
		c.Fetch.UserAgent = userAgent
	}
	if cacheDir := os.Getenv("BLOGDL_CACHE_DIR"); cacheDir != "" {
		c.Cache.Directory = cacheDir
	}
	if outputDir := os.Getenv("BLOGDL_OUTPUT_DIR"); outputDir != "" {
		c.Output.Directory = outputDir
	}
	if logLevel := os.Getenv("BLOGDL_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv("BLOGDL_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".blogdl.yaml",
		".blogdl.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "blogdl", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "blogdl", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".blogdl.yaml"),
		filepath.Join(os.Getenv("HOME"), ".blogdl.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Blog.RootURL == "" {
		errs = append(errs, errors.New("blog root URL is required"))
	}
	if !strings.HasPrefix(c.Blog.RootURL, "http://") && !strings.HasPrefix(c.Blog.RootURL, "https://") {
		errs = append(errs, errors.New("blog root URL must be an http(s) URL"))
	}
	if len(c.Blog.ContentSources) == 0 {
		errs = append(errs, errors.New("at least one content source is required"))
	}

	if c.Fetch.Timeout <= 0 {
		errs = append(errs, errors.New("fetch timeout must be positive"))
	}
	if c.Fetch.Delay < 0 {
		errs = append(errs, errors.New("fetch delay cannot be negative"))
	}

	if c.Cache.Directory == "" {
		errs = append(errs, errors.New("cache directory is required"))
	}
	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if rootURL, ok := flags["root-url"].(string); ok && rootURL != "" {
		c.Blog.RootURL = rootURL
	}
	if cacheDir, ok := flags["cache-dir"].(string); ok && cacheDir != "" {
		c.Cache.Directory = cacheDir
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.Directory = outputDir
	}
	if timeout, ok := flags["timeout"].(int); ok && timeout > 0 {
		c.Fetch.Timeout = time.Duration(timeout) * time.Second
	}
	if delay, ok := flags["delay"].(int); ok && delay >= 0 {
		c.Fetch.Delay = time.Duration(delay) * time.Second
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".blogdl.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
