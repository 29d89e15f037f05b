package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"blogdl/pkg/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage blogdl configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (BLOGDL_*)
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as 'blogdl.yaml'
unless a different path is specified with the --config flag.`,
	Run: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the effective configuration after merging all sources:
  - Command line flags
  - Environment variables
  - Configuration file
  - Default values`,
	Run: runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Required fields
  - Value types and ranges
  - Path accessibility`,
	Run: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	configPath := configFile
	if configPath == "" {
		configPath = "blogdl.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(os.Stderr, "Configuration file already exists: %s\n", configPath)
		fmt.Println("\nTo overwrite, first remove the existing file:")
		fmt.Printf("  rm %s\n", configPath)
		os.Exit(1)
	}

	exampleConfig := `# blogdl configuration file
#
# All options can also be set through environment variables prefixed with
# BLOGDL_, for example: BLOGDL_ROOT_URL, BLOGDL_FETCH_DELAY

# Target blog
blog:
  # Front page carrying the sidebar archive widget
  root_url: "https://boli-blog.pl/"

  # Image hosting domains worth downloading from. An image URL matching
  # none of these substrings is skipped with a notice.
  content_sources:
    - "googleusercontent.com"
    - "blogspot.com"

  # Optional URL-prefix exclusion list, applied before the allow-list.
  # Empty by default.
  filter_prefixes: []

# Network behavior
fetch:
  # Per-request timeout
  timeout: 10s

  # Courtesy delay after each successful fetch (0s disables it)
  delay: 0s

  # User agent string (leave empty for the default)
  user_agent: ""

# Flat-file page/image cache
cache:
  directory: "cache"

# Downloaded image output
output:
  directory: "images"

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: "info"

  # Log file path (optional, empty logs to stdout only)
  file: ""
`

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create configuration file: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Configuration file created: " + configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Adjust the target blog and directories if needed")
	fmt.Println("2. Run 'blogdl config validate' to check the configuration")
	fmt.Println("3. Start downloading with 'blogdl crawl'")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to format configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Current configuration:")
	fmt.Println()
	fmt.Print(string(data))

	fmt.Println("\nConfiguration sources (in order of priority):")
	fmt.Println("1. Command line flags")
	fmt.Println("2. Environment variables (BLOGDL_*)")
	if configFile != "" {
		fmt.Printf("3. Configuration file: %s\n", configFile)
	} else {
		fmt.Println("3. Configuration file: (not specified)")
	}
	fmt.Println("4. Default values")
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	if configFile == "" {
		possiblePaths := []string{
			"blogdl.yaml",
			"blogdl.yml",
			".blogdl.yaml",
			".blogdl.yml",
			filepath.Join(os.Getenv("HOME"), ".blogdl.yaml"),
			filepath.Join(os.Getenv("HOME"), ".config", "blogdl", "config.yaml"),
		}

		for _, path := range possiblePaths {
			if _, err := os.Stat(path); err == nil {
				configFile = path
				break
			}
		}

		if configFile == "" {
			fmt.Fprintln(os.Stderr, "No configuration file found. Specify a file with --config.")
			os.Exit(1)
		}
	}

	fmt.Printf("Validating configuration: %s\n", configFile)

	cfg, err := config.Load(configFile, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation failed: %v\n", err)
		os.Exit(1)
	}

	var errors []string

	// Check paths
	if cfg.Cache.Directory != "" {
		if err := os.MkdirAll(cfg.Cache.Directory, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create cache directory: %v", err))
		}
	}
	if cfg.Output.Directory != "" {
		if err := os.MkdirAll(cfg.Output.Directory, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create output directory: %v", err))
		}
	}
	if cfg.Logging.File != "" {
		dir := filepath.Dir(cfg.Logging.File)
		if err := os.MkdirAll(dir, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create log directory: %v", err))
		}
	}

	if len(errors) > 0 {
		fmt.Fprintln(os.Stderr, "Configuration has errors:")
		for _, e := range errors {
			fmt.Fprintf(os.Stderr, "  - %s\n", e)
		}
		os.Exit(1)
	}

	fmt.Println("Configuration is valid")

	fmt.Println("\nConfiguration summary:")
	fmt.Printf("  Root URL: %s\n", cfg.Blog.RootURL)
	fmt.Printf("  Content sources: %v\n", cfg.Blog.ContentSources)
	fmt.Printf("  Cache directory: %s\n", cfg.Cache.Directory)
	fmt.Printf("  Output directory: %s\n", cfg.Output.Directory)
	fmt.Printf("  Fetch timeout: %s\n", cfg.Fetch.Timeout)
	fmt.Printf("  Fetch delay: %s\n", cfg.Fetch.Delay)
	fmt.Printf("  Log level: %s\n", cfg.Logging.Level)
}
