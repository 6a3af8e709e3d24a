// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-mcp CLI and MCP server.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-mcp/internal/secrets"
	"github.com/pdiddy/arxiv-mcp/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "arxiv-mcp/0.1"
)

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for arxiv-mcp.
var rootCmd = &cobra.Command{
	Use:   "arxiv-mcp",
	Short: "Natural-language arXiv search and download, as an MCP server and CLI",
	Long: `arxiv-mcp translates natural-language queries into structured arXiv
searches and downloads paper PDFs into an organized directory tree.

The serve subcommand runs an MCP stdio server exposing search_arxiv,
download_paper, batch_download, search_and_download, and
get_download_stats to a tool-calling host. The search, download, and
stats subcommands drive the same stages from the command line.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-mcp.yaml or ~/.config/arxiv-mcp/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-mcp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-mcp"))
		}
	}

	viper.SetDefault("download_dir", "downloads")
	viper.SetDefault("download_delay", "3s")
	viper.SetDefault("max_retries", 3)
	viper.SetDefault("retry_backoff", "5s")
	viper.SetDefault("timeout", defaultTimeout.String())
	viper.SetDefault("user_agent", defaultUserAgent)
	viper.SetDefault("default_results", 10)
	viper.SetDefault("max_results", 50)
	viper.SetDefault("request_delay", "3s")
	viper.SetDefault("openai_model", "gpt-4o-mini")

	viper.SetEnvPrefix("ARXIV_MCP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// openAIKey resolves the LLM credential: config/env first, then the
// secrets directory. An empty result selects the rule-based translator.
func openAIKey() string {
	if key := viper.GetString("openai_api_key"); key != "" {
		return key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return loadedSecrets["openai-api-key"]
}

func httpConfig() types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:   viper.GetDuration("timeout"),
		UserAgent: viper.GetString("user_agent"),
	}
}

func searchConfig() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig:     httpConfig(),
		DefaultResults: viper.GetInt("default_results"),
		MaxResults:     viper.GetInt("max_results"),
		RequestDelay:   viper.GetDuration("request_delay"),
		SortBy:         types.SortOrder(viper.GetString("sort_by")),
	}
}

func parserConfig() types.ParserConfig {
	return types.ParserConfig{
		OpenAIAPIKey:   openAIKey(),
		Model:          viper.GetString("openai_model"),
		DefaultResults: viper.GetInt("default_results"),
		MaxResults:     viper.GetInt("max_results"),
	}
}

func downloadConfig() types.DownloadConfig {
	return types.DownloadConfig{
		HTTPConfig:   httpConfig(),
		BaseDir:      viper.GetString("download_dir"),
		Delay:        viper.GetDuration("download_delay"),
		MaxRetries:   viper.GetInt("max_retries"),
		RetryBackoff: viper.GetDuration("retry_backoff"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
