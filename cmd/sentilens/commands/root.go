package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/sentilens/pkg/config"
	"github.com/wonny/sentilens/pkg/logger"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sentilens",
	Short: "Trader behaviour vs market sentiment",
	Long: `sentilens CLI

트레이더 체결 내역과 Fear & Greed 지수를 결합해
심리 구간별 성과를 분석합니다.

S0 → S1 → S2 → S3 → S4 → S5
Load  Clean  Merge  Features  Analysis  Report

Usage:
  go run ./cmd/sentilens [command]

Examples:
  go run ./cmd/sentilens analyze
  go run ./cmd/sentilens inspect
  go run ./cmd/sentilens analyze --verbose`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// setup loads config and builds the logger shared by every command
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, logger.New(cfg), nil
}
