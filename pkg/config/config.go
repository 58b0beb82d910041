package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Input and output file names. Only the directories holding them are configurable.
const (
	SentimentFile = "fear_greed_index.csv"
	TradesFile    = "historical_data.csv"

	DailyStatsFile  = "daily_statistics.csv"
	MergedDataFile  = "merged_data.csv"
	DashboardChart  = "01_sentiment_performance.png"
	BuySellChart    = "02_buy_sell_analysis.png"
	TimeSeriesChart = "03_time_series_analysis.png"
	HeatmapChart    = "04_correlation_heatmap.png"
	WorkbookFile    = "sentiment_report.xlsx"
	ManifestFile    = "run_manifest.yaml"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	Env string `validate:"required,oneof=development staging production test"`

	// Paths
	DataDir   string `validate:"required"`
	OutputDir string `validate:"required"`

	// Optional artifacts
	ChartsEnabled   bool
	WorkbookEnabled bool

	// Logging
	LogLevel  string `validate:"omitempty,oneof=debug info warn warning error fatal panic"`
	LogFormat string `validate:"omitempty,oneof=json console pretty"`
}

// SentimentPath returns the fear & greed index input path
func (c *Config) SentimentPath() string {
	return filepath.Join(c.DataDir, SentimentFile)
}

// TradesPath returns the trade history input path
func (c *Config) TradesPath() string {
	return filepath.Join(c.DataDir, TradesFile)
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Env:             "development",
		DataDir:         "data",
		OutputDir:       "outputs",
		ChartsEnabled:   true,
		WorkbookEnabled: true,
		LogLevel:        "info",
		LogFormat:       "console",
	}
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	def := Default()
	cfg := &Config{
		Env:             getEnv("ENV", def.Env),
		DataDir:         getEnv("SENTILENS_DATA_DIR", def.DataDir),
		OutputDir:       getEnv("SENTILENS_OUTPUT_DIR", def.OutputDir),
		ChartsEnabled:   getEnvAsBool("SENTILENS_CHARTS", def.ChartsEnabled),
		WorkbookEnabled: getEnvAsBool("SENTILENS_WORKBOOK", def.WorkbookEnabled),
		LogLevel:        getEnv("LOG_LEVEL", def.LogLevel),
		LogFormat:       getEnv("LOG_FORMAT", def.LogFormat),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks struct constraints and reports every failing field at once
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from the working directory or next to the executable
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
