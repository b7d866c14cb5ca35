package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	OCR     OCRConfig
	Extract ExtractConfig
	Batch   BatchConfig
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract        string
	Pdftotext        string
	Pdftoppm         string
	HeicConverter    string
	TessdataDir      string
	Language         string
	DPI              int
	MaxPages         int
	Timeout          time.Duration
	ArtifactCacheDir string
}

// ExtractConfig holds field-extraction configuration
type ExtractConfig struct {
	RulesPath string // optional YAML overriding keyword/exclusion lists
	DayFirst  bool   // numeric-date convention for ambiguous dates
}

// BatchConfig holds batch-processing configuration
type BatchConfig struct {
	HistoryDB string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Tesseract:        getEnv("TESSERACT_BIN", "tesseract"),
			Pdftotext:        getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:         getEnv("PDFTOPPM_BIN", "pdftoppm"),
			HeicConverter:    getEnv("HEIC_CONVERTER", "magick"),
			TessdataDir:      getEnv("TESSDATA_PREFIX", ""),
			Language:         getEnv("OCR_LANG", "eng"),
			DPI:              getEnvAsInt("OCR_DPI", 300),
			MaxPages:         getEnvAsInt("OCR_MAX_PAGES", 0),
			Timeout:          getEnvAsDuration("OCR_TIMEOUT", 2*time.Minute),
			ArtifactCacheDir: getEnv("ARTIFACT_CACHE_DIR", ""),
		},
		Extract: ExtractConfig{
			RulesPath: getEnv("EXTRACT_RULES", ""),
			DayFirst:  getEnvAsBool("EXTRACT_DAY_FIRST", false),
		},
		Batch: BatchConfig{
			HistoryDB: getEnv("HISTORY_DB", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
