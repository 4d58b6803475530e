package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               int
	DatabasePath       string
	UploadDirectory    string
	ResultDirectory    string
	ReportDirectory    string
	ModelPath          string
	ConfigPath         string
	TargetClass        string
	DetectionThreshold float64
	MaxUploadSize      int64 // Maksymalny rozmiar przesyłanego pliku w MB
	ReportFontPath     string
	LogDirectory       string
}

// Load reads an optional .env file and builds the configuration from the environment.
func Load() *Config {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	return &Config{
		Port:               getEnvAsInt("PORT", 8080),
		DatabasePath:       getEnv("DB_PATH", filepath.Join(".", "data", "history.db")),
		UploadDirectory:    getEnv("UPLOAD_DIR", filepath.Join(".", "static", "uploads")),
		ResultDirectory:    getEnv("RESULT_DIR", filepath.Join(".", "static", "results")),
		ReportDirectory:    getEnv("REPORT_DIR", filepath.Join(".", "static", "reports")),
		ModelPath:          getEnv("MODEL_PATH", filepath.Join(".", "models", "frozen_inference_graph.pb")),
		ConfigPath:         getEnv("CONFIG_PATH", filepath.Join(".", "models", "ssd_mobilenet_v1_coco_2017_11_17.pbtxt")),
		TargetClass:        getEnv("TARGET_CLASS", "person"),
		DetectionThreshold: getEnvAsFloat("DETECTION_THRESHOLD", 0.5),
		MaxUploadSize:      getEnvAsInt64("MAX_UPLOAD_MB", 64),
		ReportFontPath:     getEnv("REPORT_FONT_PATH", ""),
		LogDirectory:       getEnv("LOG_DIR", filepath.Join(".", "logs")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
