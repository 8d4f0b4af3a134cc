package config

import "os"

type Config struct {
	Port        string
	DatasetPath string // optional workbook to preload at startup
	GeminiKey   string
	GeminiModel string
}

func FromEnv() Config {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		key = os.Getenv("API_KEY")
	}
	return Config{
		Port:        envOr("PORT", "8080"),
		DatasetPath: os.Getenv("DATASET_PATH"),
		GeminiKey:   key,
		GeminiModel: envOr("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
