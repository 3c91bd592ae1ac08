package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

type (
	Config struct {
		Port      string
		LogLevel  string
		LogFormat string

		Storage    Storage
		Completion Completion
	}

	Storage struct {
		Type             string
		DatabaseURI      string
		DatabaseName     string
		CollectionName   string
		DataSourceName   string
		LocalStoragePath string
		S3BucketName     string
	}

	Completion struct {
		Provider string
		Model    string
		APIKey   string
		BaseURL  string
	}
)

// Load reads the process environment once, after merging an optional .env
// file from the working directory. Variables already set win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	databaseURI := os.Getenv("DATABASE_URI")
	storageType := os.Getenv("STORAGE_TYPE")
	if storageType == "" && databaseURI != "" {
		storageType = "mongodb"
	}

	return &Config{
		Port:      getEnv("PORT", "5000"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		Storage: Storage{
			Type:             storageType,
			DatabaseURI:      databaseURI,
			DatabaseName:     getEnv("DATABASE_NAME", "storydb"),
			CollectionName:   getEnv("COLLECTION_NAME", "stories"),
			DataSourceName:   getEnv("DATA_SOURCE_NAME", "stories.db"),
			LocalStoragePath: getEnv("LOCAL_STORAGE_PATH", "./data/stories"),
			S3BucketName:     os.Getenv("S3_BUCKET_NAME"),
		},
		Completion: Completion{
			Provider: getEnv("COMPLETION_PROVIDER", "openai"),
			Model:    getEnv("COMPLETION_MODEL", "gpt-4"),
			APIKey:   os.Getenv("OPENAI_API_KEY"),
			BaseURL:  os.Getenv("OPENAI_BASE_URL"),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
