package config

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// StorageConfig points the upload sink at an S3 compatible bucket
type StorageConfig struct {
	Endpoint  string `env:"LIVESHELLWAVE_S3_ENDPOINT, required"`
	AccessKey string `env:"LIVESHELLWAVE_S3_ACCESS_KEY, required"`
	SecretKey string `env:"LIVESHELLWAVE_S3_SECRET_KEY, required"`
	Bucket    string `env:"LIVESHELLWAVE_S3_BUCKET, default=liveshellwave"`
	Region    string `env:"LIVESHELLWAVE_S3_REGION"`
	UseTLS    bool   `env:"LIVESHELLWAVE_S3_USE_TLS, default=true"`
}

func NewStorageConfigFromEnv() (*StorageConfig, error) {
	var cfg StorageConfig
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadEnv loads a .env file from the working directory if there is one
func LoadEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
