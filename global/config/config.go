package config

import (
	"path/filepath"

	"github.com/caiflower/luca-http/global/env"
	"github.com/caiflower/luca-http/pkg/http"
	"github.com/caiflower/luca-http/pkg/logger"
	"github.com/caiflower/luca-http/pkg/storage"
	"github.com/caiflower/luca-http/pkg/tools"
)

type DefaultConfig struct {
	LoggerConfig  logger.Config  `yaml:"logger"`
	HttpConfig    http.Config    `yaml:"http"`
	StorageConfig storage.Config `yaml:"storage"`
}

func LoadDefaultConfig(v *DefaultConfig) (err error) {
	err = tools.LoadConfig(filepath.Join(env.ConfigPath, "default.yaml"), v)
	return
}
