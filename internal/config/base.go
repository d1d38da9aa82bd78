package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	ShutdownTimeout string `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	AI       AIConfig       `mapstructure:"ai"       yaml:"ai"`
	Gallery  GalleryConfig  `mapstructure:"gallery"  yaml:"gallery"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Log      LogConfig      `mapstructure:"log"      yaml:"log"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	setDefaults()
	bindEnvAliases()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// bindEnvAliases keeps the bare variable names used by the original desktop
// app working alongside the SMARTGALLERY_* prefixed ones.
func bindEnvAliases() {
	viper.BindEnv("ai.use_real_ai", "SMARTGALLERY_AI_USE_REAL_AI", "USE_REAL_AI")
	viper.BindEnv("ai.endpoint", "SMARTGALLERY_AI_ENDPOINT", "OLLAMA_API_URL")
	viper.BindEnv("ai.system_prompt", "SMARTGALLERY_AI_SYSTEM_PROMPT", "SYSTEM_PROMPT")
	viper.BindEnv("gallery.dir", "SMARTGALLERY_GALLERY_DIR", "GALLERY_DIR")
	viper.BindEnv("database.path", "SMARTGALLERY_DATABASE_PATH", "DB_PATH")
}
