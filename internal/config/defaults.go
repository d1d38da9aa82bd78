package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const defaultSystemPrompt = "You are Joy-Caption running on-device. Given an image, return a concise " +
	"description and a list of short, search-friendly tags in JSON format. " +
	"Avoid personally identifiable information."

func GetDefault() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return Config{
		ShutdownTimeout: "10s",

		AI: AIConfig{
			UseRealAI:    false,
			Endpoint:     "http://localhost:11434/api/generate",
			Model:        "joy-caption-alpha-two",
			SystemPrompt: defaultSystemPrompt,
			Timeout:      "30s",
		},
		Gallery: GalleryConfig{
			Dir: filepath.Join(home, "SmartGallery", "gallery"),
		},
		Database: DatabaseConfig{
			Path: filepath.Join(home, "SmartGallery", "smart_gallery.db"),
		},
		Log: LogConfig{
			Level:      "INFO",
			TimeFormat: "2006-01-02 15:04:05",
			File:       "",
			NoColor:    false,
			JSON:       false,
			NoTerminal: false,
			Rotation: LogRotationConfig{
				MaxSize:    128,
				MaxBackups: 5,
				MaxAge:     16,
				Compress:   false,
			},
		},
	}
}

func setDefaults() {
	defaults := GetDefault()

	viper.SetDefault("shutdown_timeout", defaults.ShutdownTimeout)

	viper.SetDefault("ai.use_real_ai", defaults.AI.UseRealAI)
	viper.SetDefault("ai.endpoint", defaults.AI.Endpoint)
	viper.SetDefault("ai.model", defaults.AI.Model)
	viper.SetDefault("ai.system_prompt", defaults.AI.SystemPrompt)
	viper.SetDefault("ai.timeout", defaults.AI.Timeout)

	viper.SetDefault("gallery.dir", defaults.Gallery.Dir)
	viper.SetDefault("database.path", defaults.Database.Path)

	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.time_format", defaults.Log.TimeFormat)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("log.no_color", defaults.Log.NoColor)
	viper.SetDefault("log.json", defaults.Log.JSON)
	viper.SetDefault("log.no_terminal", defaults.Log.NoTerminal)
	viper.SetDefault("log.rotation.max_size", defaults.Log.Rotation.MaxSize)
	viper.SetDefault("log.rotation.max_backups", defaults.Log.Rotation.MaxBackups)
	viper.SetDefault("log.rotation.max_age", defaults.Log.Rotation.MaxAge)
	viper.SetDefault("log.rotation.compress", defaults.Log.Rotation.Compress)
}
