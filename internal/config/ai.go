package config

// AIConfig holds the analysis gateway configuration. When UseRealAI is false
// every analysis call answers with the fixed placeholder payload and performs
// no I/O.
type AIConfig struct {
	UseRealAI    bool   `mapstructure:"use_real_ai"   yaml:"use_real_ai"`
	Endpoint     string `mapstructure:"endpoint"      yaml:"endpoint"`
	Model        string `mapstructure:"model"         yaml:"model"`
	SystemPrompt string `mapstructure:"system_prompt" yaml:"system_prompt"`
	Timeout      string `mapstructure:"timeout"       yaml:"timeout"`
}

// GalleryConfig holds the root directory for user-managed gallery images.
type GalleryConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// DatabaseConfig holds the SQLite database file path.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}
