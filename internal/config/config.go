package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Settings is the optional YAML settings file (ticketlens.yaml). Everything
// in it can also come from environment variables; the file wins when both
// are present.
type Settings struct {
	SlackBotToken string `yaml:"slack_bot_token"`
	SlackChannel  string `yaml:"slack_channel"`

	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	AnthropicModel  string `yaml:"anthropic_model"`

	WatchSchedule string `yaml:"watch_schedule"`
	WatchDir      string `yaml:"watch_dir"`

	ReportDir string `yaml:"report_dir"`
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Settings

	DataPath string
	DBPath   string
}

// Load loads configuration from .env files, environment variables and the
// optional YAML settings file.
func Load() (*AppConfig, error) {
	// Binary-relative .env first (the MCP host rarely sets a useful cwd),
	// then the working directory for development runs.
	exeDir := ""
	if exePath, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file in working directory, relying on environment")
	}

	dataPath := os.Getenv("TICKETLENS_DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	cfg := &AppConfig{
		Settings: Settings{
			SlackBotToken:   os.Getenv("SLACK_BOT_TOKEN"),
			SlackChannel:    os.Getenv("SLACK_CHANNEL"),
			AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
			AnthropicModel:  os.Getenv("ANTHROPIC_MODEL"),
			WatchSchedule:   getEnv("TICKETLENS_WATCH_SCHEDULE", "0 * * * *"),
			WatchDir:        os.Getenv("TICKETLENS_WATCH_DIR"),
			ReportDir:       getEnv("TICKETLENS_REPORT_DIR", "reports"),
		},
		DataPath: dataPath,
		DBPath:   filepath.Join(dataPath, "ticketlens.db"),
	}

	if err := cfg.mergeSettingsFile(filepath.Join(dataPath, "ticketlens.yaml")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeSettingsFile overlays non-empty values from the YAML settings file.
// A missing file is normal; a malformed one is an error.
func (c *AppConfig) mergeSettingsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return err
	}
	log.Debug().Str("path", path).Msg("Loaded settings file")

	overlay := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	overlay(&c.SlackBotToken, s.SlackBotToken)
	overlay(&c.SlackChannel, s.SlackChannel)
	overlay(&c.AnthropicAPIKey, s.AnthropicAPIKey)
	overlay(&c.AnthropicModel, s.AnthropicModel)
	overlay(&c.WatchSchedule, s.WatchSchedule)
	overlay(&c.WatchDir, s.WatchDir)
	overlay(&c.ReportDir, s.ReportDir)
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
