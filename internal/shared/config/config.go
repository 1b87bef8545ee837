package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv          string
	BotName         string
	Token           string
	CommandPrefix   string
	GuildConfigPath string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// 1. Load .env file into the process environment.
	// Missing file is fine in prod; any other error should surface.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// 2. Explicitly bind viper keys to env var names
	bindings := map[string]string{
		"app.env":           "APP_ENV",
		"bot.name":          "BOT_NAME",
		"bot.token":         "DISCORD_TOKEN",
		"bot.prefix":        "COMMAND_PREFIX",
		"bot.guild_configs": "GUILD_CONFIG_PATH",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	// 3. Set defaults
	viper.SetDefault("app.env", "dev")
	viper.SetDefault("bot.name", "Saya")
	viper.SetDefault("bot.prefix", ".")
	viper.SetDefault("bot.guild_configs", "server_configs.json")

	// 4. Get values directly from viper
	cfg := Config{
		AppEnv:          viper.GetString("app.env"),
		BotName:         viper.GetString("bot.name"),
		Token:           viper.GetString("bot.token"),
		CommandPrefix:   viper.GetString("bot.prefix"),
		GuildConfigPath: viper.GetString("bot.guild_configs"),
	}

	// 5. Validation
	if cfg.Token == "" {
		return nil, errors.New("DISCORD_TOKEN is not set in environment or .env file")
	}
	if cfg.CommandPrefix == "" {
		return nil, errors.New("COMMAND_PREFIX must not be empty")
	}

	return &cfg, nil
}
