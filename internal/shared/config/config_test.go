package config

import (
	"testing"
)

func TestLoad(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("BOT_NAME", "TestBot")
	t.Setenv("DISCORD_TOKEN", "token-123")
	t.Setenv("COMMAND_PREFIX", "!")
	t.Setenv("GUILD_CONFIG_PATH", "/tmp/configs.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppEnv != "prod" {
		t.Errorf("AppEnv = %q, want prod", cfg.AppEnv)
	}
	if cfg.BotName != "TestBot" {
		t.Errorf("BotName = %q, want TestBot", cfg.BotName)
	}
	if cfg.Token != "token-123" {
		t.Errorf("Token = %q, want token-123", cfg.Token)
	}
	if cfg.CommandPrefix != "!" {
		t.Errorf("CommandPrefix = %q, want !", cfg.CommandPrefix)
	}
	if cfg.GuildConfigPath != "/tmp/configs.json" {
		t.Errorf("GuildConfigPath = %q, want /tmp/configs.json", cfg.GuildConfigPath)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-123")
	t.Setenv("APP_ENV", "")
	t.Setenv("BOT_NAME", "")
	t.Setenv("COMMAND_PREFIX", "")
	t.Setenv("GUILD_CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppEnv != "dev" {
		t.Errorf("AppEnv = %q, want dev default", cfg.AppEnv)
	}
	if cfg.BotName != "Saya" {
		t.Errorf("BotName = %q, want Saya default", cfg.BotName)
	}
	if cfg.CommandPrefix != "." {
		t.Errorf("CommandPrefix = %q, want . default", cfg.CommandPrefix)
	}
	if cfg.GuildConfigPath != "server_configs.json" {
		t.Errorf("GuildConfigPath = %q, want server_configs.json default", cfg.GuildConfigPath)
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when DISCORD_TOKEN is unset")
	}
}
