package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"Saya/internal/core/domain"
	"Saya/internal/core/ports"
)

// guildConfigStore keeps per-guild settings in a flat JSON file keyed by
// guild ID. Reads load the whole file every time. The mutex covers both
// reads and writes so a lookup never observes a half-written file, and
// writes go through a temp-file rename so the file on disk is always a
// complete document.
type guildConfigStore struct {
	path string
	mu   sync.Mutex
	log  zerolog.Logger
}

var _ ports.GuildConfigStore = (*guildConfigStore)(nil) // Ensure compliance

// NewGuildConfigStore creates a store backed by the JSON file at path.
// The file may not exist yet; it is created on the first Set.
func NewGuildConfigStore(path string, baseLogger *zerolog.Logger) ports.GuildConfigStore {
	return &guildConfigStore{
		path: path,
		log:  baseLogger.With().Str("component", "guild_config_store").Str("path", path).Logger(),
	}
}

// Get returns the config for a guild, or (nil, nil) when absent.
func (s *guildConfigStore) Get(ctx context.Context, guildID string) (*domain.GuildConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	configs, err := s.load()
	if err != nil {
		s.log.Error().Err(err).Str("guild_id", guildID).Msg("Failed to load guild configs")
		return nil, err
	}

	cfg, ok := configs[guildID]
	if !ok {
		return nil, nil
	}
	return &cfg, nil
}

// Set creates or replaces the record for a guild.
func (s *guildConfigStore) Set(ctx context.Context, guildID string, cfg domain.GuildConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	configs, err := s.load()
	if err != nil {
		s.log.Error().Err(err).Str("guild_id", guildID).Msg("Failed to load guild configs before write")
		return err
	}

	configs[guildID] = cfg

	data, err := json.MarshalIndent(configs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal guild configs: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.log.Error().Err(err).Str("guild_id", guildID).Msg("Failed to write guild configs")
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.log.Error().Err(err).Str("guild_id", guildID).Msg("Failed to replace guild config file")
		return err
	}

	s.log.Info().Str("guild_id", guildID).Msg("Guild config saved")
	return nil
}

// load reads the whole file. A missing file is an empty store.
func (s *guildConfigStore) load() (map[string]domain.GuildConfig, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]domain.GuildConfig{}, nil
		}
		return nil, err
	}

	configs := map[string]domain.GuildConfig{}
	if len(data) == 0 {
		return configs, nil
	}
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("parse guild configs: %w", err)
	}
	return configs, nil
}
