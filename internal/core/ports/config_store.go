package ports

import (
	"context"

	"Saya/internal/core/domain"
)

// GuildConfigStore defines persistence for per-guild verification settings.
// The store is read-mostly; every Get re-reads the backing file.
type GuildConfigStore interface {
	// Get returns the config for a guild, or (nil, nil) when the guild has
	// no record.
	Get(ctx context.Context, guildID string) (*domain.GuildConfig, error)

	// Set creates or replaces the record for a guild.
	Set(ctx context.Context, guildID string, cfg domain.GuildConfig) error
}
