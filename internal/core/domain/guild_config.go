package domain

// GuildConfig is the per-guild verification configuration.
// A guild without a record has the verification workflow disabled.
type GuildConfig struct {
	// VerifiedRoleID is the role granted when a request is approved.
	VerifiedRoleID string `json:"verifiedRole"`
	// NotifyChannelID is the channel where moderator notifications are posted.
	NotifyChannelID string `json:"notifyChannel"`
}
