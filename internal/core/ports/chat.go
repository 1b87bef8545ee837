package ports

import (
	"context"
	"time"
)

// --- Message Structures ---

// EmbedField is one name/value pair inside an embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is a library-agnostic rich message body.
type Embed struct {
	Title       string
	Description string
	Color       int
	Fields      []EmbedField
	Footer      string
	ImageURL    string
	Timestamp   time.Time
}

// ButtonStyle mirrors the platform button styles.
type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota
	ButtonSecondary
	ButtonSuccess
	ButtonDanger
	ButtonLink
)

// Button is a single interactive control. CustomID carries the correlation
// payload; URL is only set for link buttons.
type Button struct {
	Label    string
	CustomID string
	URL      string
	Style    ButtonStyle
	Disabled bool
}

// SendMessageParams holds all options for sending a channel message.
type SendMessageParams struct {
	ChannelID string
	Content   string
	Embeds    []Embed
	Buttons   [][]Button
}

// Message is a fetched channel message, reduced to what the workflow
// inspects.
type Message struct {
	ID        string
	ChannelID string
	Embeds    []Embed
	Buttons   [][]Button
}

// HasEnabledButtons reports whether any control on the message is still
// clickable.
func (m *Message) HasEnabledButtons() bool {
	for _, row := range m.Buttons {
		for _, b := range row {
			if !b.Disabled {
				return true
			}
		}
	}
	return false
}

// --- Users and Members ---

// User is a platform user.
type User struct {
	ID        string
	Username  string
	Tag       string
	Mention   string
	AvatarURL string
	BannerURL string
	CreatedAt time.Time
}

// Member is a user inside a specific guild.
type Member struct {
	User        User
	GuildID     string
	JoinedAt    time.Time
	RoleIDs     []string
	Permissions int64
}

// HasRole reports whether the member holds the given role.
func (m *Member) HasRole(roleID string) bool {
	for _, id := range m.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// Guild is a server-like community space.
type Guild struct {
	ID   string
	Name string
}

// --- Interactions ---

// InteractionRef identifies one interaction for responses and follow-ups.
type InteractionRef struct {
	ID    string
	AppID string
	Token string
}

// TextInput is one field of a modal form.
type TextInput struct {
	CustomID    string
	Label       string
	Placeholder string
	Paragraph   bool
	Required    bool
	MaxLength   int
}

// Modal is a structured text-entry dialog shown in response to a control
// activation.
type Modal struct {
	CustomID string
	Title    string
	Inputs   []TextInput
}

// --- Chat Client Port (Outbound) ---

// ChatClient is the interface the core calls to talk to the platform.
// Member lookups are authoritative fetches, never cache reads.
type ChatClient interface {
	User(ctx context.Context, userID string) (*User, error)
	Member(ctx context.Context, guildID, userID string) (*Member, error)
	Guild(ctx context.Context, guildID string) (*Guild, error)

	SendMessage(ctx context.Context, params SendMessageParams) (messageID string, err error)
	EditMessageButtons(ctx context.Context, channelID, messageID string, buttons [][]Button) error
	RecentMessages(ctx context.Context, channelID string, limit int) ([]Message, error)

	AddRole(ctx context.Context, guildID, userID, roleID string) error
	SendDirectMessage(ctx context.Context, userID string, embed Embed) error

	Respond(ctx context.Context, ref InteractionRef, embed Embed, ephemeral bool) error
	Followup(ctx context.Context, ref InteractionRef, embed Embed, ephemeral bool) error
	ShowModal(ctx context.Context, ref InteractionRef, modal Modal) error
}
