package ports

import "context"

// UpdateKind discriminates inbound platform events.
type UpdateKind int

const (
	UpdateMessage UpdateKind = iota
	UpdateSlash
	UpdateButton
	UpdateModal
)

// Update represents a simplified, generic inbound event.
type Update struct {
	Kind      UpdateKind
	GuildID   string
	ChannelID string
	MessageID string
	UserID    string
	// Member is the invoking guild member, nil outside a guild.
	Member *Member

	// Command and Args are set for prefix and slash commands.
	Command string
	Args    []string
	// Options holds resolved slash-command option values by name.
	Options map[string]string

	// CustomID is set for buttons and modal submissions.
	CustomID string
	// Inputs holds modal text-input values by custom-id.
	Inputs map[string]string

	// Interaction is zero for plain messages.
	Interaction InteractionRef
}

// --- Slash command definitions ---

// OptionType is the subset of option types this bot registers.
type OptionType int

const (
	OptionString OptionType = iota
	OptionUser
	OptionChannel
	OptionRole
)

// SlashOption describes one option of a slash command.
type SlashOption struct {
	Type        OptionType
	Name        string
	Description string
	Required    bool
}

// SlashCommand describes a slash command for registration.
type SlashCommand struct {
	Name        string
	Description string
	Options     []SlashOption
}

// --- Handler plugin interfaces (Inbound) ---

// CommandHandler handles one prefix command.
type CommandHandler interface {
	// Name returns the primary command name (without the prefix).
	Name() string
	// Aliases returns alternative names, possibly empty.
	Aliases() []string
	Handle(ctx context.Context, update *Update) error
}

// SlashHandler handles one slash command.
type SlashHandler interface {
	Command() SlashCommand
	Handle(ctx context.Context, update *Update) error
}

// ComponentHandler handles button presses whose custom-id starts with
// Prefix().
type ComponentHandler interface {
	Prefix() string
	Handle(ctx context.Context, update *Update) error
}

// ModalHandler handles modal submissions whose custom-id starts with
// Prefix().
type ModalHandler interface {
	Prefix() string
	Handle(ctx context.Context, update *Update) error
}
