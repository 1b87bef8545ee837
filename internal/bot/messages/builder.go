package messages

import (
	"time"

	"Saya/internal/core/ports"
)

// Theme palette.
const (
	ColorPrimary = 0x000000
	ColorAccent  = 0xFF1E4D
	ColorSuccess = 0x2ECC71
	ColorError   = 0xE74C3C
)

// DefaultFooter is stamped on every themed embed.
const DefaultFooter = "Saya — by liro"

// Builder helps construct themed embeds.
type Builder struct {
	embed ports.Embed
}

// New creates a builder with the standard footer and timestamp.
func New(title, description string) *Builder {
	return &Builder{
		embed: ports.Embed{
			Title:       title,
			Description: description,
			Color:       ColorPrimary,
			Footer:      DefaultFooter,
			Timestamp:   time.Now(),
		},
	}
}

// WithColor overrides the default color.
func (b *Builder) WithColor(color int) *Builder {
	b.embed.Color = color
	return b
}

// WithField appends a name/value field.
func (b *Builder) WithField(name, value string, inline bool) *Builder {
	b.embed.Fields = append(b.embed.Fields, ports.EmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	})
	return b
}

// WithImage sets the large embed image.
func (b *Builder) WithImage(url string) *Builder {
	b.embed.ImageURL = url
	return b
}

// WithFooter overrides the default footer text.
func (b *Builder) WithFooter(text string) *Builder {
	b.embed.Footer = text
	return b
}

// Build returns the final embed.
func (b *Builder) Build() ports.Embed {
	return b.embed
}

// Success is a shorthand for a success-colored embed.
func Success(title, description string) ports.Embed {
	return New(title, description).WithColor(ColorSuccess).Build()
}

// Error is a shorthand for an error-colored embed.
func Error(title, description string) ports.Embed {
	return New(title, description).WithColor(ColorError).Build()
}
