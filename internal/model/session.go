package model

import "time"

// Session is one browser using the local web client. It carries display
// preferences only; it does not identify a person.
type Session struct {
	ID          string      `json:"id"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   time.Time   `json:"created_at"`
	LastSeen    time.Time   `json:"last_seen"`
}

// Preferences are the per-session display settings.
type Preferences struct {
	DarkMode bool `json:"dark_mode"`
}

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Theme returns the theme name used by the page layout.
func (p Preferences) Theme() string {
	if p.DarkMode {
		return ThemeDark
	}
	return ThemeLight
}

// Toggled returns the preferences with dark mode flipped.
func (p Preferences) Toggled() Preferences {
	p.DarkMode = !p.DarkMode
	return p
}
