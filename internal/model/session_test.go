package model

import "testing"

func TestPreferencesTheme(t *testing.T) {
	tests := []struct {
		prefs    Preferences
		expected string
	}{
		{Preferences{}, ThemeLight},
		{Preferences{DarkMode: true}, ThemeDark},
		{Preferences{}.Toggled(), ThemeDark},
		{Preferences{DarkMode: true}.Toggled(), ThemeLight},
		{Preferences{}.Toggled().Toggled(), ThemeLight},
	}

	for _, tt := range tests {
		if got := tt.prefs.Theme(); got != tt.expected {
			t.Errorf("%+v.Theme() = %q, want %q", tt.prefs, got, tt.expected)
		}
	}
}
