// Package config provides the notepad's settings layer: typed defaults,
// a TOML file loader, environment overrides, and live reload.
//
// The application reads a Settings value object; the core packages
// never consult the store or the file system themselves.
package config

import (
	"errors"
	"fmt"
)

// Errors returned by the config package.
var (
	ErrInvalidSetting = errors.New("invalid setting")
)

// Settings is the complete notepad configuration.
type Settings struct {
	Search  SearchSettings  `toml:"search"`
	Editor  EditorSettings  `toml:"editor"`
	UI      UISettings      `toml:"ui"`
	Logging LoggingSettings `toml:"logging"`
}

// SearchSettings holds the find/replace defaults.
type SearchSettings struct {
	CaseSensitive bool `toml:"case_sensitive"`
	WholeWord     bool `toml:"whole_word"`
}

// EditorSettings holds text editing behavior.
type EditorSettings struct {
	WordWrap        bool `toml:"word_wrap"`
	TabWidth        int  `toml:"tab_width"`
	AutosaveSeconds int  `toml:"autosave_seconds"` // 0 disables autosave
}

// UISettings holds appearance and localization.
type UISettings struct {
	Theme    string `toml:"theme"`
	Language string `toml:"language"` // BCP 47 tag, e.g. "zh-CN"
}

// LoggingSettings holds logger configuration.
type LoggingSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // empty logs to stderr
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Search: SearchSettings{
			CaseSensitive: false,
			WholeWord:     false,
		},
		Editor: EditorSettings{
			WordWrap:        true,
			TabWidth:        4,
			AutosaveSeconds: 0,
		},
		UI: UISettings{
			Theme:    "dark",
			Language: "zh-CN",
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}

// Validate checks the settings for out-of-range values.
func (s *Settings) Validate() error {
	if s.Editor.TabWidth < 1 || s.Editor.TabWidth > 16 {
		return fmt.Errorf("%w: editor.tab_width %d (must be 1-16)", ErrInvalidSetting, s.Editor.TabWidth)
	}
	if s.Editor.AutosaveSeconds < 0 {
		return fmt.Errorf("%w: editor.autosave_seconds %d (must be >= 0)", ErrInvalidSetting, s.Editor.AutosaveSeconds)
	}
	switch s.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalidSetting, s.Logging.Level)
	}
	if s.UI.Theme == "" {
		return fmt.Errorf("%w: ui.theme must not be empty", ErrInvalidSetting)
	}
	return nil
}
