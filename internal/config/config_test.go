package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_Valid(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
	if s.UI.Language != "zh-CN" {
		t.Errorf("default language = %q, want zh-CN", s.UI.Language)
	}
	if !s.Editor.WordWrap {
		t.Error("WordWrap should default to true")
	}
	if s.Search.CaseSensitive || s.Search.WholeWord {
		t.Error("search options should default to false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		ok     bool
	}{
		{"defaults", func(*Settings) {}, true},
		{"zero tab width", func(s *Settings) { s.Editor.TabWidth = 0 }, false},
		{"huge tab width", func(s *Settings) { s.Editor.TabWidth = 64 }, false},
		{"negative autosave", func(s *Settings) { s.Editor.AutosaveSeconds = -1 }, false},
		{"bad log level", func(s *Settings) { s.Logging.Level = "verbose" }, false},
		{"empty theme", func(s *Settings) { s.UI.Theme = "" }, false},
		{"debug level", func(s *Settings) { s.Logging.Level = "debug" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidSetting) {
				t.Errorf("Validate() = %v, want ErrInvalidSetting", err)
			}
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if s != Default() {
		t.Errorf("Load of missing file = %+v, want defaults", s)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[search]
case_sensitive = true

[editor]
tab_width = 8
word_wrap = false

[ui]
theme = "light"
language = "en"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if !s.Search.CaseSensitive {
		t.Error("case_sensitive not loaded")
	}
	if s.Editor.TabWidth != 8 {
		t.Errorf("tab_width = %d, want 8", s.Editor.TabWidth)
	}
	if s.Editor.WordWrap {
		t.Error("word_wrap not loaded")
	}
	if s.UI.Theme != "light" || s.UI.Language != "en" {
		t.Errorf("ui = %+v", s.UI)
	}
	// Untouched sections keep defaults.
	if s.Logging.Level != "info" {
		t.Errorf("logging.level = %q, want default info", s.Logging.Level)
	}
}

func TestLoad_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[search\nbroken"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Load error = %v, want *ParseError", err)
	}
	if perr.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", perr.Path, path)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[editor]\ntab_width = 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrInvalidSetting) {
		t.Errorf("Load error = %v, want ErrInvalidSetting", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"NOTEPAD_THEME":          "light",
		"NOTEPAD_LOG_LEVEL":      "DEBUG",
		"NOTEPAD_TAB_WIDTH":      "2",
		"NOTEPAD_WORD_WRAP":      "false",
		"NOTEPAD_CASE_SENSITIVE": "true",
		"NOTEPAD_TAB_EXTRA":      "ignored",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	s := Default()
	applyEnv(&s, lookup)

	if s.UI.Theme != "light" {
		t.Errorf("theme = %q, want light", s.UI.Theme)
	}
	if s.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug (lowercased)", s.Logging.Level)
	}
	if s.Editor.TabWidth != 2 {
		t.Errorf("tab width = %d, want 2", s.Editor.TabWidth)
	}
	if s.Editor.WordWrap {
		t.Error("word wrap should be overridden to false")
	}
	if !s.Search.CaseSensitive {
		t.Error("case sensitive should be overridden to true")
	}
}

func TestApplyEnv_BadValuesIgnored(t *testing.T) {
	lookup := func(key string) (string, bool) {
		if key == "NOTEPAD_TAB_WIDTH" {
			return "not-a-number", true
		}
		return "", false
	}

	s := Default()
	applyEnv(&s, lookup)
	if s.Editor.TabWidth != Default().Editor.TabWidth {
		t.Errorf("tab width = %d, want default", s.Editor.TabWidth)
	}
}
