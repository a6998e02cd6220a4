package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "NOTEPAD_"

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load builds the effective settings: defaults, overlaid by the TOML
// file at path (a missing file is not an error), overlaid by NOTEPAD_*
// environment variables, then validated.
func Load(path string) (Settings, error) {
	s := Default()

	if path != "" {
		if err := loadFile(path, &s); err != nil {
			return Settings{}, err
		}
	}
	applyEnv(&s, os.LookupEnv)

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// DefaultPath returns the conventional config file location under the
// user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "notepad", "config.toml")
}

// loadFile unmarshals the TOML file at path over s.
func loadFile(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, s); err != nil {
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

// lookupFunc abstracts os.LookupEnv for tests.
type lookupFunc func(string) (string, bool)

// applyEnv overlays NOTEPAD_* environment variables on s.
// Unparseable values are ignored; validation catches the rest.
func applyEnv(s *Settings, lookup lookupFunc) {
	if v, ok := lookup(EnvPrefix + "THEME"); ok {
		s.UI.Theme = v
	}
	if v, ok := lookup(EnvPrefix + "LANGUAGE"); ok {
		s.UI.Language = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		s.Logging.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvPrefix + "LOG_FILE"); ok {
		s.Logging.File = v
	}
	if v, ok := lookup(EnvPrefix + "TAB_WIDTH"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			s.Editor.TabWidth = n
		}
	}
	if v, ok := lookup(EnvPrefix + "WORD_WRAP"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Editor.WordWrap = b
		}
	}
	if v, ok := lookup(EnvPrefix + "CASE_SENSITIVE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Search.CaseSensitive = b
		}
	}
	if v, ok := lookup(EnvPrefix + "WHOLE_WORD"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Search.WholeWord = b
		}
	}
}
