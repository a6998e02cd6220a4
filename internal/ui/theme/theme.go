// Package theme maps named color roles to terminal styles. Two themes
// are built in (dark and light); additional themes load from YAML
// files in the user config directory. Colors are hex strings parsed
// with go-colorful so derived shades (inactive match highlights, the
// selection tint) can be blended instead of hard-coded.
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ErrUnknownTheme is returned when a theme name resolves to neither a
// built-in nor a YAML file.
var ErrUnknownTheme = errors.New("unknown theme")

// Palette is the on-disk theme format. All values are hex colors
// ("#rrggbb" or "#rgb"); empty values inherit from the base theme.
type Palette struct {
	Name         string `yaml:"name"`
	Base         string `yaml:"base"` // "dark" or "light"
	Foreground   string `yaml:"foreground"`
	Background   string `yaml:"background"`
	Selection    string `yaml:"selection"`
	Match        string `yaml:"match"`
	CurrentMatch string `yaml:"current_match"`
	StatusFg     string `yaml:"status_fg"`
	StatusBg     string `yaml:"status_bg"`
	PromptFg     string `yaml:"prompt_fg"`
	PromptBg     string `yaml:"prompt_bg"`
	Accent       string `yaml:"accent"`
}

// Theme holds resolved tcell styles for every drawable role.
type Theme struct {
	Name string

	Text         tcell.Style
	Selection    tcell.Style
	Match        tcell.Style
	CurrentMatch tcell.Style
	StatusBar    tcell.Style
	StatusAlert  tcell.Style
	Prompt       tcell.Style
	PromptLabel  tcell.Style
	EOLMarker    tcell.Style
}

var darkPalette = Palette{
	Name:         "dark",
	Foreground:   "#d4d4d4",
	Background:   "#1e1e1e",
	Selection:    "#264f78",
	Match:        "#515c6a",
	CurrentMatch: "#f2cc60",
	StatusFg:     "#ffffff",
	StatusBg:     "#007acc",
	PromptFg:     "#d4d4d4",
	PromptBg:     "#252526",
	Accent:       "#4fc1ff",
}

var lightPalette = Palette{
	Name:         "light",
	Foreground:   "#333333",
	Background:   "#ffffff",
	Selection:    "#add6ff",
	Match:        "#eaddb3",
	CurrentMatch: "#f8a532",
	StatusFg:     "#ffffff",
	StatusBg:     "#0078d4",
	PromptFg:     "#333333",
	PromptBg:     "#f3f3f3",
	Accent:       "#0066bf",
}

// Load resolves name to a Theme. Built-in names win; otherwise
// name.yaml is looked up under dir (the notepad config directory).
func Load(name, dir string) (*Theme, error) {
	switch name {
	case "", "dark":
		return build(darkPalette)
	case "light":
		return build(lightPalette)
	}
	path := filepath.Join(dir, "themes", name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTheme, name)
		}
		return nil, err
	}
	var p Palette
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("theme %s: %w", name, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	merged := mergePalette(p)
	return build(merged)
}

// mergePalette fills empty fields from the declared base palette.
func mergePalette(p Palette) Palette {
	base := darkPalette
	if strings.EqualFold(p.Base, "light") {
		base = lightPalette
	}
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&p.Foreground, base.Foreground)
	fill(&p.Background, base.Background)
	fill(&p.Selection, base.Selection)
	fill(&p.Match, base.Match)
	fill(&p.CurrentMatch, base.CurrentMatch)
	fill(&p.StatusFg, base.StatusFg)
	fill(&p.StatusBg, base.StatusBg)
	fill(&p.PromptFg, base.PromptFg)
	fill(&p.PromptBg, base.PromptBg)
	fill(&p.Accent, base.Accent)
	return p
}

func build(p Palette) (*Theme, error) {
	fg, err := parseHex(p.Foreground)
	if err != nil {
		return nil, err
	}
	bg, err := parseHex(p.Background)
	if err != nil {
		return nil, err
	}
	sel, err := parseHex(p.Selection)
	if err != nil {
		return nil, err
	}
	match, err := parseHex(p.Match)
	if err != nil {
		return nil, err
	}
	current, err := parseHex(p.CurrentMatch)
	if err != nil {
		return nil, err
	}
	statusFg, err := parseHex(p.StatusFg)
	if err != nil {
		return nil, err
	}
	statusBg, err := parseHex(p.StatusBg)
	if err != nil {
		return nil, err
	}
	promptFg, err := parseHex(p.PromptFg)
	if err != nil {
		return nil, err
	}
	promptBg, err := parseHex(p.PromptBg)
	if err != nil {
		return nil, err
	}
	accent, err := parseHex(p.Accent)
	if err != nil {
		return nil, err
	}

	// The EOL marker and inactive match text stay readable by blending
	// toward the background rather than picking fixed grays.
	faded := fg.BlendLab(bg, 0.6)
	alertBg := statusBg.BlendLab(colorful.Color{R: 0.8, G: 0.1, B: 0.1}, 0.7)

	base := tcell.StyleDefault.Foreground(toTcell(fg)).Background(toTcell(bg))
	t := &Theme{
		Name:         p.Name,
		Text:         base,
		Selection:    base.Background(toTcell(sel)),
		Match:        base.Background(toTcell(match)),
		CurrentMatch: tcell.StyleDefault.Foreground(toTcell(bg)).Background(toTcell(current)),
		StatusBar:    tcell.StyleDefault.Foreground(toTcell(statusFg)).Background(toTcell(statusBg)),
		StatusAlert:  tcell.StyleDefault.Foreground(toTcell(statusFg)).Background(toTcell(alertBg)).Bold(true),
		Prompt:       tcell.StyleDefault.Foreground(toTcell(promptFg)).Background(toTcell(promptBg)),
		PromptLabel:  tcell.StyleDefault.Foreground(toTcell(accent)).Background(toTcell(promptBg)).Bold(true),
		EOLMarker:    base.Foreground(toTcell(faded)),
	}
	return t, nil
}

func parseHex(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if len(s) == 4 && s[0] == '#' {
		// Expand #rgb so colorful.Hex accepts it.
		s = fmt.Sprintf("#%c%c%c%c%c%c", s[1], s[1], s[2], s[2], s[3], s[3])
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
