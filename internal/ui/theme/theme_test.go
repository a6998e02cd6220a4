package theme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestLoadBuiltins(t *testing.T) {
	for _, name := range []string{"", "dark", "light"} {
		th, err := Load(name, t.TempDir())
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if th.Text == tcell.StyleDefault {
			t.Errorf("Load(%q) left Text unstyled", name)
		}
	}
}

func TestLoadUnknown(t *testing.T) {
	_, err := Load("nope", t.TempDir())
	if !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("err = %v, want ErrUnknownTheme", err)
	}
}

func TestLoadYAMLTheme(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "themes"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "name: sepia\nbase: light\nbackground: \"#f4ecd8\"\nforeground: \"#5b4636\"\n"
	if err := os.WriteFile(filepath.Join(dir, "themes", "sepia.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	th, err := Load("sepia", dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.Name != "sepia" {
		t.Errorf("Name = %q", th.Name)
	}
	fg, bg, _ := th.Text.Decompose()
	if fg != tcell.NewRGBColor(0x5b, 0x46, 0x36) {
		t.Errorf("foreground = %v", fg)
	}
	if bg != tcell.NewRGBColor(0xf4, 0xec, 0xd8) {
		t.Errorf("background = %v", bg)
	}
	// Unspecified roles inherit from the light base.
	_, statusBg, _ := th.StatusBar.Decompose()
	if statusBg != tcell.NewRGBColor(0x00, 0x78, 0xd4) {
		t.Errorf("status background = %v, want light base", statusBg)
	}
}

func TestLoadBadColor(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "themes"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "themes", "bad.yaml"), []byte("foreground: \"purple\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load("bad", dir); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func TestShortHexExpansion(t *testing.T) {
	c, err := parseHex("#abc")
	if err != nil {
		t.Fatalf("parseHex: %v", err)
	}
	r, g, b := c.RGB255()
	if r != 0xaa || g != 0xbb || b != 0xcc {
		t.Errorf("parseHex(#abc) = %02x%02x%02x", r, g, b)
	}
}
