package config

import (
	"os"
	"path/filepath"
	"testing"

	"nhport/pkg/engine/command"
	"nhport/pkg/engine/event"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "config.yaml")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Port != "tui" || c.TileSize != DefaultTileSize {
		t.Errorf("defaults = %+v", c)
	}
	if c.Path() != path {
		t.Errorf("Path() = %q, want %q", c.Path(), path)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
port: fullscreen
tile_size: 32
bell: true
log:
  level: debug
bindings:
  search: S
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Port != "fullscreen" || c.TileSize != 32 || !c.Bell || c.Log.Level != "debug" {
		t.Errorf("Load() = %+v", c)
	}
	if c.Bindings["search"] != "S" {
		t.Errorf("Bindings = %v", c.Bindings)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("port: [unterminated"), 0o644)
	if _, err := Load(path); err == nil {
		t.Error("Load of invalid YAML succeeded")
	}
}

func TestSetTileSize_ClampsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	c, _ := Load(path)

	if err := c.SetTileSize(1000); err != nil {
		t.Fatalf("SetTileSize: %v", err)
	}
	if c.GetTileSize() != MaxTileSize {
		t.Errorf("GetTileSize() = %d, want %d", c.GetTileSize(), MaxTileSize)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.TileSize != MaxTileSize {
		t.Errorf("reloaded TileSize = %d, want %d", again.TileSize, MaxTileSize)
	}
}

func TestEffective_OverridesStayOutOfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c, _ := Load(path)
	c.Bindings = map[string]string{"search": "S"}
	SetCurrent(c)
	defer SetCurrent(Default())

	run := c.Effective(Overrides{Port: "ebiten", WebAddr: ":9000", LogLevel: "debug", Seed: 1234567890})
	if run.Port != "ebiten" || run.WebAddr != ":9000" || run.Log.Level != "debug" || run.Seed != 1234567890 {
		t.Errorf("Effective() = %+v", run)
	}
	run.Bindings["search"] = "x"
	if c.Bindings["search"] != "S" {
		t.Error("Effective() shares the bindings map")
	}
	if err := run.Save(); err == nil {
		t.Error("Save() on the effective copy succeeded")
	}

	// Zooming saves the stored preferences, not the run's.
	if err := Current().SetTileSize(30); err != nil {
		t.Fatalf("SetTileSize: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Port != "tui" || again.Seed != 0 || again.Log.Level != "info" || again.WebAddr != "127.0.0.1:8080" {
		t.Errorf("reloaded = port %q seed %d log %q addr %q", again.Port, again.Seed, again.Log.Level, again.WebAddr)
	}
	if again.TileSize != 30 {
		t.Errorf("reloaded TileSize = %d, want 30", again.TileSize)
	}
}

func TestParseKey(t *testing.T) {
	cases := map[string]event.Key{
		"a":     'a',
		"^x":    event.Ctrl('x'),
		"esc":   event.KeyEscape,
		"Enter": event.KeyEnter,
		"space": ' ',
	}
	for in, want := range cases {
		got, err := ParseKey(in)
		if err != nil || got != want {
			t.Errorf("ParseKey(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseKey("abc"); err == nil {
		t.Error("ParseKey(abc) succeeded")
	}
}

func TestApplyBindings(t *testing.T) {
	c := Default()
	c.Bindings = map[string]string{
		"search":    "S",
		"move_west": "a",
		"fly":       "f",
		"rest":      "esc",
		"pickup":    "none",
	}
	km := command.DefaultKeymap()
	err := c.ApplyBindings(km)
	if err == nil {
		t.Fatal("ApplyBindings with bad entries returned nil error")
	}

	if b, _ := km.Lookup('S'); b.Code != command.Search {
		t.Errorf("Lookup('S') = %v, want Search", b.Code)
	}
	if _, ok := km.Lookup('s'); ok {
		t.Error("'s' still bound after rebinding search")
	}
	if b, _ := km.Lookup('a'); b.Code != command.Move || b.Dir != command.West {
		t.Errorf("Lookup('a') = %+v, want Move west", b)
	}
	if b, _ := km.Lookup(event.KeyEscape); b.Code != command.Cancel {
		t.Errorf("ESC rebound to %v", b.Code)
	}
	if b, ok := km.Lookup(','); ok {
		t.Errorf("Lookup(',') = %v after unbinding pickup", b.Code)
	}
}
