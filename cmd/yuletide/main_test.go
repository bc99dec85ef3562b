package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/yuletide"
)

func TestThemesListsEveryMode(t *testing.T) {
	var buf bytes.Buffer
	if err := run([]string{"themes"}, &buf); err != nil {
		t.Fatalf("themes: %v", err)
	}
	out := buf.String()
	for _, m := range yuletide.Modes() {
		if !strings.Contains(out, m.String()) {
			t.Errorf("output missing theme %q", m)
		}
		p := m.Palette()
		if !strings.Contains(out, p.Ornament.Hex()) {
			t.Errorf("output missing %s ornament %s", m, p.Ornament.Hex())
		}
	}
}

func TestRootWithoutSubcommandShowsHelp(t *testing.T) {
	err := run(nil, &bytes.Buffer{})
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("err = %v, want flag.ErrHelp", err)
	}
}

func TestSceneFlagsDefaults(t *testing.T) {
	var f sceneFlags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse([]string{"-particles", "1200", "-mode", "neon", "-seed", "7"}); err != nil {
		t.Fatal(err)
	}
	if f.cfg.Particles != 1200 {
		t.Errorf("Particles = %d, want 1200", f.cfg.Particles)
	}
	if f.cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7", f.cfg.Seed)
	}
	if f.cfg.Stars != yuletide.DefaultConfig().Stars {
		t.Errorf("Stars = %d, want default", f.cfg.Stars)
	}

	scene, player, log, err := f.build(filepath.Join(t.TempDir(), "test.log"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer log.Sync() //nolint:errcheck
	defer player.Close()
	if scene.Mode() != yuletide.ModeNeon {
		t.Errorf("Mode = %v, want neon", scene.Mode())
	}
	if player.Playing() {
		t.Error("player playing without -music")
	}
}

func TestSceneFlagsRejectBadMode(t *testing.T) {
	var f sceneFlags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse([]string{"-mode", "plaid"}); err != nil {
		t.Fatal(err)
	}
	_, _, _, err := f.build(filepath.Join(t.TempDir(), "test.log"))
	if !errors.Is(err, yuletide.ErrUnknownMode) {
		t.Errorf("err = %v, want ErrUnknownMode", err)
	}
}

func TestSceneFlagsLoadScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.json")
	if err := os.WriteFile(path, []byte(`{"steps":[{"action":"wait","frames":2}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	var f sceneFlags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse([]string{"-script", path}); err != nil {
		t.Fatal(err)
	}
	_, player, log, err := f.build(filepath.Join(dir, "test.log"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	log.Sync() //nolint:errcheck
	player.Close()
}
