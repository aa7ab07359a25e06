package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write %s: %v", configFileName, err)
	}
	return path
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig: %v %v", ok, err)
	}
	if got != want {
		t.Fatalf("found %q, want %q", got, want)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[translate]
jobs = 3
passes = ["verify", "index"]
ui = "off"

[trace]
level = "detail"
mode = "ring"

[cache]
enabled = true
dir = "build/cache"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Translate.Jobs != 3 || len(cfg.Translate.Passes) != 2 || cfg.Translate.UI != "off" {
		t.Fatalf("translate section %+v", cfg.Translate)
	}
	if cfg.Trace.Level != "detail" || cfg.Trace.Mode != "ring" {
		t.Fatalf("trace section %+v", cfg.Trace)
	}
	if want := filepath.Join(dir, "build", "cache"); cfg.Cache.Dir != want {
		t.Fatalf("cache dir %q, want %q", cfg.Cache.Dir, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"unknown key", "[translate]\nworkers = 2\n", "translate.workers"},
		{"negative jobs", "[translate]\njobs = -1\n", "negative"},
		{"bad toml", "[translate\n", "TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, t.TempDir(), tc.data))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("got %v, want error containing %q", err, tc.want)
			}
		})
	}
}

func TestUseLiveUI(t *testing.T) {
	if live, err := useLiveUI("off", os.Stdout, false); err != nil || live {
		t.Fatalf("off: %v %v", live, err)
	}
	if live, err := useLiveUI("on", nil, true); err != nil || !live {
		t.Fatalf("on: %v %v", live, err)
	}
	if live, err := useLiveUI("auto", nil, false); err != nil || live {
		t.Fatalf("auto without a terminal: %v %v", live, err)
	}
	if _, err := useLiveUI("sometimes", os.Stdout, false); err == nil {
		t.Fatalf("invalid mode accepted")
	}
}
