// internal/config/loader_test.go
//
// Unit-tests for the layered config loader.  Each test points
// PRESENTER_ROOT at a temp directory so the developer's own conf/ never
// leaks in.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeYAML(t *testing.T, root, body string) {
	t.Helper()
	dir := filepath.Join(root, "conf")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "global.yaml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	root := t.TempDir()
	t.Setenv("PRESENTER_ROOT", root)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		HTTP:   HTTP{ListenAddr: ":8080"},
		Log:    Log{Level: "info"},
		Inline: Inline{MaxIdleWorkers: 8, IdleTTL: 10 * time.Minute},
		Paths:  Paths{Root: root},
	}
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("config (-want +got):\n%s", diff)
	}
	if Get() != cfg {
		t.Fatalf("Get did not return the loaded config")
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	root := t.TempDir()
	t.Setenv("PRESENTER_ROOT", root)
	writeYAML(t, root, `
http:
  listen_addr: "127.0.0.1:9000"
inline:
  scratch_root: /var/tmp/presenter
  max_entries: 64
`)
	t.Setenv("PRESENTER_INLINE__MAX_ENTRIES", "16")
	t.Setenv("PRESENTER_LOG__LEVEL", "debug")
	t.Setenv("PRESENTER_INLINE__IDLE_TTL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.ListenAddr != "127.0.0.1:9000" {
		t.Errorf("listen_addr = %q", cfg.HTTP.ListenAddr)
	}
	if cfg.Inline.ScratchRoot != "/var/tmp/presenter" {
		t.Errorf("scratch_root = %q", cfg.Inline.ScratchRoot)
	}
	if cfg.Inline.MaxEntries != 16 {
		t.Errorf("max_entries = %d, want env override 16", cfg.Inline.MaxEntries)
	}
	if cfg.Inline.IdleTTL != 30*time.Second {
		t.Errorf("idle_ttl = %v", cfg.Inline.IdleTTL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q", cfg.Log.Level)
	}
}

func TestLoad_ValidationFails(t *testing.T) {
	tests := map[string]string{
		"negative cache": "inline:\n  max_entries: -1\n",
		"bad level":      "log:\n  level: chatty\n",
		"bad listen":     "http:\n  listen_addr: nowhere\n",
		"negative idle":  "inline:\n  max_idle_workers: -1\n",
		"missing geoip":  "geoip:\n  database: /nonexistent/GeoLite2-City.mmdb\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			t.Setenv("PRESENTER_ROOT", root)
			writeYAML(t, root, body)

			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestRootDir_ClimbsToConf(t *testing.T) {
	root := t.TempDir()
	writeYAML(t, root, "{}\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Setenv("PRESENTER_ROOT", "")
	t.Chdir(nested)

	got, _ := filepath.EvalSymlinks(rootDir())
	want, _ := filepath.EvalSymlinks(root)
	if got != want {
		t.Fatalf("rootDir = %q, want %q", got, want)
	}
}
