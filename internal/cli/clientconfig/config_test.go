package clientconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_Path(t *testing.T) {
	t.Run("honours directory override", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(DirEnv, dir)

		path, err := Path()
		if err != nil {
			t.Fatalf("Path() returned error: %v", err)
		}
		if path != filepath.Join(dir, fileName) {
			t.Errorf("expected %s, got %s", filepath.Join(dir, fileName), path)
		}
	})

	t.Run("defaults to user config dir", func(t *testing.T) {
		t.Setenv(DirEnv, "")
		path, err := Path()
		if err != nil {
			t.Skipf("no user config dir: %v", err)
		}
		if filepath.Base(filepath.Dir(path)) != dirName {
			t.Errorf("expected %s directory, got %s", dirName, path)
		}
	})
}

func TestConfig_RoundTrip(t *testing.T) {
	t.Setenv(DirEnv, t.TempDir())

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned error: %v", err)
		}
		if cfg.ServerURL != DefaultURL {
			t.Errorf("expected default URL, got %s", cfg.ServerURL)
		}
		if cfg.LoggedIn() {
			t.Error("expected fresh config to be logged out")
		}
	})

	t.Run("save then load", func(t *testing.T) {
		if err := Save(&Config{ServerURL: "http://chat.test", Username: "alice", UserID: 3}); err != nil {
			t.Fatalf("Save() returned error: %v", err)
		}

		path, _ := Path()
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("expected config file: %v", err)
		}
		if info.Mode().Perm() != filePerms {
			t.Errorf("expected perms %o, got %o", filePerms, info.Mode().Perm())
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned error: %v", err)
		}
		if !cfg.LoggedIn() || cfg.Username != "alice" || cfg.UserID != 3 {
			t.Errorf("unexpected config %+v", cfg)
		}
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		if err := Clear(); err != nil {
			t.Fatalf("Clear() returned error: %v", err)
		}
		if err := Clear(); err != nil {
			t.Fatalf("second Clear() returned error: %v", err)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path, _ := Path()
		if err := os.WriteFile(path, []byte("{"), filePerms); err != nil {
			t.Fatalf("failed writing config: %v", err)
		}
		if _, err := Load(); err == nil {
			t.Error("expected error for malformed config")
		}
	})
}
