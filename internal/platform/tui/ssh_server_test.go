package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func TestResolveHostKey(t *testing.T) {
	want := filepath.Join(t.TempDir(), "keys", "nested", "host_key")

	got, err := resolveHostKey(want)
	if err != nil {
		t.Fatalf("resolveHostKey: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
	if info, err := os.Stat(filepath.Dir(want)); err != nil || !info.IsDir() {
		t.Error("key directory should be created")
	}
}

func TestNewSSHServerRejectsBadGameConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")
	cfg.DBPath = filepath.Join(t.TempDir(), "flappy.db")
	cfg.Game.World.Width = 0

	if _, err := NewSSHServer(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("error = %v, want config.ErrInvalid", err)
	}
}

func TestNewSSHServer(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "host_key")
	cfg.DBPath = filepath.Join(t.TempDir(), "flappy.db")
	cfg.TickRate = 0

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer: %v", err)
	}
	if srv.store == nil {
		t.Error("session journal should be open")
	}
	if srv.config.TickRate != 60 {
		t.Errorf("tick rate = %d, want default 60", srv.config.TickRate)
	}
	if err := srv.Shutdown(); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}
