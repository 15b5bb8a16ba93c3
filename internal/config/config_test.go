package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Format != "srt" || cfg.Provider != "openai" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.MaxCompensate() != 1500*time.Millisecond {
		t.Errorf("max compensate = %v", cfg.MaxCompensate())
	}
	if !cfg.Tracking {
		t.Error("tracking should default to on")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subedit.yaml")
	body := "format: vtt\nmax_compensate_seconds: 2\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Format != "vtt" {
		t.Errorf("format = %q", cfg.Format)
	}
	if cfg.MaxCompensate() != 2*time.Second {
		t.Errorf("max compensate = %v", cfg.MaxCompensate())
	}
	if cfg.Concurrency != 3 || cfg.ChunkMinutes != 10 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadNormalizesCase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subedit.yaml")
	if err := os.WriteFile(path, []byte("format: SRT\nprovider: Gemini\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Format != "srt" || cfg.Provider != "gemini" {
		t.Errorf("normalize failed: %+v", cfg)
	}
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad format", "format: ass\n"},
		{"bad provider", "provider: whisperx\n"},
		{"bad yaml", "format: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "subedit.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subedit.yaml")
	cfg, _ := Load("")
	cfg.Format = "vtt"
	cfg.Tracking = false

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Format != "vtt" || loaded.Tracking {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}
