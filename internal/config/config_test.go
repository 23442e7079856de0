package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.Upload.MaxRequestSize != 5*1024*1024 {
		t.Fatalf("unexpected default size bound: %d", cfg.Upload.MaxRequestSize)
	}
	if cfg.Storage.RootDir == "" {
		t.Fatalf("default root dir must be set")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.RootDir = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing root dir to fail validation")
	}

	cfg = DefaultConfig()
	cfg.Upload.MaxRequestSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected zero size bound to fail validation")
	}
}
