package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Algorithm != "sha256" {
		t.Errorf("expected default algorithm sha256, got %q", cfg.Algorithm)
	}
	if cfg.Parts != 0 {
		t.Errorf("expected no default part count, got %d", cfg.Parts)
	}
	if cfg.MaxPartSize != 0 {
		t.Errorf("expected no default max part size, got %d", cfg.MaxPartSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	yamlContent := `
parts: 8
algorithm: sha512
progress: true
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Parts != 8 {
		t.Errorf("expected parts 8, got %d", cfg.Parts)
	}
	if cfg.Algorithm != "sha512" {
		t.Errorf("expected algorithm sha512, got %q", cfg.Algorithm)
	}
	if !cfg.Progress {
		t.Error("expected progress true")
	}
}

func TestLoadFromYAMLMaxPartSize(t *testing.T) {
	yamlContent := `max_part_size: 64MiB`

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.MaxPartSize != 64*1024*1024 {
		t.Errorf("expected max part size 64MiB, got %d", cfg.MaxPartSize)
	}
	if cfg.Algorithm != "sha256" {
		t.Errorf("expected default algorithm kept, got %q", cfg.Algorithm)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AFS_PARTS", "16")
	t.Setenv("AFS_ALGORITHM", "md5")
	t.Setenv("AFS_QUIET", "1")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.Parts != 16 {
		t.Errorf("expected parts 16, got %d", cfg.Parts)
	}
	if cfg.Algorithm != "md5" {
		t.Errorf("expected algorithm md5, got %q", cfg.Algorithm)
	}
	if !cfg.Quiet {
		t.Error("expected quiet true")
	}
}

func TestLoadFromEnvMaxPartSize(t *testing.T) {
	t.Setenv("AFS_MAX_PART_SIZE", "1GiB")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.MaxPartSize != 1024*1024*1024 {
		t.Errorf("expected 1GiB, got %d", cfg.MaxPartSize)
	}
}

func TestLoadFromEnvInvalid(t *testing.T) {
	t.Setenv("AFS_PARTS", "not-a-number")

	cfg := Default()
	if err := cfg.LoadFromEnv(); err == nil {
		t.Error("expected error for invalid AFS_PARTS")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", Default(), false},
		{"fixed parts", Config{Parts: 4, Algorithm: "sha1"}, false},
		{"max size", Config{MaxPartSize: 1024, Algorithm: "sha256"}, false},
		{"both sizing modes", Config{Parts: 4, MaxPartSize: 1024, Algorithm: "sha256"}, true},
		{"negative parts", Config{Parts: -1, Algorithm: "sha256"}, true},
		{"bad algorithm", Config{Algorithm: "crc32"}, true},
		{"empty algorithm", Config{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	merged := base.Merge(Config{Parts: 3, Quiet: true})

	if merged.Parts != 3 {
		t.Errorf("expected parts 3, got %d", merged.Parts)
	}
	if merged.Algorithm != "sha256" {
		t.Errorf("expected algorithm preserved, got %q", merged.Algorithm)
	}
	if !merged.Quiet {
		t.Error("expected quiet true")
	}

	// Zero values in the override leave the base untouched
	unchanged := merged.Merge(Config{})
	if unchanged != merged {
		t.Errorf("empty merge changed config: %+v", unchanged)
	}
}
