package main

import (
	"flag"
	"fmt"

	"github.com/ALH477/AFS/internal/config"
	"github.com/ALH477/AFS/internal/progress"
	"github.com/ALH477/AFS/pkg/partfile"
)

// sizingFlags are the flags shared by split and verify: how to partition
// the source, which hash to use, and how chatty to be.
type sizingFlags struct {
	parts      *int
	maxSize    *string
	algo       *string
	progress   *bool
	quiet      *bool
	configPath *string
}

func addSizingFlags(fs *flag.FlagSet) *sizingFlags {
	return &sizingFlags{
		parts:      fs.Int("parts", 0, "Fixed number of parts"),
		maxSize:    fs.String("max-size", "", "Maximum part size (e.g. 64MiB)"),
		algo:       fs.String("algo", "", "Hash algorithm: md5, sha1, sha256, sha512 (default sha256)"),
		progress:   fs.Bool("progress", false, "Show progress output"),
		quiet:      fs.Bool("quiet", false, "Suppress summary output"),
		configPath: fs.String("config", "", "Path to YAML config file"),
	}
}

// resolve layers config file, environment, and flags into one validated
// Config and derives the core sizing and algorithm values from it.
func (f *sizingFlags) resolve() (config.Config, partfile.Sizing, partfile.Algorithm, error) {
	cfg := config.Default()

	if *f.configPath != "" {
		fileCfg, err := config.LoadFromFile(*f.configPath)
		if err != nil {
			return cfg, partfile.Sizing{}, "", err
		}
		cfg = fileCfg
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return cfg, partfile.Sizing{}, "", err
	}

	var maxBytes int64
	if *f.maxSize != "" {
		var err error
		maxBytes, err = progress.ParseBytes(*f.maxSize)
		if err != nil {
			return cfg, partfile.Sizing{}, "", fmt.Errorf("invalid -max-size: %w", err)
		}
	}
	cfg = cfg.Merge(config.Config{
		Parts:       *f.parts,
		MaxPartSize: maxBytes,
		Algorithm:   *f.algo,
		Progress:    *f.progress,
		Quiet:       *f.quiet,
	})

	if err := cfg.Validate(); err != nil {
		return cfg, partfile.Sizing{}, "", err
	}

	sizing := partfile.DefaultSizing()
	switch {
	case cfg.Parts > 0:
		sizing = partfile.FixedCount(cfg.Parts)
	case cfg.MaxPartSize > 0:
		sizing = partfile.MaxPartSize(cfg.MaxPartSize)
	}

	alg, err := partfile.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return cfg, partfile.Sizing{}, "", err
	}

	return cfg, sizing, alg, nil
}
