// Package config defines configuration structures for the afs CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (AFS_ prefix)
//   - YAML configuration file
//
// Later sources override earlier ones: defaults, then file, then
// environment, then flags.
//
// # Structure
//
//	type Config struct {
//	    Parts       int    // fixed part count
//	    MaxPartSize int64  // maximum part size in bytes
//	    Algorithm   string // md5 | sha1 | sha256 | sha512
//	    Progress    bool
//	    Quiet       bool
//	}
//
// Sizes in the YAML file and environment accept human-readable strings
// such as "64MiB".
package config
