// Package config loads trawl's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/trawl/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// A file that exists but cannot be parsed is an error. So is a value that
// parses but is out of range; those errors name the offending key so the
// CLI can print something useful before the terminal is taken over.
//
// # TOML Format
//
// Every field is optional:
//
//	browser = "chrome"        # chrome, chromium, edge, brave, vivaldi, firefox
//	profile = "Default"       # directory name, display name, or path
//	layout = "full"           # full or popup
//	case_sensitive = true
//	rank = "none"             # none or fuzzy
//	history_limit = 50
//	history_scan = 5000
//	fetch_timeout = "3s"
//	cache_size = 128
//	cache_ttl = "30s"
//	overscan = 3
//	watch = true
//	log_file = "~/.local/state/trawl/trawl.log"
//	log_level = "info"
//
// Booleans and overscan are decoded through pointers so that an explicit
// false or zero is distinguishable from an absent key.
//
// # Path Expansion
//
// Tilde paths are expanded to the home directory and relative paths are made
// absolute. Profile values are only expanded when they start with a tilde,
// since a bare profile name is not a path.
package config
