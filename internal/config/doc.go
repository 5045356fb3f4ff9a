// Package config loads the wtm configuration file.
//
// Configuration lives at ~/.config/wtm/config.toml (or the platform
// equivalent of os.UserConfigDir). A missing file yields the defaults;
// a malformed file is an error. File access goes through the system
// package so tests can substitute a mock filesystem.
package config
