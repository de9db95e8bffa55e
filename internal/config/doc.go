// Package config loads reposmith configuration.
//
// Configuration is a YAML file at $REPOSMITH_CONFIG or
// ~/.config/reposmith/config.yaml. A missing file means defaults, and a few
// environment variables override what the file says.
package config
