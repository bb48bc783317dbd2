// Package config loads, normalizes, and validates transcriptor configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the TRANSCRIPTOR_CONFIG
// environment override. The Config type centralizes every knob the CLI needs:
// stage defaults, external tool names, model decode options, watch-mode
// behaviour, and log routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
