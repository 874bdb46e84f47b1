// Package config provides configuration structures and utilities for pageaudit.
// It defines the run options set by CLI flags and the optional .pageaudit
// YAML file holding per-site settings such as extra site domains and
// ignore/follow patterns for input pages.
package config
