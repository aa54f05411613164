// Package config defines runtime configuration for tracescleaner and the
// .tracescleaner profile file, merging named profiles over defaults.
package config
