// SPDX-License-Identifier: MIT

// Package config assembles a run configuration from flags, NETALIGN_*
// environment variables and an optional YAML file through viper, validates
// it, and converts it into the inputs of the sana and schedule packages.
package config
